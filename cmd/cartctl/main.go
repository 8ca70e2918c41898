// cartctl is a small terminal front-end for the cart state manager. It signs
// in against the storefront API, keeps the bearer token in a session file,
// and drives the same manager/adapter stack the storefront UI uses.
package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"storefront-cart/internal/backend"
	"storefront-cart/internal/cart"
	"storefront-cart/internal/config"
	"storefront-cart/internal/notify"
	"storefront-cart/internal/session"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:           "cartctl",
	Short:         "Shopping cart client for the storefront API",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default $HOME/.config/cartctl/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log request outcomes")
	rootCmd.PersistentFlags().String("api-url", "", "storefront API base URL")
	rootCmd.PersistentFlags().String("session-file", "", "path of the persisted session")
	_ = viper.BindPFlag("api_url", rootCmd.PersistentFlags().Lookup("api-url"))
	_ = viper.BindPFlag("session_file", rootCmd.PersistentFlags().Lookup("session-file"))

	rootCmd.AddCommand(loginCmd, logoutCmd, showCmd, addCmd, removeCmd, qtyCmd, saveCmd, unsaveCmd)
}

// initConfig layers defaults < config file < environment < flags.
func initConfig() error {
	defaults := config.FromEnv()
	viper.SetDefault("api_url", defaults.APIBaseURL)
	viper.SetDefault("session_file", defaults.SessionFile)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home + "/.config/cartctl")
		}
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}
	viper.SetEnvPrefix("CART")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}
	return nil
}

// app bundles the wired client stack for one invocation.
type app struct {
	creds   *session.Store
	manager *cart.Manager
}

func newApp() (*app, error) {
	logger := log.New(os.Stderr, "", 0)

	creds, err := session.NewFileStore(viper.GetString("session_file"))
	if err != nil {
		return nil, err
	}

	var bus notify.Bus
	if verbose {
		bus.Subscribe(func(ev notify.Event) {
			if ev.Err != nil {
				logger.Printf("%s: %s (%v)", ev.Op, ev.Phase, ev.Err)
				return
			}
			logger.Printf("%s: %s", ev.Op, ev.Phase)
		})
	}

	client := backend.New(viper.GetString("api_url"), nil, creds, logger)
	return &app{
		creds:   creds,
		manager: cart.NewManager(client, &bus, logger),
	}, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "cartctl:", err)
		os.Exit(1)
	}
}
