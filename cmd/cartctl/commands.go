package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"storefront-cart/internal/cart"
	"storefront-cart/internal/domain"
)

var (
	loginEmail    string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and persist the session token",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		token, err := requestToken(viper.GetString("api_url"), loginEmail, loginPassword)
		if err != nil {
			return err
		}
		if err := a.creds.SignIn(token); err != nil {
			return err
		}
		fmt.Println("signed in")
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the session and local cart state",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		a.manager.Clear()
		if err := a.creds.SignOut(); err != nil {
			return err
		}
		fmt.Println("signed out")
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Fetch and print the cart",
	RunE:  withFetchedCart(func(a *app, cmd *cobra.Command, args []string) error { return nil }),
}

var addCmd = &cobra.Command{
	Use:   "add <item-id>",
	Short: "Add an item to the cart",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		if err := a.manager.AddItem(cmd.Context(), args[0]); err != nil {
			return err
		}
		printCart(a.manager)
		return nil
	},
}

var removeCmd = &cobra.Command{
	Use:   "remove <item-id>",
	Short: "Remove an item from the cart",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		if err := a.manager.FetchCart(cmd.Context()); err != nil {
			return err
		}
		if err := a.manager.RemoveItem(cmd.Context(), args[0]); err != nil {
			return err
		}
		printCart(a.manager)
		return nil
	},
}

var qtyCmd = &cobra.Command{
	Use:   "qty <item-id> <quantity>",
	Short: "Set an item's quantity",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		quantity, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("quantity must be an integer: %w", err)
		}
		a, err := newApp()
		if err != nil {
			return err
		}
		if err := a.manager.UpdateQuantity(cmd.Context(), args[0], quantity); err != nil {
			return err
		}
		printCart(a.manager)
		return nil
	},
}

var saveCmd = &cobra.Command{
	Use:   "save <item-id>",
	Short: "Park a cart item on the saved-for-later list",
	Args:  cobra.ExactArgs(1),
	RunE: withFetchedCart(func(a *app, cmd *cobra.Command, args []string) error {
		a.manager.SaveForLater(args[0])
		return nil
	}),
}

var unsaveCmd = &cobra.Command{
	Use:   "unsave <item-id>",
	Short: "Move a saved item back into the cart",
	Args:  cobra.ExactArgs(1),
	RunE: withFetchedCart(func(a *app, cmd *cobra.Command, args []string) error {
		a.manager.MoveToCart(args[0])
		return nil
	}),
}

// withFetchedCart fetches the cart, runs fn, then prints the resulting state.
func withFetchedCart(fn func(a *app, cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		if err := a.manager.FetchCart(cmd.Context()); err != nil {
			return err
		}
		if err := fn(a, cmd, args); err != nil {
			return err
		}
		printCart(a.manager)
		return nil
	}
}

func printCart(m *cart.Manager) {
	c := m.Cart()
	if c == nil || len(c.Items) == 0 {
		fmt.Println("cart is empty")
	} else {
		for _, item := range c.Items {
			printItem(item)
		}
		fmt.Printf("total: %s (you save %s)\n", c.TotalPrice, m.Savings())
	}
	if saved := m.SavedForLater(); len(saved) > 0 {
		fmt.Println("saved for later:")
		for _, item := range saved {
			printItem(item)
		}
	}
}

func printItem(item domain.CartItem) {
	name := item.Name
	if name == "" {
		name = item.ID
	}
	fmt.Printf("  %-12s %-24s x%d  @ %s\n", item.ID, name, item.Quantity, item.Price.StringFixed(2))
}

func requestToken(apiURL, email, password string) (string, error) {
	body, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return "", err
	}
	resp, err := http.Post(apiURL+"/login", "application/json", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("login: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("login: status %d: %s", resp.StatusCode, bytes.TrimSpace(data))
	}
	var payload struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("login: decode response: %w", err)
	}
	if payload.Token == "" {
		return "", fmt.Errorf("login: empty token in response")
	}
	return payload.Token, nil
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "account email")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "account password")
	_ = loginCmd.MarkFlagRequired("email")
	_ = loginCmd.MarkFlagRequired("password")
}
