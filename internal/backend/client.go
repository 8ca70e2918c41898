// Package backend is the HTTP JSON client for the storefront cart API. It
// wraps the four remote cart operations, attaches the bearer credential from
// the injected session store, and normalizes the server's wire shape into the
// local cart model. One request per invocation, no retries; timeouts belong
// to the caller's context and the supplied http.Client.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"

	"storefront-cart/internal/domain"
)

// credentials is the slice of the session store the client needs.
type credentials interface {
	Token() (string, bool)
}

// Client talks to the storefront cart endpoints.
type Client struct {
	baseURL    string
	httpClient *http.Client
	creds      credentials
	logger     *log.Logger
}

// New builds a Client. A nil httpClient falls back to http.DefaultClient.
func New(baseURL string, httpClient *http.Client, creds credentials, logger *log.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		creds:      creds,
		logger:     logger,
	}
}

// FetchCart retrieves the user's cart. Without a stored credential it fails
// with domain.ErrUnauthenticated before any network call.
func (c *Client) FetchCart(ctx context.Context) (*domain.Cart, error) {
	resp, err := c.do(ctx, http.MethodGet, "/cart", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, responseError("fetch cart", resp)
	}
	return decodeCart(resp.Body)
}

// AddItem adds one unit of the item and returns the entire updated cart.
func (c *Client) AddItem(ctx context.Context, itemID string) (*domain.Cart, error) {
	body := map[string][]string{"item_ids": {itemID}}
	resp, err := c.do(ctx, http.MethodPost, "/cart/items", body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, responseError("add item", resp)
	}
	return decodeCart(resp.Body)
}

// RemoveItem deletes the item from the server-side cart. The endpoint is
// collection-level; the target id travels in the DELETE request body.
func (c *Client) RemoveItem(ctx context.Context, itemID string) error {
	body := map[string][]string{"item_ids": {itemID}}
	resp, err := c.do(ctx, http.MethodDelete, "/cart/items", body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return responseError("remove item", resp)
	}
	return nil
}

// UpdateQuantity sets the item's quantity and returns the entire updated cart.
func (c *Client) UpdateQuantity(ctx context.Context, itemID string, quantity int) (*domain.Cart, error) {
	body := map[string]interface{}{"item_id": itemID, "quantity": quantity}
	resp, err := c.do(ctx, http.MethodPatch, "/cart/items", body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, responseError("update quantity", resp)
	}
	return decodeCart(resp.Body)
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}) (*http.Response, error) {
	token, ok := c.creds.Token()
	if !ok {
		return nil, domain.ErrUnauthenticated
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	return resp, nil
}

func decodeCart(r io.Reader) (*domain.Cart, error) {
	var wire wireCart
	if err := json.NewDecoder(r).Decode(&wire); err != nil {
		return nil, fmt.Errorf("decode cart payload: %w", err)
	}
	return normalize(wire), nil
}

// responseError surfaces the server's structured error body verbatim when
// present, otherwise a generic message with the status code.
func responseError(op string, resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
		return fmt.Errorf("%s: %s", op, payload.Error)
	}
	return fmt.Errorf("%s: status %d: %s", op, resp.StatusCode, bytes.TrimSpace(body))
}
