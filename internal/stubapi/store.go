package stubapi

import (
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"storefront-cart/internal/domain"
)

// Store holds the catalog and one cart per issued token.
type Store struct {
	mu      sync.Mutex
	catalog []domain.CartItem
	carts   map[string][]cartLine
}

// cartLine is one server-side cart row: a catalog reference plus quantity.
type cartLine struct {
	itemID   string
	quantity int
}

// NewStore seeds the store with the given catalog items. Quantity on catalog
// entries is ignored; carts track their own.
func NewStore(catalog []domain.CartItem) *Store {
	return &Store{
		catalog: catalog,
		carts:   make(map[string][]cartLine),
	}
}

// DefaultCatalog is a small seeded catalog for local development.
func DefaultCatalog() []domain.CartItem {
	d := func(s string) decimal.Decimal { return decimal.RequireFromString(s) }
	return []domain.CartItem{
		{ID: "sku-mug", Name: "Stoneware Mug", Manufacturer: "Kilnworks", Price: d("12.50"), MRP: d("15.00")},
		{ID: "sku-kettle", Name: "Electric Kettle", Manufacturer: "Brewtech", Price: d("49.99"), MRP: d("64.99")},
		{ID: "sku-towel", Name: "Linen Towel", Manufacturer: "Loom & Co", Price: d("8.00"), MRP: d("8.00")},
	}
}

// Login issues a fresh token with an empty cart.
func (s *Store) Login() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	token := uuid.NewString()
	s.carts[token] = nil
	return token
}

// Authenticated reports whether the token was issued by Login.
func (s *Store) Authenticated(token string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.carts[token]
	return ok
}

// AddItem appends the catalog item to the token's cart, or bumps its
// quantity if already present.
func (s *Store) AddItem(token, itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lookup(itemID) == nil {
		return domain.ErrNotFound
	}
	lines := s.carts[token]
	for i := range lines {
		if lines[i].itemID == itemID {
			lines[i].quantity++
			return nil
		}
	}
	s.carts[token] = append(lines, cartLine{itemID: itemID, quantity: 1})
	return nil
}

// RemoveItems drops the given ids from the token's cart. Unknown ids are
// ignored, matching the collection-level delete contract.
func (s *Store) RemoveItems(token string, itemIDs []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	drop := make(map[string]bool, len(itemIDs))
	for _, id := range itemIDs {
		drop[id] = true
	}
	var kept []cartLine
	for _, line := range s.carts[token] {
		if !drop[line.itemID] {
			kept = append(kept, line)
		}
	}
	s.carts[token] = kept
}

// SetQuantity sets the line's quantity. Quantity must be >= 1 and the item
// must already be in the cart.
func (s *Store) SetQuantity(token, itemID string, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if quantity < 1 {
		return errQuantity
	}
	lines := s.carts[token]
	for i := range lines {
		if lines[i].itemID == itemID {
			lines[i].quantity = quantity
			return nil
		}
	}
	return domain.ErrNotFound
}

// Cart renders the token's cart in the nested wire shape: {item, quantity}
// pairs plus the computed total.
func (s *Store) Cart(token string) ([]domain.CartItem, []int, decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var items []domain.CartItem
	var quantities []int
	total := decimal.Zero
	for _, line := range s.carts[token] {
		item := s.lookup(line.itemID)
		if item == nil {
			continue
		}
		items = append(items, *item)
		quantities = append(quantities, line.quantity)
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(line.quantity))))
	}
	return items, quantities, total
}

// lookup returns the catalog item by id; callers hold the lock.
func (s *Store) lookup(itemID string) *domain.CartItem {
	for i := range s.catalog {
		if s.catalog[i].ID == itemID {
			return &s.catalog[i]
		}
	}
	return nil
}
