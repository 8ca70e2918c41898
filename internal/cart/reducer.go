package cart

import (
	"storefront-cart/internal/domain"
	"storefront-cart/internal/money"
)

// Local mutations: synchronous, server-independent transitions between the
// active cart and the saved-for-later list. They never fail — a missing id is
// a silent no-op — and each one leaves the denormalized total equal to the
// sum of price*quantity over the remaining cart lines. An item id lives in at
// most one of the two collections at any time.

// SaveForLater parks a cart line on the saved-for-later list and deducts its
// line total from the cart total.
func (m *Manager) SaveForLater(itemID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cart == nil {
		return
	}
	idx := indexOf(m.cart.Items, itemID)
	if idx < 0 {
		return
	}
	item := m.cart.Items[idx]
	m.cart.Items = append(m.cart.Items[:idx], m.cart.Items[idx+1:]...)
	total := money.ParseTotal(m.cart.TotalPrice).Sub(money.LineTotal(item))
	m.cart.TotalPrice = money.FormatTotal(total)
	m.saved = append(m.saved, item)
}

// MoveToCart returns a saved item to the active cart, creating the cart fresh
// if none has been fetched yet, and adds its line total back.
func (m *Manager) MoveToCart(itemID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	idx := indexOf(m.saved, itemID)
	if idx < 0 {
		return
	}
	item := m.saved[idx]
	m.saved = append(m.saved[:idx], m.saved[idx+1:]...)
	if m.cart == nil {
		m.cart = &domain.Cart{
			Items:      []domain.CartItem{item},
			TotalPrice: money.FormatTotal(money.LineTotal(item)),
		}
		return
	}
	m.cart.Items = append(m.cart.Items, item)
	total := money.ParseTotal(m.cart.TotalPrice).Add(money.LineTotal(item))
	m.cart.TotalPrice = money.FormatTotal(total)
}

// RemoveFromSaved drops the item from the saved-for-later list. The active
// cart is untouched.
func (m *Manager) RemoveFromSaved(itemID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	idx := indexOf(m.saved, itemID)
	if idx < 0 {
		return
	}
	m.saved = append(m.saved[:idx], m.saved[idx+1:]...)
}

// Clear resets everything to the signed-out state: no cart, empty saved list,
// idle status, no error.
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cart = nil
	m.saved = nil
	m.status = domain.StatusIdle
	m.err = nil
}
