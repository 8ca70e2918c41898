package cart

import (
	"storefront-cart/internal/domain"
	"storefront-cart/internal/money"
)

// Read-only selectors. Each returns a synchronous snapshot of committed
// state; returned slices and carts are copies, never internal references.

// Cart returns a deep copy of the active cart, or nil if none exists.
func (m *Manager) Cart() *domain.Cart {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cart.Clone()
}

// SavedForLater returns a copy of the saved-for-later list.
func (m *Manager) SavedForLater() []domain.CartItem {
	m.mu.Lock()
	defer m.mu.Unlock()
	return domain.CloneItems(m.saved)
}

// Status reports the lifecycle of the most recent server round-trip.
func (m *Manager) Status() domain.RequestStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status
}

// Err returns the error from the last failed operation, or nil. It is
// replaced whenever an operation resolves, never accumulated.
func (m *Manager) Err() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.err
}

// Savings formats the total list-price savings over the active cart.
func (m *Manager) Savings() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cart == nil {
		return money.FormatTotal(money.Savings(nil))
	}
	return money.FormatTotal(money.Savings(m.cart.Items))
}
