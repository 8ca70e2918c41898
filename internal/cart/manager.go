// Package cart implements the client-side cart state manager: an in-memory
// model of the active cart and the saved-for-later list, updated by
// asynchronous server round-trips and synchronous local mutations. The
// manager exclusively owns both collections; presentation layers read
// snapshots through the selector methods and mutate only through the named
// operations.
package cart

import (
	"context"
	"log"
	"sync"

	"github.com/google/uuid"

	"storefront-cart/internal/domain"
	"storefront-cart/internal/money"
	"storefront-cart/internal/notify"
)

// syncer is the slice of the backend client the manager needs.
type syncer interface {
	FetchCart(ctx context.Context) (*domain.Cart, error)
	AddItem(ctx context.Context, itemID string) (*domain.Cart, error)
	RemoveItem(ctx context.Context, itemID string) error
	UpdateQuantity(ctx context.Context, itemID string, quantity int) (*domain.Cart, error)
}

// Manager owns the cart, the saved-for-later list, and the status/error pair
// of the most recent round-trip. Methods may be called concurrently; each
// state commit is serialized, but overlapping server operations are not
// sequenced — whichever resolves last wins, and in-flight requests are never
// cancelled by newer ones.
type Manager struct {
	mu     sync.Mutex
	cart   *domain.Cart
	saved  []domain.CartItem
	status domain.RequestStatus
	err    error

	syncer syncer
	bus    *notify.Bus
	logger *log.Logger
}

// NewManager builds a Manager around the given backend client. A nil bus gets
// a private one so publishing is always safe.
func NewManager(s syncer, bus *notify.Bus, logger *log.Logger) *Manager {
	if bus == nil {
		bus = &notify.Bus{}
	}
	return &Manager{
		status: domain.StatusIdle,
		syncer: s,
		bus:    bus,
		logger: logger,
	}
}

const (
	opFetchCart      = "fetch cart"
	opAddItem        = "add item"
	opRemoveItem     = "remove item"
	opUpdateQuantity = "update quantity"
)

// FetchCart loads the authoritative cart from the server and replaces the
// local one wholesale. On failure the last known-good cart is kept.
func (m *Manager) FetchCart(ctx context.Context) error {
	id := m.begin(opFetchCart)
	fresh, err := m.syncer.FetchCart(ctx)
	return m.resolve(id, opFetchCart, err, func() {
		m.cart = fresh
	})
}

// AddItem asks the server to add one unit of the item. The server responds
// with the entire updated cart, which replaces local state wholesale,
// overwriting any speculative local change made in between.
func (m *Manager) AddItem(ctx context.Context, itemID string) error {
	id := m.begin(opAddItem)
	fresh, err := m.syncer.AddItem(ctx, itemID)
	return m.resolve(id, opAddItem, err, func() {
		m.cart = fresh
	})
}

// RemoveItem deletes the item server-side, then drops it from the local cart.
// The running total is adjusted by the removed item's unit price; this is the
// storefront's observed behavior (see DESIGN.md), and the next fetch
// reconciles the total against the server.
func (m *Manager) RemoveItem(ctx context.Context, itemID string) error {
	id := m.begin(opRemoveItem)
	err := m.syncer.RemoveItem(ctx, itemID)
	return m.resolve(id, opRemoveItem, err, func() {
		if m.cart == nil {
			return
		}
		idx := indexOf(m.cart.Items, itemID)
		if idx < 0 {
			return
		}
		removed := m.cart.Items[idx]
		m.cart.Items = append(m.cart.Items[:idx], m.cart.Items[idx+1:]...)
		total := money.ParseTotal(m.cart.TotalPrice).Sub(removed.Price)
		m.cart.TotalPrice = money.FormatTotal(total)
	})
}

// UpdateQuantity sets the item's quantity server-side. The server's updated
// cart replaces local state wholesale, so the total recompute is
// server-authoritative.
func (m *Manager) UpdateQuantity(ctx context.Context, itemID string, quantity int) error {
	id := m.begin(opUpdateQuantity)
	fresh, err := m.syncer.UpdateQuantity(ctx, itemID, quantity)
	return m.resolve(id, opUpdateQuantity, err, func() {
		m.cart = fresh
	})
}

// begin flips status to loading and announces the operation. The previous
// error is kept until the operation resolves.
func (m *Manager) begin(op string) uuid.UUID {
	m.mu.Lock()
	m.status = domain.StatusLoading
	m.mu.Unlock()

	id := uuid.New()
	m.bus.Publish(notify.Event{ID: id, Op: op, Phase: notify.PhasePending})
	return id
}

// resolve commits the outcome of one round-trip: on success it runs apply
// under the lock and clears the error, on failure it stores the error and
// leaves the cart untouched. Either way the single status/error pair is
// overwritten — overlapping operations race on it, last resolver wins.
func (m *Manager) resolve(id uuid.UUID, op string, err error, apply func()) error {
	m.mu.Lock()
	if err != nil {
		m.err = err
		m.status = domain.StatusFailed
	} else {
		if apply != nil {
			apply()
		}
		m.err = nil
		m.status = domain.StatusSucceeded
	}
	m.mu.Unlock()

	if err != nil {
		if m.logger != nil {
			m.logger.Printf("%s failed: %v", op, err)
		}
		m.bus.Publish(notify.Event{ID: id, Op: op, Phase: notify.PhaseFailed, Err: err})
		return err
	}
	m.bus.Publish(notify.Event{ID: id, Op: op, Phase: notify.PhaseSucceeded})
	return nil
}

func indexOf(items []domain.CartItem, itemID string) int {
	for i := range items {
		if items[i].ID == itemID {
			return i
		}
	}
	return -1
}
