package cart

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"storefront-cart/internal/domain"
	"storefront-cart/internal/money"
)

func decimalFromString(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return d
}

func seedWithSaved(t *testing.T, cart *domain.Cart, saved ...domain.CartItem) *Manager {
	t.Helper()
	m := seed(t, cart)
	m.mu.Lock()
	m.saved = saved
	m.mu.Unlock()
	return m
}

func assertTotalConsistent(t *testing.T, m *Manager) {
	t.Helper()
	c := m.Cart()
	if c == nil {
		return
	}
	want := money.FormatTotal(money.Subtotal(c.Items))
	if c.TotalPrice != want {
		t.Fatalf("total %q inconsistent with items (want %q)", c.TotalPrice, want)
	}
}

func assertMutualExclusion(t *testing.T, m *Manager) {
	t.Helper()
	seen := map[string]bool{}
	if c := m.Cart(); c != nil {
		for _, item := range c.Items {
			seen[item.ID] = true
		}
	}
	for _, item := range m.SavedForLater() {
		if seen[item.ID] {
			t.Fatalf("item %s present in both cart and saved list", item.ID)
		}
	}
}

func TestSaveForLaterScenario(t *testing.T) {
	m := seed(t, cartOf("60.00", newItem("1", 20, 25, 3)))

	m.SaveForLater("1")

	c := m.Cart()
	if len(c.Items) != 0 {
		t.Fatalf("expected empty items, got %+v", c.Items)
	}
	if c.TotalPrice != "0.00" {
		t.Fatalf("expected total 0.00, got %q", c.TotalPrice)
	}
	saved := m.SavedForLater()
	if len(saved) != 1 || saved[0].ID != "1" || saved[0].Quantity != 3 {
		t.Fatalf("unexpected saved list %+v", saved)
	}
	assertMutualExclusion(t, m)
}

func TestMoveToCartCreatesCartWhenNil(t *testing.T) {
	m := seedWithSaved(t, nil, newItem("7", 50, 60, 2))

	m.MoveToCart("7")

	c := m.Cart()
	if c == nil {
		t.Fatal("expected cart to be created")
	}
	if len(c.Items) != 1 || c.Items[0].ID != "7" || c.Items[0].Quantity != 2 {
		t.Fatalf("unexpected items %+v", c.Items)
	}
	if c.TotalPrice != "100.00" {
		t.Fatalf("expected total 100.00, got %q", c.TotalPrice)
	}
	if len(m.SavedForLater()) != 0 {
		t.Fatal("saved list should be empty")
	}
}

func TestSaveThenMoveBackRestoresItem(t *testing.T) {
	m := seed(t, cartOf("60.00", newItem("1", 20, 25, 3), newItem("2", 0, 0, 1)))

	m.SaveForLater("1")
	assertMutualExclusion(t, m)
	m.MoveToCart("1")
	assertMutualExclusion(t, m)

	c := m.Cart()
	idx := indexOf(c.Items, "1")
	if idx < 0 {
		t.Fatal("item not restored to cart")
	}
	restored := c.Items[idx]
	if restored.Quantity != 3 || !restored.Price.Equal(newItem("1", 20, 25, 3).Price) {
		t.Fatalf("quantity/price not preserved: %+v", restored)
	}
	if c.TotalPrice != "60.00" {
		t.Fatalf("expected total restored to 60.00, got %q", c.TotalPrice)
	}
}

func TestSaveForLaterMissingIDIsNoop(t *testing.T) {
	m := seedWithSaved(t, cartOf("60.00", newItem("1", 20, 25, 3)), newItem("9", 5, 5, 1))

	m.SaveForLater("does-not-exist")

	c := m.Cart()
	if len(c.Items) != 1 || c.TotalPrice != "60.00" {
		t.Fatalf("cart changed: %+v", c)
	}
	if len(m.SavedForLater()) != 1 {
		t.Fatalf("saved list changed: %+v", m.SavedForLater())
	}
}

func TestSaveForLaterWithNilCartIsNoop(t *testing.T) {
	m := NewManager(&funcSyncer{}, nil, logDiscard())
	m.SaveForLater("1")
	if m.Cart() != nil || len(m.SavedForLater()) != 0 {
		t.Fatal("expected untouched state")
	}
}

func TestMoveToCartMissingIDIsNoop(t *testing.T) {
	m := seed(t, cartOf("60.00", newItem("1", 20, 25, 3)))
	m.MoveToCart("ghost")
	c := m.Cart()
	if len(c.Items) != 1 || c.TotalPrice != "60.00" {
		t.Fatalf("cart changed: %+v", c)
	}
}

func TestRemoveFromSaved(t *testing.T) {
	m := seedWithSaved(t, cartOf("10.00", newItem("a", 10, 10, 1)),
		newItem("s1", 5, 5, 1), newItem("s2", 7, 8, 2))

	m.RemoveFromSaved("s1")

	saved := m.SavedForLater()
	if len(saved) != 1 || saved[0].ID != "s2" {
		t.Fatalf("unexpected saved list %+v", saved)
	}
	if c := m.Cart(); len(c.Items) != 1 || c.TotalPrice != "10.00" {
		t.Fatalf("cart must be untouched: %+v", c)
	}

	m.RemoveFromSaved("ghost")
	if len(m.SavedForLater()) != 1 {
		t.Fatal("missing id must be a no-op")
	}
}

func TestClearResetsEverything(t *testing.T) {
	m := seedWithSaved(t, cartOf("10.00", newItem("a", 10, 10, 1)), newItem("s", 1, 1, 1))

	m.Clear()

	if m.Cart() != nil {
		t.Fatal("cart should be nil")
	}
	if len(m.SavedForLater()) != 0 {
		t.Fatal("saved list should be empty")
	}
	if m.Status() != domain.StatusIdle || m.Err() != nil {
		t.Fatalf("expected idle/nil, got %v %v", m.Status(), m.Err())
	}
}

func TestTotalConsistencyAcrossMutationSequences(t *testing.T) {
	m := seed(t, cartOf("119.99",
		newItem("a", 50, 60, 2),
		domain.CartItem{ID: "b", Price: decimalFromString(t, "19.99"), MRP: decimalFromString(t, "19.99"), Quantity: 1},
	))

	steps := []func(){
		func() { m.SaveForLater("a") },
		func() { m.SaveForLater("b") },
		func() { m.MoveToCart("a") },
		func() { m.SaveForLater("a") },
		func() { m.MoveToCart("b") },
		func() { m.MoveToCart("a") },
		func() { m.RemoveFromSaved("a") }, // no-op, a is back in the cart
	}
	for _, step := range steps {
		step()
		assertTotalConsistent(t, m)
		assertMutualExclusion(t, m)
	}

	c := m.Cart()
	if len(c.Items) != 2 || c.TotalPrice != "119.99" {
		t.Fatalf("expected full cart restored, got %+v", c)
	}
}

func TestReducerAfterServerFetch(t *testing.T) {
	// local mutations compose with a wholesale server replace
	m := seed(t, cartOf("100.00", newItem("7", 50, 60, 2)))
	m.SaveForLater("7")

	m.syncer.(*funcSyncer).fetch = func(context.Context) (*domain.Cart, error) {
		return cartOf("30.00", newItem("8", 30, 30, 1)), nil
	}
	if err := m.FetchCart(context.Background()); err != nil {
		t.Fatalf("fetch: %v", err)
	}

	// saved list survives the replace; the parked item stays parked
	saved := m.SavedForLater()
	if len(saved) != 1 || saved[0].ID != "7" {
		t.Fatalf("saved list lost: %+v", saved)
	}
	assertMutualExclusion(t, m)
}
