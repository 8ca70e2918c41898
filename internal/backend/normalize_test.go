package backend

import (
	"testing"

	"github.com/shopspring/decimal"

	"storefront-cart/internal/domain"
)

func TestNormalizeNestedAndFlatAgree(t *testing.T) {
	item := domain.CartItem{
		ID:       "7",
		Name:     "Mug",
		Price:    decimal.NewFromInt(50),
		MRP:      decimal.NewFromInt(60),
		Quantity: 2,
	}

	nested := normalize(wireCart{
		CartItems:  []wireCartEntry{{Item: item, Quantity: 2}},
		TotalPrice: decimal.NewFromInt(100),
	})
	flat := normalize(wireCart{
		Items:      []domain.CartItem{item},
		TotalPrice: decimal.NewFromInt(100),
	})

	if len(nested.Items) != 1 || len(flat.Items) != 1 {
		t.Fatalf("expected one item each, got %d and %d", len(nested.Items), len(flat.Items))
	}
	if nested.Items[0].ID != flat.Items[0].ID ||
		nested.Items[0].Quantity != flat.Items[0].Quantity ||
		!nested.Items[0].Price.Equal(flat.Items[0].Price) {
		t.Fatalf("shapes disagree: %+v vs %+v", nested.Items[0], flat.Items[0])
	}
	if nested.TotalPrice != "100.00" || flat.TotalPrice != "100.00" {
		t.Fatalf("totals: %q vs %q", nested.TotalPrice, flat.TotalPrice)
	}
}

func TestNormalizeEntryQuantityOverridesItemQuantity(t *testing.T) {
	item := domain.CartItem{ID: "1", Price: decimal.NewFromInt(5), Quantity: 99}
	cart := normalize(wireCart{
		CartItems:  []wireCartEntry{{Item: item, Quantity: 3}},
		TotalPrice: decimal.NewFromInt(15),
	})
	if cart.Items[0].Quantity != 3 {
		t.Fatalf("expected entry quantity 3, got %d", cart.Items[0].Quantity)
	}
}

func TestNormalizeEmptyPayload(t *testing.T) {
	cart := normalize(wireCart{})
	if cart.Items == nil || len(cart.Items) != 0 {
		t.Fatalf("expected empty non-nil items, got %#v", cart.Items)
	}
	if cart.TotalPrice != "0.00" {
		t.Fatalf("expected 0.00 total, got %q", cart.TotalPrice)
	}
}
