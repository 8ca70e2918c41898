package backend

import (
	"github.com/shopspring/decimal"

	"storefront-cart/internal/domain"
	"storefront-cart/internal/money"
)

// wireCart covers both shapes the server is known to send: the nested
// cart_items form of {item, quantity} pairs, and the already-flattened items
// form. Exactly one of the two lists is expected to be populated.
type wireCart struct {
	Items      []domain.CartItem `json:"items"`
	CartItems  []wireCartEntry   `json:"cart_items"`
	TotalPrice decimal.Decimal   `json:"total_price"`
}

type wireCartEntry struct {
	Item     domain.CartItem `json:"item"`
	Quantity int             `json:"quantity"`
}

// normalize collapses either wire shape into the local cart model. The nested
// form is flattened by copying each entry's item and overlaying the entry's
// quantity. Applied to every payload-bearing response, never inlined per call
// site.
func normalize(wire wireCart) *domain.Cart {
	items := wire.Items
	if len(wire.CartItems) > 0 {
		items = make([]domain.CartItem, 0, len(wire.CartItems))
		for _, entry := range wire.CartItems {
			item := entry.Item
			item.Quantity = entry.Quantity
			items = append(items, item)
		}
	}
	if items == nil {
		items = []domain.CartItem{}
	}
	return &domain.Cart{
		Items:      items,
		TotalPrice: money.FormatTotal(wire.TotalPrice),
	}
}
