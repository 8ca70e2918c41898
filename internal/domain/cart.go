package domain

import "github.com/shopspring/decimal"

// CartItem is a single line in the active cart or the saved-for-later list.
// Price and MRP are unit amounts in currency-agnostic decimal units; MRP is
// the list price and is trusted to be >= Price (server input, not validated).
type CartItem struct {
	ID           string          `json:"id"`
	Name         string          `json:"item_name"`
	Manufacturer string          `json:"manufacturer,omitempty"`
	ImageURLs    []string        `json:"image_urls,omitempty"`
	Price        decimal.Decimal `json:"price"`
	MRP          decimal.Decimal `json:"mrp"`
	Quantity     int             `json:"quantity"`
}

// Cart is the active, checkout-bound collection. TotalPrice is a denormalized
// subtotal formatted to two decimal places; local mutations must keep it equal
// to the sum of price*quantity over Items. A nil *Cart means no cart has been
// fetched yet.
type Cart struct {
	Items      []CartItem `json:"items"`
	TotalPrice string     `json:"total_price"`
}

// Clone returns a deep copy so callers can hand out snapshots without
// exposing internal slices.
func (c *Cart) Clone() *Cart {
	if c == nil {
		return nil
	}
	out := &Cart{TotalPrice: c.TotalPrice}
	if c.Items != nil {
		out.Items = CloneItems(c.Items)
	}
	return out
}

// CloneItems copies a line-item slice, including each item's image list.
func CloneItems(items []CartItem) []CartItem {
	out := make([]CartItem, len(items))
	copy(out, items)
	for i := range out {
		if out[i].ImageURLs != nil {
			urls := make([]string, len(out[i].ImageURLs))
			copy(urls, out[i].ImageURLs)
			out[i].ImageURLs = urls
		}
	}
	return out
}
