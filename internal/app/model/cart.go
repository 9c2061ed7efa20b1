package model

import "time"

// CartSchemaVersion tags persisted cart snapshots so a future layout
// change can discard stale payloads instead of misreading them.
const CartSchemaVersion = 1

// CartProductSnapshot captures the product fields a cart line needs.
// Snapshots, not live references: a price edit after the item was added
// does not reprice lines already in the cart.
type CartProductSnapshot struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	BasePrice   float64 `json:"base_price"`
	LegacyPrice float64 `json:"price"`
	ImageURL    string  `json:"image_url"`
}

type CartVariantSnapshot struct {
	ID    uint    `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// CartItem is one cart line. Identity for merging is
// (Product.ID, Variant.ID), where a nil variant is its own identity.
type CartItem struct {
	Product  CartProductSnapshot  `json:"product"`
	Variant  *CartVariantSnapshot `json:"variant,omitempty"`
	Quantity int                  `json:"quantity"`
}

// Matches reports whether the line has the given identity.
func (i *CartItem) Matches(productID uint, variantID *uint) bool {
	if i.Product.ID != productID {
		return false
	}
	if i.Variant == nil {
		return variantID == nil
	}
	return variantID != nil && i.Variant.ID == *variantID
}

// UnitPrice resolves the charged price for one unit: variant price, else
// base price, else legacy flat price, else 0. Must equal the price the
// product views display for the same line.
func (i *CartItem) UnitPrice() float64 {
	if i.Variant != nil {
		return i.Variant.Price
	}
	if i.Product.BasePrice > 0 {
		return i.Product.BasePrice
	}
	if i.Product.LegacyPrice > 0 {
		return i.Product.LegacyPrice
	}
	return 0
}

// Cart is an ordered list of lines owned by one guest token. It lives in
// process memory for the client's session; totals are never stored,
// always recomputed from the lines.
type Cart struct {
	Token         string     `json:"token"`
	SchemaVersion int        `json:"schema_version"`
	Items         []CartItem `json:"items"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// ItemCount is the sum of line quantities.
func (c *Cart) ItemCount() int {
	count := 0
	for i := range c.Items {
		count += c.Items[i].Quantity
	}
	return count
}

// Total is the sum of unit price times quantity over all lines.
func (c *Cart) Total() float64 {
	total := 0.0
	for i := range c.Items {
		total += c.Items[i].UnitPrice() * float64(c.Items[i].Quantity)
	}
	return total
}

// NewCartProductSnapshot freezes the cart-relevant product fields.
func NewCartProductSnapshot(p *Product) CartProductSnapshot {
	return CartProductSnapshot{
		ID:          p.ID,
		Name:        p.Name,
		BasePrice:   p.BasePrice,
		LegacyPrice: p.LegacyPrice,
		ImageURL:    p.PrimaryImageURL(),
	}
}

// NewCartVariantSnapshot freezes the cart-relevant variant fields.
func NewCartVariantSnapshot(v *ProductVariant) *CartVariantSnapshot {
	if v == nil {
		return nil
	}
	return &CartVariantSnapshot{
		ID:    v.ID,
		Name:  v.VariantName,
		Price: v.Price,
	}
}
