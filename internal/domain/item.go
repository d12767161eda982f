package domain

import "time"

// LineItem is one entry in a cart, checkout snapshot or order: a product
// plus the chosen variant and quantity. Name, image and price are
// denormalized from the catalog at the time the line is created.
type LineItem struct {
	ProductID string    `bson:"product_id" json:"productId"`
	Name      string    `bson:"name" json:"name"`
	Image     string    `bson:"image" json:"image"`
	Price     float64   `bson:"price" json:"price"`
	Quantity  int       `bson:"quantity" json:"quantity"`
	Size      string    `bson:"size,omitempty" json:"size,omitempty"`
	Color     string    `bson:"color,omitempty" json:"color,omitempty"`
	AddedAt   time.Time `bson:"added_at,omitempty" json:"addedAt,omitempty"`
}

// SameLine reports whether this line matches the (product, size, color)
// identity key. An empty size or color only matches lines that also have
// none set.
func (li LineItem) SameLine(productID, size, color string) bool {
	return li.ProductID == productID && li.Size == size && li.Color == color
}

// Subtotal is the line's contribution to the owning document's total.
func (li LineItem) Subtotal() float64 {
	return li.Price * float64(li.Quantity)
}
