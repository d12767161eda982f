package domain

import "time"

// Cart belongs to exactly one owner: an authenticated user or an anonymous
// guest session. TotalPrice is derived from the items and recomputed after
// every mutation, never stored independently of them.
type Cart struct {
	ID         string     `bson:"_id,omitempty" json:"id"`
	UserID     string     `bson:"user_id,omitempty" json:"userId,omitempty"`
	GuestID    string     `bson:"guest_id,omitempty" json:"guestId,omitempty"`
	Items      []LineItem `bson:"items" json:"items"`
	TotalPrice float64    `bson:"total_price" json:"totalPrice"`
	CreatedAt  time.Time  `bson:"created_at" json:"createdAt"`
	UpdatedAt  time.Time  `bson:"updated_at" json:"updatedAt"`
}

// OwnerKey identifies the cart owner. Exactly one of UserID / GuestID must
// be set.
type OwnerKey struct {
	UserID  string
	GuestID string
}

func (k OwnerKey) Valid() bool {
	return (k.UserID != "") != (k.GuestID != "")
}

// String returns a stable cache/serialization key for the owner.
func (k OwnerKey) String() string {
	if k.UserID != "" {
		return "user:" + k.UserID
	}
	return "guest:" + k.GuestID
}

// RecalcTotal recomputes TotalPrice as the sum of line subtotals.
func (c *Cart) RecalcTotal() {
	var total float64
	for _, it := range c.Items {
		total += it.Subtotal()
	}
	c.TotalPrice = total
}

// FindLine returns the index of the line matching the identity key, or -1.
func (c *Cart) FindLine(productID, size, color string) int {
	for i, it := range c.Items {
		if it.SameLine(productID, size, color) {
			return i
		}
	}
	return -1
}
