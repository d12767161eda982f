package domain

import "time"

type OrderStatus string

const (
	OrderStatusProcessing OrderStatus = "Processing"
	OrderStatusShipped    OrderStatus = "Shipped"
	OrderStatusDelivered  OrderStatus = "Delivered"
	OrderStatusCancelled  OrderStatus = "Cancelled"
	OrderStatusReturned   OrderStatus = "Returned"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered,
		OrderStatusCancelled, OrderStatusReturned:
		return true
	}
	return false
}

// String representation (for logging)
func (s OrderStatus) String() string {
	return string(s)
}

// Order is created exactly once, atomically, from a finalized checkout.
// After that only administrative status transitions touch it.
type Order struct {
	ID              string          `bson:"_id,omitempty" json:"id"`
	UserID          string          `bson:"user_id" json:"userId"`
	OrderItems      []LineItem      `bson:"order_items" json:"orderItems"`
	ShippingAddress ShippingAddress `bson:"shipping_address" json:"shippingAddress"`
	PaymentMethod   PaymentMethod   `bson:"payment_method" json:"paymentMethod"`
	PaymentDetails  *PaymentDetails `bson:"payment_details,omitempty" json:"paymentDetails,omitempty"`
	TotalPrice      float64         `bson:"total_price" json:"totalPrice"`
	IsPaid          bool            `bson:"is_paid" json:"isPaid"`
	PaidAt          *time.Time      `bson:"paid_at,omitempty" json:"paidAt,omitempty"`
	IsDelivered     bool            `bson:"is_delivered" json:"isDelivered"`
	DeliveredAt     *time.Time      `bson:"delivered_at,omitempty" json:"deliveredAt,omitempty"`
	PaymentStatus   PaymentStatus   `bson:"payment_status" json:"paymentStatus"`
	Status          OrderStatus     `bson:"status" json:"status"`
	CreatedAt       time.Time       `bson:"created_at" json:"createdAt"`
	UpdatedAt       time.Time       `bson:"updated_at" json:"updatedAt"`
}
