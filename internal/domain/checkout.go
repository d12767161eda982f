package domain

import "time"

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

func (s PaymentStatus) String() string {
	return string(s)
}

type PaymentMethod string

const (
	PaymentMethodPaypal       PaymentMethod = "Paypal"
	PaymentMethodCreditCard   PaymentMethod = "Credit Card"
	PaymentMethodBankTransfer PaymentMethod = "Bank Transfer"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodPaypal, PaymentMethodCreditCard, PaymentMethodBankTransfer:
		return true
	}
	return false
}

type ShippingAddress struct {
	Address    string `bson:"address" json:"address"`
	City       string `bson:"city" json:"city"`
	PostalCode string `bson:"postal_code" json:"postalCode"`
	Country    string `bson:"country" json:"country"`
}

// Complete reports whether all four address fields are present.
func (a ShippingAddress) Complete() bool {
	return a.Address != "" && a.City != "" && a.PostalCode != "" && a.Country != ""
}

// PaymentDetails is the canonical shape gateway callbacks are normalized
// into at the boundary. RawResponse keeps the original payload for audit;
// application logic never branches on it.
type PaymentDetails struct {
	TransactionID string         `bson:"transaction_id,omitempty" json:"transactionId,omitempty"`
	Gateway       string         `bson:"gateway,omitempty" json:"gateway,omitempty"`
	Amount        float64        `bson:"amount,omitempty" json:"amount,omitempty"`
	Currency      string         `bson:"currency,omitempty" json:"currency,omitempty"`
	Status        string         `bson:"status,omitempty" json:"status,omitempty"`
	RawResponse   map[string]any `bson:"raw_response,omitempty" json:"rawResponse,omitempty"`
}

// Checkout is the staging record created from a cart snapshot when payment
// starts. It tracks payment state independently of the cart and is kept as
// an audit trail after finalization; IsFinalized is terminal.
type Checkout struct {
	ID              string          `bson:"_id,omitempty" json:"id"`
	UserID          string          `bson:"user_id" json:"userId"`
	Items           []LineItem      `bson:"items" json:"items"`
	ShippingAddress ShippingAddress `bson:"shipping_address" json:"shippingAddress"`
	PaymentMethod   PaymentMethod   `bson:"payment_method" json:"paymentMethod"`
	TotalPrice      float64         `bson:"total_price" json:"totalPrice"`
	IsPaid          bool            `bson:"is_paid" json:"isPaid"`
	PaidAt          *time.Time      `bson:"paid_at,omitempty" json:"paidAt,omitempty"`
	PaymentStatus   PaymentStatus   `bson:"payment_status" json:"paymentStatus"`
	PaymentDetails  *PaymentDetails `bson:"payment_details,omitempty" json:"paymentDetails,omitempty"`
	IsFinalized     bool            `bson:"is_finalized" json:"isFinalized"`
	FinalizedAt     *time.Time      `bson:"finalized_at,omitempty" json:"finalizedAt,omitempty"`
	CreatedAt       time.Time       `bson:"created_at" json:"createdAt"`
	UpdatedAt       time.Time       `bson:"updated_at" json:"updatedAt"`
}
