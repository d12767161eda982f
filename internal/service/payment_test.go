package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePaymentDetails_FlatPayload(t *testing.T) {
	details := NormalizePaymentDetails(map[string]any{
		"transactionId":  "TXN-42",
		"paymentGateway": "stripe",
		"amount":         199.99,
		"currency":       "EUR",
		"status":         "succeeded",
	})

	require.NotNil(t, details)
	assert.Equal(t, "TXN-42", details.TransactionID)
	assert.Equal(t, "stripe", details.Gateway)
	assert.Equal(t, 199.99, details.Amount)
	assert.Equal(t, "EUR", details.Currency)
	assert.Equal(t, "SUCCEEDED", details.Status)
}

func TestNormalizePaymentDetails_PaypalNestedAmount(t *testing.T) {
	payload := map[string]any{
		"id":     "5O190127TN364715T",
		"status": "completed",
		"amount": map[string]any{
			"value":         "200.00",
			"currency_code": "USD",
		},
		"payer": map[string]any{"email_address": "buyer@example.com"},
	}

	details := NormalizePaymentDetails(payload)

	require.NotNil(t, details)
	assert.Equal(t, "5O190127TN364715T", details.TransactionID)
	assert.Equal(t, 200.0, details.Amount)
	assert.Equal(t, "USD", details.Currency)
	assert.Equal(t, "COMPLETED", details.Status)
	// unrecognized fields survive in the raw payload
	assert.Contains(t, details.RawResponse, "payer")
}

func TestNormalizePaymentDetails_EmptyPayload(t *testing.T) {
	assert.Nil(t, NormalizePaymentDetails(nil))
	assert.Nil(t, NormalizePaymentDetails(map[string]any{}))
}

func TestPaymentCompleted(t *testing.T) {
	assert.False(t, paymentCompleted(nil))
	assert.False(t, paymentCompleted(NormalizePaymentDetails(map[string]any{"status": "PENDING"})))
	assert.True(t, paymentCompleted(NormalizePaymentDetails(map[string]any{"status": "Completed"})))
}

func TestAsFloat(t *testing.T) {
	assert.Equal(t, 10.5, asFloat(10.5))
	assert.Equal(t, 10.0, asFloat(10))
	assert.Equal(t, 99.9, asFloat("99.9"))
	assert.Zero(t, asFloat("not a number"))
	assert.Zero(t, asFloat(nil))
}
