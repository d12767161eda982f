package service

import (
	"strconv"
	"strings"

	"github.com/Arshadkhan96/Market-Max/internal/domain"
)

// gatewayStatusCompleted is what a successful capture looks like after
// normalization, regardless of which gateway produced the payload.
const gatewayStatusCompleted = "COMPLETED"

// NormalizePaymentDetails flattens a gateway callback payload into the
// canonical PaymentDetails shape. Field names vary by provider (PayPal
// nests amount under {value, currency_code}; others send flat fields), so
// everything is resolved here, once, at the boundary. The untouched
// payload is preserved in RawResponse for audit.
func NormalizePaymentDetails(payload map[string]any) *domain.PaymentDetails {
	if len(payload) == 0 {
		return nil
	}

	details := &domain.PaymentDetails{
		TransactionID: firstString(payload, "transactionId", "transaction_id", "id"),
		Gateway:       firstString(payload, "paymentGateway", "payment_gateway", "gateway"),
		Status:        strings.ToUpper(strings.TrimSpace(firstString(payload, "status"))),
		RawResponse:   payload,
	}

	switch amount := payload["amount"].(type) {
	case map[string]any:
		details.Amount = asFloat(amount["value"])
		details.Currency = firstString(amount, "currency_code", "currency")
	default:
		details.Amount = asFloat(amount)
	}
	if details.Currency == "" {
		details.Currency = firstString(payload, "currency", "currency_code")
	}

	return details
}

// paymentCompleted reports whether a normalized payload signals a
// successful capture.
func paymentCompleted(details *domain.PaymentDetails) bool {
	return details != nil && details.Status == gatewayStatusCompleted
}

func firstString(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if s, ok := m[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

func asFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}
