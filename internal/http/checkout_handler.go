package http

import (
	"encoding/json"
	"net/http"

	"github.com/Arshadkhan96/Market-Max/internal/domain"
	"github.com/Arshadkhan96/Market-Max/internal/service"
	"github.com/go-chi/chi/v5"
)

type CheckoutHandler struct {
	checkouts *service.CheckoutService
	finalize  *service.FinalizeService
}

func NewCheckoutHandler(checkouts *service.CheckoutService, finalize *service.FinalizeService) *CheckoutHandler {
	return &CheckoutHandler{
		checkouts: checkouts,
		finalize:  finalize,
	}
}

type openCheckoutDTO struct {
	Items           []domain.LineItem      `json:"checkoutItems"`
	ShippingAddress domain.ShippingAddress `json:"shippingAddress"`
	PaymentMethod   domain.PaymentMethod   `json:"paymentMethod"`
	TotalPrice      float64                `json:"totalPrice"`
}

type payCheckoutDTO struct {
	PaymentStatus  string         `json:"paymentStatus"`
	PaymentDetails map[string]any `json:"paymentDetails"`
}

func (h *CheckoutHandler) Open(w http.ResponseWriter, r *http.Request) {
	claims := claimsFromContext(r.Context())

	var req openCheckoutDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	checkout, err := h.checkouts.Open(r.Context(), claims.UserID, service.OpenCheckoutInput{
		Items:           req.Items,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
		TotalPrice:      req.TotalPrice,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, checkout)
}

func (h *CheckoutHandler) Pay(w http.ResponseWriter, r *http.Request) {
	claims := claimsFromContext(r.Context())
	checkoutID := chi.URLParam(r, "id")

	var req payCheckoutDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	checkout, err := h.checkouts.ConfirmPayment(r.Context(), checkoutID, claims.UserID, req.PaymentStatus, req.PaymentDetails)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, checkout)
}

func (h *CheckoutHandler) Finalize(w http.ResponseWriter, r *http.Request) {
	claims := claimsFromContext(r.Context())
	checkoutID := chi.URLParam(r, "id")

	result, err := h.finalize.Finalize(r.Context(), checkoutID, claims.UserID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, result)
}
