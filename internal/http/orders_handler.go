package http

import (
	"encoding/json"
	"net/http"

	"github.com/Arshadkhan96/Market-Max/internal/domain"
	"github.com/Arshadkhan96/Market-Max/internal/service"
	"github.com/go-chi/chi/v5"
)

type OrdersHandler struct {
	orders *service.OrderService
}

func NewOrdersHandler(orders *service.OrderService) *OrdersHandler {
	return &OrdersHandler{orders: orders}
}

func (h *OrdersHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	claims := claimsFromContext(r.Context())

	orders, err := h.orders.ListForUser(r.Context(), claims.UserID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, orders)
}

func (h *OrdersHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims := claimsFromContext(r.Context())

	order, err := h.orders.Get(r.Context(), chi.URLParam(r, "id"), claims.UserID, claims.Role == "admin")
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, order)
}

// Admin endpoints.

func (h *OrdersHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.ListAll(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, orders)
}

type setStatusDTO struct {
	Status domain.OrderStatus `json:"status"`
}

func (h *OrdersHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	var req setStatusDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	order, err := h.orders.SetStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, order)
}

func (h *OrdersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.orders.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "order removed"})
}
