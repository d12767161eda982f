package http

import (
	"encoding/json"
	"net/http"

	"github.com/Arshadkhan96/Market-Max/internal/domain"
	"github.com/Arshadkhan96/Market-Max/internal/service"
	"github.com/go-chi/chi/v5"
)

type CartHandler struct {
	carts *service.CartService
}

func NewCartHandler(carts *service.CartService) *CartHandler {
	return &CartHandler{carts: carts}
}

type cartItemRequestDTO struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
	Size      string `json:"size,omitempty"`
	Color     string `json:"color,omitempty"`
	UserID    string `json:"userId,omitempty"`
	GuestID   string `json:"guestId,omitempty"`
}

func (d cartItemRequestDTO) owner() domain.OwnerKey {
	return domain.OwnerKey{UserID: d.UserID, GuestID: d.GuestID}
}

func ownerFromQuery(r *http.Request) domain.OwnerKey {
	return domain.OwnerKey{
		UserID:  r.URL.Query().Get("userId"),
		GuestID: r.URL.Query().Get("guestId"),
	}
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	cart, err := h.carts.Resolve(r.Context(), ownerFromQuery(r))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, cart)
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req cartItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	cart, err := h.carts.AddItem(r.Context(), req.owner(), req.ProductID, req.Quantity, req.Size, req.Color)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, cart)
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	var req cartItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	cart, err := h.carts.UpdateQuantity(r.Context(), req.owner(), req.ProductID, req.Quantity, req.Size, req.Color)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, cart)
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")
	if productID == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "productId is required")
		return
	}
	q := r.URL.Query()

	cart, err := h.carts.RemoveItem(r.Context(), ownerFromQuery(r), productID, q.Get("size"), q.Get("color"))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, cart)
}
