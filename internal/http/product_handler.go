package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/Arshadkhan96/Market-Max/internal/domain"
	"github.com/Arshadkhan96/Market-Max/internal/repository"
	"github.com/go-chi/chi/v5"
)

type ProductHandler struct {
	products repository.ProductRepository
}

func NewProductHandler(products repository.ProductRepository) *ProductHandler {
	return &ProductHandler{products: products}
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := repository.ProductFilter{
		Category: q.Get("category"),
		Size:     q.Get("size"),
		Color:    q.Get("color"),
		Search:   q.Get("search"),
		SortBy:   q.Get("sortBy"),
	}
	filter.MinPrice, _ = strconv.ParseFloat(q.Get("minPrice"), 64)
	filter.MaxPrice, _ = strconv.ParseFloat(q.Get("maxPrice"), 64)
	filter.Limit, _ = strconv.ParseInt(q.Get("limit"), 10, 64)

	products, err := h.products.List(r.Context(), filter)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if products == nil {
		products = []domain.Product{}
	}

	respondJSON(w, http.StatusOK, products)
}

// BestSeller returns the single highest-rated product.
func (h *ProductHandler) BestSeller(w http.ResponseWriter, r *http.Request) {
	product, err := h.products.BestSeller(r.Context())
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			respondError(w, http.StatusNotFound, "product_not_found", "no best seller found")
			return
		}
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, product)
}

// NewArrivals returns the eight most recently created products.
func (h *ProductHandler) NewArrivals(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.List(r.Context(), repository.ProductFilter{Limit: 8})
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if products == nil {
		products = []domain.Product{}
	}

	respondJSON(w, http.StatusOK, products)
}

// Similar returns up to four products sharing the given product's category.
func (h *ProductHandler) Similar(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.FindSimilar(r.Context(), chi.URLParam(r, "id"), 4)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			respondError(w, http.StatusNotFound, "product_not_found", "product not found")
			return
		}
		respondServiceError(w, err)
		return
	}
	if products == nil {
		products = []domain.Product{}
	}

	respondJSON(w, http.StatusOK, products)
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	product, err := h.products.FindByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			respondError(w, http.StatusNotFound, "product_not_found", "product not found")
			return
		}
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var product domain.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if product.Name == "" || product.Price < 0 {
		respondError(w, http.StatusBadRequest, "invalid_request", "name is required and price must not be negative")
		return
	}

	if err := h.products.Insert(r.Context(), &product); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, product)
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	var product domain.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	product.ID = chi.URLParam(r, "id")

	if err := h.products.Update(r.Context(), &product); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			respondError(w, http.StatusNotFound, "product_not_found", "product not found")
			return
		}
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.products.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			respondError(w, http.StatusNotFound, "product_not_found", "product not found")
			return
		}
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "product removed"})
}
