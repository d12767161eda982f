package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/Arshadkhan96/Market-Max/internal/service"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			slog.Error("failed to encode response", "error", err)
		}
	}
}

func respondError(w http.ResponseWriter, status int, code, details string) {
	respondJSON(w, status, ErrorResponse{
		Error:   http.StatusText(status),
		Code:    code,
		Details: details,
	})
}

// respondServiceError maps the service error taxonomy onto HTTP statuses.
// Internal failures get a generic body; details stay in the server log.
func respondServiceError(w http.ResponseWriter, err error) {
	kind := service.KindOf(err)
	status := statusForKind(kind)

	if status == http.StatusInternalServerError {
		slog.Error("request failed", "error", err)
		respondError(w, status, string(service.KindInternal), "internal server error")
		return
	}

	respondError(w, status, string(kind), err.Error())
}

func statusForKind(kind service.Kind) int {
	switch kind {
	case service.KindNotFound, service.KindLineNotFound, service.KindProductNotFound:
		return http.StatusNotFound
	case service.KindForbidden:
		return http.StatusForbidden
	case service.KindAlreadyFinalized:
		return http.StatusConflict
	case service.KindInvalidOwner, service.KindUnknownProduct, service.KindEmptyCheckout,
		service.KindInvalidLineItem, service.KindInvalidPaymentStatus, service.KindValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
