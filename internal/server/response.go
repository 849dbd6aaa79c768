package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/koso-app/koso/internal/ledger"
	"github.com/koso-app/koso/internal/store"
)

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// WriteError writes an error response.
func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, map[string]string{"error": message})
}

// statusFor maps service errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, ledger.ErrInvalidAmount),
		errors.Is(err, ledger.ErrInvalidMethod),
		errors.Is(err, ledger.ErrInvalidTarget):
		return http.StatusBadRequest
	case errors.Is(err, ledger.ErrGoalNotFound),
		errors.Is(err, store.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, ledger.ErrInsufficientFunds),
		errors.Is(err, ledger.ErrGoalExists):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
