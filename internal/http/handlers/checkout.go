package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"paygate/internal/przelewy24"
	"paygate/internal/services/checkout"
)

// Checkout registers a transaction and returns the redirect link.
func Checkout(svc *checkout.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req checkout.Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad payload", http.StatusBadRequest)
			return
		}

		result, err := svc.Start(r.Context(), req)
		if err != nil {
			serviceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, result)
	}
}

// serviceError maps a service-layer failure onto the right status code:
// gateway rejections and transport failures are upstream problems (502),
// anything else is the caller's input.
func serviceError(w http.ResponseWriter, err error) {
	var apiErr *przelewy24.Error
	if errors.As(err, &apiErr) {
		if apiErr.HasGatewayCode() {
			writeJSON(w, http.StatusBadGateway, map[string]any{
				"error": apiErr.Message,
				"code":  apiErr.Code,
			})
			return
		}
		http.Error(w, "gateway unavailable", http.StatusBadGateway)
		return
	}
	http.Error(w, err.Error(), http.StatusBadRequest)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
