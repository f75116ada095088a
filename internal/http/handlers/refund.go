package handlers

import (
	"encoding/json"
	"net/http"

	"paygate/internal/services/checkout"
)

// Refund submits a refund for a confirmed payment.
func Refund(svc *checkout.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req checkout.RefundRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad payload", http.StatusBadRequest)
			return
		}

		outcome, err := svc.Refund(r.Context(), req)
		if err != nil {
			serviceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, outcome)
	}
}
