package handlers

import (
	"net/http"
	"strconv"

	"paygate/internal/store/repositories"
)

// ListPayments returns stored payment attempts, newest first.
func ListPayments(payments repositories.PaymentRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := queryInt(r, "limit", 50)
		if limit > 200 {
			limit = 200
		}
		offset := queryInt(r, "offset", 0)

		rows, err := payments.List(r.Context(), limit, offset)
		if err != nil {
			http.Error(w, "list failed", http.StatusInternalServerError)
			return
		}
		type row struct {
			SessionID string `json:"sessionId"`
			OrderID   int64  `json:"orderId,omitempty"`
			Amount    int64  `json:"amount"`
			Currency  string `json:"currency"`
			Status    string `json:"status"`
		}
		out := make([]row, 0, len(rows))
		for _, p := range rows {
			out = append(out, row{
				SessionID: p.SessionID,
				OrderID:   p.OrderID,
				Amount:    int64(p.Amount),
				Currency:  string(p.Currency),
				Status:    string(p.Status),
			})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func queryInt(r *http.Request, name string, def int) int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return def
	}
	return n
}
