package handlers

import (
	"context"
	"net/http"

	"paygate/internal/przelewy24"
)

// MethodsGateway is the slice of the gateway client the listing needs.
type MethodsGateway interface {
	PaymentMethods(ctx context.Context, lang string, opts *przelewy24.PaymentMethodsOptions) ([]przelewy24.PaymentMethod, error)
}

// MethodsCache is implemented by the redis cache; a nil-returning Get is a
// miss.
type MethodsCache interface {
	GetPaymentMethods(ctx context.Context, lang string, amount int, currency string) []przelewy24.PaymentMethod
	SetPaymentMethods(ctx context.Context, lang string, amount int, currency string, methods []przelewy24.PaymentMethod)
}

// PaymentMethods proxies the gateway's method listing with a short-lived
// cache in front.
func PaymentMethods(gateway MethodsGateway, cache MethodsCache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lang := r.URL.Query().Get("lang")
		if lang == "" {
			lang = "pl"
		}
		currency := r.URL.Query().Get("currency")
		amount := queryInt(r, "amount", 0)

		if cache != nil {
			if methods := cache.GetPaymentMethods(r.Context(), lang, amount, currency); methods != nil {
				writeJSON(w, http.StatusOK, methods)
				return
			}
		}

		var opts *przelewy24.PaymentMethodsOptions
		if currency != "" || amount > 0 {
			opts = &przelewy24.PaymentMethodsOptions{Amount: amount, Currency: currency}
		}
		methods, err := gateway.PaymentMethods(r.Context(), lang, opts)
		if err != nil {
			http.Error(w, "gateway unavailable", http.StatusBadGateway)
			return
		}
		if cache != nil {
			cache.SetPaymentMethods(r.Context(), lang, amount, currency, methods)
		}
		writeJSON(w, http.StatusOK, methods)
	}
}
