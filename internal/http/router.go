package httpx

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"paygate/internal/config"
	"paygate/internal/http/handlers"
	middlewarex "paygate/internal/http/middleware"
	"paygate/internal/services/checkout"
	"paygate/internal/store/repositories"
)

// RouterDependencies holds everything the HTTP surface needs.
type RouterDependencies struct {
	Config        config.Cfg
	Checkout      *checkout.Service
	Payments      repositories.PaymentRepository
	Gateway       handlers.MethodsGateway
	Verifier      handlers.NotificationVerifier
	Dedup         handlers.Deduper
	Notifications handlers.NotificationStore
	MethodsCache  handlers.MethodsCache
}

// NewRouter builds the HTTP router.
func NewRouter(deps RouterDependencies) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	// Merchant API (admin-token guarded)
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middlewarex.AdminAuth(deps.Config))

		r.Post("/checkout", handlers.Checkout(deps.Checkout))
		r.Post("/refund", handlers.Refund(deps.Checkout))
		r.Get("/payments", handlers.ListPayments(deps.Payments))
		r.Get("/payment-methods", handlers.PaymentMethods(deps.Gateway, deps.MethodsCache))
	})

	// Gateway callbacks (public; authenticated by signature + IP list)
	r.Route("/webhooks/p24", func(r chi.Router) {
		r.Post("/status", handlers.P24StatusWebhook(deps.Verifier, deps.Dedup, deps.Notifications, deps.Config.Sec.TrustProxy))
		r.Post("/card", handlers.P24CardWebhook(deps.Verifier, deps.Dedup, deps.Notifications, deps.Config.Sec.TrustProxy))
	})

	return r
}
