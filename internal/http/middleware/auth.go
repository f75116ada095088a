package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"paygate/internal/config"
)

// AdminAuth guards merchant-facing endpoints with the static admin token.
func AdminAuth(cfg config.Cfg) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg.Sec.AdminToken == "" {
				http.Error(w, "admin API disabled", http.StatusForbidden)
				return
			}
			token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
			if subtle.ConstantTimeCompare([]byte(token), []byte(cfg.Sec.AdminToken)) != 1 {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
