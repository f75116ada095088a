package handlers

import (
	"context"
	"io"
	"net"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"paygate/internal/przelewy24"
	"paygate/internal/services/notify"
)

// NotificationVerifier is the signature-checking slice of the gateway
// client.
type NotificationVerifier interface {
	VerifyNotification(n przelewy24.TransactionNotification) bool
	VerifyCardNotification(n przelewy24.CardNotification) bool
}

// Deduper suppresses redeliveries of callbacks that were already accepted.
// Release undoes a claim whose delivery could not be persisted, so the
// gateway's redelivery is not drained unstored.
type Deduper interface {
	FirstDelivery(ctx context.Context, kind, sessionID string, orderID int64) bool
	Release(ctx context.Context, kind, sessionID string, orderID int64)
}

// NotificationStore persists accepted callbacks for the settlement worker.
type NotificationStore interface {
	Save(ctx context.Context, kind, sessionID string, orderID int64, raw []byte) (int64, error)
}

// P24StatusWebhook accepts transaction status callbacks. The source IP
// check is defense in depth only; the signature decides authenticity.
// trustProxy controls whether X-Forwarded-For is consulted; leave it off
// unless a trusted reverse proxy terminates the connection.
func P24StatusWebhook(verifier NotificationVerifier, dedup Deduper, store NotificationStore, trustProxy bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !sourceIPAllowed(r, trustProxy) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "bad payload", http.StatusBadRequest)
			return
		}
		notif, err := przelewy24.ParseTransactionNotification(body)
		if err != nil {
			http.Error(w, "bad payload", http.StatusBadRequest)
			return
		}

		if !verifier.VerifyNotification(notif) {
			log.Warn().
				Str("session_id", notif.SessionID).
				Int("order_id", notif.OrderID).
				Msg("transaction notification failed signature verification")
			http.Error(w, "invalid signature", http.StatusBadRequest)
			return
		}

		if !dedup.FirstDelivery(r.Context(), notify.KindTransaction, notif.SessionID, int64(notif.OrderID)) {
			okResponse(w)
			return
		}

		if _, err := store.Save(r.Context(), notify.KindTransaction, notif.SessionID, int64(notif.OrderID), body); err != nil {
			// Give the claim back so the gateway's redelivery is stored.
			dedup.Release(r.Context(), notify.KindTransaction, notif.SessionID, int64(notif.OrderID))
			http.Error(w, "save failed", http.StatusInternalServerError)
			return
		}
		okResponse(w)
	}
}

// P24CardWebhook accepts card payment callbacks, both the success and the
// failure shape.
func P24CardWebhook(verifier NotificationVerifier, dedup Deduper, store NotificationStore, trustProxy bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !sourceIPAllowed(r, trustProxy) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "bad payload", http.StatusBadRequest)
			return
		}
		notif, err := przelewy24.ParseCardNotification(body)
		if err != nil {
			http.Error(w, "bad payload", http.StatusBadRequest)
			return
		}

		if !verifier.VerifyCardNotification(notif) {
			log.Warn().
				Str("session_id", notif.SessionID()).
				Int("order_id", notif.OrderID()).
				Msg("card notification failed signature verification")
			http.Error(w, "invalid signature", http.StatusBadRequest)
			return
		}

		if !dedup.FirstDelivery(r.Context(), notify.KindCard, notif.SessionID(), int64(notif.OrderID())) {
			okResponse(w)
			return
		}

		if _, err := store.Save(r.Context(), notify.KindCard, notif.SessionID(), int64(notif.OrderID()), body); err != nil {
			dedup.Release(r.Context(), notify.KindCard, notif.SessionID(), int64(notif.OrderID()))
			http.Error(w, "save failed", http.StatusInternalServerError)
			return
		}
		okResponse(w)
	}
}

func okResponse(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

func sourceIPAllowed(r *http.Request, trustProxy bool) bool {
	ip := clientIP(r, trustProxy)
	if przelewy24.IsGatewayIP(ip) {
		return true
	}
	log.Warn().Str("ip", ip).Msg("callback from unlisted source address")
	return false
}

// clientIP returns the peer address. X-Forwarded-For is forgeable by any
// direct caller, so it is only honored behind a trusted proxy.
func clientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
			parts := strings.Split(fwd, ",")
			return strings.TrimSpace(parts[0])
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
