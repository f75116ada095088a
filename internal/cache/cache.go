package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"paygate/internal/przelewy24"
)

// Cache wraps redis for the two hot paths: the payment-methods listing
// (slow gateway call, rarely changes) and notification de-duplication
// (the gateway redelivers callbacks until it sees a 200).
type Cache struct {
	rdb *redis.Client
}

func New(addr string) *Cache {
	return &Cache{rdb: redis.NewClient(&redis.Options{Addr: addr})}
}

func (c *Cache) Close() error { return c.rdb.Close() }

const (
	methodsTTL = 10 * time.Minute
	dedupTTL   = 24 * time.Hour
)

func methodsKey(lang string, amount int, currency string) string {
	return fmt.Sprintf("p24:methods:%s:%d:%s", lang, amount, currency)
}

// GetPaymentMethods returns a cached listing, or nil on miss. Cache errors
// are logged and treated as misses.
func (c *Cache) GetPaymentMethods(ctx context.Context, lang string, amount int, currency string) []przelewy24.PaymentMethod {
	raw, err := c.rdb.Get(ctx, methodsKey(lang, amount, currency)).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Warn().Err(err).Msg("payment methods cache read failed")
		}
		return nil
	}
	var methods []przelewy24.PaymentMethod
	if err := json.Unmarshal(raw, &methods); err != nil {
		return nil
	}
	return methods
}

func (c *Cache) SetPaymentMethods(ctx context.Context, lang string, amount int, currency string, methods []przelewy24.PaymentMethod) {
	raw, err := json.Marshal(methods)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, methodsKey(lang, amount, currency), raw, methodsTTL).Err(); err != nil {
		log.Warn().Err(err).Msg("payment methods cache write failed")
	}
}

// FirstDelivery reports whether this is the first time the given callback
// has been seen. On redis failure it errs on the side of accepting the
// delivery; the settlement path is idempotent anyway.
func (c *Cache) FirstDelivery(ctx context.Context, kind, sessionID string, orderID int64) bool {
	ok, err := c.rdb.SetNX(ctx, dedupKey(kind, sessionID, orderID), 1, dedupTTL).Result()
	if err != nil {
		log.Warn().Err(err).Msg("notification dedup check failed")
		return true
	}
	return ok
}

// Release drops a claim taken by FirstDelivery when the delivery could not
// be persisted, so the gateway's redelivery gets stored instead of drained.
func (c *Cache) Release(ctx context.Context, kind, sessionID string, orderID int64) {
	if err := c.rdb.Del(ctx, dedupKey(kind, sessionID, orderID)).Err(); err != nil {
		log.Warn().Err(err).Msg("notification dedup release failed")
	}
}

func dedupKey(kind, sessionID string, orderID int64) string {
	return fmt.Sprintf("p24:notif:%s:%s:%d", kind, sessionID, orderID)
}
