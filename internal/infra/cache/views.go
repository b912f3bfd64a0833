package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ViewCache holds display projections keyed by logical query identity.
// Entries carry a TTL so a lost invalidation event only delays freshness
// instead of serving stale data forever.
type ViewCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewViewCache(rdb *redis.Client, ttl time.Duration) *ViewCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &ViewCache{rdb: rdb, ttl: ttl}
}

// OpenRedis initializes the client and validates connectivity via PING.
func OpenRedis(ctx context.Context, addr string) (*redis.Client, error) {
	if addr == "" {
		return nil, fmt.Errorf("redis addr is required")
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  3 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return rdb, nil
}

func ContactsKey(userID string) string      { return "views:contacts:" + userID }
func BoardKey(userID string) string         { return "views:board:" + userID }
func UpcomingCallsKey(userID string) string { return "views:upcoming_calls:" + userID }
func InboundEmailsKey(userID string) string { return "views:inbound_emails:" + userID }
func ContactKey(contactID string) string    { return "views:contact:" + contactID }

// GetJSON reports whether the key was present and, if so, decodes into dest.
func (c *ViewCache) GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (c *ViewCache) SetJSON(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key, raw, c.ttl).Err()
}

// InvalidateContactViews drops every view a contact mutation can touch:
// the per-user list and board, the per-contact entry, and the upcoming-calls
// projection.
func (c *ViewCache) InvalidateContactViews(ctx context.Context, userID, contactID string) error {
	keys := []string{
		ContactsKey(userID),
		BoardKey(userID),
		UpcomingCallsKey(userID),
		InboundEmailsKey(userID),
	}
	if contactID != "" {
		keys = append(keys, ContactKey(contactID))
	}
	return c.rdb.Del(ctx, keys...).Err()
}
