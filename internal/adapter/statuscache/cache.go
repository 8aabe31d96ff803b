package statuscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Key layouts, one namespace per concern.
const (
	keyDedup  = "dedup:webhook:%s"
	keyStatus = "order_status:%s"
)

var (
	TTLDedup  = 48 * time.Hour
	TTLStatus = 5 * time.Minute
)

// OrderState is the cached answer for UI status polling.
type OrderState struct {
	Status string `json:"status"`
	IsPaid bool   `json:"is_paid"`
}

// Store tracks processed webhook events and caches order state for polling.
type Store interface {
	// MarkEventProcessed records the event id and reports whether it was seen
	// for the first time.
	MarkEventProcessed(ctx context.Context, eventID string) (bool, error)
	// ClearEvent releases a recorded event id so a provider redelivery is
	// processed again.
	ClearEvent(ctx context.Context, eventID string) error
	SetOrderState(ctx context.Context, orderID string, state OrderState) error
	OrderState(ctx context.Context, orderID string) (*OrderState, error)
	InvalidateOrder(ctx context.Context, orderID string) error
}

// Cache implements Store on redis.
type Cache struct {
	rdb *redis.Client
}

// New connects a cache to the redis instance at addr.
func New(addr string) *Cache {
	return &Cache{rdb: redis.NewClient(&redis.Options{Addr: addr})}
}

func (c *Cache) MarkEventProcessed(ctx context.Context, eventID string) (bool, error) {
	return c.rdb.SetNX(ctx, fmt.Sprintf(keyDedup, eventID), 1, TTLDedup).Result()
}

func (c *Cache) ClearEvent(ctx context.Context, eventID string) error {
	return c.rdb.Del(ctx, fmt.Sprintf(keyDedup, eventID)).Err()
}

func (c *Cache) SetOrderState(ctx context.Context, orderID string, state OrderState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, fmt.Sprintf(keyStatus, orderID), raw, TTLStatus).Err()
}

// OrderState returns the cached state, or nil on a cache miss.
func (c *Cache) OrderState(ctx context.Context, orderID string) (*OrderState, error) {
	raw, err := c.rdb.Get(ctx, fmt.Sprintf(keyStatus, orderID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	var state OrderState
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

func (c *Cache) InvalidateOrder(ctx context.Context, orderID string) error {
	return c.rdb.Del(ctx, fmt.Sprintf(keyStatus, orderID)).Err()
}

// Ping verifies connectivity.
func (c *Cache) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// Close releases the redis connection.
func (c *Cache) Close() error {
	return c.rdb.Close()
}
