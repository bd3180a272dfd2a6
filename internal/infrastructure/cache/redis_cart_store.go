package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shop/backend/internal/domain/cart"
)

// DefaultCartKeyPrefix namespaces cart keys
const DefaultCartKeyPrefix = "shop:cart:"

// RedisCartStore keeps carts as JSON documents that expire after ttl of
// inactivity
type RedisCartStore struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

// NewRedisCartStore creates a cart store on an existing client
func NewRedisCartStore(client *redis.Client, keyPrefix string, ttl time.Duration) *RedisCartStore {
	if keyPrefix == "" {
		keyPrefix = DefaultCartKeyPrefix
	}
	return &RedisCartStore{client: client, keyPrefix: keyPrefix, ttl: ttl}
}

// GetCart loads the cart, returning an empty one when the key is missing
func (s *RedisCartStore) GetCart(ctx context.Context, id string) (*cart.Cart, error) {
	data, err := s.client.Get(ctx, s.keyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return cart.New(id), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	return decodeCart(id, data)
}

// SaveCart stores the cart and refreshes its expiry
func (s *RedisCartStore) SaveCart(ctx context.Context, c *cart.Cart) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}
	if err := s.client.Set(ctx, s.keyPrefix+c.ID, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}

// ClearCart deletes the cart
func (s *RedisCartStore) ClearCart(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, s.keyPrefix+id).Err(); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

func decodeCart(id string, data []byte) (*cart.Cart, error) {
	c := cart.New(id)
	if err := json.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("failed to decode cart %s: %w", id, err)
	}
	c.ID = id
	if c.Items == nil {
		c.Items = make([]cart.Item, 0)
	}
	return c, nil
}

var _ cart.Repository = (*RedisCartStore)(nil)
