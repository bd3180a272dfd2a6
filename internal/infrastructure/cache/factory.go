package cache

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/redis/go-redis/v9"
	"github.com/shop/backend/internal/domain/cart"
	"github.com/shop/backend/internal/domain/shared"
	"github.com/shop/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// Stores bundles the cart store and the idempotency store, both backed by
// the same Redis client when Redis is enabled
type Stores struct {
	Carts       cart.Repository
	Idempotency shared.IdempotencyStore
	Client      *redis.Client
}

// StoresOption configures NewStores
type StoresOption func(*storesOptions)

type storesOptions struct {
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// WithLogger sets the logger used to report the chosen backend
func WithLogger(logger *zap.Logger) StoresOption {
	return func(o *storesOptions) {
		o.logger = logger
	}
}

// WithInMemoryFallback controls whether an unreachable Redis falls back to
// in-memory stores. Defaults to true.
func WithInMemoryFallback(allow bool) StoresOption {
	return func(o *storesOptions) {
		o.allowInMemoryFallback = allow
	}
}

// NewStores creates the stores. With Redis disabled, or unreachable and
// fallback allowed, carts and idempotency keys live in process memory.
func NewStores(ctx context.Context, redisCfg config.RedisConfig, cartCfg config.CartConfig, opts ...StoresOption) (*Stores, error) {
	o := storesOptions{logger: zap.NewNop(), allowInMemoryFallback: true}
	for _, opt := range opts {
		opt(&o)
	}

	if redisCfg.Enabled {
		client, err := NewRedisClient(ctx, redisCfg)
		if err == nil {
			o.logger.Info("Using Redis for carts and idempotency", zap.String("addr", redisCfg.Addr()))
			return &Stores{
				Carts:       NewRedisCartStore(client, cartCfg.KeyPrefix, cartCfg.TTL),
				Idempotency: NewRedisIdempotencyStore(client, ""),
				Client:      client,
			}, nil
		}
		if !o.allowInMemoryFallback {
			return nil, fmt.Errorf("redis required but unavailable: %w", err)
		}
		o.logger.Warn("Redis unavailable, falling back to in-memory carts and idempotency keys",
			zap.Error(err))
	}

	return &Stores{
		Carts:       NewInMemoryCartStore(cartCfg.TTL),
		Idempotency: NewInMemoryIdempotencyStore(),
	}, nil
}

// Close releases the cart store, the idempotency store and the Redis client
func (s *Stores) Close() error {
	var errs []error
	if c, ok := s.Carts.(io.Closer); ok {
		errs = append(errs, c.Close())
	}
	if s.Idempotency != nil {
		errs = append(errs, s.Idempotency.Close())
	}
	if s.Client != nil {
		errs = append(errs, s.Client.Close())
	}
	return errors.Join(errs...)
}
