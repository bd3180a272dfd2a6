package cache

import (
	"context"
	"sync"
	"time"

	"github.com/shop/backend/internal/domain/cart"
)

type cartEntry struct {
	cart      cart.Cart
	expiresAt time.Time
}

// InMemoryCartStore keeps carts in process memory. Carts are copied on the
// way in and out so callers never share item slices.
type InMemoryCartStore struct {
	mu        sync.RWMutex
	carts     map[string]cartEntry
	ttl       time.Duration
	now       func() time.Time
	stopChan  chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewInMemoryCartStore creates a store whose carts expire after ttl of
// inactivity; zero keeps them forever. With a ttl, a goroutine evicts
// expired carts every five minutes until Close.
func NewInMemoryCartStore(ttl time.Duration) *InMemoryCartStore {
	return newInMemoryCartStore(ttl, 5*time.Minute)
}

func newInMemoryCartStore(ttl, interval time.Duration) *InMemoryCartStore {
	store := &InMemoryCartStore{
		carts:    make(map[string]cartEntry),
		ttl:      ttl,
		now:      time.Now,
		stopChan: make(chan struct{}),
	}
	if ttl > 0 {
		store.wg.Add(1)
		go store.cleanupLoop(interval)
	}
	return store
}

// GetCart returns a copy of the stored cart or a new empty cart
func (s *InMemoryCartStore) GetCart(_ context.Context, id string) (*cart.Cart, error) {
	s.mu.RLock()
	e, ok := s.carts[id]
	s.mu.RUnlock()

	if !ok || s.expired(e) {
		return cart.New(id), nil
	}
	c := copyCart(e.cart)
	return &c, nil
}

// SaveCart stores a copy of c
func (s *InMemoryCartStore) SaveCart(_ context.Context, c *cart.Cart) error {
	e := cartEntry{cart: copyCart(*c)}
	if s.ttl > 0 {
		e.expiresAt = s.now().Add(s.ttl)
	}

	s.mu.Lock()
	s.carts[c.ID] = e
	s.mu.Unlock()
	return nil
}

// ClearCart removes the cart
func (s *InMemoryCartStore) ClearCart(_ context.Context, id string) error {
	s.mu.Lock()
	delete(s.carts, id)
	s.mu.Unlock()
	return nil
}

// Size returns the number of stored carts, expired ones included
func (s *InMemoryCartStore) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.carts)
}

// Close stops the cleanup goroutine. It is safe to call more than once.
func (s *InMemoryCartStore) Close() error {
	s.closeOnce.Do(func() {
		close(s.stopChan)
		s.wg.Wait()
	})
	return nil
}

func (s *InMemoryCartStore) cleanupLoop(interval time.Duration) {
	defer s.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.cleanup()
		}
	}
}

// cleanup drops expired carts
func (s *InMemoryCartStore) cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, e := range s.carts {
		if s.expired(e) {
			delete(s.carts, id)
		}
	}
}

func (s *InMemoryCartStore) expired(e cartEntry) bool {
	return !e.expiresAt.IsZero() && s.now().After(e.expiresAt)
}

func copyCart(c cart.Cart) cart.Cart {
	items := make([]cart.Item, len(c.Items))
	copy(items, c.Items)
	c.Items = items
	return c
}

var _ cart.Repository = (*InMemoryCartStore)(nil)
