package event

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shop/backend/internal/domain/shared"
	"github.com/shop/backend/internal/infrastructure/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockEventHandler struct {
	mock.Mock
}

func (m *MockEventHandler) Handle(ctx context.Context, ev shared.DomainEvent) error {
	args := m.Called(ctx, ev)
	return args.Error(0)
}

func (m *MockEventHandler) EventTypes() []string {
	args := m.Called()
	return args.Get(0).([]string)
}

type MockIdempotencyStore struct {
	mock.Mock
}

func (m *MockIdempotencyStore) MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	args := m.Called(ctx, key, ttl)
	return args.Bool(0), args.Error(1)
}

func (m *MockIdempotencyStore) IsProcessed(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockIdempotencyStore) Close() error {
	return m.Called().Error(0)
}

func TestIdempotentHandler_SkipsDuplicates(t *testing.T) {
	store := cache.NewInMemoryIdempotencyStore()
	defer store.Close()

	inner := new(MockEventHandler)
	ev := newTestEvent("OrderPaid")
	inner.On("Handle", mock.Anything, ev).Return(nil).Once()

	h := NewIdempotentHandler("stock", inner, store, zap.NewNop())
	for i := 0; i < 3; i++ {
		require.NoError(t, h.Handle(context.Background(), ev))
	}

	inner.AssertExpectations(t)
	assert.Equal(t, IdempotencyStats{EventsProcessed: 1, EventsDuplicate: 2}, h.Metrics().Stats())
}

func TestIdempotentHandler_KeysScopedByName(t *testing.T) {
	store := cache.NewInMemoryIdempotencyStore()
	defer store.Close()

	ev := newTestEvent("OrderPaid")
	stock := new(MockEventHandler)
	stock.On("Handle", mock.Anything, ev).Return(nil).Once()
	mail := new(MockEventHandler)
	mail.On("Handle", mock.Anything, ev).Return(nil).Once()

	require.NoError(t, NewIdempotentHandler("stock", stock, store, nil).Handle(context.Background(), ev))
	require.NoError(t, NewIdempotentHandler("mail", mail, store, nil).Handle(context.Background(), ev))

	stock.AssertExpectations(t)
	mail.AssertExpectations(t)
}

func TestIdempotentHandler_StoreFailure(t *testing.T) {
	store := new(MockIdempotencyStore)
	store.On("MarkProcessed", mock.Anything, mock.Anything, time.Hour).Return(false, errors.New("redis down"))

	inner := new(MockEventHandler)
	ev := newTestEvent("OrderPaid")
	inner.On("Handle", mock.Anything, ev).Return(nil).Once()

	h := NewIdempotentHandler("stock", inner, store, zap.NewNop(), WithIdempotencyTTL(time.Hour))
	require.NoError(t, h.Handle(context.Background(), ev))
	inner.AssertExpectations(t)
}

func TestIdempotentHandler_HandlerError(t *testing.T) {
	store := cache.NewInMemoryIdempotencyStore()
	defer store.Close()

	metrics := &IdempotencyMetrics{}
	inner := new(MockEventHandler)
	ev := newTestEvent("OrderPaid")
	inner.On("Handle", mock.Anything, ev).Return(errors.New("failed")).Once()
	inner.On("EventTypes").Return([]string{"OrderPaid"})

	h := NewIdempotentHandler("stock", inner, store, zap.NewNop(), WithIdempotencyMetrics(metrics))
	assert.Equal(t, []string{"OrderPaid"}, h.EventTypes())
	assert.Error(t, h.Handle(context.Background(), ev))
	assert.Equal(t, int64(1), metrics.Stats().EventsFailed)

	// the key stays until its TTL runs out
	require.NoError(t, h.Handle(context.Background(), ev))
	inner.AssertExpectations(t)
}
