package cart

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/shop/backend/internal/domain/catalog"
	"github.com/shop/backend/internal/domain/shared"
	"github.com/shop/backend/internal/domain/shipping"
	"github.com/shop/backend/internal/infrastructure/cache"
)

type MockProductRepository struct {
	mock.Mock
	catalog.ProductRepository
}

func (m *MockProductRepository) FindProductByID(ctx context.Context, id int64) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func product(t *testing.T, id int64, price string, qty int) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(catalog.ProductParams{
		SKU: "SKU-1", Name: "Widget", Price: decimal.RequireFromString(price), Quantity: qty,
	})
	require.NoError(t, err)
	p.ID = id
	return p
}

func newService(t *testing.T) (*Service, *MockProductRepository) {
	products := new(MockProductRepository)
	return NewService(cache.NewInMemoryCartStore(time.Hour), products, 10, nil), products
}

func TestService_Totals(t *testing.T) {
	ctx := context.Background()
	svc, products := newService(t)
	products.On("FindProductByID", ctx, int64(1)).Return(product(t, 1, "10.00", 100), nil)
	products.On("FindProductByID", ctx, int64(2)).Return(product(t, 2, "2.55", 100), nil)

	require.NoError(t, svc.AddToCart(ctx, "c1", 1, 2))
	require.NoError(t, svc.AddToCart(ctx, "c1", 2, 1))
	require.NoError(t, svc.AddToCart(ctx, "c1", 1, 1))

	count, err := svc.CountItems(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, 4, count)

	items, err := svc.GetCartItems(ctx, "c1")
	require.NoError(t, err)
	assert.Len(t, items, 2, "same product merges into one line")

	sub, err := svc.GetSubTotal(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "32.55", sub.StringFixed(2))

	tax, err := svc.GetTax(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "3.26", tax.StringFixed(2))

	courier := &shipping.Courier{Cost: decimal.NewFromInt(5)}
	fee := svc.GetShippingFee(courier)
	total, err := svc.GetTotal(ctx, "c1", 2, fee)
	require.NoError(t, err)
	assert.Equal(t, "40.81", total.StringFixed(2))

	courier.IsFree = true
	assert.True(t, svc.GetShippingFee(courier).IsZero())
	assert.True(t, svc.GetShippingFee(nil).IsZero())

	summary, err := svc.Summary(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "35.81", summary.Total.StringFixed(2))
}

func TestService_StockChecks(t *testing.T) {
	ctx := context.Background()
	svc, products := newService(t)
	products.On("FindProductByID", ctx, int64(1)).Return(product(t, 1, "10.00", 3), nil)
	products.On("FindProductByID", ctx, int64(404)).Return(nil, shared.ErrNotFound)

	require.NoError(t, svc.AddToCart(ctx, "c1", 1, 2))
	assert.ErrorIs(t, svc.AddToCart(ctx, "c1", 1, 2), ErrProductUnavailable)
	assert.ErrorIs(t, svc.AddToCart(ctx, "c1", 404, 1), shared.ErrNotFound)
	assert.ErrorIs(t, svc.UpdateQuantityInCart(ctx, "c1", 1, 4), ErrProductUnavailable)

	require.NoError(t, svc.UpdateQuantityInCart(ctx, "c1", 1, 3))
	count, _ := svc.CountItems(ctx, "c1")
	assert.Equal(t, 3, count)

	require.NoError(t, svc.UpdateQuantityInCart(ctx, "c1", 1, 0))
	count, _ = svc.CountItems(ctx, "c1")
	assert.Zero(t, count)
}

func TestService_InactiveProduct(t *testing.T) {
	ctx := context.Background()
	svc, products := newService(t)
	p := product(t, 1, "10.00", 3)
	p.Status = catalog.ProductStatusInactive
	products.On("FindProductByID", ctx, int64(1)).Return(p, nil)

	assert.ErrorIs(t, svc.AddToCart(ctx, "c1", 1, 1), ErrProductUnavailable)
}

func TestService_RemoveAndClear(t *testing.T) {
	ctx := context.Background()
	svc, products := newService(t)
	products.On("FindProductByID", ctx, int64(1)).Return(product(t, 1, "1.00", 10), nil)
	require.NoError(t, svc.AddToCart(ctx, "c1", 1, 1))

	var de *shared.DomainError
	require.ErrorAs(t, svc.RemoveFromCart(ctx, "c1", 99), &de)
	assert.Equal(t, "CART_ITEM_NOT_FOUND", de.Code)

	require.NoError(t, svc.RemoveFromCart(ctx, "c1", 1))
	require.NoError(t, svc.AddToCart(ctx, "c1", 1, 1))
	require.NoError(t, svc.ClearCart(ctx, "c1"))

	items, err := svc.GetCartItems(ctx, "c1")
	require.NoError(t, err)
	assert.Empty(t, items)
}
