package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shop/backend/internal/domain/sales"
	"github.com/shop/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestOrder(t *testing.T, reference string, customerID int64) *sales.Order {
	t.Helper()
	order, err := sales.PlaceOrder(sales.PlaceOrderParams{
		Reference:     reference,
		CourierID:     1,
		CustomerID:    customerID,
		AddressID:     1,
		Payment:       "paypal",
		TransactionID: "PAY-" + reference,
		Tax:           decimal.RequireFromString("2.50"),
		TotalShipping: decimal.RequireFromString("5"),
		Products: []sales.OrderProduct{
			{ProductID: 1, ProductName: "Mug", ProductSKU: "MUG-01", ProductPrice: decimal.RequireFromString("10"), Quantity: 2},
			{ProductID: 2, ProductName: "Tee", ProductSKU: "TEE-01", ProductPrice: decimal.RequireFromString("5"), Quantity: 1},
		},
	})
	require.NoError(t, err)
	return order
}

func TestGormOrderRepository(t *testing.T) {
	db := newSQLiteDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	order := newTestOrder(t, "R-1001", 1)
	require.NoError(t, repo.CreateOrder(ctx, order))
	require.NotZero(t, order.ID)
	for _, p := range order.Products {
		assert.NotZero(t, p.ID)
		assert.Equal(t, order.ID, p.OrderID)
	}

	t.Run("find by reference and transaction", func(t *testing.T) {
		found, err := repo.FindOrderByReference(ctx, "R-1001")
		require.NoError(t, err)
		assert.Equal(t, order.ID, found.ID)
		require.Len(t, found.Products, 2)
		assert.True(t, found.Total.Equal(decimal.RequireFromString("32.5")))

		found, err = repo.FindOrderByTransactionID(ctx, "PAY-R-1001")
		require.NoError(t, err)
		assert.Equal(t, order.ID, found.ID)

		_, err = repo.FindOrderByTransactionID(ctx, "")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("duplicate reference", func(t *testing.T) {
		assert.ErrorIs(t, repo.CreateOrder(ctx, newTestOrder(t, "R-1001", 1)), shared.ErrAlreadyExists)
	})

	t.Run("mark paid persists", func(t *testing.T) {
		require.NoError(t, order.MarkPaid("SALE-9", order.Total))
		ok, err := repo.UpdateOrder(ctx, order)
		require.NoError(t, err)
		assert.True(t, ok)

		found, err := repo.FindOrderByID(ctx, order.ID)
		require.NoError(t, err)
		assert.Equal(t, sales.OrderStatusPaid, found.Status)
		assert.Equal(t, "SALE-9", found.TransactionID)
		require.NotNil(t, found.PaidAt)
	})

	t.Run("filters", func(t *testing.T) {
		require.NoError(t, repo.CreateOrder(ctx, newTestOrder(t, "R-1002", 2)))

		list, err := repo.ListCustomerOrders(ctx, 2, shared.DefaultListOptions())
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "R-1002", list[0].Reference)

		count, err := repo.CountOrders(ctx, sales.OrderFilter{Status: sales.OrderStatusPaid})
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("pending before", func(t *testing.T) {
		stale := newTestOrder(t, "R-0999", 3)
		stale.CreatedAt = time.Now().Add(-48 * time.Hour)
		require.NoError(t, repo.CreateOrder(ctx, stale))

		list, err := repo.ListPendingBefore(ctx, time.Now().Add(-24*time.Hour))
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "R-0999", list[0].Reference)
	})
}

func TestGormOrderRepository_UpdateOrderRejectsStaleCopy(t *testing.T) {
	db := newSQLiteDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	order := newTestOrder(t, "R-3001", 1)
	require.NoError(t, repo.CreateOrder(ctx, order))

	paying, err := repo.FindOrderByID(ctx, order.ID)
	require.NoError(t, err)
	cancelling, err := repo.FindOrderByID(ctx, order.ID)
	require.NoError(t, err)

	require.NoError(t, paying.MarkPaid("SALE-1", paying.Total))
	ok, err := repo.UpdateOrder(ctx, paying)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 2, paying.Version)

	require.NoError(t, cancelling.Cancel("expired"))
	ok, err = repo.UpdateOrder(ctx, cancelling)
	assert.False(t, ok)
	assert.ErrorIs(t, err, shared.ErrConcurrentUpdate)

	found, err := repo.FindOrderByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, sales.OrderStatusPaid, found.Status)
	assert.True(t, found.TotalPaid.Equal(order.Total))
	assert.Equal(t, 2, found.Version)

	t.Run("missing order", func(t *testing.T) {
		gone := newTestOrder(t, "R-3002", 1)
		gone.ID = 9999
		ok, err := repo.UpdateOrder(ctx, gone)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestGormOrderProductRepository(t *testing.T) {
	db := newSQLiteDB(t)
	orders := NewGormOrderRepository(db)
	repo := NewGormOrderProductRepository(db)
	ctx := context.Background()

	order := newTestOrder(t, "R-2001", 1)
	require.NoError(t, orders.CreateOrder(ctx, order))

	extra := []sales.OrderProduct{
		{ProductID: 3, ProductName: "Cap", ProductPrice: decimal.NewFromInt(8), Quantity: 1},
	}
	require.NoError(t, repo.AddOrderProducts(ctx, order.ID, extra))
	require.NoError(t, repo.AddOrderProducts(ctx, order.ID, nil))
	assert.NotZero(t, extra[0].ID)
	assert.Equal(t, order.ID, extra[0].OrderID)

	lines, err := repo.ListOrderProducts(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, lines, 3)
	assert.Equal(t, "Cap", lines[2].ProductName)
	assert.Equal(t, extra[0].ID, lines[2].ID)
}

func TestGormOrderRepository_CreateOrderRollsBackOnLineFailure(t *testing.T) {
	db := newSQLiteDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	require.NoError(t, db.Callback().Create().Before("gorm:create").Register("fail_order_lines", func(tx *gorm.DB) {
		if tx.Statement.Table == "order_products" {
			_ = tx.AddError(errors.New("disk full"))
		}
	}))

	err := repo.CreateOrder(ctx, newTestOrder(t, "R-3001", 1))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")

	_, err = repo.FindOrderByReference(ctx, "R-3001")
	assert.ErrorIs(t, err, shared.ErrNotFound, "order row is rolled back with its lines")
}
