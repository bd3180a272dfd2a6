package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shop/backend/internal/domain/customer"
	"github.com/shop/backend/internal/domain/sales"
	"github.com/shop/backend/internal/domain/shared"
)

func TestStockHandler_EventTypes(t *testing.T) {
	h := NewStockHandler(nil, nil)
	assert.Equal(t, []string{sales.EventTypeOrderPaid}, h.EventTypes())
}

func TestStockHandler_Handle(t *testing.T) {
	ctx := context.Background()
	svc, _, _, repo := newProductService(t)

	mug, err := svc.Create(ctx, productRequest("MUG-01", "Mug", 5))
	require.NoError(t, err)
	hat, err := svc.Create(ctx, productRequest("CAP-01", "Cap", 1))
	require.NoError(t, err)

	event := &sales.OrderPaidEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(sales.EventTypeOrderPaid, sales.AggregateTypeOrder, 1),
		Reference:       "ORD-1",
		Lines: []sales.OrderLine{
			{ProductID: mug.ID, Quantity: 2},
			{ProductID: hat.ID, Quantity: 3},
			{ProductID: 9999, Quantity: 1},
		},
	}

	h := NewStockHandler(repo, nil)
	require.NoError(t, h.Handle(ctx, event))

	got, err := svc.GetByID(ctx, mug.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Quantity)

	got, err = svc.GetByID(ctx, hat.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Quantity, "short lines are skipped")
}

func TestStockHandler_RejectsOtherEvents(t *testing.T) {
	h := NewStockHandler(nil, nil)
	other := customer.NewCustomerRegisteredEvent(&customer.Customer{})
	assert.Error(t, h.Handle(context.Background(), other))
}
