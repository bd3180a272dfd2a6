package notification

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shop/backend/internal/domain/customer"
	"github.com/shop/backend/internal/domain/sales"
	"github.com/shop/backend/internal/domain/shared"
)

type customerLookup struct {
	customer.CustomerRepository
	byID map[int64]*customer.Customer
}

func (c customerLookup) FindCustomerByID(_ context.Context, id int64) (*customer.Customer, error) {
	if found, ok := c.byID[id]; ok {
		return found, nil
	}
	return nil, shared.ErrNotFound
}

func paidEvent(t *testing.T, customerID int64) *sales.OrderPaidEvent {
	t.Helper()
	o, err := sales.PlaceOrder(sales.PlaceOrderParams{
		Reference:     "ORD-7",
		CourierID:     1,
		CustomerID:    customerID,
		AddressID:     1,
		Payment:       "paypal",
		TotalShipping: decimal.NewFromInt(5),
		Products: []sales.OrderProduct{
			{ProductID: 3, ProductName: "Tea <Earl Grey>", ProductPrice: decimal.RequireFromString("4.5"), Quantity: 2},
		},
	})
	require.NoError(t, err)
	require.NoError(t, o.MarkPaid("PAY-7", o.Total))

	events := o.GetDomainEvents()
	require.Len(t, events, 1)
	return events[0].(*sales.OrderPaidEvent)
}

func TestOrderConfirmationHandler_Handle(t *testing.T) {
	sender := NewLogSender(nil)
	customers := customerLookup{byID: map[int64]*customer.Customer{
		9: {Name: "Ada", Email: "ada@example.com"},
	}}
	h := NewOrderConfirmationHandler(customers, sender, nil)
	assert.Equal(t, []string{sales.EventTypeOrderPaid}, h.EventTypes())

	require.NoError(t, h.Handle(context.Background(), paidEvent(t, 9)))

	sent := sender.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "ada@example.com", sent[0].To)
	assert.Equal(t, "Payment received for order ORD-7", sent[0].Subject)
	assert.Contains(t, sent[0].HTMLBody, "Tea &lt;Earl Grey&gt;")
	assert.Contains(t, sent[0].HTMLBody, "Total paid: 14.00")
	assert.Contains(t, sent[0].TextBody, "2 x Tea <Earl Grey>  4.50")
}

func TestOrderConfirmationHandler_Errors(t *testing.T) {
	sender := NewLogSender(nil)
	h := NewOrderConfirmationHandler(customerLookup{}, sender, nil)

	err := h.Handle(context.Background(), paidEvent(t, 404))
	assert.ErrorIs(t, err, shared.ErrNotFound)

	err = h.Handle(context.Background(), sales.NewOrderPlacedEvent(&sales.Order{Reference: "ORD-1"}))
	assert.ErrorContains(t, err, "unexpected event type")
	assert.Empty(t, sender.Sent())
}
