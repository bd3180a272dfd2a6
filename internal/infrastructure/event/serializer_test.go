package event

import (
	"testing"

	"github.com/shop/backend/internal/domain/sales"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventSerializer_RoundTrip(t *testing.T) {
	s := NewEventSerializer()
	RegisterAllEvents(s)
	assert.True(t, s.IsRegistered(sales.EventTypeOrderPaid))
	assert.False(t, s.IsRegistered("Unknown"))

	order := &sales.Order{Reference: "R-1", CustomerID: 3, TransactionID: "PAY-1", TotalPaid: decimal.RequireFromString("32.5")}
	order.ID = 11
	order.Products = []sales.OrderProduct{{ProductID: 5, ProductName: "Mug", Quantity: 2, ProductPrice: decimal.NewFromInt(10)}}
	ev := sales.NewOrderPaidEvent(order)

	data, err := s.Serialize(ev)
	require.NoError(t, err)

	decoded, err := s.Deserialize(sales.EventTypeOrderPaid, data)
	require.NoError(t, err)
	paid, ok := decoded.(*sales.OrderPaidEvent)
	require.True(t, ok)
	assert.Equal(t, ev.EventID(), paid.EventID())
	assert.Equal(t, int64(11), paid.AggregateID())
	assert.Equal(t, "PAY-1", paid.TransactionID)
	require.Len(t, paid.Lines, 1)
	assert.Equal(t, 2, paid.Lines[0].Quantity)

	_, err = s.Deserialize("Unknown", data)
	assert.Error(t, err)
}

func TestEventSerializer_RegisteredTypesSorted(t *testing.T) {
	s := NewEventSerializer()
	RegisterAllEvents(s)
	types := s.RegisteredTypes()
	assert.Len(t, types, 12)
	assert.IsIncreasing(t, types)
}
