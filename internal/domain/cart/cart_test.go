package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCart_Add(t *testing.T) {
	c := New("cart-1")

	require.NoError(t, c.Add(Item{ProductID: 1, Name: "Mug", Price: dec("12.50"), Quantity: 2}))
	require.NoError(t, c.Add(Item{ProductID: 2, Name: "Tee", Price: dec("20"), Quantity: 1}))
	require.NoError(t, c.Add(Item{ProductID: 1, Name: "Mug", Price: dec("12.50"), Quantity: 1}))

	require.Len(t, c.Items, 2)
	assert.Equal(t, 3, c.Items[0].Quantity)
	assert.Equal(t, 4, c.Count())

	assert.Error(t, c.Add(Item{ProductID: 3, Quantity: 0}))
	assert.Error(t, c.Add(Item{ProductID: 1, Quantity: MaxLineQuantity}))
}

func TestCart_UpdateAndRemove(t *testing.T) {
	c := New("cart-1")
	require.NoError(t, c.Add(Item{ProductID: 1, Price: dec("10"), Quantity: 2}))
	require.NoError(t, c.Add(Item{ProductID: 2, Price: dec("5"), Quantity: 1}))

	require.NoError(t, c.UpdateQuantity(1, 5))
	assert.Equal(t, 5, c.Items[0].Quantity)

	require.NoError(t, c.UpdateQuantity(1, 0))
	require.Len(t, c.Items, 1)
	assert.Equal(t, int64(2), c.Items[0].ProductID)

	assert.Error(t, c.UpdateQuantity(42, 1))
	assert.Error(t, c.Remove(42))

	c.Clear()
	assert.True(t, c.IsEmpty())
}

func TestCart_Totals(t *testing.T) {
	c := New("cart-1")
	require.NoError(t, c.Add(Item{ProductID: 1, Price: dec("12.50"), Quantity: 2}))
	require.NoError(t, c.Add(Item{ProductID: 2, Price: dec("3.33"), Quantity: 3}))

	assert.True(t, c.SubTotal().Equal(dec("34.99")), c.SubTotal().String())
	assert.True(t, c.Tax(dec("10")).Equal(dec("3.5")), c.Tax(dec("10")).String())

	total := c.Total(2, dec("5"), dec("10"))
	assert.True(t, total.Equal(dec("43.49")), total.String())

	assert.True(t, c.Total(0, dec("5"), dec("10")).Equal(dec("43")))
}

func TestCart_EmptyTotals(t *testing.T) {
	c := New("cart-1")
	assert.True(t, c.SubTotal().IsZero())
	assert.True(t, c.Tax(dec("10")).IsZero())
	assert.True(t, c.Total(2, dec("7.25"), dec("10")).Equal(dec("7.25")))
}
