package shipping

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCourier(t *testing.T) {
	t.Run("creates courier", func(t *testing.T) {
		c, err := NewCourier(CourierParams{Name: "UPS", Cost: decimal.NewFromInt(5), URL: "https://ups.com", Status: true})
		require.NoError(t, err)
		assert.Equal(t, "UPS", c.Name)
		assert.True(t, c.Status)
	})

	t.Run("fails with negative cost", func(t *testing.T) {
		_, err := NewCourier(CourierParams{Name: "UPS", Cost: decimal.NewFromInt(-5)})
		require.Error(t, err)
	})

	t.Run("fails with relative url", func(t *testing.T) {
		_, err := NewCourier(CourierParams{Name: "UPS", URL: "ups.com"})
		require.Error(t, err)
	})
}

func TestCourier_ShippingFee(t *testing.T) {
	paid := &Courier{Cost: decimal.NewFromFloat(7.5)}
	assert.True(t, paid.ShippingFee().Equal(decimal.NewFromFloat(7.5)))

	free := &Courier{Cost: decimal.NewFromFloat(7.5), IsFree: true}
	assert.True(t, free.ShippingFee().IsZero())
}

func TestProvinceParams_Validate(t *testing.T) {
	assert.NoError(t, ProvinceParams{Name: "Ontario", CountryID: 1}.Validate())
	assert.Error(t, ProvinceParams{Name: "", CountryID: 1}.Validate())
	assert.Error(t, ProvinceParams{Name: "Ontario"}.Validate())
}
