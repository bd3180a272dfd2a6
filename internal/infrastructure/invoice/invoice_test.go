package invoice

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	salesapp "github.com/shop/backend/internal/application/sales"
	"github.com/shop/backend/internal/domain/customer"
	"github.com/shop/backend/internal/domain/sales"
	"github.com/shop/backend/internal/domain/shipping"
)

func testDocument() salesapp.InvoiceDocument {
	order := &sales.Order{
		Reference:     "SHOP1A2B3C",
		Status:        sales.OrderStatusPaid,
		Payment:       "paypal",
		TransactionID: "PAY-1",
		TotalProducts: decimal.RequireFromString("1225"),
		Tax:           decimal.RequireFromString("122.5"),
		TotalShipping: decimal.RequireFromString("5"),
		Total:         decimal.RequireFromString("1352.5"),
		Products: []sales.OrderProduct{
			{ProductName: "Espresso <Machine>", ProductSKU: "ESP-1", ProductPrice: decimal.RequireFromString("1200"), Quantity: 1},
			{ProductName: "Filter", ProductSKU: "FLT-2", ProductPrice: decimal.RequireFromString("12.5"), Quantity: 2},
		},
	}
	order.ID = 9
	order.CreatedAt = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	return salesapp.InvoiceDocument{
		Order:    order,
		Customer: &customer.Customer{Name: "Ada Lovelace", Email: "ada@example.com"},
		Address:  &customer.Address{Address1: "1 Main St", ZipCode: "12345", City: "Springfield"},
		Courier:  &shipping.Courier{Name: "Express"},
		IssuedAt: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
	}
}

func newTestTemplate(t *testing.T) *HTMLTemplate {
	t.Helper()
	tmpl, err := NewHTMLTemplate(language.English, "USD", "Test Shop", "42 Market Road")
	require.NoError(t, err)
	return tmpl
}

func TestHTMLTemplate_Money(t *testing.T) {
	tmpl := newTestTemplate(t)

	assert.Equal(t, "USD 32.50", tmpl.Money(decimal.RequireFromString("32.5")))
	assert.Equal(t, "USD 1,234.50", tmpl.Money(decimal.RequireFromString("1234.499")))
	assert.Equal(t, "USD 0.00", tmpl.Money(decimal.Zero))
}

func TestHTMLTemplate_Execute(t *testing.T) {
	tmpl := newTestTemplate(t)

	html, err := tmpl.Execute(testDocument())
	require.NoError(t, err)

	assert.Contains(t, html, "<!DOCTYPE html>")
	assert.Contains(t, html, "Invoice</strong> SHOP1A2B3C")
	assert.Contains(t, html, "Test Shop")
	assert.Contains(t, html, "Ada Lovelace")
	assert.Contains(t, html, "Springfield")
	assert.Contains(t, html, "Express")
	assert.Contains(t, html, "Status Paid")
	assert.Contains(t, html, "Payment: Paypal")
	assert.Contains(t, html, "Issued 2026-03-02")
	assert.Contains(t, html, "USD 1,352.50")
	assert.Contains(t, html, "USD 25.00")
	assert.Contains(t, html, "Espresso &lt;Machine&gt;")
	assert.NotContains(t, html, "Discounts")
}

func TestHTMLTemplate_ExecuteWithoutOptionalParts(t *testing.T) {
	tmpl := newTestTemplate(t)
	doc := testDocument()
	doc.Address = nil
	doc.Courier = nil

	html, err := tmpl.Execute(doc)
	require.NoError(t, err)
	assert.NotContains(t, html, "Springfield")

	_, err = tmpl.Execute(salesapp.InvoiceDocument{})
	assert.Error(t, err)
}

type fakeConverter struct {
	pdf   []byte
	err   error
	calls int
}

func (f *fakeConverter) Convert(_ context.Context, html string) ([]byte, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.pdf, nil
}

func TestRenderer_Render(t *testing.T) {
	ctx := context.Background()
	tmpl := newTestTemplate(t)

	t.Run("pdf", func(t *testing.T) {
		conv := &fakeConverter{pdf: []byte("%PDF-1.4")}
		out, err := NewRenderer(tmpl, conv, nil).Render(ctx, testDocument())
		require.NoError(t, err)
		assert.Equal(t, ContentTypePDF, out.ContentType)
		assert.Equal(t, "invoice-SHOP1A2B3C.pdf", out.Filename)
		assert.Equal(t, []byte("%PDF-1.4"), out.Content)
	})

	t.Run("falls back to html when conversion fails", func(t *testing.T) {
		conv := &fakeConverter{err: errors.New("chrome not found")}
		out, err := NewRenderer(tmpl, conv, nil).Render(ctx, testDocument())
		require.NoError(t, err)
		assert.Equal(t, 1, conv.calls)
		assert.Equal(t, ContentTypeHTML, out.ContentType)
		assert.Equal(t, "invoice-SHOP1A2B3C.html", out.Filename)
		assert.Contains(t, string(out.Content), "SHOP1A2B3C")
	})

	t.Run("html without converter", func(t *testing.T) {
		out, err := NewRenderer(tmpl, nil, nil).Render(ctx, testDocument())
		require.NoError(t, err)
		assert.Equal(t, ContentTypeHTML, out.ContentType)
	})

	t.Run("cancelled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		conv := &fakeConverter{err: context.Canceled}
		_, err := NewRenderer(tmpl, conv, nil).Render(cctx, testDocument())
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestChromePDF_EmptyHTML(t *testing.T) {
	c := NewChromePDF(ChromeConfig{})
	defer func() { _ = c.Close() }()

	_, err := c.Convert(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrEmptyHTML)
}
