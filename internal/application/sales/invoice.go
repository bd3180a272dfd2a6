package sales

import (
	"context"
	"time"

	"github.com/shop/backend/internal/domain/customer"
	"github.com/shop/backend/internal/domain/sales"
	"github.com/shop/backend/internal/domain/shipping"
)

// InvoiceDocument is everything printed on an order invoice
type InvoiceDocument struct {
	Order    *sales.Order
	Customer *customer.Customer
	Address  *customer.Address // nil when the address was deleted
	Courier  *shipping.Courier // nil when the courier was deleted
	IssuedAt time.Time
}

// RenderedInvoice is a rendered invoice ready to be sent to the client
type RenderedInvoice struct {
	Filename    string
	ContentType string
	Content     []byte
}

// InvoiceRenderer turns an invoice document into a printable file
type InvoiceRenderer interface {
	Render(ctx context.Context, doc InvoiceDocument) (*RenderedInvoice, error)
}
