package sales

import (
	"context"
	"time"

	"github.com/shop/backend/internal/domain/shared"
)

// OrderFilter narrows order listings
type OrderFilter struct {
	shared.ListOptions
	CustomerID int64
	Status     OrderStatus
}

// OrderRepository defines the persistence operations for orders
type OrderRepository interface {
	// CreateOrder stores the order and its products in one transaction
	CreateOrder(ctx context.Context, order *Order) error
	FindOrderByID(ctx context.Context, id int64) (*Order, error)
	FindOrderByReference(ctx context.Context, reference string) (*Order, error)
	FindOrderByTransactionID(ctx context.Context, transactionID string) (*Order, error)
	ListOrders(ctx context.Context, filter OrderFilter) ([]Order, error)
	CountOrders(ctx context.Context, filter OrderFilter) (int64, error)
	ListCustomerOrders(ctx context.Context, customerID int64, opts shared.ListOptions) ([]Order, error)
	UpdateOrder(ctx context.Context, order *Order) (bool, error)
	// ListPendingBefore returns pending orders created before t
	ListPendingBefore(ctx context.Context, t time.Time) ([]Order, error)
}

// OrderProductRepository defines the persistence operations for order lines
type OrderProductRepository interface {
	ListOrderProducts(ctx context.Context, orderID int64) ([]OrderProduct, error)
	AddOrderProducts(ctx context.Context, orderID int64, products []OrderProduct) error
}

// ReferenceGenerator produces unique, human-shareable order references
type ReferenceGenerator interface {
	NextReference() string
}
