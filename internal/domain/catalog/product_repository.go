package catalog

import (
	"context"

	"github.com/shop/backend/internal/domain/shared"
)

// ProductFilter narrows product listings
type ProductFilter struct {
	shared.ListOptions
	Search     string
	ActiveOnly bool
}

// ProductRepository defines the persistence operations for products
type ProductRepository interface {
	CreateProduct(ctx context.Context, product *Product) error
	FindProductByID(ctx context.Context, id int64) (*Product, error)
	FindProductBySlug(ctx context.Context, slug string) (*Product, error)
	FindProductsByIDs(ctx context.Context, ids []int64) ([]Product, error)
	ListProducts(ctx context.Context, filter ProductFilter) ([]Product, error)
	CountProducts(ctx context.Context, filter ProductFilter) (int64, error)
	UpdateProduct(ctx context.Context, product *Product) (bool, error)
	DeleteProductByID(ctx context.Context, id int64) (bool, error)

	// DecreaseQuantity atomically takes qty units out of stock.
	// Returns shared.ErrInsufficientStock when fewer units are left.
	DecreaseQuantity(ctx context.Context, id int64, qty int) error
}
