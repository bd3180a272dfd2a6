package persistence

import (
	"context"

	"github.com/shop/backend/internal/domain/sales"
	"github.com/shop/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormOrderProductRepository implements sales.OrderProductRepository using GORM
type GormOrderProductRepository struct {
	db *gorm.DB
}

// NewGormOrderProductRepository creates a new GormOrderProductRepository
func NewGormOrderProductRepository(db *gorm.DB) *GormOrderProductRepository {
	return &GormOrderProductRepository{db: db}
}

// ListOrderProducts returns the order's lines in insertion order
func (r *GormOrderProductRepository) ListOrderProducts(ctx context.Context, orderID int64) ([]sales.OrderProduct, error) {
	var ms []models.OrderProductModel
	if err := r.db.WithContext(ctx).Where("order_id = ?", orderID).Order("id ASC").Find(&ms).Error; err != nil {
		return nil, err
	}
	out := make([]sales.OrderProduct, 0, len(ms))
	for i := range ms {
		out = append(out, ms[i].ToDomain())
	}
	return out, nil
}

// AddOrderProducts appends lines to an existing order and sets the
// generated IDs on products
func (r *GormOrderProductRepository) AddOrderProducts(ctx context.Context, orderID int64, products []sales.OrderProduct) error {
	if len(products) == 0 {
		return nil
	}
	lines := make([]*models.OrderProductModel, 0, len(products))
	for _, p := range products {
		p.ID = 0
		lines = append(lines, models.OrderProductModelFromDomain(orderID, p))
	}
	if err := r.db.WithContext(ctx).Create(&lines).Error; err != nil {
		return err
	}
	for i, line := range lines {
		products[i].ID = line.ID
		products[i].OrderID = orderID
	}
	return nil
}

var _ sales.OrderProductRepository = (*GormOrderProductRepository)(nil)
