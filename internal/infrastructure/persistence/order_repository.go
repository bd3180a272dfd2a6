package persistence

import (
	"context"
	"time"

	"github.com/shop/backend/internal/domain/sales"
	"github.com/shop/backend/internal/domain/shared"
	"github.com/shop/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormOrderRepository implements sales.OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// CreateOrder inserts the order and its products in one transaction and
// sets the generated IDs on the aggregate.
func (r *GormOrderRepository) CreateOrder(ctx context.Context, order *sales.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m := &models.OrderModel{}
		m.FromDomain(order)
		if err := tx.Create(m).Error; err != nil {
			return translateError(err)
		}
		order.ID = m.ID

		return NewGormOrderProductRepository(tx).AddOrderProducts(ctx, order.ID, order.Products)
	})
}

// FindOrderByID finds an order with its products
func (r *GormOrderRepository) FindOrderByID(ctx context.Context, id int64) (*sales.Order, error) {
	return r.findOne(ctx, "id = ?", id)
}

// FindOrderByReference finds an order by its public reference
func (r *GormOrderRepository) FindOrderByReference(ctx context.Context, reference string) (*sales.Order, error) {
	return r.findOne(ctx, "reference = ?", reference)
}

// FindOrderByTransactionID finds an order by the gateway payment ID
func (r *GormOrderRepository) FindOrderByTransactionID(ctx context.Context, transactionID string) (*sales.Order, error) {
	if transactionID == "" {
		return nil, shared.ErrNotFound
	}
	return r.findOne(ctx, "transaction_id = ?", transactionID)
}

func (r *GormOrderRepository) findOne(ctx context.Context, query string, args ...any) (*sales.Order, error) {
	var m models.OrderModel
	if err := r.db.WithContext(ctx).Where(query, args...).First(&m).Error; err != nil {
		return nil, translateError(err)
	}
	order := m.ToDomain()
	products, err := NewGormOrderProductRepository(r.db).ListOrderProducts(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	order.Products = products
	return order, nil
}

// ListOrders lists orders matching filter, without products
func (r *GormOrderRepository) ListOrders(ctx context.Context, filter sales.OrderFilter) ([]sales.Order, error) {
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.OrderModel{}), filter)
	return r.find(applyListOptions(query, filter.ListOptions, OrderSortFields))
}

// CountOrders counts orders matching filter, ignoring paging
func (r *GormOrderRepository) CountOrders(ctx context.Context, filter sales.OrderFilter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.OrderModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ListCustomerOrders lists a customer's orders
func (r *GormOrderRepository) ListCustomerOrders(ctx context.Context, customerID int64, opts shared.ListOptions) ([]sales.Order, error) {
	return r.ListOrders(ctx, sales.OrderFilter{ListOptions: opts, CustomerID: customerID})
}

// ListPendingBefore returns pending orders created before t, oldest first
func (r *GormOrderRepository) ListPendingBefore(ctx context.Context, t time.Time) ([]sales.Order, error) {
	query := r.db.WithContext(ctx).Model(&models.OrderModel{}).
		Where("status = ? AND created_at < ?", sales.OrderStatusPending, t).
		Order("created_at ASC")
	return r.find(query)
}

func (r *GormOrderRepository) applyFilter(query *gorm.DB, filter sales.OrderFilter) *gorm.DB {
	if filter.CustomerID > 0 {
		query = query.Where("customer_id = ?", filter.CustomerID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	return query
}

func (r *GormOrderRepository) find(query *gorm.DB) ([]sales.Order, error) {
	var ms []models.OrderModel
	if err := query.Find(&ms).Error; err != nil {
		return nil, err
	}
	out := make([]sales.Order, 0, len(ms))
	for i := range ms {
		out = append(out, *ms[i].ToDomain())
	}
	return out, nil
}

// UpdateOrder writes the order's state, payment and totals. Products are immutable.
// The write only applies to the version the order was loaded at; it returns
// false when the order is gone and ErrConcurrentUpdate when another request
// saved it first.
func (r *GormOrderRepository) UpdateOrder(ctx context.Context, order *sales.Order) (bool, error) {
	db := r.db.WithContext(ctx)
	result := db.Model(&models.OrderModel{}).
		Where("id = ? AND version = ?", order.ID, order.Version).
		Updates(map[string]any{
			"courier_id":     order.CourierID,
			"address_id":     order.AddressID,
			"status":         order.Status,
			"payment":        order.Payment,
			"transaction_id": order.TransactionID,
			"discounts":      order.Discounts,
			"total_products": order.TotalProducts,
			"tax":            order.Tax,
			"total_shipping": order.TotalShipping,
			"total":          order.Total,
			"total_paid":     order.TotalPaid,
			"invoice":        order.Invoice,
			"paid_at":        order.PaidAt,
			"cancelled_at":   order.CancelledAt,
			"updated_at":     order.UpdatedAt,
			"version":        order.Version + 1,
		})
	if result.Error != nil {
		return false, translateError(result.Error)
	}
	if result.RowsAffected > 0 {
		order.IncrementVersion()
		return true, nil
	}

	var count int64
	if err := db.Model(&models.OrderModel{}).Where("id = ?", order.ID).Count(&count).Error; err != nil {
		return false, err
	}
	if count == 0 {
		return false, nil
	}
	return false, shared.ErrConcurrentUpdate
}

var _ sales.OrderRepository = (*GormOrderRepository)(nil)
