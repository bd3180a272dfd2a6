package persistence

import (
	"context"
	"time"

	"github.com/shop/backend/internal/domain/shared"
	"github.com/shop/backend/internal/domain/shipping"
	"github.com/shop/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormCourierRepository implements shipping.CourierRepository using GORM
type GormCourierRepository struct {
	db *gorm.DB
}

// NewGormCourierRepository creates a new GormCourierRepository
func NewGormCourierRepository(db *gorm.DB) *GormCourierRepository {
	return &GormCourierRepository{db: db}
}

// CreateCourier validates params and inserts a courier
func (r *GormCourierRepository) CreateCourier(ctx context.Context, params shipping.CourierParams) (*shipping.Courier, error) {
	c, err := shipping.NewCourier(params)
	if err != nil {
		return nil, err
	}
	m := &models.CourierModel{}
	m.FromDomain(c)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, translateError(err)
	}
	return m.ToDomain(), nil
}

// FindCourierByID finds a courier by ID
func (r *GormCourierRepository) FindCourierByID(ctx context.Context, id int64) (*shipping.Courier, error) {
	var m models.CourierModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return m.ToDomain(), nil
}

// ListCouriers lists couriers ordered by opts
func (r *GormCourierRepository) ListCouriers(ctx context.Context, opts shared.ListOptions) ([]shipping.Courier, error) {
	var ms []models.CourierModel
	query := applyListOptions(r.db.WithContext(ctx).Model(&models.CourierModel{}), opts, CourierSortFields)
	if err := query.Find(&ms).Error; err != nil {
		return nil, err
	}
	out := make([]shipping.Courier, 0, len(ms))
	for i := range ms {
		out = append(out, *ms[i].ToDomain())
	}
	return out, nil
}

// UpdateCourier updates a courier. Returns false when no row matched.
func (r *GormCourierRepository) UpdateCourier(ctx context.Context, id int64, params shipping.CourierParams) (bool, error) {
	c, err := shipping.NewCourier(params)
	if err != nil {
		return false, err
	}
	result := r.db.WithContext(ctx).Model(&models.CourierModel{}).Where("id = ?", id).Updates(map[string]any{
		"name":        c.Name,
		"description": c.Description,
		"url":         c.URL,
		"is_free":     c.IsFree,
		"cost":        c.Cost,
		"status":      c.Status,
		"updated_at":  time.Now(),
	})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// DeleteCourierByID deletes a courier
func (r *GormCourierRepository) DeleteCourierByID(ctx context.Context, id int64) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&models.CourierModel{}, "id = ?", id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

var _ shipping.CourierRepository = (*GormCourierRepository)(nil)
