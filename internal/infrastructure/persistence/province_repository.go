package persistence

import (
	"context"
	"strings"
	"time"

	"github.com/shop/backend/internal/domain/shared"
	"github.com/shop/backend/internal/domain/shipping"
	"github.com/shop/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormProvinceRepository implements shipping.ProvinceRepository using GORM
type GormProvinceRepository struct {
	db *gorm.DB
}

// NewGormProvinceRepository creates a new GormProvinceRepository
func NewGormProvinceRepository(db *gorm.DB) *GormProvinceRepository {
	return &GormProvinceRepository{db: db}
}

// ListProvinces lists provinces ordered by order/sort. Empty values mean id desc.
func (r *GormProvinceRepository) ListProvinces(ctx context.Context, order, sort string) ([]shipping.Province, error) {
	var ms []models.ProvinceModel
	opts := shared.ListOptions{OrderBy: order, Sort: sort}
	query := applyListOptions(r.db.WithContext(ctx).Model(&models.ProvinceModel{}), opts, ProvinceSortFields)
	if err := query.Find(&ms).Error; err != nil {
		return nil, err
	}
	out := make([]shipping.Province, 0, len(ms))
	for i := range ms {
		out = append(out, *ms[i].ToDomain())
	}
	return out, nil
}

// FindProvinceByID finds a province with its cities loaded
func (r *GormProvinceRepository) FindProvinceByID(ctx context.Context, id int64) (*shipping.Province, error) {
	var m models.ProvinceModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	p := m.ToDomain()
	cities, err := r.ListCities(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Cities = cities
	return p, nil
}

// UpdateProvince updates a province. Returns false when no row matched.
func (r *GormProvinceRepository) UpdateProvince(ctx context.Context, id int64, params shipping.ProvinceParams) (bool, error) {
	if err := params.Validate(); err != nil {
		return false, err
	}
	result := r.db.WithContext(ctx).Model(&models.ProvinceModel{}).Where("id = ?", id).Updates(map[string]any{
		"name":       strings.TrimSpace(params.Name),
		"country_id": params.CountryID,
		"updated_at": time.Now(),
	})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ListCities returns the cities of a province sorted by name
func (r *GormProvinceRepository) ListCities(ctx context.Context, provinceID int64) ([]shipping.City, error) {
	var ms []models.CityModel
	if err := r.db.WithContext(ctx).Where("province_id = ?", provinceID).Order("name ASC").Find(&ms).Error; err != nil {
		return nil, err
	}
	out := make([]shipping.City, 0, len(ms))
	for i := range ms {
		out = append(out, ms[i].ToDomain())
	}
	return out, nil
}

var _ shipping.ProvinceRepository = (*GormProvinceRepository)(nil)
