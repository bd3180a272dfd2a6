package persistence

import (
	"context"
	"errors"

	"github.com/shop/backend/internal/domain/customer"
	"github.com/shop/backend/internal/domain/shared"
	"github.com/shop/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormAddressRepository implements customer.AddressRepository using GORM
type GormAddressRepository struct {
	db *gorm.DB
}

// NewGormAddressRepository creates a new GormAddressRepository
func NewGormAddressRepository(db *gorm.DB) *GormAddressRepository {
	return &GormAddressRepository{db: db}
}

// CreateAddress validates params and inserts an active address
func (r *GormAddressRepository) CreateAddress(ctx context.Context, params customer.AddressParams) (*customer.Address, error) {
	addr, err := customer.NewAddress(params)
	if err != nil {
		return nil, err
	}
	m := &models.AddressModel{}
	m.FromDomain(addr)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, translateError(err)
	}
	return m.ToDomain(), nil
}

// FindAddressByID finds an address by ID
func (r *GormAddressRepository) FindAddressByID(ctx context.Context, id int64) (*customer.Address, error) {
	var m models.AddressModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return m.ToDomain(), nil
}

// ListAddresses lists addresses ordered by opts
func (r *GormAddressRepository) ListAddresses(ctx context.Context, opts shared.ListOptions) ([]customer.Address, error) {
	var ms []models.AddressModel
	query := applyListOptions(r.db.WithContext(ctx).Model(&models.AddressModel{}), opts, AddressSortFields)
	if err := query.Find(&ms).Error; err != nil {
		return nil, err
	}
	return addressesToDomain(ms), nil
}

// UpdateAddress replaces the address fields. The owning customer is kept.
// Returns false when no row matched.
func (r *GormAddressRepository) UpdateAddress(ctx context.Context, id int64, params customer.AddressParams) (bool, error) {
	var updated bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m models.AddressModel
		if err := tx.First(&m, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		addr := m.ToDomain()
		if err := addr.Update(params); err != nil {
			return err
		}
		m.FromDomain(addr)
		result := tx.Save(&m)
		if result.Error != nil {
			return result.Error
		}
		updated = result.RowsAffected > 0
		return nil
	})
	return updated, err
}

// DeleteAddressByID deletes an address
func (r *GormAddressRepository) DeleteAddressByID(ctx context.Context, id int64) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&models.AddressModel{}, "id = ?", id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func addressesToDomain(ms []models.AddressModel) []customer.Address {
	out := make([]customer.Address, 0, len(ms))
	for i := range ms {
		out = append(out, *ms[i].ToDomain())
	}
	return out
}

var _ customer.AddressRepository = (*GormAddressRepository)(nil)
