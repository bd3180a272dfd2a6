package persistence

import (
	"context"

	"github.com/shop/backend/internal/domain/customer"
	"github.com/shop/backend/internal/domain/shared"
	"github.com/shop/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormCustomerRepository implements customer.CustomerRepository using GORM
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewGormCustomerRepository creates a new GormCustomerRepository
func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

// CreateCustomer inserts the customer and sets its ID
func (r *GormCustomerRepository) CreateCustomer(ctx context.Context, c *customer.Customer) error {
	m := &models.CustomerModel{}
	m.FromDomain(c)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return translateError(err)
	}
	c.ID = m.ID
	return nil
}

// FindCustomerByID finds a customer with addresses loaded
func (r *GormCustomerRepository) FindCustomerByID(ctx context.Context, id int64) (*customer.Customer, error) {
	return r.findOne(ctx, "id = ?", id)
}

// FindCustomerByEmail finds a customer by normalized email
func (r *GormCustomerRepository) FindCustomerByEmail(ctx context.Context, email string) (*customer.Customer, error) {
	return r.findOne(ctx, "email = ?", shared.NormalizeEmail(email))
}

func (r *GormCustomerRepository) findOne(ctx context.Context, query string, args ...any) (*customer.Customer, error) {
	var m models.CustomerModel
	if err := r.db.WithContext(ctx).Where(query, args...).First(&m).Error; err != nil {
		return nil, translateError(err)
	}
	c := m.ToDomain()
	addresses, err := r.FindAddresses(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	c.Addresses = addresses
	return c, nil
}

// ListCustomers lists customers ordered by opts, without addresses
func (r *GormCustomerRepository) ListCustomers(ctx context.Context, opts shared.ListOptions) ([]customer.Customer, error) {
	var ms []models.CustomerModel
	query := applyListOptions(r.db.WithContext(ctx).Model(&models.CustomerModel{}), opts, CustomerSortFields)
	if err := query.Find(&ms).Error; err != nil {
		return nil, err
	}
	out := make([]customer.Customer, 0, len(ms))
	for i := range ms {
		out = append(out, *ms[i].ToDomain())
	}
	return out, nil
}

// UpdateCustomer writes the customer's profile, hash and status
func (r *GormCustomerRepository) UpdateCustomer(ctx context.Context, c *customer.Customer) (bool, error) {
	result := r.db.WithContext(ctx).Model(&models.CustomerModel{}).Where("id = ?", c.ID).Updates(map[string]any{
		"name":          c.Name,
		"email":         c.Email,
		"password_hash": c.PasswordHash,
		"status":        c.Status,
		"updated_at":    c.UpdatedAt,
	})
	if result.Error != nil {
		return false, translateError(result.Error)
	}
	return result.RowsAffected > 0, nil
}

// DeleteCustomerByID deletes a customer and its addresses
func (r *GormCustomerRepository) DeleteCustomerByID(ctx context.Context, id int64) (bool, error) {
	var deleted bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("customer_id = ?", id).Delete(&models.AddressModel{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.CustomerModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected > 0
		return nil
	})
	return deleted, err
}

// FindAddresses returns the customer's addresses, oldest first
func (r *GormCustomerRepository) FindAddresses(ctx context.Context, customerID int64) ([]customer.Address, error) {
	var ms []models.AddressModel
	if err := r.db.WithContext(ctx).Where("customer_id = ?", customerID).Order("id ASC").Find(&ms).Error; err != nil {
		return nil, err
	}
	return addressesToDomain(ms), nil
}

var _ customer.CustomerRepository = (*GormCustomerRepository)(nil)
