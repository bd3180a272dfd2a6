package customer

import (
	"context"

	"github.com/shop/backend/internal/domain/shared"
)

// CustomerRepository defines the persistence operations for customers
type CustomerRepository interface {
	CreateCustomer(ctx context.Context, customer *Customer) error
	FindCustomerByID(ctx context.Context, id int64) (*Customer, error)
	FindCustomerByEmail(ctx context.Context, email string) (*Customer, error)
	ListCustomers(ctx context.Context, opts shared.ListOptions) ([]Customer, error)
	UpdateCustomer(ctx context.Context, customer *Customer) (bool, error)
	DeleteCustomerByID(ctx context.Context, id int64) (bool, error)
	// FindAddresses returns the customer's active addresses
	FindAddresses(ctx context.Context, customerID int64) ([]Address, error)
}

// AddressRepository defines the persistence operations for addresses
type AddressRepository interface {
	CreateAddress(ctx context.Context, params AddressParams) (*Address, error)
	FindAddressByID(ctx context.Context, id int64) (*Address, error)
	ListAddresses(ctx context.Context, opts shared.ListOptions) ([]Address, error)
	UpdateAddress(ctx context.Context, id int64, params AddressParams) (bool, error)
	DeleteAddressByID(ctx context.Context, id int64) (bool, error)
}
