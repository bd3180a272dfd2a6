package customer

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/shop/backend/internal/domain/customer"
	"github.com/shop/backend/internal/domain/shared"
	"github.com/shop/backend/internal/infrastructure/logger"
)

// AddressService manages the shipping addresses of the signed-in customer.
// Every operation is scoped to customerID; addresses of other customers
// look like missing ones.
type AddressService struct {
	customers customer.CustomerRepository
	addresses customer.AddressRepository
	logger    *zap.Logger
}

// NewAddressService creates a new AddressService
func NewAddressService(customers customer.CustomerRepository, addresses customer.AddressRepository, l *zap.Logger) *AddressService {
	if l == nil {
		l = zap.NewNop()
	}
	return &AddressService{customers: customers, addresses: addresses, logger: l.Named("addresses")}
}

// List returns the customer's active addresses
func (s *AddressService) List(ctx context.Context, customerID int64) ([]AddressResponse, error) {
	as, err := s.customers.FindAddresses(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return ToAddressResponses(as), nil
}

// Get returns one of the customer's addresses
func (s *AddressService) Get(ctx context.Context, customerID, id int64) (*AddressResponse, error) {
	a, err := s.owned(ctx, customerID, id)
	if err != nil {
		return nil, err
	}
	resp := ToAddressResponse(a)
	return &resp, nil
}

// Create adds an address for the customer
func (s *AddressService) Create(ctx context.Context, customerID int64, req AddressRequest) (*AddressResponse, error) {
	params := req.params(customerID)
	if err := params.Validate(); err != nil {
		return nil, err
	}

	a, err := s.addresses.CreateAddress(ctx, params)
	if err != nil {
		return nil, err
	}
	logger.Enrich(ctx, s.logger).Info("Address created", zap.Int64("customer_id", customerID), zap.Int64("address_id", a.ID))

	resp := ToAddressResponse(a)
	return &resp, nil
}

// Update replaces one of the customer's addresses
func (s *AddressService) Update(ctx context.Context, customerID, id int64, req AddressRequest) (*AddressResponse, error) {
	a, err := s.owned(ctx, customerID, id)
	if err != nil {
		return nil, err
	}
	if err := a.Update(req.params(customerID)); err != nil {
		return nil, err
	}

	ok, err := s.addresses.UpdateAddress(ctx, id, req.params(customerID))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, shared.ErrNotFound
	}

	resp := ToAddressResponse(a)
	return &resp, nil
}

// Delete removes one of the customer's addresses
func (s *AddressService) Delete(ctx context.Context, customerID, id int64) error {
	if _, err := s.owned(ctx, customerID, id); err != nil {
		return err
	}
	ok, err := s.addresses.DeleteAddressByID(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return shared.ErrNotFound
	}
	logger.Enrich(ctx, s.logger).Info("Address deleted", zap.Int64("customer_id", customerID), zap.Int64("address_id", id))
	return nil
}

// EnsureOwned returns ErrNotFound unless the address belongs to the customer
func (s *AddressService) EnsureOwned(ctx context.Context, customerID, id int64) error {
	_, err := s.owned(ctx, customerID, id)
	return err
}

func (s *AddressService) owned(ctx context.Context, customerID, id int64) (*customer.Address, error) {
	a, err := s.addresses.FindAddressByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	if a.CustomerID != customerID {
		return nil, shared.ErrNotFound
	}
	return a, nil
}
