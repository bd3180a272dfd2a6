package customer

import (
	"context"
	"errors"

	"github.com/shop/backend/internal/domain/customer"
	"github.com/shop/backend/internal/domain/shared"
)

// ErrEmailTaken is returned when another customer uses the email
var ErrEmailTaken = shared.NewDomainError("ALREADY_EXISTS", "Customer with this email already exists")

// CustomerService handles back-office customer management
type CustomerService struct {
	customers customer.CustomerRepository
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(customers customer.CustomerRepository) *CustomerService {
	return &CustomerService{customers: customers}
}

// Create creates a customer account
func (s *CustomerService) Create(ctx context.Context, req CreateCustomerRequest) (*CustomerResponse, error) {
	if err := s.ensureEmailFree(ctx, req.Email, 0); err != nil {
		return nil, err
	}

	c, err := customer.NewCustomer(customer.CustomerParams{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Status:   req.Status,
	})
	if err != nil {
		return nil, err
	}
	if err := s.customers.CreateCustomer(ctx, c); err != nil {
		return nil, err
	}

	resp := ToCustomerResponse(c)
	return &resp, nil
}

// GetByID returns a customer with addresses
func (s *CustomerService) GetByID(ctx context.Context, id int64) (*CustomerResponse, error) {
	c, err := s.customers.FindCustomerByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToCustomerResponse(c)
	return &resp, nil
}

// List returns customers ordered by opts
func (s *CustomerService) List(ctx context.Context, opts shared.ListOptions) ([]CustomerResponse, error) {
	cs, err := s.customers.ListCustomers(ctx, opts)
	if err != nil {
		return nil, err
	}
	return ToCustomerResponses(cs), nil
}

// Update replaces the profile of a customer
func (s *CustomerService) Update(ctx context.Context, id int64, req UpdateCustomerRequest) (*CustomerResponse, error) {
	c, err := s.customers.FindCustomerByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.ensureEmailFree(ctx, req.Email, id); err != nil {
		return nil, err
	}

	if err := c.Update(customer.CustomerParams{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Status:   req.Status,
	}); err != nil {
		return nil, err
	}

	ok, err := s.customers.UpdateCustomer(ctx, c)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, shared.ErrNotFound
	}

	resp := ToCustomerResponse(c)
	return &resp, nil
}

// Delete removes a customer
func (s *CustomerService) Delete(ctx context.Context, id int64) error {
	ok, err := s.customers.DeleteCustomerByID(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return shared.ErrNotFound
	}
	return nil
}

func (s *CustomerService) ensureEmailFree(ctx context.Context, email string, selfID int64) error {
	existing, err := s.customers.FindCustomerByEmail(ctx, shared.NormalizeEmail(email))
	switch {
	case errors.Is(err, shared.ErrNotFound):
		return nil
	case err != nil:
		return err
	case existing.ID != selfID:
		return ErrEmailTaken
	}
	return nil
}
