package customer

import (
	"strings"

	"github.com/shop/backend/internal/domain/shared"
)

// Customer is a shopper account. Customers own their shipping addresses.
type Customer struct {
	shared.BaseAggregateRoot
	Name         string
	Email        string
	PasswordHash string
	Status       bool
	Addresses    []Address
}

// CustomerParams carries the writable fields of a customer.
// An empty Password leaves the existing hash untouched on update.
type CustomerParams struct {
	Name     string
	Email    string
	Password string
	Status   *bool
}

// NewCustomer creates an active customer with a hashed password
func NewCustomer(params CustomerParams) (*Customer, error) {
	if err := shared.ValidatePersonName(params.Name); err != nil {
		return nil, err
	}
	if err := shared.ValidateEmail(params.Email); err != nil {
		return nil, err
	}
	hash, err := shared.HashPassword(params.Password)
	if err != nil {
		return nil, err
	}

	status := true
	if params.Status != nil {
		status = *params.Status
	}

	return &Customer{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(params.Name),
		Email:             shared.NormalizeEmail(params.Email),
		PasswordHash:      hash,
		Status:            status,
		Addresses:         make([]Address, 0),
	}, nil
}

// Update replaces the customer's profile fields
func (c *Customer) Update(params CustomerParams) error {
	if err := shared.ValidatePersonName(params.Name); err != nil {
		return err
	}
	if err := shared.ValidateEmail(params.Email); err != nil {
		return err
	}
	if params.Password != "" {
		hash, err := shared.HashPassword(params.Password)
		if err != nil {
			return err
		}
		c.PasswordHash = hash
	}
	if params.Status != nil {
		c.Status = *params.Status
	}

	c.Name = strings.TrimSpace(params.Name)
	c.Email = shared.NormalizeEmail(params.Email)
	c.Touch()
	return nil
}

// VerifyPassword checks a plain password against the stored hash
func (c *Customer) VerifyPassword(password string) bool {
	return shared.CheckPassword(c.PasswordHash, password)
}

// OwnsAddress reports whether addressID belongs to this customer
func (c *Customer) OwnsAddress(addressID int64) bool {
	for _, a := range c.Addresses {
		if a.ID == addressID {
			return true
		}
	}
	return false
}
