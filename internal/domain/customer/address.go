package customer

import (
	"strings"

	"github.com/shop/backend/internal/domain/shared"
)

// Address is a shipping address owned by a customer
type Address struct {
	shared.BaseEntity
	CustomerID int64
	Alias      string
	Address1   string
	Address2   string
	ZipCode    string
	City       string
	ProvinceID *int64
	CountryID  int64
	Phone      string
	Status     bool
}

// AddressParams carries the writable fields of an address
type AddressParams struct {
	CustomerID int64
	Alias      string
	Address1   string
	Address2   string
	ZipCode    string
	City       string
	ProvinceID *int64
	CountryID  int64
	Phone      string
}

// Validate checks the params against the address rules
func (p AddressParams) Validate() error {
	if p.CustomerID <= 0 {
		return shared.NewDomainError("INVALID_ADDRESS", "Address must belong to a customer")
	}
	if strings.TrimSpace(p.Alias) == "" {
		return shared.NewDomainError("INVALID_ADDRESS", "Address alias cannot be empty")
	}
	if strings.TrimSpace(p.Address1) == "" {
		return shared.NewDomainError("INVALID_ADDRESS", "Address line 1 cannot be empty")
	}
	if len(p.Address1) > 255 || len(p.Address2) > 255 {
		return shared.NewDomainError("INVALID_ADDRESS", "Address lines cannot exceed 255 characters")
	}
	if p.CountryID <= 0 {
		return shared.NewDomainError("INVALID_ADDRESS", "Country is required")
	}
	return nil
}

// NewAddress creates an active address
func NewAddress(params AddressParams) (*Address, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	a := &Address{
		BaseEntity: shared.NewBaseEntity(),
		Status:     true,
	}
	a.apply(params)
	return a, nil
}

// Update replaces the address fields. The owner cannot change.
func (a *Address) Update(params AddressParams) error {
	params.CustomerID = a.CustomerID
	if err := params.Validate(); err != nil {
		return err
	}
	a.apply(params)
	a.Touch()
	return nil
}

func (a *Address) apply(params AddressParams) {
	a.CustomerID = params.CustomerID
	a.Alias = strings.TrimSpace(params.Alias)
	a.Address1 = strings.TrimSpace(params.Address1)
	a.Address2 = strings.TrimSpace(params.Address2)
	a.ZipCode = strings.TrimSpace(params.ZipCode)
	a.City = strings.TrimSpace(params.City)
	a.ProvinceID = params.ProvinceID
	a.CountryID = params.CountryID
	a.Phone = strings.TrimSpace(params.Phone)
}
