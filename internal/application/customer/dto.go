package customer

import (
	"time"

	"github.com/shop/backend/internal/domain/customer"
)

// CreateCustomerRequest is an admin-created customer account
type CreateCustomerRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=100"`
	Email    string `json:"email" binding:"required,email,max=200"`
	Password string `json:"password" binding:"required,min=8,max=72"`
	Status   *bool  `json:"status"`
}

// UpdateCustomerRequest updates a customer. An empty password keeps the current one.
type UpdateCustomerRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=100"`
	Email    string `json:"email" binding:"required,email,max=200"`
	Password string `json:"password" binding:"omitempty,min=8,max=72"`
	Status   *bool  `json:"status"`
}

// CustomerResponse represents a customer in API responses
type CustomerResponse struct {
	ID        int64             `json:"id"`
	Name      string            `json:"name"`
	Email     string            `json:"email"`
	Status    bool              `json:"status"`
	Addresses []AddressResponse `json:"addresses,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// AddressRequest creates or replaces an address of the signed-in customer
type AddressRequest struct {
	Alias      string `json:"alias" binding:"required,max=50"`
	Address1   string `json:"address1" binding:"required,max=255"`
	Address2   string `json:"address2" binding:"max=255"`
	ZipCode    string `json:"zip_code" binding:"max=20"`
	City       string `json:"city" binding:"max=100"`
	ProvinceID *int64 `json:"province_id" binding:"omitempty,gt=0"`
	CountryID  int64  `json:"country_id" binding:"required,gt=0"`
	Phone      string `json:"phone" binding:"max=30"`
}

func (r AddressRequest) params(customerID int64) customer.AddressParams {
	return customer.AddressParams{
		CustomerID: customerID,
		Alias:      r.Alias,
		Address1:   r.Address1,
		Address2:   r.Address2,
		ZipCode:    r.ZipCode,
		City:       r.City,
		ProvinceID: r.ProvinceID,
		CountryID:  r.CountryID,
		Phone:      r.Phone,
	}
}

// AddressResponse represents an address in API responses
type AddressResponse struct {
	ID         int64     `json:"id"`
	CustomerID int64     `json:"customer_id"`
	Alias      string    `json:"alias"`
	Address1   string    `json:"address1"`
	Address2   string    `json:"address2,omitempty"`
	ZipCode    string    `json:"zip_code,omitempty"`
	City       string    `json:"city,omitempty"`
	ProvinceID *int64    `json:"province_id,omitempty"`
	CountryID  int64     `json:"country_id"`
	Phone      string    `json:"phone,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ToCustomerResponse converts a domain customer
func ToCustomerResponse(c *customer.Customer) CustomerResponse {
	resp := CustomerResponse{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Status:    c.Status,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
	if len(c.Addresses) > 0 {
		resp.Addresses = ToAddressResponses(c.Addresses)
	}
	return resp
}

// ToCustomerResponses converts a slice of domain customers
func ToCustomerResponses(cs []customer.Customer) []CustomerResponse {
	out := make([]CustomerResponse, len(cs))
	for i := range cs {
		out[i] = ToCustomerResponse(&cs[i])
	}
	return out
}

// ToAddressResponse converts a domain address
func ToAddressResponse(a *customer.Address) AddressResponse {
	return AddressResponse{
		ID:         a.ID,
		CustomerID: a.CustomerID,
		Alias:      a.Alias,
		Address1:   a.Address1,
		Address2:   a.Address2,
		ZipCode:    a.ZipCode,
		City:       a.City,
		ProvinceID: a.ProvinceID,
		CountryID:  a.CountryID,
		Phone:      a.Phone,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}

// ToAddressResponses converts a slice of domain addresses
func ToAddressResponses(as []customer.Address) []AddressResponse {
	out := make([]AddressResponse, len(as))
	for i := range as {
		out[i] = ToAddressResponse(&as[i])
	}
	return out
}
