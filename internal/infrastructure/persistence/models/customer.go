package models

import (
	"github.com/shop/backend/internal/domain/customer"
)

// CustomerModel is the persistence model for customer.Customer
type CustomerModel struct {
	BaseModel
	Name         string `gorm:"type:varchar(100);not null"`
	Email        string `gorm:"type:varchar(200);not null;uniqueIndex"`
	PasswordHash string `gorm:"type:varchar(255);not null"`
	Status       bool   `gorm:"not null"`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts the model to a domain Customer. Addresses are loaded separately.
func (m *CustomerModel) ToDomain() *customer.Customer {
	return &customer.Customer{
		BaseAggregateRoot: aggregateRoot(m.BaseModel),
		Name:              m.Name,
		Email:             m.Email,
		PasswordHash:      m.PasswordHash,
		Status:            m.Status,
		Addresses:         make([]customer.Address, 0),
	}
}

// FromDomain populates the model from a domain Customer
func (m *CustomerModel) FromDomain(c *customer.Customer) {
	m.FromDomainBaseEntity(c.BaseEntity)
	m.Name = c.Name
	m.Email = c.Email
	m.PasswordHash = c.PasswordHash
	m.Status = c.Status
}

// AddressModel is the persistence model for customer.Address
type AddressModel struct {
	BaseModel
	CustomerID int64  `gorm:"not null;index"`
	Alias      string `gorm:"type:varchar(100)"`
	Address1   string `gorm:"column:address_1;type:varchar(255);not null"`
	Address2   string `gorm:"column:address_2;type:varchar(255)"`
	ZipCode    string `gorm:"column:zip;type:varchar(20)"`
	City       string `gorm:"type:varchar(100)"`
	ProvinceID *int64 `gorm:"index"`
	CountryID  int64  `gorm:"not null"`
	Phone      string `gorm:"type:varchar(50)"`
	Status     bool   `gorm:"not null"`
}

// TableName returns the table name for GORM
func (AddressModel) TableName() string {
	return "addresses"
}

// ToDomain converts the model to a domain Address
func (m *AddressModel) ToDomain() *customer.Address {
	return &customer.Address{
		BaseEntity: m.BaseModel.ToDomain(),
		CustomerID: m.CustomerID,
		Alias:      m.Alias,
		Address1:   m.Address1,
		Address2:   m.Address2,
		ZipCode:    m.ZipCode,
		City:       m.City,
		ProvinceID: m.ProvinceID,
		CountryID:  m.CountryID,
		Phone:      m.Phone,
		Status:     m.Status,
	}
}

// FromDomain populates the model from a domain Address
func (m *AddressModel) FromDomain(a *customer.Address) {
	m.FromDomainBaseEntity(a.BaseEntity)
	m.CustomerID = a.CustomerID
	m.Alias = a.Alias
	m.Address1 = a.Address1
	m.Address2 = a.Address2
	m.ZipCode = a.ZipCode
	m.City = a.City
	m.ProvinceID = a.ProvinceID
	m.CountryID = a.CountryID
	m.Phone = a.Phone
	m.Status = a.Status
}
