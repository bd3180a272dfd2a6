package models

import (
	"github.com/shop/backend/internal/domain/shipping"
	"github.com/shopspring/decimal"
)

// CourierModel is the persistence model for shipping.Courier
type CourierModel struct {
	BaseModel
	Name        string          `gorm:"type:varchar(100);not null"`
	Description string          `gorm:"type:text"`
	URL         string          `gorm:"column:url;type:varchar(255)"`
	IsFree      bool            `gorm:"not null"`
	Cost        decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Status      bool            `gorm:"not null"`
}

// TableName returns the table name for GORM
func (CourierModel) TableName() string {
	return "couriers"
}

// ToDomain converts the model to a domain Courier
func (m *CourierModel) ToDomain() *shipping.Courier {
	return &shipping.Courier{
		BaseEntity:  m.BaseModel.ToDomain(),
		Name:        m.Name,
		Description: m.Description,
		URL:         m.URL,
		IsFree:      m.IsFree,
		Cost:        m.Cost,
		Status:      m.Status,
	}
}

// FromDomain populates the model from a domain Courier
func (m *CourierModel) FromDomain(c *shipping.Courier) {
	m.FromDomainBaseEntity(c.BaseEntity)
	m.Name = c.Name
	m.Description = c.Description
	m.URL = c.URL
	m.IsFree = c.IsFree
	m.Cost = c.Cost
	m.Status = c.Status
}

// ProvinceModel is the persistence model for shipping.Province
type ProvinceModel struct {
	BaseModel
	Name      string `gorm:"type:varchar(100);not null"`
	CountryID int64  `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (ProvinceModel) TableName() string {
	return "provinces"
}

// ToDomain converts the model to a domain Province without its cities
func (m *ProvinceModel) ToDomain() *shipping.Province {
	return &shipping.Province{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
		CountryID:  m.CountryID,
		Cities:     make([]shipping.City, 0),
	}
}

// CityModel is the persistence model for shipping.City
type CityModel struct {
	BaseModel
	Name       string `gorm:"type:varchar(100);not null"`
	ProvinceID int64  `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (CityModel) TableName() string {
	return "cities"
}

// ToDomain converts the model to a domain City
func (m *CityModel) ToDomain() shipping.City {
	return shipping.City{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
		ProvinceID: m.ProvinceID,
	}
}
