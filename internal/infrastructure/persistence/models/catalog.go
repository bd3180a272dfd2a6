package models

import (
	"github.com/shop/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// ProductModel is the persistence model for catalog.Product
type ProductModel struct {
	BaseModel
	SKU         string                `gorm:"column:sku;type:varchar(100);not null;uniqueIndex"`
	Name        string                `gorm:"type:varchar(200);not null"`
	Slug        string                `gorm:"type:varchar(255);not null;uniqueIndex"`
	Description string                `gorm:"type:text"`
	Cover       string                `gorm:"type:varchar(500)"`
	Quantity    int                   `gorm:"not null;default:0"`
	Price       decimal.Decimal       `gorm:"type:decimal(18,2);not null"`
	Status      catalog.ProductStatus `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the model to a domain Product
func (m *ProductModel) ToDomain() *catalog.Product {
	return &catalog.Product{
		BaseAggregateRoot: aggregateRoot(m.BaseModel),
		SKU:               m.SKU,
		Name:              m.Name,
		Slug:              m.Slug,
		Description:       m.Description,
		Cover:             m.Cover,
		Quantity:          m.Quantity,
		Price:             m.Price,
		Status:            m.Status,
	}
}

// FromDomain populates the model from a domain Product
func (m *ProductModel) FromDomain(p *catalog.Product) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.SKU = p.SKU
	m.Name = p.Name
	m.Slug = p.Slug
	m.Description = p.Description
	m.Cover = p.Cover
	m.Quantity = p.Quantity
	m.Price = p.Price
	m.Status = p.Status
}
