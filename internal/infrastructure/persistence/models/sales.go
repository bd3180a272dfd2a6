package models

import (
	"time"

	"github.com/shop/backend/internal/domain/sales"
	"github.com/shopspring/decimal"
)

// OrderModel is the persistence model for sales.Order
type OrderModel struct {
	BaseModel
	Reference     string            `gorm:"type:varchar(64);not null;uniqueIndex"`
	CourierID     int64             `gorm:"not null;index"`
	CustomerID    int64             `gorm:"not null;index"`
	AddressID     int64             `gorm:"not null"`
	Status        sales.OrderStatus `gorm:"type:varchar(20);not null;default:'pending';index"`
	Payment       string            `gorm:"type:varchar(50);not null"`
	TransactionID string            `gorm:"type:varchar(100);index"`
	Discounts     decimal.Decimal   `gorm:"type:decimal(18,2);not null"`
	TotalProducts decimal.Decimal   `gorm:"type:decimal(18,2);not null"`
	Tax           decimal.Decimal   `gorm:"type:decimal(18,2);not null"`
	TotalShipping decimal.Decimal   `gorm:"type:decimal(18,2);not null"`
	Total         decimal.Decimal   `gorm:"type:decimal(18,2);not null"`
	TotalPaid     decimal.Decimal   `gorm:"type:decimal(18,2);not null"`
	Invoice       string            `gorm:"type:varchar(500)"`
	PaidAt        *time.Time
	CancelledAt   *time.Time
	Version       int `gorm:"not null;default:1"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// ToDomain converts the model to a domain Order. Products are loaded separately.
func (m *OrderModel) ToDomain() *sales.Order {
	o := &sales.Order{
		BaseAggregateRoot: aggregateRoot(m.BaseModel),
		Reference:         m.Reference,
		CourierID:         m.CourierID,
		CustomerID:        m.CustomerID,
		AddressID:         m.AddressID,
		Status:            m.Status,
		Payment:           m.Payment,
		TransactionID:     m.TransactionID,
		Discounts:         m.Discounts,
		TotalProducts:     m.TotalProducts,
		Tax:               m.Tax,
		TotalShipping:     m.TotalShipping,
		Total:             m.Total,
		TotalPaid:         m.TotalPaid,
		Invoice:           m.Invoice,
		PaidAt:            m.PaidAt,
		CancelledAt:       m.CancelledAt,
		Products:          make([]sales.OrderProduct, 0),
	}
	o.Version = m.Version
	return o
}

// FromDomain populates the model from a domain Order
func (m *OrderModel) FromDomain(o *sales.Order) {
	m.FromDomainBaseEntity(o.BaseEntity)
	m.Reference = o.Reference
	m.CourierID = o.CourierID
	m.CustomerID = o.CustomerID
	m.AddressID = o.AddressID
	m.Status = o.Status
	m.Payment = o.Payment
	m.TransactionID = o.TransactionID
	m.Discounts = o.Discounts
	m.TotalProducts = o.TotalProducts
	m.Tax = o.Tax
	m.TotalShipping = o.TotalShipping
	m.Total = o.Total
	m.TotalPaid = o.TotalPaid
	m.Invoice = o.Invoice
	m.PaidAt = o.PaidAt
	m.CancelledAt = o.CancelledAt
	m.Version = o.Version
}

// OrderProductModel is the persistence model for sales.OrderProduct
type OrderProductModel struct {
	ID           int64           `gorm:"primaryKey;autoIncrement"`
	OrderID      int64           `gorm:"not null;index"`
	ProductID    int64           `gorm:"not null;index"`
	ProductName  string          `gorm:"type:varchar(200);not null"`
	ProductSKU   string          `gorm:"column:product_sku;type:varchar(100)"`
	ProductPrice decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Quantity     int             `gorm:"not null"`
	CreatedAt    time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (OrderProductModel) TableName() string {
	return "order_products"
}

// ToDomain converts the model to a domain OrderProduct
func (m *OrderProductModel) ToDomain() sales.OrderProduct {
	return sales.OrderProduct{
		ID:           m.ID,
		OrderID:      m.OrderID,
		ProductID:    m.ProductID,
		ProductName:  m.ProductName,
		ProductSKU:   m.ProductSKU,
		ProductPrice: m.ProductPrice,
		Quantity:     m.Quantity,
	}
}

// OrderProductModelFromDomain creates a model for an order line
func OrderProductModelFromDomain(orderID int64, p sales.OrderProduct) *OrderProductModel {
	return &OrderProductModel{
		ID:           p.ID,
		OrderID:      orderID,
		ProductID:    p.ProductID,
		ProductName:  p.ProductName,
		ProductSKU:   p.ProductSKU,
		ProductPrice: p.ProductPrice,
		Quantity:     p.Quantity,
		CreatedAt:    time.Now(),
	}
}
