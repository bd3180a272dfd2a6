package sales

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/shop/backend/internal/domain/sales"
)

// OrderListFilter is the query of an order listing
type OrderListFilter struct {
	Status   string `form:"status" binding:"omitempty,oneof=pending paid shipped delivered cancelled"`
	OrderBy  string `form:"order_by" binding:"omitempty,oneof=id reference status total customer_id paid_at created_at updated_at"`
	Sort     string `form:"sort" binding:"omitempty,oneof=asc desc"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// ChangeStatusRequest moves an order to another status
type ChangeStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=paid shipped delivered cancelled"`
}

// OrderProductResponse is one order line
type OrderProductResponse struct {
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	SKU       string          `json:"sku"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID            int64                  `json:"id"`
	Reference     string                 `json:"reference"`
	CustomerID    int64                  `json:"customer_id"`
	CourierID     int64                  `json:"courier_id"`
	AddressID     int64                  `json:"address_id"`
	Status        string                 `json:"status"`
	Payment       string                 `json:"payment"`
	TransactionID string                 `json:"transaction_id,omitempty"`
	TotalProducts decimal.Decimal        `json:"total_products"`
	Discounts     decimal.Decimal        `json:"discounts"`
	Tax           decimal.Decimal        `json:"tax"`
	TotalShipping decimal.Decimal        `json:"total_shipping"`
	Total         decimal.Decimal        `json:"total"`
	TotalPaid     decimal.Decimal        `json:"total_paid"`
	PaidAt        *time.Time             `json:"paid_at,omitempty"`
	CancelledAt   *time.Time             `json:"cancelled_at,omitempty"`
	Products      []OrderProductResponse `json:"products,omitempty"`
	CreatedAt     time.Time              `json:"created_at"`
	UpdatedAt     time.Time              `json:"updated_at"`
}

// ToOrderResponse converts a domain order
func ToOrderResponse(o *sales.Order) OrderResponse {
	resp := OrderResponse{
		ID:            o.ID,
		Reference:     o.Reference,
		CustomerID:    o.CustomerID,
		CourierID:     o.CourierID,
		AddressID:     o.AddressID,
		Status:        string(o.Status),
		Payment:       o.Payment,
		TransactionID: o.TransactionID,
		TotalProducts: o.TotalProducts,
		Discounts:     o.Discounts,
		Tax:           o.Tax,
		TotalShipping: o.TotalShipping,
		Total:         o.Total,
		TotalPaid:     o.TotalPaid,
		PaidAt:        o.PaidAt,
		CancelledAt:   o.CancelledAt,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
	for _, p := range o.Products {
		resp.Products = append(resp.Products, OrderProductResponse{
			ProductID: p.ProductID,
			Name:      p.ProductName,
			SKU:       p.ProductSKU,
			Price:     p.ProductPrice,
			Quantity:  p.Quantity,
			LineTotal: p.LineTotal(),
		})
	}
	return resp
}

// ToOrderResponses converts a slice of domain orders
func ToOrderResponses(os []sales.Order) []OrderResponse {
	out := make([]OrderResponse, len(os))
	for i := range os {
		out[i] = ToOrderResponse(&os[i])
	}
	return out
}
