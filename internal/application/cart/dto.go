package cart

import (
	"github.com/shopspring/decimal"

	"github.com/shop/backend/internal/domain/cart"
)

// AddItemRequest puts a product in the cart
type AddItemRequest struct {
	ProductID int64 `json:"product_id" binding:"required,gt=0"`
	Quantity  int   `json:"quantity" binding:"required,min=1,max=999"`
}

// UpdateItemRequest sets the quantity of a cart line; zero removes it
type UpdateItemRequest struct {
	Quantity int `json:"quantity" binding:"min=0,max=999"`
}

// ItemResponse is one cart line
type ItemResponse struct {
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	SKU       string          `json:"sku"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// CartResponse is the cart with its totals, before shipping
type CartResponse struct {
	Items    []ItemResponse  `json:"items"`
	Count    int             `json:"count"`
	SubTotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

// ToItemResponses converts cart lines
func ToItemResponses(items []cart.Item) []ItemResponse {
	out := make([]ItemResponse, len(items))
	for i, it := range items {
		out[i] = ItemResponse{
			ProductID: it.ProductID,
			Name:      it.Name,
			SKU:       it.SKU,
			Price:     it.Price,
			Quantity:  it.Quantity,
			LineTotal: it.LineTotal(),
		}
	}
	return out
}
