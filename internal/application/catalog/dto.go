package catalog

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/shop/backend/internal/domain/catalog"
)

// ProductRequest creates or replaces a product
type ProductRequest struct {
	SKU         string          `json:"sku" binding:"required,min=1,max=50"`
	Name        string          `json:"name" binding:"required,min=1,max=200"`
	Slug        string          `json:"slug" binding:"omitempty,max=255"`
	Description string          `json:"description" binding:"max=5000"`
	Quantity    int             `json:"quantity" binding:"gte=0"`
	Price       decimal.Decimal `json:"price"`
	Status      string          `json:"status" binding:"omitempty,oneof=active inactive"`
}

func (r ProductRequest) params() catalog.ProductParams {
	return catalog.ProductParams{
		SKU:         r.SKU,
		Name:        r.Name,
		Slug:        r.Slug,
		Description: r.Description,
		Quantity:    r.Quantity,
		Price:       r.Price,
		Status:      catalog.ProductStatus(r.Status),
	}
}

// ProductListFilter is the query of a product listing
type ProductListFilter struct {
	Search   string `form:"search" binding:"max=100"`
	OrderBy  string `form:"order_by" binding:"omitempty,oneof=id name sku slug price quantity status created_at updated_at"`
	Sort     string `form:"sort" binding:"omitempty,oneof=asc desc"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID          int64           `json:"id"`
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	Slug        string          `json:"slug"`
	Description string          `json:"description,omitempty"`
	Cover       string          `json:"cover,omitempty"`
	CoverURL    string          `json:"cover_url,omitempty"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ToProductResponse converts a domain product. CoverURL is filled by the service.
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		SKU:         p.SKU,
		Name:        p.Name,
		Slug:        p.Slug,
		Description: p.Description,
		Cover:       p.Cover,
		Quantity:    p.Quantity,
		Price:       p.Price,
		Status:      string(p.Status),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
