package catalog

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/shop/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ProductStatus represents whether a product is shown in the shop
type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "active"
	ProductStatusInactive ProductStatus = "inactive"
)

var (
	skuRegex       = regexp.MustCompile(`^[A-Z0-9][A-Z0-9_-]*$`)
	slugSeparators = regexp.MustCompile(`[^a-z0-9]+`)
)

// Product is a sellable catalog item
type Product struct {
	shared.BaseAggregateRoot
	SKU         string
	Name        string
	Slug        string
	Description string
	Cover       string
	Quantity    int
	Price       decimal.Decimal
	Status      ProductStatus
}

// ProductParams carries the writable fields of a product.
// Slug is derived from Name when empty.
type ProductParams struct {
	SKU         string
	Name        string
	Slug        string
	Description string
	Quantity    int
	Price       decimal.Decimal
	Status      ProductStatus
}

// Validate checks the params against the product rules
func (p ProductParams) Validate() error {
	sku := strings.ToUpper(strings.TrimSpace(p.SKU))
	if sku == "" {
		return shared.NewDomainError("INVALID_PRODUCT_SKU", "Product SKU cannot be empty")
	}
	if len(sku) > 50 {
		return shared.NewDomainError("INVALID_PRODUCT_SKU", "Product SKU cannot exceed 50 characters")
	}
	if !skuRegex.MatchString(sku) {
		return shared.NewDomainError("INVALID_PRODUCT_SKU", "Product SKU can only contain letters, numbers, '-' and '_'")
	}
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot exceed 200 characters")
	}
	if p.Price.IsNegative() {
		return shared.NewDomainError("INVALID_PRODUCT_PRICE", "Product price cannot be negative")
	}
	if p.Quantity < 0 {
		return shared.NewDomainError("INVALID_PRODUCT_QUANTITY", "Product quantity cannot be negative")
	}
	switch p.Status {
	case "", ProductStatusActive, ProductStatusInactive:
	default:
		return shared.NewDomainError("INVALID_PRODUCT_STATUS", "Product status must be active or inactive")
	}
	return nil
}

// NewProduct creates a new product
func NewProduct(params ProductParams) (*Product, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	p := &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Status:            ProductStatusActive,
	}
	p.apply(params)
	return p, nil
}

// Update replaces the product's writable fields
func (p *Product) Update(params ProductParams) error {
	if err := params.Validate(); err != nil {
		return err
	}
	p.apply(params)
	p.Touch()

	p.AddDomainEvent(NewProductUpdatedEvent(p))
	return nil
}

// SetCover records the storage key of the product's cover image
func (p *Product) SetCover(key string) {
	p.Cover = key
	p.Touch()
}

// IsActive reports whether the product can be sold
func (p *Product) IsActive() bool {
	return p.Status == ProductStatusActive
}

// CanSell reports whether qty units are in stock
func (p *Product) CanSell(qty int) bool {
	return p.IsActive() && qty > 0 && p.Quantity >= qty
}

// DecreaseQuantity takes qty units out of stock
func (p *Product) DecreaseQuantity(qty int) error {
	if qty <= 0 {
		return shared.NewDomainError("INVALID_PRODUCT_QUANTITY", "Quantity must be positive")
	}
	if p.Quantity < qty {
		return shared.ErrInsufficientStock
	}
	p.Quantity -= qty
	p.Touch()
	return nil
}

func (p *Product) apply(params ProductParams) {
	p.SKU = strings.ToUpper(strings.TrimSpace(params.SKU))
	p.Name = strings.TrimSpace(params.Name)
	p.Description = params.Description
	p.Quantity = params.Quantity
	p.Price = params.Price
	if params.Status != "" {
		p.Status = params.Status
	}
	p.Slug = strings.TrimSpace(params.Slug)
	if p.Slug == "" {
		p.Slug = Slugify(p.Name)
	}
}

// Slugify turns a product name into a URL slug, dropping accents
// ("Café Crème" becomes "cafe-creme")
func Slugify(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	plain, _, err := transform.String(t, name)
	if err != nil {
		plain = name
	}
	slug := slugSeparators.ReplaceAllString(strings.ToLower(plain), "-")
	return strings.Trim(slug, "-")
}
