package cart

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/shop/backend/internal/domain/cart"
	"github.com/shop/backend/internal/domain/catalog"
	"github.com/shop/backend/internal/domain/shared"
	"github.com/shop/backend/internal/domain/shipping"
	"github.com/shop/backend/internal/infrastructure/logger"
)

// ErrProductUnavailable is returned when a product is inactive or short on stock
var ErrProductUnavailable = shared.NewDomainError("PRODUCT_UNAVAILABLE", "Product is not available in the requested quantity")

// Service is the shopping cart of one storefront session. Every operation
// takes the cart id stored in the session.
type Service struct {
	carts    cart.Repository
	products catalog.ProductRepository
	taxRate  decimal.Decimal
	logger   *zap.Logger
}

// NewService creates a cart service. taxRate is a percentage.
func NewService(carts cart.Repository, products catalog.ProductRepository, taxRate float64, l *zap.Logger) *Service {
	if l == nil {
		l = zap.NewNop()
	}
	return &Service{
		carts:    carts,
		products: products,
		taxRate:  decimal.NewFromFloat(taxRate),
		logger:   l.Named("cart"),
	}
}

// TaxRate returns the configured tax percentage
func (s *Service) TaxRate() decimal.Decimal {
	return s.taxRate
}

// AddToCart adds qty units of a product, snapshotting its name and price
func (s *Service) AddToCart(ctx context.Context, cartID string, productID int64, qty int) error {
	p, err := s.products.FindProductByID(ctx, productID)
	if err != nil {
		return err
	}
	c, err := s.carts.GetCart(ctx, cartID)
	if err != nil {
		return err
	}

	inCart := 0
	for _, it := range c.Items {
		if it.ProductID == productID {
			inCart = it.Quantity
		}
	}
	if !p.CanSell(inCart + qty) {
		return ErrProductUnavailable
	}

	if err := c.Add(cart.Item{ProductID: p.ID, Name: p.Name, SKU: p.SKU, Price: p.Price, Quantity: qty}); err != nil {
		return err
	}
	if err := s.carts.SaveCart(ctx, c); err != nil {
		return err
	}
	logger.Enrich(ctx, s.logger).Debug("Added to cart", zap.Int64("product_id", productID), zap.Int("quantity", qty))
	return nil
}

// UpdateQuantityInCart sets the units of a product; zero removes the line
func (s *Service) UpdateQuantityInCart(ctx context.Context, cartID string, productID int64, qty int) error {
	c, err := s.carts.GetCart(ctx, cartID)
	if err != nil {
		return err
	}
	if qty > 0 {
		p, err := s.products.FindProductByID(ctx, productID)
		if err != nil {
			return err
		}
		if !p.CanSell(qty) {
			return ErrProductUnavailable
		}
	}
	if err := c.UpdateQuantity(productID, qty); err != nil {
		return err
	}
	return s.carts.SaveCart(ctx, c)
}

// RemoveFromCart drops a product line
func (s *Service) RemoveFromCart(ctx context.Context, cartID string, productID int64) error {
	c, err := s.carts.GetCart(ctx, cartID)
	if err != nil {
		return err
	}
	if err := c.Remove(productID); err != nil {
		return err
	}
	return s.carts.SaveCart(ctx, c)
}

// CountItems is the number of units in the cart
func (s *Service) CountItems(ctx context.Context, cartID string) (int, error) {
	c, err := s.carts.GetCart(ctx, cartID)
	if err != nil {
		return 0, err
	}
	return c.Count(), nil
}

// GetCartItems returns the cart lines
func (s *Service) GetCartItems(ctx context.Context, cartID string) ([]cart.Item, error) {
	c, err := s.carts.GetCart(ctx, cartID)
	if err != nil {
		return nil, err
	}
	return c.Items, nil
}

// GetSubTotal is the sum of the line totals
func (s *Service) GetSubTotal(ctx context.Context, cartID string) (decimal.Decimal, error) {
	c, err := s.carts.GetCart(ctx, cartID)
	if err != nil {
		return decimal.Zero, err
	}
	return c.SubTotal(), nil
}

// GetTax is subtotal × tax rate / 100
func (s *Service) GetTax(ctx context.Context, cartID string) (decimal.Decimal, error) {
	c, err := s.carts.GetCart(ctx, cartID)
	if err != nil {
		return decimal.Zero, err
	}
	return c.Tax(s.taxRate), nil
}

// GetTotal is subtotal + tax + shipping rounded to decimals places
func (s *Service) GetTotal(ctx context.Context, cartID string, decimals int32, shipping decimal.Decimal) (decimal.Decimal, error) {
	c, err := s.carts.GetCart(ctx, cartID)
	if err != nil {
		return decimal.Zero, err
	}
	return c.Total(decimals, shipping, s.taxRate), nil
}

// GetShippingFee is zero for a free courier, else its cost
func (s *Service) GetShippingFee(courier *shipping.Courier) decimal.Decimal {
	if courier == nil {
		return decimal.Zero
	}
	return courier.ShippingFee()
}

// ClearCart empties the cart
func (s *Service) ClearCart(ctx context.Context, cartID string) error {
	return s.carts.ClearCart(ctx, cartID)
}

// Summary returns the cart with its totals, without shipping
func (s *Service) Summary(ctx context.Context, cartID string) (*CartResponse, error) {
	c, err := s.carts.GetCart(ctx, cartID)
	if err != nil {
		return nil, err
	}
	return &CartResponse{
		Items:    ToItemResponses(c.Items),
		Count:    c.Count(),
		SubTotal: c.SubTotal(),
		Tax:      c.Tax(s.taxRate),
		Total:    c.Total(2, decimal.Zero, s.taxRate),
	}, nil
}
