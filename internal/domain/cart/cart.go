package cart

import (
	"time"

	"github.com/shop/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// MaxLineQuantity caps the units of one product in a cart
const MaxLineQuantity = 999

// Item is one product line in a cart. Name, SKU and Price are snapshots
// taken when the product was added.
type Item struct {
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	SKU       string          `json:"sku"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
}

// LineTotal is price times quantity
func (i Item) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Cart is the shopping cart bound to one storefront session
type Cart struct {
	ID        string    `json:"id"`
	Items     []Item    `json:"items"`
	UpdatedAt time.Time `json:"updated_at"`
}

// New creates an empty cart
func New(id string) *Cart {
	return &Cart{
		ID:        id,
		Items:     make([]Item, 0),
		UpdatedAt: time.Now(),
	}
}

// Add puts qty units of a product in the cart, merging with an existing line
func (c *Cart) Add(item Item) error {
	if item.Quantity <= 0 {
		return shared.NewDomainError("INVALID_CART_QUANTITY", "Quantity must be positive")
	}
	for i := range c.Items {
		if c.Items[i].ProductID == item.ProductID {
			qty := c.Items[i].Quantity + item.Quantity
			if qty > MaxLineQuantity {
				return shared.NewDomainError("INVALID_CART_QUANTITY", "Quantity exceeds the allowed maximum")
			}
			c.Items[i].Quantity = qty
			c.Items[i].Price = item.Price
			c.touch()
			return nil
		}
	}
	if item.Quantity > MaxLineQuantity {
		return shared.NewDomainError("INVALID_CART_QUANTITY", "Quantity exceeds the allowed maximum")
	}
	c.Items = append(c.Items, item)
	c.touch()
	return nil
}

// UpdateQuantity sets the units of a product; zero removes the line
func (c *Cart) UpdateQuantity(productID int64, qty int) error {
	if qty < 0 || qty > MaxLineQuantity {
		return shared.NewDomainError("INVALID_CART_QUANTITY", "Quantity is out of range")
	}
	if qty == 0 {
		return c.Remove(productID)
	}
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity = qty
			c.touch()
			return nil
		}
	}
	return shared.NewDomainError("CART_ITEM_NOT_FOUND", "Product is not in the cart")
}

// Remove drops a product line
func (c *Cart) Remove(productID int64) error {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			c.touch()
			return nil
		}
	}
	return shared.NewDomainError("CART_ITEM_NOT_FOUND", "Product is not in the cart")
}

// Clear empties the cart
func (c *Cart) Clear() {
	c.Items = make([]Item, 0)
	c.touch()
}

// IsEmpty reports whether the cart has no lines
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Count is the total number of units in the cart
func (c *Cart) Count() int {
	n := 0
	for _, item := range c.Items {
		n += item.Quantity
	}
	return n
}

// SubTotal is the sum of all line totals
func (c *Cart) SubTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.LineTotal())
	}
	return total
}

// Tax is the subtotal times ratePercent/100, rounded to cents
func (c *Cart) Tax(ratePercent decimal.Decimal) decimal.Decimal {
	return c.SubTotal().Mul(ratePercent).Div(decimal.NewFromInt(100)).Round(2)
}

// Total is subtotal plus tax plus shipping, rounded to decimals places
func (c *Cart) Total(decimals int32, shipping, ratePercent decimal.Decimal) decimal.Decimal {
	return c.SubTotal().Add(c.Tax(ratePercent)).Add(shipping).Round(decimals)
}

func (c *Cart) touch() {
	c.UpdatedAt = time.Now()
}
