package shipping

import (
	"net/url"
	"strings"

	"github.com/shop/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Courier is a shipping method with an associated fee
type Courier struct {
	shared.BaseEntity
	Name        string
	Description string
	URL         string
	IsFree      bool
	Cost        decimal.Decimal
	Status      bool
}

// CourierParams carries the writable fields of a courier
type CourierParams struct {
	Name        string
	Description string
	URL         string
	IsFree      bool
	Cost        decimal.Decimal
	Status      bool
}

// Validate checks the params against the courier rules
func (p CourierParams) Validate() error {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return shared.NewDomainError("INVALID_COURIER_NAME", "Courier name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_COURIER_NAME", "Courier name cannot exceed 100 characters")
	}
	if p.Cost.IsNegative() {
		return shared.NewDomainError("INVALID_COURIER_COST", "Courier cost cannot be negative")
	}
	if p.URL != "" {
		if u, err := url.Parse(p.URL); err != nil || u.Scheme == "" || u.Host == "" {
			return shared.NewDomainError("INVALID_COURIER_URL", "Courier URL must be an absolute URL")
		}
	}
	return nil
}

// NewCourier creates a new courier
func NewCourier(params CourierParams) (*Courier, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	c := &Courier{BaseEntity: shared.NewBaseEntity()}
	c.apply(params)
	return c, nil
}

// Update replaces the courier's writable fields
func (c *Courier) Update(params CourierParams) error {
	if err := params.Validate(); err != nil {
		return err
	}
	c.apply(params)
	c.Touch()
	return nil
}

// ShippingFee is what the courier charges for a delivery
func (c *Courier) ShippingFee() decimal.Decimal {
	if c.IsFree {
		return decimal.Zero
	}
	return c.Cost
}

func (c *Courier) apply(params CourierParams) {
	c.Name = strings.TrimSpace(params.Name)
	c.Description = params.Description
	c.URL = strings.TrimSpace(params.URL)
	c.IsFree = params.IsFree
	c.Cost = params.Cost
	c.Status = params.Status
}
