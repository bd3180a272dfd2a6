package sales

import (
	"fmt"
	"time"

	"github.com/shop/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the lifecycle state of an order
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// IsValid checks if the status is a known OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusPaid, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo checks if the status can move to target
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	switch s {
	case OrderStatusPending:
		return target == OrderStatusPaid || target == OrderStatusCancelled
	case OrderStatusPaid:
		return target == OrderStatusShipped
	case OrderStatusShipped:
		return target == OrderStatusDelivered
	}
	return false
}

// OrderProduct is a product line of an order, priced at checkout time
type OrderProduct struct {
	ID           int64
	OrderID      int64
	ProductID    int64
	ProductName  string
	ProductSKU   string
	ProductPrice decimal.Decimal
	Quantity     int
}

// LineTotal is price times quantity
func (p OrderProduct) LineTotal() decimal.Decimal {
	return p.ProductPrice.Mul(decimal.NewFromInt(int64(p.Quantity)))
}

// Order is a customer purchase placed through checkout
type Order struct {
	shared.BaseAggregateRoot
	Reference     string
	CourierID     int64
	CustomerID    int64
	AddressID     int64
	Status        OrderStatus
	Payment       string
	TransactionID string
	Discounts     decimal.Decimal
	TotalProducts decimal.Decimal
	Tax           decimal.Decimal
	TotalShipping decimal.Decimal
	Total         decimal.Decimal
	TotalPaid     decimal.Decimal
	Invoice       string
	PaidAt        *time.Time
	CancelledAt   *time.Time
	Products      []OrderProduct
}

// PlaceOrderParams carries what checkout knows when an order is placed
type PlaceOrderParams struct {
	Reference     string
	CourierID     int64
	CustomerID    int64
	AddressID     int64
	Payment       string
	TransactionID string
	Tax           decimal.Decimal
	TotalShipping decimal.Decimal
	Products      []OrderProduct
}

// PlaceOrder creates a pending order and computes its totals from the products
func PlaceOrder(params PlaceOrderParams) (*Order, error) {
	if params.Reference == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_REFERENCE", "Order reference cannot be empty")
	}
	if params.CustomerID <= 0 || params.CourierID <= 0 || params.AddressID <= 0 {
		return nil, shared.NewDomainError("INVALID_ORDER", "Order requires a customer, courier and address")
	}
	if len(params.Products) == 0 {
		return nil, shared.NewDomainError("NO_ITEMS", "Cannot place an order without products")
	}
	if params.Payment == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_PAYMENT", "Payment method is required")
	}

	o := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Reference:         params.Reference,
		CourierID:         params.CourierID,
		CustomerID:        params.CustomerID,
		AddressID:         params.AddressID,
		Status:            OrderStatusPending,
		Payment:           params.Payment,
		TransactionID:     params.TransactionID,
		Discounts:         decimal.Zero,
		Tax:               params.Tax,
		TotalShipping:     params.TotalShipping,
		TotalPaid:         decimal.Zero,
		Products:          params.Products,
	}
	o.recalculateTotals()
	return o, nil
}

// MarkPaid records a successful payment
func (o *Order) MarkPaid(transactionID string, amount decimal.Decimal) error {
	if !o.Status.CanTransitionTo(OrderStatusPaid) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot mark order paid in %s status", o.Status))
	}

	now := time.Now()
	o.Status = OrderStatusPaid
	if transactionID != "" {
		o.TransactionID = transactionID
	}
	o.TotalPaid = amount
	o.PaidAt = &now
	o.UpdatedAt = now

	o.AddDomainEvent(NewOrderPaidEvent(o))
	return nil
}

// Cancel cancels a pending order
func (o *Order) Cancel(reason string) error {
	if !o.Status.CanTransitionTo(OrderStatusCancelled) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot cancel order in %s status", o.Status))
	}

	now := time.Now()
	o.Status = OrderStatusCancelled
	o.CancelledAt = &now
	o.UpdatedAt = now

	o.AddDomainEvent(NewOrderCancelledEvent(o, reason))
	return nil
}

// ChangeStatus moves a paid order along the fulfilment path
func (o *Order) ChangeStatus(target OrderStatus) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_ORDER_STATUS", fmt.Sprintf("Unknown order status %q", target))
	}
	switch target {
	case OrderStatusPaid:
		return o.MarkPaid("", o.Total)
	case OrderStatusCancelled:
		return o.Cancel("changed by staff")
	}
	if !o.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot move order from %s to %s", o.Status, target))
	}

	from := o.Status
	o.Status = target
	o.Touch()

	o.AddDomainEvent(NewOrderStatusChangedEvent(o, from))
	return nil
}

// IsPending reports whether the order awaits payment
func (o *Order) IsPending() bool {
	return o.Status == OrderStatusPending
}

// ItemCount is the total number of units ordered
func (o *Order) ItemCount() int {
	n := 0
	for _, p := range o.Products {
		n += p.Quantity
	}
	return n
}

func (o *Order) recalculateTotals() {
	products := decimal.Zero
	for _, p := range o.Products {
		products = products.Add(p.LineTotal())
	}
	o.TotalProducts = products
	o.Total = products.Sub(o.Discounts).Add(o.Tax).Add(o.TotalShipping).Round(2)
}
