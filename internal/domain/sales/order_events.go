package sales

import (
	"github.com/shop/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Aggregate type constant for Order
const AggregateTypeOrder = "Order"

// Order domain event types
const (
	EventTypeOrderPlaced        = "OrderPlaced"
	EventTypeOrderPaid          = "OrderPaid"
	EventTypeOrderCancelled     = "OrderCancelled"
	EventTypeOrderStatusChanged = "OrderStatusChanged"
)

// OrderLine is the event payload for one ordered product
type OrderLine struct {
	ProductID   int64           `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}

func orderLines(o *Order) []OrderLine {
	lines := make([]OrderLine, 0, len(o.Products))
	for _, p := range o.Products {
		lines = append(lines, OrderLine{
			ProductID:   p.ProductID,
			ProductName: p.ProductName,
			Quantity:    p.Quantity,
			Price:       p.ProductPrice,
		})
	}
	return lines
}

// OrderPlacedEvent is published when checkout records a pending order
type OrderPlacedEvent struct {
	shared.BaseDomainEvent
	Reference  string          `json:"reference"`
	CustomerID int64           `json:"customer_id"`
	Payment    string          `json:"payment"`
	Total      decimal.Decimal `json:"total"`
}

// NewOrderPlacedEvent creates a new OrderPlacedEvent
func NewOrderPlacedEvent(o *Order) *OrderPlacedEvent {
	return &OrderPlacedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderPlaced, AggregateTypeOrder, o.ID),
		Reference:       o.Reference,
		CustomerID:      o.CustomerID,
		Payment:         o.Payment,
		Total:           o.Total,
	}
}

// OrderPaidEvent is published when the payment of an order is captured
type OrderPaidEvent struct {
	shared.BaseDomainEvent
	Reference     string          `json:"reference"`
	CustomerID    int64           `json:"customer_id"`
	TransactionID string          `json:"transaction_id"`
	TotalPaid     decimal.Decimal `json:"total_paid"`
	Lines         []OrderLine     `json:"lines"`
}

// NewOrderPaidEvent creates a new OrderPaidEvent
func NewOrderPaidEvent(o *Order) *OrderPaidEvent {
	return &OrderPaidEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderPaid, AggregateTypeOrder, o.ID),
		Reference:       o.Reference,
		CustomerID:      o.CustomerID,
		TransactionID:   o.TransactionID,
		TotalPaid:       o.TotalPaid,
		Lines:           orderLines(o),
	}
}

// OrderCancelledEvent is published when a pending order is cancelled
type OrderCancelledEvent struct {
	shared.BaseDomainEvent
	Reference string `json:"reference"`
	Reason    string `json:"reason"`
}

// NewOrderCancelledEvent creates a new OrderCancelledEvent
func NewOrderCancelledEvent(o *Order, reason string) *OrderCancelledEvent {
	return &OrderCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderCancelled, AggregateTypeOrder, o.ID),
		Reference:       o.Reference,
		Reason:          reason,
	}
}

// OrderStatusChangedEvent is published on fulfilment status changes
type OrderStatusChangedEvent struct {
	shared.BaseDomainEvent
	Reference string      `json:"reference"`
	From      OrderStatus `json:"from"`
	To        OrderStatus `json:"to"`
}

// NewOrderStatusChangedEvent creates a new OrderStatusChangedEvent
func NewOrderStatusChangedEvent(o *Order, from OrderStatus) *OrderStatusChangedEvent {
	return &OrderStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderStatusChanged, AggregateTypeOrder, o.ID),
		Reference:       o.Reference,
		From:            from,
		To:              o.Status,
	}
}
