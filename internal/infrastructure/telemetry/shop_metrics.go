package telemetry

import (
	"context"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// ShopMetrics records checkout and order business metrics
type ShopMetrics struct {
	paymentsProcessed metric.Int64Counter
	paymentsExecuted  metric.Int64Counter
	revenue           metric.Float64Counter
	orderAmount       metric.Float64Histogram
	ordersExpired     metric.Int64Counter
}

// NewShopMetrics creates the instruments on meter
func NewShopMetrics(meter metric.Meter) (*ShopMetrics, error) {
	m := &ShopMetrics{}
	var err error

	if m.paymentsProcessed, err = meter.Int64Counter("shop.payments.processed",
		metric.WithDescription("Payments sent to a gateway for approval"),
		metric.WithUnit("{payment}")); err != nil {
		return nil, err
	}
	if m.paymentsExecuted, err = meter.Int64Counter("shop.payments.executed",
		metric.WithDescription("Approved payments executed against a gateway"),
		metric.WithUnit("{payment}")); err != nil {
		return nil, err
	}
	if m.revenue, err = meter.Float64Counter("shop.revenue",
		metric.WithDescription("Amount collected from executed payments")); err != nil {
		return nil, err
	}
	if m.orderAmount, err = meter.Float64Histogram("shop.order.amount",
		metric.WithDescription("Order totals at payment time"),
		metric.WithExplicitBucketBoundaries(10, 25, 50, 100, 250, 500, 1000, 2500, 5000)); err != nil {
		return nil, err
	}
	if m.ordersExpired, err = meter.Int64Counter("shop.orders.expired",
		metric.WithDescription("Pending orders cancelled after the payment window"),
		metric.WithUnit("{order}")); err != nil {
		return nil, err
	}
	return m, nil
}

func outcome(err error) attribute.KeyValue {
	if err != nil {
		return attribute.String("outcome", "error")
	}
	return attribute.String("outcome", "ok")
}

// PaymentProcessed counts a gateway Process call
func (m *ShopMetrics) PaymentProcessed(ctx context.Context, gateway string, err error) {
	m.paymentsProcessed.Add(ctx, 1, metric.WithAttributes(attribute.String("gateway", gateway), outcome(err)))
}

// PaymentExecuted counts a gateway Execute call and, on success, the amount
func (m *ShopMetrics) PaymentExecuted(ctx context.Context, gateway string, amount decimal.Decimal, err error) {
	attrs := metric.WithAttributes(attribute.String("gateway", gateway), outcome(err))
	m.paymentsExecuted.Add(ctx, 1, attrs)
	if err != nil {
		return
	}
	f, _ := amount.Float64()
	m.revenue.Add(ctx, f, metric.WithAttributes(attribute.String("gateway", gateway)))
	m.orderAmount.Record(ctx, f, metric.WithAttributes(attribute.String("gateway", gateway)))
}

// OrdersExpired counts pending orders cancelled by the expiry job
func (m *ShopMetrics) OrdersExpired(ctx context.Context, n int) {
	if n > 0 {
		m.ordersExpired.Add(ctx, int64(n))
	}
}
