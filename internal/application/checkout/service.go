// Package checkout turns a shopper's cart into a paid order: it renders the
// checkout page, sends the shopper to a payment gateway and captures the
// approved payment when they come back.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	cartapp "github.com/shop/backend/internal/application/cart"
	customerapp "github.com/shop/backend/internal/application/customer"
	shippingapp "github.com/shop/backend/internal/application/shipping"
	"github.com/shop/backend/internal/domain/customer"
	"github.com/shop/backend/internal/domain/payment"
	"github.com/shop/backend/internal/domain/sales"
	"github.com/shop/backend/internal/domain/shared"
	"github.com/shop/backend/internal/domain/shipping"
	"github.com/shop/backend/internal/infrastructure/logger"
	"github.com/shop/backend/internal/infrastructure/telemetry"
)

// StripeComingSoon is shown when the shopper picks Stripe
const StripeComingSoon = "Stripe payment is coming soon!"

// Errors returned by the checkout flow
var (
	ErrEmptyCart              = shared.NewDomainError("CART_EMPTY", "Your cart is empty")
	ErrCourierUnavailable     = shared.NewDomainError("COURIER_UNAVAILABLE", "The selected courier is not available")
	ErrAddressNotFound        = shared.NewDomainError("NOT_FOUND", "Address not found")
	ErrOrderNotFound          = shared.NewDomainError("NOT_FOUND", "No order is waiting for this payment")
	ErrPaymentAlreadyExecuted = shared.NewDomainError("PAYMENT_ALREADY_EXECUTED", "This payment has already been executed")
)

// PaymentMetrics records gateway calls
type PaymentMetrics interface {
	PaymentProcessed(ctx context.Context, gateway string, err error)
	PaymentExecuted(ctx context.Context, gateway string, amount decimal.Decimal, err error)
}

type noopMetrics struct{}

func (noopMetrics) PaymentProcessed(context.Context, string, error) {}

func (noopMetrics) PaymentExecuted(context.Context, string, decimal.Decimal, error) {}

// Config holds the checkout settings
type Config struct {
	Defaults Defaults
	Currency string
	// BaseURL is the public API URL. ReturnURL and CancelURL default to the
	// checkout execute and cancel routes under it.
	BaseURL        string
	ReturnURL      string
	CancelURL      string
	IdempotencyTTL time.Duration
}

// Deps groups the collaborators of Service
type Deps struct {
	Cart        *cartapp.Service
	Customers   customer.CustomerRepository
	Addresses   customer.AddressRepository
	Couriers    shipping.CourierRepository
	Orders      sales.OrderRepository
	References  sales.ReferenceGenerator
	Gateways    payment.GatewayRegistry
	Idempotency shared.IdempotencyStore
	Publisher   shared.EventPublisher
	Metrics     PaymentMetrics
	Logger      *zap.Logger
}

// Service runs the checkout flow
type Service struct {
	cfg         Config
	cart        *cartapp.Service
	customers   customer.CustomerRepository
	addresses   customer.AddressRepository
	couriers    shipping.CourierRepository
	orders      sales.OrderRepository
	references  sales.ReferenceGenerator
	gateways    payment.GatewayRegistry
	idempotency shared.IdempotencyStore
	publisher   shared.EventPublisher
	metrics     PaymentMetrics
	validate    *validator.Validate
	logger      *zap.Logger
}

// NewService creates a checkout service
func NewService(cfg Config, deps Deps) *Service {
	if cfg.Defaults == (Defaults{}) {
		cfg.Defaults = DefaultSelection
	}
	if cfg.Currency == "" {
		cfg.Currency = "USD"
	}
	if cfg.IdempotencyTTL <= 0 {
		cfg.IdempotencyTTL = shared.DefaultIdempotencyTTL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.ReturnURL == "" {
		cfg.ReturnURL = cfg.BaseURL + "/api/v1/checkout/execute"
	}
	if cfg.CancelURL == "" {
		cfg.CancelURL = cfg.BaseURL + "/api/v1/checkout/cancel"
	}

	l := deps.Logger
	if l == nil {
		l = zap.NewNop()
	}
	metrics := deps.Metrics
	if metrics == nil {
		metrics = noopMetrics{}
	}

	v := validator.New()
	v.SetTagName("binding")

	return &Service{
		cfg:         cfg,
		cart:        deps.Cart,
		customers:   deps.Customers,
		addresses:   deps.Addresses,
		couriers:    deps.Couriers,
		orders:      deps.Orders,
		references:  deps.References,
		gateways:    deps.Gateways,
		idempotency: deps.Idempotency,
		publisher:   deps.Publisher,
		metrics:     metrics,
		validate:    v,
		logger:      l.Named("checkout"),
	}
}

// Defaults returns the selection used for values missing from a session
func (s *Service) Defaults() Defaults {
	return s.cfg.Defaults
}

// Index builds the checkout page for the signed-in customer
func (s *Service) Index(ctx context.Context, customerID int64, sess Session) (*IndexView, error) {
	sess = sess.withDefaults(s.cfg.Defaults)

	c, err := s.customers.FindCustomerByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	courier, err := s.couriers.FindCourierByID(ctx, sess.CourierID)
	if err != nil {
		return nil, err
	}

	fee := s.cart.GetShippingFee(courier)
	items, err := s.cart.GetCartItems(ctx, sess.CartID)
	if err != nil {
		return nil, err
	}
	subtotal, err := s.cart.GetSubTotal(ctx, sess.CartID)
	if err != nil {
		return nil, err
	}
	tax, err := s.cart.GetTax(ctx, sess.CartID)
	if err != nil {
		return nil, err
	}
	total, err := s.cart.GetTotal(ctx, sess.CartID, 2, fee)
	if err != nil {
		return nil, err
	}

	couriers, err := s.activeCouriers(ctx)
	if err != nil {
		return nil, err
	}

	view := &IndexView{
		Customer:    customerapp.ToCustomerResponse(c),
		ShippingFee: fee,
		Items:       cartapp.ToItemResponses(items),
		SubTotal:    subtotal,
		Tax:         tax,
		Total:       total,
		Couriers:    shippingapp.ToCourierResponses(couriers),
		Addresses:   customerapp.ToAddressResponses(c.Addresses),
		Payments:    s.gateways.Available(),
		CourierID:   sess.CourierID,
		AddressID:   sess.AddressID,
		PaymentName: sess.PaymentName,
	}
	resp := shippingapp.ToCourierResponse(courier)
	view.Courier = &resp
	return view, nil
}

// Store submits the checkout form. The returned session carries the
// shopper's new selection and must be saved even when err is not nil.
//
// A nil result with a nil error means the payment method is not handled.
func (s *Service) Store(ctx context.Context, customerID int64, sess Session, in StoreInput) (*StoreResult, Session, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, sess, err
	}

	sess.CourierID = in.CourierID
	sess.AddressID = in.AddressID
	sess.PaymentName = in.Payment

	courier, err := s.couriers.FindCourierByID(ctx, in.CourierID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, sess, ErrCourierUnavailable
		}
		return nil, sess, err
	}
	if !courier.Status {
		return nil, sess, ErrCourierUnavailable
	}

	switch in.Payment {
	case payment.GatewayPayPal:
		res, err := s.processPayPal(ctx, customerID, sess, courier)
		return res, sess, err
	case payment.GatewayStripe:
		input := in
		return &StoreResult{RedirectBack: true, Message: StripeComingSoon, Input: &input}, sess, nil
	default:
		logger.Enrich(ctx, s.logger).Warn("Unhandled payment method", zap.String("payment", in.Payment))
		return nil, sess, nil
	}
}

func (s *Service) processPayPal(ctx context.Context, customerID int64, sess Session, courier *shipping.Courier) (result *StoreResult, err error) {
	ctx, span := telemetry.StartSpan(ctx, "checkout.Process", attribute.String("gateway", payment.GatewayPayPal))
	defer func() { telemetry.EndSpan(span, err) }()

	// Check if the address belongs to the customer
	address, err := s.addresses.FindAddressByID(ctx, sess.AddressID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ErrAddressNotFound
		}
		return nil, err
	}
	if address.CustomerID != customerID {
		return nil, ErrAddressNotFound
	}

	items, err := s.cart.GetCartItems(ctx, sess.CartID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	fee := s.cart.GetShippingFee(courier)
	subtotal, err := s.cart.GetSubTotal(ctx, sess.CartID)
	if err != nil {
		return nil, err
	}
	tax, err := s.cart.GetTax(ctx, sess.CartID)
	if err != nil {
		return nil, err
	}
	total, err := s.cart.GetTotal(ctx, sess.CartID, 2, fee)
	if err != nil {
		return nil, err
	}

	gateway, err := s.gateways.Get(payment.GatewayPayPal)
	if err != nil {
		return nil, err
	}

	reference := s.references.NextReference()
	lines := make([]payment.LineItem, 0, len(items))
	products := make([]sales.OrderProduct, 0, len(items))
	for _, it := range items {
		lines = append(lines, payment.LineItem{Name: it.Name, SKU: it.SKU, Price: it.Price, Quantity: it.Quantity})
		products = append(products, sales.OrderProduct{
			ProductID:    it.ProductID,
			ProductName:  it.Name,
			ProductSKU:   it.SKU,
			ProductPrice: it.Price,
			Quantity:     it.Quantity,
		})
	}

	req := &payment.ProcessRequest{
		Reference:   reference,
		Description: fmt.Sprintf("Order %s", reference),
		Currency:    s.cfg.Currency,
		Items:       lines,
		SubTotal:    subtotal,
		Tax:         tax,
		Shipping:    fee,
		Total:       total,
		ReturnURL:   s.cfg.ReturnURL,
		CancelURL:   withQuery(s.cfg.CancelURL, "reference", reference),
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	processed, err := gateway.Process(ctx, req)
	s.metrics.PaymentProcessed(ctx, gateway.Name(), err)
	if err != nil {
		return nil, err
	}

	order, err := sales.PlaceOrder(sales.PlaceOrderParams{
		Reference:     reference,
		CourierID:     courier.ID,
		CustomerID:    customerID,
		AddressID:     address.ID,
		Payment:       gateway.Name(),
		TransactionID: processed.PaymentID,
		Tax:           tax,
		TotalShipping: fee,
		Products:      products,
	})
	if err != nil {
		return nil, err
	}
	if err := s.orders.CreateOrder(ctx, order); err != nil {
		return nil, err
	}
	order.AddDomainEvent(sales.NewOrderPlacedEvent(order))
	s.publish(ctx, order)

	logger.Enrich(ctx, s.logger).Info("Payment created",
		zap.String("reference", reference),
		zap.String("payment_id", processed.PaymentID),
		zap.String("total", total.StringFixed(2)),
	)

	return &StoreResult{
		RedirectURL:    processed.ApprovalURL,
		PaymentID:      processed.PaymentID,
		OrderReference: reference,
	}, nil
}

// Execute captures a payment the shopper approved, marks its order paid and
// empties the cart. Every failure after input validation comes back as a
// *payment.PaypalRequestError wrapping the cause.
func (s *Service) Execute(ctx context.Context, customerID int64, sess Session, in ExecuteInput) (result *ExecuteResult, err error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}

	ctx, span := telemetry.StartSpan(ctx, "checkout.Execute", attribute.String("payment_id", in.PaymentID))
	defer func() { telemetry.EndSpan(span, err) }()

	result, err = s.execute(ctx, customerID, sess, in)
	if err != nil {
		return nil, payment.NewPaypalRequestError(err)
	}
	return result, nil
}

func (s *Service) execute(ctx context.Context, customerID int64, sess Session, in ExecuteInput) (*ExecuteResult, error) {
	key := "payment:" + in.PaymentID
	done, err := s.idempotency.IsProcessed(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("check payment %s: %w", in.PaymentID, err)
	}
	if done {
		return nil, ErrPaymentAlreadyExecuted
	}

	order, err := s.orders.FindOrderByTransactionID(ctx, in.PaymentID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("find order of payment %s: %w", in.PaymentID, err)
	}
	if order.CustomerID != customerID {
		return nil, ErrOrderNotFound
	}
	if !order.IsPending() {
		return nil, ErrPaymentAlreadyExecuted
	}

	gateway, err := s.gateways.Get(order.Payment)
	if err != nil {
		return nil, err
	}

	executed, err := gateway.Execute(ctx, &payment.ExecuteRequest{PaymentID: in.PaymentID, PayerID: in.PayerID})
	if err != nil {
		s.metrics.PaymentExecuted(ctx, gateway.Name(), decimal.Zero, err)
		return nil, err
	}

	amount := executed.Amount
	if amount.IsZero() {
		amount = order.Total
	}
	s.metrics.PaymentExecuted(ctx, gateway.Name(), amount, nil)

	// Check if another request captured the same payment meanwhile
	fresh, err := s.idempotency.MarkProcessed(ctx, key, s.cfg.IdempotencyTTL)
	if err != nil {
		return nil, fmt.Errorf("mark payment %s: %w", in.PaymentID, err)
	}
	if !fresh {
		return nil, ErrPaymentAlreadyExecuted
	}

	if err := order.MarkPaid(executed.PaymentID, amount); err != nil {
		return nil, err
	}
	ok, err := s.orders.UpdateOrder(ctx, order)
	if err != nil {
		logger.Enrich(ctx, s.logger).Error("Captured payment could not be recorded",
			zap.String("reference", order.Reference),
			zap.String("payment_id", in.PaymentID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("record payment of order %s: %w", order.Reference, err)
	}
	if !ok {
		return nil, ErrOrderNotFound
	}
	s.publish(ctx, order)

	if err := s.cart.ClearCart(ctx, sess.CartID); err != nil {
		return nil, fmt.Errorf("clear cart %s: %w", sess.CartID, err)
	}

	logger.Enrich(ctx, s.logger).Info("Payment executed",
		zap.String("reference", order.Reference),
		zap.String("payment_id", in.PaymentID),
		zap.String("state", executed.State),
	)

	return &ExecuteResult{
		Redirect:       RouteSuccess,
		OrderReference: order.Reference,
		PaymentID:      in.PaymentID,
		State:          executed.State,
		Amount:         amount,
	}, nil
}

// Cancel handles a shopper returning from the gateway without paying. The
// request parameters are echoed back; a pending order of the customer that
// matches the reference or payment id is cancelled.
func (s *Service) Cancel(ctx context.Context, customerID int64, params map[string]string) (*CancelResult, error) {
	result := &CancelResult{Params: params}

	order, err := s.findCancellable(ctx, params)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return result, nil
		}
		return nil, err
	}
	if order.CustomerID != customerID || !order.IsPending() {
		return result, nil
	}

	if err := order.Cancel("payment cancelled by customer"); err != nil {
		return nil, err
	}
	if _, err := s.orders.UpdateOrder(ctx, order); err != nil {
		return nil, err
	}
	s.publish(ctx, order)

	result.OrderReference = order.Reference
	result.Cancelled = true
	return result, nil
}

func (s *Service) findCancellable(ctx context.Context, params map[string]string) (*sales.Order, error) {
	if ref := params["reference"]; ref != "" {
		return s.orders.FindOrderByReference(ctx, ref)
	}
	if id := params["paymentId"]; id != "" {
		return s.orders.FindOrderByTransactionID(ctx, id)
	}
	return nil, shared.ErrNotFound
}

// Success is the page shown after a captured payment
func (s *Service) Success() *SuccessResult {
	return &SuccessResult{Message: "Thank you for your order!"}
}

// withQuery adds key=value to the query of raw, keeping what is there
func withQuery(raw, key, value string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	q := u.Query()
	q.Set(key, value)
	u.RawQuery = q.Encode()
	return u.String()
}

func (s *Service) activeCouriers(ctx context.Context) ([]shipping.Courier, error) {
	all, err := s.couriers.ListCouriers(ctx, shared.ListOptions{OrderBy: "id", Sort: "asc"})
	if err != nil {
		return nil, err
	}
	active := make([]shipping.Courier, 0, len(all))
	for _, c := range all {
		if c.Status {
			active = append(active, c)
		}
	}
	return active, nil
}

// publish hands the order's events to the bus. The order is already saved,
// so a failed publish is logged and not returned.
func (s *Service) publish(ctx context.Context, order *sales.Order) {
	events := order.PullDomainEvents()
	if s.publisher == nil || len(events) == 0 {
		return
	}
	if err := s.publisher.Publish(ctx, events...); err != nil {
		logger.Enrich(ctx, s.logger).Error("Failed to publish order events",
			zap.String("reference", order.Reference),
			zap.Error(err),
		)
	}
}
