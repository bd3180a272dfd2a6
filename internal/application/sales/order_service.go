package sales

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/shop/backend/internal/domain/customer"
	"github.com/shop/backend/internal/domain/sales"
	"github.com/shop/backend/internal/domain/shared"
	"github.com/shop/backend/internal/domain/shipping"
	"github.com/shop/backend/internal/infrastructure/logger"
)

const defaultPageSize = 20

// ErrInvoiceUnavailable is returned when no invoice renderer is configured
var ErrInvoiceUnavailable = shared.NewDomainError("INVOICE_UNAVAILABLE", "Invoice rendering is not configured")

// ExpiryMetrics records expired orders
type ExpiryMetrics interface {
	OrdersExpired(ctx context.Context, n int)
}

// OrderServiceDeps groups the collaborators of OrderService
type OrderServiceDeps struct {
	Orders    sales.OrderRepository
	Customers customer.CustomerRepository
	Addresses customer.AddressRepository
	Couriers  shipping.CourierRepository
	Publisher shared.EventPublisher
	Renderer  InvoiceRenderer
	Metrics   ExpiryMetrics
	Logger    *zap.Logger
}

// OrderService handles order management after checkout
type OrderService struct {
	orders    sales.OrderRepository
	customers customer.CustomerRepository
	addresses customer.AddressRepository
	couriers  shipping.CourierRepository
	publisher shared.EventPublisher
	renderer  InvoiceRenderer
	metrics   ExpiryMetrics
	logger    *zap.Logger
	now       func() time.Time
}

// NewOrderService creates a new OrderService
func NewOrderService(deps OrderServiceDeps) *OrderService {
	l := deps.Logger
	if l == nil {
		l = zap.NewNop()
	}
	return &OrderService{
		orders:    deps.Orders,
		customers: deps.Customers,
		addresses: deps.Addresses,
		couriers:  deps.Couriers,
		publisher: deps.Publisher,
		renderer:  deps.Renderer,
		metrics:   deps.Metrics,
		logger:    l.Named("orders"),
		now:       time.Now,
	}
}

// List returns one page of orders
func (s *OrderService) List(ctx context.Context, f OrderListFilter) (*shared.Paginated[OrderResponse], error) {
	filter := sales.OrderFilter{ListOptions: listOptions(f), Status: sales.OrderStatus(f.Status)}
	orders, err := s.orders.ListOrders(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.orders.CountOrders(ctx, filter)
	if err != nil {
		return nil, err
	}
	page := shared.NewPaginated(ToOrderResponses(orders), total, filter.Page, filter.PageSize)
	return &page, nil
}

// GetByID returns an order with its products
func (s *OrderService) GetByID(ctx context.Context, id int64) (*OrderResponse, error) {
	o, err := s.orders.FindOrderByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToOrderResponse(o)
	return &resp, nil
}

// ListCustomerOrders returns the orders of one customer, newest first by default
func (s *OrderService) ListCustomerOrders(ctx context.Context, customerID int64, f OrderListFilter) ([]OrderResponse, error) {
	opts := listOptions(f)
	if f.OrderBy == "" {
		opts.OrderBy, opts.Sort = "created_at", "desc"
	}
	orders, err := s.orders.ListCustomerOrders(ctx, customerID, opts)
	if err != nil {
		return nil, err
	}
	return ToOrderResponses(orders), nil
}

// GetCustomerOrder returns an order of the customer. Orders of other
// customers are reported as missing.
func (s *OrderService) GetCustomerOrder(ctx context.Context, customerID int64, reference string) (*OrderResponse, error) {
	o, err := s.orders.FindOrderByReference(ctx, reference)
	if err != nil {
		return nil, err
	}
	if o.CustomerID != customerID {
		return nil, shared.ErrNotFound
	}
	resp := ToOrderResponse(o)
	return &resp, nil
}

// ChangeStatus moves an order along its lifecycle
func (s *OrderService) ChangeStatus(ctx context.Context, id int64, req ChangeStatusRequest) (*OrderResponse, error) {
	o, err := s.orders.FindOrderByID(ctx, id)
	if err != nil {
		return nil, err
	}
	from := o.Status
	if err := o.ChangeStatus(sales.OrderStatus(req.Status)); err != nil {
		return nil, err
	}
	if err := s.save(ctx, o); err != nil {
		return nil, err
	}

	logger.Enrich(ctx, s.logger).Info("Order status changed",
		zap.String("reference", o.Reference),
		zap.String("from", string(from)),
		zap.String("to", string(o.Status)),
	)
	resp := ToOrderResponse(o)
	return &resp, nil
}

// Invoice renders the invoice of an order
func (s *OrderService) Invoice(ctx context.Context, id int64) (*RenderedInvoice, error) {
	if s.renderer == nil {
		return nil, ErrInvoiceUnavailable
	}
	o, err := s.orders.FindOrderByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c, err := s.customers.FindCustomerByID(ctx, o.CustomerID)
	if err != nil {
		return nil, err
	}

	doc := InvoiceDocument{Order: o, Customer: c, IssuedAt: s.now()}
	// Address and courier may have been deleted since the order was placed
	if doc.Address, err = s.addresses.FindAddressByID(ctx, o.AddressID); err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if doc.Courier, err = s.couriers.FindCourierByID(ctx, o.CourierID); err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	return s.renderer.Render(ctx, doc)
}

// ExpirePendingOrders cancels pending orders created more than ttl ago and
// returns how many were cancelled
func (s *OrderService) ExpirePendingOrders(ctx context.Context, ttl time.Duration) (int, error) {
	cutoff := s.now().Add(-ttl)
	orders, err := s.orders.ListPendingBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	log := logger.Enrich(ctx, s.logger)
	expired := 0
	for i := range orders {
		if err := ctx.Err(); err != nil {
			break
		}
		o := &orders[i]
		if err := o.Cancel("payment not completed in time"); err != nil {
			continue
		}
		if err := s.save(ctx, o); err != nil {
			log.Warn("Failed to expire order", zap.String("reference", o.Reference), zap.Error(err))
			continue
		}
		expired++
	}

	if s.metrics != nil {
		s.metrics.OrdersExpired(ctx, expired)
	}
	if expired > 0 {
		log.Info("Expired pending orders", zap.Int("count", expired), zap.Time("cutoff", cutoff))
	}
	return expired, ctx.Err()
}

func (s *OrderService) save(ctx context.Context, o *sales.Order) error {
	ok, err := s.orders.UpdateOrder(ctx, o)
	if err != nil {
		return err
	}
	if !ok {
		return shared.ErrNotFound
	}

	events := o.PullDomainEvents()
	if s.publisher != nil && len(events) > 0 {
		if err := s.publisher.Publish(ctx, events...); err != nil {
			logger.Enrich(ctx, s.logger).Warn("Failed to publish order events", zap.Error(err))
		}
	}
	return nil
}

func listOptions(f OrderListFilter) shared.ListOptions {
	opts := shared.ListOptions{OrderBy: f.OrderBy, Sort: f.Sort, Page: f.Page, PageSize: f.PageSize}
	if opts.Page <= 0 {
		opts.Page = 1
	}
	if opts.PageSize <= 0 {
		opts.PageSize = defaultPageSize
	}
	return opts
}
