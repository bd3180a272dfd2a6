package sales

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/shop/backend/internal/domain/customer"
	"github.com/shop/backend/internal/domain/sales"
	"github.com/shop/backend/internal/domain/shared"
	"github.com/shop/backend/internal/domain/shipping"
	"github.com/shop/backend/internal/infrastructure/persistence"
	"github.com/shop/backend/internal/infrastructure/persistence/models"
)

type fakeRenderer struct {
	doc InvoiceDocument
	err error
}

func (f *fakeRenderer) Render(_ context.Context, doc InvoiceDocument) (*RenderedInvoice, error) {
	f.doc = doc
	if f.err != nil {
		return nil, f.err
	}
	return &RenderedInvoice{Filename: "invoice-" + doc.Order.Reference + ".pdf", ContentType: "application/pdf", Content: []byte("%PDF")}, nil
}

type recordingPublisher struct {
	events []shared.DomainEvent
}

func (p *recordingPublisher) Publish(_ context.Context, events ...shared.DomainEvent) error {
	p.events = append(p.events, events...)
	return nil
}

type countingMetrics struct {
	expired int
}

func (m *countingMetrics) OrdersExpired(_ context.Context, n int) {
	m.expired += n
}

type fixture struct {
	svc       *OrderService
	orders    *persistence.GormOrderRepository
	renderer  *fakeRenderer
	publisher *recordingPublisher
	metrics   *countingMetrics
	customer  *customer.Customer
	address   *customer.Address
	courier   *shipping.Courier
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(models.All()...))

	ctx := context.Background()
	customers := persistence.NewGormCustomerRepository(db)
	addresses := persistence.NewGormAddressRepository(db)
	couriers := persistence.NewGormCourierRepository(db)

	c, err := customer.NewCustomer(customer.CustomerParams{Name: "Ada", Email: "ada@example.com", Password: "password123"})
	require.NoError(t, err)
	require.NoError(t, customers.CreateCustomer(ctx, c))
	addr, err := addresses.CreateAddress(ctx, customer.AddressParams{CustomerID: c.ID, Alias: "Home", Address1: "1 Main St", CountryID: 1})
	require.NoError(t, err)
	courier, err := couriers.CreateCourier(ctx, shipping.CourierParams{Name: "UPS", Cost: decimal.NewFromInt(5), Status: true})
	require.NoError(t, err)

	f := &fixture{
		orders:    persistence.NewGormOrderRepository(db),
		renderer:  &fakeRenderer{},
		publisher: &recordingPublisher{},
		metrics:   &countingMetrics{},
		customer:  c,
		address:   addr,
		courier:   courier,
	}
	f.svc = NewOrderService(OrderServiceDeps{
		Orders:    f.orders,
		Customers: customers,
		Addresses: addresses,
		Couriers:  couriers,
		Publisher: f.publisher,
		Renderer:  f.renderer,
		Metrics:   f.metrics,
	})
	return f
}

func (f *fixture) placeOrder(t *testing.T, reference string) *sales.Order {
	t.Helper()
	o, err := sales.PlaceOrder(sales.PlaceOrderParams{
		Reference:     reference,
		CourierID:     f.courier.ID,
		CustomerID:    f.customer.ID,
		AddressID:     f.address.ID,
		Payment:       "paypal",
		TransactionID: "PAY-" + reference,
		Tax:           decimal.RequireFromString("2.00"),
		TotalShipping: decimal.NewFromInt(5),
		Products: []sales.OrderProduct{
			{ProductID: 1, ProductName: "Mug", ProductSKU: "MUG-1", ProductPrice: decimal.NewFromInt(10), Quantity: 2},
		},
	})
	require.NoError(t, err)
	require.NoError(t, f.orders.CreateOrder(context.Background(), o))
	return o
}

func TestOrderService_ListAndGet(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	first := f.placeOrder(t, "ORD-1")
	f.placeOrder(t, "ORD-2")

	page, err := f.svc.List(ctx, OrderListFilter{Status: "pending", OrderBy: "reference", Sort: "asc"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)
	assert.Equal(t, "ORD-1", page.Items[0].Reference)

	got, err := f.svc.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "27", got.Total.String())
	require.Len(t, got.Products, 1)
	assert.Equal(t, "20", got.Products[0].LineTotal.String())

	mine, err := f.svc.ListCustomerOrders(ctx, f.customer.ID, OrderListFilter{})
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	_, err = f.svc.GetCustomerOrder(ctx, f.customer.ID+1, "ORD-1")
	assert.ErrorIs(t, err, shared.ErrNotFound)
	own, err := f.svc.GetCustomerOrder(ctx, f.customer.ID, "ORD-1")
	require.NoError(t, err)
	assert.Equal(t, first.ID, own.ID)
}

func TestOrderService_ChangeStatus(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	o := f.placeOrder(t, "ORD-1")

	_, err := f.svc.ChangeStatus(ctx, o.ID, ChangeStatusRequest{Status: "shipped"})
	var de *shared.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "INVALID_STATE", de.Code)

	paid, err := f.svc.ChangeStatus(ctx, o.ID, ChangeStatusRequest{Status: "paid"})
	require.NoError(t, err)
	assert.Equal(t, "paid", paid.Status)
	assert.NotNil(t, paid.PaidAt)

	shipped, err := f.svc.ChangeStatus(ctx, o.ID, ChangeStatusRequest{Status: "shipped"})
	require.NoError(t, err)
	assert.Equal(t, "shipped", shipped.Status)

	types := make([]string, 0, len(f.publisher.events))
	for _, e := range f.publisher.events {
		types = append(types, e.EventType())
	}
	assert.Equal(t, []string{sales.EventTypeOrderPaid, sales.EventTypeOrderStatusChanged}, types)
}

func TestOrderService_Invoice(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	o := f.placeOrder(t, "ORD-9")

	inv, err := f.svc.Invoice(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, "invoice-ORD-9.pdf", inv.Filename)
	assert.Equal(t, f.customer.ID, f.renderer.doc.Customer.ID)
	require.NotNil(t, f.renderer.doc.Address)
	require.NotNil(t, f.renderer.doc.Courier)
	assert.Equal(t, "UPS", f.renderer.doc.Courier.Name)
	assert.Len(t, f.renderer.doc.Order.Products, 1)

	f.renderer.err = errors.New("chrome crashed")
	_, err = f.svc.Invoice(ctx, o.ID)
	assert.EqualError(t, err, "chrome crashed")

	_, err = f.svc.Invoice(ctx, 404)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	noRenderer := NewOrderService(OrderServiceDeps{Orders: f.orders})
	_, err = noRenderer.Invoice(ctx, o.ID)
	assert.ErrorIs(t, err, ErrInvoiceUnavailable)
}

func TestOrderService_ExpirePendingOrders(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	stale := f.placeOrder(t, "ORD-OLD")
	paid := f.placeOrder(t, "ORD-PAID")
	_, err := f.svc.ChangeStatus(ctx, paid.ID, ChangeStatusRequest{Status: "paid"})
	require.NoError(t, err)

	n, err := f.svc.ExpirePendingOrders(ctx, 24*time.Hour)
	require.NoError(t, err)
	assert.Zero(t, n, "fresh orders are kept")

	f.svc.now = func() time.Time { return time.Now().Add(48 * time.Hour) }
	n, err = f.svc.ExpirePendingOrders(ctx, 24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 1, f.metrics.expired)

	got, err := f.svc.GetByID(ctx, stale.ID)
	require.NoError(t, err)
	assert.Equal(t, "cancelled", got.Status)
	assert.NotNil(t, got.CancelledAt)

	got, err = f.svc.GetByID(ctx, paid.ID)
	require.NoError(t, err)
	assert.Equal(t, "paid", got.Status)
}

// payingOrders pays every listed order through a second copy before the
// sweep gets to save its own
type payingOrders struct {
	*persistence.GormOrderRepository
}

func (r payingOrders) ListPendingBefore(ctx context.Context, t time.Time) ([]sales.Order, error) {
	list, err := r.GormOrderRepository.ListPendingBefore(ctx, t)
	if err != nil {
		return nil, err
	}
	for _, o := range list {
		fresh, err := r.FindOrderByID(ctx, o.ID)
		if err != nil {
			return nil, err
		}
		if err := fresh.MarkPaid("SALE-"+fresh.Reference, fresh.Total); err != nil {
			return nil, err
		}
		if _, err := r.UpdateOrder(ctx, fresh); err != nil {
			return nil, err
		}
	}
	return list, nil
}

func TestOrderService_ExpirePendingOrders_KeepsOrderPaidMeanwhile(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	o := f.placeOrder(t, "ORD-RACE")

	svc := NewOrderService(OrderServiceDeps{Orders: payingOrders{f.orders}, Publisher: f.publisher})
	svc.now = func() time.Time { return time.Now().Add(48 * time.Hour) }

	n, err := svc.ExpirePendingOrders(ctx, 24*time.Hour)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Empty(t, f.publisher.events, "no cancellation is published")

	got, err := f.svc.GetByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, "paid", got.Status)
	assert.Equal(t, "27", got.TotalPaid.String())
}

func TestOrderService_ChangeStatus_StaleWrite(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	o := f.placeOrder(t, "ORD-1")

	_, err := f.svc.ChangeStatus(ctx, o.ID, ChangeStatusRequest{Status: "paid"})
	require.NoError(t, err)

	require.NoError(t, o.Cancel("stale"))
	ok, err := f.orders.UpdateOrder(ctx, o)
	assert.False(t, ok)
	assert.ErrorIs(t, err, shared.ErrConcurrentUpdate)
}
