package main

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	cartapp "github.com/shop/backend/internal/application/cart"
	catalogapp "github.com/shop/backend/internal/application/catalog"
	checkoutapp "github.com/shop/backend/internal/application/checkout"
	customerapp "github.com/shop/backend/internal/application/customer"
	identityapp "github.com/shop/backend/internal/application/identity"
	salesapp "github.com/shop/backend/internal/application/sales"
	shippingapp "github.com/shop/backend/internal/application/shipping"
	"github.com/shop/backend/internal/domain/catalog"
	"github.com/shop/backend/internal/domain/customer"
	"github.com/shop/backend/internal/domain/sales"
	"github.com/shop/backend/internal/domain/shared"
	"github.com/shop/backend/internal/infrastructure/auth"
	"github.com/shop/backend/internal/infrastructure/cache"
	"github.com/shop/backend/internal/infrastructure/config"
	"github.com/shop/backend/internal/infrastructure/event"
	"github.com/shop/backend/internal/infrastructure/idgen"
	"github.com/shop/backend/internal/infrastructure/invoice"
	"github.com/shop/backend/internal/infrastructure/logger"
	"github.com/shop/backend/internal/infrastructure/messaging"
	"github.com/shop/backend/internal/infrastructure/notification"
	paymentinfra "github.com/shop/backend/internal/infrastructure/payment"
	"github.com/shop/backend/internal/infrastructure/persistence"
	"github.com/shop/backend/internal/infrastructure/scheduler"
	"github.com/shop/backend/internal/infrastructure/session"
	"github.com/shop/backend/internal/infrastructure/storage"
	"github.com/shop/backend/internal/infrastructure/telemetry"
	"github.com/shop/backend/internal/interfaces/http/handler"
	"github.com/shop/backend/internal/interfaces/http/middleware"
	"github.com/shop/backend/internal/interfaces/http/router"
)

// expireJobName names the pending order expiry job in scheduler logs
const expireJobName = "expire-pending-orders"

// app holds the wired services of one server process
type app struct {
	cfg       *config.Config
	db        *persistence.Database
	providers *telemetry.Providers
	log       *zap.Logger

	stores    *cache.Stores
	bus       *event.InMemoryEventBus
	kafka     *messaging.EventPublisher
	scheduler *scheduler.Scheduler
	limiter   *middleware.RateLimiter

	jwt       *auth.JWTService
	blacklist auth.TokenBlacklist
	sessions  *session.Manager
	orders    *salesapp.OrderService
	handlers  router.Handlers
}

func newApp(ctx context.Context, cfg *config.Config, db *persistence.Database, providers *telemetry.Providers, log *zap.Logger) (*app, error) {
	a := &app{cfg: cfg, db: db, providers: providers, log: log}

	stores, err := cache.NewStores(ctx, cfg.Redis, cfg.Cart,
		cache.WithLogger(log),
		cache.WithInMemoryFallback(!cfg.IsProduction()),
	)
	if err != nil {
		return nil, err
	}
	a.stores = stores

	if stores.Client != nil {
		a.blacklist = auth.NewRedisTokenBlacklist(stores.Client)
	} else {
		a.blacklist = auth.NewInMemoryTokenBlacklist()
	}
	a.jwt = auth.NewJWTService(cfg.JWT)
	a.sessions = session.NewManager(cfg.Session)

	metrics, err := telemetry.NewShopMetrics(providers.Meter())
	if err != nil {
		return nil, fmt.Errorf("shop metrics: %w", err)
	}

	// Repositories
	permissionRepo := persistence.NewGormPermissionRepository(db.DB)
	roleRepo := persistence.NewGormRoleRepository(db.DB)
	employeeRepo := persistence.NewGormEmployeeRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	addressRepo := persistence.NewGormAddressRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	courierRepo := persistence.NewGormCourierRepository(db.DB)
	provinceRepo := persistence.NewGormProvinceRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)

	a.bus = event.NewInMemoryEventBus(log)
	if err := a.subscribe(productRepo, customerRepo); err != nil {
		return nil, err
	}

	// Infrastructure adapters
	gateways, err := paymentinfra.NewRegistry(cfg.Payees, log)
	if err != nil {
		return nil, fmt.Errorf("payment gateways: %w", err)
	}
	references, err := idgen.NewSnowflakeReferenceGenerator(cfg.Checkout.ReferenceNode, cfg.Checkout.ReferencePrefix)
	if err != nil {
		return nil, fmt.Errorf("order references: %w", err)
	}
	covers, err := storage.New(ctx, cfg.Storage, cfg.App.BaseURL, log)
	if err != nil {
		return nil, fmt.Errorf("cover storage: %w", err)
	}
	renderer, err := newInvoiceRenderer(cfg, log)
	if err != nil {
		return nil, err
	}

	// Application services
	cartService := cartapp.NewService(stores.Carts, productRepo, cfg.Cart.TaxRate, log)
	checkoutService := checkoutapp.NewService(
		checkoutapp.Config{
			Defaults: checkoutapp.Defaults{
				CourierID: cfg.Checkout.DefaultCourierID,
				AddressID: cfg.Checkout.DefaultAddressID,
				Payment:   cfg.Checkout.DefaultPayment,
			},
			Currency:       cfg.Checkout.Currency,
			BaseURL:        cfg.App.BaseURL,
			ReturnURL:      cfg.Checkout.ReturnURL,
			CancelURL:      cfg.Checkout.CancelURL,
			IdempotencyTTL: cfg.Checkout.IdempotencyTTL,
		},
		checkoutapp.Deps{
			Cart:        cartService,
			Customers:   customerRepo,
			Addresses:   addressRepo,
			Couriers:    courierRepo,
			Orders:      orderRepo,
			References:  references,
			Gateways:    gateways,
			Idempotency: stores.Idempotency,
			Publisher:   a.bus,
			Metrics:     metrics,
			Logger:      log,
		},
	)
	a.orders = salesapp.NewOrderService(salesapp.OrderServiceDeps{
		Orders:    orderRepo,
		Customers: customerRepo,
		Addresses: addressRepo,
		Couriers:  courierRepo,
		Publisher: a.bus,
		Renderer:  renderer,
		Metrics:   metrics,
		Logger:    log,
	})
	productService := catalogapp.NewProductService(productRepo, covers, a.bus, log)
	courierService := shippingapp.NewCourierService(courierRepo, log)
	provinceService := shippingapp.NewProvinceService(provinceRepo)
	customerService := customerapp.NewCustomerService(customerRepo)
	addressService := customerapp.NewAddressService(customerRepo, addressRepo, log)
	permissionService := identityapp.NewPermissionService(permissionRepo, log)
	roleService := identityapp.NewRoleService(roleRepo, permissionRepo, a.bus, log)
	employeeService := identityapp.NewEmployeeService(employeeRepo, roleRepo, a.bus, a.blacklist, cfg.JWT.AccessTokenExpiration, log)
	authService := identityapp.NewAuthService(employeeRepo, customerRepo, a.jwt, a.blacklist, a.bus, log)

	a.handlers = router.Handlers{
		Auth:       handler.NewAuthHandler(authService),
		Checkout:   handler.NewCheckoutHandler(checkoutService),
		Cart:       handler.NewCartHandler(cartService),
		Product:    handler.NewProductHandler(productService),
		Shipping:   handler.NewShippingHandler(courierService, provinceService),
		Account:    handler.NewAccountHandler(addressService, a.orders),
		Customer:   handler.NewCustomerHandler(customerService),
		Order:      handler.NewOrderHandler(a.orders),
		Permission: handler.NewPermissionHandler(permissionService),
		Role:       handler.NewRoleHandler(roleService),
		Employee:   handler.NewEmployeeHandler(employeeService),
	}

	if cfg.Scheduler.Enabled {
		a.scheduler = scheduler.New(cfg.Scheduler.JobTimeout, log)
		err := a.scheduler.Register(cfg.Scheduler.ExpireSpec, scheduler.JobFunc{
			JobName: expireJobName,
			Fn: func(ctx context.Context) error {
				_, err := a.orders.ExpirePendingOrders(ctx, cfg.Checkout.PendingTTL)
				return err
			},
		})
		if err != nil {
			return nil, fmt.Errorf("schedule %s: %w", expireJobName, err)
		}
	}

	if cfg.HTTP.AuthRateLimit > 0 {
		a.limiter = middleware.NewRateLimiter(cfg.HTTP.AuthRateLimit, cfg.HTTP.AuthRateWindow)
	}
	return a, nil
}

// subscribe wires the OrderPaid consumers. Each one is wrapped so that a
// redelivered event is processed once per consumer.
func (a *app) subscribe(products catalog.ProductRepository, customers customer.CustomerRepository) error {
	idemMetrics := &event.IdempotencyMetrics{}
	wrap := func(name string, h shared.EventHandler) shared.EventHandler {
		return event.NewIdempotentHandler(name, h, a.stores.Idempotency, a.log,
			event.WithIdempotencyTTL(a.cfg.Checkout.IdempotencyTTL),
			event.WithIdempotencyMetrics(idemMetrics),
		)
	}

	a.bus.Subscribe(wrap("stock", catalogapp.NewStockHandler(products, a.log)))

	sender, err := notification.NewSender(a.cfg.Mail, a.log)
	if err != nil {
		return fmt.Errorf("mail sender: %w", err)
	}
	a.bus.Subscribe(wrap("order-mail", notification.NewOrderConfirmationHandler(customers, sender, a.log)))

	if a.cfg.Kafka.Enabled {
		writer, err := messaging.NewKafkaWriter(a.cfg.Kafka)
		if err != nil {
			return fmt.Errorf("kafka: %w", err)
		}
		serializer := event.NewEventSerializer()
		event.RegisterAllEvents(serializer)
		a.kafka = messaging.NewEventPublisher(writer, serializer, a.log)
		a.bus.Subscribe(wrap("kafka", messaging.NewForwarder(a.kafka, sales.EventTypeOrderPaid)))
		a.log.Info("Forwarding order events to Kafka",
			zap.Strings("brokers", a.cfg.Kafka.Brokers),
			zap.String("topic", a.cfg.Kafka.Topic),
		)
	}
	return nil
}

func newInvoiceRenderer(cfg *config.Config, log *zap.Logger) (*invoice.Renderer, error) {
	tmpl, err := invoice.NewHTMLTemplate(language.English, cfg.Checkout.Currency, cfg.Invoice.ShopName, cfg.Invoice.ShopAddress)
	if err != nil {
		return nil, fmt.Errorf("invoice template: %w", err)
	}
	if !cfg.Invoice.ChromeEnabled {
		return invoice.NewRenderer(tmpl, nil, log), nil
	}
	pdf := invoice.NewChromePDF(invoice.ChromeConfig{Timeout: cfg.Invoice.Timeout, NoSandbox: true})
	return invoice.NewRenderer(tmpl, pdf, log), nil
}

// Start launches the event bus, the scheduler and the rate limiter sweeper
func (a *app) Start(ctx context.Context) error {
	if err := a.bus.Start(ctx); err != nil {
		return fmt.Errorf("event bus: %w", err)
	}
	if a.scheduler != nil {
		a.scheduler.Start(ctx)
		a.log.Info("Scheduler started",
			zap.String("job", expireJobName),
			zap.String("spec", a.cfg.Scheduler.ExpireSpec),
			zap.Duration("pending_ttl", a.cfg.Checkout.PendingTTL),
		)
	}
	if a.limiter != nil {
		go a.limiter.Run(ctx)
	}
	return nil
}

// Stop halts background work started by Start
func (a *app) Stop(ctx context.Context) {
	if a.scheduler != nil {
		if err := a.scheduler.Stop(ctx); err != nil {
			a.log.Error("Error stopping scheduler", zap.Error(err))
		}
	}
	if err := a.bus.Stop(ctx); err != nil {
		a.log.Error("Error stopping event bus", zap.Error(err))
	}
}

// Close releases connections held by the app
func (a *app) Close() {
	if a.kafka != nil {
		if err := a.kafka.Close(); err != nil {
			a.log.Error("Error closing Kafka writer", zap.Error(err))
		}
	}
	if err := a.stores.Close(); err != nil {
		a.log.Error("Error closing stores", zap.Error(err))
	}
}

// Engine builds the gin engine with the global middleware and every route
func (a *app) Engine() (*gin.Engine, error) {
	cfg := a.cfg
	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			return nil, fmt.Errorf("trusted proxies: %w", err)
		}
	}

	cors := middleware.DefaultCORSConfig()
	cors.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	cors.AllowMethods = cfg.HTTP.CORSAllowMethods
	cors.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	cors.ExposeHeaders = append(cors.ExposeHeaders, "X-RateLimit-Limit", "X-RateLimit-Remaining")

	// Order matters: the request id and span exist before the access log
	engine.Use(
		middleware.RequestID(),
		middleware.Tracing(cfg.Telemetry.ServiceName, cfg.Telemetry.Enabled),
		logger.Recovery(a.log),
		logger.GinMiddleware(a.log),
		middleware.HTTPMetrics(a.providers.Meter()),
		middleware.Profiling(cfg.Telemetry.ProfilingEnabled),
		middleware.Secure(),
		middleware.CORS(cors),
		middleware.BodyLimit(cfg.HTTP.MaxBodySize),
	)

	jwtCfg := middleware.JWTConfig{JWTService: a.jwt, Blacklist: a.blacklist, Logger: a.log}
	jwt := middleware.JWTAuth(jwtCfg)

	engine.GET("/health", handler.NewHealthHandler(version, a.healthChecks()).Health)
	if cfg.Swagger.Enabled {
		engine.GET("/swagger/*any", middleware.SwaggerProtection(cfg.Swagger, jwt), ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	guards := router.Guards{
		JWT:           jwt,
		GatewayReturn: middleware.GatewayReturn(jwtCfg),
		Session:       middleware.Session(a.sessions, a.log),
		Logger:        a.log,
	}
	if a.limiter != nil {
		guards.AuthRateLimit = middleware.RateLimit(a.limiter)
	}

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	groups := router.ShopRoutes(a.handlers, guards)
	for _, g := range groups {
		r.Register(g)
		a.log.Debug("Route group registered", zap.String("group", g.Name()), zap.Int("routes", g.RouteCount()))
	}
	r.Setup()
	return engine, nil
}

func (a *app) healthChecks() map[string]handler.HealthCheck {
	checks := map[string]handler.HealthCheck{
		"database": func(ctx context.Context) error {
			sqlDB, err := a.db.DB.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}
	if a.stores.Client != nil {
		checks["redis"] = func(ctx context.Context) error {
			return a.stores.Client.Ping(ctx).Err()
		}
	}
	return checks
}
