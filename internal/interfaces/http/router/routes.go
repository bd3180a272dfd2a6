package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/shop/backend/internal/domain/identity"
	"github.com/shop/backend/internal/interfaces/http/handler"
	"github.com/shop/backend/internal/interfaces/http/middleware"
)

// Handlers are the HTTP handlers of the shop API
type Handlers struct {
	Auth       *handler.AuthHandler
	Checkout   *handler.CheckoutHandler
	Cart       *handler.CartHandler
	Product    *handler.ProductHandler
	Shipping   *handler.ShippingHandler
	Account    *handler.AccountHandler
	Customer   *handler.CustomerHandler
	Order      *handler.OrderHandler
	Permission *handler.PermissionHandler
	Role       *handler.RoleHandler
	Employee   *handler.EmployeeHandler
}

// Guards are the middleware the route table needs. JWT, GatewayReturn and
// Session are required; AuthRateLimit may be nil.
type Guards struct {
	JWT           gin.HandlerFunc
	GatewayReturn gin.HandlerFunc
	Session       gin.HandlerFunc
	AuthRateLimit gin.HandlerFunc
	Logger        *zap.Logger
}

// ShopRoutes builds the route groups of the shop API
func ShopRoutes(h Handlers, g Guards) []*DomainGroup {
	return []*DomainGroup{
		storefrontRoutes(h),
		cartRoutes(h, g),
		authRoutes(h, g),
		checkoutRoutes(h, g),
		customerRoutes(h, g),
		adminRoutes(h, g),
	}
}

func storefrontRoutes(h Handlers) *DomainGroup {
	return NewDomainGroup("storefront", "").
		GET("/products", h.Product.List).
		GET("/products/:slug", h.Product.GetBySlug).
		GET("/couriers", h.Shipping.ActiveCouriers).
		GET("/provinces", h.Shipping.ListProvinces).
		GET("/provinces/:id/cities", h.Shipping.ListCities)
}

func cartRoutes(h Handlers, g Guards) *DomainGroup {
	return NewDomainGroup("cart", "/cart").
		Use(g.Session).
		GET("", h.Cart.Show).
		POST("", h.Cart.Add).
		DELETE("", h.Cart.Clear).
		PUT("/items/:product_id", h.Cart.Update).
		DELETE("/items/:product_id", h.Cart.Remove)
}

func authRoutes(h Handlers, g Guards) *DomainGroup {
	return NewDomainGroup("auth", "/auth").
		POST("/customers/register", g.AuthRateLimit, h.Auth.RegisterCustomer).
		POST("/customers/login", g.AuthRateLimit, h.Auth.LoginCustomer).
		POST("/employees/login", g.AuthRateLimit, h.Auth.LoginEmployee).
		POST("/logout", g.JWT, h.Auth.Logout)
}

// checkoutRoutes needs the cart session and the signed-in customer. The
// pages the payment gateway redirects to also accept the customer the
// session recorded, since the redirect carries no bearer token.
func checkoutRoutes(h Handlers, g Guards) *DomainGroup {
	customer := func(handler gin.HandlerFunc) []gin.HandlerFunc {
		return []gin.HandlerFunc{g.JWT, middleware.RequireCustomer(), handler}
	}
	return NewDomainGroup("checkout", "/checkout").
		Use(g.Session).
		GET("", customer(h.Checkout.Index)...).
		POST("", customer(h.Checkout.Store)...).
		GET("/execute", g.GatewayReturn, h.Checkout.Execute).
		POST("/execute", customer(h.Checkout.Execute)...).
		GET("/cancel", g.GatewayReturn, h.Checkout.Cancel).
		GET("/success", customer(h.Checkout.SuccessPage)...)
}

func customerRoutes(h Handlers, g Guards) *DomainGroup {
	return NewDomainGroup("customer", "/customer").
		Use(g.JWT, middleware.RequireCustomer()).
		GET("/addresses", h.Account.ListAddresses).
		POST("/addresses", h.Account.CreateAddress).
		GET("/addresses/:id", h.Account.GetAddress).
		PUT("/addresses/:id", h.Account.UpdateAddress).
		DELETE("/addresses/:id", h.Account.DeleteAddress).
		GET("/orders", h.Account.ListOrders).
		GET("/orders/:reference", h.Account.GetOrder)
}

func adminRoutes(h Handlers, g Guards) *DomainGroup {
	perm := func(name string) gin.HandlerFunc {
		return middleware.RequirePermission(name, g.Logger)
	}

	admin := NewDomainGroup("admin", "/admin").
		Use(g.JWT, middleware.RequireEmployee(), middleware.SpanAttributes(), perm(identity.PermViewDashboard))

	admin.Group("permissions", "/permissions", perm(identity.PermManagePermissions)).
		GET("", h.Permission.List).
		POST("", h.Permission.Create).
		GET("/:id", h.Permission.Get).
		PUT("/:id", h.Permission.Update).
		DELETE("/:id", h.Permission.Delete)

	admin.Group("roles", "/roles", perm(identity.PermManageRoles)).
		GET("", h.Role.List).
		POST("", h.Role.Create).
		GET("/:id", h.Role.Get).
		PUT("/:id", h.Role.Update).
		DELETE("/:id", h.Role.Delete).
		PUT("/:id/permissions", h.Role.SyncPermissions)

	admin.Group("employees", "/employees", perm(identity.PermManageEmployees)).
		GET("", h.Employee.List).
		POST("", h.Employee.Create).
		GET("/:id", h.Employee.Get).
		PUT("/:id", h.Employee.Update).
		DELETE("/:id", h.Employee.Delete).
		GET("/:id/roles", h.Employee.ListRoles).
		PUT("/:id/roles", h.Employee.SyncRoles)

	admin.Group("customers", "/customers", perm(identity.PermManageCustomers)).
		GET("", h.Customer.List).
		POST("", h.Customer.Create).
		GET("/:id", h.Customer.Get).
		PUT("/:id", h.Customer.Update).
		DELETE("/:id", h.Customer.Delete)

	admin.Group("products", "/products", perm(identity.PermManageProducts)).
		GET("", h.Product.AdminList).
		POST("", h.Product.Create).
		GET("/:id", h.Product.Get).
		PUT("/:id", h.Product.Update).
		DELETE("/:id", h.Product.Delete).
		POST("/:id/cover", h.Product.UploadCover)

	admin.Group("couriers", "/couriers", perm(identity.PermManageCouriers)).
		GET("", h.Shipping.ListCouriers).
		POST("", h.Shipping.CreateCourier).
		GET("/:id", h.Shipping.GetCourier).
		PUT("/:id", h.Shipping.UpdateCourier).
		DELETE("/:id", h.Shipping.DeleteCourier)

	admin.Group("provinces", "/provinces", perm(identity.PermManageProvinces)).
		GET("", h.Shipping.ListProvinces).
		GET("/:id", h.Shipping.GetProvince).
		PUT("/:id", h.Shipping.UpdateProvince)

	admin.Group("orders", "/orders", perm(identity.PermManageOrders)).
		GET("", h.Order.List).
		GET("/:id", h.Order.Get).
		PUT("/:id/status", h.Order.ChangeStatus).
		GET("/:id/invoice", h.Order.Invoice)

	return admin
}
