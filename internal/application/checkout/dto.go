package checkout

import (
	"github.com/shopspring/decimal"

	cartapp "github.com/shop/backend/internal/application/cart"
	customerapp "github.com/shop/backend/internal/application/customer"
	shippingapp "github.com/shop/backend/internal/application/shipping"
	"github.com/shop/backend/internal/domain/payment"
)

// IndexView is everything the checkout page shows
type IndexView struct {
	Customer    customerapp.CustomerResponse  `json:"customer"`
	Courier     *shippingapp.CourierResponse  `json:"courier,omitempty"`
	ShippingFee decimal.Decimal               `json:"shipping_fee"`
	Items       []cartapp.ItemResponse        `json:"items"`
	SubTotal    decimal.Decimal               `json:"subtotal"`
	Tax         decimal.Decimal               `json:"tax"`
	Total       decimal.Decimal               `json:"total"`
	Couriers    []shippingapp.CourierResponse `json:"couriers"`
	Addresses   []customerapp.AddressResponse `json:"addresses"`
	Payments    []payment.GatewayInfo         `json:"payments"`
	CourierID   int64                         `json:"courier_id"`
	AddressID   int64                         `json:"address_id"`
	PaymentName string                        `json:"payment_name"`
}

// StoreInput is the submitted checkout form
type StoreInput struct {
	CourierID int64  `json:"courier_id" form:"courierId" binding:"required,gt=0"`
	AddressID int64  `json:"address_id" form:"addressId" binding:"required,gt=0"`
	Payment   string `json:"payment" form:"payment" binding:"required,max=50"`
}

// StoreResult tells the caller where to send the shopper next. Either
// RedirectURL is set (go to the gateway) or RedirectBack is true (return to
// the checkout page with Message and the submitted Input).
type StoreResult struct {
	RedirectURL    string      `json:"redirect_url,omitempty"`
	PaymentID      string      `json:"payment_id,omitempty"`
	OrderReference string      `json:"order_reference,omitempty"`
	RedirectBack   bool        `json:"redirect_back,omitempty"`
	Message        string      `json:"message,omitempty"`
	Input          *StoreInput `json:"input,omitempty"`
}

// ExecuteInput is what the gateway appends to the return URL
type ExecuteInput struct {
	PaymentID string `json:"payment_id" form:"paymentId" binding:"required"`
	PayerID   string `json:"payer_id" form:"PayerID" binding:"required"`
	Token     string `json:"token" form:"token"`
}

// RouteSuccess is the named route Execute redirects to
const RouteSuccess = "checkout.success"

// ExecuteResult is a captured payment
type ExecuteResult struct {
	Redirect       string          `json:"redirect"`
	OrderReference string          `json:"order_reference"`
	PaymentID      string          `json:"payment_id"`
	State          string          `json:"state"`
	Amount         decimal.Decimal `json:"amount"`
}

// CancelResult echoes the gateway's cancel parameters
type CancelResult struct {
	Params         map[string]string `json:"params"`
	OrderReference string            `json:"order_reference,omitempty"`
	Cancelled      bool              `json:"cancelled"`
}

// SuccessResult is the static thank-you page
type SuccessResult struct {
	Message string `json:"message"`
}
