package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/shop/backend/internal/application/checkout"
	"github.com/shop/backend/internal/infrastructure/logger"
	"github.com/shop/backend/internal/infrastructure/session"
	"github.com/shop/backend/internal/interfaces/http/middleware"
)

// CheckoutHandler serves the storefront checkout flow. Routes sit behind
// the Session middleware and JWTAuth + RequireCustomer, or GatewayReturn
// for the pages the payment gateway redirects to.
type CheckoutHandler struct {
	BaseHandler
	checkout *checkout.Service
}

// NewCheckoutHandler creates a CheckoutHandler
func NewCheckoutHandler(svc *checkout.Service) *CheckoutHandler {
	return &CheckoutHandler{checkout: svc}
}

// loadSession reads the checkout state out of the cookie session
func (h *CheckoutHandler) loadSession(c *gin.Context) checkout.Session {
	d := h.checkout.Defaults()
	s := middleware.GetSession(c)
	if s == nil {
		return checkout.Session{CourierID: d.CourierID, AddressID: d.AddressID, PaymentName: d.Payment}
	}
	return checkout.Session{
		CourierID:   s.Int64(session.KeyCourierID, d.CourierID),
		AddressID:   s.Int64(session.KeyAddressID, d.AddressID),
		PaymentName: s.String(session.KeyPaymentName, d.Payment),
		CartID:      s.String(session.KeyCartID, ""),
	}
}

func (h *CheckoutHandler) storeSession(c *gin.Context, sess checkout.Session) {
	s := middleware.GetSession(c)
	if s == nil {
		return
	}
	s.Set(session.KeyCourierID, sess.CourierID)
	s.Set(session.KeyAddressID, sess.AddressID)
	s.Set(session.KeyPaymentName, sess.PaymentName)
	// the gateway redirect comes back without a token
	s.Set(session.KeyCustomerID, middleware.GetUserID(c))
	h.saveSession(c)
}

// endGatewayReturn forgets the customer recorded for the gateway redirect
func (h *CheckoutHandler) endGatewayReturn(c *gin.Context) {
	s := middleware.GetSession(c)
	if s == nil {
		return
	}
	s.Delete(session.KeyCustomerID)
	h.saveSession(c)
}

func (h *CheckoutHandler) saveSession(c *gin.Context) {
	if err := middleware.SaveSession(c); err != nil {
		logger.Enrich(c.Request.Context(), logger.GetGinLogger(c)).Warn("Failed to save checkout session", zap.Error(err))
	}
}

// Index godoc
// @Summary      Checkout page
// @Description  Cart, totals, couriers, addresses and payment methods of the signed-in customer
// @Tags         checkout
// @Produce      json
// @Success      200 {object} APIResponse[checkout.IndexView]
// @Failure      401 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /checkout [get]
func (h *CheckoutHandler) Index(c *gin.Context) {
	view, err := h.checkout.Index(c.Request.Context(), middleware.GetUserID(c), h.loadSession(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// Store godoc
// @Summary      Place the order
// @Description  Starts the payment with the selected gateway. PayPal answers with the approval URL,
// @Description  Stripe redirects back with a message and an unknown method answers 204.
// @Tags         checkout
// @Accept       json,x-www-form-urlencoded
// @Produce      json
// @Param        request body checkout.StoreInput true "Checkout form"
// @Success      200 {object} APIResponse[checkout.StoreResult]
// @Success      204
// @Failure      400 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Failure      502 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /checkout [post]
func (h *CheckoutHandler) Store(c *gin.Context) {
	var in checkout.StoreInput
	if !h.bind(c, &in) {
		return
	}

	result, sess, err := h.checkout.Store(c.Request.Context(), middleware.GetUserID(c), h.loadSession(c), in)
	h.storeSession(c, sess)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if result == nil {
		h.NoContent(c)
		return
	}
	h.Success(c, result)
}

// Execute godoc
// @Summary      Capture an approved payment
// @Description  Called with the parameters the gateway appends to the return URL. The GET form is
// @Description  the gateway redirect itself and is authenticated by the checkout session cookie.
// @Tags         checkout
// @Produce      json
// @Param        paymentId query string true "Gateway payment id"
// @Param        PayerID   query string true "Payer id"
// @Param        token     query string false "Approval token"
// @Success      200 {object} APIResponse[checkout.ExecuteResult]
// @Failure      409 {object} ErrorResponse
// @Failure      502 {object} ErrorResponse
// @Failure      503 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /checkout/execute [get]
// @Router       /checkout/execute [post]
func (h *CheckoutHandler) Execute(c *gin.Context) {
	var in checkout.ExecuteInput
	if c.Request.Method == http.MethodGet {
		if !h.bindQuery(c, &in) {
			return
		}
	} else if !h.bind(c, &in) {
		return
	}

	result, err := h.checkout.Execute(c.Request.Context(), middleware.GetUserID(c), h.loadSession(c), in)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.endGatewayReturn(c)
	h.Success(c, result)
}

// Cancel godoc
// @Summary      Payment cancelled by the shopper
// @Description  Echoes the gateway parameters and cancels the pending order they point to
// @Tags         checkout
// @Produce      json
// @Param        reference query string false "Order reference"
// @Param        token     query string false "Approval token"
// @Success      200 {object} APIResponse[checkout.CancelResult]
// @Security     BearerAuth
// @Router       /checkout/cancel [get]
func (h *CheckoutHandler) Cancel(c *gin.Context) {
	params := make(map[string]string)
	for key, values := range c.Request.URL.Query() {
		if len(values) > 0 {
			params[key] = values[0]
		}
	}

	result, err := h.checkout.Cancel(c.Request.Context(), middleware.GetUserID(c), params)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.endGatewayReturn(c)
	h.Success(c, result)
}

// SuccessPage godoc
// @Summary      Thank-you page
// @Tags         checkout
// @Produce      json
// @Success      200 {object} APIResponse[checkout.SuccessResult]
// @Router       /checkout/success [get]
func (h *CheckoutHandler) SuccessPage(c *gin.Context) {
	h.Success(c, h.checkout.Success())
}
