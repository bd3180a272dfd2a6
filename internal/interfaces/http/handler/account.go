package handler

import (
	"github.com/gin-gonic/gin"

	customerapp "github.com/shop/backend/internal/application/customer"
	salesapp "github.com/shop/backend/internal/application/sales"
	"github.com/shop/backend/internal/interfaces/http/middleware"
)

// AccountHandler serves the signed-in customer's addresses and orders.
// Every call is scoped to the customer id of the token.
type AccountHandler struct {
	BaseHandler
	addresses *customerapp.AddressService
	orders    *salesapp.OrderService
}

// NewAccountHandler creates an AccountHandler
func NewAccountHandler(addresses *customerapp.AddressService, orders *salesapp.OrderService) *AccountHandler {
	return &AccountHandler{addresses: addresses, orders: orders}
}

// ListAddresses godoc
// @Summary      List my addresses
// @Tags         customer
// @Produce      json
// @Success      200 {object} APIResponse[[]customerapp.AddressResponse]
// @Security     BearerAuth
// @Router       /customer/addresses [get]
func (h *AccountHandler) ListAddresses(c *gin.Context) {
	addresses, err := h.addresses.List(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, addresses)
}

// GetAddress godoc
// @Summary      Show one of my addresses
// @Tags         customer
// @Produce      json
// @Param        id path int true "Address ID"
// @Success      200 {object} APIResponse[customerapp.AddressResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /customer/addresses/{id} [get]
func (h *AccountHandler) GetAddress(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	addr, err := h.addresses.Get(c.Request.Context(), middleware.GetUserID(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, addr)
}

// CreateAddress godoc
// @Summary      Add an address
// @Tags         customer
// @Accept       json
// @Produce      json
// @Param        request body customerapp.AddressRequest true "Address"
// @Success      201 {object} APIResponse[customerapp.AddressResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /customer/addresses [post]
func (h *AccountHandler) CreateAddress(c *gin.Context) {
	var req customerapp.AddressRequest
	if !h.bindJSON(c, &req) {
		return
	}
	addr, err := h.addresses.Create(c.Request.Context(), middleware.GetUserID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, addr)
}

// UpdateAddress godoc
// @Summary      Update one of my addresses
// @Tags         customer
// @Accept       json
// @Produce      json
// @Param        id path int true "Address ID"
// @Param        request body customerapp.AddressRequest true "Address"
// @Success      200 {object} APIResponse[customerapp.AddressResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /customer/addresses/{id} [put]
func (h *AccountHandler) UpdateAddress(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	var req customerapp.AddressRequest
	if !h.bindJSON(c, &req) {
		return
	}
	addr, err := h.addresses.Update(c.Request.Context(), middleware.GetUserID(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, addr)
}

// DeleteAddress godoc
// @Summary      Delete one of my addresses
// @Tags         customer
// @Param        id path int true "Address ID"
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /customer/addresses/{id} [delete]
func (h *AccountHandler) DeleteAddress(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	if err := h.addresses.Delete(c.Request.Context(), middleware.GetUserID(c), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ListOrders godoc
// @Summary      List my orders
// @Tags         customer
// @Produce      json
// @Param        status    query string false "Order status"
// @Param        order_by  query string false "Sort column"
// @Param        sort      query string false "asc or desc"
// @Success      200 {object} APIResponse[[]salesapp.OrderResponse]
// @Security     BearerAuth
// @Router       /customer/orders [get]
func (h *AccountHandler) ListOrders(c *gin.Context) {
	var f salesapp.OrderListFilter
	if !h.bindQuery(c, &f) {
		return
	}
	orders, err := h.orders.ListCustomerOrders(c.Request.Context(), middleware.GetUserID(c), f)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, orders)
}

// GetOrder godoc
// @Summary      Show one of my orders
// @Tags         customer
// @Produce      json
// @Param        reference path string true "Order reference"
// @Success      200 {object} APIResponse[salesapp.OrderResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /customer/orders/{reference} [get]
func (h *AccountHandler) GetOrder(c *gin.Context) {
	order, err := h.orders.GetCustomerOrder(c.Request.Context(), middleware.GetUserID(c), c.Param("reference"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}
