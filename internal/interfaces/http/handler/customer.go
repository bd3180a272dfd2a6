package handler

import (
	"github.com/gin-gonic/gin"

	customerapp "github.com/shop/backend/internal/application/customer"
	"github.com/shop/backend/internal/interfaces/http/dto"
)

// CustomerHandler administers customer accounts
type CustomerHandler struct {
	BaseHandler
	customers *customerapp.CustomerService
}

// NewCustomerHandler creates a CustomerHandler
func NewCustomerHandler(svc *customerapp.CustomerService) *CustomerHandler {
	return &CustomerHandler{customers: svc}
}

// List godoc
// @Summary      List customers
// @Tags         admin-customers
// @Produce      json
// @Param        order_by  query string false "Sort column"
// @Param        sort      query string false "asc or desc"
// @Param        page      query int    false "Page"
// @Param        page_size query int    false "Page size"
// @Success      200 {object} APIResponse[[]customerapp.CustomerResponse]
// @Security     BearerAuth
// @Router       /admin/customers [get]
func (h *CustomerHandler) List(c *gin.Context) {
	var q dto.ListQuery
	if !h.bindQuery(c, &q) {
		return
	}
	customers, err := h.customers.List(c.Request.Context(), q.Options())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, customers)
}

// Get godoc
// @Summary      Show a customer with addresses
// @Tags         admin-customers
// @Produce      json
// @Param        id path int true "Customer ID"
// @Success      200 {object} APIResponse[customerapp.CustomerResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/customers/{id} [get]
func (h *CustomerHandler) Get(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	cust, err := h.customers.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cust)
}

// Create godoc
// @Summary      Create a customer
// @Tags         admin-customers
// @Accept       json
// @Produce      json
// @Param        request body customerapp.CreateCustomerRequest true "Customer"
// @Success      201 {object} APIResponse[customerapp.CustomerResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/customers [post]
func (h *CustomerHandler) Create(c *gin.Context) {
	var req customerapp.CreateCustomerRequest
	if !h.bindJSON(c, &req) {
		return
	}
	cust, err := h.customers.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, cust)
}

// Update godoc
// @Summary      Update a customer
// @Tags         admin-customers
// @Accept       json
// @Produce      json
// @Param        id path int true "Customer ID"
// @Param        request body customerapp.UpdateCustomerRequest true "Customer"
// @Success      200 {object} APIResponse[customerapp.CustomerResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/customers/{id} [put]
func (h *CustomerHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	var req customerapp.UpdateCustomerRequest
	if !h.bindJSON(c, &req) {
		return
	}
	cust, err := h.customers.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cust)
}

// Delete godoc
// @Summary      Delete a customer
// @Tags         admin-customers
// @Param        id path int true "Customer ID"
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/customers/{id} [delete]
func (h *CustomerHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	if err := h.customers.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
