package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	salesapp "github.com/shop/backend/internal/application/sales"
)

// OrderHandler administers orders
type OrderHandler struct {
	BaseHandler
	orders *salesapp.OrderService
}

// NewOrderHandler creates an OrderHandler
func NewOrderHandler(svc *salesapp.OrderService) *OrderHandler {
	return &OrderHandler{orders: svc}
}

// List godoc
// @Summary      List orders
// @Tags         admin-orders
// @Produce      json
// @Param        status    query string false "Order status"
// @Param        order_by  query string false "Sort column"
// @Param        sort      query string false "asc or desc"
// @Param        page      query int    false "Page"
// @Param        page_size query int    false "Page size"
// @Success      200 {object} APIResponse[[]salesapp.OrderResponse]
// @Security     BearerAuth
// @Router       /admin/orders [get]
func (h *OrderHandler) List(c *gin.Context) {
	var f salesapp.OrderListFilter
	if !h.bindQuery(c, &f) {
		return
	}
	page, err := h.orders.List(c.Request.Context(), f)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Paginated(c, page)
}

// Get godoc
// @Summary      Show an order with its lines
// @Tags         admin-orders
// @Produce      json
// @Param        id path int true "Order ID"
// @Success      200 {object} APIResponse[salesapp.OrderResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/orders/{id} [get]
func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	order, err := h.orders.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// ChangeStatus godoc
// @Summary      Move an order to another status
// @Description  pending goes to paid or cancelled, paid to shipped, shipped to delivered
// @Tags         admin-orders
// @Accept       json
// @Produce      json
// @Param        id path int true "Order ID"
// @Param        request body salesapp.ChangeStatusRequest true "Target status"
// @Success      200 {object} APIResponse[salesapp.OrderResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/orders/{id}/status [put]
func (h *OrderHandler) ChangeStatus(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	var req salesapp.ChangeStatusRequest
	if !h.bindJSON(c, &req) {
		return
	}
	order, err := h.orders.ChangeStatus(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// Invoice godoc
// @Summary      Download the invoice of an order
// @Description  PDF when a headless browser is available, HTML otherwise
// @Tags         admin-orders
// @Produce      application/pdf
// @Produce      text/html
// @Param        id path int true "Order ID"
// @Success      200 {file} file
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/orders/{id}/invoice [get]
func (h *OrderHandler) Invoice(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	inv, err := h.orders.Invoice(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.Header("Content-Disposition", "inline; filename="+strconv.Quote(inv.Filename))
	c.Data(http.StatusOK, inv.ContentType, inv.Content)
}
