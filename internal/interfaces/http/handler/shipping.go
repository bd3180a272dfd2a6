package handler

import (
	"github.com/gin-gonic/gin"

	shippingapp "github.com/shop/backend/internal/application/shipping"
	"github.com/shop/backend/internal/interfaces/http/dto"
)

// ShippingHandler serves couriers, provinces and cities
type ShippingHandler struct {
	BaseHandler
	couriers  *shippingapp.CourierService
	provinces *shippingapp.ProvinceService
}

// NewShippingHandler creates a ShippingHandler
func NewShippingHandler(couriers *shippingapp.CourierService, provinces *shippingapp.ProvinceService) *ShippingHandler {
	return &ShippingHandler{couriers: couriers, provinces: provinces}
}

// ProvinceListQuery orders the province listing
type ProvinceListQuery struct {
	OrderBy string `form:"order_by" binding:"omitempty,oneof=id name country_id"`
	Sort    string `form:"sort" binding:"omitempty,oneof=asc desc"`
}

// ActiveCouriers godoc
// @Summary      List couriers available at checkout
// @Tags         shipping
// @Produce      json
// @Success      200 {object} APIResponse[[]shippingapp.CourierResponse]
// @Router       /couriers [get]
func (h *ShippingHandler) ActiveCouriers(c *gin.Context) {
	couriers, err := h.couriers.ListActive(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, couriers)
}

// ListProvinces godoc
// @Summary      List provinces
// @Description  Ordered by id descending unless asked otherwise
// @Tags         shipping
// @Produce      json
// @Param        order_by query string false "id, name or country_id"
// @Param        sort     query string false "asc or desc"
// @Success      200 {object} APIResponse[[]shippingapp.ProvinceResponse]
// @Router       /provinces [get]
func (h *ShippingHandler) ListProvinces(c *gin.Context) {
	var q ProvinceListQuery
	if !h.bindQuery(c, &q) {
		return
	}
	provinces, err := h.provinces.List(c.Request.Context(), q.OrderBy, q.Sort)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, provinces)
}

// ListCities godoc
// @Summary      List the cities of a province
// @Tags         shipping
// @Produce      json
// @Param        id path int true "Province ID"
// @Success      200 {object} APIResponse[[]shippingapp.CityResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /provinces/{id}/cities [get]
func (h *ShippingHandler) ListCities(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	cities, err := h.provinces.ListCities(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cities)
}

// GetProvince godoc
// @Summary      Show a province with its cities
// @Tags         admin-provinces
// @Produce      json
// @Param        id path int true "Province ID"
// @Success      200 {object} APIResponse[shippingapp.ProvinceResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/provinces/{id} [get]
func (h *ShippingHandler) GetProvince(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	p, err := h.provinces.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, p)
}

// UpdateProvince godoc
// @Summary      Update a province
// @Tags         admin-provinces
// @Accept       json
// @Produce      json
// @Param        id path int true "Province ID"
// @Param        request body shippingapp.ProvinceRequest true "Province"
// @Success      200 {object} APIResponse[shippingapp.ProvinceResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/provinces/{id} [put]
func (h *ShippingHandler) UpdateProvince(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	var req shippingapp.ProvinceRequest
	if !h.bindJSON(c, &req) {
		return
	}
	p, err := h.provinces.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, p)
}

// ListCouriers godoc
// @Summary      List all couriers
// @Tags         admin-couriers
// @Produce      json
// @Param        order_by  query string false "Sort column"
// @Param        sort      query string false "asc or desc"
// @Param        page      query int    false "Page"
// @Param        page_size query int    false "Page size"
// @Success      200 {object} APIResponse[[]shippingapp.CourierResponse]
// @Security     BearerAuth
// @Router       /admin/couriers [get]
func (h *ShippingHandler) ListCouriers(c *gin.Context) {
	var q dto.ListQuery
	if !h.bindQuery(c, &q) {
		return
	}
	couriers, err := h.couriers.List(c.Request.Context(), q.Options())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, couriers)
}

// GetCourier godoc
// @Summary      Show a courier
// @Tags         admin-couriers
// @Produce      json
// @Param        id path int true "Courier ID"
// @Success      200 {object} APIResponse[shippingapp.CourierResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/couriers/{id} [get]
func (h *ShippingHandler) GetCourier(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	courier, err := h.couriers.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, courier)
}

// CreateCourier godoc
// @Summary      Create a courier
// @Tags         admin-couriers
// @Accept       json
// @Produce      json
// @Param        request body shippingapp.CourierRequest true "Courier"
// @Success      201 {object} APIResponse[shippingapp.CourierResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/couriers [post]
func (h *ShippingHandler) CreateCourier(c *gin.Context) {
	var req shippingapp.CourierRequest
	if !h.bindJSON(c, &req) {
		return
	}
	courier, err := h.couriers.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, courier)
}

// UpdateCourier godoc
// @Summary      Update a courier
// @Tags         admin-couriers
// @Accept       json
// @Produce      json
// @Param        id path int true "Courier ID"
// @Param        request body shippingapp.CourierRequest true "Courier"
// @Success      200 {object} APIResponse[shippingapp.CourierResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/couriers/{id} [put]
func (h *ShippingHandler) UpdateCourier(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	var req shippingapp.CourierRequest
	if !h.bindJSON(c, &req) {
		return
	}
	courier, err := h.couriers.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, courier)
}

// DeleteCourier godoc
// @Summary      Delete a courier
// @Tags         admin-couriers
// @Param        id path int true "Courier ID"
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/couriers/{id} [delete]
func (h *ShippingHandler) DeleteCourier(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	if err := h.couriers.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
