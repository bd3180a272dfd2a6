package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/shop/backend/internal/application/identity"
	"github.com/shop/backend/internal/interfaces/http/dto"
)

// PermissionHandler administers permissions
type PermissionHandler struct {
	BaseHandler
	permissions *identity.PermissionService
}

// NewPermissionHandler creates a PermissionHandler
func NewPermissionHandler(svc *identity.PermissionService) *PermissionHandler {
	return &PermissionHandler{permissions: svc}
}

// List godoc
// @Summary      List permissions
// @Tags         admin-permissions
// @Produce      json
// @Param        order_by  query string false "Sort column"
// @Param        sort      query string false "asc or desc"
// @Param        page      query int    false "Page"
// @Param        page_size query int    false "Page size"
// @Success      200 {object} APIResponse[[]identity.PermissionResponse]
// @Security     BearerAuth
// @Router       /admin/permissions [get]
func (h *PermissionHandler) List(c *gin.Context) {
	var q dto.ListQuery
	if !h.bindQuery(c, &q) {
		return
	}
	page, err := h.permissions.List(c.Request.Context(), q.Options())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Paginated(c, page)
}

// Get godoc
// @Summary      Show a permission
// @Tags         admin-permissions
// @Produce      json
// @Param        id path int true "Permission ID"
// @Success      200 {object} APIResponse[identity.PermissionResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/permissions/{id} [get]
func (h *PermissionHandler) Get(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	p, err := h.permissions.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, p)
}

// Create godoc
// @Summary      Create a permission
// @Tags         admin-permissions
// @Accept       json
// @Produce      json
// @Param        request body identity.PermissionRequest true "Permission"
// @Success      201 {object} APIResponse[identity.PermissionResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/permissions [post]
func (h *PermissionHandler) Create(c *gin.Context) {
	var req identity.PermissionRequest
	if !h.bindJSON(c, &req) {
		return
	}
	p, err := h.permissions.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, p)
}

// Update godoc
// @Summary      Update a permission
// @Tags         admin-permissions
// @Accept       json
// @Produce      json
// @Param        id path int true "Permission ID"
// @Param        request body identity.PermissionRequest true "Permission"
// @Success      200 {object} APIResponse[identity.PermissionResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/permissions/{id} [put]
func (h *PermissionHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	var req identity.PermissionRequest
	if !h.bindJSON(c, &req) {
		return
	}
	p, err := h.permissions.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, p)
}

// Delete godoc
// @Summary      Delete a permission
// @Tags         admin-permissions
// @Param        id path int true "Permission ID"
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/permissions/{id} [delete]
func (h *PermissionHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	if err := h.permissions.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
