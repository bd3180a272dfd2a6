package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/shop/backend/internal/application/identity"
	"github.com/shop/backend/internal/interfaces/http/dto"
)

// RoleHandler administers roles and their permissions
type RoleHandler struct {
	BaseHandler
	roles *identity.RoleService
}

// NewRoleHandler creates a RoleHandler
func NewRoleHandler(svc *identity.RoleService) *RoleHandler {
	return &RoleHandler{roles: svc}
}

// List godoc
// @Summary      List roles
// @Tags         admin-roles
// @Produce      json
// @Param        order_by  query string false "Sort column"
// @Param        sort      query string false "asc or desc"
// @Success      200 {object} APIResponse[[]identity.RoleResponse]
// @Security     BearerAuth
// @Router       /admin/roles [get]
func (h *RoleHandler) List(c *gin.Context) {
	var q dto.ListQuery
	if !h.bindQuery(c, &q) {
		return
	}
	roles, err := h.roles.List(c.Request.Context(), q.Options())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, roles)
}

// Get godoc
// @Summary      Show a role with its permissions
// @Tags         admin-roles
// @Produce      json
// @Param        id path int true "Role ID"
// @Success      200 {object} APIResponse[identity.RoleResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/roles/{id} [get]
func (h *RoleHandler) Get(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	role, err := h.roles.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, role)
}

// Create godoc
// @Summary      Create a role
// @Tags         admin-roles
// @Accept       json
// @Produce      json
// @Param        request body identity.RoleRequest true "Role"
// @Success      201 {object} APIResponse[identity.RoleResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/roles [post]
func (h *RoleHandler) Create(c *gin.Context) {
	var req identity.RoleRequest
	if !h.bindJSON(c, &req) {
		return
	}
	role, err := h.roles.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, role)
}

// Update godoc
// @Summary      Update a role
// @Tags         admin-roles
// @Accept       json
// @Produce      json
// @Param        id path int true "Role ID"
// @Param        request body identity.RoleRequest true "Role"
// @Success      200 {object} APIResponse[identity.RoleResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/roles/{id} [put]
func (h *RoleHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	var req identity.RoleRequest
	if !h.bindJSON(c, &req) {
		return
	}
	role, err := h.roles.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, role)
}

// SyncPermissions godoc
// @Summary      Replace the permissions of a role
// @Tags         admin-roles
// @Accept       json
// @Produce      json
// @Param        id path int true "Role ID"
// @Param        request body identity.SyncPermissionsRequest true "Permission ids"
// @Success      200 {object} APIResponse[identity.RoleResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/roles/{id}/permissions [put]
func (h *RoleHandler) SyncPermissions(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	var req identity.SyncPermissionsRequest
	if !h.bindJSON(c, &req) {
		return
	}
	role, err := h.roles.SyncPermissions(c.Request.Context(), id, req.PermissionIDs)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, role)
}

// Delete godoc
// @Summary      Delete a role
// @Tags         admin-roles
// @Param        id path int true "Role ID"
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/roles/{id} [delete]
func (h *RoleHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	if err := h.roles.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
