package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/shop/backend/internal/application/identity"
	"github.com/shop/backend/internal/interfaces/http/dto"
)

// EmployeeHandler administers staff accounts and their roles
type EmployeeHandler struct {
	BaseHandler
	employees *identity.EmployeeService
}

// NewEmployeeHandler creates an EmployeeHandler
func NewEmployeeHandler(svc *identity.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{employees: svc}
}

// List godoc
// @Summary      List employees
// @Tags         admin-employees
// @Produce      json
// @Param        order_by  query string false "Sort column"
// @Param        sort      query string false "asc or desc"
// @Param        page      query int    false "Page"
// @Param        page_size query int    false "Page size"
// @Success      200 {object} APIResponse[[]identity.EmployeeResponse]
// @Security     BearerAuth
// @Router       /admin/employees [get]
func (h *EmployeeHandler) List(c *gin.Context) {
	var q dto.ListQuery
	if !h.bindQuery(c, &q) {
		return
	}
	employees, err := h.employees.List(c.Request.Context(), q.Options())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, employees)
}

// Get godoc
// @Summary      Show an employee
// @Tags         admin-employees
// @Produce      json
// @Param        id path int true "Employee ID"
// @Success      200 {object} APIResponse[identity.EmployeeResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/employees/{id} [get]
func (h *EmployeeHandler) Get(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	e, err := h.employees.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, e)
}

// Create godoc
// @Summary      Create an employee
// @Tags         admin-employees
// @Accept       json
// @Produce      json
// @Param        request body identity.CreateEmployeeRequest true "Employee"
// @Success      201 {object} APIResponse[identity.EmployeeResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/employees [post]
func (h *EmployeeHandler) Create(c *gin.Context) {
	var req identity.CreateEmployeeRequest
	if !h.bindJSON(c, &req) {
		return
	}
	e, err := h.employees.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, e)
}

// Update godoc
// @Summary      Update an employee
// @Description  Disabling the account or changing the password signs the employee out everywhere
// @Tags         admin-employees
// @Accept       json
// @Produce      json
// @Param        id path int true "Employee ID"
// @Param        request body identity.UpdateEmployeeRequest true "Employee"
// @Success      200 {object} APIResponse[identity.EmployeeResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/employees/{id} [put]
func (h *EmployeeHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	var req identity.UpdateEmployeeRequest
	if !h.bindJSON(c, &req) {
		return
	}
	e, err := h.employees.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, e)
}

// Delete godoc
// @Summary      Delete an employee
// @Tags         admin-employees
// @Param        id path int true "Employee ID"
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/employees/{id} [delete]
func (h *EmployeeHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	if err := h.employees.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// SyncRoles godoc
// @Summary      Replace the roles of an employee
// @Tags         admin-employees
// @Accept       json
// @Produce      json
// @Param        id path int true "Employee ID"
// @Param        request body identity.SyncRolesRequest true "Role ids"
// @Success      200 {object} APIResponse[identity.EmployeeResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/employees/{id}/roles [put]
func (h *EmployeeHandler) SyncRoles(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	var req identity.SyncRolesRequest
	if !h.bindJSON(c, &req) {
		return
	}
	e, err := h.employees.SyncRoles(c.Request.Context(), id, req.RoleIDs)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, e)
}

// ListRoles godoc
// @Summary      List the roles of an employee
// @Tags         admin-employees
// @Produce      json
// @Param        id path int true "Employee ID"
// @Success      200 {object} APIResponse[[]identity.RoleResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/employees/{id}/roles [get]
func (h *EmployeeHandler) ListRoles(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	roles, err := h.employees.ListRoles(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, roles)
}
