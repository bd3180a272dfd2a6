package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/shop/backend/internal/application/identity"
	"github.com/shop/backend/internal/interfaces/http/middleware"
)

// AuthHandler signs customers and employees in and out
type AuthHandler struct {
	BaseHandler
	auth *identity.AuthService
}

// NewAuthHandler creates an AuthHandler
func NewAuthHandler(svc *identity.AuthService) *AuthHandler {
	return &AuthHandler{auth: svc}
}

// RegisterCustomer godoc
// @Summary      Register a customer
// @Description  Creates the account and signs it in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body identity.RegisterCustomerRequest true "Account"
// @Success      201 {object} APIResponse[identity.LoginResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      429 {object} ErrorResponse
// @Router       /auth/customers/register [post]
func (h *AuthHandler) RegisterCustomer(c *gin.Context) {
	var req identity.RegisterCustomerRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.auth.RegisterCustomer(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// LoginCustomer godoc
// @Summary      Customer login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body identity.LoginRequest true "Credentials"
// @Success      200 {object} APIResponse[identity.LoginResponse]
// @Failure      401 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      429 {object} ErrorResponse
// @Router       /auth/customers/login [post]
func (h *AuthHandler) LoginCustomer(c *gin.Context) {
	var req identity.LoginRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.auth.LoginCustomer(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// LoginEmployee godoc
// @Summary      Employee login
// @Description  The token carries the permissions of the employee's roles
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body identity.LoginRequest true "Credentials"
// @Success      200 {object} APIResponse[identity.LoginResponse]
// @Failure      401 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      429 {object} ErrorResponse
// @Router       /auth/employees/login [post]
func (h *AuthHandler) LoginEmployee(c *gin.Context) {
	var req identity.LoginRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.auth.LoginEmployee(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Logout godoc
// @Summary      Logout
// @Description  Revokes the presented token
// @Tags         auth
// @Success      204
// @Failure      401 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := middleware.GetJWTClaims(c)
	if claims == nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	if err := h.auth.Logout(c.Request.Context(), claims); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
