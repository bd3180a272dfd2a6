// Package handler holds the gin handlers of the shop API.
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/shop/backend/internal/domain/payment"
	"github.com/shop/backend/internal/domain/shared"
	"github.com/shop/backend/internal/infrastructure/logger"
	"github.com/shop/backend/internal/interfaces/http/dto"
	"github.com/shop/backend/internal/interfaces/http/middleware"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// Success sends a 200 response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// Created sends a 201 response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// NoContent sends a 204 response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Paginated sends a page of items with its meta block
func Paginated[T any](c *gin.Context, p *shared.Paginated[T]) {
	c.JSON(http.StatusOK, dto.NewPaginatedResponse(p))
}

// Error sends an error response with an explicit status
func (h *BaseHandler) Error(c *gin.Context, status int, code, message string) {
	c.JSON(status, dto.NewErrorResponseWithRequestID(code, message, middleware.GetRequestID(c)))
}

// BadRequest sends a 400 response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, message)
}

// NotFound sends a 404 response
func (h *BaseHandler) NotFound(c *gin.Context, message string) {
	h.Error(c, http.StatusNotFound, dto.ErrCodeNotFound, message)
}

// Unauthorized sends a 401 response
func (h *BaseHandler) Unauthorized(c *gin.Context, message string) {
	h.Error(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, message)
}

// ValidationError sends a 400 response with per-field details
func (h *BaseHandler) ValidationError(c *gin.Context, details []dto.ValidationDetail) {
	c.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(
		"Request validation failed",
		middleware.GetRequestID(c),
		details,
	))
}

// HandleError maps err onto the error envelope. Domain errors keep their
// message; anything unknown is logged and answered with a generic 500.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	requestID := middleware.GetRequestID(c)

	if details := middleware.ValidationDetails(err); details != nil {
		h.ValidationError(c, details)
		return
	}

	var paypalErr *payment.PaypalRequestError
	if errors.As(err, &paypalErr) {
		h.paypalError(c, err, paypalErr)
		return
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		code := dto.NormalizeErrorCode(domainErr.Code)
		c.JSON(dto.GetHTTPStatus(code), dto.NewErrorResponseWithRequestID(code, domainErr.Message, requestID))
		return
	}

	switch {
	case errors.Is(err, payment.ErrGatewayNotConfigured):
		h.Error(c, dto.GetHTTPStatus(dto.ErrCodePaymentGatewayNotConfig), dto.ErrCodePaymentGatewayNotConfig, "Payment method is not available")
		return
	case errors.Is(err, payment.ErrGatewayUnavailable):
		h.Error(c, http.StatusServiceUnavailable, dto.ErrCodePaymentUnavailable, "Payment provider is temporarily unavailable")
		return
	case errors.Is(err, payment.ErrGatewayRequestFailed), errors.Is(err, payment.ErrGatewayInvalidResponse):
		h.Error(c, http.StatusBadGateway, dto.ErrCodePaymentFailed, "Payment provider rejected the request")
		return
	}

	logger.Enrich(c.Request.Context(), logger.GetGinLogger(c)).Error("Unhandled error", zap.Error(err))
	h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, "An unexpected error occurred")
}

// paypalError answers a failed PayPal payment flow. Gateway failures carry
// the gateway's error data; a wrapped domain error keeps its own status.
func (h *BaseHandler) paypalError(c *gin.Context, err error, paypalErr *payment.PaypalRequestError) {
	requestID := middleware.GetRequestID(c)
	log := logger.Enrich(c.Request.Context(), logger.GetGinLogger(c))

	var gwErr *payment.GatewayError
	var domainErr *shared.DomainError
	switch {
	case errors.As(err, &gwErr),
		errors.Is(err, payment.ErrGatewayUnavailable),
		errors.Is(err, payment.ErrGatewayRequestFailed),
		errors.Is(err, payment.ErrGatewayInvalidResponse):
		code := dto.ErrCodePaymentFailed
		if errors.Is(err, payment.ErrGatewayUnavailable) {
			code = dto.ErrCodePaymentUnavailable
		}
		resp := dto.NewErrorResponseWithRequestID(code, paypalErr.Message, requestID)
		if len(paypalErr.Data) > 0 {
			resp.Data = paypalErr.Data
		}
		log.Warn("Payment request failed", zap.Error(err))
		c.JSON(dto.GetHTTPStatus(code), resp)
	case errors.As(err, &domainErr):
		code := dto.NormalizeErrorCode(domainErr.Code)
		c.JSON(dto.GetHTTPStatus(code), dto.NewErrorResponseWithRequestID(code, domainErr.Message, requestID))
	case errors.Is(err, payment.ErrGatewayNotConfigured):
		h.Error(c, dto.GetHTTPStatus(dto.ErrCodePaymentGatewayNotConfig), dto.ErrCodePaymentGatewayNotConfig, "Payment method is not available")
	default:
		log.Error("Payment could not be completed", zap.Error(err))
		h.Error(c, http.StatusInternalServerError, dto.ErrCodePaymentFailed, "The payment could not be completed")
	}
}

// bindJSON binds and validates the body into req, answering on failure
func (h *BaseHandler) bindJSON(c *gin.Context, req any) bool {
	return h.bindWith(c, c.ShouldBindJSON(req))
}

// bindQuery binds and validates the query string into req
func (h *BaseHandler) bindQuery(c *gin.Context, req any) bool {
	return h.bindWith(c, c.ShouldBindQuery(req))
}

// bind picks the binding from the request content type (JSON or form)
func (h *BaseHandler) bind(c *gin.Context, req any) bool {
	return h.bindWith(c, c.ShouldBind(req))
}

func (h *BaseHandler) bindWith(c *gin.Context, err error) bool {
	if err == nil {
		return true
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		h.ValidationError(c, middleware.ValidationDetails(err))
		return false
	}
	h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidJSON, "Malformed request body")
	return false
}

// parseID reads a positive integer path parameter
func (h *BaseHandler) parseID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		h.BadRequest(c, "Invalid "+name)
		return 0, false
	}
	return id, true
}
