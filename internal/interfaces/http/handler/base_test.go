package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shop/backend/internal/domain/payment"
	"github.com/shop/backend/internal/domain/shared"
	"github.com/shop/backend/internal/interfaces/http/dto"
	"github.com/shop/backend/internal/interfaces/http/middleware"
)

func TestHandleError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"not found", shared.ErrNotFound, http.StatusNotFound, dto.ErrCodeNotFound},
		{"wrapped not found", fmt.Errorf("load order: %w", shared.ErrNotFound), http.StatusNotFound, dto.ErrCodeNotFound},
		{"already exists", shared.ErrAlreadyExists, http.StatusConflict, dto.ErrCodeAlreadyExists},
		{"invalid state", shared.ErrInvalidState, http.StatusUnprocessableEntity, dto.ErrCodeInvalidState},
		{"custom invalid code", shared.NewDomainError("INVALID_PRODUCT_SKU", "bad sku"), http.StatusBadRequest, "INVALID_PRODUCT_SKU"},
		{"gateway not configured", payment.ErrGatewayNotConfigured, dto.GetHTTPStatus(dto.ErrCodePaymentGatewayNotConfig), dto.ErrCodePaymentGatewayNotConfig},
		{"gateway unavailable", payment.ErrGatewayUnavailable, http.StatusServiceUnavailable, dto.ErrCodePaymentUnavailable},
		{"gateway rejected", payment.ErrGatewayRequestFailed, http.StatusBadGateway, dto.ErrCodePaymentFailed},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, dto.ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &BaseHandler{}
			r := gin.New()
			r.Use(middleware.RequestID())
			r.GET("/", func(c *gin.Context) { h.HandleError(c, tt.err) })

			w := doJSON(r, http.MethodGet, "/", nil)
			assert.Equal(t, tt.wantStatus, w.Code)
			env := decode(t, w)
			assert.False(t, env.Success)
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.wantCode, env.Error.Code)
			assert.NotEmpty(t, env.Error.RequestID)
		})
	}
}

func TestHandleError_UnknownErrorHidesMessage(t *testing.T) {
	h := &BaseHandler{}
	r := gin.New()
	r.GET("/", func(c *gin.Context) { h.HandleError(c, errors.New("dial tcp 10.0.0.3:5432: refused")) })

	w := doJSON(r, http.MethodGet, "/", nil)
	assert.NotContains(t, w.Body.String(), "10.0.0.3")
}

func TestHandleError_PaypalRequestError(t *testing.T) {
	h := &BaseHandler{}

	t.Run("rejected payment carries gateway data", func(t *testing.T) {
		gwErr := &payment.GatewayError{
			Gateway:    "paypal",
			StatusCode: 400,
			Name:       "INSTRUMENT_DECLINED",
			Message:    "The instrument presented was declined",
			DebugID:    "abc123",
			Err:        payment.ErrGatewayRequestFailed,
		}
		r := gin.New()
		r.GET("/", func(c *gin.Context) { h.HandleError(c, payment.NewPaypalRequestError(gwErr)) })

		w := doJSON(r, http.MethodGet, "/", nil)
		assert.Equal(t, http.StatusBadGateway, w.Code)

		var body struct {
			Error struct {
				Code    string `json:"code"`
				Message string `json:"message"`
			} `json:"error"`
			Data map[string]any `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, dto.ErrCodePaymentFailed, body.Error.Code)
		assert.Equal(t, "The instrument presented was declined", body.Error.Message)
		assert.Equal(t, "INSTRUMENT_DECLINED", body.Data["name"])
		assert.Equal(t, "abc123", body.Data["debug_id"])
	})

	t.Run("outage maps to unavailable", func(t *testing.T) {
		err := payment.NewPaypalRequestError(fmt.Errorf("%w: connection reset", payment.ErrGatewayUnavailable))
		r := gin.New()
		r.GET("/", func(c *gin.Context) { h.HandleError(c, err) })

		w := doJSON(r, http.MethodGet, "/", nil)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Equal(t, dto.ErrCodePaymentUnavailable, decode(t, w).Error.Code)
	})

	t.Run("wrapped domain error keeps its status", func(t *testing.T) {
		executed := shared.NewDomainError("PAYMENT_ALREADY_EXECUTED", "This payment has already been executed")
		err := payment.NewPaypalRequestError(executed)
		r := gin.New()
		r.GET("/", func(c *gin.Context) { h.HandleError(c, err) })

		w := doJSON(r, http.MethodGet, "/", nil)
		assert.Equal(t, http.StatusConflict, w.Code)
		body := decode(t, w)
		assert.Equal(t, dto.ErrCodePaymentAlreadyExecuted, body.Error.Code)
		assert.Equal(t, "This payment has already been executed", body.Error.Message)
	})

	t.Run("wrapped stale order write is a conflict", func(t *testing.T) {
		err := payment.NewPaypalRequestError(fmt.Errorf("record payment of order R-1: %w", shared.ErrConcurrentUpdate))
		r := gin.New()
		r.GET("/", func(c *gin.Context) { h.HandleError(c, err) })

		w := doJSON(r, http.MethodGet, "/", nil)
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, dto.ErrCodeConflict, decode(t, w).Error.Code)
	})

	t.Run("internal failure hides its cause", func(t *testing.T) {
		err := payment.NewPaypalRequestError(errors.New("clear cart c-1: redis: connection refused"))
		r := gin.New()
		r.GET("/", func(c *gin.Context) { h.HandleError(c, err) })

		w := doJSON(r, http.MethodGet, "/", nil)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		body := decode(t, w)
		assert.Equal(t, dto.ErrCodePaymentFailed, body.Error.Code)
		assert.NotContains(t, body.Error.Message, "redis")
	})
}

type bindTarget struct {
	Email    string `json:"email" binding:"required,email"`
	Quantity int    `json:"quantity" binding:"min=1"`
}

func TestBindJSON(t *testing.T) {
	middleware.SetupValidator()
	h := &BaseHandler{}
	r := gin.New()
	r.POST("/", func(c *gin.Context) {
		var req bindTarget
		if !h.bindJSON(c, &req) {
			return
		}
		h.Success(c, req)
	})

	t.Run("valid", func(t *testing.T) {
		w := doJSON(r, http.MethodPost, "/", map[string]any{"email": "ada@example.com", "quantity": 2})
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("validation details use json names", func(t *testing.T) {
		w := doJSON(r, http.MethodPost, "/", map[string]any{"email": "nope", "quantity": 0})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decode(t, w)
		assert.Equal(t, dto.ErrCodeValidation, env.Error.Code)
		fields := make([]string, 0, len(env.Error.Details))
		for _, d := range env.Error.Details {
			fields = append(fields, d.Field)
		}
		assert.ElementsMatch(t, []string{"email", "quantity"}, fields)
	})

	t.Run("malformed json", func(t *testing.T) {
		w := doJSON(r, http.MethodPost, "/", "{not json")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrCodeInvalidJSON, decode(t, w).Error.Code)
	})
}

func TestParseID(t *testing.T) {
	h := &BaseHandler{}
	r := gin.New()
	r.GET("/items/:id", func(c *gin.Context) {
		id, ok := h.parseID(c, "id")
		if !ok {
			return
		}
		h.Success(c, id)
	})

	assert.Equal(t, http.StatusOK, doJSON(r, http.MethodGet, "/items/7", nil).Code)
	for _, bad := range []string{"0", "-3", "abc"} {
		w := doJSON(r, http.MethodGet, "/items/"+bad, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, bad)
	}
}
