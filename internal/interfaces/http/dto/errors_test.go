package dto

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shop/backend/internal/domain/shared"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code     string
		expected int
	}{
		{ErrCodeInternal, http.StatusInternalServerError},
		{ErrCodeValidation, http.StatusBadRequest},
		{ErrCodeUnauthorized, http.StatusUnauthorized},
		{ErrCodeTokenRevoked, http.StatusUnauthorized},
		{ErrCodeForbidden, http.StatusForbidden},
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodeAlreadyExists, http.StatusConflict},
		{ErrCodeInvalidState, http.StatusUnprocessableEntity},
		{ErrCodePaymentAlreadyExecuted, http.StatusConflict},
		{ErrCodePaymentUnavailable, http.StatusServiceUnavailable},
		{ErrCodePaymentFailed, http.StatusBadGateway},
		{ErrCodeCoverType, http.StatusUnsupportedMediaType},
		{"ERR_SOMETHING_NEW", http.StatusInternalServerError},
		{"INVALID_PRODUCT_SKU", http.StatusBadRequest},
		{"CART_ITEM_NOT_FOUND", http.StatusNotFound},
		{"ALREADY_PAID", http.StatusConflict},
		{"NO_ITEMS", http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetHTTPStatus(tt.code))
		})
	}
}

func TestNormalizeErrorCode(t *testing.T) {
	assert.Equal(t, ErrCodeNotFound, NormalizeErrorCode("NOT_FOUND"))
	assert.Equal(t, ErrCodePaymentAlreadyExecuted, NormalizeErrorCode("PAYMENT_ALREADY_EXECUTED"))
	assert.Equal(t, ErrCodeCoverType, NormalizeErrorCode("INVALID_COVER_TYPE"))
	assert.Equal(t, "INVALID_PRODUCT_SKU", NormalizeErrorCode("INVALID_PRODUCT_SKU"))
	assert.Equal(t, ErrCodeValidation, NormalizeErrorCode(ErrCodeValidation))
}

func TestEveryMappedCodeHasStatus(t *testing.T) {
	for domainCode, apiCode := range DomainErrorCodeMapping {
		_, ok := ErrorCodeHTTPStatus[apiCode]
		assert.True(t, ok, "%s maps to %s which has no status", domainCode, apiCode)
	}
}

func TestNewValidationErrorResponse(t *testing.T) {
	resp := NewValidationErrorResponse("Request validation failed", "req-1", []ValidationDetail{
		{Field: "email", Message: "Invalid email format"},
	})

	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"success": false,
		"error": {
			"code": "ERR_VALIDATION",
			"message": "Request validation failed",
			"request_id": "req-1",
			"details": [{"field": "email", "message": "Invalid email format"}]
		}
	}`, string(raw))
}

func TestNewPaginatedResponse(t *testing.T) {
	page := shared.NewPaginated([]string{"a", "b"}, 5, 1, 2)
	resp := NewPaginatedResponse(&page)

	assert.True(t, resp.Success)
	assert.Equal(t, []string{"a", "b"}, resp.Data)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(5), resp.Meta.Total)
	assert.Equal(t, 3, resp.Meta.TotalPages)
}

func TestListQuery_Options(t *testing.T) {
	assert.Equal(t, shared.ListOptions{Page: 1, PageSize: 20}, ListQuery{}.Options())
	assert.Equal(t,
		shared.ListOptions{OrderBy: "name", Sort: "asc", Page: 3, PageSize: 50},
		ListQuery{Page: 3, PageSize: 50, OrderBy: "name", Sort: "asc"}.Options(),
	)
}
