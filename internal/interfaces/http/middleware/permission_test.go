package middleware

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/shop/backend/internal/infrastructure/auth"
	"github.com/shop/backend/internal/interfaces/http/dto"
)

func TestRequirePermission(t *testing.T) {
	svc := newTestJWTService(time.Hour)
	r := newJWTRouter(JWTConfig{JWTService: svc}, RequirePermission("products.update", nil))

	tests := []struct {
		name   string
		token  string
		status int
	}{
		{"granted", issueToken(t, svc, auth.SubjectEmployee, "products.view", "products.update"), http.StatusOK},
		{"missing permission", issueToken(t, svc, auth.SubjectEmployee, "products.view"), http.StatusForbidden},
		{"customer with the name", issueToken(t, svc, auth.SubjectCustomer, "products.update"), http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(r, "/me", tt.token)
			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusForbidden {
				assert.Equal(t, dto.ErrCodeForbidden, decodeError(t, w).Code)
			}
		})
	}
}

func TestRequireAnyPermission(t *testing.T) {
	svc := newTestJWTService(time.Hour)
	r := newJWTRouter(JWTConfig{JWTService: svc}, RequireAnyPermission(nil, "orders.view", "orders.update"))

	assert.Equal(t, http.StatusOK, get(r, "/me", issueToken(t, svc, auth.SubjectEmployee, "orders.update")).Code)
	assert.Equal(t, http.StatusForbidden, get(r, "/me", issueToken(t, svc, auth.SubjectEmployee, "roles.view")).Code)
}

func TestRequirePermission_WithoutJWT(t *testing.T) {
	r := gin.New()
	r.GET("/x", RequirePermission("orders.view", nil), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := get(r, "/x", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, dto.ErrCodeUnauthorized, decodeError(t, w).Code)
}
