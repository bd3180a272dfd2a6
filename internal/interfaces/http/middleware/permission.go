package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/shop/backend/internal/infrastructure/logger"
	"github.com/shop/backend/internal/interfaces/http/dto"
)

// RequirePermission requires one permission. It must follow JWTAuth.
func RequirePermission(permission string, l *zap.Logger) gin.HandlerFunc {
	return RequireAnyPermission(l, permission)
}

// RequireAnyPermission requires at least one of permissions
func RequireAnyPermission(l *zap.Logger, permissions ...string) gin.HandlerFunc {
	if l == nil {
		l = zap.NewNop()
	}
	return func(c *gin.Context) {
		claims := GetJWTClaims(c)
		if claims == nil {
			abortWithError(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, "Authentication required")
			return
		}
		if !claims.IsEmployee() || !claims.HasAnyPermission(permissions...) {
			logger.Enrich(c.Request.Context(), l).Warn("Permission denied",
				zap.Strings("required_any", permissions),
				zap.String("path", c.Request.URL.Path),
			)
			abortWithError(c, http.StatusForbidden, dto.ErrCodeForbidden, "You do not have permission to perform this action")
			return
		}
		c.Next()
	}
}
