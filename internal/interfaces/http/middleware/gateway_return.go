package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/shop/backend/internal/infrastructure/auth"
	"github.com/shop/backend/internal/infrastructure/logger"
	"github.com/shop/backend/internal/infrastructure/session"
	"github.com/shop/backend/internal/interfaces/http/dto"
)

// SessionCustomerKey holds the customer id GatewayReturn took from the session
const SessionCustomerKey = "session_customer_id"

// GatewayReturn authenticates a shopper sent back by a payment gateway.
// The browser follows the gateway's redirect with its session cookie but
// without a bearer token, so a request that has no Authorization header is
// accepted for the customer the session recorded when checkout started.
// A request that has one must carry a valid customer token.
// It must follow Session.
func GatewayReturn(cfg JWTConfig) gin.HandlerFunc {
	authenticate := newAuthenticator(cfg)
	l := cfg.Logger
	if l == nil {
		l = zap.NewNop()
	}

	return func(c *gin.Context) {
		if c.GetHeader(AuthHeaderKey) != "" {
			if !authenticate(c) {
				return
			}
			if claims := GetJWTClaims(c); claims.SubjectType != auth.SubjectCustomer {
				abortWithError(c, http.StatusForbidden, dto.ErrCodeForbidden, "This endpoint is not available to "+string(claims.SubjectType)+"s")
				return
			}
			c.Next()
			return
		}

		var customerID int64
		if s := GetSession(c); s != nil {
			customerID = s.Int64(session.KeyCustomerID, 0)
		}
		if customerID == 0 {
			logger.Enrich(c.Request.Context(), l).Warn("Gateway return without token or checkout session",
				zap.String("path", c.Request.URL.Path),
			)
			abortWithError(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, "Authentication required")
			return
		}

		c.Set(SessionCustomerKey, customerID)
		principal := string(auth.SubjectCustomer) + ":" + strconv.FormatInt(customerID, 10)
		c.Request = c.Request.WithContext(logger.WithPrincipal(c.Request.Context(), principal))
		c.Next()
	}
}
