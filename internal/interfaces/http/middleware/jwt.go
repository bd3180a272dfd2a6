package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/shop/backend/internal/infrastructure/auth"
	"github.com/shop/backend/internal/infrastructure/logger"
	"github.com/shop/backend/internal/interfaces/http/dto"
)

// JWT context keys
const (
	JWTClaimsKey  = "jwt_claims"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
)

// JWTConfig holds the JWT middleware collaborators
type JWTConfig struct {
	JWTService *auth.JWTService
	// Blacklist is optional; without it tokens live until they expire
	Blacklist auth.TokenBlacklist
	Logger    *zap.Logger
}

// JWTAuth requires a valid, unrevoked bearer token. The claims are stored
// in the gin context and the principal in the request context.
func JWTAuth(cfg JWTConfig) gin.HandlerFunc {
	authenticate := newAuthenticator(cfg)
	return func(c *gin.Context) {
		if authenticate(c) {
			c.Next()
		}
	}
}

// newAuthenticator returns a check of the request's bearer token. A
// rejected token is answered and aborted, and the check reports false.
func newAuthenticator(cfg JWTConfig) func(c *gin.Context) bool {
	l := cfg.Logger
	if l == nil {
		l = zap.NewNop()
	}

	return func(c *gin.Context) bool {
		header := c.GetHeader(AuthHeaderKey)
		if header == "" {
			denyToken(c, l, auth.ErrInvalidToken, "Missing authorization header")
			return false
		}
		token, ok := strings.CutPrefix(header, BearerPrefix)
		if !ok || token == "" {
			denyToken(c, l, auth.ErrInvalidToken, "Invalid authorization header format")
			return false
		}

		claims, err := cfg.JWTService.ValidateToken(token)
		if err != nil {
			denyToken(c, l, err, "Token validation failed")
			return false
		}

		if cfg.Blacklist != nil {
			ctx := c.Request.Context()

			// A blacklist outage fails open; the token is still signed and unexpired
			revoked, err := cfg.Blacklist.IsRevoked(ctx, claims.ID)
			if err != nil {
				logger.Enrich(ctx, l).Error("Failed to check token blacklist", zap.String("jti", claims.ID), zap.Error(err))
			} else if revoked {
				denyToken(c, l, auth.ErrTokenRevoked, "Token has been revoked")
				return false
			}

			revoked, err = cfg.Blacklist.IsSubjectRevoked(ctx, claims.Principal(), claims.IssuedAtTime())
			if err != nil {
				logger.Enrich(ctx, l).Error("Failed to check subject revocation", zap.String("principal", claims.Principal()), zap.Error(err))
			} else if revoked {
				denyToken(c, l, auth.ErrTokenRevoked, "Session has been invalidated")
				return false
			}
		}

		c.Set(JWTClaimsKey, claims)
		c.Request = c.Request.WithContext(logger.WithPrincipal(c.Request.Context(), claims.Principal()))
		return true
	}
}

// RequireEmployee only lets staff tokens through. It must follow JWTAuth.
func RequireEmployee() gin.HandlerFunc {
	return requireSubject(auth.SubjectEmployee)
}

// RequireCustomer only lets customer tokens through. It must follow JWTAuth.
func RequireCustomer() gin.HandlerFunc {
	return requireSubject(auth.SubjectCustomer)
}

func requireSubject(subject auth.SubjectType) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetJWTClaims(c)
		if claims == nil {
			abortWithError(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, "Authentication required")
			return
		}
		if claims.SubjectType != subject {
			abortWithError(c, http.StatusForbidden, dto.ErrCodeForbidden, "This endpoint is not available to "+string(claims.SubjectType)+"s")
			return
		}
		c.Next()
	}
}

func denyToken(c *gin.Context, l *zap.Logger, err error, message string) {
	logger.Enrich(c.Request.Context(), l).Warn("JWT authentication failed",
		zap.Error(err),
		zap.String("reason", message),
		zap.String("path", c.Request.URL.Path),
	)

	code, msg := dto.ErrCodeUnauthorized, "Authentication required"
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		code, msg = dto.ErrCodeTokenExpired, "Token has expired"
	case errors.Is(err, auth.ErrTokenRevoked):
		code, msg = dto.ErrCodeTokenRevoked, message
	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrInvalidClaims), errors.Is(err, auth.ErrTokenNotYetValid):
		code, msg = dto.ErrCodeTokenInvalid, message
	}
	abortWithError(c, http.StatusUnauthorized, code, msg)
}

// GetJWTClaims returns the claims stored by JWTAuth, or nil
func GetJWTClaims(c *gin.Context) *auth.Claims {
	if v, ok := c.Get(JWTClaimsKey); ok {
		if claims, ok := v.(*auth.Claims); ok {
			return claims
		}
	}
	return nil
}

// GetUserID returns the authenticated employee or customer id, or 0.
// Requests let through by GatewayReturn carry the session's customer.
func GetUserID(c *gin.Context) int64 {
	if claims := GetJWTClaims(c); claims != nil {
		return claims.UserID
	}
	return c.GetInt64(SessionCustomerKey)
}
