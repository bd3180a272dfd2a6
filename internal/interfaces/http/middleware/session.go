package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shop/backend/internal/infrastructure/logger"
	"github.com/shop/backend/internal/infrastructure/session"
)

const (
	sessionKey        = "shop_session"
	sessionManagerKey = "shop_session_manager"
)

// Session loads the visitor session into the gin context. Every visitor
// gets a cart id on first contact so the cart survives until checkout.
func Session(m *session.Manager, l *zap.Logger) gin.HandlerFunc {
	if l == nil {
		l = zap.NewNop()
	}
	return func(c *gin.Context) {
		s := m.Get(c.Request)
		if s.String(session.KeyCartID, "") == "" {
			s.Set(session.KeyCartID, uuid.NewString())
			if err := m.Save(c.Request, c.Writer, s); err != nil {
				logger.Enrich(c.Request.Context(), l).Warn("Failed to save session", zap.Error(err))
			}
		}
		c.Set(sessionKey, s)
		c.Set(sessionManagerKey, m)
		c.Next()
	}
}

// GetSession returns the session loaded by Session, or nil
func GetSession(c *gin.Context) *session.Session {
	if v, ok := c.Get(sessionKey); ok {
		if s, ok := v.(*session.Session); ok {
			return s
		}
	}
	return nil
}

// SaveSession writes the session cookie. Call it before the response body.
func SaveSession(c *gin.Context) error {
	s := GetSession(c)
	v, ok := c.Get(sessionManagerKey)
	if s == nil || !ok {
		return nil
	}
	return v.(*session.Manager).Save(c.Request, c.Writer, s)
}

// CartID returns the visitor's cart id, or "" without a session
func CartID(c *gin.Context) string {
	if s := GetSession(c); s != nil {
		return s.String(session.KeyCartID, "")
	}
	return ""
}
