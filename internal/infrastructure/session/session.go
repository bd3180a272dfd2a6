// Package session keeps the storefront's per-visitor state (selected
// courier, address and payment method, cart id) in a signed cookie.
package session

import (
	"net/http"
	"strings"

	"github.com/gorilla/sessions"
	"github.com/shop/backend/internal/infrastructure/config"
	"github.com/spf13/cast"
)

// Keys stored in the session
const (
	KeyCourierID   = "courierId"
	KeyAddressID   = "addressId"
	KeyPaymentName = "paymentName"
	KeyCartID      = "cartId"
	// KeyCustomerID is the customer who started the gateway payment
	KeyCustomerID = "customerId"
)

// Manager loads and saves sessions from a gorilla sessions.Store
type Manager struct {
	store sessions.Store
	name  string
}

// NewManager creates a Manager on a cookie store signed with cfg.Secret
func NewManager(cfg config.SessionConfig) *Manager {
	store := sessions.NewCookieStore([]byte(cfg.Secret))
	store.Options = &sessions.Options{
		Path:     cfg.Path,
		Domain:   cfg.Domain,
		MaxAge:   cfg.MaxAge,
		Secure:   cfg.Secure,
		HttpOnly: cfg.HTTPOnly,
		SameSite: parseSameSite(cfg.SameSite),
	}
	return NewManagerWithStore(store, cfg.Name)
}

// NewManagerWithStore creates a Manager on any sessions.Store
func NewManagerWithStore(store sessions.Store, name string) *Manager {
	return &Manager{store: store, name: name}
}

// Get returns the request's session. A cookie that no longer decodes, for
// example after a secret rotation, yields a fresh session.
func (m *Manager) Get(r *http.Request) *Session {
	s, err := m.store.Get(r, m.name)
	if err != nil || s == nil {
		s = sessions.NewSession(m.store, m.name)
		s.IsNew = true
	}
	return &Session{raw: s}
}

// Save writes the session cookie
func (m *Manager) Save(r *http.Request, w http.ResponseWriter, s *Session) error {
	return s.raw.Save(r, w)
}

// Session wraps a gorilla session with typed accessors
type Session struct {
	raw *sessions.Session
}

// IsNew reports whether the request carried no usable session cookie
func (s *Session) IsNew() bool {
	return s.raw.IsNew
}

// Int64 returns a positive integer value or def
func (s *Session) Int64(key string, def int64) int64 {
	v, ok := s.raw.Values[key]
	if !ok {
		return def
	}
	n, err := cast.ToInt64E(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

// String returns a non-empty string value or def
func (s *Session) String(key, def string) string {
	v, ok := s.raw.Values[key]
	if !ok {
		return def
	}
	str, err := cast.ToStringE(v)
	if err != nil || str == "" {
		return def
	}
	return str
}

// Set stores a value. Only gob-encodable basic types belong here.
func (s *Session) Set(key string, value any) {
	s.raw.Values[key] = value
}

// Delete removes a value
func (s *Session) Delete(key string) {
	delete(s.raw.Values, key)
}

func parseSameSite(mode string) http.SameSite {
	switch strings.ToLower(mode) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
