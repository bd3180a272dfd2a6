package session

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shop/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() config.SessionConfig {
	return config.SessionConfig{
		Name:     "shop_session",
		Secret:   "0123456789abcdef0123456789abcdef",
		Path:     "/",
		MaxAge:   3600,
		HTTPOnly: true,
		SameSite: "strict",
	}
}

// roundTrip saves values in one response and replays the cookie on a new request
func roundTrip(t *testing.T, m *Manager, set func(*Session)) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/checkout", nil)
	rec := httptest.NewRecorder()

	s := m.Get(req)
	set(s)
	require.NoError(t, m.Save(req, rec, s))

	next := httptest.NewRequest(http.MethodGet, "/checkout", nil)
	for _, c := range rec.Result().Cookies() {
		next.AddCookie(c)
	}
	return next
}

func TestManager_RoundTrip(t *testing.T) {
	m := NewManager(testConfig())

	req := roundTrip(t, m, func(s *Session) {
		s.Set(KeyCourierID, int64(3))
		s.Set(KeyAddressID, "7")
		s.Set(KeyPaymentName, "stripe")
		s.Set(KeyCartID, "cart-1")
	})

	s := m.Get(req)
	assert.False(t, s.IsNew())
	assert.Equal(t, int64(3), s.Int64(KeyCourierID, 1))
	assert.Equal(t, int64(7), s.Int64(KeyAddressID, 1))
	assert.Equal(t, "stripe", s.String(KeyPaymentName, "paypal"))
	assert.Equal(t, "cart-1", s.String(KeyCartID, ""))
}

func TestManager_Defaults(t *testing.T) {
	m := NewManager(testConfig())

	s := m.Get(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.True(t, s.IsNew())
	assert.Equal(t, int64(1), s.Int64(KeyCourierID, 1))
	assert.Equal(t, "paypal", s.String(KeyPaymentName, "paypal"))

	s.Set(KeyCourierID, "not-a-number")
	s.Set(KeyAddressID, int64(-4))
	s.Set(KeyPaymentName, "")
	assert.Equal(t, int64(1), s.Int64(KeyCourierID, 1))
	assert.Equal(t, int64(1), s.Int64(KeyAddressID, 1))
	assert.Equal(t, "paypal", s.String(KeyPaymentName, "paypal"))

	s.Delete(KeyCourierID)
	assert.Equal(t, int64(9), s.Int64(KeyCourierID, 9))
}

func TestManager_TamperedCookie(t *testing.T) {
	m := NewManager(testConfig())
	req := roundTrip(t, m, func(s *Session) { s.Set(KeyCourierID, int64(5)) })

	other := testConfig()
	other.Secret = "ffffffffffffffffffffffffffffffff"
	s := NewManager(other).Get(req)
	assert.True(t, s.IsNew())
	assert.Equal(t, int64(1), s.Int64(KeyCourierID, 1))
}

func TestManager_CookieOptions(t *testing.T) {
	m := NewManager(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, m.Save(req, rec, m.Get(req)))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "shop_session", cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, http.SameSiteStrictMode, cookies[0].SameSite)
	assert.Equal(t, 3600, cookies[0].MaxAge)
}

func TestParseSameSite(t *testing.T) {
	assert.Equal(t, http.SameSiteStrictMode, parseSameSite("Strict"))
	assert.Equal(t, http.SameSiteNoneMode, parseSameSite("none"))
	assert.Equal(t, http.SameSiteLaxMode, parseSameSite(""))
}
