package middleware

import (
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/shop/backend/internal/infrastructure/config"
)

func swaggerRouter(cfg config.SwaggerConfig, jwt gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.GET("/swagger/*any", SwaggerProtection(cfg, jwt), func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func fromIP(r http.Handler, ip string) int {
	req := httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil)
	req.RemoteAddr = ip + ":4242"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Code
}

func TestSwaggerProtection(t *testing.T) {
	deny := func(c *gin.Context) { c.AbortWithStatus(http.StatusUnauthorized) }

	tests := []struct {
		name   string
		cfg    config.SwaggerConfig
		jwt    gin.HandlerFunc
		ip     string
		status int
	}{
		{"disabled", config.SwaggerConfig{}, nil, "10.0.0.1", http.StatusNotFound},
		{"open", config.SwaggerConfig{Enabled: true}, nil, "10.0.0.1", http.StatusOK},
		{"exact ip", config.SwaggerConfig{Enabled: true, AllowedIPs: []string{"10.0.0.1"}}, nil, "10.0.0.1", http.StatusOK},
		{"cidr", config.SwaggerConfig{Enabled: true, AllowedIPs: []string{"192.168.0.0/16"}}, nil, "192.168.4.2", http.StatusOK},
		{"outside allowlist", config.SwaggerConfig{Enabled: true, AllowedIPs: []string{"192.168.0.0/16"}}, nil, "10.0.0.1", http.StatusForbidden},
		{"auth required", config.SwaggerConfig{Enabled: true, RequireAuth: true}, deny, "10.0.0.1", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, fromIP(swaggerRouter(tt.cfg, tt.jwt), tt.ip))
		})
	}
}

func TestIPAllowed(t *testing.T) {
	_, n, _ := net.ParseCIDR("10.1.0.0/24")
	ips := []net.IP{net.ParseIP("127.0.0.1")}

	assert.True(t, ipAllowed(net.ParseIP("127.0.0.1"), ips, nil))
	assert.True(t, ipAllowed(net.ParseIP("10.1.0.9"), nil, []*net.IPNet{n}))
	assert.False(t, ipAllowed(net.ParseIP("10.2.0.9"), ips, []*net.IPNet{n}))
	assert.False(t, ipAllowed(nil, ips, nil))
}
