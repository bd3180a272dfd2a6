package payment

import (
	"errors"
	"strings"
	"time"

	"github.com/shop/backend/internal/infrastructure/config"
)

const (
	paypalSandboxBaseURL = "https://api-m.sandbox.paypal.com"
	paypalLiveBaseURL    = "https://api-m.paypal.com"
	paypalDefaultTimeout = 30 * time.Second
)

// Errors for configuration validation
var (
	ErrPayPalMissingClientID     = errors.New("paypal: missing client ID")
	ErrPayPalMissingClientSecret = errors.New("paypal: missing client secret")
	ErrPayPalInvalidMode         = errors.New("paypal: mode must be sandbox or live")
)

// PayPalConfig holds the REST API credentials
type PayPalConfig struct {
	ClientID     string
	ClientSecret string
	// Mode is sandbox or live
	Mode string
	// BaseURL overrides the API host derived from Mode
	BaseURL string
	Timeout time.Duration
}

// NewPayPalConfig maps a payees gateway block to a PayPalConfig
func NewPayPalConfig(gw config.GatewayConfig) *PayPalConfig {
	return &PayPalConfig{
		ClientID:     gw.ClientID,
		ClientSecret: gw.ClientSecret,
		Mode:         gw.Mode,
		BaseURL:      gw.BaseURL,
		Timeout:      gw.Timeout,
	}
}

// Validate validates the configuration
func (c *PayPalConfig) Validate() error {
	if c.ClientID == "" {
		return ErrPayPalMissingClientID
	}
	if c.ClientSecret == "" {
		return ErrPayPalMissingClientSecret
	}
	switch strings.ToLower(c.Mode) {
	case "", "sandbox", "live":
	default:
		return ErrPayPalInvalidMode
	}
	return nil
}

// APIBaseURL returns the API host for the configured mode
func (c *PayPalConfig) APIBaseURL() string {
	if c.BaseURL != "" {
		return strings.TrimRight(c.BaseURL, "/")
	}
	if strings.EqualFold(c.Mode, "live") {
		return paypalLiveBaseURL
	}
	return paypalSandboxBaseURL
}

// IsSandbox reports whether payments are test payments
func (c *PayPalConfig) IsSandbox() bool {
	return !strings.EqualFold(c.Mode, "live")
}

func (c *PayPalConfig) timeout() time.Duration {
	if c.Timeout > 0 {
		return c.Timeout
	}
	return paypalDefaultTimeout
}
