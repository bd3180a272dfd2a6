package payment

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// Known gateway names as used in the payees configuration
const (
	GatewayPayPal = "paypal"
	GatewayStripe = "stripe"
)

// ---------------------------------------------------------------------------
// Errors
// ---------------------------------------------------------------------------

var (
	ErrInvalidAmount    = errors.New("payment: invalid payment amount")
	ErrInvalidCurrency  = errors.New("payment: invalid currency")
	ErrNoItems          = errors.New("payment: payment has no items")
	ErrInvalidReturnURL = errors.New("payment: invalid return URL")
	ErrInvalidCancelURL = errors.New("payment: invalid cancel URL")
	ErrInvalidPaymentID = errors.New("payment: invalid payment ID")
	ErrInvalidPayerID   = errors.New("payment: invalid payer ID")

	ErrGatewayNotConfigured   = errors.New("payment: gateway not configured")
	ErrGatewayUnavailable     = errors.New("payment: gateway temporarily unavailable")
	ErrGatewayRequestFailed   = errors.New("payment: gateway request failed")
	ErrGatewayInvalidResponse = errors.New("payment: invalid gateway response")
)

// ---------------------------------------------------------------------------
// Gateway port
// ---------------------------------------------------------------------------

// Gateway is a payment provider that sends the shopper away to approve a
// payment and is later asked to capture it
type Gateway interface {
	// Name returns the gateway key, e.g. "paypal"
	Name() string

	// Process creates a payment and returns the approval URL to redirect to
	Process(ctx context.Context, req *ProcessRequest) (*ProcessResult, error)

	// Execute captures a payment the shopper approved
	Execute(ctx context.Context, req *ExecuteRequest) (*ExecuteResult, error)
}

// GatewayRegistry resolves the gateways enabled for this shop
type GatewayRegistry interface {
	Get(name string) (Gateway, error)
	// Available lists the enabled gateways in configuration order
	Available() []GatewayInfo
}

// GatewayInfo describes an enabled gateway for the checkout page
type GatewayInfo struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// ---------------------------------------------------------------------------
// Requests and results
// ---------------------------------------------------------------------------

// LineItem is one product line sent to the gateway
type LineItem struct {
	Name     string
	SKU      string
	Price    decimal.Decimal
	Quantity int
}

// ProcessRequest describes a payment to create
type ProcessRequest struct {
	Reference   string
	Description string
	Currency    string
	Items       []LineItem
	SubTotal    decimal.Decimal
	Tax         decimal.Decimal
	Shipping    decimal.Decimal
	Total       decimal.Decimal
	ReturnURL   string
	CancelURL   string
}

// Validate checks the request before it is sent to a gateway
func (r *ProcessRequest) Validate() error {
	if r.Total.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	if len(strings.TrimSpace(r.Currency)) != 3 {
		return ErrInvalidCurrency
	}
	if len(r.Items) == 0 {
		return ErrNoItems
	}
	if r.ReturnURL == "" {
		return ErrInvalidReturnURL
	}
	if r.CancelURL == "" {
		return ErrInvalidCancelURL
	}
	return nil
}

// ProcessResult is what a gateway returns for a created payment
type ProcessResult struct {
	PaymentID   string
	State       string
	ApprovalURL string
}

// ExecuteRequest identifies an approved payment to capture
type ExecuteRequest struct {
	PaymentID string
	PayerID   string
}

// Validate checks the request before it is sent to a gateway
func (r *ExecuteRequest) Validate() error {
	if strings.TrimSpace(r.PaymentID) == "" {
		return ErrInvalidPaymentID
	}
	if strings.TrimSpace(r.PayerID) == "" {
		return ErrInvalidPayerID
	}
	return nil
}

// ExecuteResult is what a gateway returns for a captured payment
type ExecuteResult struct {
	PaymentID  string
	State      string
	SaleID     string
	Amount     decimal.Decimal
	Currency   string
	PayerEmail string
}
