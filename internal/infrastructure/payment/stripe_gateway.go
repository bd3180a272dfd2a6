package payment

import (
	"context"

	"github.com/shop/backend/internal/domain/payment"
	"github.com/shop/backend/internal/domain/shared"
)

// ErrStripeComingSoon is returned by every Stripe call
var ErrStripeComingSoon = shared.NewDomainError("PAYMENT_COMING_SOON", "Stripe payment is coming soon!")

// StripeGateway is a placeholder listed at checkout while card payments
// are not available
type StripeGateway struct{}

// NewStripeGateway creates the placeholder gateway
func NewStripeGateway() *StripeGateway {
	return &StripeGateway{}
}

// Name implements payment.Gateway
func (StripeGateway) Name() string {
	return payment.GatewayStripe
}

// Process implements payment.Gateway
func (StripeGateway) Process(context.Context, *payment.ProcessRequest) (*payment.ProcessResult, error) {
	return nil, ErrStripeComingSoon
}

// Execute implements payment.Gateway
func (StripeGateway) Execute(context.Context, *payment.ExecuteRequest) (*payment.ExecuteResult, error) {
	return nil, ErrStripeComingSoon
}

var _ payment.Gateway = StripeGateway{}
