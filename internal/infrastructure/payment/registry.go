package payment

import (
	"fmt"

	"github.com/shop/backend/internal/domain/payment"
	"github.com/shop/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// Registry holds the gateways enabled through payees.name, in that order
type Registry struct {
	gateways map[string]payment.Gateway
	infos    []payment.GatewayInfo
}

// NewRegistry builds a gateway for every enabled payee. Payees without an
// implementation are skipped with a warning.
func NewRegistry(payees config.PayeesConfig, logger *zap.Logger) (*Registry, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Registry{gateways: make(map[string]payment.Gateway)}

	for _, gw := range payees.Enabled() {
		var (
			gateway payment.Gateway
			err     error
		)
		switch gw.Key {
		case payment.GatewayPayPal:
			gateway, err = NewPayPalAdapter(NewPayPalConfig(gw), logger)
		case payment.GatewayStripe:
			gateway = NewStripeGateway()
		default:
			logger.Warn("Skipping payee without a gateway implementation", zap.String("payee", gw.Key))
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("payee %s: %w", gw.Key, err)
		}
		r.Register(gateway, payment.GatewayInfo{Key: gw.Key, Name: gw.Name, Description: gw.Description})
	}
	return r, nil
}

// Register adds or replaces a gateway
func (r *Registry) Register(gateway payment.Gateway, info payment.GatewayInfo) {
	if _, exists := r.gateways[info.Key]; !exists {
		r.infos = append(r.infos, info)
	}
	r.gateways[info.Key] = gateway
}

// Get returns the gateway registered under name
func (r *Registry) Get(name string) (payment.Gateway, error) {
	gw, ok := r.gateways[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", payment.ErrGatewayNotConfigured, name)
	}
	return gw, nil
}

// Available lists the registered gateways in configuration order
func (r *Registry) Available() []payment.GatewayInfo {
	out := make([]payment.GatewayInfo, len(r.infos))
	copy(out, r.infos)
	return out
}

var _ payment.GatewayRegistry = (*Registry)(nil)
