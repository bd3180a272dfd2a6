package catalog

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/shop/backend/internal/domain/catalog"
	"github.com/shop/backend/internal/domain/sales"
	"github.com/shop/backend/internal/domain/shared"
)

// StockHandler takes paid order lines out of stock
type StockHandler struct {
	products catalog.ProductRepository
	logger   *zap.Logger
}

// NewStockHandler creates a new handler for order paid events
func NewStockHandler(products catalog.ProductRepository, logger *zap.Logger) *StockHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StockHandler{products: products, logger: logger.Named("stock")}
}

// EventTypes returns the event types this handler is interested in
func (h *StockHandler) EventTypes() []string {
	return []string{sales.EventTypeOrderPaid}
}

// Handle decreases the quantity of every product in the order. A line that
// cannot be fulfilled is logged and skipped so the rest still ship; the
// payment has already been captured.
func (h *StockHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	paid, ok := event.(*sales.OrderPaidEvent)
	if !ok {
		return fmt.Errorf("unexpected event type: expected %s, got %s", sales.EventTypeOrderPaid, event.EventType())
	}

	var errs []error
	for _, line := range paid.Lines {
		err := h.products.DecreaseQuantity(ctx, line.ProductID, line.Quantity)
		switch {
		case err == nil:
		case errors.Is(err, shared.ErrInsufficientStock), errors.Is(err, shared.ErrNotFound):
			h.logger.Warn("Order line exceeds stock",
				zap.String("reference", paid.Reference),
				zap.Int64("product_id", line.ProductID),
				zap.Int("quantity", line.Quantity),
				zap.Error(err),
			)
		default:
			errs = append(errs, fmt.Errorf("product %d: %w", line.ProductID, err))
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	h.logger.Info("Stock updated for paid order", zap.String("reference", paid.Reference), zap.Int("lines", len(paid.Lines)))
	return nil
}

var _ shared.EventHandler = (*StockHandler)(nil)
