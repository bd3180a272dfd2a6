package notification

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strings"

	"go.uber.org/zap"

	"github.com/shop/backend/internal/domain/customer"
	"github.com/shop/backend/internal/domain/sales"
	"github.com/shop/backend/internal/domain/shared"
)

var orderPaidHTML = template.Must(template.New("order_paid").Parse(`<!DOCTYPE html>
<html><body>
<p>Hi {{.Name}},</p>
<p>We received your payment for order <strong>{{.Reference}}</strong>.</p>
<table>
{{range .Lines}}<tr><td>{{.ProductName}}</td><td>{{.Quantity}}</td><td>{{.Price.StringFixed 2}}</td></tr>
{{end}}</table>
<p>Total paid: {{.Total}}</p>
</body></html>`))

type orderPaidView struct {
	Name      string
	Reference string
	Lines     []sales.OrderLine
	Total     string
}

// OrderConfirmationHandler mails the customer when their order is paid
type OrderConfirmationHandler struct {
	customers customer.CustomerRepository
	sender    Sender
	logger    *zap.Logger
}

// NewOrderConfirmationHandler creates the handler
func NewOrderConfirmationHandler(customers customer.CustomerRepository, sender Sender, logger *zap.Logger) *OrderConfirmationHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderConfirmationHandler{customers: customers, sender: sender, logger: logger.Named("order_mail")}
}

// EventTypes returns the event types this handler is interested in
func (h *OrderConfirmationHandler) EventTypes() []string {
	return []string{sales.EventTypeOrderPaid}
}

// Handle sends the confirmation mail
func (h *OrderConfirmationHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	paid, ok := event.(*sales.OrderPaidEvent)
	if !ok {
		return fmt.Errorf("unexpected event type: expected %s, got %s", sales.EventTypeOrderPaid, event.EventType())
	}

	c, err := h.customers.FindCustomerByID(ctx, paid.CustomerID)
	if err != nil {
		return fmt.Errorf("load customer %d: %w", paid.CustomerID, err)
	}

	view := orderPaidView{
		Name:      c.Name,
		Reference: paid.Reference,
		Lines:     paid.Lines,
		Total:     paid.TotalPaid.StringFixed(2),
	}
	var html bytes.Buffer
	if err := orderPaidHTML.Execute(&html, view); err != nil {
		return fmt.Errorf("render order mail: %w", err)
	}

	mail := Mail{
		To:       c.Email,
		Subject:  fmt.Sprintf("Payment received for order %s", paid.Reference),
		HTMLBody: html.String(),
		TextBody: orderPaidText(view),
	}
	if err := h.sender.Send(ctx, mail); err != nil {
		return err
	}

	h.logger.Info("Order confirmation sent",
		zap.String("reference", paid.Reference),
		zap.Int64("customer_id", paid.CustomerID),
	)
	return nil
}

func orderPaidText(v orderPaidView) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\nWe received your payment for order %s.\n\n", v.Name, v.Reference)
	for _, l := range v.Lines {
		fmt.Fprintf(&b, "  %d x %s  %s\n", l.Quantity, l.ProductName, l.Price.StringFixed(2))
	}
	fmt.Fprintf(&b, "\nTotal paid: %s\n", v.Total)
	return b.String()
}

var _ shared.EventHandler = (*OrderConfirmationHandler)(nil)
