package invoice

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	salesapp "github.com/shop/backend/internal/application/sales"
	"github.com/shop/backend/internal/infrastructure/logger"
)

const (
	ContentTypePDF  = "application/pdf"
	ContentTypeHTML = "text/html; charset=utf-8"
)

// PDFConverter converts an HTML document to PDF
type PDFConverter interface {
	Convert(ctx context.Context, html string) ([]byte, error)
}

// Renderer renders invoices to PDF, or to HTML when no converter is set or
// the conversion fails
type Renderer struct {
	html      *HTMLTemplate
	converter PDFConverter
	logger    *zap.Logger
}

var _ salesapp.InvoiceRenderer = (*Renderer)(nil)

// NewRenderer creates a renderer. converter may be nil.
func NewRenderer(html *HTMLTemplate, converter PDFConverter, l *zap.Logger) *Renderer {
	if l == nil {
		l = zap.NewNop()
	}
	return &Renderer{html: html, converter: converter, logger: l.Named("invoice")}
}

// Render implements salesapp.InvoiceRenderer
func (r *Renderer) Render(ctx context.Context, doc salesapp.InvoiceDocument) (*salesapp.RenderedInvoice, error) {
	html, err := r.html.Execute(doc)
	if err != nil {
		return nil, err
	}
	name := "invoice-" + doc.Order.Reference

	if r.converter != nil {
		pdf, err := r.converter.Convert(ctx, html)
		if err == nil {
			return &salesapp.RenderedInvoice{Filename: name + ".pdf", ContentType: ContentTypePDF, Content: pdf}, nil
		}
		if ctx.Err() != nil {
			return nil, fmt.Errorf("render invoice %s: %w", doc.Order.Reference, ctx.Err())
		}
		logger.Enrich(ctx, r.logger).Warn("PDF conversion failed, falling back to HTML",
			zap.String("reference", doc.Order.Reference), zap.Error(err))
	}

	return &salesapp.RenderedInvoice{Filename: name + ".html", ContentType: ContentTypeHTML, Content: []byte(html)}, nil
}
