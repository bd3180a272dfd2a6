// Package invoice renders order invoices as HTML and converts them to PDF
// with headless Chrome.
package invoice

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	salesapp "github.com/shop/backend/internal/application/sales"
)

//go:embed templates/invoice.html
var templateFS embed.FS

const defaultCurrency = "USD"

// HTMLTemplate executes the embedded invoice template
type HTMLTemplate struct {
	tmpl     *template.Template
	lang     language.Tag
	currency string
	shopName string
	shopAddr string
}

type templateData struct {
	salesapp.InvoiceDocument
	ShopName    string
	ShopAddress string
}

// NewHTMLTemplate parses the invoice template. Amounts are formatted for
// lang and prefixed with the ISO currency code.
func NewHTMLTemplate(lang language.Tag, currency, shopName, shopAddress string) (*HTMLTemplate, error) {
	if currency == "" {
		currency = defaultCurrency
	}
	t := &HTMLTemplate{
		lang:     lang,
		currency: currency,
		shopName: shopName,
		shopAddr: shopAddress,
	}

	tmpl, err := template.New("invoice.html").Funcs(template.FuncMap{
		"money": t.Money,
		"title": t.Title,
		"date":  formatDate,
	}).ParseFS(templateFS, "templates/invoice.html")
	if err != nil {
		return nil, fmt.Errorf("parse invoice template: %w", err)
	}
	t.tmpl = tmpl
	return t, nil
}

// Title upper-cases the first letter of each word, e.g. "paypal" -> "Paypal"
func (t *HTMLTemplate) Title(s string) string {
	return cases.Title(t.lang).String(s)
}

// Money formats an amount with two decimals and locale grouping, e.g. "USD 1,234.50"
func (t *HTMLTemplate) Money(d decimal.Decimal) string {
	f, _ := d.Round(2).Float64()
	return t.currency + " " + message.NewPrinter(t.lang).Sprint(number.Decimal(f, number.Scale(2)))
}

// Execute renders doc as a complete HTML document
func (t *HTMLTemplate) Execute(doc salesapp.InvoiceDocument) (string, error) {
	if doc.Order == nil || doc.Customer == nil {
		return "", fmt.Errorf("invoice requires an order and a customer")
	}
	var buf bytes.Buffer
	err := t.tmpl.Execute(&buf, templateData{
		InvoiceDocument: doc,
		ShopName:        t.shopName,
		ShopAddress:     t.shopAddr,
	})
	if err != nil {
		return "", fmt.Errorf("execute invoice template: %w", err)
	}
	return buf.String(), nil
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02")
}
