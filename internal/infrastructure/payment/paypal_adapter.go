package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/shop/backend/internal/domain/payment"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	paypalTokenPath   = "/v1/oauth2/token"
	paypalPaymentPath = "/v1/payments/payment"
	paypalExecutePath = "/v1/payments/payment/%s/execute"

	// tokens are refreshed this long before PayPal expires them
	paypalTokenLeeway = time.Minute
)

// PayPalAdapter implements payment.Gateway with PayPal Express Checkout
// (REST v1 payments, intent "sale")
type PayPalAdapter struct {
	config     *PayPalConfig
	httpClient *http.Client
	logger     *zap.Logger

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

// NewPayPalAdapter creates a PayPal adapter
func NewPayPalAdapter(cfg *PayPalConfig, logger *zap.Logger) (*PayPalAdapter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PayPalAdapter{
		config:     cfg,
		httpClient: &http.Client{Timeout: cfg.timeout()},
		logger:     logger.Named("paypal"),
	}, nil
}

// Name implements payment.Gateway
func (a *PayPalAdapter) Name() string {
	return payment.GatewayPayPal
}

// Process creates a sale payment and returns the approval URL the shopper
// is redirected to
func (a *PayPalAdapter) Process(ctx context.Context, req *payment.ProcessRequest) (*payment.ProcessResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	body, err := json.Marshal(buildPayPalPayment(req))
	if err != nil {
		return nil, fmt.Errorf("paypal: failed to marshal payment: %w", err)
	}

	respBody, err := a.doRequest(ctx, http.MethodPost, paypalPaymentPath, body)
	if err != nil {
		return nil, err
	}

	var created paypalPayment
	if err := json.Unmarshal(respBody, &created); err != nil {
		return nil, fmt.Errorf("%w: %v", payment.ErrGatewayInvalidResponse, err)
	}
	approval := findLink(created.Links, "approval_url")
	if created.ID == "" || approval == "" {
		return nil, fmt.Errorf("%w: payment id or approval link missing", payment.ErrGatewayInvalidResponse)
	}

	a.logger.Info("PayPal payment created",
		zap.String("payment_id", created.ID),
		zap.String("reference", req.Reference),
		zap.String("total", req.Total.StringFixed(2)),
	)
	return &payment.ProcessResult{
		PaymentID:   created.ID,
		State:       created.State,
		ApprovalURL: approval,
	}, nil
}

// Execute captures an approved payment
func (a *PayPalAdapter) Execute(ctx context.Context, req *payment.ExecuteRequest) (*payment.ExecuteResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	body, err := json.Marshal(paypalExecuteRequest{PayerID: req.PayerID})
	if err != nil {
		return nil, fmt.Errorf("paypal: failed to marshal execute request: %w", err)
	}

	path := fmt.Sprintf(paypalExecutePath, url.PathEscape(req.PaymentID))
	respBody, err := a.doRequest(ctx, http.MethodPost, path, body)
	if err != nil {
		return nil, err
	}

	var executed paypalPayment
	if err := json.Unmarshal(respBody, &executed); err != nil {
		return nil, fmt.Errorf("%w: %v", payment.ErrGatewayInvalidResponse, err)
	}

	result := &payment.ExecuteResult{
		PaymentID: executed.ID,
		State:     executed.State,
	}
	if executed.Payer != nil && executed.Payer.PayerInfo != nil {
		result.PayerEmail = executed.Payer.PayerInfo.Email
	}
	if len(executed.Transactions) > 0 {
		tx := executed.Transactions[0]
		if tx.Amount.Total != "" {
			amount, err := decimal.NewFromString(tx.Amount.Total)
			if err != nil {
				return nil, fmt.Errorf("%w: amount %q: %v", payment.ErrGatewayInvalidResponse, tx.Amount.Total, err)
			}
			result.Amount = amount
		}
		result.Currency = tx.Amount.Currency
		for _, rr := range tx.RelatedResources {
			if rr.Sale != nil {
				result.SaleID = rr.Sale.ID
				break
			}
		}
	}

	if result.State != "approved" {
		return nil, &payment.GatewayError{
			Gateway: payment.GatewayPayPal,
			Name:    "PAYMENT_NOT_APPROVED",
			Message: fmt.Sprintf("payment %s is in state %q", executed.ID, executed.State),
			Err:     payment.ErrGatewayRequestFailed,
		}
	}

	a.logger.Info("PayPal payment executed",
		zap.String("payment_id", result.PaymentID),
		zap.String("sale_id", result.SaleID),
		zap.String("amount", result.Amount.StringFixed(2)),
	)
	return result, nil
}

func buildPayPalPayment(req *payment.ProcessRequest) paypalPayment {
	currency := strings.ToUpper(req.Currency)
	items := make([]paypalItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, paypalItem{
			Name:     item.Name,
			SKU:      item.SKU,
			Price:    item.Price.StringFixed(2),
			Currency: currency,
			Quantity: strconv.Itoa(item.Quantity),
		})
	}

	return paypalPayment{
		Intent: "sale",
		Payer:  &paypalPayer{PaymentMethod: "paypal"},
		Transactions: []paypalTransaction{{
			Amount: paypalAmount{
				Total:    req.Total.StringFixed(2),
				Currency: currency,
				Details: &paypalAmountDetails{
					Subtotal: req.SubTotal.StringFixed(2),
					Tax:      req.Tax.StringFixed(2),
					Shipping: req.Shipping.StringFixed(2),
				},
			},
			Description:   req.Description,
			InvoiceNumber: req.Reference,
			ItemList:      &paypalItemList{Items: items},
		}},
		RedirectURLs: &paypalRedirectURLs{
			ReturnURL: req.ReturnURL,
			CancelURL: req.CancelURL,
		},
	}
}

func findLink(links []paypalLink, rel string) string {
	for _, l := range links {
		if l.Rel == rel {
			return l.Href
		}
	}
	return ""
}

// doRequest sends an authenticated JSON request. Transport failures and 5xx
// answers wrap ErrGatewayUnavailable; other error answers wrap
// ErrGatewayRequestFailed.
func (a *PayPalAdapter) doRequest(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	token, err := a.token(ctx)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, a.config.APIBaseURL()+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("paypal: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	respBody, status, err := a.send(req)
	if err != nil {
		return nil, err
	}
	if status == http.StatusUnauthorized {
		a.resetToken()
	}
	if status >= 400 {
		return nil, parsePayPalError(status, respBody)
	}
	return respBody, nil
}

// token returns a cached OAuth access token, fetching a new one when the
// cached token is about to expire
func (a *PayPalAdapter) token(ctx context.Context) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.accessToken != "" && time.Now().Before(a.tokenExpiry) {
		return a.accessToken, nil
	}

	form := url.Values{"grant_type": {"client_credentials"}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.config.APIBaseURL()+paypalTokenPath, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("paypal: failed to create token request: %w", err)
	}
	req.SetBasicAuth(a.config.ClientID, a.config.ClientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	respBody, status, err := a.send(req)
	if err != nil {
		return "", err
	}
	if status >= 400 {
		return "", parsePayPalError(status, respBody)
	}

	var tok paypalTokenResponse
	if err := json.Unmarshal(respBody, &tok); err != nil || tok.AccessToken == "" {
		return "", fmt.Errorf("%w: no access token in response", payment.ErrGatewayInvalidResponse)
	}

	a.accessToken = tok.AccessToken
	a.tokenExpiry = time.Now().Add(time.Duration(tok.ExpiresIn)*time.Second - paypalTokenLeeway)
	return a.accessToken, nil
}

func (a *PayPalAdapter) resetToken() {
	a.mu.Lock()
	a.accessToken = ""
	a.mu.Unlock()
}

func (a *PayPalAdapter) send(req *http.Request) ([]byte, int, error) {
	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, 0, &payment.GatewayError{
			Gateway: payment.GatewayPayPal,
			Message: err.Error(),
			Err:     payment.ErrGatewayUnavailable,
		}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, &payment.GatewayError{
			Gateway: payment.GatewayPayPal,
			Message: "failed to read response: " + err.Error(),
			Err:     payment.ErrGatewayUnavailable,
		}
	}
	return body, resp.StatusCode, nil
}

func parsePayPalError(status int, body []byte) error {
	gwErr := &payment.GatewayError{
		Gateway:    payment.GatewayPayPal,
		StatusCode: status,
		Name:       http.StatusText(status),
		Message:    fmt.Sprintf("HTTP %d", status),
		Err:        payment.ErrGatewayRequestFailed,
	}
	if status >= 500 {
		gwErr.Err = payment.ErrGatewayUnavailable
	}

	var resp paypalErrorResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return gwErr
	}
	switch {
	case resp.Name != "":
		gwErr.Name = resp.Name
		gwErr.Message = resp.Message
		gwErr.DebugID = resp.DebugID
		for _, d := range resp.Details {
			gwErr.Details = append(gwErr.Details, payment.ErrorDetail{
				Field:  d.Field,
				Issue:  d.Issue,
				Reason: d.Description,
			})
		}
	case resp.Error != "":
		gwErr.Name = resp.Error
		gwErr.Message = resp.ErrorDescription
	}
	return gwErr
}

var _ payment.Gateway = (*PayPalAdapter)(nil)
