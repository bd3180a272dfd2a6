package payment

import (
	"errors"
	"fmt"
)

// ErrorDetail is a field-level problem reported by a gateway
type ErrorDetail struct {
	Field  string `json:"field"`
	Issue  string `json:"issue"`
	Reason string `json:"description,omitempty"`
}

// GatewayError is a failed gateway call. Err is ErrGatewayUnavailable for
// transport failures and ErrGatewayRequestFailed for rejected requests.
type GatewayError struct {
	Gateway    string
	StatusCode int
	Name       string
	Message    string
	DebugID    string
	Details    []ErrorDetail
	Err        error
}

// Error implements the error interface
func (e *GatewayError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s: %s (status %d): %s", e.Gateway, e.Name, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Gateway, e.Message)
}

// Unwrap exposes the sentinel kind
func (e *GatewayError) Unwrap() error {
	return e.Err
}

// Data returns the structured error body as reported by the gateway
func (e *GatewayError) Data() map[string]any {
	if e.StatusCode == 0 && e.Name == "" {
		return nil
	}
	data := map[string]any{
		"name":        e.Name,
		"message":     e.Message,
		"status_code": e.StatusCode,
	}
	if e.DebugID != "" {
		data["debug_id"] = e.DebugID
	}
	if len(e.Details) > 0 {
		data["details"] = e.Details
	}
	return data
}

// PaypalRequestError is raised when executing a PayPal payment fails.
// It carries the gateway's structured error data when there is any, and
// otherwise only the message of the underlying error.
type PaypalRequestError struct {
	Message string
	Data    map[string]any
	Err     error
}

// Error implements the error interface
func (e *PaypalRequestError) Error() string {
	return "paypal request failed: " + e.Message
}

// Unwrap returns the underlying failure so callers can tell a gateway
// outage from a rejected payment with errors.Is
func (e *PaypalRequestError) Unwrap() error {
	return e.Err
}

// NewPaypalRequestError wraps any failure of a PayPal payment flow. An
// error that already is a *PaypalRequestError is returned as it is.
func NewPaypalRequestError(err error) *PaypalRequestError {
	var reqErr *PaypalRequestError
	if errors.As(err, &reqErr) {
		return reqErr
	}
	var gwErr *GatewayError
	if errors.As(err, &gwErr) {
		return &PaypalRequestError{
			Message: gwErr.Message,
			Data:    gwErr.Data(),
			Err:     err,
		}
	}
	return &PaypalRequestError{
		Message: err.Error(),
		Err:     err,
	}
}
