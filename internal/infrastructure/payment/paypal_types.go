package payment

// PayPal REST v1 payments wire types

type paypalTokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

type paypalPayment struct {
	ID           string              `json:"id,omitempty"`
	Intent       string              `json:"intent,omitempty"`
	State        string              `json:"state,omitempty"`
	Payer        *paypalPayer        `json:"payer,omitempty"`
	Transactions []paypalTransaction `json:"transactions,omitempty"`
	RedirectURLs *paypalRedirectURLs `json:"redirect_urls,omitempty"`
	Links        []paypalLink        `json:"links,omitempty"`
}

type paypalPayer struct {
	PaymentMethod string           `json:"payment_method,omitempty"`
	Status        string           `json:"status,omitempty"`
	PayerInfo     *paypalPayerInfo `json:"payer_info,omitempty"`
}

type paypalPayerInfo struct {
	Email   string `json:"email,omitempty"`
	PayerID string `json:"payer_id,omitempty"`
}

type paypalTransaction struct {
	Amount           paypalAmount            `json:"amount"`
	Description      string                  `json:"description,omitempty"`
	InvoiceNumber    string                  `json:"invoice_number,omitempty"`
	ItemList         *paypalItemList         `json:"item_list,omitempty"`
	RelatedResources []paypalRelatedResource `json:"related_resources,omitempty"`
}

type paypalAmount struct {
	Total    string               `json:"total"`
	Currency string               `json:"currency"`
	Details  *paypalAmountDetails `json:"details,omitempty"`
}

type paypalAmountDetails struct {
	Subtotal string `json:"subtotal,omitempty"`
	Tax      string `json:"tax,omitempty"`
	Shipping string `json:"shipping,omitempty"`
}

type paypalItemList struct {
	Items []paypalItem `json:"items"`
}

type paypalItem struct {
	Name     string `json:"name"`
	SKU      string `json:"sku,omitempty"`
	Price    string `json:"price"`
	Currency string `json:"currency"`
	Quantity string `json:"quantity"`
}

type paypalRelatedResource struct {
	Sale *paypalSale `json:"sale,omitempty"`
}

type paypalSale struct {
	ID     string       `json:"id"`
	State  string       `json:"state"`
	Amount paypalAmount `json:"amount"`
}

type paypalRedirectURLs struct {
	ReturnURL string `json:"return_url"`
	CancelURL string `json:"cancel_url"`
}

type paypalLink struct {
	Href   string `json:"href"`
	Rel    string `json:"rel"`
	Method string `json:"method,omitempty"`
}

type paypalExecuteRequest struct {
	PayerID string `json:"payer_id"`
}

type paypalErrorResponse struct {
	Name    string `json:"name"`
	Message string `json:"message"`
	DebugID string `json:"debug_id"`
	Details []struct {
		Field       string `json:"field"`
		Issue       string `json:"issue"`
		Description string `json:"description"`
	} `json:"details"`
	// OAuth endpoint errors use a different shape
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}
