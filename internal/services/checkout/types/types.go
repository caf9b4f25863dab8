package types

// CreateCheckoutRequest is the body of POST /create_checkout. Quantity
// defaults to 1 and currency to EUR when omitted.
type CreateCheckoutRequest struct {
	ProductName     string  `json:"product_name"`
	ProductPrice    float64 `json:"product_price"`
	Currency        string  `json:"currency"`
	ServiceFeeCents *int64  `json:"service_fee_cents,omitempty"`
	Quantity        int64   `json:"quantity"`
	SuccessURL      string  `json:"success_url,omitempty"`
	CancelURL       string  `json:"cancel_url,omitempty"`
	Locale          string  `json:"locale,omitempty"`
}

// CreateCheckoutResponse carries the provider-hosted checkout URL, a
// same-origin short redirect URL, and the computed amounts in minor units.
type CreateCheckoutResponse struct {
	CheckoutURL           string `json:"checkout_url"`
	RedirectURL           string `json:"redirect_url"`
	Currency              string `json:"currency"`
	AmountProductCents    int64  `json:"amount_product_cents"`
	AmountServiceFeeCents int64  `json:"amount_service_fee_cents"`
	AmountTotalCents      int64  `json:"amount_total_cents"`
}

// SessionParams describes one checkout session to be created with the
// provider: the product line item plus a fixed service-fee line item.
// All amounts are in minor units.
type SessionParams struct {
	ProductName     string
	Currency        string
	UnitAmountCents int64
	Quantity        int64
	FeeCents        int64
	SuccessURL      string
	CancelURL       string
	Locale          string
}

// Session is the provider-owned checkout session as seen by this service.
type Session struct {
	ID            string
	URL           string
	Livemode      bool
	AmountTotal   int64
	Currency      string
	CustomerEmail string
	LineItems     []LineItem
}

type LineItem struct {
	Description string
	Quantity    int64
	AmountTotal int64
}

type AccountInfo struct {
	AccountID string `json:"account_id"`
	Livemode  bool   `json:"livemode"`
}

// WebhookAck is returned for every acknowledged webhook delivery. Warning is
// set when signature verification was skipped because no secret is
// configured.
type WebhookAck struct {
	Received bool   `json:"received"`
	Warning  string `json:"warning,omitempty"`
}
