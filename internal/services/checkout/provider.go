package checkout

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v84"
	"github.com/stripe/stripe-go/v84/account"
	"github.com/stripe/stripe-go/v84/checkout/session"
	"github.com/stripe/stripe-go/v84/webhook"

	"gift-autocheckout/internal/services/checkout/types"
)

const serviceFeeItemName = "Gift Genius Service Fee"

// Provider abstracts the payment provider's hosted checkout API so handlers
// can be tested without network calls.
type Provider interface {
	CreateSession(p types.SessionParams) (*types.Session, error)
	GetSession(id string, withLineItems bool) (*types.Session, error)
	AccountInfo() (*types.AccountInfo, error)
	VerifyEvent(payload []byte, sigHeader string) (stripe.Event, error)
}

type StripeProvider struct {
	livemode      bool
	webhookSecret string
}

func NewStripeProvider(secretKey, webhookSecret string) *StripeProvider {
	if secretKey == "" {
		panic("secretKey required for StripeProvider")
	}
	stripe.Key = secretKey

	return &StripeProvider{
		livemode:      strings.HasPrefix(secretKey, "sk_live_") || strings.HasPrefix(secretKey, "rk_live_"),
		webhookSecret: webhookSecret,
	}
}

// CreateSession creates a hosted checkout session with two line items: the
// product itself and a fixed-name service-fee item with quantity 1.
func (p *StripeProvider) CreateSession(sp types.SessionParams) (*types.Session, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:                stripe.String(string(stripe.CheckoutSessionModePayment)),
		UIMode:              stripe.String(string(stripe.CheckoutSessionUIModeHosted)),
		SuccessURL:          stripe.String(sp.SuccessURL),
		CancelURL:           stripe.String(sp.CancelURL),
		AllowPromotionCodes: stripe.Bool(false),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(sp.Currency),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(sp.ProductName),
					},
					UnitAmount: stripe.Int64(sp.UnitAmountCents),
				},
				Quantity: stripe.Int64(sp.Quantity),
			},
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(sp.Currency),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(serviceFeeItemName),
					},
					UnitAmount: stripe.Int64(sp.FeeCents),
				},
				Quantity: stripe.Int64(1),
			},
		},
	}
	if sp.Locale != "" {
		params.Locale = stripe.String(sp.Locale)
	}
	params.SetIdempotencyKey(uuid.NewString())

	s, err := session.New(params)
	if err != nil {
		return nil, fmt.Errorf("creating checkout session: %w", err)
	}

	return fromStripeSession(s), nil
}

func (p *StripeProvider) GetSession(id string, withLineItems bool) (*types.Session, error) {
	params := &stripe.CheckoutSessionParams{}
	if withLineItems {
		params.AddExpand("line_items")
	}

	s, err := session.Get(id, params)
	if err != nil {
		return nil, fmt.Errorf("retrieving checkout session: %w", err)
	}

	return fromStripeSession(s), nil
}

// AccountInfo introspects the provider account. Livemode comes from the
// configured key prefix; the Account object itself does not carry it.
func (p *StripeProvider) AccountInfo() (*types.AccountInfo, error) {
	a, err := account.Get()
	if err != nil {
		return nil, fmt.Errorf("retrieving account: %w", err)
	}

	return &types.AccountInfo{AccountID: a.ID, Livemode: p.livemode}, nil
}

func (p *StripeProvider) VerifyEvent(payload []byte, sigHeader string) (stripe.Event, error) {
	event, err := webhook.ConstructEvent(payload, sigHeader, p.webhookSecret)
	if err != nil {
		return stripe.Event{}, fmt.Errorf("verifying stripe webhook signature: %w", err)
	}

	return event, nil
}

func fromStripeSession(s *stripe.CheckoutSession) *types.Session {
	out := &types.Session{
		ID:          s.ID,
		URL:         s.URL,
		Livemode:    s.Livemode,
		AmountTotal: s.AmountTotal,
		Currency:    strings.ToUpper(string(s.Currency)),
	}
	if s.CustomerDetails != nil {
		out.CustomerEmail = s.CustomerDetails.Email
	}
	if s.LineItems != nil {
		for _, li := range s.LineItems.Data {
			out.LineItems = append(out.LineItems, types.LineItem{
				Description: li.Description,
				Quantity:    li.Quantity,
				AmountTotal: li.AmountTotal,
			})
		}
	}

	return out
}
