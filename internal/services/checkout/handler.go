package checkout

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/stripe/stripe-go/v84"

	"gift-autocheckout/config"
	"gift-autocheckout/internal/services/checkout/types"
)

const (
	serviceName     = "Gift Genius AutoCheckout"
	defaultCurrency = "EUR"

	// sessionIDPlaceholder is substituted by the provider at redirect time,
	// not by this service.
	sessionIDPlaceholder = "{CHECKOUT_SESSION_ID}"
)

var errInvalidPrice = errors.New("price does not convert to whole minor units")

type handler struct {
	provider Provider
	cfg      config.AppConfig
}

func NewHandler(provider Provider, cfg config.AppConfig) *handler {
	return &handler{
		provider: provider,
		cfg:      cfg,
	}
}

func (h *handler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": serviceName,
	})
}

func (h *handler) Debug(w http.ResponseWriter, r *http.Request) {
	info, err := h.provider.AccountInfo()
	if err != nil {
		slog.Error("retrieving account info", "error", err)
		http.Error(w, "Stripe error: "+err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, info)
}

func (h *handler) CreateCheckout(w http.ResponseWriter, r *http.Request) {
	slog.Info("running CreateCheckout")

	var body types.CreateCheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(body.ProductName) == "" {
		http.Error(w, "product_name is required", http.StatusBadRequest)
		return
	}

	unitAmount, err := toMinorUnits(body.ProductPrice)
	if err != nil {
		http.Error(w, "Invalid product_price format", http.StatusBadRequest)
		return
	}

	currency := strings.ToUpper(strings.TrimSpace(body.Currency))
	if currency == "" {
		currency = defaultCurrency
	}
	if len(currency) != 3 {
		http.Error(w, "currency must be a three-letter code", http.StatusBadRequest)
		return
	}

	quantity := body.Quantity
	if quantity == 0 {
		quantity = 1
	}
	if quantity < 0 {
		http.Error(w, "quantity must be > 0", http.StatusBadRequest)
		return
	}

	feeCents := h.cfg.Checkout.DefaultServiceFeeCents
	if body.ServiceFeeCents != nil {
		if *body.ServiceFeeCents < 0 {
			http.Error(w, "service_fee_cents must be >= 0", http.StatusBadRequest)
			return
		}
		feeCents = *body.ServiceFeeCents
	}

	successBase := body.SuccessURL
	if successBase == "" {
		successBase = h.cfg.Checkout.DefaultSuccessURL
	}
	cancelBase := body.CancelURL
	if cancelBase == "" {
		cancelBase = h.cfg.Checkout.DefaultCancelURL
	}

	successURL, err := composeURL(successBase, map[string]*string{
		"session_id": stringPtr(sessionIDPlaceholder),
		"status":     stringPtr("success"),
	})
	if err != nil {
		http.Error(w, "Invalid success_url", http.StatusBadRequest)
		return
	}
	// Stripe only substitutes the literal token, so undo the query escaping.
	successURL = strings.ReplaceAll(successURL, url.QueryEscape(sessionIDPlaceholder), sessionIDPlaceholder)

	cancelURL, err := composeURL(cancelBase, map[string]*string{
		"status": stringPtr("cancel"),
	})
	if err != nil {
		http.Error(w, "Invalid cancel_url", http.StatusBadRequest)
		return
	}

	sess, err := h.provider.CreateSession(types.SessionParams{
		ProductName:     body.ProductName,
		Currency:        currency,
		UnitAmountCents: unitAmount,
		Quantity:        quantity,
		FeeCents:        feeCents,
		SuccessURL:      successURL,
		CancelURL:       cancelURL,
		Locale:          body.Locale,
	})
	if err != nil {
		slog.Error("creating checkout session", "error", err)
		http.Error(w, "Stripe error: "+err.Error(), http.StatusBadRequest)
		return
	}
	if sess.URL == "" {
		slog.Error("provider returned session without hosted URL", "session_id", sess.ID)
		http.Error(w, "Stripe did not return a checkout URL", http.StatusInternalServerError)
		return
	}
	if !validSessionID(sess.ID) {
		slog.Error("provider returned malformed session id", "session_id", sess.ID)
		http.Error(w, "Stripe returned a malformed session id", http.StatusInternalServerError)
		return
	}

	slog.Info("checkout session created",
		"session_id", sess.ID,
		"livemode", sess.Livemode,
		"url_has_fragment", strings.Contains(sess.URL, "#"),
	)

	writeJSON(w, http.StatusOK, types.CreateCheckoutResponse{
		CheckoutURL:           sess.URL,
		RedirectURL:           strings.TrimSuffix(h.cfg.Checkout.PublicBaseURL, "/") + "/r/" + sess.ID,
		Currency:              currency,
		AmountProductCents:    unitAmount * quantity,
		AmountServiceFeeCents: feeCents,
		AmountTotalCents:      unitAmount*quantity + feeCents,
	})
}

// Redirect resolves a short /r/{session_id} link to the provider-hosted
// checkout page. Chat UIs truncate URL fragments, so clients follow this
// indirection instead of the raw checkout URL.
func (h *handler) Redirect(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(chi.URLParam(r, "session_id"))
	if !validSessionID(id) {
		http.Error(w, "invalid session id", http.StatusBadRequest)
		return
	}

	sess, err := h.provider.GetSession(id, false)
	if err != nil {
		slog.Warn("checkout redirect: session lookup failed", "session_id", id, "error", err)
		http.Error(w, "Stripe error: "+err.Error(), http.StatusBadRequest)
		return
	}
	if sess.URL == "" {
		http.Error(w, "checkout session has no hosted URL", http.StatusNotFound)
		return
	}

	http.Redirect(w, r, sess.URL, http.StatusFound)
}

// ThanksPage renders the payment receipt. The session fetch is best-effort:
// placeholder ids are never sent to the provider, and any fetch failure
// degrades to the generic confirmation page.
func (h *handler) ThanksPage(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("session_id")

	var sess *types.Session
	if id != "" && !isPlaceholderSessionID(id) {
		fetched, err := h.provider.GetSession(id, true)
		if err != nil {
			slog.Warn("thanks page: session fetch failed, rendering generic page",
				"session_id", id, "error", err)
		} else {
			sess = fetched
		}
	}

	renderPage(w, thanksTemplate, newThanksPage(sess, h.cfg.Checkout.ReturnAppURL))
}

func (h *handler) CancelPage(w http.ResponseWriter, r *http.Request) {
	renderPage(w, cancelTemplate, cancelPage{ReturnURL: h.cfg.Checkout.ReturnAppURL})
}

func (h *handler) Webhook(w http.ResponseWriter, r *http.Request) {
	const maxBodyBytes = int64(65536)
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		slog.Error("reading webhook body", "error", err)
		http.Error(w, "Request too large", http.StatusRequestEntityTooLarge)
		return
	}

	if h.cfg.Stripe.WebhookSecret == "" {
		// Insecure dev mode: acknowledge without verification.
		slog.Warn("no webhook secret configured, skipping signature verification")
		writeJSON(w, http.StatusOK, types.WebhookAck{
			Received: true,
			Warning:  "No STRIPE_WEBHOOK_SECRET set",
		})
		return
	}

	event, err := h.provider.VerifyEvent(payload, r.Header.Get("Stripe-Signature"))
	if err != nil {
		slog.Error("webhook signature verification failed", "error", err)
		http.Error(w, "Webhook signature verification failed: "+err.Error(), http.StatusBadRequest)
		return
	}

	switch event.Type {
	case "checkout.session.completed":
		var sess stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
			slog.Error("parsing webhook session payload", "error", err)
			http.Error(w, "Invalid event payload", http.StatusBadRequest)
			return
		}
		// Fulfillment happens outside this service.
		slog.Info("checkout session completed",
			"session_id", sess.ID, "payment_status", sess.PaymentStatus)
	default:
		slog.Info("unhandled event type", "event_type", event.Type)
	}

	writeJSON(w, http.StatusOK, types.WebhookAck{Received: true})
}

// isPlaceholderSessionID reports whether id is a template token that a chat
// client pasted through unsubstituted.
func isPlaceholderSessionID(id string) bool {
	return strings.ContainsAny(id, "{}") || strings.Contains(id, "CHECKOUT_SESSION_ID")
}

func toMinorUnits(price float64) (int64, error) {
	if math.IsNaN(price) || math.IsInf(price, 0) || price <= 0 {
		return 0, errInvalidPrice
	}

	cents := math.Round(price * 100)
	if cents > math.MaxInt32 {
		return 0, errInvalidPrice
	}
	// Tolerate float noise but reject prices with sub-cent precision.
	if math.Abs(price*100-cents) > 1e-6 {
		return 0, errInvalidPrice
	}

	return int64(cents), nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encoding response", "error", err)
	}
}

func stringPtr(s string) *string {
	return &s
}
