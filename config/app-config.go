// Package config holds the application's configuration settings.
package config

// AppConfig defines environment-based configuration for the application.
// It is read once at startup and treated as immutable afterwards.
type AppConfig struct {
	Http     HttpConfig
	Stripe   StripeConfig
	Checkout CheckoutConfig
}

type HttpConfig struct {
	Addr              string `env:"CHECKOUT_HTTP_ADDR" env-default:":8080"`
	CorsAllowedOrigin string `env:"CORS_ALLOWED_ORIGIN" env-default:"*"`
}

type StripeConfig struct {
	SecretKey     string `env:"STRIPE_SECRET_KEY"`
	WebhookSecret string `env:"STRIPE_WEBHOOK_SECRET"`
}

type CheckoutConfig struct {
	// DefaultServiceFeeCents is the service fee in the smallest currency
	// unit, used when the request carries no override.
	DefaultServiceFeeCents int64  `env:"SERVICE_FEE_CENTS" env-default:"99"`
	DefaultSuccessURL      string `env:"DEFAULT_SUCCESS_URL" env-default:"https://chat.openai.com/"`
	DefaultCancelURL       string `env:"DEFAULT_CANCEL_URL" env-default:"https://chat.openai.com/"`
	// PublicBaseURL is this service's own externally reachable base URL,
	// used to build the short /r/{session_id} redirect links.
	PublicBaseURL string `env:"PUBLIC_BASE_URL" env-default:"http://localhost:8080"`
	// ReturnAppURL is where the confirmation and cancellation pages link
	// back to.
	ReturnAppURL string `env:"RETURN_APP_URL" env-default:"https://chat.openai.com/"`
}
