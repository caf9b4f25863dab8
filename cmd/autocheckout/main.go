package main

import (
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"

	"gift-autocheckout/config"
	"gift-autocheckout/internal/middleware"
	"gift-autocheckout/internal/services/checkout"
)

func main() {
	// Best-effort; config comes from the environment in production.
	_ = godotenv.Load()

	var cfg config.AppConfig
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		log.Panicf("failed to load config: %v", err)
	}
	if cfg.Stripe.SecretKey == "" {
		log.Panic("Missing STRIPE_SECRET_KEY environment variable")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	provider := checkout.NewStripeProvider(cfg.Stripe.SecretKey, cfg.Stripe.WebhookSecret)
	handler := checkout.NewHandler(provider, cfg)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS(cfg.Http.CorsAllowedOrigin))

	r.Get("/", handler.Root)
	r.Get("/debug", handler.Debug)
	r.Post("/create_checkout", handler.CreateCheckout)
	r.Get("/r/{session_id}", handler.Redirect)
	r.Get("/thanks", handler.ThanksPage)
	r.Get("/cancel", handler.CancelPage)
	r.Post("/webhook", handler.Webhook)

	slog.Info(fmt.Sprintf("Server running on %s", cfg.Http.Addr))

	if err := http.ListenAndServe(cfg.Http.Addr, r); err != nil {
		slog.Error("failed to serve server", "error", err)
	}
}
