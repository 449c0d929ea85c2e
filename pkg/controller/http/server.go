package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	ghctrl "github.com/m-mizutani/relmon/pkg/controller/github"
	"github.com/m-mizutani/relmon/pkg/domain/interfaces"
	"github.com/m-mizutani/relmon/pkg/utils/logging"
)

// DefaultAddr is the listen address of the status server
const DefaultAddr = "localhost:8080"

type config struct {
	addr          string
	webhookSecret string
}

// Option is a functional option for Server configuration
type Option func(*config)

// WithAddr sets the server address
func WithAddr(addr string) Option {
	return func(c *config) {
		c.addr = addr
	}
}

// WithWebhookSecret enables /hooks/github with the given HMAC secret
func WithWebhookSecret(secret string) Option {
	return func(c *config) {
		c.webhookSecret = secret
	}
}

// Server serves watcher status and GitHub webhooks
type Server struct {
	*http.Server
}

// NewServer creates the status server. The webhook route is mounted only
// when a secret is configured.
func NewServer(ctx context.Context, watchUC interfaces.WatchUseCase, opts ...Option) *Server {
	cfg := &config{
		addr: DefaultAddr,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(LoggingMiddleware(ctx))
	router.Use(middleware.Recoverer)

	status := &statusHandler{watchUC: watchUC}
	router.Get("/health", status.handleHealth)
	router.Get("/versions", status.handleVersions)

	if cfg.webhookSecret != "" {
		webhookHandler := NewWebhookHandler(cfg.webhookSecret, ghctrl.NewEventProcessor(watchUC))
		router.Post("/hooks/github", webhookHandler.Handle)
	} else {
		logging.From(ctx).Info("Webhook secret is not set, /hooks/github is disabled")
	}

	return &Server{
		Server: &http.Server{
			Addr:              cfg.addr,
			Handler:           router,
			ReadHeaderTimeout: 15 * time.Second,
		},
	}
}
