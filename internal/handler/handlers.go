package handler

import (
	"github.com/MKhiriev/go-contact-book/internal/config"
	"github.com/MKhiriev/go-contact-book/internal/handler/http"
	"github.com/MKhiriev/go-contact-book/internal/logger"
	"github.com/MKhiriev/go-contact-book/internal/service"
	"github.com/MKhiriev/go-contact-book/internal/store"
)

type Handlers struct {
	HTTP *http.Handler
}

// NewHandlers creates the transport handlers enabled by cfg.Server.
// rateCounter may be nil, which disables rate limiting.
func NewHandlers(services *service.Services, rateCounter store.RateCounter, cfg *config.StructuredConfig, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	if cfg.Server.HTTPAddress == "" {
		return nil, errNoHandlersAreCreated
	}

	return &Handlers{
		HTTP: http.NewHandler(services, rateCounter, cfg, logger),
	}, nil
}
