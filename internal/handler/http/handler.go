package http

import (
	"time"

	"github.com/MKhiriev/go-contact-book/internal/config"
	"github.com/MKhiriev/go-contact-book/internal/logger"
	"github.com/MKhiriev/go-contact-book/internal/service"
	"github.com/MKhiriev/go-contact-book/internal/store"
	"github.com/MKhiriev/go-contact-book/internal/utils"
)

type Handler struct {
	services *service.Services

	// rateCounter is nil when rate limiting is disabled.
	rateCounter store.RateCounter
	rateLimit   config.RateLimit

	requestTimeout time.Duration
	traceIDs       *utils.UUIDGenerator

	logger *logger.Logger
}

func NewHandler(services *service.Services, rateCounter store.RateCounter, cfg *config.StructuredConfig, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:       services,
		rateCounter:    rateCounter,
		rateLimit:      cfg.RateLimit,
		requestTimeout: cfg.Server.RequestTimeout,
		traceIDs:       utils.NewUUIDGenerator(),
		logger:         logger,
	}
}
