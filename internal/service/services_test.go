package service

import (
	"testing"
	"time"

	"github.com/MKhiriev/go-contact-book/internal/config"
	"github.com/MKhiriev/go-contact-book/internal/crypto"
	"github.com/MKhiriev/go-contact-book/internal/logger"
	"github.com/MKhiriev/go-contact-book/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validServicesConfig() *config.StructuredConfig {
	return &config.StructuredConfig{
		App: config.App{Version: "1.0.0", BaseURL: "http://localhost:8080"},
		Auth: config.Auth{
			TokenSignKey:    "key",
			TokenIssuer:     "go-contact-book",
			AccessTokenTTL:  time.Minute,
			RefreshTokenTTL: time.Hour,
			ConfirmTokenTTL: time.Hour,
			BcryptCost:      4,
		},
	}
}

func TestNewServices(t *testing.T) {
	services, err := NewServices(&store.Storages{UserRepository: newMemUserRepository()}, &recordingDispatcher{}, validServicesConfig(), logger.Nop())
	require.NoError(t, err)

	assert.NotNil(t, services.AuthService)
	assert.NotNil(t, services.IdentityService)
	assert.NotNil(t, services.ContactService)
	assert.NotNil(t, services.AvatarService)
	assert.NotNil(t, services.AppInfoService)
}

func TestNewServices_InvalidAuthConfig(t *testing.T) {
	cfg := validServicesConfig()
	cfg.Auth.TokenSignKey = ""

	_, err := NewServices(&store.Storages{}, &recordingDispatcher{}, cfg, logger.Nop())
	assert.ErrorIs(t, err, crypto.ErrInvalidSignKey)
}

func TestNewServices_MissingVersion(t *testing.T) {
	cfg := validServicesConfig()
	cfg.App.Version = ""

	_, err := NewServices(&store.Storages{}, &recordingDispatcher{}, cfg, logger.Nop())
	assert.ErrorIs(t, err, ErrVersionIsNotSpecified)
}
