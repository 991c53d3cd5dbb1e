package service

import (
	"fmt"

	"github.com/MKhiriev/go-contact-book/internal/config"
	"github.com/MKhiriev/go-contact-book/internal/crypto"
	"github.com/MKhiriev/go-contact-book/internal/logger"
	"github.com/MKhiriev/go-contact-book/internal/store"
)

type Services struct {
	AuthService     AuthService
	IdentityService IdentityService
	ContactService  ContactService
	AvatarService   AvatarService
	AppInfoService  AppInfoService
}

func NewServices(storages *store.Storages, dispatcher ConfirmationDispatcher, cfg *config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	codec, err := crypto.NewTokenCodec(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("error creating token codec: %w", err)
	}
	hasher := crypto.NewPasswordHasher(cfg.Auth.BcryptCost)

	appInfoService, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating app info service: %w", err)
	}

	return &Services{
		AuthService:     NewAuthService(storages.UserRepository, hasher, codec, dispatcher, cfg.App, logger),
		IdentityService: NewIdentityService(storages.UserRepository, codec, logger),
		ContactService:  NewContactValidationService().Wrap(NewContactService(storages.ContactRepository, logger)),
		AvatarService:   NewAvatarService(storages.UserRepository, storages.AvatarStorage, logger),
		AppInfoService:  appInfoService,
	}, nil
}
