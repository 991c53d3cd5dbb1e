package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-contact-book/internal/crypto"
	"github.com/MKhiriev/go-contact-book/internal/logger"
	"github.com/MKhiriev/go-contact-book/internal/store"
	"github.com/MKhiriev/go-contact-book/models"
)

type identityService struct {
	userRepository store.UserRepository
	codec          crypto.TokenCodec

	logger *logger.Logger
}

func NewIdentityService(userRepository store.UserRepository, codec crypto.TokenCodec, logger *logger.Logger) IdentityService {
	return &identityService{
		userRepository: userRepository,
		codec:          codec,
		logger:         logger,
	}
}

// ResolveIdentity decodes an access token and loads its subject. A token
// failure or an unknown subject is reported as ErrUnauthenticated wrapping
// the cause. No state is written.
func (s *identityService) ResolveIdentity(ctx context.Context, accessToken string) (models.User, error) {
	log := logger.FromContext(ctx)

	email, err := s.codec.Decode(accessToken, models.PurposeAccess)
	if err != nil {
		log.Err(err).Str("token_error", tokenErrorKind(err)).Msg("access token rejected")
		return models.User{}, fmt.Errorf("%w: %w", ErrUnauthenticated, err)
	}

	user, err := s.userRepository.FindUserByEmail(ctx, email)
	if errors.Is(err, store.ErrNoUserWasFound) {
		log.Err(err).Str("email", email).Msg("access token subject does not exist")
		return models.User{}, fmt.Errorf("%w: %w", ErrUnauthenticated, err)
	}
	if err != nil {
		log.Err(err).Str("email", email).Msg("user search by email failed")
		return models.User{}, fmt.Errorf("user search by email failed: %w", err)
	}

	return sanitizeUser(user), nil
}
