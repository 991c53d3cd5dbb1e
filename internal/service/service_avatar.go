package service

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/MKhiriev/go-contact-book/internal/logger"
	"github.com/MKhiriev/go-contact-book/internal/store"
	"github.com/MKhiriev/go-contact-book/models"
)

// MaxAvatarSize is the largest accepted avatar upload in bytes.
const MaxAvatarSize = 5 << 20

type avatarService struct {
	userRepository store.UserRepository
	avatarStorage  store.AvatarStorage

	logger *logger.Logger
}

func NewAvatarService(userRepository store.UserRepository, avatarStorage store.AvatarStorage, logger *logger.Logger) AvatarService {
	return &avatarService{
		userRepository: userRepository,
		avatarStorage:  avatarStorage,
		logger:         logger,
	}
}

// UpdateAvatar stores avatar under avatars/<user id> and saves its public URL
// on user. The content type is sniffed from the data; the declared type of
// the upload is ignored.
func (s *avatarService) UpdateAvatar(ctx context.Context, user models.User, avatar models.Avatar) (models.User, error) {
	log := logger.FromContext(ctx)

	if len(avatar.Data) == 0 || len(avatar.Data) > MaxAvatarSize {
		log.Error().Int64("user_id", user.UserID).Int("size", len(avatar.Data)).Msg("avatar size is out of range")
		return models.User{}, fmt.Errorf("%w: size must be between 1 and %d bytes", ErrInvalidAvatar, MaxAvatarSize)
	}

	contentType := http.DetectContentType(avatar.Data)
	if !strings.HasPrefix(contentType, "image/") {
		log.Error().Int64("user_id", user.UserID).Str("content_type", contentType).Msg("avatar is not an image")
		return models.User{}, fmt.Errorf("%w: unsupported content type %s", ErrInvalidAvatar, contentType)
	}

	key := fmt.Sprintf("avatars/%d", user.UserID)
	url, err := s.avatarStorage.Upload(ctx, key, contentType, bytes.NewReader(avatar.Data))
	if err != nil {
		log.Err(err).Int64("user_id", user.UserID).Msg("avatar upload failed")
		return models.User{}, fmt.Errorf("avatar upload failed: %w", err)
	}

	user.Avatar = &url
	saved, err := s.userRepository.SaveUser(ctx, user)
	if err != nil {
		log.Err(err).Int64("user_id", user.UserID).Msg("saving avatar url failed")
		return models.User{}, fmt.Errorf("saving avatar url failed: %w", err)
	}

	return sanitizeUser(saved), nil
}
