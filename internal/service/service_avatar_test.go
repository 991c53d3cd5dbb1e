package service

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/MKhiriev/go-contact-book/internal/logger"
	"github.com/MKhiriev/go-contact-book/internal/mock"
	"github.com/MKhiriev/go-contact-book/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// pngHeader is enough for http.DetectContentType to report image/png.
var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestAvatarService_UpdateAvatar(t *testing.T) {
	ctrl := gomock.NewController(t)
	users := mock.NewMockUserRepository(ctrl)
	storage := mock.NewMockAvatarStorage(ctrl)
	svc := NewAvatarService(users, storage, logger.Nop())

	url := "https://cdn.example.com/avatars/avatars/7"
	storage.EXPECT().Upload(gomock.Any(), "avatars/7", "image/png", gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _ string, body io.Reader) (string, error) {
			data, err := io.ReadAll(body)
			require.NoError(t, err)
			assert.Equal(t, pngHeader, data)
			return url, nil
		})
	users.EXPECT().SaveUser(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, user models.User) (models.User, error) {
			require.NotNil(t, user.Avatar)
			assert.Equal(t, url, *user.Avatar)
			user.PasswordHash = "hash"
			return user, nil
		})

	user, err := svc.UpdateAvatar(context.Background(), confirmedUser(), models.Avatar{UserID: 7, ContentType: "image/png", Data: pngHeader})
	require.NoError(t, err)
	require.NotNil(t, user.Avatar)
	assert.Equal(t, url, *user.Avatar)
	assert.Empty(t, user.PasswordHash)
}

func TestAvatarService_UpdateAvatar_Rejected(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{name: "empty", data: nil},
		{name: "too large", data: append(bytes.Clone(pngHeader), make([]byte, MaxAvatarSize)...)},
		{name: "not an image", data: []byte("hello, plain text")},
		{name: "declared image but html", data: []byte("<html><body>x</body></html>")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc := NewAvatarService(mock.NewMockUserRepository(ctrl), mock.NewMockAvatarStorage(ctrl), logger.Nop())

			_, err := svc.UpdateAvatar(context.Background(), confirmedUser(), models.Avatar{ContentType: "image/png", Data: tt.data})
			assert.ErrorIs(t, err, ErrInvalidAvatar)
		})
	}
}

func TestAvatarService_UploadFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	storage := mock.NewMockAvatarStorage(ctrl)
	svc := NewAvatarService(mock.NewMockUserRepository(ctrl), storage, logger.Nop())

	storage.EXPECT().Upload(gomock.Any(), "avatars/7", "image/png", gomock.Any()).Return("", errDB)

	_, err := svc.UpdateAvatar(context.Background(), confirmedUser(), models.Avatar{Data: pngHeader})
	assert.ErrorIs(t, err, errDB)
	assert.NotErrorIs(t, err, ErrInvalidAvatar)
}
