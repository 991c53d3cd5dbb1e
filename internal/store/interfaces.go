// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"io"
	"time"

	"github.com/MKhiriev/go-contact-book/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository persists user accounts, including the single refresh token
// slot of each user.
type UserRepository interface {
	// CreateUser inserts a new user and returns it with server-assigned
	// fields. Returns [ErrEmailAlreadyExists] on a duplicate email.
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// FindUserByEmail returns [ErrNoUserWasFound] when no user has email.
	FindUserByEmail(ctx context.Context, email string) (models.User, error)

	// SaveUser updates the mutable profile fields (name, avatar) of user.
	SaveUser(ctx context.Context, user models.User) (models.User, error)

	// SetRefreshToken overwrites the refresh token slot. A nil token clears it.
	SetRefreshToken(ctx context.Context, userID int64, token *string) error

	// RotateRefreshToken replaces the stored refresh token with next only if
	// it currently equals presented. The comparison and the write are one
	// atomic statement; the result reports whether the swap happened.
	RotateRefreshToken(ctx context.Context, userID int64, presented, next string) (bool, error)

	// MarkEmailConfirmed flips email_confirmed to true. It reports false
	// when the user was already confirmed.
	MarkEmailConfirmed(ctx context.Context, email string) (bool, error)
}

// ContactRepository persists contacts. Every method is scoped to the owner
// so that one user can never read or modify another user's contacts.
type ContactRepository interface {
	List(ctx context.Context, filter models.ContactFilter) ([]models.Contact, error)
	ListAll(ctx context.Context, userID int64) ([]models.Contact, error)
	Get(ctx context.Context, userID, contactID int64) (models.Contact, error)
	Create(ctx context.Context, contact models.Contact) (models.Contact, error)
	Update(ctx context.Context, contact models.Contact) (models.Contact, error)
	Delete(ctx context.Context, userID, contactID int64) (models.Contact, error)
}

// AvatarStorage stores avatar images and returns their public URL.
type AvatarStorage interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error)
}

// RateCounter counts hits of key in fixed windows of the given length and
// returns the number of hits in the current window, this one included.
type RateCounter interface {
	Hit(ctx context.Context, key string, window time.Duration) (int64, error)
}

// ErrorClassificator decides whether a failed database operation is worth
// retrying.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
