// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/go-contact-book/models"
)

// AuthService drives the account lifecycle: registration, email
// confirmation, login, token refresh and logout.
type AuthService interface {
	SignUp(ctx context.Context, req models.SignUpRequest) (models.User, error)
	Login(ctx context.Context, credentials models.Credentials) (models.TokenPair, models.User, error)
	Refresh(ctx context.Context, refreshToken string) (models.TokenPair, error)
	ConfirmEmail(ctx context.Context, token string) (models.ConfirmationStatus, error)
	Logout(ctx context.Context, user models.User) error
}

// IdentityService maps an access token to the user it was issued for.
type IdentityService interface {
	ResolveIdentity(ctx context.Context, accessToken string) (models.User, error)
}

type ContactService interface {
	ListContacts(ctx context.Context, filter models.ContactFilter) ([]models.Contact, error)
	GetContact(ctx context.Context, userID, contactID int64) (models.Contact, error)
	CreateContact(ctx context.Context, contact models.Contact) (models.Contact, error)
	UpdateContact(ctx context.Context, contact models.Contact) (models.Contact, error)
	DeleteContact(ctx context.Context, userID, contactID int64) (models.Contact, error)
	UpcomingBirthdays(ctx context.Context, userID int64) ([]models.Contact, error)
}

// ContactServiceWrapper defines middleware composition for ContactService.
// Implementations wrap an existing ContactService to add behavior such as
// logging or validating.
type ContactServiceWrapper interface {
	Wrap(ContactService) ContactService // returns a decorated ContactService applying additional behavior
}

type AvatarService interface {
	UpdateAvatar(ctx context.Context, user models.User, avatar models.Avatar) (models.User, error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}

// ConfirmationDispatcher hands a confirmation email over for asynchronous
// delivery. Dispatch must not wait for the email to be sent.
type ConfirmationDispatcher interface {
	Dispatch(ctx context.Context, email models.ConfirmationEmail) error
}
