// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter is a Go client for the contact book HTTP API.
//
// [ServerAdapter] keeps the caller's token pair between calls. Authenticated
// calls attach the access token and, when the server answers 401 or the
// access token is about to expire, exchange the refresh token once and retry.
//
// Server errors are mapped to the sentinel values in errors.go so callers can
// use [errors.Is] (e.g. [ErrConflict] for 409, [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-contact-book/models"
)

// ServerAdapter talks to the contact book server on behalf of one user.
type ServerAdapter interface {
	// SetTokens replaces the stored token pair.
	SetTokens(pair models.TokenPair)

	// Tokens returns the stored token pair, empty before Login.
	Tokens() models.TokenPair

	// SignUp registers an account. The account stays unconfirmed until the
	// link from the confirmation email is followed.
	SignUp(ctx context.Context, req models.SignUpRequest) (models.User, error)

	// ConfirmEmail follows a confirmation link token and returns the
	// server's message.
	ConfirmEmail(ctx context.Context, token string) (string, error)

	// Login exchanges credentials for a token pair and stores it.
	Login(ctx context.Context, credentials models.Credentials) (models.TokenPair, error)

	// Refresh exchanges the stored refresh token for a new pair and stores
	// it. A rejected refresh clears the stored pair.
	Refresh(ctx context.Context) (models.TokenPair, error)

	// Logout revokes the session on the server and clears the stored pair.
	Logout(ctx context.Context) error

	Me(ctx context.Context) (models.User, error)

	ListContacts(ctx context.Context, filter models.ContactFilter) ([]models.Contact, error)
	GetContact(ctx context.Context, contactID int64) (models.Contact, error)
	CreateContact(ctx context.Context, contact models.Contact) (models.Contact, error)
	UpdateContact(ctx context.Context, contact models.Contact) (models.Contact, error)
	DeleteContact(ctx context.Context, contactID int64) (models.Contact, error)
	UpcomingBirthdays(ctx context.Context) ([]models.Contact, error)

	// Version returns the server's application version.
	Version(ctx context.Context) (string, error)
}
