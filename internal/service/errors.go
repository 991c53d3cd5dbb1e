// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "errors"

var (
	ErrInvalidDataProvided    = errors.New("invalid data provided")
	ErrEmailAlreadyRegistered = errors.New("email is already registered")
	ErrInvalidCredentials     = errors.New("incorrect email or password")
	ErrEmailNotConfirmed      = errors.New("email is not confirmed")
	ErrUnauthenticated        = errors.New("could not validate credentials")
	ErrUserNotFound           = errors.New("user not found")
	ErrRefreshTokenMismatch   = errors.New("refresh token does not match the stored one")

	ErrTokenCreationFailed = errors.New("token creation failed")

	ErrContactNotFound = errors.New("contact not found")
	ErrInvalidAvatar   = errors.New("invalid avatar image")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")

	ErrValidationNoUserID = errors.New("no user ID for contact was given")
)
