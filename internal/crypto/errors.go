// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import "errors"

// Token decoding errors. Callers switch on them with errors.Is; the wrapped
// library error is kept for logs only.
var (
	ErrTokenMalformed    = errors.New("token is malformed")
	ErrTokenBadSignature = errors.New("token signature is invalid")
	ErrTokenExpired      = errors.New("token is expired")
	ErrTokenWrongPurpose = errors.New("token was issued for another purpose")
)

var (
	ErrEmptyPassword   = errors.New("empty password")
	ErrEmptySubject    = errors.New("empty token subject")
	ErrUnknownPurpose  = errors.New("unknown token purpose")
	ErrInvalidSignKey  = errors.New("empty token sign key")
	ErrInvalidTokenTTL = errors.New("token TTL must be positive")
)
