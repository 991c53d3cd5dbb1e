// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import "github.com/MKhiriev/go-contact-book/models"

//go:generate mockgen -source=interfaces.go -destination=../mock/crypto_mock.go -package=mock

// PasswordHasher turns plaintext passwords into salted one-way hashes and
// checks candidates against them. It knows nothing about users or storage.
type PasswordHasher interface {
	// Hash returns a salted hash of plaintext. Two calls with the same input
	// return different hashes. Empty plaintext is rejected.
	Hash(plaintext string) (string, error)

	// Verify reports whether plaintext matches hash. A malformed hash is
	// reported as a mismatch, never as a panic.
	Verify(plaintext, hash string) bool
}

// TokenCodec issues and decodes signed, purpose-tagged tokens.
//
// The lifetime of an issued token is chosen by its purpose. Decoding reports
// exactly one of [ErrTokenMalformed], [ErrTokenBadSignature],
// [ErrTokenExpired] or [ErrTokenWrongPurpose] on failure.
type TokenCodec interface {
	// Issue signs a token for subject (the user's email) tagged with purpose.
	Issue(subject string, purpose models.TokenPurpose) (string, error)

	// Decode verifies token and returns its subject if the token was issued
	// for expectedPurpose.
	Decode(token string, expectedPurpose models.TokenPurpose) (string, error)
}
