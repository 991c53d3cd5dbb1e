// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidStorageConfigs indicates a missing database DSN.
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidAuthConfigs indicates a missing sign key or bad bcrypt cost.
	ErrInvalidAuthConfigs = errors.New("invalid auth configuration")
	// ErrInvalidTokenTTLs indicates non-positive TTLs or an access TTL that
	// is not shorter than the refresh TTL.
	ErrInvalidTokenTTLs = errors.New("invalid token lifetimes")
	// ErrInvalidServerConfigs indicates a missing listen address or timeout.
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
	// ErrInvalidMailConfigs indicates an SMTP host without sender address.
	ErrInvalidMailConfigs = errors.New("invalid mail configuration")
	// ErrInvalidRateLimitConfigs indicates a limiter without a positive
	// request budget or window.
	ErrInvalidRateLimitConfigs = errors.New("invalid rate limit configuration")
	// ErrInvalidWorkerConfigs indicates invalid background worker settings.
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")
)
