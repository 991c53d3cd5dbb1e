// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "fmt"

const (
	minBcryptCost = 4
	maxBcryptCost = 31
)

// validate checks that the final merged [StructuredConfig] satisfies all
// startup invariants.
func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return fmt.Errorf("%w: empty database DSN", ErrInvalidStorageConfigs)
	}

	if cfg.Auth.TokenSignKey == "" {
		return fmt.Errorf("%w: empty token sign key", ErrInvalidAuthConfigs)
	}
	if cfg.Auth.BcryptCost < minBcryptCost || cfg.Auth.BcryptCost > maxBcryptCost {
		return fmt.Errorf("%w: bcrypt cost %d out of range [%d, %d]", ErrInvalidAuthConfigs, cfg.Auth.BcryptCost, minBcryptCost, maxBcryptCost)
	}

	// a leaked access token must never be usable as long as a refresh token
	ttl := cfg.Auth
	if ttl.AccessTokenTTL <= 0 || ttl.RefreshTokenTTL <= 0 || ttl.ConfirmTokenTTL <= 0 {
		return fmt.Errorf("%w: token TTLs must be positive", ErrInvalidTokenTTLs)
	}
	if ttl.AccessTokenTTL >= ttl.RefreshTokenTTL {
		return fmt.Errorf("%w: access TTL %s must be shorter than refresh TTL %s", ErrInvalidTokenTTLs, ttl.AccessTokenTTL, ttl.RefreshTokenTTL)
	}

	if cfg.Server.HTTPAddress == "" || cfg.Server.RequestTimeout <= 0 {
		return ErrInvalidServerConfigs
	}

	if cfg.Mail.Host != "" && cfg.Mail.From == "" {
		return fmt.Errorf("%w: sender address is required when SMTP host is set", ErrInvalidMailConfigs)
	}

	if cfg.RateLimit.RedisAddr != "" && (cfg.RateLimit.Requests <= 0 || cfg.RateLimit.Window <= 0) {
		return ErrInvalidRateLimitConfigs
	}

	if cfg.Workers.MailQueueSize <= 0 || cfg.Workers.MailWorkers <= 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}
