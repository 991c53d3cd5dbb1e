// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"time"
)

// StructuredConfig is the top-level configuration container. It aggregates
// all sub-configurations and is populated by merging values from environment
// variables, command-line flags, an optional JSON file and defaults.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env:       direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings: version, public base URL and
	// log level.
	App App `envPrefix:"APP_"`

	// Auth holds token signing and password hashing parameters.
	Auth Auth `envPrefix:"AUTH_"`

	// Storage holds configuration for PostgreSQL and the S3 avatar bucket.
	Storage Storage `envPrefix:"STORAGE_"`

	// Mail holds the SMTP settings used for confirmation emails.
	Mail Mail `envPrefix:"MAIL_"`

	// RateLimit holds the Redis-backed limiter settings applied in front of
	// the contacts routes.
	RateLimit RateLimit `envPrefix:"RATE_LIMIT_"`

	// Server holds network address and timeout settings of the HTTP server.
	Server Server `envPrefix:"SERVER_"`

	// Workers holds configuration for background workers.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// Version is the semantic version exposed via /api/version/.
	// Env: APP_VERSION
	Version string `env:"VERSION"`

	// BaseURL is the externally reachable root of the service used to build
	// confirmation links (e.g. "https://contacts.example.com").
	// Env: APP_BASE_URL
	BaseURL string `env:"BASE_URL"`

	// LogLevel is a zerolog level name ("debug", "info", ...).
	// Env: APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`
}

// Auth holds the parameters of the authentication core.
type Auth struct {
	// TokenSignKey is the HMAC secret used to sign and verify all tokens.
	// Env: AUTH_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim embedded in, and required from, every
	// token.
	// Env: AUTH_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// AccessTokenTTL is the lifetime of access tokens.
	// Env: AUTH_ACCESS_TOKEN_TTL
	AccessTokenTTL time.Duration `env:"ACCESS_TOKEN_TTL"`

	// RefreshTokenTTL is the lifetime of refresh tokens. Must be longer than
	// AccessTokenTTL.
	// Env: AUTH_REFRESH_TOKEN_TTL
	RefreshTokenTTL time.Duration `env:"REFRESH_TOKEN_TTL"`

	// ConfirmTokenTTL is the lifetime of email confirmation tokens.
	// Env: AUTH_CONFIRM_TOKEN_TTL
	ConfirmTokenTTL time.Duration `env:"CONFIRM_TOKEN_TTL"`

	// BcryptCost is the bcrypt work factor used for password hashes.
	// Env: AUTH_BCRYPT_COST
	BcryptCost int `env:"BCRYPT_COST"`
}

// Storage groups the configuration for all storage backends.
type Storage struct {
	// DB holds the relational database connection settings.
	DB DB `envPrefix:"DB_"`

	// S3 holds the object storage settings for avatars.
	S3 S3 `envPrefix:"S3_"`
}

// DB holds connection settings for PostgreSQL.
type DB struct {
	// DSN is the PostgreSQL connection string.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// S3 holds the settings of an S3-compatible bucket.
type S3 struct {
	// Endpoint overrides the AWS endpoint (MinIO and friends). Empty means AWS.
	// Env: STORAGE_S3_ENDPOINT
	Endpoint string `env:"ENDPOINT"`

	// Region of the bucket.
	// Env: STORAGE_S3_REGION
	Region string `env:"REGION"`

	// Bucket receiving the avatar objects.
	// Env: STORAGE_S3_BUCKET
	Bucket string `env:"BUCKET"`

	// AccessKeyID and SecretAccessKey are static credentials. When empty the
	// default AWS credential chain is used.
	// Env: STORAGE_S3_ACCESS_KEY_ID, STORAGE_S3_SECRET_ACCESS_KEY
	AccessKeyID     string `env:"ACCESS_KEY_ID"`
	SecretAccessKey string `env:"SECRET_ACCESS_KEY"`

	// PublicURL is the base of the URLs saved on users. Defaults to
	// "<Endpoint>/<Bucket>" when empty.
	// Env: STORAGE_S3_PUBLIC_URL
	PublicURL string `env:"PUBLIC_URL"`
}

// Mail holds SMTP settings. Mail delivery is disabled when Host is empty.
type Mail struct {
	// Env: MAIL_HOST
	Host string `env:"HOST"`
	// Env: MAIL_PORT
	Port int `env:"PORT"`
	// Env: MAIL_USERNAME
	Username string `env:"USERNAME"`
	// Env: MAIL_PASSWORD
	Password string `env:"PASSWORD"`
	// From is the sender address of outgoing mail.
	// Env: MAIL_FROM
	From string `env:"FROM"`
	// FromName is the sender display name.
	// Env: MAIL_FROM_NAME
	FromName string `env:"FROM_NAME"`
}

// RateLimit holds the fixed-window limiter settings. The limiter is disabled
// when RedisAddr is empty.
type RateLimit struct {
	// Env: RATE_LIMIT_REDIS_ADDR
	RedisAddr string `env:"REDIS_ADDR"`
	// Env: RATE_LIMIT_REDIS_PASSWORD
	RedisPassword string `env:"REDIS_PASSWORD"`
	// Env: RATE_LIMIT_REDIS_DB
	RedisDB int `env:"REDIS_DB"`
	// Requests is the number of requests allowed per Window.
	// Env: RATE_LIMIT_REQUESTS
	Requests int `env:"REQUESTS"`
	// Window is the length of a rate limiting window.
	// Env: RATE_LIMIT_WINDOW
	Window time.Duration `env:"WINDOW"`
}

// Server holds network and timeout settings for the HTTP server.
type Server struct {
	// HTTPAddress is the TCP address the server listens on ("host:port").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds the handling time of a single request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Workers holds configuration of background workers.
type Workers struct {
	// MailQueueSize is the capacity of the confirmation mail queue.
	// Env: WORKERS_MAIL_QUEUE_SIZE
	MailQueueSize int `env:"MAIL_QUEUE_SIZE"`

	// MailWorkers is the number of goroutines draining the mail queue.
	// Env: WORKERS_MAIL_WORKERS
	MailWorkers int `env:"MAIL_WORKERS"`

	// MailSendTimeout bounds the delivery of a single email.
	// Env: WORKERS_MAIL_SEND_TIMEOUT
	MailSendTimeout time.Duration `env:"MAIL_SEND_TIMEOUT"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from environment variables, command-line flags, the optional
// JSON file and defaults, in that priority order.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags(os.Args[1:]).
		withJSON().
		withDefaults().
		build()
}
