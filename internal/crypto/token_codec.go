package crypto

import (
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-contact-book/internal/config"
	"github.com/MKhiriev/go-contact-book/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// jwtCodec is the HMAC-SHA256 JWT implementation of [TokenCodec].
type jwtCodec struct {
	signKey []byte
	issuer  string
	ttls    map[models.TokenPurpose]time.Duration
	now     func() time.Time
}

// CodecOption customises a [TokenCodec] built by [NewTokenCodec].
type CodecOption func(*jwtCodec)

// WithClock replaces the wall clock used to stamp and validate tokens.
func WithClock(now func() time.Time) CodecOption {
	return func(c *jwtCodec) {
		c.now = now
	}
}

// NewTokenCodec builds a [TokenCodec] from the auth configuration.
func NewTokenCodec(cfg config.Auth, opts ...CodecOption) (TokenCodec, error) {
	if cfg.TokenSignKey == "" {
		return nil, ErrInvalidSignKey
	}

	c := &jwtCodec{
		signKey: []byte(cfg.TokenSignKey),
		issuer:  cfg.TokenIssuer,
		ttls: map[models.TokenPurpose]time.Duration{
			models.PurposeAccess:       cfg.AccessTokenTTL,
			models.PurposeRefresh:      cfg.RefreshTokenTTL,
			models.PurposeEmailConfirm: cfg.ConfirmTokenTTL,
		},
		now: time.Now,
	}
	for purpose, ttl := range c.ttls {
		if ttl <= 0 {
			return nil, fmt.Errorf("%w: %s", ErrInvalidTokenTTL, purpose)
		}
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

func (c *jwtCodec) Issue(subject string, purpose models.TokenPurpose) (string, error) {
	if subject == "" {
		return "", ErrEmptySubject
	}
	ttl, ok := c.ttls[purpose]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownPurpose, purpose)
	}

	now := c.now()
	claims := &models.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    c.issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.NewString(),
		},
		Purpose: purpose,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.signKey)
	if err != nil {
		return "", fmt.Errorf("error signing %s token: %w", purpose, err)
	}

	return signed, nil
}

func (c *jwtCodec) Decode(token string, expectedPurpose models.TokenPurpose) (string, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(c.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)

	claims := &models.TokenClaims{}
	_, err := parser.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return c.signKey, nil
	})
	if err != nil {
		return "", classifyJWTError(err)
	}

	if claims.Subject == "" {
		return "", fmt.Errorf("%w: %w", ErrTokenMalformed, ErrEmptySubject)
	}
	if claims.Purpose != expectedPurpose {
		return "", fmt.Errorf("%w: got %q, want %q", ErrTokenWrongPurpose, claims.Purpose, expectedPurpose)
	}

	return claims.Subject, nil
}

// classifyJWTError maps a golang-jwt validation error onto the codec's error
// kinds. Anything that is neither an expiry nor a signature failure is
// treated as malformed, including an issuer mismatch.
func classifyJWTError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w: %v", ErrTokenExpired, err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return fmt.Errorf("%w: %v", ErrTokenBadSignature, err)
	default:
		return fmt.Errorf("%w: %v", ErrTokenMalformed, err)
	}
}
