package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-contact-book/internal/config"
	"github.com/MKhiriev/go-contact-book/internal/crypto"
	"github.com/MKhiriev/go-contact-book/internal/logger"
	"github.com/MKhiriev/go-contact-book/internal/store"
	"github.com/MKhiriev/go-contact-book/internal/validators"
	"github.com/MKhiriev/go-contact-book/models"
)

// confirmEmailPath is the route serving confirmation links; the token is
// appended as the last path segment.
const confirmEmailPath = "/api/auth/confirmed_email/"

// authService is the concrete implementation of AuthService.
//
// It combines a UserRepository for persistence, a PasswordHasher for
// credentials and a TokenCodec for the three token purposes. Confirmation
// emails are handed to a ConfirmationDispatcher and never awaited.
type authService struct {
	// userRepository stores users and their single refresh token slot.
	userRepository store.UserRepository

	hasher crypto.PasswordHasher
	codec  crypto.TokenCodec

	// validator checks sign-up requests and credentials before any lookup.
	validator validators.Validator

	// dispatcher enqueues confirmation emails.
	dispatcher ConfirmationDispatcher

	// baseURL is the externally visible root used to build confirmation links.
	baseURL string

	logger *logger.Logger
}

// NewAuthService constructs a new AuthService.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(
	userRepository store.UserRepository,
	hasher crypto.PasswordHasher,
	codec crypto.TokenCodec,
	dispatcher ConfirmationDispatcher,
	cfg config.App,
	logger *logger.Logger,
) AuthService {
	return &authService{
		userRepository: userRepository,
		hasher:         hasher,
		codec:          codec,
		validator:      validators.NewUserValidator(),
		dispatcher:     dispatcher,
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		logger:         logger,
	}
}

// SignUp registers a new, unconfirmed account and queues its confirmation
// email.
//
// Returns the persisted user without its password hash or:
//   - ErrInvalidDataProvided if the request fails validation.
//   - ErrEmailAlreadyRegistered if the email is taken. This is detected both
//     by a lookup before insertion and by the unique constraint on insert.
//
// A failure to issue the confirmation token or to enqueue the email is only
// logged: the account exists either way.
func (a *authService) SignUp(ctx context.Context, req models.SignUpRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, req); err != nil {
		log.Err(err).Str("email", req.Email).Msg("invalid sign up data provided")
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	_, err := a.userRepository.FindUserByEmail(ctx, req.Email)
	switch {
	case err == nil:
		log.Error().Str("email", req.Email).Msg("email is already registered")
		return models.User{}, ErrEmailAlreadyRegistered
	case !errors.Is(err, store.ErrNoUserWasFound):
		log.Err(err).Str("email", req.Email).Msg("user search by email failed")
		return models.User{}, fmt.Errorf("user search by email failed: %w", err)
	}

	passwordHash, err := a.hasher.Hash(req.Password)
	if err != nil {
		log.Err(err).Msg("password hashing failed")
		return models.User{}, fmt.Errorf("password hashing failed: %w", err)
	}

	user, err := a.userRepository.CreateUser(ctx, models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: passwordHash,
	})
	if errors.Is(err, store.ErrEmailAlreadyExists) {
		log.Err(err).Str("email", req.Email).Msg("email was registered concurrently")
		return models.User{}, ErrEmailAlreadyRegistered
	}
	if err != nil {
		log.Err(err).Str("email", req.Email).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	a.sendConfirmation(ctx, user)

	return sanitizeUser(user), nil
}

// sendConfirmation issues an email-confirm token for user and queues the
// email carrying the confirmation link.
func (a *authService) sendConfirmation(ctx context.Context, user models.User) {
	log := logger.FromContext(ctx)

	token, err := a.codec.Issue(user.Email, models.PurposeEmailConfirm)
	if err != nil {
		log.Err(err).Int64("user_id", user.UserID).Msg("failed to issue email confirmation token")
		return
	}

	email := models.ConfirmationEmail{
		ToEmail: user.Email,
		ToName:  user.Name,
		Link:    a.baseURL + confirmEmailPath + token,
	}
	if err = a.dispatcher.Dispatch(ctx, email); err != nil {
		log.Err(err).Int64("user_id", user.UserID).Msg("failed to dispatch confirmation email")
	}
}

// Login authenticates a confirmed user and starts a new session.
//
// Unknown email and wrong password both yield ErrInvalidCredentials. An
// unconfirmed account yields ErrEmailNotConfirmed before the password is
// checked. On success the new refresh token overwrites the stored one.
func (a *authService) Login(ctx context.Context, credentials models.Credentials) (models.TokenPair, models.User, error) {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, credentials); err != nil {
		log.Err(err).Msg("invalid credentials provided")
		return models.TokenPair{}, models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	user, err := a.userRepository.FindUserByEmail(ctx, credentials.Email)
	if errors.Is(err, store.ErrNoUserWasFound) {
		log.Err(err).Str("email", credentials.Email).Str("cause", "unknown_email").Msg("login attempt for unknown email")
		return models.TokenPair{}, models.User{}, ErrInvalidCredentials
	}
	if err != nil {
		log.Err(err).Str("email", credentials.Email).Msg("user search by email failed")
		return models.TokenPair{}, models.User{}, fmt.Errorf("user search by email failed: %w", err)
	}

	if !user.EmailConfirmed {
		log.Error().Int64("user_id", user.UserID).Str("cause", "not_confirmed").Msg("login attempt with unconfirmed email")
		return models.TokenPair{}, models.User{}, ErrEmailNotConfirmed
	}

	if !a.hasher.Verify(credentials.Password, user.PasswordHash) {
		log.Error().Int64("user_id", user.UserID).Str("cause", "wrong_password").Msg("wrong password")
		return models.TokenPair{}, models.User{}, ErrInvalidCredentials
	}

	pair, err := a.issuePair(user.Email)
	if err != nil {
		log.Err(err).Int64("user_id", user.UserID).Msg("token pair creation failed")
		return models.TokenPair{}, models.User{}, err
	}

	if err = a.userRepository.SetRefreshToken(ctx, user.UserID, &pair.RefreshToken); err != nil {
		log.Err(err).Int64("user_id", user.UserID).Msg("saving refresh token failed")
		return models.TokenPair{}, models.User{}, fmt.Errorf("saving refresh token failed: %w", err)
	}
	user.RefreshToken = &pair.RefreshToken

	return pair, sanitizeUser(user), nil
}

// Refresh exchanges a refresh token for a new token pair.
//
// The stored token is swapped for the new one only if it still equals the
// presented token. A mismatch means the presented token was already rotated
// or revoked, which is treated as reuse: the stored slot is cleared and the
// call fails with ErrUnauthenticated, ending every session of the user.
func (a *authService) Refresh(ctx context.Context, refreshToken string) (models.TokenPair, error) {
	log := logger.FromContext(ctx)

	email, err := a.codec.Decode(refreshToken, models.PurposeRefresh)
	if err != nil {
		log.Err(err).Str("token_error", tokenErrorKind(err)).Msg("refresh token rejected")
		return models.TokenPair{}, fmt.Errorf("%w: %w", ErrUnauthenticated, err)
	}

	user, err := a.userRepository.FindUserByEmail(ctx, email)
	if errors.Is(err, store.ErrNoUserWasFound) {
		log.Err(err).Str("email", email).Msg("refresh token subject does not exist")
		return models.TokenPair{}, fmt.Errorf("%w: %w", ErrUnauthenticated, err)
	}
	if err != nil {
		log.Err(err).Str("email", email).Msg("user search by email failed")
		return models.TokenPair{}, fmt.Errorf("user search by email failed: %w", err)
	}

	pair, err := a.issuePair(user.Email)
	if err != nil {
		log.Err(err).Int64("user_id", user.UserID).Msg("token pair creation failed")
		return models.TokenPair{}, err
	}

	rotated, err := a.userRepository.RotateRefreshToken(ctx, user.UserID, refreshToken, pair.RefreshToken)
	if err != nil {
		log.Err(err).Int64("user_id", user.UserID).Msg("refresh token rotation failed")
		return models.TokenPair{}, fmt.Errorf("refresh token rotation failed: %w", err)
	}

	if !rotated {
		log.Warn().Int64("user_id", user.UserID).Msg("refresh token mismatch, revoking stored token")
		if err = a.userRepository.SetRefreshToken(ctx, user.UserID, nil); err != nil {
			log.Err(err).Int64("user_id", user.UserID).Msg("revoking refresh token failed")
		}
		return models.TokenPair{}, fmt.Errorf("%w: %w", ErrUnauthenticated, ErrRefreshTokenMismatch)
	}

	return pair, nil
}

// ConfirmEmail marks the account named by an email-confirm token as
// confirmed. Confirming twice is not an error and changes nothing.
func (a *authService) ConfirmEmail(ctx context.Context, token string) (models.ConfirmationStatus, error) {
	log := logger.FromContext(ctx)

	email, err := a.codec.Decode(token, models.PurposeEmailConfirm)
	if err != nil {
		log.Err(err).Str("token_error", tokenErrorKind(err)).Msg("email confirmation token rejected")
		return 0, fmt.Errorf("%w: %w", ErrUnauthenticated, err)
	}

	user, err := a.userRepository.FindUserByEmail(ctx, email)
	if errors.Is(err, store.ErrNoUserWasFound) {
		log.Err(err).Str("email", email).Msg("confirmation for unknown user")
		return 0, ErrUserNotFound
	}
	if err != nil {
		log.Err(err).Str("email", email).Msg("user search by email failed")
		return 0, fmt.Errorf("user search by email failed: %w", err)
	}

	if user.EmailConfirmed {
		return models.EmailAlreadyConfirmed, nil
	}

	changed, err := a.userRepository.MarkEmailConfirmed(ctx, email)
	if err != nil {
		log.Err(err).Int64("user_id", user.UserID).Msg("email confirmation failed")
		return 0, fmt.Errorf("email confirmation failed: %w", err)
	}
	if !changed {
		return models.EmailAlreadyConfirmed, nil
	}

	log.Info().Int64("user_id", user.UserID).Msg("email confirmed")
	return models.EmailConfirmed, nil
}

// Logout clears the refresh token slot of user. Access tokens already handed
// out stay valid until they expire.
func (a *authService) Logout(ctx context.Context, user models.User) error {
	if err := a.userRepository.SetRefreshToken(ctx, user.UserID, nil); err != nil {
		logger.FromContext(ctx).Err(err).Int64("user_id", user.UserID).Msg("logout failed")
		return fmt.Errorf("logout failed: %w", err)
	}
	return nil
}

func (a *authService) issuePair(email string) (models.TokenPair, error) {
	access, err := a.codec.Issue(email, models.PurposeAccess)
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}
	refresh, err := a.codec.Issue(email, models.PurposeRefresh)
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}
	return models.NewTokenPair(access, refresh), nil
}

// sanitizeUser strips credential material before a user leaves the service.
func sanitizeUser(user models.User) models.User {
	user.PasswordHash = ""
	user.RefreshToken = nil
	return user
}

// tokenErrorKind names the token failure wrapped in err for log entries.
func tokenErrorKind(err error) string {
	switch {
	case errors.Is(err, crypto.ErrTokenMalformed):
		return "malformed"
	case errors.Is(err, crypto.ErrTokenBadSignature):
		return "bad_signature"
	case errors.Is(err, crypto.ErrTokenExpired):
		return "expired"
	case errors.Is(err, crypto.ErrTokenWrongPurpose):
		return "wrong_purpose"
	default:
		return "unknown"
	}
}
