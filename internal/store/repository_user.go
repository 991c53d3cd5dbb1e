package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-contact-book/internal/logger"
	"github.com/MKhiriev/go-contact-book/models"
	"github.com/jackc/pgerrcode"
)

// userRepository is the PostgreSQL-backed implementation of [UserRepository].
// It handles account creation, lookup and the refresh token slot of the
// "users" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// CreateUser persists a new user record and returns the fully populated
// [models.User] with server-assigned fields (UserID, CreatedAt).
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrEmailAlreadyExists].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createUser, user.Name, user.Email, user.PasswordHash)

	created, err := scanUser(row)
	if err != nil {
		log.Err(err).
			Str("func", "*userRepository.CreateUser").
			Bool("retryable", r.db.retryable(err)).
			Msg("error creating user")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.User{}, ErrEmailAlreadyExists
		default:
			return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	return created, nil
}

// FindUserByEmail retrieves the user whose email equals email exactly.
//
// Returns [ErrNoUserWasFound] when there is no such user.
func (r *userRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	log := logger.FromContext(ctx)

	found, err := scanUser(r.db.QueryRowContext(ctx, findUserByEmail, email))
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrNoUserWasFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "*userRepository.FindUserByEmail").
			Bool("retryable", r.db.retryable(err)).
			Msg("error finding user by email")
		return models.User{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return found, nil
}

// SaveUser writes the mutable profile fields of user and returns the stored
// record.
func (r *userRepository) SaveUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	saved, err := scanUser(r.db.QueryRowContext(ctx, saveUser, user.UserID, user.Name, user.Avatar))
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrNoUserWasFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "*userRepository.SaveUser").
			Int64("user_id", user.UserID).
			Msg("error saving user")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return saved, nil
}

// SetRefreshToken overwrites the refresh token slot of the user. Passing a
// nil token clears it.
func (r *userRepository) SetRefreshToken(ctx context.Context, userID int64, token *string) error {
	log := logger.FromContext(ctx)

	res, err := r.db.ExecContext(ctx, setRefreshToken, userID, token)
	if err != nil {
		log.Err(err).
			Str("func", "*userRepository.SetRefreshToken").
			Int64("user_id", userID).
			Bool("retryable", r.db.retryable(err)).
			Msg("error setting refresh token")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrNoUserWasFound
	}

	return nil
}

// RotateRefreshToken swaps presented for next when presented is the token
// currently stored for the user.
func (r *userRepository) RotateRefreshToken(ctx context.Context, userID int64, presented, next string) (bool, error) {
	log := logger.FromContext(ctx)

	res, err := r.db.ExecContext(ctx, rotateRefreshToken, userID, presented, next)
	if err != nil {
		log.Err(err).
			Str("func", "*userRepository.RotateRefreshToken").
			Int64("user_id", userID).
			Bool("retryable", r.db.retryable(err)).
			Msg("error rotating refresh token")
		return false, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return affected == 1, nil
}

// MarkEmailConfirmed confirms the account with the given email. It reports
// false without error when there was nothing to change.
func (r *userRepository) MarkEmailConfirmed(ctx context.Context, email string) (bool, error) {
	log := logger.FromContext(ctx)

	res, err := r.db.ExecContext(ctx, markEmailConfirmed, email)
	if err != nil {
		log.Err(err).
			Str("func", "*userRepository.MarkEmailConfirmed").
			Bool("retryable", r.db.retryable(err)).
			Msg("error confirming email")
		return false, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return affected > 0, nil
}

// scanUser reads a row produced by a query returning userColumns.
func scanUser(row *sql.Row) (models.User, error) {
	var (
		user         models.User
		refreshToken sql.NullString
		avatar       sql.NullString
	)

	err := row.Scan(
		&user.UserID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&refreshToken,
		&user.EmailConfirmed,
		&avatar,
		&user.CreatedAt,
	)
	if err != nil {
		return models.User{}, err
	}

	if refreshToken.Valid {
		user.RefreshToken = &refreshToken.String
	}
	if avatar.Valid {
		user.Avatar = &avatar.String
	}

	return user, nil
}
