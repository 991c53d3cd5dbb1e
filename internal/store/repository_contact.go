package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-contact-book/internal/logger"
	"github.com/MKhiriev/go-contact-book/models"
)

// contactRepository is the PostgreSQL-backed implementation of
// [ContactRepository]. Queries are built with squirrel, see sql_queries.go.
type contactRepository struct {
	*DB
	logger *logger.Logger
}

// NewContactRepository constructs a [ContactRepository] backed by db.
func NewContactRepository(db *DB, logger *logger.Logger) ContactRepository {
	logger.Debug().Msg("creating contact repository")
	return &contactRepository{
		DB:     db,
		logger: logger,
	}
}

// List returns the contacts matching filter.
func (c *contactRepository) List(ctx context.Context, filter models.ContactFilter) ([]models.Contact, error) {
	query, args, err := buildListContactsQuery(filter)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "contactRepository.List").
			Int64("user_id", filter.UserID).
			Msg("failed to create query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return c.queryContacts(ctx, "contactRepository.List", filter.UserID, query, args)
}

// ListAll returns every contact of the user.
func (c *contactRepository) ListAll(ctx context.Context, userID int64) ([]models.Contact, error) {
	query, args, err := buildListAllContactsQuery(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return c.queryContacts(ctx, "contactRepository.ListAll", userID, query, args)
}

// Get returns a single contact of the user or [ErrContactNotFound].
func (c *contactRepository) Get(ctx context.Context, userID, contactID int64) (models.Contact, error) {
	query, args, err := buildGetContactQuery(userID, contactID)
	if err != nil {
		return models.Contact{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return c.queryContact(ctx, "contactRepository.Get", query, args)
}

// Create inserts contact and returns it with its assigned id.
func (c *contactRepository) Create(ctx context.Context, contact models.Contact) (models.Contact, error) {
	query, args, err := buildCreateContactQuery(contact)
	if err != nil {
		return models.Contact{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return c.queryContact(ctx, "contactRepository.Create", query, args)
}

// Update replaces all fields of an existing contact of contact.UserID.
func (c *contactRepository) Update(ctx context.Context, contact models.Contact) (models.Contact, error) {
	query, args, err := buildUpdateContactQuery(contact)
	if err != nil {
		return models.Contact{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return c.queryContact(ctx, "contactRepository.Update", query, args)
}

// Delete removes a contact of the user and returns it.
func (c *contactRepository) Delete(ctx context.Context, userID, contactID int64) (models.Contact, error) {
	query, args, err := buildDeleteContactQuery(userID, contactID)
	if err != nil {
		return models.Contact{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return c.queryContact(ctx, "contactRepository.Delete", query, args)
}

func (c *contactRepository) queryContacts(ctx context.Context, funcName string, userID int64, query string, args []any) ([]models.Contact, error) {
	log := logger.FromContext(ctx)

	rows, err := c.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", funcName).
			Int64("user_id", userID).
			Bool("retryable", c.retryable(err)).
			Msg("failed to execute query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	contacts := make([]models.Contact, 0, 16)
	for rows.Next() {
		contact, scanErr := scanContact(rows)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", funcName).
				Int64("user_id", userID).
				Msg("failed to scan contact row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		contacts = append(contacts, contact)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", funcName).
			Int64("user_id", userID).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return contacts, nil
}

func (c *contactRepository) queryContact(ctx context.Context, funcName, query string, args []any) (models.Contact, error) {
	contact, err := scanContact(c.DB.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Contact{}, ErrContactNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", funcName).
			Bool("retryable", c.retryable(err)).
			Msg("failed to execute contact statement")
		return models.Contact{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return contact, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanContact(row rowScanner) (models.Contact, error) {
	var contact models.Contact
	err := row.Scan(
		&contact.ID,
		&contact.Name,
		&contact.Soname,
		&contact.Email,
		&contact.Phone,
		&contact.Birthday.Time,
		&contact.Info,
		&contact.UserID,
	)
	return contact, err
}
