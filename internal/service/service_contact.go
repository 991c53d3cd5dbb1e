package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/MKhiriev/go-contact-book/internal/logger"
	"github.com/MKhiriev/go-contact-book/internal/store"
	"github.com/MKhiriev/go-contact-book/models"
)

const (
	// DefaultContactsLimit is used when a listing does not specify a limit.
	DefaultContactsLimit uint64 = 100
	// MaxContactsLimit caps the page size of a listing.
	MaxContactsLimit uint64 = 100

	// upcomingBirthdaysDays is how many days ahead UpcomingBirthdays looks.
	// Both today and the last day are included.
	upcomingBirthdaysDays = 7
)

type contactService struct {
	contactRepository store.ContactRepository
	now               func() time.Time

	logger *logger.Logger
}

func NewContactService(contactRepository store.ContactRepository, logger *logger.Logger) ContactService {
	return &contactService{
		contactRepository: contactRepository,
		now:               time.Now,
		logger:            logger,
	}
}

func (s *contactService) ListContacts(ctx context.Context, filter models.ContactFilter) ([]models.Contact, error) {
	log := logger.FromContext(ctx)

	if filter.Limit == 0 || filter.Limit > MaxContactsLimit {
		filter.Limit = DefaultContactsLimit
	}

	contacts, err := s.contactRepository.List(ctx, filter)
	if err != nil {
		log.Err(err).Any("filter", filter).Msg("listing contacts failed")
		return nil, fmt.Errorf("listing contacts failed: %w", err)
	}

	return contacts, nil
}

func (s *contactService) GetContact(ctx context.Context, userID, contactID int64) (models.Contact, error) {
	contact, err := s.contactRepository.Get(ctx, userID, contactID)
	if err != nil {
		return models.Contact{}, s.mapError(ctx, err, "getting contact failed", contactID)
	}
	return contact, nil
}

func (s *contactService) CreateContact(ctx context.Context, contact models.Contact) (models.Contact, error) {
	log := logger.FromContext(ctx)

	created, err := s.contactRepository.Create(ctx, contact)
	if err != nil {
		log.Err(err).Int64("user_id", contact.UserID).Msg("creating contact failed")
		return models.Contact{}, fmt.Errorf("creating contact failed: %w", err)
	}

	return created, nil
}

func (s *contactService) UpdateContact(ctx context.Context, contact models.Contact) (models.Contact, error) {
	updated, err := s.contactRepository.Update(ctx, contact)
	if err != nil {
		return models.Contact{}, s.mapError(ctx, err, "updating contact failed", contact.ID)
	}
	return updated, nil
}

func (s *contactService) DeleteContact(ctx context.Context, userID, contactID int64) (models.Contact, error) {
	deleted, err := s.contactRepository.Delete(ctx, userID, contactID)
	if err != nil {
		return models.Contact{}, s.mapError(ctx, err, "deleting contact failed", contactID)
	}
	return deleted, nil
}

// UpcomingBirthdays returns the contacts of userID whose next birthday falls
// between today and seven days from now, both included, ordered by that date.
func (s *contactService) UpcomingBirthdays(ctx context.Context, userID int64) ([]models.Contact, error) {
	log := logger.FromContext(ctx)

	contacts, err := s.contactRepository.ListAll(ctx, userID)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("listing contacts failed")
		return nil, fmt.Errorf("listing contacts failed: %w", err)
	}

	today := s.now().UTC()
	today = time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	until := today.AddDate(0, 0, upcomingBirthdaysDays)

	upcoming := make([]models.Contact, 0)
	for _, c := range contacts {
		if c.Birthday.IsZero() {
			continue
		}
		if next := c.Birthday.NextAnniversary(today); !next.After(until) {
			upcoming = append(upcoming, c)
		}
	}

	slices.SortStableFunc(upcoming, func(a, b models.Contact) int {
		return a.Birthday.NextAnniversary(today).Compare(b.Birthday.NextAnniversary(today))
	})

	return upcoming, nil
}

func (s *contactService) mapError(ctx context.Context, err error, msg string, contactID int64) error {
	if errors.Is(err, store.ErrContactNotFound) {
		return fmt.Errorf("%w: %w", ErrContactNotFound, err)
	}
	logger.FromContext(ctx).Err(err).Int64("contact_id", contactID).Msg(msg)
	return fmt.Errorf("%s: %w", msg, err)
}
