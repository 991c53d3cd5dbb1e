package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-contact-book/internal/validators"
	"github.com/MKhiriev/go-contact-book/models"
)

// contactValidationService checks ownership and contact fields before
// delegating to the wrapped ContactService.
type contactValidationService struct {
	inner     ContactService
	validator validators.Validator
}

func NewContactValidationService() ContactServiceWrapper {
	return &contactValidationService{
		validator: validators.NewContactValidator(),
	}
}

func (v *contactValidationService) ListContacts(ctx context.Context, filter models.ContactFilter) ([]models.Contact, error) {
	if filter.UserID <= 0 {
		return nil, ErrValidationNoUserID
	}
	return v.inner.ListContacts(ctx, filter)
}

func (v *contactValidationService) GetContact(ctx context.Context, userID, contactID int64) (models.Contact, error) {
	if err := validateIDs(userID, contactID); err != nil {
		return models.Contact{}, err
	}
	return v.inner.GetContact(ctx, userID, contactID)
}

func (v *contactValidationService) CreateContact(ctx context.Context, contact models.Contact) (models.Contact, error) {
	if contact.UserID <= 0 {
		return models.Contact{}, ErrValidationNoUserID
	}
	if err := v.validator.Validate(ctx, contact); err != nil {
		return models.Contact{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	return v.inner.CreateContact(ctx, contact)
}

func (v *contactValidationService) UpdateContact(ctx context.Context, contact models.Contact) (models.Contact, error) {
	if err := validateIDs(contact.UserID, contact.ID); err != nil {
		return models.Contact{}, err
	}
	if err := v.validator.Validate(ctx, contact); err != nil {
		return models.Contact{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	return v.inner.UpdateContact(ctx, contact)
}

func (v *contactValidationService) DeleteContact(ctx context.Context, userID, contactID int64) (models.Contact, error) {
	if err := validateIDs(userID, contactID); err != nil {
		return models.Contact{}, err
	}
	return v.inner.DeleteContact(ctx, userID, contactID)
}

func (v *contactValidationService) UpcomingBirthdays(ctx context.Context, userID int64) ([]models.Contact, error) {
	if userID <= 0 {
		return nil, ErrValidationNoUserID
	}
	return v.inner.UpcomingBirthdays(ctx, userID)
}

func (v *contactValidationService) Wrap(inner ContactService) ContactService {
	v.inner = inner
	return v
}

func validateIDs(userID, contactID int64) error {
	if userID <= 0 {
		return ErrValidationNoUserID
	}
	if contactID <= 0 {
		// ids are never assigned below 1, so such a contact cannot exist
		return ErrContactNotFound
	}
	return nil
}
