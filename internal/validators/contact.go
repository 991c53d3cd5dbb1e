package validators

import (
	"context"
	"time"

	"github.com/MKhiriev/go-contact-book/models"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// ContactValidator validates contacts before they are written.
type ContactValidator struct {
	now func() time.Time
}

// NewContactValidator returns a [Validator] for [models.Contact].
func NewContactValidator() Validator {
	return &ContactValidator{now: time.Now}
}

func (v *ContactValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Contact:
		return v.validateContact(value, fields...)
	case *models.Contact:
		return v.validateContact(*value, fields...)
	default:
		return ErrUnsupportedType
	}
}

func (v *ContactValidator) validateContact(c models.Contact, fields ...string) error {
	rules, err := selectRules(map[string]*validation.FieldRules{
		FieldName:     validation.Field(&c.Name, validation.Required, validation.Length(1, maxNameLength)),
		FieldSoname:   validation.Field(&c.Soname, validation.Required, validation.Length(1, maxNameLength)),
		FieldEmail:    validation.Field(&c.Email, validation.Required, validation.Length(1, maxEmailLength), is.Email),
		FieldPhone:    validation.Field(&c.Phone, validation.Length(0, maxPhoneLength)),
		FieldBirthday: validation.Field(&c.Birthday, validation.By(v.pastDate)),
		FieldInfo:     validation.Field(&c.Info, validation.Length(0, maxInfoLength)),
	}, fields...)
	if err != nil {
		return err
	}

	return validation.ValidateStruct(&c, rules...)
}

// pastDate requires a set date strictly before today.
func (v *ContactValidator) pastDate(value any) error {
	d, _ := value.(models.Date)
	if d.IsZero() {
		return ErrBirthdayRequired
	}

	now := v.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if !d.Before(today) {
		return ErrBirthdayNotInPast
	}
	return nil
}
