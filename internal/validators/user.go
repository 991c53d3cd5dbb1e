package validators

import (
	"context"

	"github.com/MKhiriev/go-contact-book/models"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// UserValidator validates registration and login input.
type UserValidator struct{}

// NewUserValidator returns a [Validator] for [models.SignUpRequest] and
// [models.Credentials].
func NewUserValidator() Validator {
	return &UserValidator{}
}

func (v *UserValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.SignUpRequest:
		return v.validateSignUp(value, fields...)
	case *models.SignUpRequest:
		return v.validateSignUp(*value, fields...)

	case models.Credentials:
		return v.validateCredentials(value, fields...)
	case *models.Credentials:
		return v.validateCredentials(*value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *UserValidator) validateSignUp(r models.SignUpRequest, fields ...string) error {
	rules, err := selectRules(map[string]*validation.FieldRules{
		FieldName:     validation.Field(&r.Name, validation.Required, validation.Length(1, maxNameLength)),
		FieldEmail:    validation.Field(&r.Email, validation.Required, validation.Length(1, maxEmailLength), is.Email),
		FieldPassword: validation.Field(&r.Password, validation.Required, validation.Length(1, maxPasswordLength)),
	}, fields...)
	if err != nil {
		return err
	}

	return validation.ValidateStruct(&r, rules...)
}

func (v *UserValidator) validateCredentials(c models.Credentials, fields ...string) error {
	rules, err := selectRules(map[string]*validation.FieldRules{
		FieldEmail:    validation.Field(&c.Email, validation.Required),
		FieldPassword: validation.Field(&c.Password, validation.Required),
	}, fields...)
	if err != nil {
		return err
	}

	return validation.ValidateStruct(&c, rules...)
}
