package validators

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation"
)

// Field name constants used to restrict validation to a subset of fields
// (field-level scoping). They match the JSON names of the validated fields.
const (
	FieldName     = "name"
	FieldSoname   = "soname"
	FieldEmail    = "email"
	FieldPassword = "password"
	FieldPhone    = "phone"
	FieldBirthday = "birthday"
	FieldInfo     = "info"
)

// Column limits shared with the database schema.
const (
	maxNameLength     = 50
	maxEmailLength    = 100
	maxPasswordLength = 72 // bcrypt ignores everything past 72 bytes
	maxPhoneLength    = 30
	maxInfoLength     = 250
)

// selectRules returns the rules named by fields, or all of them when no
// field is named.
func selectRules(rules map[string]*validation.FieldRules, fields ...string) ([]*validation.FieldRules, error) {
	if len(fields) == 0 {
		selected := make([]*validation.FieldRules, 0, len(rules))
		for _, rule := range rules {
			selected = append(selected, rule)
		}
		return selected, nil
	}

	selected := make([]*validation.FieldRules, 0, len(fields))
	for _, field := range fields {
		rule, ok := rules[field]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownField, field)
		}
		selected = append(selected, rule)
	}
	return selected, nil
}
