// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrBirthdayRequired  = errors.New("cannot be blank")
	ErrBirthdayNotInPast = errors.New("must be a date in the past")
)
