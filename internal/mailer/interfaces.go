// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package mailer

import (
	"context"

	"github.com/MKhiriev/go-contact-book/models"
)

// Sender delivers a single confirmation email.
type Sender interface {
	SendConfirmation(ctx context.Context, email models.ConfirmationEmail) error
}
