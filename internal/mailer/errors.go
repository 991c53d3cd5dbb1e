// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package mailer

import "errors"

var (
	ErrEmptyRecipient  = errors.New("recipient email is empty")
	ErrEmptyLink       = errors.New("confirmation link is empty")
	ErrBuildingMessage = errors.New("error building mail message")
	ErrSendingMessage  = errors.New("error sending mail message")
)
