// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package mailer composes account confirmation emails and delivers them over
// SMTP.
//
// Messages are built with enmime as multipart/alternative documents carrying
// both a plain text and an HTML body. When no SMTP host is configured the
// package falls back to a sender that only logs the confirmation link, which
// keeps local development usable without a mail server.
package mailer
