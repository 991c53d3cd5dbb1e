// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package server runs the application's HTTP transport.
//
// It owns the listener lifecycle: startup, serving until the caller's context
// is cancelled, and graceful shutdown with a bounded drain period.
package server
