// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the command-line client of the contact book.
//
// Each invocation runs one command against the server through
// [adapter.ServerAdapter]. The token pair is read from and printed to the
// environment-friendly form KEY=value, so a shell session can keep it between
// invocations.
package client
