// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package http implements the HTTP transport layer of the application.
//
// It exposes route wiring, request handlers, and middleware used by the REST
// API. Cross-cutting concerns such as identity resolution, request tracing,
// access logging, response compression and rate limiting are handled in this
// package before requests are delegated to the service layer.
package http
