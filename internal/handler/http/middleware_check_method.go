// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-contact-book/internal/logger"
	"github.com/MKhiriev/go-contact-book/internal/utils"
)

// CheckHTTPMethod is registered as both the NotFound and the MethodNotAllowed
// handler of the router.
//
// Chi's default behaviour is to respond with HTTP 405 Method Not Allowed
// whenever a request path matches a registered route but the HTTP method
// is not handled. This handler answers such requests with the same JSON 404
// as unknown paths, so callers cannot tell which routes exist.
//
// Usage:
//
//	router := chi.NewRouter()
//	// ... register routes ...
//	router.NotFound(CheckHTTPMethod)
//	router.MethodNotAllowed(CheckHTTPMethod)
func CheckHTTPMethod(w http.ResponseWriter, r *http.Request) {
	logger.FromRequest(r).Debug().
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Msg("no handler for request")

	utils.WriteError(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
}
