package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-contact-book/internal/logger"
	"github.com/MKhiriev/go-contact-book/internal/service"
	"github.com/MKhiriev/go-contact-book/internal/store"
	"github.com/MKhiriev/go-contact-book/internal/utils"
)

// errorStatus maps an error kind to its status code and client message.
type errorStatus struct {
	err    error
	status int
	detail string
}

// errorStatusMap is ordered: service errors wrap store errors, so the first
// match wins.
var errorStatusMap = []errorStatus{
	{service.ErrUnauthenticated, http.StatusUnauthorized, "Could not validate credentials"},
	{service.ErrInvalidCredentials, http.StatusUnauthorized, "Incorrect email or password"},
	{service.ErrEmailNotConfirmed, http.StatusUnauthorized, "Email not confirmed"},
	{service.ErrEmailAlreadyRegistered, http.StatusConflict, "Account already exists"},
	{service.ErrUserNotFound, http.StatusNotFound, "Verification error"},
	{service.ErrContactNotFound, http.StatusNotFound, "Contact not found"},
	{service.ErrInvalidAvatar, http.StatusBadRequest, "File must be an image of at most 5 MiB"},
	{service.ErrInvalidDataProvided, http.StatusBadRequest, "Invalid data provided"},
	{service.ErrValidationNoUserID, http.StatusUnauthorized, "Could not validate credentials"},

	{errInvalidJSON, http.StatusBadRequest, "Invalid JSON was passed"},
	{errInvalidForm, http.StatusBadRequest, "Invalid form was passed"},
	{errInvalidContactID, http.StatusBadRequest, "Invalid contact id"},
	{errInvalidQuery, http.StatusBadRequest, "Invalid query parameter"},
	{errInvalidUpload, http.StatusBadRequest, "File must be an image of at most 5 MiB"},
	{errNoUserInContext, http.StatusUnauthorized, "Could not validate credentials"},

	{store.ErrEmailAlreadyExists, http.StatusConflict, "Account already exists"},
	{store.ErrContactNotFound, http.StatusNotFound, "Contact not found"},
}

// statusFromError returns the status code and the fixed client message for
// err. Unknown errors are reported as 500 without any detail of the cause.
func statusFromError(err error) (int, string) {
	for _, e := range errorStatusMap {
		if errors.Is(err, e.err) {
			return e.status, e.detail
		}
	}
	return http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)
}

// writeError logs err with the request logger and writes the mapped response.
func writeError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	status, detail := statusFromError(err)

	log := logger.FromRequest(r)
	if status >= http.StatusInternalServerError {
		log.Err(err).Int("status", status).Msg(msg)
	} else {
		log.Warn().Err(err).Int("status", status).Msg(msg)
	}

	if status == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", "Bearer")
	}
	utils.WriteError(w, detail, status)
}
