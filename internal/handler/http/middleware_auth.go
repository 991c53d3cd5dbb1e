package http

import (
	"net/http"
	"strings"

	"github.com/MKhiriev/go-contact-book/internal/utils"
	"github.com/MKhiriev/go-contact-book/models"
)

// authedHandlerFunc is a handler of a protected route. It receives the user
// resolved by the auth middleware as an explicit argument.
type authedHandlerFunc func(w http.ResponseWriter, r *http.Request, user models.User)

// auth is an HTTP middleware that resolves the caller's identity from a
// bearer access token.
//
// On success the user is stored in the request context under
// [utils.UserCtxKey]. Any failure to extract the token or to resolve it is
// answered with 401 and a single client message; the log entry carries the
// precise cause. Storage failures are answered with 500.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString, err := getTokenFromAuthHeader(r.Header.Get("Authorization"))
		if err != nil {
			writeError(w, r, errNoUserInContext, err.Error())
			return
		}

		user, err := h.services.IdentityService.ResolveIdentity(r.Context(), tokenString)
		if err != nil {
			writeError(w, r, err, "identity resolution failed")
			return
		}

		next.ServeHTTP(w, r.WithContext(utils.WithUser(r.Context(), user)))
	})
}

// authed adapts an authedHandlerFunc to a plain handler. It must only be used
// behind the auth middleware.
func (h *Handler) authed(fn authedHandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := utils.GetUserFromContext(r.Context())
		if !ok {
			writeError(w, r, errNoUserInContext, "protected route reached without identity")
			return
		}
		fn(w, r, user)
	}
}

// getTokenFromAuthHeader extracts the bearer token string from a raw
// "Authorization" HTTP header value.
//
// The header is expected to follow the standard format:
//
//	Authorization: Bearer <token>
//
// The scheme is matched case-insensitively. It returns the following
// sentinel errors:
//   - [ErrEmptyAuthorizationHeader] if the header is absent.
//   - [ErrInvalidAuthorizationHeader] if the scheme is not Bearer or the
//     token part is missing entirely.
//   - [ErrEmptyToken] if the token part exists but is blank.
func getTokenFromAuthHeader(authHeader string) (string, error) {
	if authHeader == "" {
		return "", ErrEmptyAuthorizationHeader
	}

	scheme, token, found := strings.Cut(authHeader, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", ErrInvalidAuthorizationHeader
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", ErrEmptyToken
	}

	return token, nil
}
