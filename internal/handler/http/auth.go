package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"

	"github.com/MKhiriev/go-contact-book/internal/logger"
	"github.com/MKhiriev/go-contact-book/internal/utils"
	"github.com/MKhiriev/go-contact-book/models"
	"github.com/go-chi/chi/v5"
)

const signUpDetail = "User successfully created. Check your email for confirmation."

func (h *Handler) signUp(w http.ResponseWriter, r *http.Request) {
	var req models.SignUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, fmt.Errorf("%w: %w", errInvalidJSON, err), "sign up body decoding failed")
		return
	}

	user, err := h.services.AuthService.SignUp(r.Context(), req)
	if err != nil {
		writeError(w, r, err, "sign up failed")
		return
	}

	logger.FromRequest(r).Info().Int64("user_id", user.UserID).Msg("user signed up")
	utils.WriteJSON(w, models.SignUpResponse{User: user, Detail: signUpDetail}, http.StatusCreated)
}

// login accepts the credentials either as JSON {"email", "password"} or as an
// OAuth2 password form with "username" and "password" fields.
func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	credentials, err := readCredentials(r)
	if err != nil {
		writeError(w, r, err, "login body decoding failed")
		return
	}

	pair, user, err := h.services.AuthService.Login(r.Context(), credentials)
	if err != nil {
		writeError(w, r, err, "login failed")
		return
	}

	logger.FromRequest(r).Info().Int64("user_id", user.UserID).Msg("user logged in")
	utils.WriteJSON(w, pair, http.StatusOK)
}

func readCredentials(r *http.Request) (models.Credentials, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	switch mediaType {
	case "application/x-www-form-urlencoded", "multipart/form-data":
		if err := r.ParseMultipartForm(1 << 20); err != nil && !errors.Is(err, http.ErrNotMultipart) {
			return models.Credentials{}, fmt.Errorf("%w: %w", errInvalidForm, err)
		}
		return models.Credentials{
			Email:    r.PostFormValue("username"),
			Password: r.PostFormValue("password"),
		}, nil
	default:
		var credentials models.Credentials
		if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil {
			return models.Credentials{}, fmt.Errorf("%w: %w", errInvalidJSON, err)
		}
		return credentials, nil
	}
}

// refreshToken exchanges the refresh token presented as a bearer token for a
// new token pair.
func (h *Handler) refreshToken(w http.ResponseWriter, r *http.Request) {
	token, err := getTokenFromAuthHeader(r.Header.Get("Authorization"))
	if err != nil {
		writeError(w, r, errNoUserInContext, err.Error())
		return
	}

	pair, err := h.services.AuthService.Refresh(r.Context(), token)
	if err != nil {
		writeError(w, r, err, "token refresh failed")
		return
	}

	utils.WriteJSON(w, pair, http.StatusOK)
}

func (h *Handler) confirmEmail(w http.ResponseWriter, r *http.Request) {
	status, err := h.services.AuthService.ConfirmEmail(r.Context(), chi.URLParam(r, "token"))
	if err != nil {
		writeError(w, r, err, "email confirmation failed")
		return
	}

	utils.WriteJSON(w, models.MessageResponse{Message: status.Message()}, http.StatusOK)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request, user models.User) {
	if err := h.services.AuthService.Logout(r.Context(), user); err != nil {
		writeError(w, r, err, "logout failed")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
