// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/MKhiriev/go-contact-book/internal/crypto"
	"github.com/MKhiriev/go-contact-book/internal/service"
	"github.com/MKhiriev/go-contact-book/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(h *Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.Init().ServeHTTP(rec, req)
	return rec
}

// ─────────────────────────────────────────────
// signUp
// ─────────────────────────────────────────────

func TestSignUp(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
		wantDetail string
	}{
		{name: "created", body: `{"name":"Ann","email":"ann@x.com","password":"pw1"}`, wantStatus: http.StatusCreated},
		{name: "invalid json", body: `{"name":`, wantStatus: http.StatusBadRequest, wantDetail: "Invalid JSON was passed"},
		{name: "conflict", body: `{"name":"Ann","email":"ann@x.com","password":"pw1"}`, err: service.ErrEmailAlreadyRegistered, wantStatus: http.StatusConflict, wantDetail: "Account already exists"},
		{name: "validation", body: `{"email":"x"}`, err: fmt.Errorf("%w: email: must be a valid email address", service.ErrInvalidDataProvided), wantStatus: http.StatusBadRequest, wantDetail: "Invalid data provided"},
		{name: "unexpected", body: `{}`, err: errors.New("boom"), wantStatus: http.StatusInternalServerError, wantDetail: "Internal Server Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(&service.Services{AuthService: &fakeAuthService{
				signUpFn: func(_ context.Context, req models.SignUpRequest) (models.User, error) {
					if tt.err != nil {
						return models.User{}, tt.err
					}
					return models.User{UserID: 1, Name: req.Name, Email: req.Email}, nil
				},
			}})

			rec := serve(h, httptest.NewRequest(http.MethodPost, "/api/auth/signup", strings.NewReader(tt.body)))
			require.Equal(t, tt.wantStatus, rec.Code)

			if tt.wantDetail != "" {
				assert.JSONEq(t, fmt.Sprintf(`{"detail":%q}`, tt.wantDetail), rec.Body.String())
				return
			}

			var resp models.SignUpResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, "ann@x.com", resp.User.Email)
			assert.Equal(t, signUpDetail, resp.Detail)
			assert.NotContains(t, rec.Body.String(), "password")
		})
	}
}

// ─────────────────────────────────────────────
// login
// ─────────────────────────────────────────────

func TestLogin_JSONAndForm(t *testing.T) {
	var got models.Credentials
	h := newTestHandler(&service.Services{AuthService: &fakeAuthService{
		loginFn: func(_ context.Context, c models.Credentials) (models.TokenPair, models.User, error) {
			got = c
			return models.NewTokenPair("a", "r"), testUser, nil
		},
	}})

	rec := serve(h, httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"email":"ann@x.com","password":"pw1"}`)))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"access_token":"a","refresh_token":"r","token_type":"bearer"}`, rec.Body.String())
	assert.Equal(t, models.Credentials{Email: "ann@x.com", Password: "pw1"}, got)

	form := url.Values{"username": {"bob@x.com"}, "password": {"pw2"}}
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec = serve(h, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.Credentials{Email: "bob@x.com", Password: "pw2"}, got)
}

func TestLogin_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantDetail string
	}{
		{name: "invalid credentials", err: service.ErrInvalidCredentials, wantStatus: http.StatusUnauthorized, wantDetail: "Incorrect email or password"},
		{name: "not confirmed", err: service.ErrEmailNotConfirmed, wantStatus: http.StatusUnauthorized, wantDetail: "Email not confirmed"},
		{name: "invalid data", err: service.ErrInvalidDataProvided, wantStatus: http.StatusBadRequest, wantDetail: "Invalid data provided"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(&service.Services{AuthService: &fakeAuthService{
				loginFn: func(context.Context, models.Credentials) (models.TokenPair, models.User, error) {
					return models.TokenPair{}, models.User{}, tt.err
				},
			}})

			rec := serve(h, httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"email":"ann@x.com","password":"pw1"}`)))
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.JSONEq(t, fmt.Sprintf(`{"detail":%q}`, tt.wantDetail), rec.Body.String())
		})
	}
}

// ─────────────────────────────────────────────
// refreshToken
// ─────────────────────────────────────────────

func TestRefreshToken(t *testing.T) {
	var presented string
	h := newTestHandler(&service.Services{AuthService: &fakeAuthService{
		refreshFn: func(_ context.Context, token string) (models.TokenPair, error) {
			presented = token
			if token == "old" {
				return models.NewTokenPair("a2", "r2"), nil
			}
			return models.TokenPair{}, fmt.Errorf("%w: %w", service.ErrUnauthenticated, crypto.ErrTokenWrongPurpose)
		},
	}})

	req := httptest.NewRequest(http.MethodGet, "/api/auth/refresh_token", nil)
	req.Header.Set("Authorization", "Bearer old")
	rec := serve(h, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "old", presented)
	assert.Contains(t, rec.Body.String(), `"refresh_token":"r2"`)

	req = httptest.NewRequest(http.MethodGet, "/api/auth/refresh_token", nil)
	req.Header.Set("Authorization", "Bearer access-token")
	rec = serve(h, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = serve(h, httptest.NewRequest(http.MethodGet, "/api/auth/refresh_token", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// ─────────────────────────────────────────────
// confirmEmail
// ─────────────────────────────────────────────

func TestConfirmEmail(t *testing.T) {
	tests := []struct {
		name       string
		status     models.ConfirmationStatus
		err        error
		wantStatus int
		wantBody   string
	}{
		{name: "confirmed", status: models.EmailConfirmed, wantStatus: http.StatusOK, wantBody: `{"message":"Email confirmed"}`},
		{name: "already confirmed", status: models.EmailAlreadyConfirmed, wantStatus: http.StatusOK, wantBody: `{"message":"Your email is already confirmed"}`},
		{name: "bad token", err: fmt.Errorf("%w: %w", service.ErrUnauthenticated, crypto.ErrTokenExpired), wantStatus: http.StatusUnauthorized, wantBody: `{"detail":"Could not validate credentials"}`},
		{name: "unknown user", err: service.ErrUserNotFound, wantStatus: http.StatusNotFound, wantBody: `{"detail":"Verification error"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotToken string
			h := newTestHandler(&service.Services{AuthService: &fakeAuthService{
				confirmFn: func(_ context.Context, token string) (models.ConfirmationStatus, error) {
					gotToken = token
					return tt.status, tt.err
				},
			}})

			rec := serve(h, httptest.NewRequest(http.MethodGet, "/api/auth/confirmed_email/abc.def.ghi", nil))
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
			assert.Equal(t, "abc.def.ghi", gotToken)
		})
	}
}

// ─────────────────────────────────────────────
// logout
// ─────────────────────────────────────────────

func TestLogout(t *testing.T) {
	var loggedOut models.User
	h := newTestHandler(&service.Services{AuthService: &fakeAuthService{
		logoutFn: func(_ context.Context, user models.User) error {
			loggedOut = user
			return nil
		},
	}})

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer valid")
	rec := serve(h, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, testUser.UserID, loggedOut.UserID)
}
