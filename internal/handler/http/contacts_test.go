package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MKhiriev/go-contact-book/internal/service"
	"github.com/MKhiriev/go-contact-book/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authedRequest(method, target, body string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	req.Header.Set("Authorization", "Bearer valid")
	return req
}

func TestListContacts_QueryIsParsed(t *testing.T) {
	var got models.ContactFilter
	h := newTestHandler(&service.Services{ContactService: &fakeContactService{
		listFn: func(_ context.Context, filter models.ContactFilter) ([]models.Contact, error) {
			got = filter
			return nil, nil
		},
	}})

	rec := serve(h, authedRequest(http.MethodGet, "/api/contacts/?name=Bob&soname=Smith&email=bob@x.com&skip=10&limit=5", ""))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
	assert.Equal(t, models.ContactFilter{UserID: testUser.UserID, Name: "Bob", Soname: "Smith", Email: "bob@x.com", Skip: 10, Limit: 5}, got)
}

func TestListContacts_InvalidQuery(t *testing.T) {
	h := newTestHandler(nil)

	for _, q := range []string{"skip=-1", "limit=abc"} {
		rec := serve(h, authedRequest(http.MethodGet, "/api/contacts/?"+q, ""))
		assert.Equal(t, http.StatusBadRequest, rec.Code, q)
	}
}

func TestCreateContact_OwnerComesFromIdentity(t *testing.T) {
	var got models.Contact
	h := newTestHandler(&service.Services{ContactService: &fakeContactService{
		createFn: func(_ context.Context, c models.Contact) (models.Contact, error) {
			got = c
			c.ID = 11
			return c, nil
		},
	}})

	body := `{"id":99,"name":"Bob","soname":"Smith","email":"bob@x.com","birthday":"1990-05-17","user_id":1000}`
	rec := serve(h, authedRequest(http.MethodPost, "/api/contacts/", body))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, testUser.UserID, got.UserID)
	assert.Zero(t, got.ID)
	assert.True(t, got.Birthday.Equal(time.Date(1990, time.May, 17, 0, 0, 0, 0, time.UTC)))

	var created models.Contact
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, int64(11), created.ID)
}

func TestCreateContact_Errors(t *testing.T) {
	h := newTestHandler(&service.Services{ContactService: &fakeContactService{
		createFn: func(context.Context, models.Contact) (models.Contact, error) {
			return models.Contact{}, service.ErrInvalidDataProvided
		},
	}})

	rec := serve(h, authedRequest(http.MethodPost, "/api/contacts/", `{"birthday":"17-05-1990"}`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(h, authedRequest(http.MethodPost, "/api/contacts/", `{"name":"Bob"}`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"detail":"Invalid data provided"}`, rec.Body.String())
}

func TestGetUpdateDeleteContact(t *testing.T) {
	var (
		gotUserID    int64
		gotContactID int64
		updated      models.Contact
	)
	h := newTestHandler(&service.Services{ContactService: &fakeContactService{
		getFn: func(_ context.Context, userID, contactID int64) (models.Contact, error) {
			gotUserID, gotContactID = userID, contactID
			if contactID == 404 {
				return models.Contact{}, service.ErrContactNotFound
			}
			return models.Contact{ID: contactID, Name: "Bob"}, nil
		},
		updateFn: func(_ context.Context, c models.Contact) (models.Contact, error) {
			updated = c
			return c, nil
		},
		deleteFn: func(_ context.Context, _, contactID int64) (models.Contact, error) {
			return models.Contact{ID: contactID}, nil
		},
	}})

	rec := serve(h, authedRequest(http.MethodGet, "/api/contacts/3", ""))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, testUser.UserID, gotUserID)
	assert.Equal(t, int64(3), gotContactID)

	rec = serve(h, authedRequest(http.MethodGet, "/api/contacts/404", ""))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"detail":"Contact not found"}`, rec.Body.String())

	rec = serve(h, authedRequest(http.MethodGet, "/api/contacts/abc", ""))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(h, authedRequest(http.MethodPut, "/api/contacts/3", `{"id":8,"name":"Robert"}`))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(3), updated.ID)
	assert.Equal(t, testUser.UserID, updated.UserID)
	assert.Equal(t, "Robert", updated.Name)

	rec = serve(h, authedRequest(http.MethodDelete, "/api/contacts/3", ""))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":3`)
}

func TestUpcomingBirthdays(t *testing.T) {
	h := newTestHandler(&service.Services{ContactService: &fakeContactService{
		upcomingFn: func(_ context.Context, userID int64) ([]models.Contact, error) {
			return []models.Contact{{ID: 1, Name: "Bob", UserID: userID, Birthday: models.NewDate(1990, time.May, 17)}}, nil
		},
	}})

	rec := serve(h, authedRequest(http.MethodGet, "/api/contacts/upcoming_birthdays", ""))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"birthday":"1990-05-17"`)
	assert.NotContains(t, rec.Body.String(), "user_id")
}

func TestContacts_RateLimited(t *testing.T) {
	h := newTestHandler(nil)
	h.rateCounter = &fakeRateCounter{}
	h.rateLimit.Requests = 2
	h.rateLimit.Window = 5 * time.Second
	router := h.Init()

	codes := make([]int, 0, 3)
	for range 3 {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, authedRequest(http.MethodGet, "/api/contacts/", ""))
		codes = append(codes, rec.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	// upcoming birthdays is not rate limited
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodGet, "/api/contacts/upcoming_birthdays", ""))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestContacts_RateLimitedBeforeIdentityResolution(t *testing.T) {
	var resolved atomic.Int32
	services := &service.Services{
		IdentityService: &fakeIdentityService{
			resolveFn: func(_ context.Context, _ string) (models.User, error) {
				resolved.Add(1)
				return models.User{}, service.ErrUnauthenticated
			},
		},
		ContactService: &fakeContactService{},
	}
	h := newTestHandler(services)
	h.rateCounter = &fakeRateCounter{}
	h.rateLimit.Requests = 2
	h.rateLimit.Window = 5 * time.Second
	router := h.Init()

	codes := make([]int, 0, 10)
	for range 10 {
		req := httptest.NewRequest(http.MethodGet, "/api/contacts/", nil)
		req.Header.Set("Authorization", "Bearer forged")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	assert.Equal(t, []int{http.StatusUnauthorized, http.StatusUnauthorized}, codes[:2])
	for _, code := range codes[2:] {
		assert.Equal(t, http.StatusTooManyRequests, code)
	}
	assert.Equal(t, int32(2), resolved.Load())
}
