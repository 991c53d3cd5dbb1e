package http

import (
	"context"
	"net/http"
	"time"

	"github.com/MKhiriev/go-contact-book/internal/config"
	"github.com/MKhiriev/go-contact-book/internal/logger"
	"github.com/MKhiriev/go-contact-book/internal/service"
	"github.com/MKhiriev/go-contact-book/internal/utils"
	"github.com/MKhiriev/go-contact-book/models"
)

// ─────────────────────────────────────────────
// Service fakes
// ─────────────────────────────────────────────

type fakeAuthService struct {
	signUpFn  func(ctx context.Context, req models.SignUpRequest) (models.User, error)
	loginFn   func(ctx context.Context, credentials models.Credentials) (models.TokenPair, models.User, error)
	refreshFn func(ctx context.Context, token string) (models.TokenPair, error)
	confirmFn func(ctx context.Context, token string) (models.ConfirmationStatus, error)
	logoutFn  func(ctx context.Context, user models.User) error
}

func (f *fakeAuthService) SignUp(ctx context.Context, req models.SignUpRequest) (models.User, error) {
	if f.signUpFn != nil {
		return f.signUpFn(ctx, req)
	}
	return models.User{}, nil
}

func (f *fakeAuthService) Login(ctx context.Context, credentials models.Credentials) (models.TokenPair, models.User, error) {
	if f.loginFn != nil {
		return f.loginFn(ctx, credentials)
	}
	return models.TokenPair{}, models.User{}, nil
}

func (f *fakeAuthService) Refresh(ctx context.Context, token string) (models.TokenPair, error) {
	if f.refreshFn != nil {
		return f.refreshFn(ctx, token)
	}
	return models.TokenPair{}, nil
}

func (f *fakeAuthService) ConfirmEmail(ctx context.Context, token string) (models.ConfirmationStatus, error) {
	if f.confirmFn != nil {
		return f.confirmFn(ctx, token)
	}
	return models.EmailConfirmed, nil
}

func (f *fakeAuthService) Logout(ctx context.Context, user models.User) error {
	if f.logoutFn != nil {
		return f.logoutFn(ctx, user)
	}
	return nil
}

// fakeIdentityService accepts the token "valid" as the user returned by
// userFn (or testUser) and rejects everything else.
type fakeIdentityService struct {
	resolveFn func(ctx context.Context, token string) (models.User, error)
}

var testUser = models.User{UserID: 7, Name: "Ann", Email: "ann@x.com", EmailConfirmed: true}

func (f *fakeIdentityService) ResolveIdentity(ctx context.Context, token string) (models.User, error) {
	if f.resolveFn != nil {
		return f.resolveFn(ctx, token)
	}
	if token == "valid" {
		return testUser, nil
	}
	return models.User{}, service.ErrUnauthenticated
}

type fakeContactService struct {
	listFn     func(ctx context.Context, filter models.ContactFilter) ([]models.Contact, error)
	getFn      func(ctx context.Context, userID, contactID int64) (models.Contact, error)
	createFn   func(ctx context.Context, contact models.Contact) (models.Contact, error)
	updateFn   func(ctx context.Context, contact models.Contact) (models.Contact, error)
	deleteFn   func(ctx context.Context, userID, contactID int64) (models.Contact, error)
	upcomingFn func(ctx context.Context, userID int64) ([]models.Contact, error)
}

func (f *fakeContactService) ListContacts(ctx context.Context, filter models.ContactFilter) ([]models.Contact, error) {
	if f.listFn != nil {
		return f.listFn(ctx, filter)
	}
	return nil, nil
}

func (f *fakeContactService) GetContact(ctx context.Context, userID, contactID int64) (models.Contact, error) {
	if f.getFn != nil {
		return f.getFn(ctx, userID, contactID)
	}
	return models.Contact{}, nil
}

func (f *fakeContactService) CreateContact(ctx context.Context, contact models.Contact) (models.Contact, error) {
	if f.createFn != nil {
		return f.createFn(ctx, contact)
	}
	return contact, nil
}

func (f *fakeContactService) UpdateContact(ctx context.Context, contact models.Contact) (models.Contact, error) {
	if f.updateFn != nil {
		return f.updateFn(ctx, contact)
	}
	return contact, nil
}

func (f *fakeContactService) DeleteContact(ctx context.Context, userID, contactID int64) (models.Contact, error) {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, userID, contactID)
	}
	return models.Contact{}, nil
}

func (f *fakeContactService) UpcomingBirthdays(ctx context.Context, userID int64) ([]models.Contact, error) {
	if f.upcomingFn != nil {
		return f.upcomingFn(ctx, userID)
	}
	return nil, nil
}

type fakeAvatarService struct {
	updateFn func(ctx context.Context, user models.User, avatar models.Avatar) (models.User, error)
}

func (f *fakeAvatarService) UpdateAvatar(ctx context.Context, user models.User, avatar models.Avatar) (models.User, error) {
	if f.updateFn != nil {
		return f.updateFn(ctx, user, avatar)
	}
	return user, nil
}

type mockAppInfoService struct {
	version string
}

func (m *mockAppInfoService) GetAppVersion(context.Context) string {
	return m.version
}

type fakeRateCounter struct {
	hits map[string]int64
	err  error
}

func (f *fakeRateCounter) Hit(_ context.Context, key string, _ time.Duration) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	if f.hits == nil {
		f.hits = map[string]int64{}
	}
	f.hits[key]++
	return f.hits[key], nil
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

// newTestHandler builds a Handler with fakes for every service; overrides
// replace individual services.
func newTestHandler(services *service.Services) *Handler {
	full := &service.Services{
		AuthService:     &fakeAuthService{},
		IdentityService: &fakeIdentityService{},
		ContactService:  &fakeContactService{},
		AvatarService:   &fakeAvatarService{},
		AppInfoService:  &mockAppInfoService{version: "test-version"},
	}
	if services != nil {
		if services.AuthService != nil {
			full.AuthService = services.AuthService
		}
		if services.IdentityService != nil {
			full.IdentityService = services.IdentityService
		}
		if services.ContactService != nil {
			full.ContactService = services.ContactService
		}
		if services.AvatarService != nil {
			full.AvatarService = services.AvatarService
		}
		if services.AppInfoService != nil {
			full.AppInfoService = services.AppInfoService
		}
	}

	return NewHandler(full, nil, &config.StructuredConfig{}, logger.Nop())
}

// injectNopLogger puts a nop logger into the request context.
func injectNopLogger(r *http.Request) *http.Request {
	nop := logger.Nop()
	ctx := nop.Logger.WithContext(r.Context())
	return r.WithContext(ctx)
}

// withTestUser puts testUser into the request context as the auth middleware would.
func withTestUser(r *http.Request) *http.Request {
	return injectNopLogger(r.WithContext(utils.WithUser(r.Context(), testUser)))
}
