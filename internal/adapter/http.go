package adapter

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/go-contact-book/models"
	"github.com/go-resty/resty/v2"
	"github.com/golang-jwt/jwt/v5"
)

const (
	defaultTimeout = 15 * time.Second

	// refreshSkew is how long before its expiry an access token is
	// refreshed proactively.
	refreshSkew = 10 * time.Second
)

type HTTPClientConfig struct {
	// BaseURL is the server root, e.g. "http://localhost:8080". A missing
	// scheme defaults to http.
	BaseURL string
	Timeout time.Duration
}

type httpServerAdapter struct {
	client *resty.Client

	mu     sync.RWMutex
	tokens models.TokenPair

	// refreshMu serializes refreshes: presenting the same refresh token
	// twice revokes the session on the server.
	refreshMu sync.Mutex

	now func() time.Time
}

// NewHTTPServerAdapter constructs the HTTP implementation of [ServerAdapter].
func NewHTTPServerAdapter(cfg HTTPClientConfig) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid server address: %w", err)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/json")

	return &httpServerAdapter{client: client, now: time.Now}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", errors.New("empty address")
	}
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Host == "" {
		return "", fmt.Errorf("no host in %q", raw)
	}
	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpServerAdapter) SetTokens(pair models.TokenPair) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.tokens = pair
}

func (h *httpServerAdapter) Tokens() models.TokenPair {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.tokens
}

func (h *httpServerAdapter) SignUp(ctx context.Context, req models.SignUpRequest) (models.User, error) {
	var result models.SignUpResponse
	resp, err := h.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&result).
		Post("/api/auth/signup")
	if err != nil {
		return models.User{}, fmt.Errorf("signup request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	return result.User, nil
}

func (h *httpServerAdapter) ConfirmEmail(ctx context.Context, token string) (string, error) {
	var result models.MessageResponse
	resp, err := h.client.R().
		SetContext(ctx).
		SetPathParam("token", token).
		SetResult(&result).
		Get("/api/auth/confirmed_email/{token}")
	if err != nil {
		return "", fmt.Errorf("confirm email request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	return result.Message, nil
}

func (h *httpServerAdapter) Login(ctx context.Context, credentials models.Credentials) (models.TokenPair, error) {
	var pair models.TokenPair
	resp, err := h.client.R().
		SetContext(ctx).
		SetBody(credentials).
		SetResult(&pair).
		Post("/api/auth/login")
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.TokenPair{}, err
	}

	h.SetTokens(pair)
	return pair, nil
}

func (h *httpServerAdapter) Refresh(ctx context.Context) (models.TokenPair, error) {
	refresh := h.Tokens().RefreshToken
	if refresh == "" {
		return models.TokenPair{}, ErrNoRefreshToken
	}

	var pair models.TokenPair
	resp, err := h.client.R().
		SetContext(ctx).
		SetAuthToken(refresh).
		SetResult(&pair).
		Get("/api/auth/refresh_token")
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("refresh request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		if errors.Is(err, ErrUnauthorized) {
			h.SetTokens(models.TokenPair{})
		}
		return models.TokenPair{}, err
	}

	h.SetTokens(pair)
	return pair, nil
}

func (h *httpServerAdapter) Logout(ctx context.Context) error {
	_, err := h.doAuthed(ctx, func(req *resty.Request) (*resty.Response, error) {
		return req.Post("/api/auth/logout")
	})
	if err != nil {
		return fmt.Errorf("logout: %w", err)
	}

	h.SetTokens(models.TokenPair{})
	return nil
}

func (h *httpServerAdapter) Me(ctx context.Context) (models.User, error) {
	var user models.User
	_, err := h.doAuthed(ctx, func(req *resty.Request) (*resty.Response, error) {
		return req.SetResult(&user).Get("/api/users/me")
	})
	if err != nil {
		return models.User{}, fmt.Errorf("get current user: %w", err)
	}
	return user, nil
}

func (h *httpServerAdapter) ListContacts(ctx context.Context, filter models.ContactFilter) ([]models.Contact, error) {
	var contacts []models.Contact
	_, err := h.doAuthed(ctx, func(req *resty.Request) (*resty.Response, error) {
		return req.SetQueryParams(filterQuery(filter)).SetResult(&contacts).Get("/api/contacts/")
	})
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	return contacts, nil
}

func (h *httpServerAdapter) GetContact(ctx context.Context, contactID int64) (models.Contact, error) {
	var contact models.Contact
	_, err := h.doAuthed(ctx, func(req *resty.Request) (*resty.Response, error) {
		return req.SetPathParam("id", strconv.FormatInt(contactID, 10)).SetResult(&contact).Get("/api/contacts/{id}")
	})
	if err != nil {
		return models.Contact{}, fmt.Errorf("get contact %d: %w", contactID, err)
	}
	return contact, nil
}

func (h *httpServerAdapter) CreateContact(ctx context.Context, contact models.Contact) (models.Contact, error) {
	var created models.Contact
	_, err := h.doAuthed(ctx, func(req *resty.Request) (*resty.Response, error) {
		return req.SetBody(contact).SetResult(&created).Post("/api/contacts/")
	})
	if err != nil {
		return models.Contact{}, fmt.Errorf("create contact: %w", err)
	}
	return created, nil
}

func (h *httpServerAdapter) UpdateContact(ctx context.Context, contact models.Contact) (models.Contact, error) {
	var updated models.Contact
	_, err := h.doAuthed(ctx, func(req *resty.Request) (*resty.Response, error) {
		return req.SetPathParam("id", strconv.FormatInt(contact.ID, 10)).
			SetBody(contact).
			SetResult(&updated).
			Put("/api/contacts/{id}")
	})
	if err != nil {
		return models.Contact{}, fmt.Errorf("update contact %d: %w", contact.ID, err)
	}
	return updated, nil
}

func (h *httpServerAdapter) DeleteContact(ctx context.Context, contactID int64) (models.Contact, error) {
	var deleted models.Contact
	_, err := h.doAuthed(ctx, func(req *resty.Request) (*resty.Response, error) {
		return req.SetPathParam("id", strconv.FormatInt(contactID, 10)).SetResult(&deleted).Delete("/api/contacts/{id}")
	})
	if err != nil {
		return models.Contact{}, fmt.Errorf("delete contact %d: %w", contactID, err)
	}
	return deleted, nil
}

func (h *httpServerAdapter) UpcomingBirthdays(ctx context.Context) ([]models.Contact, error) {
	var contacts []models.Contact
	_, err := h.doAuthed(ctx, func(req *resty.Request) (*resty.Response, error) {
		return req.SetResult(&contacts).Get("/api/contacts/upcoming_birthdays")
	})
	if err != nil {
		return nil, fmt.Errorf("upcoming birthdays: %w", err)
	}
	return contacts, nil
}

func (h *httpServerAdapter) Version(ctx context.Context) (string, error) {
	resp, err := h.client.R().SetContext(ctx).Get("/api/version/")
	if err != nil {
		return "", fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}
	return resp.String(), nil
}

// doAuthed sends the request built by call with the stored access token.
// An access token close to expiry is refreshed first, and a 401 answer is
// retried once after a refresh.
func (h *httpServerAdapter) doAuthed(ctx context.Context, call func(*resty.Request) (*resty.Response, error)) (*resty.Response, error) {
	access := h.Tokens().AccessToken
	if access == "" {
		return nil, fmt.Errorf("%w: login first", ErrUnauthorized)
	}

	if h.expiresSoon(access) {
		if err := h.refreshAfter(ctx, access); err != nil {
			return nil, err
		}
		access = h.Tokens().AccessToken
	}

	resp, err := call(h.client.R().SetContext(ctx).SetAuthToken(access))
	if err != nil {
		return nil, err
	}

	if resp.StatusCode() == http.StatusUnauthorized && h.Tokens().RefreshToken != "" {
		if err = h.refreshAfter(ctx, access); err != nil {
			return nil, err
		}
		resp, err = call(h.client.R().SetContext(ctx).SetAuthToken(h.Tokens().AccessToken))
		if err != nil {
			return nil, err
		}
	}

	return resp, mapHTTPError(resp)
}

// refreshAfter refreshes the pair unless another call already replaced the
// stale access token.
func (h *httpServerAdapter) refreshAfter(ctx context.Context, stale string) error {
	h.refreshMu.Lock()
	defer h.refreshMu.Unlock()

	if h.Tokens().AccessToken != stale {
		return nil
	}
	_, err := h.Refresh(ctx)
	return err
}

// expiresSoon reads the exp claim without verifying the signature; the
// server remains the only judge of validity.
func (h *httpServerAdapter) expiresSoon(token string) bool {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return h.now().Add(refreshSkew).After(claims.ExpiresAt.Time)
}

func filterQuery(filter models.ContactFilter) map[string]string {
	query := map[string]string{}
	if filter.Name != "" {
		query["name"] = filter.Name
	}
	if filter.Soname != "" {
		query["soname"] = filter.Soname
	}
	if filter.Email != "" {
		query["email"] = filter.Email
	}
	if filter.Skip > 0 {
		query["skip"] = strconv.FormatUint(filter.Skip, 10)
	}
	if filter.Limit > 0 {
		query["limit"] = strconv.FormatUint(filter.Limit, 10)
	}
	return query
}
