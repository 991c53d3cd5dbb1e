package service

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-contact-book/internal/store"
	"github.com/MKhiriev/go-contact-book/models"
)

// memUserRepository is an in-memory store.UserRepository with the same
// compare-and-swap semantics as the SQL implementation.
type memUserRepository struct {
	mu     sync.Mutex
	nextID int64
	users  map[string]models.User
}

func newMemUserRepository() *memUserRepository {
	return &memUserRepository{users: map[string]models.User{}}
}

func (r *memUserRepository) CreateUser(_ context.Context, user models.User) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.Email]; ok {
		return models.User{}, store.ErrEmailAlreadyExists
	}
	r.nextID++
	user.UserID = r.nextID
	user.CreatedAt = time.Now()
	r.users[user.Email] = user
	return user, nil
}

func (r *memUserRepository) FindUserByEmail(_ context.Context, email string) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[email]
	if !ok {
		return models.User{}, store.ErrNoUserWasFound
	}
	return user, nil
}

func (r *memUserRepository) SaveUser(_ context.Context, user models.User) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.users[user.Email]
	if !ok {
		return models.User{}, store.ErrNoUserWasFound
	}
	stored.Name = user.Name
	stored.Avatar = user.Avatar
	r.users[user.Email] = stored
	return stored, nil
}

func (r *memUserRepository) SetRefreshToken(_ context.Context, userID int64, token *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for email, user := range r.users {
		if user.UserID == userID {
			user.RefreshToken = token
			r.users[email] = user
			return nil
		}
	}
	return store.ErrNoUserWasFound
}

func (r *memUserRepository) RotateRefreshToken(_ context.Context, userID int64, presented, next string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for email, user := range r.users {
		if user.UserID == userID {
			if !refreshTokenIs(user, presented) {
				return false, nil
			}
			user.RefreshToken = &next
			r.users[email] = user
			return true, nil
		}
	}
	return false, nil
}

func (r *memUserRepository) MarkEmailConfirmed(_ context.Context, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[email]
	if !ok || user.EmailConfirmed {
		return false, nil
	}
	user.EmailConfirmed = true
	r.users[email] = user
	return true, nil
}

func (r *memUserRepository) storedRefreshToken(email string) *string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.users[email].RefreshToken
}

// recordingDispatcher collects dispatched emails instead of sending them.
type recordingDispatcher struct {
	mu     sync.Mutex
	emails []models.ConfirmationEmail
	err    error
}

func (d *recordingDispatcher) Dispatch(_ context.Context, email models.ConfirmationEmail) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.err != nil {
		return d.err
	}
	d.emails = append(d.emails, email)
	return nil
}

func (d *recordingDispatcher) last() (models.ConfirmationEmail, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.emails) == 0 {
		return models.ConfirmationEmail{}, false
	}
	return d.emails[len(d.emails)-1], true
}

// refreshTokenIs mirrors the WHERE clause of the rotation UPDATE: a user
// without a stored token matches nothing.
func refreshTokenIs(user models.User, token string) bool {
	return user.RefreshToken != nil && *user.RefreshToken == token
}
