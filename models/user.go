package models

import "time"

// User represents an account of the contact book.
// Credential-related fields are never serialised to JSON.
type User struct {
	// UserID is the unique numeric identifier assigned by the database.
	UserID int64 `json:"id"`

	// Name is the display name of the user.
	Name string `json:"name"`

	// Email is the unique, case-sensitive login key of the account.
	Email string `json:"email"`

	// PasswordHash is the bcrypt hash of the password. Never the plaintext.
	PasswordHash string `json:"-"`

	// RefreshToken is the single currently valid refresh token, nil when the
	// user has no active session.
	RefreshToken *string `json:"-"`

	// EmailConfirmed stays false until the confirmation flow succeeds.
	// Login is rejected while it is false.
	EmailConfirmed bool `json:"email_confirmed"`

	// Avatar is the public URL of the uploaded avatar image, if any.
	Avatar *string `json:"avatar"`

	// CreatedAt is the moment the account was registered.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// Credentials is the login form submitted by a client.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignUpRequest carries the data required to register a new account.
type SignUpRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
