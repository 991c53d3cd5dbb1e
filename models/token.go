package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// TokenPurpose tags a token with the operation it was issued for, so that a
// token of one purpose can never be accepted by an operation expecting another.
type TokenPurpose string

const (
	// PurposeAccess marks short-lived tokens presented on protected requests.
	PurposeAccess TokenPurpose = "access"

	// PurposeRefresh marks long-lived tokens exchanged for a new token pair.
	PurposeRefresh TokenPurpose = "refresh"

	// PurposeEmailConfirm marks tokens embedded in confirmation links.
	PurposeEmailConfirm TokenPurpose = "email-confirm"
)

// String implements [fmt.Stringer].
func (p TokenPurpose) String() string {
	return string(p)
}

// Valid reports whether p is one of the known purposes.
func (p TokenPurpose) Valid() bool {
	switch p {
	case PurposeAccess, PurposeRefresh, PurposeEmailConfirm:
		return true
	default:
		return false
	}
}

// TokenClaims is the claim set carried by every token issued by the service.
//
// The subject ("sub") holds the user's email; Purpose is a private claim
// checked on every decode.
type TokenClaims struct {
	jwt.RegisteredClaims

	// Purpose is the operation the token was issued for.
	Purpose TokenPurpose `json:"purpose"`
}

// TokenPair is returned to the client after a successful login or refresh.
// Access and refresh tokens expire independently of each other.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

// BearerTokenType is the only token type handed out by the service.
const BearerTokenType = "bearer"

// NewTokenPair builds a bearer [TokenPair].
func NewTokenPair(access, refresh string) TokenPair {
	return TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    BearerTokenType,
	}
}
