package models

// ConfirmationStatus is the non-error outcome of an email confirmation.
type ConfirmationStatus int

const (
	// EmailConfirmed means the account has just been confirmed.
	EmailConfirmed ConfirmationStatus = iota + 1

	// EmailAlreadyConfirmed means the account was confirmed earlier and
	// nothing was changed.
	EmailAlreadyConfirmed
)

// Message returns the client-facing text for the status.
func (s ConfirmationStatus) Message() string {
	switch s {
	case EmailConfirmed:
		return "Email confirmed"
	case EmailAlreadyConfirmed:
		return "Your email is already confirmed"
	default:
		return ""
	}
}

// SignUpResponse is returned after a successful registration.
type SignUpResponse struct {
	User   User   `json:"user"`
	Detail string `json:"detail"`
}

// MessageResponse carries a single informational message.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	Detail string `json:"detail"`
}
