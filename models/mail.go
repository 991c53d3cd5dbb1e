package models

// ConfirmationEmail is a queued request to deliver an account confirmation
// link to a freshly registered user.
type ConfirmationEmail struct {
	ToEmail string
	ToName  string
	Link    string
}
