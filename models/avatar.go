package models

// Avatar is an uploaded image waiting to be stored.
type Avatar struct {
	// UserID is the owner of the avatar.
	UserID int64

	// ContentType is the sniffed MIME type of Data.
	ContentType string

	// Data holds the raw image bytes.
	Data []byte
}
