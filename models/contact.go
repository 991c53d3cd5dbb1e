package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// Contact is an entry of a user's address book.
type Contact struct {
	// ID is the database identifier of the contact.
	ID int64 `json:"id"`

	Name     string `json:"name"`
	Soname   string `json:"soname"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Birthday Date   `json:"birthday"`
	Info     string `json:"info"`

	// UserID is the owner of the contact. It is always taken from the
	// authenticated identity, never from the request body.
	UserID int64 `json:"-"`
}

// ContactFilter narrows a contacts listing. Empty string fields are ignored.
type ContactFilter struct {
	UserID int64
	Name   string
	Soname string
	Email  string
	Skip   uint64
	Limit  uint64
}

// HasSearchTerms reports whether any of the text filters is set.
func (f ContactFilter) HasSearchTerms() bool {
	return f.Name != "" || f.Soname != "" || f.Email != ""
}

// DateLayout is the wire format of [Date].
const DateLayout = time.DateOnly

// Date is a calendar day without time-of-day, serialised as "YYYY-MM-DD".
type Date struct {
	time.Time
}

// NewDate truncates t to a UTC calendar day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// MarshalJSON implements [json.Marshaler].
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Format(DateLayout))
}

// UnmarshalJSON implements [json.Unmarshaler].
func (d *Date) UnmarshalJSON(b []byte) error {
	var s *string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("date must be a string in %s format: %w", DateLayout, err)
	}
	if s == nil || *s == "" {
		d.Time = time.Time{}
		return nil
	}

	t, err := time.Parse(DateLayout, *s)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", *s, err)
	}
	d.Time = t
	return nil
}

// NextAnniversary returns the first occurrence of d's month and day that is
// not before today. February 29 falls on March 1 in non-leap years.
func (d Date) NextAnniversary(today time.Time) time.Time {
	today = time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)

	next := anniversaryIn(d, today.Year())
	if next.Before(today) {
		next = anniversaryIn(d, today.Year()+1)
	}
	return next
}

func anniversaryIn(d Date, year int) time.Time {
	// time.Date normalises Feb 29 of a non-leap year to Mar 1
	return time.Date(year, d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}
