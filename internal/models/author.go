// Package models contains data structures for the blog's domain models.
package models

import (
	"strings"
	"time"
)

// Author represents a blog author. Posts reference authors by ID.
type Author struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	FirstName   string    `gorm:"size:100;not null" json:"first_name"`
	LastName    string    `gorm:"size:100;not null" json:"last_name"`
	Email       string    `gorm:"size:254;not null" json:"email"`
	PhoneNumber string    `gorm:"size:20;not null" json:"phone_number"`
	Posts       []Post    `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// FullName joins first and last name with a single space.
func (a Author) FullName() string {
	return a.FirstName + " " + a.LastName
}

// AuthorFields is the complete writable field set of an Author. Create and
// update both send every field.
type AuthorFields struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
}

// Trimmed returns a copy with surrounding whitespace removed from every field.
func (f AuthorFields) Trimmed() AuthorFields {
	return AuthorFields{
		FirstName:   strings.TrimSpace(f.FirstName),
		LastName:    strings.TrimSpace(f.LastName),
		Email:       strings.TrimSpace(f.Email),
		PhoneNumber: strings.TrimSpace(f.PhoneNumber),
	}
}

// Fields extracts the writable field set from a persisted author.
func (a Author) Fields() AuthorFields {
	return AuthorFields{
		FirstName:   a.FirstName,
		LastName:    a.LastName,
		Email:       a.Email,
		PhoneNumber: a.PhoneNumber,
	}
}

// Apply overwrites every writable field of the author.
func (a *Author) Apply(f AuthorFields) {
	a.FirstName = f.FirstName
	a.LastName = f.LastName
	a.Email = f.Email
	a.PhoneNumber = f.PhoneNumber
}
