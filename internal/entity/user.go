package entity

import (
	"strings"
	"time"
)

// User is an account. PasswordHash always holds a salted hash, never the raw
// password, and is only mutable through the dedicated change-password path.
type User struct {
	ID           string
	Email        string
	Name         string
	Phone        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewUser builds a validated user from an already-hashed password.
func NewUser(email, name, passwordHash string) (*User, error) {
	now := time.Now().UTC()
	u := &User{
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := u.Validate(); err != nil {
		return nil, err
	}
	return u, nil
}

// Validate checks the user invariants.
func (u *User) Validate() error {
	if !strings.Contains(u.Email, "@") {
		return newValidationError("email", "invalid email format")
	}
	if strings.TrimSpace(u.Name) == "" {
		return newValidationError("name", "cannot be empty")
	}
	if u.PasswordHash == "" {
		return newValidationError("password", "cannot be empty")
	}
	return nil
}
