// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ForumKit Contributors

package forum

import (
	"context"
	"net/mail"
	"time"

	"github.com/samber/oops"
)

// Password length constraints applied at registration.
const (
	MinPasswordLength = 8
	MaxPasswordLength = 128
)

// MaxDisplayNameLength bounds the display name.
const MaxDisplayNameLength = 60

// User is a registered account. ID is assigned by the store on create
// and immutable afterwards. Email is unique across all users.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	DisplayName  string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewUser creates a validated User ready for persistence.
// PasswordHash must already be encoded by a PasswordHasher.
func NewUser(email, passwordHash, displayName string) (*User, error) {
	now := time.Now()
	u := &User{
		Email:        email,
		PasswordHash: passwordHash,
		DisplayName:  displayName,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := u.Validate(); err != nil {
		return nil, err
	}
	return u, nil
}

// Validate checks required fields.
func (u *User) Validate() error {
	if err := ValidateEmail(u.Email); err != nil {
		return err
	}
	if u.PasswordHash == "" {
		return oops.Code("BAD_REQUEST").Errorf("password hash cannot be empty")
	}
	return ValidateDisplayName(u.DisplayName)
}

// ValidateEmail validates an email address.
func ValidateEmail(email string) error {
	if email == "" {
		return oops.Code("BAD_REQUEST").Errorf("email cannot be empty")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return oops.Code("BAD_REQUEST").With("email", email).Errorf("invalid email address")
	}
	return nil
}

// ValidateDisplayName validates a display name.
func ValidateDisplayName(name string) error {
	if name == "" {
		return oops.Code("BAD_REQUEST").Errorf("display name cannot be empty")
	}
	if len(name) > MaxDisplayNameLength {
		return oops.Code("BAD_REQUEST").
			With("max", MaxDisplayNameLength).
			Errorf("display name must be at most %d characters", MaxDisplayNameLength)
	}
	return nil
}

// ValidatePassword validates a raw password before hashing.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return oops.Code("BAD_REQUEST").
			With("min", MinPasswordLength).
			Errorf("password must be at least %d characters", MinPasswordLength)
	}
	if len(password) > MaxPasswordLength {
		return oops.Code("BAD_REQUEST").
			With("max", MaxPasswordLength).
			Errorf("password must be at most %d characters", MaxPasswordLength)
	}
	return nil
}

// PasswordHasher provides one-way password encoding and verification.
type PasswordHasher interface {
	// Hash produces an encoded hash of the password.
	Hash(password string) (string, error)

	// Verify checks if the password matches the hash.
	// Returns (true, nil) on match, (false, nil) on mismatch, or error on invalid hash.
	Verify(password, hash string) (bool, error)
}

// UserRepository manages user persistence.
type UserRepository interface {
	// Create stores a new user and assigns its ID.
	// Returns ErrDuplicateEmail if the email is already registered.
	Create(ctx context.Context, user *User) error

	// GetByID retrieves a user by ID. Returns ErrNotFound if absent.
	GetByID(ctx context.Context, id int64) (*User, error)

	// GetByEmail retrieves a user by email (case-insensitive).
	// Returns ErrNotFound if absent.
	GetByEmail(ctx context.Context, email string) (*User, error)

	// List retrieves all users ordered by ID.
	List(ctx context.Context) ([]*User, error)

	// Update updates display name and password hash for an existing user.
	Update(ctx context.Context, user *User) error

	// Delete removes a user. Returns ErrNotFound if absent.
	Delete(ctx context.Context, id int64) error
}
