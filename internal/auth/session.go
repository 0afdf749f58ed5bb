// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ForumKit Contributors

package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/forumkit/forumkit/internal/forum"
)

// Session token configuration.
const (
	SessionTokenBytes  = 32             // 32 bytes = 64 hex chars
	SessionTokenExpiry = 24 * time.Hour // default expiry
)

// ErrSessionNotFound is returned by session stores for unknown tokens.
var ErrSessionNotFound = errors.New("session not found")

// Caller is the identity resolved from a session for one request.
// It is a denormalized snapshot captured at login and trusted for the
// session's lifetime; it is never re-read from the user store.
type Caller struct {
	ID          int64  `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
}

// CallerFromUser builds the session snapshot of a user's public identity.
func CallerFromUser(u *forum.User) Caller {
	return Caller{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
	}
}

// Session is a server-held login session. The plaintext token is sent
// to the client once; only its hash is kept.
type Session struct {
	ID        ulid.ULID `json:"id"`
	TokenHash string    `json:"token_hash"`
	Caller    Caller    `json:"caller"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// NewSession creates a validated Session for the given caller.
func NewSession(caller Caller, tokenHash string, expiresAt time.Time) (*Session, error) {
	if caller.ID <= 0 {
		return nil, oops.Code("SESSION_INVALID_CALLER").Errorf("caller id must be positive")
	}
	if tokenHash == "" {
		return nil, oops.Code("SESSION_INVALID_HASH").Errorf("token hash cannot be empty")
	}
	if expiresAt.IsZero() {
		return nil, oops.Code("SESSION_INVALID_EXPIRY").Errorf("expiry time cannot be zero")
	}

	return &Session{
		ID:        ulid.Make(),
		TokenHash: tokenHash,
		Caller:    caller,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}, nil
}

// IsExpired returns true if the session has expired.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// IsExpiredAt returns true if the session would be expired at the given
// time. Useful for testing with deterministic time values.
func (s *Session) IsExpiredAt(t time.Time) bool {
	return t.After(s.ExpiresAt)
}

// GenerateSessionToken creates a secure random token and its hash.
// Returns (plaintext_token, sha256_hash, error). The plaintext token is
// sent to the client; the hash is stored server-side.
func GenerateSessionToken() (token, hash string, err error) {
	tokenBytes := make([]byte, SessionTokenBytes)
	if _, err = rand.Read(tokenBytes); err != nil {
		return "", "", oops.Code("SESSION_TOKEN_GENERATE_FAILED").
			With("operation", "crypto/rand.Read").
			With("requested_bytes", SessionTokenBytes).
			Wrap(err)
	}

	token = hex.EncodeToString(tokenBytes)
	hash = HashSessionToken(token)

	return token, hash, nil
}

// HashSessionToken computes the SHA256 hash of a session token.
func HashSessionToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return hex.EncodeToString(h[:])
}

// VerifySessionToken checks if the plaintext token matches the stored
// hash using a constant-time comparison.
func VerifySessionToken(token, hash string) (bool, error) {
	if token == "" {
		return false, oops.Code("UNAUTHORIZED").Errorf("session token cannot be empty")
	}
	if hash == "" {
		return false, oops.Code("SESSION_HASH_EMPTY").Errorf("stored hash cannot be empty")
	}
	computed := HashSessionToken(token)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(hash)) == 1, nil
}

// SessionStore is the session carrier: an opaque server-side store
// keyed by token hash. Sessions have no persistence beyond the store's
// lifetime.
type SessionStore interface {
	// Put stores a session under its token hash.
	Put(ctx context.Context, session *Session) error

	// GetByTokenHash retrieves a session by its token hash.
	// Returns ErrSessionNotFound for unknown tokens.
	GetByTokenHash(ctx context.Context, tokenHash string) (*Session, error)

	// DeleteByTokenHash removes a session. Returns ErrSessionNotFound
	// if no session is stored under the hash.
	DeleteByTokenHash(ctx context.Context, tokenHash string) error
}
