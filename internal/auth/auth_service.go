// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ForumKit Contributors

package auth

import (
	"context"
	"errors"
	"time"

	"github.com/samber/oops"

	"github.com/forumkit/forumkit/internal/forum"
)

// Service provides login and logout on top of the user store, the
// password hasher, and the session store.
type Service struct {
	users    forum.UserRepository
	hasher   forum.PasswordHasher
	sessions SessionStore
	gate     *Gate
	expiry   time.Duration
}

// NewService creates a new Service. expiry <= 0 falls back to
// SessionTokenExpiry.
func NewService(users forum.UserRepository, hasher forum.PasswordHasher, sessions SessionStore, expiry time.Duration) *Service {
	if expiry <= 0 {
		expiry = SessionTokenExpiry
	}
	return &Service{
		users:    users,
		hasher:   hasher,
		sessions: sessions,
		gate:     NewGate(sessions),
		expiry:   expiry,
	}
}

// Gate returns the session gate backed by the same session store.
func (s *Service) Gate() *Gate {
	return s.gate
}

// SessionTTL returns the configured session lifetime.
func (s *Service) SessionTTL() time.Duration {
	return s.expiry
}

// Login authenticates a user and establishes a session.
// Returns the caller snapshot and the plaintext session token.
//
// The ordering is fixed: existence is checked before the credential, so
// an unknown email fails NOT_FOUND_USER while a wrong password against
// a real email fails UNAUTHORIZED. The two kinds stay distinguishable
// on purpose.
func (s *Service) Login(ctx context.Context, email, password string) (Caller, string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, forum.ErrNotFound) {
			return Caller{}, "", oops.Code("NOT_FOUND_USER").
				With("email", email).
				Wrap(forum.ErrNotFound)
		}
		return Caller{}, "", oops.Code("AUTH_LOGIN_FAILED").
			With("operation", "get user by email").
			Wrap(err)
	}

	valid, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		return Caller{}, "", oops.Code("AUTH_LOGIN_FAILED").
			With("operation", "verify password").
			Wrap(err)
	}
	if !valid {
		return Caller{}, "", oops.Code("UNAUTHORIZED").
			With("email", email).
			Wrap(forum.ErrUnauthorized)
	}

	token, tokenHash, err := GenerateSessionToken()
	if err != nil {
		return Caller{}, "", oops.Code("AUTH_LOGIN_FAILED").
			With("operation", "generate session token").
			Wrap(err)
	}

	caller := CallerFromUser(user)
	session, err := NewSession(caller, tokenHash, time.Now().Add(s.expiry))
	if err != nil {
		return Caller{}, "", oops.Code("AUTH_LOGIN_FAILED").
			With("operation", "create session").
			Wrap(err)
	}

	if err := s.sessions.Put(ctx, session); err != nil {
		return Caller{}, "", oops.Code("AUTH_SESSION_CREATE_FAILED").
			With("operation", "persist session").
			Wrap(err)
	}

	return caller, token, nil
}

// Logout invalidates the session for a token. Logout is itself gated:
// the caller must resolve first, so an unauthenticated logout fails
// UNAUTHORIZED instead of being a no-op.
func (s *Service) Logout(ctx context.Context, token string) error {
	if _, err := s.gate.ResolveCaller(ctx, token); err != nil {
		return err
	}

	err := s.sessions.DeleteByTokenHash(ctx, HashSessionToken(token))
	if err != nil {
		// A concurrent logout already removed it; the session is gone
		// either way.
		if errors.Is(err, ErrSessionNotFound) {
			return nil
		}
		return oops.Code("AUTH_LOGOUT_FAILED").
			With("operation", "delete session").
			Wrap(err)
	}
	return nil
}
