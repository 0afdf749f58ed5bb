// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ForumKit Contributors

package auth

import (
	"context"
	"errors"

	"github.com/samber/oops"

	"github.com/forumkit/forumkit/internal/forum"
)

// Gate resolves the caller identity for a request from its session
// token. It fails closed: a missing token, an unknown token, and an
// expired session all surface as UNAUTHORIZED, never as an anonymous
// caller. Resolution is a pure read; the stored snapshot is returned
// unmodified and never re-validated against the user store.
type Gate struct {
	sessions SessionStore
}

// NewGate creates a new Gate.
func NewGate(sessions SessionStore) *Gate {
	return &Gate{sessions: sessions}
}

// ResolveCaller resolves the caller snapshot for a session token.
func (g *Gate) ResolveCaller(ctx context.Context, token string) (Caller, error) {
	if token == "" {
		return Caller{}, oops.Code("UNAUTHORIZED").
			Wrap(forum.ErrUnauthorized)
	}

	session, err := g.sessions.GetByTokenHash(ctx, HashSessionToken(token))
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return Caller{}, oops.Code("UNAUTHORIZED").
				Wrap(forum.ErrUnauthorized)
		}
		return Caller{}, oops.Code("SESSION_RESOLVE_FAILED").
			With("operation", "get session by token hash").
			Wrap(err)
	}

	if session.IsExpired() {
		return Caller{}, oops.Code("UNAUTHORIZED").
			Wrap(forum.ErrUnauthorized)
	}

	return session.Caller, nil
}
