// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ForumKit Contributors

// Package redis provides a Redis-backed session store for deployments
// where sessions must outlive a single process.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/samber/oops"

	"github.com/forumkit/forumkit/internal/auth"
)

// keyPrefix namespaces session keys in Redis.
const keyPrefix = "forumkit:session:"

// Store is a Redis-backed auth.SessionStore. Sessions are stored as
// JSON under their token hash with a TTL matching their expiry, so
// Redis reclaims expired sessions on its own.
type Store struct {
	client redis.UniversalClient
}

// NewStore creates a Store on an existing Redis client.
func NewStore(client redis.UniversalClient) *Store {
	return &Store{client: client}
}

// Put stores a session under its token hash with a TTL until expiry.
func (s *Store) Put(ctx context.Context, session *auth.Session) error {
	blob, err := json.Marshal(session)
	if err != nil {
		return oops.Code("SESSION_CREATE_FAILED").
			With("operation", "marshal session").
			Wrap(err)
	}

	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		// Never store an already-expired session.
		return oops.Code("SESSION_INVALID_EXPIRY").Errorf("session already expired")
	}

	if err := s.client.Set(ctx, keyPrefix+session.TokenHash, blob, ttl).Err(); err != nil {
		return oops.Code("SESSION_CREATE_FAILED").
			With("operation", "redis set").
			Wrap(err)
	}
	return nil
}

// GetByTokenHash retrieves a session by its token hash.
func (s *Store) GetByTokenHash(ctx context.Context, tokenHash string) (*auth.Session, error) {
	blob, err := s.client.Get(ctx, keyPrefix+tokenHash).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, auth.ErrSessionNotFound
		}
		return nil, oops.Code("SESSION_GET_FAILED").
			With("operation", "redis get").
			Wrap(err)
	}

	var session auth.Session
	if err := json.Unmarshal(blob, &session); err != nil {
		return nil, oops.Code("SESSION_CORRUPT").
			With("operation", "unmarshal session").
			Wrap(err)
	}
	return &session, nil
}

// DeleteByTokenHash removes a session.
func (s *Store) DeleteByTokenHash(ctx context.Context, tokenHash string) error {
	removed, err := s.client.Del(ctx, keyPrefix+tokenHash).Result()
	if err != nil {
		return oops.Code("SESSION_DELETE_FAILED").
			With("operation", "redis del").
			Wrap(err)
	}
	if removed == 0 {
		return auth.ErrSessionNotFound
	}
	return nil
}

// Compile-time interface check.
var _ auth.SessionStore = (*Store)(nil)
