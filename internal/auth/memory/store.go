// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ForumKit Contributors

// Package memory provides a process-local session store.
package memory

import (
	"context"
	"sync"

	"github.com/forumkit/forumkit/internal/auth"
)

// Store is an in-memory auth.SessionStore. Sessions live for the
// lifetime of the process; there is no persistence.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*auth.Session
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{sessions: make(map[string]*auth.Session)}
}

// Put stores a session under its token hash.
func (s *Store) Put(_ context.Context, session *auth.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *session
	s.sessions[session.TokenHash] = &cp
	return nil
}

// GetByTokenHash retrieves a session by its token hash.
func (s *Store) GetByTokenHash(_ context.Context, tokenHash string) (*auth.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[tokenHash]
	if !ok {
		return nil, auth.ErrSessionNotFound
	}
	cp := *session
	return &cp, nil
}

// DeleteByTokenHash removes a session.
func (s *Store) DeleteByTokenHash(_ context.Context, tokenHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[tokenHash]; !ok {
		return auth.ErrSessionNotFound
	}
	delete(s.sessions, tokenHash)
	return nil
}

// DeleteExpired removes expired sessions and returns the count removed.
// The gate already rejects expired sessions on read; this reclaims
// their memory.
func (s *Store) DeleteExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for hash, session := range s.sessions {
		if session.IsExpired() {
			delete(s.sessions, hash)
			removed++
		}
	}
	return removed
}

// Len returns the number of stored sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Compile-time interface check.
var _ auth.SessionStore = (*Store)(nil)
