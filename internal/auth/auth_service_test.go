// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ForumKit Contributors

package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forumkit/forumkit/internal/auth"
	"github.com/forumkit/forumkit/internal/auth/memory"
	"github.com/forumkit/forumkit/internal/forum"
	"github.com/forumkit/forumkit/internal/forum/forumtest"
	"github.com/forumkit/forumkit/pkg/errutil"
)

func newAuthService(t *testing.T) (*auth.Service, *memory.Store) {
	t.Helper()

	users := forumtest.NewFakeUserRepository()
	hasher := forumtest.PlainHasher{}

	seed := &forum.User{Email: "writer@example.com", DisplayName: "Writer"}
	var err error
	seed.PasswordHash, err = hasher.Hash("hunter2")
	require.NoError(t, err)
	require.NoError(t, users.Create(context.Background(), seed))

	sessions := memory.NewStore()
	return auth.NewService(users, hasher, sessions, time.Hour), sessions
}

func TestService_Login(t *testing.T) {
	svc, sessions := newAuthService(t)

	caller, token, err := svc.Login(context.Background(), "writer@example.com", "hunter2")
	require.NoError(t, err)

	assert.Equal(t, "writer@example.com", caller.Email)
	assert.NotEmpty(t, token)
	assert.Equal(t, 1, sessions.Len())

	// The session resolves back to the same snapshot.
	resolved, err := svc.Gate().ResolveCaller(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, caller, resolved)
}

func TestService_Login_UnknownEmail(t *testing.T) {
	svc, sessions := newAuthService(t)

	_, _, err := svc.Login(context.Background(), "nobody@example.com", "hunter2")
	errutil.AssertErrorCode(t, err, "NOT_FOUND_USER")
	assert.ErrorIs(t, err, forum.ErrNotFound)
	assert.Zero(t, sessions.Len())
}

func TestService_Login_WrongPassword(t *testing.T) {
	svc, sessions := newAuthService(t)

	_, _, err := svc.Login(context.Background(), "writer@example.com", "wrong")
	errutil.AssertErrorCode(t, err, "UNAUTHORIZED")
	assert.ErrorIs(t, err, forum.ErrUnauthorized)
	assert.Zero(t, sessions.Len())
}

func TestService_SessionTTL(t *testing.T) {
	users := forumtest.NewFakeUserRepository()
	sessions := memory.NewStore()

	svc := auth.NewService(users, forumtest.PlainHasher{}, sessions, 2*time.Hour)
	assert.Equal(t, 2*time.Hour, svc.SessionTTL())

	// Non-positive TTLs fall back to the default expiry.
	svc = auth.NewService(users, forumtest.PlainHasher{}, sessions, 0)
	assert.Equal(t, auth.SessionTokenExpiry, svc.SessionTTL())
}

func TestService_Logout(t *testing.T) {
	svc, sessions := newAuthService(t)

	_, token, err := svc.Login(context.Background(), "writer@example.com", "hunter2")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), token))
	assert.Zero(t, sessions.Len())

	// The token no longer resolves.
	_, err = svc.Gate().ResolveCaller(context.Background(), token)
	errutil.AssertErrorCode(t, err, "UNAUTHORIZED")
}

func TestService_Logout_Unauthenticated(t *testing.T) {
	svc, _ := newAuthService(t)

	err := svc.Logout(context.Background(), "")
	errutil.AssertErrorCode(t, err, "UNAUTHORIZED")

	err = svc.Logout(context.Background(), "not-a-session")
	errutil.AssertErrorCode(t, err, "UNAUTHORIZED")
}

// racingStore mimics a concurrent logout: reads still see the session
// but the delete finds it already gone.
type racingStore struct {
	auth.SessionStore
}

func (s racingStore) DeleteByTokenHash(_ context.Context, _ string) error {
	return auth.ErrSessionNotFound
}

func TestService_Logout_ConcurrentDelete(t *testing.T) {
	users := forumtest.NewFakeUserRepository()
	hasher := forumtest.PlainHasher{}

	seed := &forum.User{Email: "writer@example.com", DisplayName: "Writer"}
	var err error
	seed.PasswordHash, err = hasher.Hash("hunter2")
	require.NoError(t, err)
	require.NoError(t, users.Create(context.Background(), seed))

	svc := auth.NewService(users, hasher, racingStore{memory.NewStore()}, time.Hour)

	_, token, err := svc.Login(context.Background(), "writer@example.com", "hunter2")
	require.NoError(t, err)

	// The session vanished between the gate check and the delete; the
	// logout still succeeds because the session is gone either way.
	require.NoError(t, svc.Logout(context.Background(), token))
}
