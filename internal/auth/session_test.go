// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ForumKit Contributors

package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forumkit/forumkit/internal/auth"
	"github.com/forumkit/forumkit/internal/forum"
	"github.com/forumkit/forumkit/pkg/errutil"
)

func testCaller() auth.Caller {
	return auth.Caller{ID: 1, Email: "writer@example.com", DisplayName: "Writer"}
}

func TestNewSession(t *testing.T) {
	session, err := auth.NewSession(testCaller(), "hash", time.Now().Add(time.Hour))
	require.NoError(t, err)

	assert.NotZero(t, session.ID)
	assert.Equal(t, "hash", session.TokenHash)
	assert.Equal(t, int64(1), session.Caller.ID)
	assert.False(t, session.IsExpired())
}

func TestNewSession_Validation(t *testing.T) {
	_, err := auth.NewSession(auth.Caller{}, "hash", time.Now().Add(time.Hour))
	errutil.AssertErrorCode(t, err, "SESSION_INVALID_CALLER")

	_, err = auth.NewSession(testCaller(), "", time.Now().Add(time.Hour))
	errutil.AssertErrorCode(t, err, "SESSION_INVALID_HASH")

	_, err = auth.NewSession(testCaller(), "hash", time.Time{})
	errutil.AssertErrorCode(t, err, "SESSION_INVALID_EXPIRY")
}

func TestSession_IsExpiredAt(t *testing.T) {
	expiry := time.Now().Add(time.Hour)
	session, err := auth.NewSession(testCaller(), "hash", expiry)
	require.NoError(t, err)

	assert.False(t, session.IsExpiredAt(expiry.Add(-time.Minute)))
	assert.True(t, session.IsExpiredAt(expiry.Add(time.Minute)))
}

func TestGenerateSessionToken(t *testing.T) {
	token, hash, err := auth.GenerateSessionToken()
	require.NoError(t, err)

	assert.Len(t, token, auth.SessionTokenBytes*2)
	assert.Equal(t, auth.HashSessionToken(token), hash)

	// Tokens are unique.
	token2, _, err := auth.GenerateSessionToken()
	require.NoError(t, err)
	assert.NotEqual(t, token, token2)
}

func TestVerifySessionToken(t *testing.T) {
	token, hash, err := auth.GenerateSessionToken()
	require.NoError(t, err)

	ok, err := auth.VerifySessionToken(token, hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = auth.VerifySessionToken("wrong", hash)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = auth.VerifySessionToken("", hash)
	errutil.AssertErrorCode(t, err, "UNAUTHORIZED")

	_, err = auth.VerifySessionToken(token, "")
	errutil.AssertErrorCode(t, err, "SESSION_HASH_EMPTY")
}

func TestCallerFromUser(t *testing.T) {
	user := &forum.User{
		ID:           7,
		Email:        "writer@example.com",
		PasswordHash: "secret",
		DisplayName:  "Writer",
	}

	caller := auth.CallerFromUser(user)
	assert.Equal(t, int64(7), caller.ID)
	assert.Equal(t, "writer@example.com", caller.Email)
	assert.Equal(t, "Writer", caller.DisplayName)
}
