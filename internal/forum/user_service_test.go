// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ForumKit Contributors

package forum_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forumkit/forumkit/internal/forum"
	"github.com/forumkit/forumkit/internal/forum/forumtest"
	"github.com/forumkit/forumkit/pkg/errutil"
)

func newUserService() (*forum.UserService, *forumtest.FakeUserRepository) {
	repo := forumtest.NewFakeUserRepository()
	return forum.NewUserService(repo, forumtest.PlainHasher{}), repo
}

func TestUserService_Register(t *testing.T) {
	svc, repo := newUserService()
	ctx := context.Background()

	user, err := svc.Register(ctx, "writer@example.com", "password1", "Writer")
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, "writer@example.com", user.Email)
	assert.Equal(t, "plain:password1", user.PasswordHash)
	assert.Equal(t, 1, repo.Count())
}

func TestUserService_Register_Validation(t *testing.T) {
	svc, repo := newUserService()
	ctx := context.Background()

	tests := []struct {
		name        string
		email       string
		password    string
		displayName string
	}{
		{"bad email", "not-an-email", "password1", "Writer"},
		{"short password", "writer@example.com", "short", "Writer"},
		{"empty display name", "writer@example.com", "password1", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tt.email, tt.password, tt.displayName)
			require.Error(t, err)
			errutil.AssertErrorCode(t, err, "BAD_REQUEST")
		})
	}

	assert.Equal(t, 0, repo.Count(), "rejected registrations must not write")
}

func TestUserService_Register_DuplicateEmail(t *testing.T) {
	svc, _ := newUserService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "writer@example.com", "password1", "Writer")
	require.NoError(t, err)

	// Same address, different case.
	_, err = svc.Register(ctx, "Writer@Example.com", "password2", "Impostor")
	require.Error(t, err)
	errutil.AssertErrorCode(t, err, "ALREADY_EXIST")
	assert.ErrorIs(t, err, forum.ErrDuplicateEmail)
}

// Concurrent registrations for one email serialize on the store's
// uniqueness guarantee: exactly one wins, the rest report the conflict.
func TestUserService_Register_ConcurrentSameEmail(t *testing.T) {
	svc, repo := newUserService()
	ctx := context.Background()

	const n = 16
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = svc.Register(ctx, "writer@example.com", "password1", fmt.Sprintf("Writer %d", i))
		}()
	}
	wg.Wait()

	var successes, conflicts int
	for _, err := range errs {
		switch {
		case err == nil:
			successes++
		case assert.ErrorIs(t, err, forum.ErrDuplicateEmail):
			conflicts++
		}
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, n-1, conflicts)
	assert.Equal(t, 1, repo.Count())
}

func TestUserService_GetByID(t *testing.T) {
	svc, _ := newUserService()
	ctx := context.Background()

	user, err := svc.Register(ctx, "writer@example.com", "password1", "Writer")
	require.NoError(t, err)

	got, err := svc.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, got.Email)

	_, err = svc.GetByID(ctx, 9999)
	require.Error(t, err)
	errutil.AssertErrorCode(t, err, "NOT_FOUND_USER")
}

func TestUserService_GetByEmail(t *testing.T) {
	svc, _ := newUserService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "writer@example.com", "password1", "Writer")
	require.NoError(t, err)

	got, err := svc.GetByEmail(ctx, "WRITER@example.com")
	require.NoError(t, err)
	assert.Equal(t, "writer@example.com", got.Email)

	_, err = svc.GetByEmail(ctx, "ghost@example.com")
	errutil.AssertErrorCode(t, err, "NOT_FOUND_USER")
}

func TestUserService_List(t *testing.T) {
	svc, _ := newUserService()
	ctx := context.Background()

	for i := range 3 {
		_, err := svc.Register(ctx, fmt.Sprintf("user%d@example.com", i), "password1", fmt.Sprintf("User %d", i))
		require.NoError(t, err)
	}

	users, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 3)
}

func TestUserService_Modify(t *testing.T) {
	svc, _ := newUserService()
	ctx := context.Background()

	user, err := svc.Register(ctx, "writer@example.com", "password1", "Writer")
	require.NoError(t, err)

	updated, err := svc.Modify(ctx, user.ID, forum.UserUpdate{
		ID:          user.ID,
		DisplayName: "Writer Prime",
	})
	require.NoError(t, err)
	assert.Equal(t, "Writer Prime", updated.DisplayName)
	// Untouched fields survive.
	assert.Equal(t, "plain:password1", updated.PasswordHash)

	updated, err = svc.Modify(ctx, user.ID, forum.UserUpdate{
		ID:       user.ID,
		Password: "password2",
	})
	require.NoError(t, err)
	assert.Equal(t, "plain:password2", updated.PasswordHash)
	assert.Equal(t, "Writer Prime", updated.DisplayName)
}

// Accounts are strictly self-service: touching another user's account
// is FORBIDDEN for both modify and delete.
func TestUserService_SelfServiceOnly(t *testing.T) {
	svc, repo := newUserService()
	ctx := context.Background()

	alice, err := svc.Register(ctx, "alice@example.com", "password1", "Alice")
	require.NoError(t, err)
	bob, err := svc.Register(ctx, "bob@example.com", "password1", "Bob")
	require.NoError(t, err)

	_, err = svc.Modify(ctx, alice.ID, forum.UserUpdate{ID: bob.ID, DisplayName: "Hacked"})
	require.Error(t, err)
	errutil.AssertErrorCode(t, err, "FORBIDDEN")
	assert.ErrorIs(t, err, forum.ErrForbidden)

	err = svc.Delete(ctx, alice.ID, bob.ID)
	require.Error(t, err)
	errutil.AssertErrorCode(t, err, "FORBIDDEN")
	assert.Equal(t, 2, repo.Count())

	require.NoError(t, svc.Delete(ctx, alice.ID, alice.ID))
	assert.Equal(t, 1, repo.Count())
}
