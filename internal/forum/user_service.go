// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ForumKit Contributors

package forum

import (
	"context"
	"errors"
	"time"

	"github.com/samber/oops"
)

// UserService provides registration and self-service account operations.
type UserService struct {
	users  UserRepository
	hasher PasswordHasher
}

// NewUserService creates a new UserService.
func NewUserService(users UserRepository, hasher PasswordHasher) *UserService {
	return &UserService{
		users:  users,
		hasher: hasher,
	}
}

// Register creates a new user account. Registration is idempotent per
// email in the failure direction: a duplicate email always yields
// ALREADY_EXIST whether it is observed by the pre-check lookup or by the
// store's uniqueness constraint when two registrations race.
func (s *UserService) Register(ctx context.Context, email, password, displayName string) (*User, error) {
	if err := ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := ValidatePassword(password); err != nil {
		return nil, err
	}
	if err := ValidateDisplayName(displayName); err != nil {
		return nil, err
	}

	_, err := s.users.GetByEmail(ctx, email)
	if err == nil {
		return nil, oops.Code("ALREADY_EXIST").
			With("email", email).
			Wrap(ErrDuplicateEmail)
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, oops.Code("USER_LOOKUP_FAILED").
			With("operation", "get user by email").
			Wrap(err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, oops.Code("USER_REGISTER_FAILED").
			With("operation", "hash password").
			Wrap(err)
	}

	user, err := NewUser(email, hash, displayName)
	if err != nil {
		return nil, err
	}

	if err := s.users.Create(ctx, user); err != nil {
		// The store's unique constraint is the serialization point for
		// concurrent registrations with the same email.
		if errors.Is(err, ErrDuplicateEmail) {
			return nil, oops.Code("ALREADY_EXIST").
				With("email", email).
				Wrap(ErrDuplicateEmail)
		}
		return nil, oops.Code("USER_REGISTER_FAILED").
			With("operation", "insert user").
			Wrap(err)
	}

	return user, nil
}

// GetByID retrieves a user by ID.
func (s *UserService) GetByID(ctx context.Context, id int64) (*User, error) {
	return resolveActor(ctx, s.users, id)
}

// GetByEmail retrieves a user by email.
func (s *UserService) GetByEmail(ctx context.Context, email string) (*User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, oops.Code("NOT_FOUND_USER").
				With("email", email).
				Wrap(ErrNotFound)
		}
		return nil, oops.Code("USER_LOOKUP_FAILED").
			With("operation", "get user by email").
			Wrap(err)
	}
	return user, nil
}

// List retrieves all users.
func (s *UserService) List(ctx context.Context) ([]*User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, oops.Code("USER_LIST_FAILED").
			With("operation", "list users").
			Wrap(err)
	}
	return users, nil
}

// UserUpdate carries the self-service mutable fields of a user.
// Empty fields are left unchanged.
type UserUpdate struct {
	ID          int64
	DisplayName string
	Password    string
}

// Modify updates the caller's own display name and/or password.
// A caller targeting another user's account is denied with FORBIDDEN.
func (s *UserService) Modify(ctx context.Context, callerID int64, upd UserUpdate) (*User, error) {
	if upd.ID != callerID {
		return nil, oops.Code("FORBIDDEN").
			With("caller_id", callerID).
			With("target_id", upd.ID).
			Wrap(ErrForbidden)
	}

	user, err := resolveActor(ctx, s.users, upd.ID)
	if err != nil {
		return nil, err
	}

	if upd.DisplayName != "" {
		if err := ValidateDisplayName(upd.DisplayName); err != nil {
			return nil, err
		}
		user.DisplayName = upd.DisplayName
	}
	if upd.Password != "" {
		if err := ValidatePassword(upd.Password); err != nil {
			return nil, err
		}
		hash, err := s.hasher.Hash(upd.Password)
		if err != nil {
			return nil, oops.Code("USER_MODIFY_FAILED").
				With("operation", "hash password").
				Wrap(err)
		}
		user.PasswordHash = hash
	}
	user.UpdatedAt = time.Now()

	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, oops.Code("NOT_FOUND_USER").
				With("user_id", user.ID).
				Wrap(ErrNotFound)
		}
		return nil, oops.Code("USER_MODIFY_FAILED").
			With("operation", "update user").
			With("user_id", user.ID).
			Wrap(err)
	}

	return user, nil
}

// Delete removes the caller's own account. A caller targeting another
// user's account is denied with FORBIDDEN.
func (s *UserService) Delete(ctx context.Context, callerID, id int64) error {
	if id != callerID {
		return oops.Code("FORBIDDEN").
			With("caller_id", callerID).
			With("target_id", id).
			Wrap(ErrForbidden)
	}

	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return oops.Code("NOT_FOUND_USER").
				With("user_id", id).
				Wrap(ErrNotFound)
		}
		return oops.Code("USER_DELETE_FAILED").
			With("operation", "delete user").
			With("user_id", id).
			Wrap(err)
	}
	return nil
}
