// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ForumKit Contributors

package forum

import (
	"context"
	"errors"

	"github.com/samber/oops"
)

// The mutation pipeline is one shape shared by all three resources: the
// acting user is resolved first, then the target (or parent) resource,
// then ownership. The order is load-bearing: when both the actor and
// the target are absent, callers must observe NOT_FOUND_USER.

// resolveActor looks up the acting user for a mutation.
// An absent user means the caller's session is stale (the account was
// deleted after login); the pipeline fails before touching the target.
func resolveActor(ctx context.Context, users UserRepository, callerID int64) (*User, error) {
	actor, err := users.GetByID(ctx, callerID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, oops.Code("NOT_FOUND_USER").
				With("user_id", callerID).
				Wrap(ErrNotFound)
		}
		return nil, oops.Code("USER_LOOKUP_FAILED").
			With("operation", "get user by id").
			With("user_id", callerID).
			Wrap(err)
	}
	return actor, nil
}

// resolveOwnedTarget runs the modify/delete front half of the pipeline:
// actor lookup, then target lookup, then ownership comparison.
//
// findTarget must return its resource with lookup failures already
// wrapped in the resource's NOT_FOUND kind. denied is returned verbatim
// on ownership mismatch; callers select UNAUTHORIZED for modify and
// FORBIDDEN for delete so the two denials stay distinguishable.
func resolveOwnedTarget[R any](
	ctx context.Context,
	users UserRepository,
	callerID int64,
	findTarget func(context.Context) (R, error),
	ownerID func(R) int64,
	denied error,
) (R, *User, error) {
	var zero R

	actor, err := resolveActor(ctx, users, callerID)
	if err != nil {
		return zero, nil, err
	}

	target, err := findTarget(ctx)
	if err != nil {
		return zero, nil, err
	}

	if ownerID(target) != actor.ID {
		return zero, nil, denied
	}

	return target, actor, nil
}
