// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ForumKit Contributors

package forum

import "errors"

// Sentinel errors returned by repositories and services. Call sites wrap
// them with oops codes; boundaries branch on the code, never the message.
var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateEmail is returned when a registration collides with an
	// existing email, whether observed by lookup or by the store's
	// uniqueness constraint under a race.
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrUnauthorized is returned when no caller is resolved, and on
	// ownership mismatch during modify operations.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden is returned on ownership mismatch during delete
	// operations. Kept distinct from ErrUnauthorized deliberately: a
	// denied modify and a denied delete surface as different kinds.
	ErrForbidden = errors.New("forbidden")
)
