// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ForumKit Contributors

package forum

import (
	"context"
	"time"

	"github.com/samber/oops"
)

// Title and body length constraints.
const (
	MaxTitleLength = 200
	MaxBodyLength  = 20000
)

// Post is a forum post owned by exactly one user.
// OwnerID is stamped from the resolved caller at creation and never changes.
type Post struct {
	ID        int64
	OwnerID   int64
	Title     string
	Body      string
	CreatedAt time.Time
	UpdatedAt time.Time

	// Owner is the resolved owning user, populated by services for
	// response shaping. Not persisted with the post row.
	Owner *User
}

// NewPost creates a validated Post owned by ownerID.
func NewPost(ownerID int64, title, body string) (*Post, error) {
	if ownerID <= 0 {
		return nil, oops.Code("BAD_REQUEST").Errorf("owner id must be positive")
	}
	now := time.Now()
	p := &Post{
		OwnerID:   ownerID,
		Title:     title,
		Body:      body,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate checks required fields.
func (p *Post) Validate() error {
	if err := ValidateTitle(p.Title); err != nil {
		return err
	}
	return ValidateBody(p.Body)
}

// ValidateTitle validates a post title.
func ValidateTitle(title string) error {
	if title == "" {
		return oops.Code("BAD_REQUEST").Errorf("title cannot be empty")
	}
	if len(title) > MaxTitleLength {
		return oops.Code("BAD_REQUEST").
			With("max", MaxTitleLength).
			Errorf("title must be at most %d characters", MaxTitleLength)
	}
	return nil
}

// ValidateBody validates a post or comment body.
func ValidateBody(body string) error {
	if body == "" {
		return oops.Code("BAD_REQUEST").Errorf("body cannot be empty")
	}
	if len(body) > MaxBodyLength {
		return oops.Code("BAD_REQUEST").
			With("max", MaxBodyLength).
			Errorf("body must be at most %d characters", MaxBodyLength)
	}
	return nil
}

// PostRepository manages post persistence.
type PostRepository interface {
	// Create stores a new post and assigns its ID.
	Create(ctx context.Context, post *Post) error

	// GetByID retrieves a post by ID. Returns ErrNotFound if absent.
	GetByID(ctx context.Context, id int64) (*Post, error)

	// List retrieves all posts ordered by ID.
	List(ctx context.Context) ([]*Post, error)

	// Update updates title and body for an existing post.
	Update(ctx context.Context, post *Post) error

	// Delete removes a post. Returns ErrNotFound if absent.
	// Comments referencing the post are left in place.
	Delete(ctx context.Context, id int64) error
}
