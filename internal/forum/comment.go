// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ForumKit Contributors

package forum

import (
	"context"
	"time"

	"github.com/samber/oops"
)

// Comment is a comment on a post. PostID and AuthorID are stamped from
// resolved entities at creation and never change. A comment's lifecycle
// is independent of its post after creation.
type Comment struct {
	ID        int64
	PostID    int64
	AuthorID  int64
	Body      string
	CreatedAt time.Time
	UpdatedAt time.Time

	// Author and Post are resolved entities populated by services for
	// response shaping. Not persisted with the comment row.
	Author *User
	Post   *Post
}

// NewComment creates a validated Comment on postID authored by authorID.
func NewComment(postID, authorID int64, body string) (*Comment, error) {
	if postID <= 0 {
		return nil, oops.Code("BAD_REQUEST").Errorf("post id must be positive")
	}
	if authorID <= 0 {
		return nil, oops.Code("BAD_REQUEST").Errorf("author id must be positive")
	}
	now := time.Now()
	c := &Comment{
		PostID:    postID,
		AuthorID:  authorID,
		Body:      body,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := ValidateBody(c.Body); err != nil {
		return nil, err
	}
	return c, nil
}

// CommentRepository manages comment persistence.
type CommentRepository interface {
	// Create stores a new comment and assigns its ID.
	Create(ctx context.Context, comment *Comment) error

	// GetByID retrieves a comment by ID. Returns ErrNotFound if absent.
	GetByID(ctx context.Context, id int64) (*Comment, error)

	// ListByPost retrieves all comments on a post ordered by ID.
	ListByPost(ctx context.Context, postID int64) ([]*Comment, error)

	// Update updates the body of an existing comment.
	Update(ctx context.Context, comment *Comment) error

	// Delete removes a comment. Returns ErrNotFound if absent.
	Delete(ctx context.Context, id int64) error
}
