// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ForumKit Contributors

package forum

import (
	"context"
	"errors"
	"time"

	"github.com/samber/oops"
)

// PostService provides the ownership-gated post mutation pipeline.
type PostService struct {
	posts PostRepository
	users UserRepository
}

// NewPostService creates a new PostService.
func NewPostService(posts PostRepository, users UserRepository) *PostService {
	return &PostService{
		posts: posts,
		users: users,
	}
}

// PostDraft carries caller-supplied fields for a new post.
type PostDraft struct {
	Title string
	Body  string
}

// PostUpdate carries caller-supplied fields for a post modification.
type PostUpdate struct {
	ID    int64
	Title string
	Body  string
}

// Register creates a post owned by the caller. The owner is stamped
// from the resolved user, never from request input.
func (s *PostService) Register(ctx context.Context, callerID int64, draft PostDraft) (*Post, error) {
	actor, err := resolveActor(ctx, s.users, callerID)
	if err != nil {
		return nil, err
	}

	post, err := NewPost(actor.ID, draft.Title, draft.Body)
	if err != nil {
		return nil, err
	}

	if err := s.posts.Create(ctx, post); err != nil {
		return nil, oops.Code("POST_CREATE_FAILED").
			With("operation", "insert post").
			With("owner_id", actor.ID).
			Wrap(err)
	}

	post.Owner = actor
	return post, nil
}

// Get retrieves a post by ID.
func (s *PostService) Get(ctx context.Context, id int64) (*Post, error) {
	return s.findPost(ctx, id)
}

// List retrieves all posts.
func (s *PostService) List(ctx context.Context) ([]*Post, error) {
	posts, err := s.posts.List(ctx)
	if err != nil {
		return nil, oops.Code("POST_LIST_FAILED").
			With("operation", "list posts").
			Wrap(err)
	}
	return posts, nil
}

// Modify updates a post's title and body. Ownership mismatch is denied
// with UNAUTHORIZED, distinct from the FORBIDDEN used by Delete.
func (s *PostService) Modify(ctx context.Context, callerID int64, upd PostUpdate) (*Post, error) {
	post, actor, err := resolveOwnedTarget(ctx, s.users, callerID,
		func(ctx context.Context) (*Post, error) { return s.findPost(ctx, upd.ID) },
		func(p *Post) int64 { return p.OwnerID },
		oops.Code("UNAUTHORIZED").
			With("post_id", upd.ID).
			With("caller_id", callerID).
			Wrap(ErrUnauthorized),
	)
	if err != nil {
		return nil, err
	}

	if err := ValidateTitle(upd.Title); err != nil {
		return nil, err
	}
	if err := ValidateBody(upd.Body); err != nil {
		return nil, err
	}

	post.Title = upd.Title
	post.Body = upd.Body
	post.UpdatedAt = time.Now()

	if err := s.posts.Update(ctx, post); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, oops.Code("NOT_FOUND_POST").
				With("post_id", post.ID).
				Wrap(ErrNotFound)
		}
		return nil, oops.Code("POST_MODIFY_FAILED").
			With("operation", "update post").
			With("post_id", post.ID).
			Wrap(err)
	}

	post.Owner = actor
	return post, nil
}

// Delete removes a post. Ownership mismatch is denied with FORBIDDEN.
// Comments on the post are not cascaded.
func (s *PostService) Delete(ctx context.Context, callerID, id int64) error {
	post, _, err := resolveOwnedTarget(ctx, s.users, callerID,
		func(ctx context.Context) (*Post, error) { return s.findPost(ctx, id) },
		func(p *Post) int64 { return p.OwnerID },
		oops.Code("FORBIDDEN").
			With("post_id", id).
			With("caller_id", callerID).
			Wrap(ErrForbidden),
	)
	if err != nil {
		return err
	}

	if err := s.posts.Delete(ctx, post.ID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return oops.Code("NOT_FOUND_POST").
				With("post_id", post.ID).
				Wrap(ErrNotFound)
		}
		return oops.Code("POST_DELETE_FAILED").
			With("operation", "delete post").
			With("post_id", post.ID).
			Wrap(err)
	}
	return nil
}

func (s *PostService) findPost(ctx context.Context, id int64) (*Post, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, oops.Code("NOT_FOUND_POST").
				With("post_id", id).
				Wrap(ErrNotFound)
		}
		return nil, oops.Code("POST_LOOKUP_FAILED").
			With("operation", "get post by id").
			With("post_id", id).
			Wrap(err)
	}
	return post, nil
}
