// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ForumKit Contributors

package forum

import (
	"context"
	"errors"
	"time"

	"github.com/samber/oops"
)

// CommentService provides the ownership-gated comment mutation pipeline.
// Creating a comment additionally requires its parent post to exist;
// modify and delete check the comment itself only.
type CommentService struct {
	comments CommentRepository
	posts    PostRepository
	users    UserRepository
}

// NewCommentService creates a new CommentService.
func NewCommentService(comments CommentRepository, posts PostRepository, users UserRepository) *CommentService {
	return &CommentService{
		comments: comments,
		posts:    posts,
		users:    users,
	}
}

// CommentDraft carries caller-supplied fields for a new comment.
type CommentDraft struct {
	PostID int64
	Body   string
}

// CommentUpdate carries caller-supplied fields for a comment modification.
type CommentUpdate struct {
	ID   int64
	Body string
}

// Register creates a comment on a post. The actor lookup precedes the
// parent post lookup; the author and post ids are stamped from the
// resolved entities, never from request input.
func (s *CommentService) Register(ctx context.Context, callerID int64, draft CommentDraft) (*Comment, error) {
	actor, err := resolveActor(ctx, s.users, callerID)
	if err != nil {
		return nil, err
	}

	post, err := s.posts.GetByID(ctx, draft.PostID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, oops.Code("NOT_FOUND_POST").
				With("post_id", draft.PostID).
				Wrap(ErrNotFound)
		}
		return nil, oops.Code("POST_LOOKUP_FAILED").
			With("operation", "get post by id").
			With("post_id", draft.PostID).
			Wrap(err)
	}

	comment, err := NewComment(post.ID, actor.ID, draft.Body)
	if err != nil {
		return nil, err
	}

	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, oops.Code("COMMENT_CREATE_FAILED").
			With("operation", "insert comment").
			With("post_id", post.ID).
			With("author_id", actor.ID).
			Wrap(err)
	}

	comment.Author = actor
	comment.Post = post
	return comment, nil
}

// Get retrieves a comment by ID.
func (s *CommentService) Get(ctx context.Context, id int64) (*Comment, error) {
	return s.findComment(ctx, id)
}

// ListByPost retrieves all comments on a post.
func (s *CommentService) ListByPost(ctx context.Context, postID int64) ([]*Comment, error) {
	comments, err := s.comments.ListByPost(ctx, postID)
	if err != nil {
		return nil, oops.Code("COMMENT_LIST_FAILED").
			With("operation", "list comments by post").
			With("post_id", postID).
			Wrap(err)
	}
	return comments, nil
}

// Modify updates a comment's body. Ownership mismatch is denied with
// UNAUTHORIZED, distinct from the FORBIDDEN used by Delete.
func (s *CommentService) Modify(ctx context.Context, callerID int64, upd CommentUpdate) (*Comment, error) {
	comment, actor, err := resolveOwnedTarget(ctx, s.users, callerID,
		func(ctx context.Context) (*Comment, error) { return s.findComment(ctx, upd.ID) },
		func(c *Comment) int64 { return c.AuthorID },
		oops.Code("UNAUTHORIZED").
			With("comment_id", upd.ID).
			With("caller_id", callerID).
			Wrap(ErrUnauthorized),
	)
	if err != nil {
		return nil, err
	}

	if err := ValidateBody(upd.Body); err != nil {
		return nil, err
	}

	comment.Body = upd.Body
	comment.UpdatedAt = time.Now()

	if err := s.comments.Update(ctx, comment); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, oops.Code("NOT_FOUND_COMMENT").
				With("comment_id", comment.ID).
				Wrap(ErrNotFound)
		}
		return nil, oops.Code("COMMENT_MODIFY_FAILED").
			With("operation", "update comment").
			With("comment_id", comment.ID).
			Wrap(err)
	}

	comment.Author = actor
	return comment, nil
}

// Delete removes a comment. Ownership mismatch is denied with FORBIDDEN.
func (s *CommentService) Delete(ctx context.Context, callerID, id int64) error {
	comment, _, err := resolveOwnedTarget(ctx, s.users, callerID,
		func(ctx context.Context) (*Comment, error) { return s.findComment(ctx, id) },
		func(c *Comment) int64 { return c.AuthorID },
		oops.Code("FORBIDDEN").
			With("comment_id", id).
			With("caller_id", callerID).
			Wrap(ErrForbidden),
	)
	if err != nil {
		return err
	}

	if err := s.comments.Delete(ctx, comment.ID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return oops.Code("NOT_FOUND_COMMENT").
				With("comment_id", comment.ID).
				Wrap(ErrNotFound)
		}
		return oops.Code("COMMENT_DELETE_FAILED").
			With("operation", "delete comment").
			With("comment_id", comment.ID).
			Wrap(err)
	}
	return nil
}

func (s *CommentService) findComment(ctx context.Context, id int64) (*Comment, error) {
	comment, err := s.comments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, oops.Code("NOT_FOUND_COMMENT").
				With("comment_id", id).
				Wrap(ErrNotFound)
		}
		return nil, oops.Code("COMMENT_LOOKUP_FAILED").
			With("operation", "get comment by id").
			With("comment_id", id).
			Wrap(err)
	}
	return comment, nil
}
