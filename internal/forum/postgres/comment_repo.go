// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ForumKit Contributors

package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/samber/oops"

	"github.com/forumkit/forumkit/internal/forum"
)

// CommentRepository implements forum.CommentRepository using PostgreSQL.
type CommentRepository struct {
	pool poolIface
}

// NewCommentRepository creates a new CommentRepository.
func NewCommentRepository(pool poolIface) *CommentRepository {
	return &CommentRepository{pool: pool}
}

// Create stores a new comment and assigns its ID.
func (r *CommentRepository) Create(ctx context.Context, comment *forum.Comment) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO comments (post_id, author_id, body, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`,
		comment.PostID,
		comment.AuthorID,
		comment.Body,
		comment.CreatedAt,
		comment.UpdatedAt,
	).Scan(&comment.ID)
	if err != nil {
		return oops.Code("COMMENT_CREATE_FAILED").
			With("operation", "insert comment").
			With("post_id", comment.PostID).
			Wrap(err)
	}
	return nil
}

// GetByID retrieves a comment by ID.
func (r *CommentRepository) GetByID(ctx context.Context, id int64) (*forum.Comment, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, post_id, author_id, body, created_at, updated_at
		FROM comments
		WHERE id = $1
	`, id)

	comment, err := scanComment(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("NOT_FOUND_COMMENT").
			With("id", id).
			Wrap(forum.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("COMMENT_GET_BY_ID_FAILED").
			With("operation", "get comment by id").
			With("id", id).
			Wrap(err)
	}
	return comment, nil
}

// ListByPost retrieves all comments on a post, oldest first.
func (r *CommentRepository) ListByPost(ctx context.Context, postID int64) ([]*forum.Comment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, post_id, author_id, body, created_at, updated_at
		FROM comments
		WHERE post_id = $1
		ORDER BY id
	`, postID)
	if err != nil {
		return nil, oops.Code("COMMENT_LIST_FAILED").
			With("operation", "list comments").
			With("post_id", postID).
			Wrap(err)
	}
	defer rows.Close()

	var comments []*forum.Comment
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, oops.Code("COMMENT_LIST_FAILED").
				With("operation", "scan comment row").
				With("post_id", postID).
				Wrap(err)
		}
		comments = append(comments, comment)
	}

	if err := rows.Err(); err != nil {
		return nil, oops.Code("COMMENT_LIST_FAILED").
			With("operation", "iterate comments").
			With("post_id", postID).
			Wrap(err)
	}
	return comments, nil
}

// Update updates an existing comment.
func (r *CommentRepository) Update(ctx context.Context, comment *forum.Comment) error {
	result, err := r.pool.Exec(ctx, `
		UPDATE comments SET
			body = $2,
			updated_at = $3
		WHERE id = $1
	`,
		comment.ID,
		comment.Body,
		comment.UpdatedAt,
	)
	if err != nil {
		return oops.Code("COMMENT_UPDATE_FAILED").
			With("operation", "update comment").
			With("id", comment.ID).
			Wrap(err)
	}
	if result.RowsAffected() == 0 {
		return oops.Code("NOT_FOUND_COMMENT").
			With("id", comment.ID).
			Wrap(forum.ErrNotFound)
	}
	return nil
}

// Delete removes a comment.
func (r *CommentRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.pool.Exec(ctx, `
		DELETE FROM comments WHERE id = $1
	`, id)
	if err != nil {
		return oops.Code("COMMENT_DELETE_FAILED").
			With("operation", "delete comment").
			With("id", id).
			Wrap(err)
	}
	if result.RowsAffected() == 0 {
		return oops.Code("NOT_FOUND_COMMENT").
			With("id", id).
			Wrap(forum.ErrNotFound)
	}
	return nil
}

// scanComment scans a single row into a Comment.
// Callers are responsible for handling pgx.ErrNoRows.
func scanComment(row pgx.Row) (*forum.Comment, error) {
	var comment forum.Comment

	err := row.Scan(
		&comment.ID,
		&comment.PostID,
		&comment.AuthorID,
		&comment.Body,
		&comment.CreatedAt,
		&comment.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err //nolint:wrapcheck // Callers wrap with context-specific info
		}
		return nil, oops.Code("COMMENT_SCAN_FAILED").
			With("operation", "scan comment").
			Wrap(err)
	}
	return &comment, nil
}

// Compile-time interface check.
var _ forum.CommentRepository = (*CommentRepository)(nil)
