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

// PostRepository implements forum.PostRepository using PostgreSQL.
type PostRepository struct {
	pool poolIface
}

// NewPostRepository creates a new PostRepository.
func NewPostRepository(pool poolIface) *PostRepository {
	return &PostRepository{pool: pool}
}

// Create stores a new post and assigns its ID.
func (r *PostRepository) Create(ctx context.Context, post *forum.Post) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO posts (owner_id, title, body, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`,
		post.OwnerID,
		post.Title,
		post.Body,
		post.CreatedAt,
		post.UpdatedAt,
	).Scan(&post.ID)
	if err != nil {
		return oops.Code("POST_CREATE_FAILED").
			With("operation", "insert post").
			With("owner_id", post.OwnerID).
			Wrap(err)
	}
	return nil
}

// GetByID retrieves a post by ID.
func (r *PostRepository) GetByID(ctx context.Context, id int64) (*forum.Post, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, owner_id, title, body, created_at, updated_at
		FROM posts
		WHERE id = $1
	`, id)

	post, err := scanPost(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("NOT_FOUND_POST").
			With("id", id).
			Wrap(forum.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("POST_GET_BY_ID_FAILED").
			With("operation", "get post by id").
			With("id", id).
			Wrap(err)
	}
	return post, nil
}

// List retrieves all posts, newest first.
func (r *PostRepository) List(ctx context.Context) ([]*forum.Post, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, owner_id, title, body, created_at, updated_at
		FROM posts
		ORDER BY id DESC
	`)
	if err != nil {
		return nil, oops.Code("POST_LIST_FAILED").
			With("operation", "list posts").
			Wrap(err)
	}
	defer rows.Close()

	var posts []*forum.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, oops.Code("POST_LIST_FAILED").
				With("operation", "scan post row").
				Wrap(err)
		}
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, oops.Code("POST_LIST_FAILED").
			With("operation", "iterate posts").
			Wrap(err)
	}
	return posts, nil
}

// Update updates an existing post.
func (r *PostRepository) Update(ctx context.Context, post *forum.Post) error {
	result, err := r.pool.Exec(ctx, `
		UPDATE posts SET
			title = $2,
			body = $3,
			updated_at = $4
		WHERE id = $1
	`,
		post.ID,
		post.Title,
		post.Body,
		post.UpdatedAt,
	)
	if err != nil {
		return oops.Code("POST_UPDATE_FAILED").
			With("operation", "update post").
			With("id", post.ID).
			Wrap(err)
	}
	if result.RowsAffected() == 0 {
		return oops.Code("NOT_FOUND_POST").
			With("id", post.ID).
			Wrap(forum.ErrNotFound)
	}
	return nil
}

// Delete removes a post. Comments on the post are left in place.
func (r *PostRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.pool.Exec(ctx, `
		DELETE FROM posts WHERE id = $1
	`, id)
	if err != nil {
		return oops.Code("POST_DELETE_FAILED").
			With("operation", "delete post").
			With("id", id).
			Wrap(err)
	}
	if result.RowsAffected() == 0 {
		return oops.Code("NOT_FOUND_POST").
			With("id", id).
			Wrap(forum.ErrNotFound)
	}
	return nil
}

// scanPost scans a single row into a Post.
// Callers are responsible for handling pgx.ErrNoRows.
func scanPost(row pgx.Row) (*forum.Post, error) {
	var post forum.Post

	err := row.Scan(
		&post.ID,
		&post.OwnerID,
		&post.Title,
		&post.Body,
		&post.CreatedAt,
		&post.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err //nolint:wrapcheck // Callers wrap with context-specific info
		}
		return nil, oops.Code("POST_SCAN_FAILED").
			With("operation", "scan post").
			Wrap(err)
	}
	return &post, nil
}

// Compile-time interface check.
var _ forum.PostRepository = (*PostRepository)(nil)
