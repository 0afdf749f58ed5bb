// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ForumKit Contributors

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forumkit/forumkit/internal/forum"
)

func TestCommentRepository_Create(t *testing.T) {
	now := time.Now()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err, "failed to create mock")
	defer mock.Close()

	rows := pgxmock.NewRows([]string{"id"}).AddRow(int64(11))
	mock.ExpectQuery(`INSERT INTO comments`).
		WithArgs(int64(7), int64(2), "Nice post.", now, now).
		WillReturnRows(rows)

	repo := NewCommentRepository(mock)
	comment := &forum.Comment{PostID: 7, AuthorID: 2, Body: "Nice post.", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, repo.Create(context.Background(), comment))
	assert.Equal(t, int64(11), comment.ID)

	assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
}

func TestCommentRepository_GetByID(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name      string
		setupMock func(mock pgxmock.PgxPoolIface)
		wantErr   error
	}{
		{
			name: "found",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				rows := pgxmock.NewRows([]string{"id", "post_id", "author_id", "body", "created_at", "updated_at"}).
					AddRow(int64(11), int64(7), int64(2), "Nice post.", now, now)
				mock.ExpectQuery(`SELECT id, post_id, author_id, body, created_at, updated_at`).
					WithArgs(int64(11)).
					WillReturnRows(rows)
			},
		},
		{
			name: "not found maps to sentinel",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				rows := pgxmock.NewRows([]string{"id", "post_id", "author_id", "body", "created_at", "updated_at"})
				mock.ExpectQuery(`SELECT id, post_id, author_id, body, created_at, updated_at`).
					WithArgs(int64(11)).
					WillReturnRows(rows)
			},
			wantErr: forum.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err, "failed to create mock")
			defer mock.Close()

			tt.setupMock(mock)

			repo := NewCommentRepository(mock)
			got, err := repo.GetByID(context.Background(), 11)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, int64(7), got.PostID)
				assert.Equal(t, int64(2), got.AuthorID)
			}

			assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
		})
	}
}

func TestCommentRepository_ListByPost(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name      string
		setupMock func(mock pgxmock.PgxPoolIface)
		wantLen   int
	}{
		{
			name: "comments in insertion order",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				rows := pgxmock.NewRows([]string{"id", "post_id", "author_id", "body", "created_at", "updated_at"}).
					AddRow(int64(11), int64(7), int64(2), "First.", now, now).
					AddRow(int64(12), int64(7), int64(3), "Second.", now, now)
				mock.ExpectQuery(`SELECT id, post_id, author_id, body, created_at, updated_at`).
					WithArgs(int64(7)).
					WillReturnRows(rows)
			},
			wantLen: 2,
		},
		{
			name: "no comments",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				rows := pgxmock.NewRows([]string{"id", "post_id", "author_id", "body", "created_at", "updated_at"})
				mock.ExpectQuery(`SELECT id, post_id, author_id, body, created_at, updated_at`).
					WithArgs(int64(7)).
					WillReturnRows(rows)
			},
			wantLen: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err, "failed to create mock")
			defer mock.Close()

			tt.setupMock(mock)

			repo := NewCommentRepository(mock)
			got, err := repo.ListByPost(context.Background(), 7)
			require.NoError(t, err)
			assert.Len(t, got, tt.wantLen)

			assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
		})
	}
}

func TestCommentRepository_Update(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name      string
		setupMock func(mock pgxmock.PgxPoolIface)
		wantErr   error
	}{
		{
			name: "successful update",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(`UPDATE comments SET`).
					WithArgs(int64(11), "Edited.", now).
					WillReturnResult(pgxmock.NewResult("UPDATE", 1))
			},
		},
		{
			name: "no rows affected maps to not found",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(`UPDATE comments SET`).
					WithArgs(int64(11), "Edited.", now).
					WillReturnResult(pgxmock.NewResult("UPDATE", 0))
			},
			wantErr: forum.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err, "failed to create mock")
			defer mock.Close()

			tt.setupMock(mock)

			repo := NewCommentRepository(mock)
			err = repo.Update(context.Background(), &forum.Comment{ID: 11, Body: "Edited.", UpdatedAt: now})

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}

			assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
		})
	}
}

func TestCommentRepository_Delete(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(mock pgxmock.PgxPoolIface)
		wantErr   error
	}{
		{
			name: "successful delete",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(`DELETE FROM comments`).
					WithArgs(int64(11)).
					WillReturnResult(pgxmock.NewResult("DELETE", 1))
			},
		},
		{
			name: "missing comment maps to not found",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(`DELETE FROM comments`).
					WithArgs(int64(11)).
					WillReturnResult(pgxmock.NewResult("DELETE", 0))
			},
			wantErr: forum.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err, "failed to create mock")
			defer mock.Close()

			tt.setupMock(mock)

			repo := NewCommentRepository(mock)
			err = repo.Delete(context.Background(), 11)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}

			assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
		})
	}
}
