// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ForumKit Contributors

package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forumkit/forumkit/internal/forum"
)

func TestPostRepository_Create(t *testing.T) {
	now := time.Now()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err, "failed to create mock")
	defer mock.Close()

	rows := pgxmock.NewRows([]string{"id"}).AddRow(int64(7))
	mock.ExpectQuery(`INSERT INTO posts`).
		WithArgs(int64(1), "First post", "Hello.", now, now).
		WillReturnRows(rows)

	repo := NewPostRepository(mock)
	post := &forum.Post{OwnerID: 1, Title: "First post", Body: "Hello.", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, repo.Create(context.Background(), post))
	assert.Equal(t, int64(7), post.ID)

	assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
}

func TestPostRepository_GetByID(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name      string
		setupMock func(mock pgxmock.PgxPoolIface)
		wantErr   error
	}{
		{
			name: "found",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				rows := pgxmock.NewRows([]string{"id", "owner_id", "title", "body", "created_at", "updated_at"}).
					AddRow(int64(7), int64(1), "First post", "Hello.", now, now)
				mock.ExpectQuery(`SELECT id, owner_id, title, body, created_at, updated_at`).
					WithArgs(int64(7)).
					WillReturnRows(rows)
			},
		},
		{
			name: "not found maps to sentinel",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				rows := pgxmock.NewRows([]string{"id", "owner_id", "title", "body", "created_at", "updated_at"})
				mock.ExpectQuery(`SELECT id, owner_id, title, body, created_at, updated_at`).
					WithArgs(int64(7)).
					WillReturnRows(rows)
			},
			wantErr: forum.ErrNotFound,
		},
		{
			name: "database error",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`SELECT id, owner_id, title, body, created_at, updated_at`).
					WithArgs(int64(7)).
					WillReturnError(errors.New("connection refused"))
			},
			wantErr: errors.New("connection refused"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err, "failed to create mock")
			defer mock.Close()

			tt.setupMock(mock)

			repo := NewPostRepository(mock)
			got, err := repo.GetByID(context.Background(), 7)

			switch {
			case tt.wantErr == nil:
				require.NoError(t, err)
				assert.Equal(t, int64(7), got.ID)
				assert.Equal(t, int64(1), got.OwnerID)
			case errors.Is(tt.wantErr, forum.ErrNotFound):
				assert.ErrorIs(t, err, forum.ErrNotFound)
			default:
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr.Error())
			}

			assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
		})
	}
}

func TestPostRepository_List(t *testing.T) {
	now := time.Now()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err, "failed to create mock")
	defer mock.Close()

	rows := pgxmock.NewRows([]string{"id", "owner_id", "title", "body", "created_at", "updated_at"}).
		AddRow(int64(9), int64(2), "Second", "b", now, now).
		AddRow(int64(7), int64(1), "First", "a", now, now)
	mock.ExpectQuery(`SELECT id, owner_id, title, body, created_at, updated_at`).
		WillReturnRows(rows)

	repo := NewPostRepository(mock)
	got, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(9), got[0].ID)
	assert.Equal(t, int64(7), got[1].ID)

	assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
}

func TestPostRepository_Update(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name      string
		setupMock func(mock pgxmock.PgxPoolIface)
		wantErr   error
	}{
		{
			name: "successful update",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(`UPDATE posts SET`).
					WithArgs(int64(7), "Edited", "New body.", now).
					WillReturnResult(pgxmock.NewResult("UPDATE", 1))
			},
		},
		{
			name: "no rows affected maps to not found",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(`UPDATE posts SET`).
					WithArgs(int64(7), "Edited", "New body.", now).
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

			repo := NewPostRepository(mock)
			err = repo.Update(context.Background(), &forum.Post{
				ID:        7,
				Title:     "Edited",
				Body:      "New body.",
				UpdatedAt: now,
			})

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}

			assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
		})
	}
}

func TestPostRepository_Delete(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(mock pgxmock.PgxPoolIface)
		wantErr   error
	}{
		{
			name: "successful delete",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(`DELETE FROM posts`).
					WithArgs(int64(7)).
					WillReturnResult(pgxmock.NewResult("DELETE", 1))
			},
		},
		{
			name: "missing post maps to not found",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(`DELETE FROM posts`).
					WithArgs(int64(7)).
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

			repo := NewPostRepository(mock)
			err = repo.Delete(context.Background(), 7)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}

			assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
		})
	}
}
