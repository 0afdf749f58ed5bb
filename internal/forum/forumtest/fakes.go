// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ForumKit Contributors

// Package forumtest provides in-memory test doubles for the forum
// repositories and the password hasher.
package forumtest

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/forumkit/forumkit/internal/forum"
)

// FakeUserRepository is an in-memory forum.UserRepository. It enforces
// email uniqueness under a mutex, so concurrent registrations observe
// the same first-write-wins semantics as the real store's unique index.
type FakeUserRepository struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*forum.User

	// Err, when set, is returned by every method. Used to simulate
	// store failures.
	Err error
}

// NewFakeUserRepository creates an empty FakeUserRepository.
func NewFakeUserRepository() *FakeUserRepository {
	return &FakeUserRepository{users: make(map[int64]*forum.User)}
}

// Create stores a new user, assigning the next ID.
func (r *FakeUserRepository) Create(_ context.Context, user *forum.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	for _, u := range r.users {
		if strings.EqualFold(u.Email, user.Email) {
			return forum.ErrDuplicateEmail
		}
	}
	r.nextID++
	user.ID = r.nextID
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

// GetByID retrieves a user by ID.
func (r *FakeUserRepository) GetByID(_ context.Context, id int64) (*forum.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	u, ok := r.users[id]
	if !ok {
		return nil, forum.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

// GetByEmail retrieves a user by email (case-insensitive).
func (r *FakeUserRepository) GetByEmail(_ context.Context, email string) (*forum.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, forum.ErrNotFound
}

// List retrieves all users ordered by ID.
func (r *FakeUserRepository) List(_ context.Context) ([]*forum.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	out := make([]*forum.User, 0, len(r.users))
	for _, u := range r.users {
		cp := *u
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Update replaces a stored user.
func (r *FakeUserRepository) Update(_ context.Context, user *forum.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	if _, ok := r.users[user.ID]; !ok {
		return forum.ErrNotFound
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

// Delete removes a user.
func (r *FakeUserRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	if _, ok := r.users[id]; !ok {
		return forum.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

// Count returns the number of stored users.
func (r *FakeUserRepository) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.users)
}

// FakePostRepository is an in-memory forum.PostRepository.
type FakePostRepository struct {
	mu     sync.Mutex
	nextID int64
	posts  map[int64]*forum.Post

	Err error
}

// NewFakePostRepository creates an empty FakePostRepository.
func NewFakePostRepository() *FakePostRepository {
	return &FakePostRepository{posts: make(map[int64]*forum.Post)}
}

// Create stores a new post, assigning the next ID.
func (r *FakePostRepository) Create(_ context.Context, post *forum.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.nextID++
	post.ID = r.nextID
	cp := *post
	cp.Owner = nil
	r.posts[post.ID] = &cp
	return nil
}

// GetByID retrieves a post by ID.
func (r *FakePostRepository) GetByID(_ context.Context, id int64) (*forum.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	p, ok := r.posts[id]
	if !ok {
		return nil, forum.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

// List retrieves all posts ordered by ID.
func (r *FakePostRepository) List(_ context.Context) ([]*forum.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	out := make([]*forum.Post, 0, len(r.posts))
	for _, p := range r.posts {
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Update replaces a stored post.
func (r *FakePostRepository) Update(_ context.Context, post *forum.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	if _, ok := r.posts[post.ID]; !ok {
		return forum.ErrNotFound
	}
	cp := *post
	cp.Owner = nil
	r.posts[post.ID] = &cp
	return nil
}

// Delete removes a post. Comments are untouched.
func (r *FakePostRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	if _, ok := r.posts[id]; !ok {
		return forum.ErrNotFound
	}
	delete(r.posts, id)
	return nil
}

// FakeCommentRepository is an in-memory forum.CommentRepository.
type FakeCommentRepository struct {
	mu       sync.Mutex
	nextID   int64
	comments map[int64]*forum.Comment

	Err error
}

// NewFakeCommentRepository creates an empty FakeCommentRepository.
func NewFakeCommentRepository() *FakeCommentRepository {
	return &FakeCommentRepository{comments: make(map[int64]*forum.Comment)}
}

// Create stores a new comment, assigning the next ID.
func (r *FakeCommentRepository) Create(_ context.Context, comment *forum.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.nextID++
	comment.ID = r.nextID
	cp := *comment
	cp.Author = nil
	cp.Post = nil
	r.comments[comment.ID] = &cp
	return nil
}

// GetByID retrieves a comment by ID.
func (r *FakeCommentRepository) GetByID(_ context.Context, id int64) (*forum.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	c, ok := r.comments[id]
	if !ok {
		return nil, forum.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

// ListByPost retrieves all comments on a post ordered by ID.
func (r *FakeCommentRepository) ListByPost(_ context.Context, postID int64) ([]*forum.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	var out []*forum.Comment
	for _, c := range r.comments {
		if c.PostID == postID {
			cp := *c
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Update replaces a stored comment.
func (r *FakeCommentRepository) Update(_ context.Context, comment *forum.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	if _, ok := r.comments[comment.ID]; !ok {
		return forum.ErrNotFound
	}
	cp := *comment
	cp.Author = nil
	cp.Post = nil
	r.comments[comment.ID] = &cp
	return nil
}

// Delete removes a comment.
func (r *FakeCommentRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	if _, ok := r.comments[id]; !ok {
		return forum.ErrNotFound
	}
	delete(r.comments, id)
	return nil
}

// PlainHasher is a forum.PasswordHasher that prefixes instead of
// hashing. Verification is a string comparison.
type PlainHasher struct{}

// Hash returns the password with a recognizable prefix.
func (PlainHasher) Hash(password string) (string, error) {
	return "plain:" + password, nil
}

// Verify checks the prefixed form.
func (PlainHasher) Verify(password, hash string) (bool, error) {
	return hash == "plain:"+password, nil
}

// Compile-time interface checks.
var (
	_ forum.UserRepository    = (*FakeUserRepository)(nil)
	_ forum.PostRepository    = (*FakePostRepository)(nil)
	_ forum.CommentRepository = (*FakeCommentRepository)(nil)
	_ forum.PasswordHasher    = PlainHasher{}
)
