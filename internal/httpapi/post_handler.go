// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ForumKit Contributors

package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/samber/oops"

	"github.com/forumkit/forumkit/internal/forum"
)

type createPostRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type modifyPostRequest struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

type postResponse struct {
	ID        int64     `json:"id"`
	OwnerID   int64     `json:"ownerId"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toPostResponse(p *forum.Post) postResponse {
	return postResponse{
		ID:        p.ID,
		OwnerID:   p.OwnerID,
		Title:     p.Title,
		Body:      p.Body,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func (a *API) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	caller, err := a.resolveCaller(r)
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	var req createPostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.writeError(w, r, oops.Code("BAD_REQUEST").Wrap(err))
		return
	}

	post, err := a.posts.Register(r.Context(), caller.ID, forum.PostDraft{
		Title: req.Title,
		Body:  req.Body,
	})
	if err != nil {
		a.recordMutation("post", err)
		a.writeError(w, r, err)
		return
	}
	a.recordMutation("post", nil)
	writeJSON(w, http.StatusCreated, toPostResponse(post))
}

// handleListPosts is deliberately ungated: the post list is public.
func (a *API) handleListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := a.posts.List(r.Context())
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	resp := make([]postResponse, 0, len(posts))
	for _, p := range posts {
		resp = append(resp, toPostResponse(p))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (a *API) handleGetPost(w http.ResponseWriter, r *http.Request) {
	if _, err := a.resolveCaller(r); err != nil {
		a.writeError(w, r, err)
		return
	}

	id, err := pathID(r)
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	post, err := a.posts.Get(r.Context(), id)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toPostResponse(post))
}

func (a *API) handleModifyPost(w http.ResponseWriter, r *http.Request) {
	caller, err := a.resolveCaller(r)
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	var req modifyPostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.writeError(w, r, oops.Code("BAD_REQUEST").Wrap(err))
		return
	}

	post, err := a.posts.Modify(r.Context(), caller.ID, forum.PostUpdate{
		ID:    req.ID,
		Title: req.Title,
		Body:  req.Body,
	})
	if err != nil {
		a.recordMutation("post", err)
		a.writeError(w, r, err)
		return
	}
	a.recordMutation("post", nil)
	writeJSON(w, http.StatusOK, toPostResponse(post))
}

func (a *API) handleDeletePost(w http.ResponseWriter, r *http.Request) {
	caller, err := a.resolveCaller(r)
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	id, err := pathID(r)
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	if err := a.posts.Delete(r.Context(), caller.ID, id); err != nil {
		a.recordMutation("post", err)
		a.writeError(w, r, err)
		return
	}
	a.recordMutation("post", nil)
	w.WriteHeader(http.StatusNoContent)
}
