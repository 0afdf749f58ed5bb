// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ForumKit Contributors

package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/samber/oops"

	"github.com/forumkit/forumkit/internal/forum"
)

type createCommentRequest struct {
	PostID int64  `json:"postId"`
	Body   string `json:"body"`
}

type modifyCommentRequest struct {
	ID   int64  `json:"id"`
	Body string `json:"body"`
}

type commentResponse struct {
	ID        int64     `json:"id"`
	PostID    int64     `json:"postId"`
	AuthorID  int64     `json:"authorId"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toCommentResponse(c *forum.Comment) commentResponse {
	return commentResponse{
		ID:        c.ID,
		PostID:    c.PostID,
		AuthorID:  c.AuthorID,
		Body:      c.Body,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func (a *API) handleCreateComment(w http.ResponseWriter, r *http.Request) {
	caller, err := a.resolveCaller(r)
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	var req createCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.writeError(w, r, oops.Code("BAD_REQUEST").Wrap(err))
		return
	}

	comment, err := a.comments.Register(r.Context(), caller.ID, forum.CommentDraft{
		PostID: req.PostID,
		Body:   req.Body,
	})
	if err != nil {
		a.recordMutation("comment", err)
		a.writeError(w, r, err)
		return
	}
	a.recordMutation("comment", nil)
	writeJSON(w, http.StatusCreated, toCommentResponse(comment))
}

// handleListComments serves GET /comments?postId=N. Unlike the post
// list this one is gated.
func (a *API) handleListComments(w http.ResponseWriter, r *http.Request) {
	if _, err := a.resolveCaller(r); err != nil {
		a.writeError(w, r, err)
		return
	}

	raw := r.URL.Query().Get("postId")
	if raw == "" {
		a.writeError(w, r, oops.Code("BAD_REQUEST").Errorf("postId query parameter required"))
		return
	}
	postID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		a.writeError(w, r, oops.Code("BAD_REQUEST").With("postId", raw).Errorf("invalid postId"))
		return
	}

	comments, err := a.comments.ListByPost(r.Context(), postID)
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	resp := make([]commentResponse, 0, len(comments))
	for _, c := range comments {
		resp = append(resp, toCommentResponse(c))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (a *API) handleGetComment(w http.ResponseWriter, r *http.Request) {
	if _, err := a.resolveCaller(r); err != nil {
		a.writeError(w, r, err)
		return
	}

	id, err := pathID(r)
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	comment, err := a.comments.Get(r.Context(), id)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toCommentResponse(comment))
}

func (a *API) handleModifyComment(w http.ResponseWriter, r *http.Request) {
	caller, err := a.resolveCaller(r)
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	var req modifyCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.writeError(w, r, oops.Code("BAD_REQUEST").Wrap(err))
		return
	}

	comment, err := a.comments.Modify(r.Context(), caller.ID, forum.CommentUpdate{
		ID:   req.ID,
		Body: req.Body,
	})
	if err != nil {
		a.recordMutation("comment", err)
		a.writeError(w, r, err)
		return
	}
	a.recordMutation("comment", nil)
	writeJSON(w, http.StatusOK, toCommentResponse(comment))
}

func (a *API) handleDeleteComment(w http.ResponseWriter, r *http.Request) {
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

	if err := a.comments.Delete(r.Context(), caller.ID, id); err != nil {
		a.recordMutation("comment", err)
		a.writeError(w, r, err)
		return
	}
	a.recordMutation("comment", nil)
	w.WriteHeader(http.StatusNoContent)
}
