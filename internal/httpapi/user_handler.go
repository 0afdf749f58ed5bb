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

type registerUserRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName"`
}

type modifyUserRequest struct {
	ID          int64  `json:"id"`
	DisplayName string `json:"displayName"`
	Password    string `json:"password"`
}

// userResponse never carries the password hash.
type userResponse struct {
	ID          int64     `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"displayName"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toUserResponse(u *forum.User) userResponse {
	return userResponse{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

func (a *API) handleRegisterUser(w http.ResponseWriter, r *http.Request) {
	var req registerUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.writeError(w, r, oops.Code("BAD_REQUEST").Wrap(err))
		return
	}

	user, err := a.users.Register(r.Context(), req.Email, req.Password, req.DisplayName)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toUserResponse(user))
}

func (a *API) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := a.users.List(r.Context())
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	resp := make([]userResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, toUserResponse(u))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (a *API) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	user, err := a.users.GetByID(r.Context(), id)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(user))
}

func (a *API) handleGetUserByEmail(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		a.writeError(w, r, oops.Code("BAD_REQUEST").Errorf("email query parameter required"))
		return
	}

	user, err := a.users.GetByEmail(r.Context(), email)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(user))
}

func (a *API) handleModifyUser(w http.ResponseWriter, r *http.Request) {
	caller, err := a.resolveCaller(r)
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	var req modifyUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.writeError(w, r, oops.Code("BAD_REQUEST").Wrap(err))
		return
	}

	user, err := a.users.Modify(r.Context(), caller.ID, forum.UserUpdate{
		ID:          req.ID,
		DisplayName: req.DisplayName,
		Password:    req.Password,
	})
	if err != nil {
		a.recordMutation("user", err)
		a.writeError(w, r, err)
		return
	}
	a.recordMutation("user", nil)
	writeJSON(w, http.StatusOK, toUserResponse(user))
}

func (a *API) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
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

	if err := a.users.Delete(r.Context(), caller.ID, id); err != nil {
		a.recordMutation("user", err)
		a.writeError(w, r, err)
		return
	}
	a.recordMutation("user", nil)
	w.WriteHeader(http.StatusNoContent)
}
