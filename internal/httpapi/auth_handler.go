// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ForumKit Contributors

package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/samber/oops"

	"github.com/forumkit/forumkit/internal/auth"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type callerResponse struct {
	ID          int64  `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
}

func toCallerResponse(c auth.Caller) callerResponse {
	return callerResponse{ID: c.ID, Email: c.Email, DisplayName: c.DisplayName}
}

func (a *API) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.writeError(w, r, oops.Code("BAD_REQUEST").Wrap(err))
		return
	}

	caller, token, err := a.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if a.metrics != nil {
			a.metrics.RecordLogin("denied")
		}
		a.writeError(w, r, err)
		return
	}
	if a.metrics != nil {
		a.metrics.RecordLogin("ok")
	}

	setSessionCookie(w, token, a.auth.SessionTTL())
	writeJSON(w, http.StatusOK, toCallerResponse(caller))
}

func (a *API) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := a.auth.Logout(r.Context(), sessionToken(r)); err != nil {
		a.writeError(w, r, err)
		return
	}
	clearSessionCookie(w)
	writeJSON(w, http.StatusOK, nil)
}

// handleGetLoginUser echoes the caller snapshot bound to the session.
func (a *API) handleGetLoginUser(w http.ResponseWriter, r *http.Request) {
	caller, err := a.resolveCaller(r)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toCallerResponse(caller))
}
