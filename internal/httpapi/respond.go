// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ForumKit Contributors

package httpapi

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/forumkit/forumkit/pkg/errutil"
)

// errorResponse is the wire shape for all error payloads.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// statusForCode maps error codes to HTTP status codes. Codes outside
// the taxonomy are treated as internal failures.
func statusForCode(code string) int {
	switch code {
	case "UNAUTHORIZED":
		return http.StatusUnauthorized
	case "FORBIDDEN":
		return http.StatusForbidden
	case "NOT_FOUND_USER", "NOT_FOUND_POST", "NOT_FOUND_COMMENT":
		return http.StatusNotFound
	case "ALREADY_EXIST":
		return http.StatusConflict
	case "BAD_REQUEST":
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	//nolint:errcheck // response write error means the client is gone
	json.NewEncoder(w).Encode(v)
}

func (a *API) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errutil.CodeOf(err)
	status := statusForCode(code)

	if status == http.StatusInternalServerError {
		errutil.LogError(a.logger, "request failed", err)
		// Never leak internal details to clients.
		writeJSON(w, status, errorResponse{Code: "INTERNAL", Message: "internal error"})
		return
	}

	a.logger.Debug("request rejected",
		slog.String("path", r.URL.Path),
		slog.String("code", code))
	writeJSON(w, status, errorResponse{Code: code, Message: clientMessage(code)})
}

func clientMessage(code string) string {
	switch code {
	case "UNAUTHORIZED":
		return "unauthorized"
	case "FORBIDDEN":
		return "forbidden"
	case "NOT_FOUND_USER":
		return "user not found"
	case "NOT_FOUND_POST":
		return "post not found"
	case "NOT_FOUND_COMMENT":
		return "comment not found"
	case "ALREADY_EXIST":
		return "already exists"
	case "BAD_REQUEST":
		return "bad request"
	default:
		return "internal error"
	}
}
