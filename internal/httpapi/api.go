// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ForumKit Contributors

// Package httpapi exposes the forum services over HTTP. Handlers stay
// thin: decode, resolve the caller where the route is gated, call the
// service, encode. All authorization decisions live in the services.
package httpapi

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/samber/oops"

	"github.com/forumkit/forumkit/internal/auth"
	"github.com/forumkit/forumkit/internal/forum"
	"github.com/forumkit/forumkit/internal/observability"
	"github.com/forumkit/forumkit/pkg/errutil"
)

// API holds the handler dependencies.
type API struct {
	users    *forum.UserService
	posts    *forum.PostService
	comments *forum.CommentService
	auth     *auth.Service
	metrics  *observability.Metrics
	logger   *slog.Logger
}

// NewAPI creates the HTTP API. metrics may be nil when observability
// is disabled.
func NewAPI(
	users *forum.UserService,
	posts *forum.PostService,
	comments *forum.CommentService,
	authSvc *auth.Service,
	metrics *observability.Metrics,
	logger *slog.Logger,
) *API {
	if logger == nil {
		logger = slog.Default()
	}
	return &API{
		users:    users,
		posts:    posts,
		comments: comments,
		auth:     authSvc,
		metrics:  metrics,
		logger:   logger,
	}
}

// Handler builds the route table.
func (a *API) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /users", a.handleRegisterUser)
	mux.HandleFunc("POST /users/login", a.handleLogin)
	mux.HandleFunc("POST /users/logout", a.handleLogout)
	mux.HandleFunc("GET /users", a.handleListUsers)
	mux.HandleFunc("GET /users/search", a.handleGetUserByEmail)
	mux.HandleFunc("GET /users/login-info", a.handleGetLoginUser)
	mux.HandleFunc("GET /users/{id}", a.handleGetUser)
	mux.HandleFunc("PATCH /users", a.handleModifyUser)
	mux.HandleFunc("DELETE /users/{id}", a.handleDeleteUser)

	mux.HandleFunc("POST /posts", a.handleCreatePost)
	mux.HandleFunc("GET /posts", a.handleListPosts)
	mux.HandleFunc("GET /posts/{id}", a.handleGetPost)
	mux.HandleFunc("PATCH /posts", a.handleModifyPost)
	mux.HandleFunc("DELETE /posts/{id}", a.handleDeletePost)

	mux.HandleFunc("POST /comments", a.handleCreateComment)
	mux.HandleFunc("GET /comments", a.handleListComments)
	mux.HandleFunc("GET /comments/{id}", a.handleGetComment)
	mux.HandleFunc("PATCH /comments", a.handleModifyComment)
	mux.HandleFunc("DELETE /comments/{id}", a.handleDeleteComment)

	return a.instrument(mux)
}

// statusRecorder captures the response status for logging and metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// instrument wraps the mux with request logging and metrics.
func (a *API) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		next.ServeHTTP(rec, r)

		route := r.Method + " " + r.URL.Path
		if a.metrics != nil {
			a.metrics.RequestsTotal.WithLabelValues(route, strconv.Itoa(rec.status)).Inc()
		}
		a.logger.Info("request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", rec.status),
			slog.Duration("duration", time.Since(start)))
	})
}

// recordMutation records a mutation outcome. A nil error counts as
// "ok"; otherwise the error code labels the denial.
func (a *API) recordMutation(resource string, err error) {
	if a.metrics == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = errutil.CodeOf(err)
		if outcome == "" {
			outcome = "error"
		}
	}
	a.metrics.RecordMutation(resource, outcome)
}

// pathID parses the {id} path segment. Non-numeric ids are a client
// error, not a lookup miss.
func pathID(r *http.Request) (int64, error) {
	raw := r.PathValue("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, oops.Code("BAD_REQUEST").
			With("id", raw).
			Errorf("invalid id")
	}
	return id, nil
}
