// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ForumKit Contributors

package httpapi

import (
	"net/http"
	"time"

	"github.com/forumkit/forumkit/internal/auth"
)

// sessionCookie is the name of the HttpOnly cookie carrying the
// opaque session token.
const sessionCookie = "forumkit_session"

// sessionToken extracts the raw session token from the request
// cookie, or "" when absent.
func sessionToken(r *http.Request) string {
	c, err := r.Cookie(sessionCookie)
	if err != nil {
		return ""
	}
	return c.Value
}

// resolveCaller resolves the request's session into a Caller. Absent,
// unknown, and expired sessions all fail with UNAUTHORIZED.
func (a *API) resolveCaller(r *http.Request) (auth.Caller, error) {
	return a.auth.Gate().ResolveCaller(r.Context(), sessionToken(r))
}

func setSessionCookie(w http.ResponseWriter, token string, expiry time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(expiry / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
