// Registration, login, and the auth middleware.
//
// The middleware resolves the bearer token into a userId and stashes it
// in the request context; downstream handlers derive ownership from
// that and nothing else.

package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"shelfnotes/internal/auth"
	"shelfnotes/internal/store"
)

type credentialsReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// handleRegister creates a new account. It does not log the user in;
// the client must call /api/login afterwards (preserved source
// behavior).
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var body credentialsReq
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	body.Username = strings.TrimSpace(body.Username)
	if body.Username == "" || body.Password == "" {
		writeError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	hash, err := auth.HashPassword(body.Password)
	if err != nil {
		serverError(w, err, "hash password")
		return
	}

	if _, err := s.st.Users.Create(r.Context(), body.Username, hash); err != nil {
		if errors.Is(err, store.ErrDuplicateUsername) {
			writeError(w, http.StatusBadRequest, "username taken")
			return
		}
		serverError(w, err, "create user")
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusCreated)
	_, _ = w.Write([]byte("User registered successfully"))
}

// handleLogin verifies credentials and returns a fresh token. Unknown
// user and wrong password are indistinguishable to the caller.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body credentialsReq
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	u, err := s.st.Users.FindByUsername(r.Context(), strings.TrimSpace(body.Username))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		serverError(w, err, "find user")
		return
	}
	if !auth.CheckPassword(u.PasswordHash, body.Password) {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	tok, err := s.tokens.Issue(u.ID)
	if err != nil {
		serverError(w, err, "sign token")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": tok})
}

// ---------------------------- auth middleware ------------------------------

// ctxUserIDKey is the context key type for the verified user id.
type ctxUserIDKey struct{}

// requireAuth enforces a valid token and injects the userId into the
// request context.
func (s *Server) requireAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tok := tokenFromHeader(r)
			if tok == "" {
				writeError(w, http.StatusUnauthorized, "access denied")
				return
			}
			userID, err := s.tokens.Verify(tok)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "invalid token")
				return
			}
			ctx := context.WithValue(r.Context(), ctxUserIDKey{}, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// withOptionalAuth decorates requests with the userId when a valid
// token is present. It never 401s; used when favorites run without
// required accounts.
func (s *Server) withOptionalAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if tok := tokenFromHeader(r); tok != "" {
				if userID, err := s.tokens.Verify(tok); err == nil {
					r = r.WithContext(context.WithValue(r.Context(), ctxUserIDKey{}, userID))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// tokenFromHeader reads the Authorization header. The token is passed
// raw; a conventional "Bearer " prefix is tolerated and stripped.
func tokenFromHeader(r *http.Request) string {
	a := strings.TrimSpace(r.Header.Get("Authorization"))
	if strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	return a
}

// userID returns the verified identity placed by the middleware, or ""
// for unauthenticated requests on optional-auth routes.
func userID(r *http.Request) string {
	id, _ := r.Context().Value(ctxUserIDKey{}).(string)
	return id
}
