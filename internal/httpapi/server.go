// internal/httpapi/server.go
//
// HTTP wiring for the shelfnotes API.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", POST /api/register, POST /api/login.
//   - Notes endpoints (require auth): CRUD under /api/notes.
//   - Favorites endpoints (auth per capability flag): /api/favorites.
//
// Notes:
//   - The verified token subject is the only source of ownership; owner
//     fields in request bodies are ignored.
//   - Favorites can be mounted without required auth for deployments
//     that predate accounts; notes are always gated.

package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"shelfnotes/internal/auth"
	"shelfnotes/internal/store"
)

// Options carries the per-deployment switches the server cares about.
type Options struct {
	// ClientOrigin is the single origin allowed by CORS.
	ClientOrigin string
	// FavoritesAuthRequired gates the favorites routes behind requireAuth.
	FavoritesAuthRequired bool
}

// Server bundles router, store handle, and token service.
type Server struct {
	r      *chi.Mux
	st     *store.Store
	tokens *auth.TokenService
	opts   Options
}

// New constructs a Server, installs middleware, and registers routes.
func New(st *store.Store, tokens *auth.TokenService, opts Options) *Server {
	s := &Server{r: chi.NewRouter(), st: st, tokens: tokens, opts: opts}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(corsFor(opts.ClientOrigin))

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"shelfnotes","endpoints":["/health","POST /api/register","POST /api/login","/api/notes","/api/favorites"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	s.r.Route("/api", func(r chi.Router) {
		r.Post("/register", s.handleRegister)
		r.Post("/login", s.handleLogin)

		r.Route("/notes", func(r chi.Router) {
			r.Use(s.requireAuth())
			r.Post("/", s.handleCreateNote)
			r.Get("/", s.handleListNotes)
			r.Put("/{noteID}", s.handleUpdateNote)
			r.Delete("/{noteID}", s.handleDeleteNote)
		})

		r.Route("/favorites", func(r chi.Router) {
			if opts.FavoritesAuthRequired {
				r.Use(s.requireAuth())
			} else {
				r.Use(s.withOptionalAuth())
			}
			r.Post("/", s.handleCreateFavorite)
			r.Get("/", s.handleListFavorites)
			r.Delete("/{bookID}", s.handleDeleteFavorite)
		})
	})

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not found: "+r.URL.Path)
	})

	return s
}

// Router exposes the internal router (useful for tests and for the
// caller's http.Server).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// corsFor enables CORS for a single origin.
func corsFor(origin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
