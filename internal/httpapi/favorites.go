// Favorites CRUD. Shapes mirror the notes handlers; creation answers
// 200 rather than 201 (preserved source asymmetry) and deletion is
// keyed by the external bookId.

package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"shelfnotes/internal/model"
	"shelfnotes/internal/store"
)

type favoriteReq struct {
	BookID    string   `json:"bookId"`
	Title     string   `json:"title"`
	Authors   []string `json:"authors"`
	Thumbnail string   `json:"thumbnail"`
}

func (s *Server) handleCreateFavorite(w http.ResponseWriter, r *http.Request) {
	var body favoriteReq
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if body.BookID == "" {
		writeError(w, http.StatusBadRequest, "bookId is required")
		return
	}

	// Owner comes from the verified token, never the body.
	f, err := s.st.Favorites.Create(r.Context(), userID(r), model.Favorite{
		BookID:    body.BookID,
		Title:     body.Title,
		Authors:   body.Authors,
		Thumbnail: body.Thumbnail,
	})
	if err != nil {
		serverError(w, err, "create favorite")
		return
	}
	writeJSON(w, http.StatusOK, f)
}

func (s *Server) handleListFavorites(w http.ResponseWriter, r *http.Request) {
	favs, err := s.st.Favorites.ListByOwner(r.Context(), userID(r))
	if err != nil {
		serverError(w, err, "list favorites")
		return
	}
	writeJSON(w, http.StatusOK, favs)
}

func (s *Server) handleDeleteFavorite(w http.ResponseWriter, r *http.Request) {
	f, err := s.st.Favorites.DeleteByBookID(r.Context(), userID(r), chi.URLParam(r, "bookID"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "book not found")
			return
		}
		serverError(w, err, "delete favorite")
		return
	}
	writeJSON(w, http.StatusOK, f)
}
