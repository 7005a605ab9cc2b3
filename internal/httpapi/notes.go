// Notes CRUD. Every handler scopes its store call to the verified
// userId from the request context; an id owned by someone else is
// indistinguishable from a missing one.

package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"shelfnotes/internal/store"
)

type noteReq struct {
	Content string `json:"content"`
}

func (s *Server) handleCreateNote(w http.ResponseWriter, r *http.Request) {
	var body noteReq
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if body.Content == "" {
		writeError(w, http.StatusBadRequest, "content is required")
		return
	}

	n, err := s.st.Notes.Create(r.Context(), userID(r), body.Content)
	if err != nil {
		serverError(w, err, "create note")
		return
	}
	writeJSON(w, http.StatusCreated, n)
}

func (s *Server) handleListNotes(w http.ResponseWriter, r *http.Request) {
	notes, err := s.st.Notes.ListByOwner(r.Context(), userID(r))
	if err != nil {
		serverError(w, err, "list notes")
		return
	}
	writeJSON(w, http.StatusOK, notes)
}

func (s *Server) handleUpdateNote(w http.ResponseWriter, r *http.Request) {
	var body noteReq
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if body.Content == "" {
		writeError(w, http.StatusBadRequest, "content is required")
		return
	}

	n, err := s.st.Notes.Update(r.Context(), chi.URLParam(r, "noteID"), userID(r), body.Content)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "note not found")
			return
		}
		serverError(w, err, "update note")
		return
	}
	writeJSON(w, http.StatusOK, n)
}

// handleDeleteNote removes the note and echoes it back. Deleting an id
// that is already gone returns 404, same as one that never existed.
func (s *Server) handleDeleteNote(w http.ResponseWriter, r *http.Request) {
	n, err := s.st.Notes.Delete(r.Context(), chi.URLParam(r, "noteID"), userID(r))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "note not found")
			return
		}
		serverError(w, err, "delete note")
		return
	}
	writeJSON(w, http.StatusOK, n)
}
