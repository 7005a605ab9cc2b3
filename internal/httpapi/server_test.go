package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"shelfnotes/internal/auth"
	"shelfnotes/internal/model"
	"shelfnotes/internal/store"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	return New(store.NewMemoryStore(), auth.NewTokenService("test-secret"), Options{
		ClientOrigin:          "http://localhost:5173",
		FavoritesAuthRequired: true,
	})
}

// do runs one request through the router. token is sent raw in the
// Authorization header, the way the API's clients send it.
func do(t *testing.T, s *Server, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	return w
}

// registerAndLogin creates an account and returns a live token for it.
func registerAndLogin(t *testing.T, s *Server, username, password string) string {
	t.Helper()
	creds := `{"username":"` + username + `","password":"` + password + `"}`
	if w := do(t, s, "POST", "/api/register", "", creds); w.Code != http.StatusCreated {
		t.Fatalf("register %s: status %d, body %s", username, w.Code, w.Body.String())
	}
	w := do(t, s, "POST", "/api/login", "", creds)
	if w.Code != http.StatusOK {
		t.Fatalf("login %s: status %d, body %s", username, w.Code, w.Body.String())
	}
	var res struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(w.Body).Decode(&res); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	if res.Token == "" {
		t.Fatal("login returned empty token")
	}
	return res.Token
}

func TestRegisterAndLogin(t *testing.T) {
	s := newTestServer(t)

	w := do(t, s, "POST", "/api/register", "", `{"username":"alice","password":"pw"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("register: status %d, want 201", w.Code)
	}
	if !strings.Contains(w.Body.String(), "registered") {
		t.Errorf("register body = %q", w.Body.String())
	}

	// Duplicate username fails and does not create a second record.
	w = do(t, s, "POST", "/api/register", "", `{"username":"alice","password":"pw2"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("duplicate register: status %d, want 400", w.Code)
	}

	// Wrong password and unknown user look identical.
	w = do(t, s, "POST", "/api/login", "", `{"username":"alice","password":"wrong"}`)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("bad password login: status %d, want 401", w.Code)
	}
	bad := w.Body.String()
	w = do(t, s, "POST", "/api/login", "", `{"username":"nobody","password":"pw"}`)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("unknown user login: status %d, want 401", w.Code)
	}
	if w.Body.String() != bad {
		t.Errorf("login failures differ: %q vs %q", bad, w.Body.String())
	}

	// Correct credentials yield a token the middleware accepts.
	tok := registerAndLogin(t, s, "bob", "hunter22")
	if w := do(t, s, "GET", "/api/notes", tok, ""); w.Code != http.StatusOK {
		t.Errorf("authed list: status %d, want 200", w.Code)
	}
}

func TestRegisterValidation(t *testing.T) {
	s := newTestServer(t)

	for name, body := range map[string]string{
		"missing password": `{"username":"alice"}`,
		"missing username": `{"password":"pw"}`,
		"empty":            `{}`,
		"bad json":         `{`,
	} {
		if w := do(t, s, "POST", "/api/register", "", body); w.Code != http.StatusBadRequest {
			t.Errorf("%s: status %d, want 400", name, w.Code)
		}
	}
}

func TestNotesRequireAuth(t *testing.T) {
	s := newTestServer(t)

	if w := do(t, s, "GET", "/api/notes", "", ""); w.Code != http.StatusUnauthorized {
		t.Errorf("no token: status %d, want 401", w.Code)
	}
	if w := do(t, s, "POST", "/api/notes", "garbage-token", `{"content":"hi"}`); w.Code != http.StatusUnauthorized {
		t.Errorf("bad token: status %d, want 401", w.Code)
	}
}

func TestNotesFlow(t *testing.T) {
	s := newTestServer(t)
	tok := registerAndLogin(t, s, "alice", "pw")

	// Create
	w := do(t, s, "POST", "/api/notes", tok, `{"content":"hi"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create note: status %d, body %s", w.Code, w.Body.String())
	}
	var created model.Note
	if err := json.NewDecoder(w.Body).Decode(&created); err != nil {
		t.Fatalf("decode note: %v", err)
	}
	if created.Content != "hi" {
		t.Errorf("content = %q, want %q", created.Content, "hi")
	}
	if created.OwnerID == "" {
		t.Error("expected ownerId from token")
	}

	// List contains the note
	w = do(t, s, "GET", "/api/notes", tok, "")
	if w.Code != http.StatusOK {
		t.Fatalf("list notes: status %d", w.Code)
	}
	var notes []model.Note
	if err := json.NewDecoder(w.Body).Decode(&notes); err != nil {
		t.Fatalf("decode notes: %v", err)
	}
	if len(notes) != 1 || notes[0].ID != created.ID {
		t.Errorf("list = %+v, want the created note", notes)
	}

	// Update
	w = do(t, s, "PUT", "/api/notes/"+created.ID, tok, `{"content":"edited"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("update note: status %d, body %s", w.Code, w.Body.String())
	}
	var updated model.Note
	if err := json.NewDecoder(w.Body).Decode(&updated); err != nil {
		t.Fatalf("decode updated note: %v", err)
	}
	if updated.Content != "edited" {
		t.Errorf("updated content = %q", updated.Content)
	}

	// Delete returns the removed note; a repeat delete is 404.
	w = do(t, s, "DELETE", "/api/notes/"+created.ID, tok, "")
	if w.Code != http.StatusOK {
		t.Fatalf("delete note: status %d", w.Code)
	}
	if w := do(t, s, "DELETE", "/api/notes/"+created.ID, tok, ""); w.Code != http.StatusNotFound {
		t.Errorf("second delete: status %d, want 404", w.Code)
	}
	if w := do(t, s, "PUT", "/api/notes/"+created.ID, tok, `{"content":"x"}`); w.Code != http.StatusNotFound {
		t.Errorf("update after delete: status %d, want 404", w.Code)
	}
}

func TestNoteValidation(t *testing.T) {
	s := newTestServer(t)
	tok := registerAndLogin(t, s, "alice", "pw")

	if w := do(t, s, "POST", "/api/notes", tok, `{}`); w.Code != http.StatusBadRequest {
		t.Errorf("empty content: status %d, want 400", w.Code)
	}
	if w := do(t, s, "POST", "/api/notes", tok, `not json`); w.Code != http.StatusBadRequest {
		t.Errorf("bad json: status %d, want 400", w.Code)
	}
}

func TestOwnershipIsolation(t *testing.T) {
	s := newTestServer(t)
	tokA := registerAndLogin(t, s, "alice", "pw")
	tokB := registerAndLogin(t, s, "bob", "pw")

	w := do(t, s, "POST", "/api/notes", tokA, `{"content":"private"}`)
	var note model.Note
	if err := json.NewDecoder(w.Body).Decode(&note); err != nil {
		t.Fatalf("decode note: %v", err)
	}

	// B's list is empty.
	w = do(t, s, "GET", "/api/notes", tokB, "")
	var bNotes []model.Note
	if err := json.NewDecoder(w.Body).Decode(&bNotes); err != nil {
		t.Fatalf("decode notes: %v", err)
	}
	if len(bNotes) != 0 {
		t.Errorf("bob sees %d notes, want 0", len(bNotes))
	}

	// B's update/delete against A's note look like a missing id.
	if w := do(t, s, "PUT", "/api/notes/"+note.ID, tokB, `{"content":"stolen"}`); w.Code != http.StatusNotFound {
		t.Errorf("cross-user update: status %d, want 404", w.Code)
	}
	if w := do(t, s, "DELETE", "/api/notes/"+note.ID, tokB, ""); w.Code != http.StatusNotFound {
		t.Errorf("cross-user delete: status %d, want 404", w.Code)
	}

	// A's note is untouched.
	w = do(t, s, "GET", "/api/notes", tokA, "")
	var aNotes []model.Note
	_ = json.NewDecoder(w.Body).Decode(&aNotes)
	if len(aNotes) != 1 || aNotes[0].Content != "private" {
		t.Errorf("alice's notes = %+v", aNotes)
	}
}

func TestFavoritesFlow(t *testing.T) {
	s := newTestServer(t)
	tok := registerAndLogin(t, s, "alice", "pw")

	// Creation answers 200, not 201.
	w := do(t, s, "POST", "/api/favorites", tok, `{"bookId":"X","title":"T","authors":["A"],"thumbnail":"url"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("create favorite: status %d, body %s", w.Code, w.Body.String())
	}

	w = do(t, s, "GET", "/api/favorites", tok, "")
	var favs []model.Favorite
	if err := json.NewDecoder(w.Body).Decode(&favs); err != nil {
		t.Fatalf("decode favorites: %v", err)
	}
	if len(favs) != 1 {
		t.Fatalf("got %d favorites, want 1", len(favs))
	}
	f := favs[0]
	if f.BookID != "X" || f.Title != "T" || f.Thumbnail != "url" || len(f.Authors) != 1 || f.Authors[0] != "A" {
		t.Errorf("favorite round-trip mismatch: %+v", f)
	}

	// Delete by the external bookId, not the document id.
	if w := do(t, s, "DELETE", "/api/favorites/X", tok, ""); w.Code != http.StatusOK {
		t.Errorf("delete favorite: status %d", w.Code)
	}
	if w := do(t, s, "DELETE", "/api/favorites/X", tok, ""); w.Code != http.StatusNotFound {
		t.Errorf("second delete: status %d, want 404", w.Code)
	}
}

func TestFavoritesOptionalAuth(t *testing.T) {
	s := New(store.NewMemoryStore(), auth.NewTokenService("test-secret"), Options{
		ClientOrigin:          "http://localhost:5173",
		FavoritesAuthRequired: false,
	})

	// Without a token the favorites routes still work.
	w := do(t, s, "POST", "/api/favorites", "", `{"bookId":"X","title":"T"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("anonymous create: status %d, body %s", w.Code, w.Body.String())
	}
	w = do(t, s, "GET", "/api/favorites", "", "")
	var favs []model.Favorite
	if err := json.NewDecoder(w.Body).Decode(&favs); err != nil {
		t.Fatalf("decode favorites: %v", err)
	}
	if len(favs) != 1 {
		t.Errorf("anonymous list = %d favorites, want 1", len(favs))
	}

	// Notes stay gated regardless of the flag.
	if w := do(t, s, "GET", "/api/notes", "", ""); w.Code != http.StatusUnauthorized {
		t.Errorf("notes without token: status %d, want 401", w.Code)
	}
}

func TestBearerPrefixTolerated(t *testing.T) {
	s := newTestServer(t)
	tok := registerAndLogin(t, s, "alice", "pw")

	req := httptest.NewRequest("GET", "/api/notes", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("Bearer-prefixed token: status %d, want 200", w.Code)
	}
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	if w := do(t, s, "GET", "/health", "", ""); w.Code != http.StatusOK {
		t.Errorf("health: status %d, want 200", w.Code)
	}
}
