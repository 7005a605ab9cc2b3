// In-memory implementation of the store interfaces.
//
// Characteristics:
//   - Documents live in maps keyed by ID.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - Username uniqueness and owner filtering follow the same semantics
//     the Mongo store gets from its index and query filters.
//   - State is lost when the process exits; used by tests and local dev.

package store

import (
	"context"
	"strings"
	"sync"
	"time"

	"shelfnotes/internal/model"
)

type memUsers struct {
	mu    sync.RWMutex
	users map[string]*model.User // keyed by ID
}

type memNotes struct {
	mu    sync.RWMutex
	notes map[string]*model.Note
}

type memFavorites struct {
	mu   sync.RWMutex
	favs map[string]*model.Favorite
}

// NewMemoryStore constructs a Store backed by process memory.
func NewMemoryStore() *Store {
	return &Store{
		Users:     &memUsers{users: make(map[string]*model.User)},
		Notes:     &memNotes{notes: make(map[string]*model.Note)},
		Favorites: &memFavorites{favs: make(map[string]*model.Favorite)},
	}
}

func (m *memUsers) Create(ctx context.Context, username, passwordHash string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	// Uniqueness check and insert happen under the same lock, so the
	// insert-if-unique contract holds.
	for _, u := range m.users {
		if strings.EqualFold(u.Username, username) {
			return nil, ErrDuplicateUsername
		}
	}
	u := &model.User{
		ID:           genID(),
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	m.users[u.ID] = u
	out := *u
	return &out, nil
}

func (m *memUsers) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if strings.EqualFold(u.Username, username) {
			out := *u
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (m *memNotes) Create(ctx context.Context, ownerID, content string) (*model.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now().UTC()
	n := &model.Note{
		ID:        genID(),
		OwnerID:   ownerID,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	m.notes[n.ID] = n
	out := *n
	return &out, nil
}

func (m *memNotes) ListByOwner(ctx context.Context, ownerID string) ([]model.Note, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []model.Note{}
	for _, n := range m.notes {
		if n.OwnerID == ownerID {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (m *memNotes) Update(ctx context.Context, id, ownerID, content string) (*model.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, ok := m.notes[id]
	if !ok || n.OwnerID != ownerID {
		return nil, ErrNotFound
	}
	n.Content = content
	n.UpdatedAt = time.Now().UTC()
	out := *n
	return &out, nil
}

func (m *memNotes) Delete(ctx context.Context, id, ownerID string) (*model.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, ok := m.notes[id]
	if !ok || n.OwnerID != ownerID {
		return nil, ErrNotFound
	}
	delete(m.notes, id)
	out := *n
	return &out, nil
}

func (m *memFavorites) Create(ctx context.Context, ownerID string, fav model.Favorite) (*model.Favorite, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	fav.ID = genID()
	fav.OwnerID = ownerID
	m.favs[fav.ID] = &fav
	out := fav
	return &out, nil
}

func (m *memFavorites) ListByOwner(ctx context.Context, ownerID string) ([]model.Favorite, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []model.Favorite{}
	for _, f := range m.favs {
		if f.OwnerID == ownerID {
			out = append(out, *f)
		}
	}
	return out, nil
}

func (m *memFavorites) DeleteByBookID(ctx context.Context, ownerID, bookID string) (*model.Favorite, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, f := range m.favs {
		if f.OwnerID == ownerID && f.BookID == bookID {
			delete(m.favs, id)
			out := *f
			return &out, nil
		}
	}
	return nil, ErrNotFound
}
