// Package store defines the persistence interfaces for users, notes and
// favorites, plus two implementations: a MongoDB-backed store for
// production and an in-memory store for tests.
//
// Every mutating operation is a single atomic round-trip against the
// backing store (insert-if-unique, find-one-and-update,
// find-one-and-delete); no application-level locking sits on top.
package store

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"

	"shelfnotes/internal/model"
)

// ErrNotFound is returned when no document matches both the id and the
// owner filter. Callers cannot distinguish "missing" from "owned by
// someone else".
var ErrNotFound = errors.New("not found")

// ErrDuplicateUsername is returned by Users.Create when the username is
// already taken. Uniqueness is enforced by the store itself, not by a
// check-then-insert.
var ErrDuplicateUsername = errors.New("username taken")

// Users persists credentials. Usernames are unique.
type Users interface {
	Create(ctx context.Context, username, passwordHash string) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
}

// Notes is the ownership-scoped note repository. Every method filters by
// ownerID; an id that exists under a different owner behaves exactly
// like a missing id.
type Notes interface {
	Create(ctx context.Context, ownerID, content string) (*model.Note, error)
	ListByOwner(ctx context.Context, ownerID string) ([]model.Note, error)
	Update(ctx context.Context, id, ownerID, content string) (*model.Note, error)
	Delete(ctx context.Context, id, ownerID string) (*model.Note, error)
}

// Favorites is the ownership-scoped favorite repository. Deletion is
// keyed by the external bookId rather than the document id.
type Favorites interface {
	Create(ctx context.Context, ownerID string, fav model.Favorite) (*model.Favorite, error)
	ListByOwner(ctx context.Context, ownerID string) ([]model.Favorite, error)
	DeleteByBookID(ctx context.Context, ownerID, bookID string) (*model.Favorite, error)
}

// Store bundles the three repositories behind one handle.
type Store struct {
	Users     Users
	Notes     Notes
	Favorites Favorites
}

// genID creates a 22-char URL-safe, crypto-random identifier (no padding).
func genID() string {
	var b [16]byte
	_, _ = rand.Read(b[:])
	s := base64.URLEncoding.WithPadding(base64.NoPadding).EncodeToString(b[:])
	if len(s) > 22 {
		return s[:22]
	}
	return s
}
