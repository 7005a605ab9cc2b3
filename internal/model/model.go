// Package model defines the documents persisted by the store.
package model

import "time"

// User is a registered account. PasswordHash never appears in JSON
// responses.
type User struct {
	ID           string    `json:"id" bson:"_id"`
	Username     string    `json:"username" bson:"username"`
	PasswordHash string    `json:"-" bson:"passwordHash"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
}

// Note is a personal text note owned by exactly one user.
type Note struct {
	ID        string    `json:"id" bson:"_id"`
	OwnerID   string    `json:"ownerId" bson:"ownerId"`
	Content   string    `json:"content" bson:"content"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// Favorite is a bookmarked book record. BookID is the external catalog
// identifier; duplicates per (owner, book) are allowed and not
// deduplicated.
type Favorite struct {
	ID        string   `json:"id" bson:"_id"`
	OwnerID   string   `json:"ownerId,omitempty" bson:"ownerId"`
	BookID    string   `json:"bookId" bson:"bookId"`
	Title     string   `json:"title" bson:"title"`
	Authors   []string `json:"authors" bson:"authors"`
	Thumbnail string   `json:"thumbnail" bson:"thumbnail"`
}
