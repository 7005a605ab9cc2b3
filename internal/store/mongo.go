// MongoDB implementation of the store interfaces.
//
// Responsibilities:
//   - Opening the client with connect + ping at startup, Disconnect at
//     shutdown (the handle is injected into the repositories; there is
//     no package-level connection state).
//   - Ensuring the unique index on users.username so duplicate
//     registration fails inside the insert itself.
//   - Mapping driver errors onto the package sentinels.
//
// Updates and deletes use FindOneAndUpdate/FindOneAndDelete with a
// combined {_id, ownerId} filter, so each mutation is one atomic
// round-trip and ownership scoping happens inside the store.

package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"shelfnotes/internal/model"
)

const dbName = "shelfnotes"

// Mongo owns the client lifecycle and hands out repositories bound to
// its collections.
type Mongo struct {
	client *mongo.Client
	db     *mongo.Database
}

// Open connects to the MongoDB deployment at uri, pings it, and creates
// the unique username index.
func Open(ctx context.Context, uri string) (*Mongo, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	m := &Mongo{client: client, db: client.Database(dbName)}

	// Case-insensitive unique index; registration relies on the insert
	// itself failing rather than a check-then-insert.
	_, err = m.db.Collection("users").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "username", Value: 1}},
		Options: options.Index().
			SetUnique(true).
			SetCollation(&options.Collation{Locale: "en", Strength: 2}),
	})
	if err != nil {
		return nil, fmt.Errorf("create username index: %w", err)
	}
	return m, nil
}

// Close disconnects the client.
func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

// Store returns the repositories backed by this connection.
func (m *Mongo) Store() *Store {
	return &Store{
		Users:     &mongoUsers{c: m.db.Collection("users")},
		Notes:     &mongoNotes{c: m.db.Collection("notes")},
		Favorites: &mongoFavorites{c: m.db.Collection("favorites")},
	}
}

type mongoUsers struct{ c *mongo.Collection }

func (s *mongoUsers) Create(ctx context.Context, username, passwordHash string) (*model.User, error) {
	u := &model.User{
		ID:           primitive.NewObjectID().Hex(),
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateUsername
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return u, nil
}

func (s *mongoUsers) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	opts := options.FindOne().SetCollation(&options.Collation{Locale: "en", Strength: 2})
	var u model.User
	err := s.c.FindOne(ctx, bson.M{"username": username}, opts).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &u, nil
}

type mongoNotes struct{ c *mongo.Collection }

func (s *mongoNotes) Create(ctx context.Context, ownerID, content string) (*model.Note, error) {
	now := time.Now().UTC()
	n := &model.Note{
		ID:        primitive.NewObjectID().Hex(),
		OwnerID:   ownerID,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := s.c.InsertOne(ctx, n); err != nil {
		return nil, fmt.Errorf("insert note: %w", err)
	}
	return n, nil
}

func (s *mongoNotes) ListByOwner(ctx context.Context, ownerID string) ([]model.Note, error) {
	cursor, err := s.c.Find(ctx, bson.M{"ownerId": ownerID})
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer cursor.Close(ctx)

	notes := []model.Note{}
	if err := cursor.All(ctx, &notes); err != nil {
		return nil, fmt.Errorf("decode notes: %w", err)
	}
	return notes, nil
}

func (s *mongoNotes) Update(ctx context.Context, id, ownerID, content string) (*model.Note, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var n model.Note
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "ownerId": ownerID},
		bson.M{"$set": bson.M{"content": content, "updatedAt": time.Now().UTC()}},
		opts,
	).Decode(&n)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update note: %w", err)
	}
	return &n, nil
}

func (s *mongoNotes) Delete(ctx context.Context, id, ownerID string) (*model.Note, error) {
	var n model.Note
	err := s.c.FindOneAndDelete(ctx, bson.M{"_id": id, "ownerId": ownerID}).Decode(&n)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("delete note: %w", err)
	}
	return &n, nil
}

type mongoFavorites struct{ c *mongo.Collection }

func (s *mongoFavorites) Create(ctx context.Context, ownerID string, fav model.Favorite) (*model.Favorite, error) {
	fav.ID = primitive.NewObjectID().Hex()
	fav.OwnerID = ownerID
	if _, err := s.c.InsertOne(ctx, &fav); err != nil {
		return nil, fmt.Errorf("insert favorite: %w", err)
	}
	return &fav, nil
}

func (s *mongoFavorites) ListByOwner(ctx context.Context, ownerID string) ([]model.Favorite, error) {
	cursor, err := s.c.Find(ctx, bson.M{"ownerId": ownerID})
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	defer cursor.Close(ctx)

	favs := []model.Favorite{}
	if err := cursor.All(ctx, &favs); err != nil {
		return nil, fmt.Errorf("decode favorites: %w", err)
	}
	return favs, nil
}

func (s *mongoFavorites) DeleteByBookID(ctx context.Context, ownerID, bookID string) (*model.Favorite, error) {
	var f model.Favorite
	err := s.c.FindOneAndDelete(ctx, bson.M{"ownerId": ownerID, "bookId": bookID}).Decode(&f)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("delete favorite: %w", err)
	}
	return &f, nil
}
