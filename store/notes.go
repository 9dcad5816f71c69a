package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"notekeep/apperr"
	"notekeep/models"
)

// Notes provides access to the notes collection. Every read and update is
// scoped to both the note identifier and its owner so a caller can never
// reach another user's note.
type Notes struct {
	col *mongo.Collection
}

// NewNotes returns a Notes store backed by database.
func NewNotes(database *mongo.Database) *Notes {
	return &Notes{col: database.Collection("notes")}
}

// Insert persists a new note and fills in the store-assigned identifier
// and timestamps.
func (s *Notes) Insert(ctx context.Context, n *models.Note) error {
	now := time.Now().UTC()
	n.CreatedAt = now
	n.UpdatedAt = now
	res, err := s.col.InsertOne(ctx, n)
	if err != nil {
		return fmt.Errorf("insert note: %w", err)
	}
	n.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// FindByIDAndOwner fetches a note only if owner matches; a wrong owner and
// a nonexistent id are indistinguishable to the caller.
func (s *Notes) FindByIDAndOwner(ctx context.Context, id, owner primitive.ObjectID) (*models.Note, error) {
	var n models.Note
	err := s.col.FindOne(ctx, bson.M{"_id": id, "user": owner}).Decode(&n)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find note: %w", err)
	}
	return &n, nil
}

// FindAllByOwner fetches every note owned by owner in store-native order.
// A user with no notes gets an empty slice, not nil.
func (s *Notes) FindAllByOwner(ctx context.Context, owner primitive.ObjectID) ([]models.Note, error) {
	cur, err := s.col.Find(ctx, bson.M{"user": owner})
	if err != nil {
		return nil, fmt.Errorf("find notes by owner: %w", err)
	}
	notes := []models.Note{}
	if err := cur.All(ctx, &notes); err != nil {
		return nil, fmt.Errorf("decode notes: %w", err)
	}
	return notes, nil
}

// UpdateByIDAndOwner atomically replaces title and content on the note
// matching id+owner and returns the post-update document.
func (s *Notes) UpdateByIDAndOwner(ctx context.Context, id, owner primitive.ObjectID, title, content string) (*models.Note, error) {
	update := bson.M{"$set": bson.M{
		"title":      title,
		"content":    content,
		"updated_at": time.Now().UTC(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var n models.Note
	err := s.col.FindOneAndUpdate(ctx, bson.M{"_id": id, "user": owner}, update, opts).Decode(&n)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update note: %w", err)
	}
	return &n, nil
}

// DeleteByID removes a note by identifier. Ownership is checked by the
// caller beforehand via FindByIDAndOwner.
func (s *Notes) DeleteByID(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	if res.DeletedCount == 0 {
		return apperr.ErrNotFound
	}
	return nil
}
