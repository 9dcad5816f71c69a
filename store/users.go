// Package store implements document-store access for users and notes.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"notekeep/apperr"
	"notekeep/models"
)

// Users provides access to the users collection.
type Users struct {
	col *mongo.Collection
}

// NewUsers returns a Users store backed by database.
func NewUsers(database *mongo.Database) *Users {
	return &Users{col: database.Collection("users")}
}

// FindByEmail looks a user up by exact email match.
func (s *Users) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := s.col.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return &u, nil
}

// FindByID looks a user up by identifier.
func (s *Users) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return &u, nil
}

// Insert persists a new user and fills in the store-assigned identifier
// and creation timestamp.
func (s *Users) Insert(ctx context.Context, u *models.User) error {
	u.CreatedAt = time.Now().UTC()
	if u.Notes == nil {
		u.Notes = []primitive.ObjectID{}
	}
	res, err := s.col.InsertOne(ctx, u)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperr.ErrEmailTaken
		}
		return fmt.Errorf("insert user: %w", err)
	}
	u.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// PushNote appends a note identifier to the user's owned-notes list.
func (s *Users) PushNote(ctx context.Context, userID, noteID primitive.ObjectID) error {
	_, err := s.col.UpdateByID(ctx, userID, bson.M{"$push": bson.M{"notes": noteID}})
	if err != nil {
		return fmt.Errorf("push note %s onto user %s: %w", noteID.Hex(), userID.Hex(), err)
	}
	return nil
}

// PullNote removes a note identifier from the user's owned-notes list.
func (s *Users) PullNote(ctx context.Context, userID, noteID primitive.ObjectID) error {
	_, err := s.col.UpdateByID(ctx, userID, bson.M{"$pull": bson.M{"notes": noteID}})
	if err != nil {
		return fmt.Errorf("pull note %s from user %s: %w", noteID.Hex(), userID.Hex(), err)
	}
	return nil
}
