package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a stored credential record. Notes holds the identifiers of every
// note the user owns and is kept in sync by the create/delete handlers.
type User struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Email        string               `bson:"email" json:"email"`
	PasswordHash string               `bson:"password" json:"-"`
	Notes        []primitive.ObjectID `bson:"notes" json:"notes"`
	CreatedAt    time.Time            `bson:"created_at" json:"created_at"`
}

// Note is a stored note document. User references the owning User and is
// immutable after creation.
type Note struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title     string             `bson:"title" json:"title"`
	Content   string             `bson:"content" json:"content"`
	User      primitive.ObjectID `bson:"user" json:"user"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}

// NoteOwner is the non-sensitive subset of User denormalized into list
// responses.
type NoteOwner struct {
	ID    primitive.ObjectID `json:"id"`
	Email string             `json:"email"`
}

// NoteWithOwner is a Note with the owner reference resolved to the owner's
// public fields. Owner shadows the embedded Note.User in the JSON output.
type NoteWithOwner struct {
	Note
	Owner NoteOwner `json:"user"`
}
