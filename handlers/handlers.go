// Package handlers implements the HTTP API: registration, login, and
// owner-scoped note CRUD.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"notekeep/auth"
	"notekeep/middleware"
	"notekeep/models"
)

// UserStore is the slice of the users collection the handlers need.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	Insert(ctx context.Context, u *models.User) error
	PushNote(ctx context.Context, userID, noteID primitive.ObjectID) error
	PullNote(ctx context.Context, userID, noteID primitive.ObjectID) error
}

// NoteStore is the slice of the notes collection the handlers need.
type NoteStore interface {
	Insert(ctx context.Context, n *models.Note) error
	FindByIDAndOwner(ctx context.Context, id, owner primitive.ObjectID) (*models.Note, error)
	FindAllByOwner(ctx context.Context, owner primitive.ObjectID) ([]models.Note, error)
	UpdateByIDAndOwner(ctx context.Context, id, owner primitive.ObjectID, title, content string) (*models.Note, error)
	DeleteByID(ctx context.Context, id primitive.ObjectID) error
}

// Handler holds the API route handlers and their dependencies.
type Handler struct {
	users UserStore
	notes NoteStore
	auth  *auth.Auth
}

// New creates a Handler.
func New(users UserStore, notes NoteStore, a *auth.Auth) *Handler {
	return &Handler{users: users, notes: notes, auth: a}
}

// Home handles GET /, a plain-text liveness check.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("notekeep up"))
}

// ownerID resolves the authenticated owner attached by the access gate.
// The gate runs before every note handler, so a miss here is a wiring
// bug, not client error.
func ownerID(r *http.Request) (primitive.ObjectID, error) {
	raw, ok := middleware.OwnerID(r)
	if !ok {
		return primitive.NilObjectID, errors.New("no authenticated owner in context")
	}
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, errors.New("authenticated owner id is not a valid object id")
	}
	return id, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode failed", slog.String("error", err.Error()))
	}
}

// The auth routes report failures under "message", the note routes under
// "error"; existing clients rely on both shapes.
func messageBody(msg string) map[string]string { return map[string]string{"message": msg} }
func errorBody(msg string) map[string]string   { return map[string]string{"error": msg} }
