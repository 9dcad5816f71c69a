package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"notekeep/apperr"
	"notekeep/models"
)

type noteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (r noteRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required),
		validation.Field(&r.Content, validation.Required),
	)
}

// noteIDParam parses the {id} path segment. A malformed identifier is
// rejected here, before any store call.
func noteIDParam(r *http.Request) (primitive.ObjectID, error) {
	return primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
}

// CreateNote handles POST /create. The owner always comes from the
// authenticated token, never from the request body.
func (h *Handler) CreateNote(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerID(r)
	if err != nil {
		slog.Error("create note: owner resolution failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, messageBody("Internal server error"))
		return
	}

	var req noteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, messageBody("Title and content are required"))
		return
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, messageBody("Title and content are required"))
		return
	}

	note := &models.Note{Title: req.Title, Content: req.Content, User: owner}
	if err := h.notes.Insert(r.Context(), note); err != nil {
		slog.Error("create note: insert failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, messageBody("Internal server error"))
		return
	}

	// Second write of the non-atomic pair. A failure here leaves the
	// note committed with no owned-list entry; it is reported, not
	// rolled back.
	if err := h.users.PushNote(r.Context(), owner, note.ID); err != nil {
		slog.Error("create note: owned-list push failed",
			slog.String("note_id", note.ID.Hex()),
			slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, messageBody("Internal server error"))
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Note created successfully",
		"note":    note,
	})
}

// ListNotes handles GET /notes, resolving the owner's email into each
// entry.
func (h *Handler) ListNotes(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerID(r)
	if err != nil {
		slog.Error("list notes: owner resolution failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, messageBody("Internal server error"))
		return
	}

	notes, err := h.notes.FindAllByOwner(r.Context(), owner)
	if err != nil {
		slog.Error("list notes: find failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, messageBody("Internal server error"))
		return
	}

	user, err := h.users.FindByID(r.Context(), owner)
	if err != nil {
		slog.Error("list notes: owner lookup failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, messageBody("Internal server error"))
		return
	}

	out := make([]models.NoteWithOwner, 0, len(notes))
	for _, n := range notes {
		out = append(out, models.NoteWithOwner{
			Note:  n,
			Owner: models.NoteOwner{ID: user.ID, Email: user.Email},
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"notes": out})
}

// GetNote handles GET /notes/{id}. A note owned by someone else and a
// nonexistent note get the same response.
func (h *Handler) GetNote(w http.ResponseWriter, r *http.Request) {
	id, err := noteIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("Invalid or missing note ID"))
		return
	}
	owner, err := ownerID(r)
	if err != nil {
		slog.Error("get note: owner resolution failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("Internal server error"))
		return
	}

	note, err := h.notes.FindByIDAndOwner(r.Context(), id, owner)
	if errors.Is(err, apperr.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, errorBody("Note not found or access denied"))
		return
	}
	if err != nil {
		slog.Error("get note: find failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("Internal server error"))
		return
	}
	writeJSON(w, http.StatusOK, note)
}

// EditNote handles PUT /edit/{id} as a single find-and-update on the
// store.
func (h *Handler) EditNote(w http.ResponseWriter, r *http.Request) {
	id, err := noteIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("Invalid or missing note ID"))
		return
	}
	owner, err := ownerID(r)
	if err != nil {
		slog.Error("edit note: owner resolution failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("Internal server error"))
		return
	}

	var req noteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("Title and content are required"))
		return
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("Title and content are required"))
		return
	}

	note, err := h.notes.UpdateByIDAndOwner(r.Context(), id, owner, req.Title, req.Content)
	if errors.Is(err, apperr.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, errorBody("Note not found or access denied"))
		return
	}
	if err != nil {
		slog.Error("edit note: update failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("Internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Note updated successfully",
		"note":    note,
	})
}

// DeleteNote handles DELETE /delete/{id}: ownership check, delete, then
// pull from the owner's list.
func (h *Handler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	id, err := noteIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("Invalid or missing note ID"))
		return
	}
	owner, err := ownerID(r)
	if err != nil {
		slog.Error("delete note: owner resolution failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("Internal server error"))
		return
	}

	if _, err := h.notes.FindByIDAndOwner(r.Context(), id, owner); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("Note not found or access denied"))
			return
		}
		slog.Error("delete note: find failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("Internal server error"))
		return
	}

	if err := h.notes.DeleteByID(r.Context(), id); err != nil {
		slog.Error("delete note: delete failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("Internal server error"))
		return
	}

	// Second write of the non-atomic pair, mirroring CreateNote.
	if err := h.users.PullNote(r.Context(), owner, id); err != nil {
		slog.Error("delete note: owned-list pull failed",
			slog.String("note_id", id.Hex()),
			slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("Internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, messageBody("Note deleted successfully"))
}
