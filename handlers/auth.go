package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"notekeep/apperr"
	"notekeep/models"
)

type authRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r authRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

// Register handles POST /register.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req authRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, messageBody("Email and password are required"))
		return
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, messageBody("Email and password are required"))
		return
	}

	_, err := h.users.FindByEmail(r.Context(), req.Email)
	if err == nil {
		writeJSON(w, http.StatusConflict, messageBody("Email already in use"))
		return
	}
	if !errors.Is(err, apperr.ErrNotFound) {
		slog.Error("register: user lookup failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, messageBody("Internal server error"))
		return
	}

	hash, err := h.auth.HashPassword(req.Password)
	if err != nil {
		slog.Error("register: password hash failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, messageBody("Internal server error"))
		return
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: hash,
		Notes:        []primitive.ObjectID{},
	}
	if err := h.users.Insert(r.Context(), user); err != nil {
		// The unique index can still catch a racing registration after
		// the lookup above passed.
		if errors.Is(err, apperr.ErrEmailTaken) {
			writeJSON(w, http.StatusConflict, messageBody("Email already in use"))
			return
		}
		slog.Error("register: insert failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, messageBody("Internal server error"))
		return
	}

	writeJSON(w, http.StatusCreated, messageBody("User registered successfully"))
}

// Login handles POST /login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req authRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, messageBody("Email and password are required"))
		return
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, messageBody("Email and password are required"))
		return
	}

	user, err := h.users.FindByEmail(r.Context(), req.Email)
	if errors.Is(err, apperr.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, messageBody("User not found"))
		return
	}
	if err != nil {
		slog.Error("login: user lookup failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, messageBody("Server error"))
		return
	}

	if !h.auth.CheckPassword(req.Password, user.PasswordHash) {
		writeJSON(w, http.StatusBadRequest, messageBody("Invalid credentials"))
		return
	}

	token, err := h.auth.IssueToken(user.ID.Hex())
	if err != nil {
		slog.Error("login: token issue failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, messageBody("Server error"))
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"token":   token,
		"userData": map[string]string{
			"email": user.Email,
			"id":    user.ID.Hex(),
		},
	})
}
