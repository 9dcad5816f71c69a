package handlers

import (
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"notekeep/auth"
	appmw "notekeep/middleware"
)

// NewRouter mounts all routes. The note routes sit behind the access
// gate; registration and login do not.
func NewRouter(h *Handler, a *auth.Auth) chi.Router {
	r := chi.NewRouter()

	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(appmw.CORS)

	r.Get("/", h.Home)
	r.Post("/register", h.Register)
	r.Post("/login", h.Login)

	r.Group(func(r chi.Router) {
		r.Use(appmw.RequireAuth(a))
		r.Post("/create", h.CreateNote)
		r.Get("/notes", h.ListNotes)
		r.Get("/notes/{id}", h.GetNote)
		r.Put("/edit/{id}", h.EditNote)
		r.Delete("/delete/{id}", h.DeleteNote)
	})

	return r
}
