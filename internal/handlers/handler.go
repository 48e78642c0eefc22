// Package handlers exposes the service over a small JSON API. It is
// glue only: loading state, invoking the core, persisting the result.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tomotune/tomotune/internal/app"
	"github.com/tomotune/tomotune/internal/logger"
)

type Handler struct {
	Library *app.LibraryService
	Taste   *app.TasteService

	log *logger.Logger
}

func NewHandler(library *app.LibraryService, taste *app.TasteService, log *logger.Logger) *Handler {
	return &Handler{
		Library: library,
		Taste:   taste,
		log:     log.WithComponent("http"),
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Post("/login", h.Login)

		r.Get("/songs", h.ListSongs)
		r.Get("/songs/{id}", h.GetSong)
		r.Post("/songs/{id}/like", h.LikeSong)

		r.Get("/users/{id}", h.GetUser)
		r.Post("/users/{id}/recompute", h.RecomputeUser)
		r.Put("/users/{id}/diagnosis", h.RediagnoseUser)

		r.Post("/library/sync", h.SyncLibrary)
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, err error) {
	h.writeJSON(w, status, map[string]string{"error": err.Error()})
}
