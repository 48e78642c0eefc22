package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/tomotune/tomotune/internal/domain"
	"github.com/tomotune/tomotune/internal/store"
	"github.com/tomotune/tomotune/internal/taste"
)

type loginRequest struct {
	Name string `json:"name"`
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		h.writeError(w, http.StatusBadRequest, fmt.Errorf("name is required"))
		return
	}

	user, err := h.Taste.Login(req.Name)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err)
		return
	}
	h.writeJSON(w, http.StatusOK, user)
}

func (h *Handler) ListSongs(w http.ResponseWriter, r *http.Request) {
	songs, err := h.Library.Songs()
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err)
		return
	}
	h.writeJSON(w, http.StatusOK, songs)
}

func (h *Handler) GetSong(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid song id"))
		return
	}

	song, err := h.Library.Song(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			h.writeError(w, http.StatusNotFound, err)
			return
		}
		h.writeError(w, http.StatusInternalServerError, err)
		return
	}
	h.writeJSON(w, http.StatusOK, song)
}

type likeRequest struct {
	UserID string `json:"user_id"`
}

type likeResponse struct {
	User      *domain.User `json:"user"`
	LikeCount int          `json:"like_count"`
}

func (h *Handler) LikeSong(w http.ResponseWriter, r *http.Request) {
	songID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid song id"))
		return
	}

	var req likeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	if req.UserID == "" {
		h.writeError(w, http.StatusBadRequest, fmt.Errorf("user_id is required"))
		return
	}

	user, count, err := h.Taste.Like(req.UserID, songID)
	if err != nil {
		// A like against a missing user or song is a caller bug, not
		// data noise.
		if errors.Is(err, store.ErrNotFound) {
			h.writeError(w, http.StatusNotFound, err)
			return
		}
		h.writeError(w, http.StatusInternalServerError, err)
		return
	}
	h.writeJSON(w, http.StatusOK, likeResponse{User: user, LikeCount: count})
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.Taste.Profile(chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			h.writeError(w, http.StatusNotFound, err)
			return
		}
		h.writeError(w, http.StatusInternalServerError, err)
		return
	}
	h.writeJSON(w, http.StatusOK, user)
}

func (h *Handler) RecomputeUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.Taste.Recompute(chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			h.writeError(w, http.StatusNotFound, err)
			return
		}
		h.writeError(w, http.StatusInternalServerError, err)
		return
	}
	h.writeJSON(w, http.StatusOK, user)
}

type diagnosisRequest struct {
	VC *float64 `json:"vc"`
	MA *float64 `json:"ma"`
	PR *float64 `json:"pr"`
	HS *float64 `json:"hs"`
}

func (h *Handler) RediagnoseUser(w http.ResponseWriter, r *http.Request) {
	var req diagnosisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	// A re-diagnosis must supply all four axes, each in [0,1].
	axes := map[string]*float64{"vc": req.VC, "ma": req.MA, "pr": req.PR, "hs": req.HS}
	for name, axis := range axes {
		if axis == nil {
			h.writeError(w, http.StatusBadRequest, fmt.Errorf("axis %s is required", name))
			return
		}
		if *axis < 0 || *axis > 1 {
			h.writeError(w, http.StatusBadRequest, fmt.Errorf("axis %s must be in [0,1], got %g", name, *axis))
			return
		}
	}

	user, err := h.Taste.Rediagnose(chi.URLParam(r, "id"),
		taste.Vector{VC: *req.VC, MA: *req.MA, PR: *req.PR, HS: *req.HS})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			h.writeError(w, http.StatusNotFound, err)
			return
		}
		h.writeError(w, http.StatusInternalServerError, err)
		return
	}
	h.writeJSON(w, http.StatusOK, user)
}

func (h *Handler) SyncLibrary(w http.ResponseWriter, r *http.Request) {
	result, err := h.Library.Sync()
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err)
		return
	}
	h.writeJSON(w, http.StatusOK, result)
}
