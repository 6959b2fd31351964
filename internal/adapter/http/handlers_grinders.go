package adapthttp

import (
	"errors"
	"net/http"

	"brewlog/internal/app"
	"brewlog/internal/domain"
)

type grinderRequest struct {
	DisplayName string `json:"displayName"`
	Brand       string `json:"brand"`
	Model       string `json:"model"`
	Notes       string `json:"notes"`
	IsActive    *bool  `json:"isActive"`
}

func (req *grinderRequest) toGrinder(userID int64) *domain.Grinder {
	g := &domain.Grinder{
		UserID:      userID,
		DisplayName: req.DisplayName,
		Brand:       req.Brand,
		Model:       req.Model,
		Notes:       req.Notes,
		IsActive:    true,
	}
	if req.IsActive != nil {
		g.IsActive = *req.IsActive
	}
	return g
}

func (s *Server) handleListGrinders(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"
	items, err := s.grinders.List(r.Context(), userID(r), activeOnly)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (s *Server) handleCreateGrinder(w http.ResponseWriter, r *http.Request) {
	var req grinderRequest
	if err := parseJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	created, err := s.grinders.Create(r.Context(), req.toGrinder(userID(r)))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateGrinder(w http.ResponseWriter, r *http.Request) {
	var req grinderRequest
	if err := parseJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	updated, err := s.grinders.Update(r.Context(), userID(r), r.PathValue("grinderId"), req.toGrinder(userID(r)))
	if errors.Is(err, app.ErrNotFound) {
		writeError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}
