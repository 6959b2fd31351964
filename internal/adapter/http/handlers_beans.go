package adapthttp

import (
	"errors"
	"net/http"
	"time"

	"brewlog/internal/app"
	"brewlog/internal/domain"
)

type beanRequest struct {
	Name       string `json:"name"`
	Roaster    string `json:"roaster"`
	Origin     string `json:"origin"`
	RoastLevel string `json:"roastLevel"`
	Process    string `json:"process"`
	RoastDate  string `json:"roastDate"`
	Link       string `json:"link"`
	Notes      string `json:"notes"`
}

func (req *beanRequest) toBean(userID int64) (*domain.Bean, error) {
	b := &domain.Bean{
		UserID:     userID,
		Name:       req.Name,
		Roaster:    req.Roaster,
		Origin:     req.Origin,
		RoastLevel: domain.RoastLevel(req.RoastLevel),
		Process:    domain.Process(req.Process),
		Link:       req.Link,
		Notes:      req.Notes,
	}
	if req.RoastDate != "" {
		d, err := time.ParseInLocation(domain.DayFormat, req.RoastDate, time.Local)
		if err != nil {
			return nil, err
		}
		b.RoastDate = &d
	}
	return b, nil
}

func (s *Server) handleListBeans(w http.ResponseWriter, r *http.Request) {
	items, err := s.beans.List(r.Context(), userID(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (s *Server) handleCreateBean(w http.ResponseWriter, r *http.Request) {
	var req beanRequest
	if err := parseJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	bean, err := req.toBean(userID(r))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	created, err := s.beans.Create(r.Context(), bean)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleGetBean(w http.ResponseWriter, r *http.Request) {
	bean, stats, err := s.beans.Get(r.Context(), userID(r), r.PathValue("beanId"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"bean": bean, "stats": stats})
}

func (s *Server) handleUpdateBean(w http.ResponseWriter, r *http.Request) {
	var req beanRequest
	if err := parseJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	bean, err := req.toBean(userID(r))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	updated, err := s.beans.Update(r.Context(), userID(r), r.PathValue("beanId"), bean)
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

func (s *Server) handleDeleteBean(w http.ResponseWriter, r *http.Request) {
	if err := s.beans.Delete(r.Context(), userID(r), r.PathValue("beanId")); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
