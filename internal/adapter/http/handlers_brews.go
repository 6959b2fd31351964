package adapthttp

import (
	"errors"
	"net/http"
	"time"

	"brewlog/internal/app"
	"brewlog/internal/domain"

	"github.com/google/uuid"
)

type brewRequest struct {
	BeanID           string   `json:"beanId"`
	Method           string   `json:"method"`
	BrewedAt         string   `json:"brewedAt"`
	DoseGrams        *float64 `json:"doseGrams"`
	YieldGrams       *float64 `json:"yieldGrams"`
	BrewTimeSeconds  *int     `json:"brewTimeSeconds"`
	WaterTempCelsius *int     `json:"waterTempCelsius"`
	GrinderID        string   `json:"grinderId"`
	GrindSetting     string   `json:"grindSetting"`
	Rating           *int     `json:"rating"`
	Notes            string   `json:"notes"`
	FlavorNotes      string   `json:"flavorNotes"`
	IsPublic         bool     `json:"isPublic"`
}

func (req *brewRequest) toInput() (app.BrewInput, error) {
	in := app.BrewInput{
		BeanID:           req.BeanID,
		Method:           req.Method,
		DoseGrams:        req.DoseGrams,
		YieldGrams:       req.YieldGrams,
		BrewTimeSeconds:  req.BrewTimeSeconds,
		WaterTempCelsius: req.WaterTempCelsius,
		GrinderID:        req.GrinderID,
		GrindSetting:     req.GrindSetting,
		Rating:           req.Rating,
		Notes:            req.Notes,
		FlavorNotes:      req.FlavorNotes,
		IsPublic:         req.IsPublic,
	}
	if req.BrewedAt != "" {
		t, err := time.Parse(time.RFC3339, req.BrewedAt)
		if err != nil {
			return in, errors.New("brewedAt must be an RFC 3339 timestamp")
		}
		in.BrewedAt = &t
	}
	return in, nil
}

// brewFilterFromQuery builds the listing filter from query parameters.
// Unknown or malformed values are simply left unset.
func brewFilterFromQuery(r *http.Request) domain.BrewFilter {
	q := r.URL.Query()
	f := domain.BrewFilter{
		Limit:  intQuery(r, "limit", 0),
		Offset: intQuery(r, "offset", 0),
	}

	if m := domain.BrewMethod(q.Get("method")); m.Valid() {
		f.Method = &m
	}
	if id, err := uuid.Parse(q.Get("beanId")); err == nil {
		f.BeanID = &id
	}
	if id, err := uuid.Parse(q.Get("grinderId")); err == nil {
		f.GrinderID = &id
	}
	if search := q.Get("q"); search != "" {
		f.Search = &search
	}
	if t, err := time.ParseInLocation(domain.DayFormat, q.Get("from"), time.Local); err == nil {
		f.From = &t
	}
	if t, err := time.ParseInLocation(domain.DayFormat, q.Get("to"), time.Local); err == nil {
		// The "to" day is inclusive; the repository filters brewed_at < To.
		end := t.AddDate(0, 0, 1)
		f.To = &end
	}
	return f
}

func (s *Server) handleListBrews(w http.ResponseWriter, r *http.Request) {
	items, err := s.brews.List(r.Context(), userID(r), brewFilterFromQuery(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (s *Server) handleCreateBrew(w http.ResponseWriter, r *http.Request) {
	var req brewRequest
	if err := parseJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	in, err := req.toInput()
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	created, err := s.brews.Record(r.Context(), userID(r), in)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleGetBrew(w http.ResponseWriter, r *http.Request) {
	brew, err := s.brews.Get(r.Context(), userID(r), r.PathValue("brewId"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, brew)
}

func (s *Server) handleUpdateBrew(w http.ResponseWriter, r *http.Request) {
	var req brewRequest
	if err := parseJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	in, err := req.toInput()
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	updated, err := s.brews.Update(r.Context(), userID(r), r.PathValue("brewId"), in)
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

func (s *Server) handleDeleteBrew(w http.ResponseWriter, r *http.Request) {
	if err := s.brews.Delete(r.Context(), userID(r), r.PathValue("brewId")); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleShareBrew(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IsPublic bool `json:"isPublic"`
	}
	if err := parseJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := s.brews.SetPublic(r.Context(), userID(r), r.PathValue("brewId"), req.IsPublic); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"isPublic": req.IsPublic})
}
