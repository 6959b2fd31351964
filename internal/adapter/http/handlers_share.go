package adapthttp

import (
	"net/http"

	"brewlog/internal/domain"
)

// sharedBrewResponse is the public, read-only view of a brew. It carries
// the display strings the share page renders so the client needs no
// brewing arithmetic of its own.
type sharedBrewResponse struct {
	domain.BrewWithBean
	BrewRatio    string `json:"brewRatio"`
	BrewDuration string `json:"brewDuration"`
}

func (s *Server) handleSharedBrew(w http.ResponseWriter, r *http.Request) {
	brew, err := s.brews.Shared(r.Context(), r.PathValue("brewId"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sharedBrewResponse{
		BrewWithBean: *brew,
		BrewRatio:    domain.BrewRatio(brew.DoseGrams, brew.YieldGrams),
		BrewDuration: domain.FormatBrewDuration(brew.BrewTimeSeconds),
	})
}
