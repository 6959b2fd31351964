package adapthttp

import "net/http"

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := s.stats.GetDashboard(r.Context(), userID(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, dashboard)
}

func (s *Server) handleStreak(w http.ResponseWriter, r *http.Request) {
	streak, err := s.stats.GetStreak(r.Context(), userID(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"currentStreak": streak})
}

func (s *Server) handleTopBeans(w http.ResponseWriter, r *http.Request) {
	beans, err := s.stats.GetTopBeans(r.Context(), userID(r), intQuery(r, "limit", 0))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": beans})
}

func (s *Server) handleFavoriteMethods(w http.ResponseWriter, r *http.Request) {
	methods, err := s.stats.GetFavoriteMethods(r.Context(), userID(r), intQuery(r, "limit", 5))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": methods})
}
