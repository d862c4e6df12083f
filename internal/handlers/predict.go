// internal/handlers/predict.go
package handlers

import (
	"fmt"
	"net/http"
	"strconv"
)

// RecommendCourt runs the recommendation adapter. Upstream failures degrade
// through the adapter's fallback stages; only an unavailable court catalog
// surfaces as an error.
func (s *Server) RecommendCourt(w http.ResponseWriter, r *http.Request) {
	lat, _ := strconv.ParseFloat(r.URL.Query().Get("latitude"), 64)
	lon, _ := strconv.ParseFloat(r.URL.Query().Get("longitude"), 64)

	rec, err := s.Recommender.Recommend(r.Context(), lat, lon)
	if err != nil {
		http.Error(w, fmt.Sprintf("%v", err), http.StatusInternalServerError)
		return
	}
	s.writeJSON(w, http.StatusOK, rec)
}
