// internal/handlers/media.go
package handlers

import (
	"fmt"
	"net/http"
)

// YouTubeSearch proxies an external video search. A missing API key degrades
// this endpoint only.
func (s *Server) YouTubeSearch(w http.ResponseWriter, r *http.Request) {
	if s.YouTube == nil {
		http.Error(w, "YouTube API key not configured", http.StatusInternalServerError)
		return
	}

	query := r.URL.Query().Get("query")
	if query == "" {
		query = "NBA basketball highlights"
	}

	videos, err := s.YouTube.Search(r.Context(), query)
	if err != nil {
		s.Log.WithError(err).Error("YouTube API error")
		http.Error(w, fmt.Sprintf("%v", err), http.StatusInternalServerError)
		return
	}
	s.writeJSON(w, http.StatusOK, videos)
}
