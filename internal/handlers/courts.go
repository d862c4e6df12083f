// internal/handlers/courts.go
package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/courtsideapp/courtside/internal/database"
	"github.com/courtsideapp/courtside/internal/middleware"
)

type checkResponse struct {
	Message        string `json:"message"`
	CurrentPlayers int    `json:"currentPlayers"`
}

// ListCourts returns the full court catalog.
func (s *Server) ListCourts(w http.ResponseWriter, r *http.Request) {
	courts, err := s.Stores.Courts.List(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("failed to list courts: %v", err), http.StatusInternalServerError)
		return
	}
	s.writeJSON(w, http.StatusOK, courts)
}

// GetCourt returns a single court by id.
func (s *Server) GetCourt(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid court id", http.StatusBadRequest)
		return
	}

	court, err := s.Stores.Courts.Get(r.Context(), id)
	if errors.Is(err, database.ErrNotFound) {
		http.Error(w, "Court not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, fmt.Sprintf("failed to load court: %v", err), http.StatusInternalServerError)
		return
	}
	s.writeJSON(w, http.StatusOK, court)
}

// CheckIn moves the authenticated user onto the court, checking them out of
// their previous court first.
func (s *Server) CheckIn(w http.ResponseWriter, r *http.Request) {
	me := middleware.UserFrom(r.Context())

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid court id", http.StatusBadRequest)
		return
	}

	count, err := s.Presence.CheckIn(r.Context(), me, id)
	if errors.Is(err, database.ErrNotFound) {
		http.Error(w, "Court not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, fmt.Sprintf("check-in failed: %v", err), http.StatusInternalServerError)
		return
	}

	s.writeJSON(w, http.StatusOK, checkResponse{Message: "Checked in successfully", CurrentPlayers: count})
}

// CheckOut clears the authenticated user's presence at the court.
func (s *Server) CheckOut(w http.ResponseWriter, r *http.Request) {
	me := middleware.UserFrom(r.Context())

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid court id", http.StatusBadRequest)
		return
	}

	count, err := s.Presence.CheckOut(r.Context(), me, id)
	if err != nil {
		http.Error(w, fmt.Sprintf("check-out failed: %v", err), http.StatusInternalServerError)
		return
	}

	s.writeJSON(w, http.StatusOK, checkResponse{Message: "Checked out successfully", CurrentPlayers: count})
}
