// internal/handlers/users.go
package handlers

import (
	"fmt"
	"net/http"

	"github.com/courtsideapp/courtside/internal/middleware"
	"github.com/courtsideapp/courtside/internal/models"
)

// ListUsers returns every other user as a minimal card.
func (s *Server) ListUsers(w http.ResponseWriter, r *http.Request) {
	me := middleware.UserFrom(r.Context())

	users, err := s.Stores.Users.ListOthers(r.Context(), me.ID)
	if err != nil {
		http.Error(w, fmt.Sprintf("failed to list users: %v", err), http.StatusInternalServerError)
		return
	}

	cards := make([]models.UserCard, 0, len(users))
	for i := range users {
		cards = append(cards, users[i].Card())
	}
	s.writeJSON(w, http.StatusOK, cards)
}

// UpdateProfile applies a partial profile update and returns the result.
func (s *Server) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	me := middleware.UserFrom(r.Context())

	var upd models.ProfileUpdate
	if err := s.decodeJSON(r, &upd); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}

	if err := s.Stores.Users.UpdateProfile(r.Context(), me.ID, upd); err != nil {
		http.Error(w, fmt.Sprintf("failed to update profile: %v", err), http.StatusInternalServerError)
		return
	}

	updated, err := s.Stores.Users.GetByID(r.Context(), me.ID)
	if err != nil {
		http.Error(w, fmt.Sprintf("failed to load profile: %v", err), http.StatusInternalServerError)
		return
	}
	s.writeJSON(w, http.StatusOK, updated)
}

// TogglePrivacy flips the visibility flag through the presence engine so
// occupancy at the user's current court stays in step.
func (s *Server) TogglePrivacy(w http.ResponseWriter, r *http.Request) {
	me := middleware.UserFrom(r.Context())

	isPublic, err := s.Presence.TogglePrivacy(r.Context(), me)
	if err != nil {
		http.Error(w, fmt.Sprintf("failed to toggle privacy: %v", err), http.StatusInternalServerError)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]bool{"isPublic": isPublic})
}
