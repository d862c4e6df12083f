// internal/handlers/network.go
package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/courtsideapp/courtside/internal/database"
	"github.com/courtsideapp/courtside/internal/middleware"
	"github.com/courtsideapp/courtside/internal/models"
)

type friendRequestPayload struct {
	ToUserID string `json:"toUserId" validate:"required"`
}

type friendRequestResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// SendFriendRequest creates a pending request unless one already exists in
// either direction. Duplicates are reported softly, never as errors.
func (s *Server) SendFriendRequest(w http.ResponseWriter, r *http.Request) {
	me := middleware.UserFrom(r.Context())

	var req friendRequestPayload
	if err := s.decodeJSON(r, &req); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	toID, err := primitive.ObjectIDFromHex(req.ToUserID)
	if err != nil {
		http.Error(w, "invalid toUserId", http.StatusBadRequest)
		return
	}

	existing, err := s.Stores.Friends.FindBetween(r.Context(), me.ID, toID)
	if err != nil && !errors.Is(err, database.ErrNotFound) {
		http.Error(w, fmt.Sprintf("failed to check existing request: %v", err), http.StatusInternalServerError)
		return
	}
	if existing != nil {
		if existing.Status == models.FriendAccepted {
			s.writeJSON(w, http.StatusOK, friendRequestResponse{Status: "already_connected", Message: "You are already connected"})
			return
		}
		s.writeJSON(w, http.StatusOK, friendRequestResponse{Status: "pending", Message: "Friend request already sent"})
		return
	}

	fr := models.FriendRequest{FromUserID: me.ID, ToUserID: toID}
	if err := s.Stores.Friends.Create(r.Context(), &fr); err != nil {
		http.Error(w, fmt.Sprintf("failed to create friend request: %v", err), http.StatusInternalServerError)
		return
	}
	s.writeJSON(w, http.StatusOK, friendRequestResponse{Status: "success", Message: "Friend request sent"})
}

// AcceptFriendRequest flips a pending request to accepted. Only the original
// recipient may accept; anything else looks like a missing request.
func (s *Server) AcceptFriendRequest(w http.ResponseWriter, r *http.Request) {
	me := middleware.UserFrom(r.Context())

	requestID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid request id", http.StatusBadRequest)
		return
	}

	err = s.Stores.Friends.Accept(r.Context(), requestID, me.ID)
	if errors.Is(err, database.ErrNotFound) {
		http.Error(w, "Friend request not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, fmt.Sprintf("failed to accept friend request: %v", err), http.StatusInternalServerError)
		return
	}

	s.writeJSON(w, http.StatusOK, friendRequestResponse{Status: "success", Message: "Friend request accepted"})
}

// ListConnections returns the users connected to the requester.
func (s *Server) ListConnections(w http.ResponseWriter, r *http.Request) {
	me := middleware.UserFrom(r.Context())
	ctx := r.Context()

	accepted, err := s.Stores.Friends.ListAccepted(ctx, me.ID)
	if err != nil {
		http.Error(w, fmt.Sprintf("failed to list connections: %v", err), http.StatusInternalServerError)
		return
	}

	cards := []models.ContactCard{}
	for _, fr := range accepted {
		other, err := s.Stores.Users.GetByID(ctx, fr.Other(me.ID))
		if err != nil {
			continue
		}
		cards = append(cards, models.ContactCard{
			ID:          other.ID,
			Username:    other.Username,
			ProfilePic:  other.ProfilePic,
			IsConnected: true,
		})
	}
	s.writeJSON(w, http.StatusOK, cards)
}

// ListRecentPlayers suggests players to connect with. With no current court
// it falls back to every public user; otherwise it scopes to the occupant
// set of the requester's court.
func (s *Server) ListRecentPlayers(w http.ResponseWriter, r *http.Request) {
	me := middleware.UserFrom(r.Context())
	ctx := r.Context()

	if me.CurrentCourtID == nil {
		publicUsers, err := s.Stores.Users.ListPublicOthers(ctx, me.ID)
		if err != nil {
			http.Error(w, fmt.Sprintf("failed to list players: %v", err), http.StatusInternalServerError)
			return
		}

		cards := []models.ContactCard{}
		for i := range publicUsers {
			u := &publicUsers[i]
			connected, err := s.Stores.Friends.IsConnected(ctx, me.ID, u.ID)
			if err != nil {
				http.Error(w, fmt.Sprintf("failed to check connection: %v", err), http.StatusInternalServerError)
				return
			}
			cards = append(cards, models.ContactCard{
				ID:          u.ID,
				Username:    u.Username,
				ProfilePic:  u.ProfilePic,
				IsConnected: connected,
			})
		}
		s.writeJSON(w, http.StatusOK, cards)
		return
	}

	court, err := s.Stores.Courts.Get(ctx, *me.CurrentCourtID)
	if err != nil || len(court.PublicUsersAtCourt) == 0 {
		s.writeJSON(w, http.StatusOK, []models.ContactCard{})
		return
	}

	cards := []models.ContactCard{}
	for _, occupantID := range court.PublicUsersAtCourt {
		if occupantID == me.ID {
			continue
		}
		other, err := s.Stores.Users.GetByID(ctx, occupantID)
		if err != nil {
			continue
		}
		connected, err := s.Stores.Friends.IsConnected(ctx, me.ID, other.ID)
		if err != nil {
			http.Error(w, fmt.Sprintf("failed to check connection: %v", err), http.StatusInternalServerError)
			return
		}
		cards = append(cards, models.ContactCard{
			ID:          other.ID,
			Username:    other.Username,
			ProfilePic:  other.ProfilePic,
			IsConnected: connected,
		})
	}
	s.writeJSON(w, http.StatusOK, cards)
}
