// internal/handlers/messages.go
package handlers

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/courtsideapp/courtside/internal/middleware"
	"github.com/courtsideapp/courtside/internal/models"
)

type sendMessageRequest struct {
	ToUserID string `json:"toUserId" validate:"required"`
	Message  string `json:"message" validate:"required"`
}

// SendMessage appends a message to the thread with the target user.
func (s *Server) SendMessage(w http.ResponseWriter, r *http.Request) {
	me := middleware.UserFrom(r.Context())

	var req sendMessageRequest
	if err := s.decodeJSON(r, &req); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	toID, err := primitive.ObjectIDFromHex(req.ToUserID)
	if err != nil {
		http.Error(w, "invalid toUserId", http.StatusBadRequest)
		return
	}

	msg := models.Message{
		FromUserID: me.ID,
		ToUserID:   toID,
		Message:    req.Message,
	}
	if err := s.Stores.Messages.Insert(r.Context(), &msg); err != nil {
		http.Error(w, fmt.Sprintf("failed to send message: %v", err), http.StatusInternalServerError)
		return
	}
	s.writeJSON(w, http.StatusOK, msg)
}

// GetThread returns the two-way thread with the other user, oldest first.
// Fetching marks the other user's messages to the requester as read; the
// repeat fetch is harmless since the flag is already set.
func (s *Server) GetThread(w http.ResponseWriter, r *http.Request) {
	me := middleware.UserFrom(r.Context())

	otherID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "otherUserId"))
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	if err := s.Stores.Messages.MarkRead(r.Context(), otherID, me.ID); err != nil {
		http.Error(w, fmt.Sprintf("failed to mark messages read: %v", err), http.StatusInternalServerError)
		return
	}

	msgs, err := s.Stores.Messages.Thread(r.Context(), me.ID, otherID)
	if err != nil {
		http.Error(w, fmt.Sprintf("failed to load messages: %v", err), http.StatusInternalServerError)
		return
	}
	if msgs == nil {
		msgs = []models.Message{}
	}
	s.writeJSON(w, http.StatusOK, msgs)
}

// ListConversations summarizes the requester's threads, newest first, with
// per-thread unread counts.
func (s *Server) ListConversations(w http.ResponseWriter, r *http.Request) {
	me := middleware.UserFrom(r.Context())
	ctx := r.Context()

	msgs, err := s.Stores.Messages.ListFor(ctx, me.ID)
	if err != nil {
		http.Error(w, fmt.Sprintf("failed to load messages: %v", err), http.StatusInternalServerError)
		return
	}

	seen := make(map[primitive.ObjectID]bool)
	conversations := []models.Conversation{}
	for _, msg := range msgs {
		otherID := msg.ToUserID
		if msg.ToUserID == me.ID {
			otherID = msg.FromUserID
		}
		if seen[otherID] {
			continue
		}
		seen[otherID] = true

		other, err := s.Stores.Users.GetByID(ctx, otherID)
		if err != nil {
			continue // counterpart gone, skip the thread
		}
		unread, err := s.Stores.Messages.CountUnread(ctx, otherID, me.ID)
		if err != nil {
			http.Error(w, fmt.Sprintf("failed to count unread: %v", err), http.StatusInternalServerError)
			return
		}

		conversations = append(conversations, models.Conversation{
			UserID:      other.ID,
			Username:    other.Username,
			ProfilePic:  other.ProfilePic,
			LastMessage: msg.Message,
			Timestamp:   msg.Timestamp,
			UnreadCount: unread,
		})
	}

	s.writeJSON(w, http.StatusOK, conversations)
}
