// internal/handlers/auth.go
package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/courtsideapp/courtside/internal/auth"
	"github.com/courtsideapp/courtside/internal/database"
	"github.com/courtsideapp/courtside/internal/middleware"
	"github.com/courtsideapp/courtside/internal/models"
)

type registerRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Register creates a new user and returns a signed token plus the profile.
func (s *Server) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := s.decodeJSON(r, &req); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		http.Error(w, fmt.Sprintf("failed to hash password: %v", err), http.StatusInternalServerError)
		return
	}

	user := models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: hash,
		IsPublic: true,
	}

	if err := s.Stores.Users.Create(r.Context(), &user); err != nil {
		switch {
		case errors.Is(err, database.ErrEmailExists):
			http.Error(w, "Email already registered", http.StatusBadRequest)
		case errors.Is(err, database.ErrUsernameExists):
			http.Error(w, "Username already taken", http.StatusBadRequest)
		default:
			http.Error(w, fmt.Sprintf("error creating user: %v", err), http.StatusInternalServerError)
		}
		return
	}

	token, err := s.Tokens.Issue(user.ID.Hex())
	if err != nil {
		http.Error(w, fmt.Sprintf("failed to create token: %v", err), http.StatusInternalServerError)
		return
	}

	s.writeJSON(w, http.StatusOK, authResponse{Token: token, User: &user})
}

// Login authenticates by email and password.
func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := s.decodeJSON(r, &req); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}

	user, err := s.Stores.Users.GetByEmail(r.Context(), req.Email)
	if err != nil {
		http.Error(w, "Invalid email or password", http.StatusUnauthorized)
		return
	}

	match, err := auth.VerifyPassword(req.Password, user.Password)
	if err != nil || !match {
		http.Error(w, "Invalid email or password", http.StatusUnauthorized)
		return
	}

	token, err := s.Tokens.Issue(user.ID.Hex())
	if err != nil {
		http.Error(w, fmt.Sprintf("failed to create token: %v", err), http.StatusInternalServerError)
		return
	}

	s.writeJSON(w, http.StatusOK, authResponse{Token: token, User: user})
}

// Me returns the authenticated user's own profile.
func (s *Server) Me(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	s.writeJSON(w, http.StatusOK, user)
}
