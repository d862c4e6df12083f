// internal/handlers/server.go
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/courtsideapp/courtside/internal/auth"
	"github.com/courtsideapp/courtside/internal/database"
	"github.com/courtsideapp/courtside/internal/media"
	"github.com/courtsideapp/courtside/internal/middleware"
	"github.com/courtsideapp/courtside/internal/presence"
	"github.com/courtsideapp/courtside/internal/recommend"
)

// Server holds every dependency the HTTP handlers need. Everything is
// injected at construction; no package-level state.
type Server struct {
	Log         *logrus.Logger
	Stores      *database.Stores
	Presence    *presence.Engine
	Tokens      *auth.TokenService
	Recommender *recommend.Recommender
	YouTube     *media.YouTube

	validate *validator.Validate
}

// NewServer constructs a Server.
func NewServer(log *logrus.Logger, stores *database.Stores, eng *presence.Engine, tokens *auth.TokenService, rec *recommend.Recommender, yt *media.YouTube) *Server {
	return &Server{
		Log:         log,
		Stores:      stores,
		Presence:    eng,
		Tokens:      tokens,
		Recommender: rec,
		YouTube:     yt,
		validate:    validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Routes builds the full API router under the /api prefix.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.LogMiddleware(s.Log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
	}))

	r.Route("/api", func(r chi.Router) {
		// public
		r.Post("/auth/register", s.Register)
		r.Post("/auth/login", s.Login)
		r.Get("/courts", s.ListCourts)
		r.Get("/courts/predict/recommended", s.RecommendCourt)
		r.Get("/courts/{id}", s.GetCourt)
		r.Get("/media/youtube", s.YouTubeSearch)

		// bearer token required
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(s.Stores.Users, s.Tokens))

			r.Get("/auth/me", s.Me)
			r.Get("/users", s.ListUsers)
			r.Put("/users/profile", s.UpdateProfile)
			r.Put("/users/toggle-privacy", s.TogglePrivacy)

			r.Post("/courts/{id}/checkin", s.CheckIn)
			r.Post("/courts/{id}/checkout", s.CheckOut)

			r.Get("/messages/conversations", s.ListConversations)
			r.Get("/messages/{otherUserId}", s.GetThread)
			r.Post("/messages/send", s.SendMessage)

			r.Post("/network/friend-request", s.SendFriendRequest)
			r.Post("/network/accept/{id}", s.AcceptFriendRequest)
			r.Get("/network/connections", s.ListConnections)
			r.Get("/network/recent-players", s.ListRecentPlayers)
		})
	})

	return r
}

// writeJSON encodes v with a status code. Encoding failures are logged; the
// status line has already been sent by then.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Log.WithError(err).Error("failed to write response")
	}
}

// decodeJSON decodes the request body into v and runs struct validation.
func (s *Server) decodeJSON(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return err
	}
	return s.validate.Struct(v)
}
