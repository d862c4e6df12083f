package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/courtsideapp/courtside/internal/auth"
	"github.com/courtsideapp/courtside/internal/database"
	"github.com/courtsideapp/courtside/internal/models"
	"github.com/courtsideapp/courtside/internal/presence"
	"github.com/courtsideapp/courtside/internal/recommend"
)

type testEnv struct {
	srv    *Server
	router http.Handler
	stores *database.Stores
	tokens *auth.TokenService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	stores := database.NewMemoryStores()
	tokens := auth.NewTokenService("test-secret", time.Hour)
	engine := presence.NewEngine(stores.Users, stores.Courts, logger)
	recommender := &recommend.Recommender{Courts: stores.Courts, Log: logger}

	srv := NewServer(logger, stores, engine, tokens, recommender, nil)
	return &testEnv{srv: srv, router: srv.Routes(), stores: stores, tokens: tokens}
}

// createTestUser inserts a user directly in the store and returns it with a
// valid bearer token.
func (e *testEnv) createTestUser(t *testing.T, username string, public bool) (*models.User, string) {
	t.Helper()

	hash, err := auth.HashPassword("password")
	require.NoError(t, err)

	u := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: hash,
		IsPublic: public,
	}
	require.NoError(t, e.stores.Users.Create(context.Background(), u))

	token, err := e.tokens.Issue(u.ID.Hex())
	require.NoError(t, err)
	return u, token
}

func (e *testEnv) seedCourt(t *testing.T, name string) primitive.ObjectID {
	t.Helper()
	require.NoError(t, e.stores.Courts.InsertMany(context.Background(), []models.Court{{Name: name, Rating: 4.5, AveragePlayers: 12}}))
	list, err := e.stores.Courts.List(context.Background())
	require.NoError(t, err)
	return list[len(list)-1].ID
}

// do runs a request through the router, optionally JSON-encoding body and
// attaching a bearer token.
func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), "body=%s", w.Body.String())
}
