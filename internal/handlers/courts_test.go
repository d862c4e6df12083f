package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCheckInFlow(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.createTestUser(t, "alice", true)
	v := env.seedCourt(t, "Court V")
	w2 := env.seedCourt(t, "Court W")

	// check into V: 0 -> 1
	w := env.do(t, "POST", "/api/courts/"+v.Hex()+"/checkin", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp struct {
		Message        string `json:"message"`
		CurrentPlayers int    `json:"currentPlayers"`
	}
	decodeBody(t, w, &resp)
	assert.Equal(t, "Checked in successfully", resp.Message)
	assert.Equal(t, 1, resp.CurrentPlayers)

	// check into W without an explicit checkout: V back to 0, W becomes 1
	w = env.do(t, "POST", "/api/courts/"+w2.Hex()+"/checkin", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeBody(t, w, &resp)
	assert.Equal(t, 1, resp.CurrentPlayers)

	oldCourt, err := env.stores.Courts.Get(context.Background(), v)
	require.NoError(t, err)
	assert.Equal(t, 0, oldCourt.CurrentPlayers)
}

func TestCheckOutFloor(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.createTestUser(t, "bob", true)
	courtID := env.seedCourt(t, "Court X")

	w := env.do(t, "POST", "/api/courts/"+courtID.Hex()+"/checkin", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		CurrentPlayers int `json:"currentPlayers"`
	}
	for i := 0; i < 2; i++ {
		w = env.do(t, "POST", "/api/courts/"+courtID.Hex()+"/checkout", token, nil)
		require.Equal(t, http.StatusOK, w.Code)
		decodeBody(t, w, &resp)
		assert.Equal(t, 0, resp.CurrentPlayers)
	}
}

func TestCheckInUnknownCourt(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.createTestUser(t, "carol", true)

	w := env.do(t, "POST", "/api/courts/"+primitive.NewObjectID().Hex()+"/checkin", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCourtEndpointsArePublic(t *testing.T) {
	env := newTestEnv(t)
	courtID := env.seedCourt(t, "Court Y")

	w := env.do(t, "GET", "/api/courts", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, "GET", "/api/courts/"+courtID.Hex(), "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, "GET", "/api/courts/"+primitive.NewObjectID().Hex(), "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// mutation still requires a token
	w = env.do(t, "POST", "/api/courts/"+courtID.Hex()+"/checkin", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestTogglePrivacyEndpoint(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.createTestUser(t, "dave", true)
	courtID := env.seedCourt(t, "Court Z")

	w := env.do(t, "POST", "/api/courts/"+courtID.Hex()+"/checkin", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, "PUT", "/api/users/toggle-privacy", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		IsPublic bool `json:"isPublic"`
	}
	decodeBody(t, w, &resp)
	assert.False(t, resp.IsPublic)

	court, err := env.stores.Courts.Get(context.Background(), courtID)
	require.NoError(t, err)
	assert.Equal(t, 0, court.CurrentPlayers)

	w = env.do(t, "PUT", "/api/users/toggle-privacy", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeBody(t, w, &resp)
	assert.True(t, resp.IsPublic)

	court, err = env.stores.Courts.Get(context.Background(), courtID)
	require.NoError(t, err)
	assert.Equal(t, 1, court.CurrentPlayers)
}
