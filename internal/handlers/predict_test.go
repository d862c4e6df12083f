package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/courtsideapp/courtside/internal/models"
)

// With no weather or prediction keys configured the endpoint still answers,
// recommending the court with the most current players and a null weather.
func TestRecommendDegradesWithoutKeys(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.stores.Courts.InsertMany(context.Background(), []models.Court{
		{Name: "Empty Court", Rating: 4.0},
		{Name: "Packed Court", Rating: 4.2, CurrentPlayers: 7},
	}))

	w := env.do(t, "GET", "/api/courts/predict/recommended?latitude=29.75&longitude=-95.36", "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		RecommendedCourtID primitive.ObjectID `json:"recommendedCourtId"`
		CourtName          string             `json:"courtName"`
		ConfidenceScore    int                `json:"confidenceScore"`
		Weather            json.RawMessage    `json:"weather"`
		TimeContext        json.RawMessage    `json:"timeContext"`
		Source             string             `json:"source"`
	}
	decodeBody(t, w, &resp)
	assert.Equal(t, "Packed Court", resp.CourtName)
	assert.Equal(t, 60, resp.ConfidenceScore)
	assert.Equal(t, "naive", resp.Source)
	assert.Equal(t, "null", string(resp.Weather))
	assert.Equal(t, "null", string(resp.TimeContext))
	assert.False(t, resp.RecommendedCourtID.IsZero())
}

func TestRecommendWithEmptyCatalog(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, "GET", "/api/courts/predict/recommended", "", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
