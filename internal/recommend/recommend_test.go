package recommend

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courtsideapp/courtside/internal/database"
	"github.com/courtsideapp/courtside/internal/models"
)

type stubWeather struct {
	weather *Weather
	err     error
}

func (s *stubWeather) Current(ctx context.Context, lat, lon float64) (*Weather, error) {
	return s.weather, s.err
}

type stubAI struct {
	prediction *Prediction
	err        error
	prompts    []string
}

func (s *stubAI) BestCourt(ctx context.Context, prompt string) (*Prediction, error) {
	s.prompts = append(s.prompts, prompt)
	return s.prediction, s.err
}

func seedCourts(t *testing.T) database.CourtStore {
	t.Helper()
	courts := database.NewMemoryCourtStore()
	require.NoError(t, courts.InsertMany(context.Background(), []models.Court{
		{Name: "Quiet Court", Rating: 3.0, CurrentPlayers: 1, AveragePlayers: 5},
		{Name: "Busy Court", Rating: 4.5, CurrentPlayers: 9, AveragePlayers: 20},
		{Name: "Top Rated Court", Rating: 5.0, CurrentPlayers: 2, AveragePlayers: 12},
	}))
	return courts
}

func newRecommender(courts database.CourtStore, w WeatherClient, ai PredictionClient) *Recommender {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return &Recommender{
		Courts:  courts,
		Weather: w,
		AI:      ai,
		Log:     logger,
		Now:     func() time.Time { return time.Date(2025, 6, 7, 18, 0, 0, 0, time.UTC) }, // Saturday evening
	}
}

func TestAISuccess(t *testing.T) {
	courts := seedCourts(t)
	ai := &stubAI{prediction: &Prediction{
		RecommendedCourt: "top rated court", // case-insensitive match
		ConfidenceScore:  88,
		Reasoning:        "great weather and momentum",
	}}
	r := newRecommender(courts, &stubWeather{weather: &Weather{Condition: "Clear", Temperature: 75}}, ai)

	rec, err := r.Recommend(context.Background(), 29.75, -95.36)
	require.NoError(t, err)
	assert.Equal(t, SourceAI, rec.Source)
	assert.Equal(t, "Top Rated Court", rec.CourtName)
	assert.Equal(t, 88, rec.ConfidenceScore)
	require.NotNil(t, rec.Weather)
	assert.Equal(t, "Clear", rec.Weather.Condition)
	require.NotNil(t, rec.TimeContext)
	assert.Equal(t, "Saturday", rec.TimeContext.DayOfWeek)
	assert.Equal(t, "evening", rec.TimeContext.TimeOfDay)
	assert.True(t, rec.TimeContext.IsWeekend)
}

func TestScoringFallbackOnUnknownName(t *testing.T) {
	courts := seedCourts(t)
	ai := &stubAI{prediction: &Prediction{RecommendedCourt: "No Such Court", ConfidenceScore: 70, Reasoning: "hmm"}}
	r := newRecommender(courts, &stubWeather{weather: &Weather{Condition: "Clouds", Temperature: 68}}, ai)

	rec, err := r.Recommend(context.Background(), 29.75, -95.36)
	require.NoError(t, err)
	assert.Equal(t, SourceScoring, rec.Source)
	// scoring keeps the AI's confidence and reasoning, plus the context
	assert.Equal(t, 70, rec.ConfidenceScore)
	assert.NotNil(t, rec.Weather)
	assert.NotEmpty(t, rec.CourtName)
}

func TestNaiveFallbackOnWeatherFailure(t *testing.T) {
	courts := seedCourts(t)
	r := newRecommender(courts, &stubWeather{err: fmt.Errorf("upstream down")}, &stubAI{})

	rec, err := r.Recommend(context.Background(), 29.75, -95.36)
	require.NoError(t, err)
	assert.Equal(t, SourceNaive, rec.Source)
	assert.Equal(t, "Busy Court", rec.CourtName)
	assert.Equal(t, 60, rec.ConfidenceScore)
	assert.Nil(t, rec.Weather)
	assert.Nil(t, rec.TimeContext)
}

func TestNaiveFallbackWithoutKeys(t *testing.T) {
	courts := seedCourts(t)
	r := newRecommender(courts, nil, nil)

	rec, err := r.Recommend(context.Background(), 0, 0)
	require.NoError(t, err)
	assert.Equal(t, SourceNaive, rec.Source)
	assert.Equal(t, "Busy Court", rec.CourtName)
	assert.Nil(t, rec.Weather)
}

func TestNaiveFallbackOnAIFailure(t *testing.T) {
	courts := seedCourts(t)
	r := newRecommender(courts, &stubWeather{weather: &Weather{Condition: "Rain", Temperature: 55}}, &stubAI{err: fmt.Errorf("quota exceeded")})

	rec, err := r.Recommend(context.Background(), 29.75, -95.36)
	require.NoError(t, err)
	assert.Equal(t, SourceNaive, rec.Source)
}

func TestDailySignalsAreDeterministic(t *testing.T) {
	courts := []models.Court{
		{Name: "A"}, {Name: "B"}, {Name: "C"},
	}

	first := attachDailySignals(courts, 12)
	second := attachDailySignals(courts, 12)
	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].SocialMediaScore, second[i].SocialMediaScore)
		assert.Equal(t, first[i].LastPostMinutesAgo, second[i].LastPostMinutesAgo)
	}

	for _, s := range first {
		assert.GreaterOrEqual(t, s.SocialMediaScore, 20)
		assert.LessOrEqual(t, s.SocialMediaScore, 95)
		assert.GreaterOrEqual(t, s.LastPostMinutesAgo, 15)
		assert.LessOrEqual(t, s.LastPostMinutesAgo, 240)
	}
}

func TestPromptCarriesConditions(t *testing.T) {
	courts := seedCourts(t)
	ai := &stubAI{prediction: &Prediction{RecommendedCourt: "Busy Court"}}
	r := newRecommender(courts, &stubWeather{weather: &Weather{Condition: "Clear", Temperature: 75}}, ai)

	_, err := r.Recommend(context.Background(), 29.75, -95.36)
	require.NoError(t, err)
	require.Len(t, ai.prompts, 1)
	assert.Contains(t, ai.prompts[0], "Saturday (Weekend)")
	assert.Contains(t, ai.prompts[0], "Clear, 75°F")
	assert.Contains(t, ai.prompts[0], "Busy Court")
	assert.Contains(t, ai.prompts[0], `"recommendedCourt"`)
}

func TestStripFences(t *testing.T) {
	assert.Equal(t, `{"a":1}`, stripFences("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripFences("```\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripFences(`{"a":1}`))
}
