// cmd/server/main.go
package main

import (
	"context"
	"net/http"

	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"

	"github.com/courtsideapp/courtside/internal/auth"
	"github.com/courtsideapp/courtside/internal/cache"
	"github.com/courtsideapp/courtside/internal/config"
	"github.com/courtsideapp/courtside/internal/database"
	"github.com/courtsideapp/courtside/internal/handlers"
	"github.com/courtsideapp/courtside/internal/media"
	"github.com/courtsideapp/courtside/internal/presence"
	"github.com/courtsideapp/courtside/internal/recommend"
)

func main() {
	logger := logrus.New()
	logger.SetLevel(logrus.DebugLevel)

	cfg := config.Load()

	db, err := database.Connect(context.Background(), cfg.MongoURL, cfg.DBName)
	if err != nil {
		logger.Fatalf("unable to connect to store: %v", err)
	}
	stores := database.NewMongoStores(db)

	// One-shot catalog seed; must not delay request serving.
	go database.EnsureCourts(context.Background(), stores.Courts, logger)

	var weatherCache *cache.Cache
	if cfg.RedisAddr != "" {
		weatherCache, err = cache.Connect(cfg.RedisAddr, cfg.RedisDB, logger)
		if err != nil {
			logger.WithError(err).Warn("redis unavailable, caching disabled")
		}
	}

	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.TokenExpire)
	engine := presence.NewEngine(stores.Users, stores.Courts, logger)
	recommender := &recommend.Recommender{
		Courts:  stores.Courts,
		Weather: weatherClient(cfg.OpenWeatherKey),
		AI:      aiClient(cfg.OpenAIKey),
		Cache:   weatherCache,
		Log:     logger,
	}

	srv := handlers.NewServer(logger, stores, engine, tokens, recommender, media.NewYouTube(cfg.YouTubeKey))

	addr := ":" + cfg.Port
	logger.Infof("Running on %s", addr)
	if err := http.ListenAndServe(addr, srv.Routes()); err != nil {
		logger.Fatalf("server exited: %v", err)
	}
}

// weatherClient and aiClient keep typed-nil interface values out of the
// recommender when keys are missing.
func weatherClient(key string) recommend.WeatherClient {
	if c := recommend.NewOpenWeather(key); c != nil {
		return c
	}
	return nil
}

func aiClient(key string) recommend.PredictionClient {
	if c := recommend.NewOpenAI(key); c != nil {
		return c
	}
	return nil
}
