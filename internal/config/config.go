package config

import (
	"os"
	"strconv"
	"time"
)

// Config is the process-wide configuration, read once at startup and passed
// down explicitly. Missing third-party keys degrade the dependent endpoints
// rather than preventing startup.
type Config struct {
	Port     string
	MongoURL string
	DBName   string

	JWTSecret   string
	TokenExpire time.Duration

	OpenWeatherKey string
	OpenAIKey      string
	YouTubeKey     string

	RedisAddr string
	RedisDB   int
}

// Load reads configuration from the environment.
func Load() Config {
	expire := 720 * time.Hour // 30 days
	if v := os.Getenv("TOKEN_EXPIRE_TIME"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			expire = d
		}
	}

	redisDB := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			redisDB = n
		}
	}

	return Config{
		Port:           getEnv("PORT", "8080"),
		MongoURL:       getEnv("MONGO_URL", "mongodb://localhost:27017"),
		DBName:         getEnv("DB_NAME", "courtside"),
		JWTSecret:      getEnv("JWT_SECRET", "your-secret-key"),
		TokenExpire:    expire,
		OpenWeatherKey: os.Getenv("OPENWEATHER_API_KEY"),
		OpenAIKey:      os.Getenv("OPENAI_API_KEY"),
		YouTubeKey:     os.Getenv("YOUTUBE_API_KEY"),
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		RedisDB:        redisDB,
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
