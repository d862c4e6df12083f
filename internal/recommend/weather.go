// internal/recommend/weather.go
package recommend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Weather is the subset of current conditions the recommender cares about.
type Weather struct {
	Condition   string  `json:"condition"`
	Temperature float64 `json:"temperature"`
}

// WeatherClient fetches current conditions for a coordinate.
type WeatherClient interface {
	Current(ctx context.Context, lat, lon float64) (*Weather, error)
}

// OpenWeather calls the OpenWeatherMap current-weather API (imperial units).
type OpenWeather struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

// NewOpenWeather builds a client; returns nil when no API key is configured
// so the recommender degrades to its fallback path.
func NewOpenWeather(apiKey string) *OpenWeather {
	if apiKey == "" {
		return nil
	}
	return &OpenWeather{
		APIKey:     apiKey,
		BaseURL:    "https://api.openweathermap.org/data/2.5/weather",
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *OpenWeather) Current(ctx context.Context, lat, lon float64) (*Weather, error) {
	q := url.Values{}
	q.Set("lat", fmt.Sprintf("%f", lat))
	q.Set("lon", fmt.Sprintf("%f", lon))
	q.Set("appid", c.APIKey)
	q.Set("units", "imperial")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("weather request failed: %w", err)
	}
	defer resp.Body.Close()

	var payload struct {
		Weather []struct {
			Main string `json:"main"`
		} `json:"weather"`
		Main struct {
			Temp *float64 `json:"temp"`
		} `json:"main"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode weather response: %w", err)
	}

	// Missing fields default rather than error; the upstream payload is
	// loosely shaped.
	w := &Weather{Condition: "Clear", Temperature: 70}
	if len(payload.Weather) > 0 && payload.Weather[0].Main != "" {
		w.Condition = payload.Weather[0].Main
	}
	if payload.Main.Temp != nil {
		w.Temperature = *payload.Main.Temp
	}
	return w, nil
}
