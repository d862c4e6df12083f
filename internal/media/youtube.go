// Package media proxies external video search.
package media

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Video is one search result in the shape the frontend consumes.
type Video struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Thumbnail    string `json:"thumbnail"`
	ChannelTitle string `json:"channelTitle"`
	PublishedAt  string `json:"publishedAt"`
}

// YouTube searches the YouTube Data API, constrained to the sports category.
type YouTube struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

// NewYouTube builds a client; returns nil when no API key is configured.
func NewYouTube(apiKey string) *YouTube {
	if apiKey == "" {
		return nil
	}
	return &YouTube{
		APIKey:     apiKey,
		BaseURL:    "https://www.googleapis.com/youtube/v3/search",
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Search returns up to 20 sports videos matching query.
func (c *YouTube) Search(ctx context.Context, query string) ([]Video, error) {
	q := url.Values{}
	q.Set("part", "snippet")
	q.Set("q", query)
	q.Set("type", "video")
	q.Set("maxResults", "20")
	q.Set("key", c.APIKey)
	q.Set("videoCategoryId", "17") // sports

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("youtube request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch YouTube videos: status %d", resp.StatusCode)
	}

	var payload struct {
		Items []struct {
			ID struct {
				VideoID string `json:"videoId"`
			} `json:"id"`
			Snippet struct {
				Title       string `json:"title"`
				Description string `json:"description"`
				Thumbnails  struct {
					High struct {
						URL string `json:"url"`
					} `json:"high"`
				} `json:"thumbnails"`
				ChannelTitle string `json:"channelTitle"`
				PublishedAt  string `json:"publishedAt"`
			} `json:"snippet"`
		} `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode YouTube response: %w", err)
	}

	videos := make([]Video, 0, len(payload.Items))
	for _, item := range payload.Items {
		videos = append(videos, Video{
			ID:           item.ID.VideoID,
			Title:        item.Snippet.Title,
			Description:  item.Snippet.Description,
			Thumbnail:    item.Snippet.Thumbnails.High.URL,
			ChannelTitle: item.Snippet.ChannelTitle,
			PublishedAt:  item.Snippet.PublishedAt,
		})
	}
	return videos, nil
}
