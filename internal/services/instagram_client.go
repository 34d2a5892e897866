package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// MediaStats is one observation of a published clip on the platform.
type MediaStats struct {
	MediaID   string
	ViewCount int64
	Caption   *string
	PostedAt  *time.Time
}

// MediaStatsClient fetches engagement numbers for a published media id.
type MediaStatsClient interface {
	GetMediaStats(ctx context.Context, mediaID string) (*MediaStats, error)
}

// InstagramClient reads media metrics from the Instagram Graph API.
type InstagramClient struct {
	baseURL     string
	accessToken string
	httpClient  *http.Client
}

func NewInstagramClient(baseURL, accessToken string) *InstagramClient {
	return &InstagramClient{
		baseURL:     strings.TrimRight(baseURL, "/"),
		accessToken: accessToken,
		httpClient:  &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *InstagramClient) SetHTTPClient(hc *http.Client) {
	if hc != nil {
		c.httpClient = hc
	}
}

func (c *InstagramClient) GetMediaStats(ctx context.Context, mediaID string) (*MediaStats, error) {
	mediaID = strings.TrimSpace(mediaID)
	if mediaID == "" {
		return nil, errors.New("media id is required")
	}
	if strings.TrimSpace(c.baseURL) == "" {
		return nil, errors.New("instagram baseURL is required")
	}
	if strings.TrimSpace(c.accessToken) == "" {
		return nil, errors.New("instagram access token is required")
	}

	u, err := url.Parse(c.baseURL + "/" + url.PathEscape(mediaID))
	if err != nil {
		return nil, err
	}
	q := u.Query()
	q.Set("fields", "id,caption,timestamp,view_count,plays")
	q.Set("access_token", c.accessToken)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("instagram media fetch failed: status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var out map[string]any
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("instagram media fetch: invalid json: %w", err)
	}

	stats := &MediaStats{MediaID: mediaID}

	// View counts come back under different names depending on media type.
	for _, k := range []string{"view_count", "plays", "video_view_count", "views"} {
		if v, ok := out[k]; ok {
			if n, ok := v.(float64); ok {
				stats.ViewCount = int64(n)
				break
			}
		}
	}

	if v, ok := out["caption"]; ok {
		if s, ok := v.(string); ok && s != "" {
			stats.Caption = &s
		}
	}

	if v, ok := out["timestamp"]; ok {
		if s, ok := v.(string); ok {
			if ts, err := time.Parse(time.RFC3339, s); err == nil {
				stats.PostedAt = &ts
			}
		}
	}

	return stats, nil
}
