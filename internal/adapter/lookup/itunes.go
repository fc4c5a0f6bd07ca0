// Package lookup provides ports.PreviewLookup implementations.
package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tejashwikalptaru/playring/internal/domain"
	"github.com/tejashwikalptaru/playring/internal/ports"
)

const (
	// DefaultITunesEndpoint is the public iTunes Search API.
	DefaultITunesEndpoint = "https://itunes.apple.com/search"

	// DefaultTimeout bounds a single lookup request.
	DefaultTimeout = 3 * time.Second
)

// ITunes looks up 30 second previews through the iTunes Search API.
type ITunes struct {
	httpClient *http.Client
	endpoint   string
	logger     *slog.Logger
}

// NewITunes creates an iTunes lookup. An empty endpoint selects
// DefaultITunesEndpoint; a non-positive timeout selects DefaultTimeout.
func NewITunes(endpoint string, timeout time.Duration, logger *slog.Logger) *ITunes {
	if endpoint == "" {
		endpoint = DefaultITunesEndpoint
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &ITunes{
		httpClient: &http.Client{Timeout: timeout},
		endpoint:   endpoint,
		logger:     logger,
	}
}

type searchResponse struct {
	ResultCount int `json:"resultCount"`
	Results     []struct {
		TrackName  string `json:"trackName"`
		ArtistName string `json:"artistName"`
		PreviewURL string `json:"previewUrl"`
	} `json:"results"`
}

// Lookup returns the previewUrl of the first song matching "title artist".
func (c *ITunes) Lookup(ctx context.Context, title, artist string) (string, error) {
	term := strings.TrimSpace(title + " " + artist)
	if term == "" {
		return "", fmt.Errorf("%w: empty search term", domain.ErrLookupFailed)
	}

	q := url.Values{}
	q.Set("term", term)
	q.Set("entity", "song")
	q.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrLookupFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("%w: failed to read response: %w", domain.ErrLookupFailed, err)
	}

	c.logger.Debug("itunes response",
		slog.String("term", term),
		slog.Int("status", resp.StatusCode))

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d", domain.ErrLookupFailed, resp.StatusCode)
	}

	var result searchResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("%w: failed to parse response: %w", domain.ErrLookupFailed, err)
	}
	if len(result.Results) == 0 || result.Results[0].PreviewURL == "" {
		return "", fmt.Errorf("%w: no preview for %q", domain.ErrLookupFailed, term)
	}
	return result.Results[0].PreviewURL, nil
}

var _ ports.PreviewLookup = (*ITunes)(nil)
