package qualitube

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ytget/qualitube/errs"
	"github.com/ytget/qualitube/internal/logger"
	"github.com/ytget/qualitube/pkg/client"
	"github.com/ytget/qualitube/types"
	"github.com/ytget/qualitube/youtube/dataapi"
)

// Video is a single mapped videos.list item.
type Video = types.Video

// VideosResponse is the ordered result of GetVideos.
type VideosResponse = types.VideosResponse

// MaxBatchSize is the largest number of ids sent in one request.
const MaxBatchSize = dataapi.MaxBatchSize

// Client fetches videos with a fixed API key. It keeps no state between
// calls; configure it before use and do not share it across goroutines while
// reconfiguring.
type Client struct {
	apiKey    string
	http      *client.Client
	baseURL   string
	batchSize int
}

// New creates a Client for apiKey with default HTTP settings.
func New(apiKey string) *Client {
	return &Client{
		apiKey:    apiKey,
		http:      client.New(),
		baseURL:   dataapi.DefaultBaseURL,
		batchSize: MaxBatchSize,
	}
}

// WithHTTPClient sets a custom HTTP client to be used for all network calls.
func (c *Client) WithHTTPClient(httpClient *http.Client) *Client {
	if httpClient != nil {
		c.http.HTTPClient = httpClient
	}
	return c
}

// WithConfig replaces the HTTP client with one built from cfg.
func (c *Client) WithConfig(cfg client.Config) *Client {
	c.http = client.NewWith(cfg)
	return c
}

// WithBaseURL points the client at another Data API root.
func (c *Client) WithBaseURL(base string) *Client {
	if base = strings.TrimSpace(base); base != "" {
		c.baseURL = base
	}
	return c
}

// WithBatchSize sets the number of ids per request, clamped to 1..MaxBatchSize.
func (c *Client) WithBatchSize(n int) *Client {
	switch {
	case n < 1:
		n = 1
	case n > MaxBatchSize:
		n = MaxBatchSize
	}
	c.batchSize = n
	return c
}

// GetVideos fetches snippet and statistics for ids, one request per batch,
// and returns the videos in response order across batches. ids is not
// modified. Repeated ids are requested as given.
//
// The first failure aborts the call and no partial result is returned. An
// error payload from the API is returned as *errs.APIError whose message is
// the upstream one.
func (c *Client) GetVideos(ctx context.Context, ids []string) (*VideosResponse, error) {
	if strings.TrimSpace(c.apiKey) == "" {
		return nil, errs.ErrMissingAPIKey
	}

	batches := dataapi.Batches(ids, c.batchSize)
	api := dataapi.New(c.http).WithBaseURL(c.baseURL)
	log := logger.WithComponent(logger.ComponentDataAPI)
	requestID := uuid.NewString()

	log.Debug("Fetching videos", map[string]interface{}{
		"request_id": requestID,
		"ids":        len(ids),
		"batches":    len(batches),
	})

	start := time.Now()
	videos := make([]types.Video, 0, len(ids))
	for i, batch := range batches {
		items, err := api.ListVideos(ctx, c.apiKey, batch)
		if err != nil {
			log.Debug("Batch failed", map[string]interface{}{
				"request_id": requestID,
				"batch":      i + 1,
				"error":      err.Error(),
			})
			var apiErr *errs.APIError
			if errors.As(err, &apiErr) {
				return nil, apiErr
			}
			return nil, fmt.Errorf("batch %d/%d: %w", i+1, len(batches), err)
		}

		for j, item := range items {
			v, err := types.NewVideo(item)
			if err != nil {
				return nil, fmt.Errorf("batch %d/%d item %d: %w", i+1, len(batches), j, err)
			}
			videos = append(videos, v)
		}

		log.Debug("Batch done", map[string]interface{}{
			"request_id": requestID,
			"batch":      i + 1,
			"requested":  len(batch),
			"received":   len(items),
		})
	}

	log.Debug("Videos fetched", map[string]interface{}{
		"request_id": requestID,
		"videos":     len(videos),
		"duration":   time.Since(start).String(),
	})
	return &VideosResponse{Videos: videos}, nil
}
