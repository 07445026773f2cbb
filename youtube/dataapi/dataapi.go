// Package dataapi talks to the videos.list endpoint of the YouTube Data API v3.
package dataapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/ytget/qualitube/errs"
	"github.com/ytget/qualitube/internal/logger"
)

const (
	// DefaultBaseURL is the Data API root used when none is configured.
	DefaultBaseURL = "https://youtube.googleapis.com/youtube/v3"

	videosPath            = "/videos"
	videoParts            = "snippet,statistics"
	headerContentTypeJSON = "application/json"
)

// ErrBatchTooLarge is returned when more than MaxBatchSize ids are passed to ListVideos.
var ErrBatchTooLarge = errors.New("batch exceeds 50 ids")

// Doer sends an HTTP request. *http.Client and *client.Client satisfy it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client issues videos.list requests.
type Client struct {
	HTTP      Doer
	baseURL   string
	userAgent string
}

// New creates a Data API client. A nil doer uses http.DefaultClient.
func New(doer Doer) *Client {
	if doer == nil {
		doer = http.DefaultClient
	}
	return &Client{HTTP: doer, baseURL: DefaultBaseURL}
}

// WithBaseURL overrides the API root, e.g. to point at a test server.
func (c *Client) WithBaseURL(base string) *Client {
	if base = strings.TrimSpace(base); base != "" {
		c.baseURL = strings.TrimRight(base, "/")
	}
	return c
}

// WithUserAgent sets an explicit User-Agent header on every request.
func (c *Client) WithUserAgent(ua string) *Client {
	c.userAgent = strings.TrimSpace(ua)
	return c
}

// BaseURL returns the configured API root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// videoListResponse is the videos.list envelope. Items stay raw so the
// caller maps them one by one.
type videoListResponse struct {
	Kind  string            `json:"kind"`
	Items []json.RawMessage `json:"items"`
	Error *errorPayload     `json:"error"`
}

type errorPayload struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Errors  []struct {
		Domain  string `json:"domain"`
		Reason  string `json:"reason"`
		Message string `json:"message"`
	} `json:"errors"`
}

func (p *errorPayload) toError(status int) *errs.APIError {
	apiErr := &errs.APIError{Code: p.Code, Message: p.Message}
	if apiErr.Code == 0 {
		apiErr.Code = status
	}
	for _, e := range p.Errors {
		if e.Reason != "" {
			apiErr.Reasons = append(apiErr.Reasons, e.Reason)
		}
	}
	return apiErr
}

// ListVideos requests the snippet and statistics parts for ids and returns the
// raw items in response order. An error payload in the response is returned as
// *errs.APIError.
func (c *Client) ListVideos(ctx context.Context, apiKey string, ids []string) ([]json.RawMessage, error) {
	if len(ids) > MaxBatchSize {
		return nil, fmt.Errorf("%w: got %d", ErrBatchTooLarge, len(ids))
	}

	req, err := c.newRequest(ctx, apiKey, ids)
	if err != nil {
		return nil, err
	}

	log := logger.WithComponent(logger.ComponentDataAPI)
	log.Trace("Requesting videos", map[string]interface{}{
		"endpoint": c.baseURL + videosPath,
		"ids":      len(ids),
	})

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("videos request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := readBody(resp)
	if err != nil {
		return nil, err
	}

	var payload videoListResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode videos response (status %d): %w", resp.StatusCode, err)
	}

	if payload.Error != nil {
		apiErr := payload.Error.toError(resp.StatusCode)
		log.Debug("API returned error", map[string]interface{}{
			"code":    apiErr.Code,
			"reasons": strings.Join(apiErr.Reasons, ","),
		})
		return nil, apiErr
	}

	log.Trace("Videos received", map[string]interface{}{
		"status": resp.StatusCode,
		"items":  len(payload.Items),
	})
	return payload.Items, nil
}

func (c *Client) newRequest(ctx context.Context, apiKey string, ids []string) (*http.Request, error) {
	endpoint, err := url.Parse(c.baseURL + videosPath)
	if err != nil {
		return nil, fmt.Errorf("parse endpoint: %w", err)
	}

	q := endpoint.Query()
	q.Set("part", videoParts)
	q.Set("key", apiKey)
	q.Set("id", strings.Join(ids, ","))
	endpoint.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", headerContentTypeJSON)
	req.Header.Set("Accept-Encoding", acceptEncoding)
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	return req, nil
}
