// Package client builds the HTTP client used to reach the Data API.
package client

import (
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/ytget/qualitube/internal/logger"
)

const (
	defaultTimeout = 30 * time.Second

	userAgentValue = "qualitube/1.0 (+https://github.com/ytget/qualitube)"
)

// defaultTransport is a tuned HTTP transport reused across clients.
var defaultTransport = &http.Transport{
	Proxy:                 http.ProxyFromEnvironment,
	MaxIdleConns:          100,
	MaxIdleConnsPerHost:   10,
	IdleConnTimeout:       90 * time.Second,
	TLSHandshakeTimeout:   10 * time.Second,
	ExpectContinueTimeout: 1 * time.Second,
	ResponseHeaderTimeout: 10 * time.Second,
	ForceAttemptHTTP2:     true,
	// Bodies are decoded by the caller so brotli can be negotiated too.
	DisableCompression: true,
	ReadBufferSize:     16 * 1024,
	WriteBufferSize:    16 * 1024,
	DialContext: (&net.Dialer{
		Timeout:   30 * time.Second,
		KeepAlive: 30 * time.Second,
	}).DialContext,
}

// Config holds optional client parameters. Zero values use defaults.
type Config struct {
	Timeout   time.Duration
	UserAgent string
	ProxyURL  string
}

// Client wraps http.Client with default headers. It never retries.
type Client struct {
	HTTPClient *http.Client
	UserAgent  string
}

// New creates a new Client with a tuned Transport and default timeout.
func New() *Client {
	return &Client{
		HTTPClient: &http.Client{
			Timeout:   defaultTimeout,
			Transport: defaultTransport,
		},
		UserAgent: userAgentValue,
	}
}

// NewWith creates a new client with provided config. Zero values use defaults.
// An unparsable ProxyURL is ignored and the environment proxy is used.
func NewWith(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	ua := cfg.UserAgent
	if ua == "" {
		ua = userAgentValue
	}

	tr := defaultTransport.Clone()
	if cfg.ProxyURL != "" {
		if proxyFunc, err := proxyFromURLString(cfg.ProxyURL); err == nil {
			tr.Proxy = proxyFunc
		} else {
			logger.WithComponent(logger.ComponentClient).Warn("Ignoring invalid proxy URL", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	return &Client{
		HTTPClient: &http.Client{
			Timeout:   timeout,
			Transport: tr,
		},
		UserAgent: ua,
	}
}

// Do sends req once, filling in the User-Agent header when the request has
// none. Non-2xx responses are returned as-is; callers inspect the body.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") == "" {
		ua := c.UserAgent
		if ua == "" {
			ua = userAgentValue
		}
		req.Header.Set("User-Agent", ua)
	}

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	log := logger.WithComponent(logger.ComponentClient)
	start := time.Now()
	resp, err := httpClient.Do(req)
	if err != nil {
		log.Debug("Request failed", map[string]interface{}{
			"path":  req.URL.Path,
			"error": err.Error(),
		})
		return nil, err
	}
	log.Trace("Request done", map[string]interface{}{
		"method":   req.Method,
		"path":     req.URL.Path,
		"status":   resp.StatusCode,
		"duration": time.Since(start).String(),
	})
	return resp, nil
}

// proxyFromURLString parses a proxy URL and returns a Proxy function.
func proxyFromURLString(raw string) (func(*http.Request) (*url.URL, error), error) {
	u, err := url.ParseRequestURI(raw)
	if err != nil {
		return nil, err
	}
	return http.ProxyURL(u), nil
}
