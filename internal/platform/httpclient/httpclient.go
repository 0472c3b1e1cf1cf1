// Package httpclient provides an HTTP client with retry, rate limiting, and timeout support.
package httpclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"reconforge/internal/platform/errors"
	"reconforge/internal/platform/logx"
)

// Client is an HTTP client with retry logic, rate limiting, and timeout support.
type Client struct {
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	logger      logx.Logger
	config      Config
}

// Config holds the configuration for the HTTP client.
type Config struct {
	// Timeout is the per-request timeout.
	// Default: 30 seconds
	Timeout time.Duration

	// MaxRetries is the maximum number of retry attempts for Request.
	// Probe never retries.
	MaxRetries int

	// RetryBackoff is the initial backoff, doubled on each retry.
	// Default: 1 second
	RetryBackoff time.Duration

	// MaxRetryBackoff caps the backoff between retries.
	// Default: 30 seconds
	MaxRetryBackoff time.Duration

	// MaxRedirects is how many redirects are followed before giving up.
	// Default: 10
	MaxRedirects int

	// UserAgent is the User-Agent header value.
	// Default: "reconforge/1.0"
	UserAgent string

	// RateLimit is the maximum requests per second. 0 disables limiting.
	RateLimit float64

	// RateLimitBurst is the burst size for rate limiting.
	// Default: 1
	RateLimitBurst int
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Timeout:         30 * time.Second,
		MaxRetries:      3,
		RetryBackoff:    1 * time.Second,
		MaxRetryBackoff: 30 * time.Second,
		MaxRedirects:    10,
		UserAgent:       "reconforge/1.0",
		RateLimitBurst:  1,
	}
}

// ProbeConfig is the configuration used for reachability probes:
// a single 5 second attempt with redirects followed.
func ProbeConfig() Config {
	cfg := DefaultConfig()
	cfg.Timeout = 5 * time.Second
	cfg.MaxRetries = 0
	return cfg
}

// New creates a new HTTP client with the given configuration.
func New(config Config, logger logx.Logger) *Client {
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}
	if config.RetryBackoff == 0 {
		config.RetryBackoff = 1 * time.Second
	}
	if config.MaxRetryBackoff == 0 {
		config.MaxRetryBackoff = 30 * time.Second
	}
	if config.MaxRedirects == 0 {
		config.MaxRedirects = 10
	}
	if config.UserAgent == "" {
		config.UserAgent = "reconforge/1.0"
	}
	if config.RateLimitBurst == 0 {
		config.RateLimitBurst = 1
	}
	if logger == nil {
		logger = logx.NewNop()
	}

	maxRedirects := config.MaxRedirects
	httpClient := &http.Client{
		Timeout: config.Timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return fmt.Errorf("stopped after %d redirects", maxRedirects)
			}
			return nil
		},
	}

	var rateLimiter *rate.Limiter
	if config.RateLimit > 0 {
		rateLimiter = rate.NewLimiter(rate.Limit(config.RateLimit), config.RateLimitBurst)
	}

	return &Client{
		httpClient:  httpClient,
		rateLimiter: rateLimiter,
		logger:      logger.With("component", "httpclient"),
		config:      config,
	}
}

// Request performs an HTTP request with retry logic and rate limiting.
// body is buffered so it can be replayed on retries.
func (c *Client) Request(ctx context.Context, method, url string, body []byte, headers map[string]string) (*http.Response, error) {
	var lastErr error

	for attempt := 0; attempt <= c.config.MaxRetries; attempt++ {
		resp, err := c.do(ctx, method, url, body, headers)
		if err != nil {
			if ctx.Err() != nil {
				return nil, errors.Wrapf(ctx.Err(), "%s %s", method, url)
			}
			c.logger.Warn("HTTP request failed",
				"method", method,
				"url", url,
				"attempt", attempt+1,
				"error", err.Error(),
			)
			lastErr = errors.Wrap(errors.ErrConnectionFailed, err.Error())
		} else if !isRetryableStatus(resp.StatusCode) {
			return resp, nil
		} else {
			resp.Body.Close()
			lastErr = errors.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
			c.logger.Warn("HTTP request returned retryable status",
				"method", method,
				"url", url,
				"status", resp.StatusCode,
				"attempt", attempt+1,
			)
		}

		if attempt >= c.config.MaxRetries {
			break
		}
		if err := c.backoff(ctx, attempt); err != nil {
			return nil, errors.Wrap(err, "backoff interrupted")
		}
	}

	return nil, errors.Wrapf(lastErr, "request failed after %d attempts", c.config.MaxRetries+1)
}

func (c *Client) do(ctx context.Context, method, url string, body []byte, headers map[string]string) (*http.Response, error) {
	if c.rateLimiter != nil {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, errors.Wrap(err, "rate limit wait failed")
		}
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "build request %s %s: %v", method, url, err)
	}

	req.Header.Set("User-Agent", c.config.UserAgent)
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("HTTP response received",
		"method", method,
		"url", url,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return resp, nil
}

// Probe performs a single GET and returns the final status code after redirects.
// Any transport failure is reported as ErrConnectionFailed.
func (c *Client) Probe(ctx context.Context, url string) (int, error) {
	resp, err := c.do(ctx, http.MethodGet, url, nil, nil)
	if err != nil {
		c.logger.Debug("probe failed", "url", url, "error", err.Error())
		return 0, errors.Wrap(errors.ErrConnectionFailed, err.Error())
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
	return resp.StatusCode, nil
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, url string, headers map[string]string) (*http.Response, error) {
	return c.Request(ctx, http.MethodGet, url, nil, headers)
}

// Post performs a POST request.
func (c *Client) Post(ctx context.Context, url string, body []byte, headers map[string]string) (*http.Response, error) {
	return c.Request(ctx, http.MethodPost, url, body, headers)
}

// PostJSON is a convenience method for POST requests with a JSON body.
func (c *Client) PostJSON(ctx context.Context, url string, body []byte, headers map[string]string) (*http.Response, error) {
	h := map[string]string{
		"Content-Type": "application/json",
		"Accept":       "application/json",
	}
	for k, v := range headers {
		h[k] = v
	}
	return c.Post(ctx, url, body, h)
}

// isRetryableStatus checks if an HTTP status code should trigger a retry.
func isRetryableStatus(code int) bool {
	switch code {
	case http.StatusTooManyRequests,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}

// backoff implements exponential backoff.
func (c *Client) backoff(ctx context.Context, attempt int) error {
	backoff := c.config.RetryBackoff * time.Duration(math.Pow(2, float64(attempt)))
	if backoff > c.config.MaxRetryBackoff {
		backoff = c.config.MaxRetryBackoff
	}

	c.logger.Debug("backing off before retry",
		"attempt", attempt+1,
		"backoff_ms", backoff.Milliseconds(),
	)

	timer := time.NewTimer(backoff)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// ReadBody reads the response body and closes it.
func ReadBody(resp *http.Response) ([]byte, error) {
	if resp == nil {
		return nil, errors.New("response is nil")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read response body")
	}
	return body, nil
}

// CheckStatus maps a non-2xx status to a sentinel error.
func CheckStatus(resp *http.Response) error {
	if resp == nil {
		return errors.New("response is nil")
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return errors.Wrapf(errors.ErrDependencyUnavailable, "HTTP %d: credentials rejected", resp.StatusCode)
	case http.StatusTooManyRequests, http.StatusServiceUnavailable, http.StatusGatewayTimeout, http.StatusBadGateway:
		return errors.Wrapf(errors.ErrDependencyUnavailable, "HTTP %d: service unavailable", resp.StatusCode)
	default:
		return errors.Wrapf(errors.ErrInvalidResponse, "HTTP %d", resp.StatusCode)
	}
}

// String returns a human-readable representation of the client configuration.
func (c *Client) String() string {
	return fmt.Sprintf("HTTPClient{timeout=%s, max_retries=%d, rate_limit=%.1f/s}",
		c.config.Timeout,
		c.config.MaxRetries,
		c.config.RateLimit,
	)
}
