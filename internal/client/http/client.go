package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/kinlabs/kin-paymaster/internal/logger"
)

// HTTPError represents an error returned from an HTTP request
type HTTPError struct {
	StatusCode int
	Status     string
	URL        string
	Method     string
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%s %s failed with status %d %s: %s", e.Method, e.URL, e.StatusCode, e.Status, e.Body)
}

// RetryConfig configures the retry behavior
type RetryConfig struct {
	MaxRetries           int
	InitialInterval      time.Duration
	MaxInterval          time.Duration
	Multiplier           float64
	MaxElapsedTime       time.Duration
	RetryableStatusCodes []int
}

// DefaultRetryConfig provides sensible defaults for retries
func DefaultRetryConfig() *RetryConfig {
	return &RetryConfig{
		MaxRetries:           3,
		InitialInterval:      100 * time.Millisecond,
		MaxInterval:          10 * time.Second,
		Multiplier:           2.0,
		MaxElapsedTime:       30 * time.Second,
		RetryableStatusCodes: []int{408, 429, 500, 502, 503, 504},
	}
}

// ClientOption represents a function that can modify the HTTP client
type ClientOption func(*HTTPClient)

// WithTimeout sets the underlying request timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *HTTPClient) {
		c.httpClient.Timeout = timeout
	}
}

// WithRetryConfig overrides the retry behavior
func WithRetryConfig(cfg *RetryConfig) ClientOption {
	return func(c *HTTPClient) {
		c.retryConfig = cfg
	}
}

// WithHeader adds a default header to every request
func WithHeader(key, value string) ClientOption {
	return func(c *HTTPClient) {
		c.defaultHeaders[key] = value
	}
}

// HTTPClient is a JSON-over-HTTP client with exponential-backoff retries,
// used for webhook fact delivery.
type HTTPClient struct {
	httpClient     *http.Client
	defaultHeaders map[string]string
	retryConfig    *RetryConfig
}

// NewHTTPClient creates a new HTTPClient with the given options
func NewHTTPClient(options ...ClientOption) *HTTPClient {
	client := &HTTPClient{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		defaultHeaders: map[string]string{
			"Content-Type": "application/json",
			"Accept":       "application/json",
		},
		retryConfig: DefaultRetryConfig(),
	}
	for _, option := range options {
		option(client)
	}
	return client
}

// PostJSON marshals body as JSON and POSTs it to url, retrying retryable
// status codes and transport errors with exponential backoff.
func (c *HTTPClient) PostJSON(ctx context.Context, url string, body interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request body: %w", err)
	}

	operation := func() error {
		return c.doPost(ctx, url, payload)
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = c.retryConfig.InitialInterval
	policy.MaxInterval = c.retryConfig.MaxInterval
	policy.Multiplier = c.retryConfig.Multiplier
	policy.MaxElapsedTime = c.retryConfig.MaxElapsedTime

	return backoff.Retry(operation, backoff.WithContext(
		backoff.WithMaxRetries(policy, uint64(c.retryConfig.MaxRetries)), ctx))
}

func (c *HTTPClient) doPost(ctx context.Context, url string, payload []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return backoff.Permanent(fmt.Errorf("failed to build request: %w", err))
	}
	for key, value := range c.defaultHeaders {
		req.Header.Set(key, value)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// transport errors are retryable
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	httpErr := &HTTPError{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		URL:        url,
		Method:     http.MethodPost,
		Body:       string(respBody),
	}

	for _, code := range c.retryConfig.RetryableStatusCodes {
		if resp.StatusCode == code {
			logger.Debug("Retrying webhook delivery",
				zap.String("url", url),
				zap.Int("status", resp.StatusCode),
			)
			return httpErr
		}
	}
	return backoff.Permanent(httpErr)
}
