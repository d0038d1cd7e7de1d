// Package rawg adapts the RAWG video game database API to the normalized
// search model.
package rawg

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

	"mediasearch/pkg/apperr"
	"mediasearch/pkg/clients"
	"mediasearch/pkg/logging"

	"github.com/sirupsen/logrus"
)

const (
	DefaultBaseURL = "https://api.rawg.io/api"

	// PageSize is requested on every listing call and drives total_pages.
	PageSize = 20

	// DefaultTimeout bounds one outbound call end to end.
	DefaultTimeout = 10 * time.Second

	maxErrorBodyBytes = 64 << 10
)

var errTrailingData = errors.New("unexpected data after JSON body")

// APIError reports a non-2xx answer from RAWG. The body is not interpreted.
type APIError struct {
	StatusCode int
}

func (e *APIError) Error() string {
	return fmt.Sprintf("rawg returned status: %d", e.StatusCode)
}

// Client is safe for concurrent use; all fields are fixed after NewClient.
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
	breaker *clients.HTTPCircuitBreaker
	logger  logging.Logger
	now     func() time.Time
}

type Option func(*Client)

// NewClient creates a RAWG client authenticating with apiKey.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		apiKey:  apiKey,
		client:  clients.NewHTTPClient(DefaultTimeout),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = logrus.New()
		c.logger.SetOutput(io.Discard)
	}
	return c
}

// WithBaseURL points the client at a RAWG-compatible mirror or test server.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/"); trimmed != "" {
			c.baseURL = trimmed
		}
	}
}

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.client = httpClient
		}
	}
}

// WithCircuitBreaker routes every call through cb.
func WithCircuitBreaker(cb *clients.HTTPCircuitBreaker) Option {
	return func(c *Client) {
		c.breaker = cb
	}
}

func WithLogger(logger logging.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithClock overrides the time source used for release-date windows.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		if now != nil {
			c.now = now
		}
	}
}

// getJSON issues one GET against path and decodes the body into out. Every
// failure comes back as an apperr ExternalAPI error.
func (c *Client) getJSON(ctx context.Context, operation, path string, params url.Values, out any) error {
	if params == nil {
		params = url.Values{}
	}
	params.Set("key", c.apiKey)
	reqURL := c.baseURL + path + "?" + params.Encode()

	start := time.Now()
	resp, err := c.do(ctx, reqURL)
	if err != nil {
		err = c.redact(err)
		c.logFailure(operation, start, logging.Fields{"error": err.Error()})
		return apperr.Wrap(apperr.KindExternalAPI, err, "rawg %s request failed", operation)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBodyBytes))
		c.logFailure(operation, start, logging.Fields{"status": resp.StatusCode})
		return apperr.Wrap(apperr.KindExternalAPI, &APIError{StatusCode: resp.StatusCode}, "rawg %s", operation)
	}

	if err := decodeSingle(resp.Body, out); err != nil {
		err = c.redact(err)
		c.logFailure(operation, start, logging.Fields{"error": err.Error()})
		return apperr.Wrap(apperr.KindExternalAPI, err, "decode rawg %s response", operation)
	}

	c.logger.WithFields(logging.Fields{
		"operation": operation,
		"latency":   time.Since(start),
	}).Debug("rawg request succeeded")
	return nil
}

// decodeSingle decodes exactly one JSON value from r; anything but whitespace
// after it is an error.
func decodeSingle(r io.Reader, out any) error {
	dec := json.NewDecoder(r)
	if err := dec.Decode(out); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errTrailingData
	}
	return nil
}

func (c *Client) do(ctx context.Context, reqURL string) (*http.Response, error) {
	call := func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")
		return c.client.Do(req)
	}
	if c.breaker == nil {
		return call()
	}
	return c.breaker.Do(ctx, call)
}

func (c *Client) logFailure(operation string, start time.Time, fields logging.Fields) {
	fields["operation"] = operation
	fields["latency"] = time.Since(start)
	c.logger.WithFields(fields).Warn("rawg request failed")
}

// redact strips the API key from errors that embed the request URL.
func (c *Client) redact(err error) error {
	if c.apiKey == "" {
		return err
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		urlErr.URL = strings.ReplaceAll(urlErr.URL, url.QueryEscape(c.apiKey), "REDACTED")
	}
	if strings.Contains(err.Error(), c.apiKey) {
		return errors.New(strings.ReplaceAll(err.Error(), c.apiKey, "REDACTED"))
	}
	return err
}
