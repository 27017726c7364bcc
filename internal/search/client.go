package search

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/fulmenhq/gofulmen/logging"
	"go.uber.org/zap"
)

const (
	// DefaultBaseURL is the public OpenAlex API.
	DefaultBaseURL = "https://api.openalex.org"
	// DefaultTimeout bounds a single upstream call.
	DefaultTimeout = 10 * time.Second

	maxResponseBytes    = 8 << 20
	maxErrorBodyLogged  = 4096
	maxErrorBodyDrained = 64 << 10
)

// Searcher runs a single upstream title search.
type Searcher interface {
	Search(ctx context.Context, title string) ([]Result, error)
}

// ClientOptions configures NewClient.
type ClientOptions struct {
	BaseURL   string
	Timeout   time.Duration
	Mailto    string
	UserAgent string
	Logger    *logging.Logger
}

// Client issues works queries against OpenAlex. It is safe for concurrent
// use; the underlying http.Client pools connections across requests.
type Client struct {
	HTTPClient *http.Client
	BaseURL    *url.URL
	// Mailto is sent as the mailto parameter for polite pool access.
	Mailto    string
	UserAgent string
	Logger    *logging.Logger
}

// NewClient builds a Client from opts, applying defaults for empty fields.
func NewClient(opts ClientOptions) (*Client, error) {
	raw := opts.BaseURL
	if raw == "" {
		raw = DefaultBaseURL
	}
	base, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, errors.New("upstream base URL must be absolute")
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		HTTPClient: &http.Client{Timeout: timeout},
		BaseURL:    base,
		Mailto:     opts.Mailto,
		UserAgent:  opts.UserAgent,
		Logger:     opts.Logger,
	}, nil
}

// Search performs one GET against the works endpoint and classifies the
// outcome. Failures are always *Error.
func (c *Client) Search(ctx context.Context, title string) ([]Result, error) {
	if c == nil || c.BaseURL == nil {
		return nil, errors.New("search client is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	target := c.queryURL(title)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil, transportError(err)
	}
	req.Header.Set("Accept", "application/json")
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	c.debug("Sending upstream search request", zap.String("url", target.String()))

	resp, err := c.client().Do(req)
	if err != nil {
		return nil, transportError(err)
	}
	defer resp.Body.Close() // nolint:errcheck // best-effort cleanup on HTTP response body

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyLogged))
		// Drain so the connection can return to the pool.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBodyDrained))
		c.debug("Upstream returned non-success status",
			zap.String("url", target.String()),
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", snippet))
		return nil, upstreamStatusError(resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, transportError(err)
	}

	results, skipped, err := decodeResults(body)
	if err != nil {
		return nil, decodeError(err)
	}
	if skipped > 0 && c.Logger != nil {
		c.Logger.Warn("Skipped malformed upstream records",
			zap.Int("skipped", skipped),
			zap.Int("kept", len(results)))
	}

	return results, nil
}

// CheckHealth reports whether the client can build upstream requests. It
// does not contact the upstream.
func (c *Client) CheckHealth(_ context.Context) error {
	if c == nil || c.BaseURL == nil || c.BaseURL.Host == "" {
		return errors.New("search client is not configured")
	}
	return nil
}

func (c *Client) queryURL(title string) *url.URL {
	target := BuildQuery(c.BaseURL, title)
	if c.Mailto != "" {
		params := target.Query()
		params.Set("mailto", c.Mailto)
		target.RawQuery = params.Encode()
	}
	return target
}

func (c *Client) client() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return &http.Client{Timeout: DefaultTimeout}
}

func (c *Client) debug(msg string, fields ...zap.Field) {
	if c.Logger != nil {
		c.Logger.Debug(msg, fields...)
	}
}
