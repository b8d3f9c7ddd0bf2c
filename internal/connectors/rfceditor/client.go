package rfceditor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"

	"github.com/custodia-labs/rfcdocs/internal/core/domain"
	"github.com/custodia-labs/rfcdocs/internal/core/ports/driven"
	"github.com/custodia-labs/rfcdocs/internal/logger"
)

const (
	// RetryDelay is the initial delay between retries.
	RetryDelay = time.Second

	// MaxBodyBytes caps a single response; rfc-index.txt is about 15 MB.
	MaxBodyBytes = 64 << 20

	// UserAgent identifies the client to rfc-editor.org.
	UserAgent = "rfcdocs/0.1 (+https://github.com/custodia-labs/rfcdocs)"
)

// Ensure Client implements the interface.
var _ driven.RemoteSource = (*Client)(nil)

// Client downloads RFC data over HTTP.
type Client struct {
	cfg         Config
	http        *http.Client
	rateLimiter *RateLimiter
	retryDelay  time.Duration
	maxBody     int64
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. The client is copied
// and the copy gets the configured timeout; hc itself is left untouched.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithRetryDelay sets the initial backoff between attempts.
func WithRetryDelay(d time.Duration) Option {
	return func(c *Client) {
		c.retryDelay = d
	}
}

// WithMaxBodyBytes caps the size of a single response body.
func WithMaxBodyBytes(n int64) Option {
	return func(c *Client) {
		c.maxBody = n
	}
}

// NewClient creates a new RFC Editor client.
func NewClient(cfg Config, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Client{
		cfg:         cfg,
		http:        &http.Client{},
		rateLimiter: NewRateLimiter(cfg.RequestsPerSecond),
		retryDelay:  RetryDelay,
		maxBody:     MaxBodyBytes,
	}
	for _, opt := range opts {
		opt(c)
	}

	hc := *c.http
	hc.Timeout = cfg.Timeout
	c.http = &hc

	return c, nil
}

// IndexLocator returns the index URL.
func (c *Client) IndexLocator() string {
	return c.cfg.IndexURL
}

// FetchIndex downloads rfc-index.txt.
func (c *Client) FetchIndex(ctx context.Context) ([]byte, error) {
	return c.get(ctx, c.cfg.IndexURL)
}

// FetchDocument downloads the text of RFC number.
func (c *Client) FetchDocument(ctx context.Context, number int) ([]byte, error) {
	if number <= 0 {
		return nil, fmt.Errorf("%w: rfc number must be positive, got %d", domain.ErrInvalidArgument, number)
	}
	return c.get(ctx, c.cfg.DocumentLocator(number))
}

// get performs a GET with throttling and retries of transient failures.
func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	body, err := retry.DoWithData(
		func() ([]byte, error) {
			return c.do(ctx, url)
		},
		retry.Context(ctx),
		retry.Attempts(uint(c.cfg.Retries)),
		retry.Delay(c.retryDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			return ctx.Err() == nil && isTransient(err)
		}),
		retry.OnRetry(func(n uint, err error) {
			logger.Debug("retrying %s (attempt %d): %v", url, n+1, err)
		}),
	)
	if err != nil {
		return nil, c.wrapError(err, url)
	}
	return body, nil
}

func (c *Client) do(ctx context.Context, url string) ([]byte, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", "text/plain")

	logger.Debug("GET %s", url)
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	c.rateLimiter.Observe(resp)
	if until := c.rateLimiter.PauseUntil(); resp.StatusCode != http.StatusOK && until.After(time.Now()) {
		logger.Warn("rfc-editor.org asked to back off: HTTP %d, pausing requests until %s",
			resp.StatusCode, until.Format(time.RFC3339))
	}

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		msg := strings.TrimSpace(string(snippet))
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return nil, &APIError{StatusCode: resp.StatusCode, Message: msg, URL: url}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		return nil, fmt.Errorf("reading body: %w", err)
	}
	if int64(len(body)) > c.maxBody {
		return nil, fmt.Errorf("%w: more than %d bytes from %s", ErrBodyTooLarge, c.maxBody, url)
	}
	if len(body) == 0 {
		return nil, ErrEmptyBody
	}
	return body, nil
}

// wrapError makes sure every failure carries a domain kind.
func (c *Client) wrapError(err error, url string) error {
	if IsNotFound(err) {
		logger.Debug("GET %s: not found", url)
		return fmt.Errorf("GET %s: %w", url, err)
	}
	if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrFetchFailure) {
		return fmt.Errorf("GET %s: %w", url, err)
	}
	return fmt.Errorf("%w: GET %s: %v", domain.ErrFetchFailure, url, err)
}

// isTransient reports whether err is worth another attempt.
func isTransient(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Temporary()
	}
	if errors.Is(err, ErrBodyTooLarge) {
		return false
	}
	return !errors.Is(err, context.Canceled)
}
