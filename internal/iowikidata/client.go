// Package iowikidata implements the wikidata.Client contract over the
// live Wikidata endpoints: WDQS for bulk SPARQL queries and the
// MediaWiki action API for login and statement writes.
// This is an impure I/O package.
package iowikidata

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"strconv"
	"strings"
	"time"

	"github.com/sib-swiss/wikidata-orthologs-bot/pkg/config"
	"github.com/sib-swiss/wikidata-orthologs-bot/pkg/wikidata"
)

const (
	defaultTimeout        = 5 * time.Minute
	defaultRetryAttempts  = 5
	defaultRetryBaseDelay = 2 * time.Second
	defaultRetryMaxDelay  = 60 * time.Second
	urlCheckTimeout       = 5 * time.Second

	// Wikimedia endpoints require an identifying User-Agent.
	userAgent = "orthobot/0.1 (https://github.com/sib-swiss/wikidata-orthologs-bot)"

	// maxlag asks the API to refuse writes while replication lag is high;
	// such refusals are transient and retried.
	maxlagSeconds = "5"
)

// Client talks to Wikidata. It is safe for concurrent use after Login:
// the csrf token is only written during Login, workers read it.
type Client struct {
	apiURL     string
	sparqlURL  string
	summary    string
	httpClient *http.Client

	retryMaxAttempts int
	retryBaseDelay   time.Duration
	retryMaxDelay    time.Duration
	sleeper          func(time.Duration)

	csrfToken string
}

var _ wikidata.Client = (*Client)(nil)

// Option customizes the client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithRetryMaxAttempts overrides the retry count.
func WithRetryMaxAttempts(attempts int) Option {
	return func(c *Client) {
		c.retryMaxAttempts = attempts
	}
}

// WithRetryBackoff overrides the retry backoff delays.
func WithRetryBackoff(baseDelay, maxDelay time.Duration) Option {
	return func(c *Client) {
		c.retryBaseDelay = baseDelay
		c.retryMaxDelay = maxDelay
	}
}

// WithSleeper overrides how retry sleeps are performed (useful for tests).
func WithSleeper(sleeper func(time.Duration)) Option {
	return func(c *Client) {
		c.sleeper = sleeper
	}
}

// New constructs a client from configuration. The HTTP client keeps a
// cookie jar: MediaWiki logins are session-cookie based.
func New(cfg *config.Config, opts ...Option) *Client {
	timeout := defaultTimeout
	if cfg.Wikidata.TimeoutSec > 0 {
		timeout = time.Duration(cfg.Wikidata.TimeoutSec) * time.Second
	}
	jar, _ := cookiejar.New(nil)
	c := &Client{
		apiURL:           cfg.Wikidata.APIURL,
		sparqlURL:        cfg.Wikidata.SparqlURL,
		summary:          cfg.Wikidata.EditSummary,
		httpClient:       &http.Client{Timeout: timeout, Jar: jar},
		retryMaxAttempts: defaultRetryAttempts,
		retryBaseDelay:   defaultRetryBaseDelay,
		retryMaxDelay:    defaultRetryMaxDelay,
	}
	if cfg.Wikidata.MaxRetries > 0 {
		c.retryMaxAttempts = cfg.Wikidata.MaxRetries
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// httpStatusError marks responses outside 2xx, keeping the Retry-After
// hint when the server sends one.
type httpStatusError struct {
	StatusCode int
	Body       string
	RetryAfter time.Duration
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("wikidata: http %d: %s",
		e.StatusCode, strings.TrimSpace(e.Body))
}

// apiError is an error payload of the MediaWiki action API.
type apiError struct {
	Code string
	Info string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("wikidata: api error %s: %s", e.Code, e.Info)
}

// transient reports whether an error is worth retrying: network hiccups,
// rate limits, server errors, replication lag.
func transient(err error) bool {
	var statusErr *httpStatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode == http.StatusTooManyRequests ||
			statusErr.StatusCode >= http.StatusInternalServerError
	}
	var apiErr *apiError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case "maxlag", "ratelimited", "readonly":
			return true
		}
		return false
	}
	if errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	// Remaining errors at this point are transport-level.
	return true
}

// withRetry runs call with exponential backoff on transient failures.
func (c *Client) withRetry(ctx context.Context, op string, call func() error) error {
	attempts := c.retryMaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		err := call()
		if err == nil {
			return nil
		}
		lastErr = err

		if attempt == attempts || !transient(err) || ctx.Err() != nil {
			break
		}
		if sleepErr := c.sleep(ctx, c.retryDelay(err, attempt)); sleepErr != nil {
			return sleepErr
		}
	}
	return fmt.Errorf("%s: %w", op, lastErr)
}

func (c *Client) retryDelay(err error, attempt int) time.Duration {
	var statusErr *httpStatusError
	if errors.As(err, &statusErr) && statusErr.RetryAfter > 0 {
		return statusErr.RetryAfter
	}
	delay := c.retryBaseDelay << (attempt - 1)
	if delay > c.retryMaxDelay {
		delay = c.retryMaxDelay
	}
	return delay
}

func (c *Client) sleep(ctx context.Context, d time.Duration) error {
	if c.sleeper != nil {
		c.sleeper(d)
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func parseRetryAfter(val string) time.Duration {
	val = strings.TrimSpace(val)
	if val == "" {
		return 0
	}
	if secs, err := strconv.Atoi(val); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	return 0
}
