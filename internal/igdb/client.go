package igdb

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/gamedex/internal/shared"
	"golang.org/x/time/rate"
)

// DefaultBaseURL is the IGDB v4 API root.
const DefaultBaseURL = "https://api.igdb.com/v4"

// DefaultRateLimit matches the IGDB free tier (4 requests per second).
const DefaultRateLimit = 4.0

// rateLimitAttempts bounds the synchronous 429 retry loop.
const rateLimitAttempts = 3

// Client executes Apicalypse queries against IGDB resource endpoints.
// It transports queries without interpreting them; query strings are
// composed by [Catalog].
//
// Failure classification, branchable with errors.Is:
//   - network errors and 5xx  -> shared.ErrRemoteUnavailable
//   - 429                     -> shared.ErrRateLimited (after bounded backoff)
//   - 401 after one refresh   -> shared.ErrAuthFailed
//   - any other 4xx           -> shared.ErrMalformedQuery
type Client struct {
	baseURL     string
	clientID    string
	tokens      *TokenSource
	httpClient  *http.Client
	limiter     *rate.Limiter
	logger      *log.Logger
	backoffBase time.Duration
}

// ClientOpts contains optional configuration for creating a Client.
type ClientOpts struct {
	BaseURL     string        // default: DefaultBaseURL
	HTTPClient  *http.Client  // default: 15s timeout client
	Limiter     *rate.Limiter // default: DefaultRateLimit req/s
	Logger      *log.Logger
	BackoffBase time.Duration // initial 429 backoff, default 250ms
}

// NewClient creates an IGDB client using the given token source.
func NewClient(clientID string, tokens *TokenSource, opts ClientOpts) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: 15 * time.Second}
	}
	if opts.Limiter == nil {
		opts.Limiter = rate.NewLimiter(rate.Limit(DefaultRateLimit), 1)
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.BackoffBase <= 0 {
		opts.BackoffBase = 250 * time.Millisecond
	}

	return &Client{
		baseURL:     opts.BaseURL,
		clientID:    clientID,
		tokens:      tokens,
		httpClient:  opts.HTTPClient,
		limiter:     opts.Limiter,
		logger:      opts.Logger,
		backoffBase: opts.BackoffBase,
	}
}

// Execute posts the query to the named resource endpoint and returns
// the raw JSON response body.
//
// A 401 forces exactly one token refresh and one retry, covering a
// token revoked between cache read and send. A 429 is retried with
// jittered exponential backoff up to the attempt ceiling; the loop is
// synchronous and scoped to this call.
func (c *Client) Execute(ctx context.Context, resource, query string) ([]byte, error) {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", resource, err)
	}

	refreshed := false
	rateAttempts := 0

	for {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%s: %w", resource, err)
		}

		body, status, err := c.send(ctx, resource, query, token)
		if err != nil {
			return nil, fmt.Errorf("%s: %w: %v", resource, shared.ErrRemoteUnavailable, err)
		}

		switch {
		case status >= 200 && status < 300:
			return body, nil

		case status == http.StatusUnauthorized:
			if refreshed {
				return nil, fmt.Errorf("%s: %w: token rejected after refresh", resource, shared.ErrAuthFailed)
			}
			refreshed = true
			c.logger.Debug("token rejected, forcing refresh", "resource", resource)
			if token, err = c.tokens.ForceRefresh(ctx); err != nil {
				return nil, fmt.Errorf("%s: %w", resource, err)
			}

		case status == http.StatusTooManyRequests:
			rateAttempts++
			if rateAttempts >= rateLimitAttempts {
				return nil, fmt.Errorf("%s: %w after %d attempts", resource, shared.ErrRateLimited, rateAttempts)
			}
			if err := c.backoff(ctx, rateAttempts); err != nil {
				return nil, fmt.Errorf("%s: %w", resource, err)
			}

		case status >= 500:
			return nil, fmt.Errorf("%s: %w: status %d: %s", resource, shared.ErrRemoteUnavailable, status, truncate(body))

		default:
			return nil, fmt.Errorf("%s: %w: status %d: %s", resource, shared.ErrMalformedQuery, status, truncate(body))
		}
	}
}

// send performs a single authenticated request.
func (c *Client) send(ctx context.Context, resource, query, token string) ([]byte, int, error) {
	url := c.baseURL + "/" + resource

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(query))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Client-ID", c.clientID)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "text/plain")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read response: %w", err)
	}

	return body, resp.StatusCode, nil
}

// backoff sleeps for an exponentially growing interval with jitter, or
// returns early if the context is cancelled.
func (c *Client) backoff(ctx context.Context, attempt int) error {
	d := c.backoffBase << (attempt - 1)
	d += time.Duration(rand.Int64N(int64(d)/2 + 1))

	c.logger.Debug("rate limited, backing off", "attempt", attempt, "delay", d)

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// truncate trims a response body for inclusion in an error message.
func truncate(body []byte) string {
	const max = 256
	s := strings.TrimSpace(string(body))
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}
