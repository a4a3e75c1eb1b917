// Package ninja provides a poe.ninja item overview API client with a
// classify-recover-retry policy for its flaky, cookie-guarded endpoints.
package ninja

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/exile-tools/poemarket/internal/metrics"
	"github.com/exile-tools/poemarket/pkg/logger"
)

const (
	defaultBaseURL    = "https://poe.ninja"
	defaultAttempts   = 3
	defaultRetryDelay = 100 * time.Millisecond
	overviewPath      = "/api/data/itemoverview"
)

// ErrEmptyOverview is returned when the API answers successfully but carries
// no price lines. An empty overview is never a usable result.
var ErrEmptyOverview = errors.New("overview response contained no lines")

// StatusError is a non-2xx response from the overview API.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("ninja API error (status %d): %s", e.Code, e.Body)
}

// CookieRefresher re-establishes the credential/cookie state the overview API
// expects. Invoked when a request comes back forbidden.
type CookieRefresher interface {
	Refresh(ctx context.Context, url string) error
}

// SessionStore holds session continuity state that can be reset between
// retries.
type SessionStore interface {
	Clear(ctx context.Context) error
}

// Client fetches item overviews. It retries failed requests up to a fixed
// attempt budget, running a recovery action between attempts: a 403 triggers
// a cookie refresh, everything else clears the session and waits out a short
// delay.
type Client struct {
	baseURL  string
	language string
	client   *http.Client
	cookies  CookieRefresher
	session  SessionStore
	logger   *slog.Logger

	attempts int
	delay    time.Duration
	sleep    func(ctx context.Context, d time.Duration) error
}

// Option configures the Client.
type Option func(*Client)

// WithBaseURL overrides the default overview site base URL.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = u
	}
}

// WithLanguage overrides the language query parameter (default "en").
func WithLanguage(lang string) Option {
	return func(c *Client) {
		c.language = lang
	}
}

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.client = hc
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// WithRetryPolicy overrides the attempt budget and the inter-retry delay.
func WithRetryPolicy(attempts int, delay time.Duration) Option {
	return func(c *Client) {
		c.attempts = attempts
		c.delay = delay
	}
}

// WithSleepFunc overrides the delay function for testing.
func WithSleepFunc(f func(ctx context.Context, d time.Duration) error) Option {
	return func(c *Client) {
		c.sleep = f
	}
}

// NewClient creates an item overview client. The cookie refresher and session
// store are the two recovery actions run between retries.
func NewClient(cookies CookieRefresher, session SessionStore, opts ...Option) *Client {
	c := &Client{
		baseURL:  defaultBaseURL,
		language: "en",
		client:   &http.Client{Timeout: 30 * time.Second},
		cookies:  cookies,
		session:  session,
		logger:   logger.NewNop(),
		attempts: defaultAttempts,
		delay:    defaultRetryDelay,
		sleep:    sleepContext,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type overviewResponse struct {
	Lines []OverviewLine `json:"lines"`
}

// Get fetches the item overview for a league and category. It never returns
// an overview with zero lines; after the attempt budget is spent the last
// error is surfaced.
func (c *Client) Get(
	ctx context.Context,
	leagueID string,
	typ ItemOverviewType,
) (*Overview, error) {
	var lastErr error

	for attempt := 1; attempt <= c.attempts; attempt++ {
		if attempt > 1 {
			if err := c.recover(ctx, lastErr); err != nil {
				return nil, err
			}
		}

		metrics.OverviewFetchesTotal.Inc()

		ov, err := c.get(ctx, leagueID, typ)
		if err == nil {
			return ov, nil
		}
		lastErr = err

		c.logger.Warn("overview fetch failed",
			"league", leagueID,
			"type", typ,
			"attempt", attempt,
			"err", err,
		)
	}

	metrics.OverviewFailuresTotal.Inc()
	return nil, fmt.Errorf(
		"fetching %s overview for league %q after %d attempts: %w",
		typ, leagueID, c.attempts, lastErr,
	)
}

// recover runs the recovery action matching the previous failure. A failed
// recovery action never aborts the retry; the next attempt proceeds either way.
func (c *Client) recover(ctx context.Context, cause error) error {
	var se *StatusError
	if errors.As(cause, &se) && se.Code == http.StatusForbidden {
		metrics.OverviewRecoveriesTotal.WithLabelValues("refresh_cookie").Inc()
		if err := c.cookies.Refresh(ctx, c.baseURL+overviewPath); err != nil {
			c.logger.Debug("cookie refresh failed", "err", err)
		}
		return nil
	}

	metrics.OverviewRecoveriesTotal.WithLabelValues("clear_session").Inc()
	if err := c.session.Clear(ctx); err != nil {
		c.logger.Debug("session clear failed", "err", err)
	}
	return c.sleep(ctx, c.delay)
}

func (c *Client) get(
	ctx context.Context,
	leagueID string,
	typ ItemOverviewType,
) (*Overview, error) {
	params := url.Values{}
	params.Set("league", leagueID)
	params.Set("type", string(typ))
	params.Set("language", c.language)

	u := c.baseURL + overviewPath + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating overview request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing overview request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading overview response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Code: resp.StatusCode, Body: string(body)}
	}

	var apiResp overviewResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("parsing overview response: %w", err)
	}

	if len(apiResp.Lines) == 0 {
		return nil, fmt.Errorf(
			"league %q type %s: %w", leagueID, typ, ErrEmptyOverview,
		)
	}

	return &Overview{
		Lines: apiResp.Lines,
		URL:   c.baseURL + "/challenge/" + typ.PathSegment(),
	}, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
