// Package trade provides a client for the official trade API: query
// submission, batched listing fetches with bounded concurrency, and
// per-listing validation.
package trade

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/exile-tools/poemarket/internal/metrics"
	domain "github.com/exile-tools/poemarket/pkg/types"
)

const defaultBaseURL = "https://www.pathofexile.com"

// languageHosts maps a language to its localized trade site host. Languages
// without an entry use the default host.
var languageHosts = map[domain.Language]string{
	domain.LanguageGerman:             "https://de.pathofexile.com",
	domain.LanguageFrench:             "https://fr.pathofexile.com",
	domain.LanguageSpanish:            "https://es.pathofexile.com",
	domain.LanguagePortuguese:         "https://br.pathofexile.com",
	domain.LanguageRussian:            "https://ru.pathofexile.com",
	domain.LanguageThai:               "https://th.pathofexile.com",
	domain.LanguageKorean:             "https://poe.game.daum.net",
	domain.LanguageTraditionalChinese: "https://web.poe.garena.tw",
}

// StatusError is a non-2xx response from the trade API.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("trade API error (status %d): %s", e.Code, e.Body)
}

// Client talks to the trade API over HTTP.
type Client struct {
	baseURL     string
	client      *http.Client
	rateLimiter *RateLimiter
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithBaseURL overrides the default trade site base URL. Overriding also
// disables the per-language host table.
func WithBaseURL(u string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(u, "/")
	}
}

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.client = hc
	}
}

// WithRateLimiter injects a rate limiter. When set, every API call goes
// through Wait() first.
func WithRateLimiter(r *RateLimiter) ClientOption {
	return func(c *Client) {
		c.rateLimiter = r
	}
}

// NewClient creates a trade API client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) hostFor(language domain.Language) string {
	if c.baseURL != defaultBaseURL {
		return c.baseURL
	}
	if h, ok := languageHosts[language]; ok {
		return h
	}
	return c.baseURL
}

// SearchURL returns the web address of a submitted search.
func (c *Client) SearchURL(language domain.Language, leagueID, id string) string {
	return c.hostFor(language) + "/trade/search/" +
		url.PathEscape(leagueID) + "/" + url.PathEscape(id)
}

// Search submits a query envelope and returns the matching listing ids.
func (c *Client) Search(
	ctx context.Context,
	language domain.Language,
	leagueID string,
	req *SearchRequest,
) (*SearchResponse, error) {
	u := c.hostFor(language) + "/api/trade/search/" + url.PathEscape(leagueID)

	body, err := c.do(ctx, http.MethodPost, u, req)
	if err != nil {
		return nil, err
	}

	var apiResp SearchResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("parsing search response: %w", err)
	}
	return &apiResp, nil
}

// Fetch retrieves listing details for a batch of result ids against a
// previously submitted search.
func (c *Client) Fetch(
	ctx context.Context,
	ids []string,
	queryID string,
	language domain.Language,
) ([]FetchResult, error) {
	u := c.hostFor(language) + "/api/trade/fetch/" +
		strings.Join(ids, ",") + "?query=" + url.QueryEscape(queryID)

	metrics.BatchFetchesTotal.Inc()

	body, err := c.do(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	var apiResp fetchResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("parsing fetch response: %w", err)
	}
	return apiResp.Result, nil
}

func (c *Client) do(
	ctx context.Context,
	method, u string,
	payload any,
) ([]byte, error) {
	if c.rateLimiter != nil {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			if errors.Is(err, ErrDailyLimitReached) {
				metrics.TradeDailyLimitHits.Inc()
			}
			return nil, fmt.Errorf("rate limit: %w", err)
		}
		metrics.TradeDailyUsage.Set(float64(c.rateLimiter.DailyCount()))
	}
	metrics.TradeAPICallsTotal.Inc()

	var bodyReader io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshaling request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Code: resp.StatusCode, Body: string(body)}
	}

	return body, nil
}
