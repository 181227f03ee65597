// Package opgg scrapes past-season ranks from op.gg summoner pages.
package opgg

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/okian/teambalancer/internal/adapters/source"
)

// Config controls how the client reaches op.gg.
type Config struct {
	BaseURL    string
	UserAgent  string
	HTTPClient *http.Client
}

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client fetches summoner pages and extracts season ranks.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient httpDoer
}

// NewClient constructs an op.gg client with the provided configuration.
func NewClient(cfg Config) *Client {
	c := &Client{
		baseURL:   strings.TrimSuffix(cfg.BaseURL, "/"),
		userAgent: cfg.UserAgent,
	}
	if c.baseURL == "" {
		c.baseURL = defaultBaseURL
	}
	if c.userAgent == "" {
		c.userAgent = defaultUserAgent
	}
	if cfg.HTTPClient != nil {
		c.httpClient = cfg.HTTPClient
	} else {
		c.httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return c
}

// FetchHistory implements source.Source.
func (c *Client) FetchHistory(ctx context.Context, name string) ([]string, error) {
	endpoint := c.baseURL + "/summoner/userName=" + url.PathEscape(name)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", source.ErrFetch, err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", source.ErrFetch, name, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
		return nil, fmt.Errorf("%w: %s: status %d: %s", source.ErrUpstreamStatus, name, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	seasons, err := extractSeasons(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", source.ErrFetch, name, err)
	}
	return seasons, nil
}
