package adslibrary

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"adscribe/internal/config"
)

// HTTPDoer describes the HTTP client used by the ads library service.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client fetches rendered ads library pages.
type Client struct {
	baseURL   string
	country   string
	userAgent string
	client    HTTPDoer
}

// NewClient constructs a client from config using a timeout-bound HTTP client.
func NewClient(cfg *config.Config) *Client {
	timeout := time.Duration(cfg.AdsLibrary.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return NewClientWithHTTP(cfg, &http.Client{Timeout: timeout})
}

// NewClientWithHTTP allows injecting the HTTP transport (used in tests).
func NewClientWithHTTP(cfg *config.Config, doer HTTPDoer) *Client {
	country := strings.TrimSpace(cfg.AdsLibrary.Country)
	if country == "" {
		country = "ALL"
	}
	return &Client{
		baseURL:   strings.TrimRight(strings.TrimSpace(cfg.AdsLibrary.BaseURL), "/"),
		country:   country,
		userAgent: strings.TrimSpace(cfg.AdsLibrary.UserAgent),
		client:    doer,
	}
}

// ResolvePageID turns a parsed page reference into a numeric page ID,
// searching the library by keyword when only a name is known.
func (c *Client) ResolvePageID(ctx context.Context, ref PageRef) (string, error) {
	if ref.PageID != "" {
		return ref.PageID, nil
	}
	if ref.SearchName == "" {
		return "", fmt.Errorf("page reference carries neither id nor name")
	}

	query := url.Values{}
	query.Set("active_status", "all")
	query.Set("ad_type", "all")
	query.Set("country", c.country)
	query.Set("q", ref.SearchName)
	query.Set("search_type", "keyword_unordered")

	html, err := c.fetch(ctx, c.baseURL+"/?"+query.Encode())
	if err != nil {
		return "", fmt.Errorf("search library for %q: %w", ref.SearchName, err)
	}

	if id := ExtractPageID(html); id != "" {
		return id, nil
	}
	return "", fmt.Errorf("no page found for %q", ref.SearchName)
}

// FetchVideoAdsPage retrieves the library page listing a page's video ads.
func (c *Client) FetchVideoAdsPage(ctx context.Context, pageID string) (string, error) {
	query := url.Values{}
	query.Set("active_status", "all")
	query.Set("ad_type", "all")
	query.Set("country", c.country)
	query.Set("view_all_page_id", pageID)
	query.Set("media_type", "video")

	html, err := c.fetch(ctx, c.baseURL+"/?"+query.Encode())
	if err != nil {
		return "", fmt.Errorf("fetch ads for page %s: %w", pageID, err)
	}
	return html, nil
}

func (c *Client) fetch(ctx context.Context, target string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", err
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 32<<20))
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	return string(body), nil
}
