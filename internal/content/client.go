package content

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultAPIBase = "https://alkitab.sabda.org/api"
	DefaultTimeout = 30 * time.Second

	maxBody = 4 << 20
)

// Source fetches the raw document of one chapter, addressed by catalog
// ordinal.
type Source interface {
	FetchChapter(ctx context.Context, ordinal, chapter int) ([]byte, error)
}

// Client is the alkitab API client.
type Client struct {
	apiBase string
	version string
	http    *http.Client
}

// New creates a Client. If apiBase is empty, the public alkitab API is
// used. version selects a translation on the server; empty uses its default.
func New(apiBase, version string, timeout time.Duration) *Client {
	if apiBase == "" {
		apiBase = DefaultAPIBase
	}
	// Strip trailing slash for consistent URL building.
	apiBase = strings.TrimRight(apiBase, "/")
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		apiBase: apiBase,
		version: version,
		http:    &http.Client{Timeout: timeout},
	}
}

// FetchChapter implements Source.
func (c *Client) FetchChapter(ctx context.Context, ordinal, chapter int) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.chapterURL(ordinal, chapter), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()
	if err := checkStatus(resp); err != nil {
		return nil, err
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	return data, nil
}

// do executes the request with standard headers.
func (c *Client) do(req *http.Request) (*http.Response, error) {
	req.Header.Set("Accept", "application/xml, text/xml")
	req.Header.Set("User-Agent", "brpctl")
	return c.http.Do(req)
}

func (c *Client) chapterURL(ordinal, chapter int) string {
	q := url.Values{}
	q.Set("book", strconv.Itoa(ordinal))
	q.Set("chapter", strconv.Itoa(chapter))
	if c.version != "" {
		q.Set("ver", c.version)
	}
	return c.apiBase + "/chapter.php?" + q.Encode()
}

// checkStatus returns a typed error for non-2xx responses.
func checkStatus(resp *http.Response) error {
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode == http.StatusTooManyRequests:
		return ErrRateLimited
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("alkitab API error %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
}
