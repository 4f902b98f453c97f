package bet9ja

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultBaseURL  = "https://web.bet9ja.com"
	defaultOddsPath = "/Sport/OddsPrint.ashx"
)

// Client loads the printable odds page over plain HTTP. The print endpoint is
// server-rendered, so no browser is needed for it.
type Client struct {
	baseURL    string
	oddsPath   string
	userAgent  string
	httpClient *http.Client
}

func NewClient(baseURL, oddsPath, userAgent string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if oddsPath == "" {
		oddsPath = defaultOddsPath
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		oddsPath:   oddsPath,
		userAgent:  userAgent,
		httpClient: &http.Client{Timeout: timeout, Transport: transport},
	}
}

// GetOddsPage fetches the odds page and returns its HTML.
func (c *Client) GetOddsPage(ctx context.Context) ([]byte, error) {
	rawURL := c.baseURL + c.oddsPath
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, string(body))
	}
	return io.ReadAll(resp.Body)
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
}
