package bet9ja

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
)

// ChromeClient renders the odds page in a headless browser before parsing.
// The print endpoint is server-rendered, but the regular sport pages build
// their markup with JavaScript; point fetch at one of those and use this
// client instead of the plain HTTP one.
type ChromeClient struct {
	pageURL   string
	userAgent string
	timeout   time.Duration
}

func NewChromeClient(baseURL, oddsPath, userAgent string, timeout time.Duration) *ChromeClient {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if oddsPath == "" {
		oddsPath = defaultOddsPath
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &ChromeClient{
		pageURL:   strings.TrimSuffix(baseURL, "/") + oddsPath,
		userAgent: userAgent,
		timeout:   timeout,
	}
}

// GetOddsPage loads the page, lets its scripts run and returns the rendered HTML.
func (c *ChromeClient) GetOddsPage(ctx context.Context) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("no-sandbox", true),
	)
	if c.userAgent != "" {
		opts = append(opts, chromedp.UserAgent(c.userAgent))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(format string, v ...interface{}) {
		// Suppress chromedp logs unless debugging
		if os.Getenv("ODDSWATCH_CHROME_DEBUG") == "1" {
			fmt.Printf("chromedp: "+format, v...)
		}
	}))
	defer cancel()

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(c.pageURL),
		chromedp.WaitReady("body"),
		// Give the odds widgets a moment to fill in
		chromedp.Sleep(2*time.Second),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return nil, fmt.Errorf("chromedp navigation: %w", err)
	}
	return []byte(html), nil
}
