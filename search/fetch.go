package search

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/chromedp/chromedp"
)

// Fetcher retrieves raw page markup for a search URL. Implementations may
// hold long-lived resources shared across runs; Close releases them.
type Fetcher interface {
	Fetch(ctx context.Context, pageURL string) (string, error)
	Close() error
}

const desktopUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0 Safari/537.36"

// HTTPFetcher fetches pages with a plain HTTP client.
type HTTPFetcher struct {
	client *http.Client
}

func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &HTTPFetcher{client: &http.Client{Timeout: timeout}}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %v", err)
	}
	req.Header.Set("User-Agent", desktopUserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("search provider returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %v", err)
	}
	return string(body), nil
}

func (f *HTTPFetcher) Close() error {
	f.client.CloseIdleConnections()
	return nil
}

// BrowserFetcher renders pages in a headless browser, for search providers
// that build their result list with scripts. The browser is launched once
// and shared across runs; each Fetch opens its own tab.
type BrowserFetcher struct {
	browserCtx  context.Context
	cancel      context.CancelFunc
	allocCancel context.CancelFunc
}

func NewBrowserFetcher() (*BrowserFetcher, error) {
	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(),
		chromedp.DefaultExecAllocatorOptions[:]...)
	browserCtx, cancel := chromedp.NewContext(allocCtx)

	// Launch eagerly so startup failures surface here, not mid-run.
	if err := chromedp.Run(browserCtx); err != nil {
		cancel()
		allocCancel()
		return nil, fmt.Errorf("failed to launch browser: %v", err)
	}
	return &BrowserFetcher{browserCtx: browserCtx, cancel: cancel, allocCancel: allocCancel}, nil
}

func (f *BrowserFetcher) Fetch(ctx context.Context, pageURL string) (string, error) {
	tab, cancelTab := chromedp.NewContext(f.browserCtx)
	defer cancelTab()

	if deadline, ok := ctx.Deadline(); ok {
		var cancelDeadline context.CancelFunc
		tab, cancelDeadline = context.WithDeadline(tab, deadline)
		defer cancelDeadline()
	}

	var markup string
	err := chromedp.Run(tab,
		chromedp.Navigate(pageURL),
		chromedp.OuterHTML("html", &markup),
	)
	if err != nil {
		return "", fmt.Errorf("browser navigation failed: %v", err)
	}
	return markup, nil
}

func (f *BrowserFetcher) Close() error {
	err := chromedp.Cancel(f.browserCtx)
	f.cancel()
	f.allocCancel()
	return err
}
