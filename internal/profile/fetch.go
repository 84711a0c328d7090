package profile

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/gocolly/colly/v2"
)

const defaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36"

// Fetcher returns the HTML of a page.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// CollyFetcher downloads a page with a plain HTTP collector.
type CollyFetcher struct {
	userAgent string
	timeout   time.Duration
}

func NewCollyFetcher(userAgent string, timeout time.Duration) *CollyFetcher {
	if strings.TrimSpace(userAgent) == "" {
		userAgent = defaultUserAgent
	}
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &CollyFetcher{userAgent: userAgent, timeout: timeout}
}

func (f *CollyFetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	c := colly.NewCollector(colly.UserAgent(f.userAgent))
	c.SetRequestTimeout(f.timeout)

	var body string
	var status int
	var reqErr error

	c.OnRequest(func(r *colly.Request) {
		r.Headers.Set("Accept", "text/html,application/xhtml+xml")
		r.Headers.Set("Accept-Language", "en-US,en;q=0.9")
	})
	c.OnResponse(func(r *colly.Response) {
		status = r.StatusCode
		body = string(r.Body)
	})
	c.OnError(func(r *colly.Response, err error) {
		if r != nil {
			status = r.StatusCode
		}
		reqErr = err
	})

	if err := c.Visit(url); err != nil && reqErr == nil {
		return "", err
	}
	c.Wait()

	if reqErr != nil {
		return "", fmt.Errorf("fetch %s: status %d: %w", url, status, reqErr)
	}
	if status != http.StatusOK {
		return "", fmt.Errorf("fetch %s: status %d", url, status)
	}
	return body, nil
}

// HeadlessFetcher renders a page in headless Chrome before reading its HTML.
type HeadlessFetcher struct {
	userAgent string
	timeout   time.Duration
}

func NewHeadlessFetcher(userAgent string, timeout time.Duration) *HeadlessFetcher {
	if strings.TrimSpace(userAgent) == "" {
		userAgent = defaultUserAgent
	}
	if timeout <= 0 {
		timeout = 25 * time.Second
	}
	return &HeadlessFetcher{userAgent: userAgent, timeout: timeout}
}

func (f *HeadlessFetcher) Fetch(ctx context.Context, url string) (string, error) {
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
			chromedp.UserAgent(f.userAgent),
		)...,
	)
	defer allocCancel()

	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	reqCtx, reqCancel := context.WithTimeout(browserCtx, f.timeout)
	defer reqCancel()

	var html string
	err := chromedp.Run(reqCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Sleep(1500*time.Millisecond),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		return "", err
	}
	return html, nil
}

// HTMLImporter fetches a public profile page and parses it.
type HTMLImporter struct {
	fetcher Fetcher
}

func NewHTMLImporter(fetcher Fetcher) *HTMLImporter {
	return &HTMLImporter{fetcher: fetcher}
}

func (h *HTMLImporter) ImportProfile(ctx context.Context, url string) (Profile, error) {
	if _, err := ValidateLinkedInURL(url); err != nil {
		return Profile{}, err
	}
	if h == nil || h.fetcher == nil {
		return Profile{}, fmt.Errorf("nil fetcher")
	}
	html, err := h.fetcher.Fetch(ctx, strings.TrimSpace(url))
	if err != nil {
		return Profile{}, err
	}
	return ParseHTML(html)
}
