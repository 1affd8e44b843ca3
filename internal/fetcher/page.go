package fetcher

import (
	"context"
	"strings"
	"time"

	"github.com/phuslu/log"
	"resty.dev/v3"

	"pricewatch/internal/ratelimit"
)

// browserHeaders makes the request look like a regular Firefox navigation;
// the site serves a challenge page to obvious bots.
var browserHeaders = map[string]string{
	"User-Agent":                "Mozilla/5.0 (X11; Ubuntu; Linux x86_64; rv:143.0) Gecko/20100101 Firefox/143.0",
	"Accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
	"Accept-Language":           "en-US,en;q=0.5",
	"Accept-Encoding":           "gzip, deflate",
	"Connection":                "keep-alive",
	"Upgrade-Insecure-Requests": "1",
	"Sec-Fetch-Dest":            "document",
	"Sec-Fetch-Mode":            "navigate",
	"Sec-Fetch-Site":            "none",
	"Sec-Fetch-User":            "?1",
}

// PageConfig configures an HTTPPageFetcher.
type PageConfig struct {
	URL           string
	ProxyURL      string
	Timeout       time.Duration
	RetryCount    int
	RetryWaitTime time.Duration
}

// HTTPPageFetcher downloads the market page over HTTP.
type HTTPPageFetcher struct {
	url    string
	client *resty.Client
	logger *log.Logger
}

// NewPageFetcher creates a page fetcher.
func NewPageFetcher(cfg PageConfig, logger *log.Logger) *HTTPPageFetcher {
	client := NewHTTPClient(ClientOptions{
		Timeout:       cfg.Timeout,
		ProxyURL:      cfg.ProxyURL,
		Headers:       browserHeaders,
		RetryCount:    cfg.RetryCount,
		RetryWaitTime: cfg.RetryWaitTime,
		Logger:        logger,
	})

	return &HTTPPageFetcher{
		url:    cfg.URL,
		client: client,
		logger: logger,
	}
}

// Fetch downloads the page and returns its markup.
func (f *HTTPPageFetcher) Fetch(ctx context.Context) (Page, error) {
	if err := ratelimit.GetLimiter().Wait(ctx, ratelimit.APISite); err != nil {
		return Page{}, NewTimeoutError(err)
	}

	resp, err := f.client.R().
		SetContext(ctx).
		Get(f.url)
	if err != nil {
		return Page{}, FromTransport(ctx, err)
	}

	if !resp.IsSuccess() {
		return Page{}, ClassifyHTTPError(resp.StatusCode())
	}

	body := resp.String()
	if strings.TrimSpace(body) == "" {
		return Page{}, NewValidationError("empty page body")
	}

	f.logger.Debug().Str("url", f.url).Int("bytes", len(body)).Msg("page fetched")

	return Page{
		URL:        f.url,
		StatusCode: resp.StatusCode(),
		Body:       body,
		FetchedAt:  time.Now(),
	}, nil
}

// URL returns the page address.
func (f *HTTPPageFetcher) URL() string {
	return f.url
}
