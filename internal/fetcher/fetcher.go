package fetcher

import "context"

// PageFetcher retrieves the raw markup of the market page.
type PageFetcher interface {
	// Fetch downloads the page. Errors are *FetchError values describing
	// whether the failure is worth retrying on the next cycle.
	Fetch(ctx context.Context) (Page, error)

	// URL returns the address the fetcher downloads.
	URL() string
}
