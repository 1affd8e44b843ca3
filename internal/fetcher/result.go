package fetcher

import "time"

// Page is a successfully downloaded document.
type Page struct {
	// URL is the address that was requested.
	URL string

	// StatusCode is the final HTTP status.
	StatusCode int

	// Body is the decoded markup.
	Body string

	// FetchedAt records when the response was received.
	FetchedAt time.Time
}
