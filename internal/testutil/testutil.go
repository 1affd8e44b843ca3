package testutil

import (
	"context"
	"sync"

	"pricewatch/internal/fetcher"
)

// MockPageFetcher is a mock implementation of fetcher.PageFetcher for testing
type MockPageFetcher struct {
	FetchFunc func(ctx context.Context) (fetcher.Page, error)
	URLFunc   func() string
}

// Fetch implements fetcher.PageFetcher
func (m *MockPageFetcher) Fetch(ctx context.Context) (fetcher.Page, error) {
	if m.FetchFunc != nil {
		return m.FetchFunc(ctx)
	}
	return fetcher.Page{}, nil
}

// URL implements fetcher.PageFetcher
func (m *MockPageFetcher) URL() string {
	if m.URLFunc != nil {
		return m.URLFunc()
	}
	return "mock://page"
}

// NewMockPageFetcher creates a fetcher that always returns body or err
func NewMockPageFetcher(body string, err error) *MockPageFetcher {
	return &MockPageFetcher{
		FetchFunc: func(ctx context.Context) (fetcher.Page, error) {
			if err != nil {
				return fetcher.Page{}, err
			}
			return fetcher.Page{URL: "mock://page", StatusCode: 200, Body: body}, nil
		},
	}
}

// MockNotifier records every message it is asked to send
type MockNotifier struct {
	Err error

	mu       sync.Mutex
	messages []string
}

// Send records text and returns m.Err
func (m *MockNotifier) Send(ctx context.Context, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, text)
	return m.Err
}

// Messages returns a copy of the recorded messages
func (m *MockNotifier) Messages() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.messages...)
}
