package fetcher

import (
	"time"

	"github.com/phuslu/log"
	"resty.dev/v3"
)

const (
	// Default retry configuration
	defaultRetryCount       = 3
	defaultRetryWaitTime    = 1 * time.Second
	defaultRetryMaxWaitTime = 10 * time.Second
	defaultTimeout          = 30 * time.Second
)

// ClientOptions configures an HTTP client.
type ClientOptions struct {
	BaseURL       string
	Timeout       time.Duration
	ProxyURL      string // empty disables the proxy
	Headers       map[string]string
	RetryCount    int // negative disables retries, zero uses the default
	RetryWaitTime time.Duration
	Logger        *log.Logger
}

// NewHTTPClient creates a resty client with retry logic and exponential backoff.
func NewHTTPClient(opts ClientOptions) *resty.Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	retries := opts.RetryCount
	switch {
	case retries == 0:
		retries = defaultRetryCount
	case retries < 0:
		retries = 0
	}
	wait := opts.RetryWaitTime
	if wait <= 0 {
		wait = defaultRetryWaitTime
	}

	client := resty.New().
		SetTimeout(timeout).
		SetHeaders(opts.Headers).
		SetRetryCount(retries).
		SetRetryWaitTime(wait).
		SetRetryMaxWaitTime(defaultRetryMaxWaitTime).
		AddRetryConditions(retryCondition)

	if opts.BaseURL != "" {
		client.SetBaseURL(opts.BaseURL)
	}
	if opts.ProxyURL != "" {
		client.SetProxy(opts.ProxyURL)
	}
	if opts.Logger != nil {
		client.AddRetryHooks(retryHook(opts.Logger))
	}

	return client
}

// retryCondition determines whether a request should be retried based on the response and error
func retryCondition(r *resty.Response, err error) bool {
	if err != nil {
		return true
	}

	switch code := r.StatusCode(); {
	case code >= 500:
		return true
	case code == 429, code == 408:
		return true
	default:
		return false
	}
}

// retryHook logs retry attempts
func retryHook(logger *log.Logger) func(*resty.Response, error) {
	return func(r *resty.Response, err error) {
		e := logger.Debug()
		if r != nil && r.Request != nil {
			e = e.Str("url", r.Request.URL).Int("attempt", r.Request.Attempt)
		}
		if err != nil || r == nil {
			e.Err(err).Msg("retrying request due to error")
			return
		}
		e.Int("status_code", r.StatusCode()).Msg("retrying request due to status code")
	}
}
