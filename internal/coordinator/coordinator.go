package coordinator

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/phuslu/log"

	"pricewatch/internal/fetcher"
	"pricewatch/internal/pipeline"
)

// Notifier delivers a rendered report.
type Notifier interface {
	Send(ctx context.Context, text string) error
}

// Result describes one completed cycle.
type Result struct {
	Report   string
	Sent     bool
	Duration time.Duration
}

// Coordinator runs one fetch, extract and notify cycle at a time.
type Coordinator struct {
	fetcher  fetcher.PageFetcher
	pipeline *pipeline.Pipeline
	notifier Notifier
	dryRun   io.Writer
	logger   *log.Logger
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithDryRun writes reports to w instead of sending them.
func WithDryRun(w io.Writer) Option {
	return func(c *Coordinator) {
		c.dryRun = w
	}
}

// New creates a Coordinator.
func New(f fetcher.PageFetcher, p *pipeline.Pipeline, n Notifier, logger *log.Logger, opts ...Option) *Coordinator {
	c := &Coordinator{
		fetcher:  f,
		pipeline: p,
		notifier: n,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run executes a single cycle. Fetch, parse and delivery failures are
// returned; missing quotes only degrade the report.
func (c *Coordinator) Run(ctx context.Context) (Result, error) {
	start := time.Now()
	c.logger.Info().Str("url", c.fetcher.URL()).Msg("job started")

	page, err := c.fetcher.Fetch(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("fetching %s: %w", c.fetcher.URL(), err)
	}

	doc, err := pipeline.Parse(strings.NewReader(page.Body))
	if err != nil {
		return Result{}, fmt.Errorf("parsing %s: %w", page.URL, err)
	}

	text, err := c.pipeline.Run(doc)
	if err != nil {
		return Result{}, fmt.Errorf("extracting prices: %w", err)
	}

	res := Result{Report: text}

	if c.dryRun != nil {
		if _, err := fmt.Fprintln(c.dryRun, text); err != nil {
			return res, fmt.Errorf("writing report: %w", err)
		}
	} else {
		if err := c.notifier.Send(ctx, text); err != nil {
			return res, fmt.Errorf("sending report: %w", err)
		}
		res.Sent = true
	}

	res.Duration = time.Since(start)
	c.logger.Info().Dur("duration", res.Duration).Bool("sent", res.Sent).Msg("job finished")
	return res, nil
}
