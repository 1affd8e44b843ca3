package coordinator

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"pricewatch/internal/fetcher"
	"pricewatch/internal/logger"
	"pricewatch/internal/pipeline"
	"pricewatch/internal/report"
	"pricewatch/internal/testutil"
)

const page = `<html><body>
<li id="l-price_dollar_rl"><span class="info-price">1,082,500</span><span class="info-change">2.1</span></li>
</body></html>`

func newPipeline() *pipeline.Pipeline {
	return pipeline.New(report.VariantTrend, logger.Discard())
}

func TestCoordinator_Run_Sends(t *testing.T) {
	notifier := &testutil.MockNotifier{}
	c := New(testutil.NewMockPageFetcher(page, nil), newPipeline(), notifier, logger.Discard())

	res, err := c.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() returned unexpected error: %v", err)
	}

	if !res.Sent {
		t.Error("Sent = false, want true")
	}
	msgs := notifier.Messages()
	if len(msgs) != 1 {
		t.Fatalf("sent %d messages, want 1", len(msgs))
	}
	if msgs[0] != res.Report {
		t.Error("sent message differs from Result.Report")
	}
	if !strings.Contains(msgs[0], "💰 دلار: 1082500 تومان 📈 (+2.1%)") {
		t.Errorf("report missing dollar line:\n%s", msgs[0])
	}
}

func TestCoordinator_Run_FetchError(t *testing.T) {
	notifier := &testutil.MockNotifier{}
	fetchErr := fetcher.ClassifyHTTPError(503)
	c := New(testutil.NewMockPageFetcher("", fetchErr), newPipeline(), notifier, logger.Discard())

	_, err := c.Run(context.Background())
	if !errors.Is(err, fetchErr) {
		t.Fatalf("Run() error = %v, want wrapped fetch error", err)
	}
	if len(notifier.Messages()) != 0 {
		t.Error("notifier called after fetch failure")
	}
}

func TestCoordinator_Run_UnusableDocument(t *testing.T) {
	notifier := &testutil.MockNotifier{}
	c := New(testutil.NewMockPageFetcher("not html at all", nil), newPipeline(), notifier, logger.Discard())

	_, err := c.Run(context.Background())
	if !errors.Is(err, pipeline.ErrDocumentUnusable) {
		t.Fatalf("Run() error = %v, want ErrDocumentUnusable", err)
	}
	if len(notifier.Messages()) != 0 {
		t.Error("notifier called for unusable document")
	}
}

func TestCoordinator_Run_DegradedReportStillSent(t *testing.T) {
	notifier := &testutil.MockNotifier{}
	c := New(testutil.NewMockPageFetcher("<html><body><p>maintenance</p></body></html>", nil), newPipeline(), notifier, logger.Discard())

	res, err := c.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() returned unexpected error: %v", err)
	}
	if !res.Sent || len(notifier.Messages()) != 1 {
		t.Error("degraded report was not sent")
	}
}

func TestCoordinator_Run_NotifyError(t *testing.T) {
	sendErr := errors.New("telegram down")
	notifier := &testutil.MockNotifier{Err: sendErr}
	c := New(testutil.NewMockPageFetcher(page, nil), newPipeline(), notifier, logger.Discard())

	res, err := c.Run(context.Background())
	if !errors.Is(err, sendErr) {
		t.Fatalf("Run() error = %v, want wrapped send error", err)
	}
	if res.Sent {
		t.Error("Sent = true after notifier failure")
	}
	if res.Report == "" {
		t.Error("Report is empty after notifier failure")
	}
}

func TestCoordinator_Run_DryRun(t *testing.T) {
	var out bytes.Buffer
	notifier := &testutil.MockNotifier{}
	c := New(testutil.NewMockPageFetcher(page, nil), newPipeline(), notifier, logger.Discard(), WithDryRun(&out))

	res, err := c.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() returned unexpected error: %v", err)
	}
	if res.Sent {
		t.Error("Sent = true in dry run")
	}
	if len(notifier.Messages()) != 0 {
		t.Error("notifier called in dry run")
	}
	if out.String() != res.Report+"\n" {
		t.Errorf("dry run output = %q, want report", out.String())
	}
}
