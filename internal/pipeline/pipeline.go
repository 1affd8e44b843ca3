// Package pipeline turns a parsed market page into the report text.
package pipeline

import (
	"errors"
	"fmt"
	"io"

	"github.com/PuerkitoBio/goquery"
	"github.com/phuslu/log"

	"pricewatch/internal/quote"
	"pricewatch/internal/report"
)

// ErrDocumentUnusable is returned when the input is not a usable HTML document.
var ErrDocumentUnusable = errors.New("document unusable")

// Pipeline extracts instruments and tables from a document and composes the
// report. It holds no per-run state and is safe for concurrent use.
type Pipeline struct {
	instruments []quote.Instrument
	tables      []quote.Table
	composer    report.Composer
	logger      *log.Logger
}

// New creates a pipeline for the given report variant.
func New(variant report.Variant, logger *log.Logger) *Pipeline {
	return &Pipeline{
		instruments: quote.Instruments(),
		tables:      quote.Tables(),
		composer:    report.Composer{Variant: variant},
		logger:      logger,
	}
}

// Parse reads markup into a document, rejecting input with no elements.
func Parse(r io.Reader) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDocumentUnusable, err)
	}
	if err := checkUsable(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func checkUsable(doc *goquery.Document) error {
	if doc == nil {
		return fmt.Errorf("%w: nil document", ErrDocumentUnusable)
	}
	if doc.Find("body *").Length() == 0 {
		return fmt.Errorf("%w: empty body", ErrDocumentUnusable)
	}
	return nil
}

// Run produces the report for doc. Missing instruments and tables are logged
// and rendered with defaults; only an unusable document is an error.
func (p *Pipeline) Run(doc *goquery.Document) (string, error) {
	if err := checkUsable(doc); err != nil {
		return "", err
	}

	readings := quote.ExtractAll(doc, p.instruments)
	for _, r := range readings {
		if r.Err != nil {
			p.logger.Warn().Err(r.Err).Str("instrument", r.Instrument.Label).Msg("instrument not extracted")
		}
	}

	var blocks []report.TableBlock
	if p.composer.Variant.ShowsTables() {
		blocks = make([]report.TableBlock, 0, len(p.tables))
		for _, t := range p.tables {
			rows, err := quote.ExtractTable(doc, t)
			if err != nil {
				p.logger.Warn().Err(err).Str("table", t.Name).Msg("table not extracted")
			}
			blocks = append(blocks, report.TableBlock{Table: t, Rows: rows})
		}
	}

	return p.composer.Compose(readings, blocks), nil
}
