package quote

import (
	"fmt"
	"slices"

	"github.com/PuerkitoBio/goquery"

	"pricewatch/internal/dom"
)

// Units used in the report.
const (
	UnitToman  = "تومان"
	UnitDollar = "دلار"
)

const (
	priceSelector  = ".info-price"
	changeSelector = ".info-change"
	fallingClass   = "low"
)

// Instrument is a named quotation read from a fixed block of the page.
type Instrument struct {
	Anchor dom.Anchor
	Label  string
	Unit   string
}

var instruments = []Instrument{
	{Anchor: dom.ByID("l-price_dollar_rl"), Label: "دلار", Unit: UnitToman},
	{Anchor: dom.ByID("l-sekee"), Label: "سکه تمام امامی", Unit: UnitToman},
	{Anchor: dom.ByID("l-mesghal"), Label: "مثقال", Unit: UnitToman},
	{Anchor: dom.ByID("l-ons"), Label: "انس طلا", Unit: UnitDollar},
	{Anchor: dom.ByID("l-crypto-tether-irr"), Label: "تتر", Unit: UnitToman},
	{Anchor: dom.ByID("l-crypto-bitcoin"), Label: "بیت کوین", Unit: UnitDollar},
}

// Instruments returns the reported instruments in display order.
// The returned slice is a copy and may be modified by the caller.
func Instruments() []Instrument {
	return slices.Clone(instruments)
}

// Reading is the outcome of extracting one instrument in one run.
// When Err is set the reading holds its defaults: zero price and no change.
type Reading struct {
	Instrument Instrument
	RawPrice   string
	RawChange  string
	Price      float64
	Change     *float64
	Err        error
}

// Extract reads the price and change of an instrument. It never fails; a
// missing anchor or field is reported through Reading.Err.
func Extract(doc *goquery.Document, inst Instrument) Reading {
	r := Reading{Instrument: inst}

	block, err := dom.Locate(doc, inst.Anchor)
	if err != nil {
		r.Err = fmt.Errorf("%s: %w", inst.Label, err)
		return r
	}

	price, err := dom.Field(block, priceSelector)
	if err != nil {
		r.Err = fmt.Errorf("%s: %w", inst.Label, err)
		return r
	}
	change, err := dom.Field(block, changeSelector)
	if err != nil {
		r.Err = fmt.Errorf("%s: %w", inst.Label, err)
		return r
	}

	r.RawPrice = price
	r.RawChange = change
	r.Price = Normalize(price)
	if change != "" {
		falling := block.HasClass(fallingClass) || block.Find(changeSelector).First().HasClass(fallingClass)
		c := ParseChange(change, falling)
		r.Change = &c
	}
	return r
}

// ExtractAll extracts every instrument, preserving the order of insts.
func ExtractAll(doc *goquery.Document, insts []Instrument) []Reading {
	readings := make([]Reading, 0, len(insts))
	for _, inst := range insts {
		readings = append(readings, Extract(doc, inst))
	}
	return readings
}
