// Package report renders extracted quotes into the message posted to the channel.
package report

import (
	"fmt"
	"iter"
	"strings"

	"pricewatch/internal/quote"
)

const (
	title   = "*📊 قیمت‌ها امروز*"
	tagline = "*قیمت های جدید رسید جنبه نداری نبین یوقت کپ می کنی می افتی رو دستمون حالا خربیار باقالی بار کن*"
	bullet  = "💰"
)

// TableBlock pairs a table with its rows. Rows may be consumed only once.
type TableBlock struct {
	Table quote.Table
	Rows  iter.Seq[quote.Row]
}

// Composer renders reports in a fixed layout.
type Composer struct {
	Variant Variant
}

// Compose renders readings in the given order followed, for variants that
// show them, by one block per table. The output depends only on its inputs.
func (c Composer) Compose(readings []quote.Reading, tables []TableBlock) string {
	lines := []string{title, "\n", tagline, "\n"}

	for _, r := range readings {
		value := quote.DisplayValue(r.Price)
		if c.Variant == VariantTrend {
			trend := quote.TrendOf(r.Change, r.Price)
			lines = append(lines, fmt.Sprintf("%s %s: %d %s %s (%s)",
				bullet, r.Instrument.Label, value, r.Instrument.Unit, trend.Glyph, trend.Text))
			continue
		}
		lines = append(lines, fmt.Sprintf("%s %s: %d %s", bullet, r.Instrument.Label, value, r.Instrument.Unit))
	}

	if c.Variant.ShowsTables() {
		for _, block := range tables {
			lines = append(lines, "")
			if block.Rows == nil {
				continue
			}
			for row := range block.Rows {
				lines = append(lines, fmt.Sprintf("%s: %d %s", row.Name, quote.DisplayValue(row.Value()), row.Unit))
			}
		}
	}

	return strings.Join(lines, "\n")
}
