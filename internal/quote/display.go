package quote

import (
	"math"
	"strings"
)

// Trend glyphs.
const (
	GlyphUp   = "📈"
	GlyphDown = "📉"
	GlyphFlat = "⏸️"
)

// Texts shown when there is no movement.
const (
	TextNoData    = "قمیتی ازش دردسترس نیست"
	TextUnchanged = "بدون تغییر"
)

// DisplayValue applies the display rounding policy to a price.
// When the shortest decimal form of price has exactly two fractional digits the
// value is rounded up; otherwise the fractional part is discarded.
//
// The two-digit rule mirrors how the site's values have always been shown and
// has not been confirmed as a business rule; keep it exact until it is.
func DisplayValue(price float64) int64 {
	s := FormatNumber(price)
	if i := strings.IndexByte(s, '.'); i >= 0 && len(s)-i-1 == 2 {
		return int64(math.Ceil(price))
	}
	return int64(price)
}

// Trend is the glyph and text describing a price movement.
type Trend struct {
	Glyph string
	Text  string
}

// TrendOf describes a change percentage. A nil change means no change was read.
func TrendOf(change *float64, price float64) Trend {
	var c float64
	if change != nil {
		c = *change
	}

	switch {
	case c > 0:
		return Trend{Glyph: GlyphUp, Text: "+" + formatPercent(c) + "%"}
	case c < 0:
		return Trend{Glyph: GlyphDown, Text: formatPercent(c) + "%"}
	case price == 0:
		return Trend{Glyph: GlyphFlat, Text: TextNoData}
	default:
		return Trend{Glyph: GlyphFlat, Text: TextUnchanged}
	}
}

// formatPercent always keeps one fractional digit, so 2 renders as "2.0".
func formatPercent(c float64) string {
	s := FormatNumber(c)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
