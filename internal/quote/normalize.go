// Package quote extracts market quotations from the parsed page and applies
// the numeric rules used when they are displayed.
package quote

import (
	"math"
	"strconv"
	"strings"
)

// Normalize converts locale-formatted numeric text into a float.
// Every character other than a digit or '.' is dropped; what remains is parsed
// as a decimal number. Persian and Arabic-Indic digits count as digits. Empty or
// unparsable input yields 0.
func Normalize(text string) float64 {
	var b strings.Builder
	for _, r := range text {
		switch {
		case r >= '0' && r <= '9', r == '.':
			b.WriteRune(r)
		case r >= '۰' && r <= '۹':
			b.WriteRune('0' + r - '۰')
		case r >= '٠' && r <= '٩':
			b.WriteRune('0' + r - '٠')
		}
	}
	if b.Len() == 0 {
		return 0
	}

	v, err := strconv.ParseFloat(b.String(), 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0
	}
	return v
}

// FormatNumber renders v as its shortest plain decimal text.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ParseChange returns the signed change percentage for a change cell.
// Normalize drops signs, so the direction comes from a leading minus in the
// text or from the cell being marked as falling.
func ParseChange(text string, falling bool) float64 {
	v := Normalize(text)
	if v == 0 {
		return 0
	}
	if falling || strings.ContainsAny(text, "-−") {
		return -v
	}
	return v
}
