package report

import (
	"fmt"
	"strings"
)

// Variant selects the layout of the report.
type Variant int

const (
	// VariantTrend shows each instrument with its trend glyph and change text.
	VariantTrend Variant = iota
	// VariantTables shows plain instrument lines followed by the ancillary tables.
	VariantTables
)

var variantNames = map[Variant]string{
	VariantTrend:  "trend",
	VariantTables: "tables",
}

func (v Variant) String() string {
	if name, ok := variantNames[v]; ok {
		return name
	}
	return fmt.Sprintf("variant(%d)", int(v))
}

// ShowsTables reports whether the variant renders the ancillary tables.
func (v Variant) ShowsTables() bool {
	return v == VariantTables
}

// ParseVariant parses a variant name as used in configuration.
func ParseVariant(name string) (Variant, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for v, n := range variantNames {
		if n == name {
			return v, nil
		}
	}
	return VariantTrend, fmt.Errorf("unknown report variant %q (want trend or tables)", name)
}
