package quote

import (
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"pricewatch/internal/dom"
)

// Table is an ancillary price table located after a section link.
type Table struct {
	Name   string
	Anchor dom.Anchor
	Unit   string
}

var tables = []Table{
	{Name: "ارزها", Anchor: dom.AfterLink("https://www.tgju.org/currency"), Unit: UnitToman},
	{Name: "سکه", Anchor: dom.AfterLink("https://www.tgju.org/coin"), Unit: UnitToman},
	{Name: "ارزهای دیجیتال", Anchor: dom.AfterLink("https://www.tgju.org/crypto"), Unit: UnitDollar},
}

// Tables returns the ancillary tables in display order.
func Tables() []Table {
	return slices.Clone(tables)
}

// Row is one populated row of an ancillary table.
type Row struct {
	Name  string
	Price string
	Unit  string
}

// Value is the normalized price of the row.
func (r Row) Value() float64 {
	return Normalize(r.Price)
}

// ExtractTable yields the rows of a table in document order. Rows without
// both a name and a price are skipped. The error wraps dom.ErrNotFound when
// the table cannot be located.
func ExtractTable(doc *goquery.Document, t Table) (iter.Seq[Row], error) {
	table, err := dom.Locate(doc, t.Anchor)
	if err != nil {
		return func(func(Row) bool) {}, fmt.Errorf("%s: %w", t.Name, err)
	}

	rows := table.ChildrenFiltered("tbody").ChildrenFiltered("tr")
	if rows.Length() == 0 {
		rows = table.ChildrenFiltered("tr")
	}
	return func(yield func(Row) bool) {
		for i := range rows.Length() {
			cells := rows.Eq(i).ChildrenFiltered("td, th")
			if cells.Length() < 2 {
				continue
			}
			name := cleanText(cells.Eq(0).Text())
			price := cleanText(cells.Eq(1).Text())
			if name == "" || price == "" {
				continue
			}
			if !yield(Row{Name: name, Price: price, Unit: t.Unit}) {
				return
			}
		}
	}, nil
}

func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
