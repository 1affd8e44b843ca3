// Package dom locates the fragments of the market page that quotes are read from.
//
// Two kinds of anchors are supported: a direct CSS selector (usually an element id)
// and a structural anchor naming the table that follows a given link, for tables
// that carry no stable identifier of their own.
package dom

import (
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var (
	// ErrNotFound is returned when an anchor cannot be located in the document.
	ErrNotFound = errors.New("anchor not found")

	// ErrFieldMissing is returned when a located element lacks a required child.
	ErrFieldMissing = errors.New("field missing")
)

// Kind identifies how an Anchor is resolved.
type Kind int

const (
	// KindSelector resolves to the first element matching a CSS selector.
	KindSelector Kind = iota
	// KindAfterLink resolves to the first table following a link with a given href.
	KindAfterLink
)

// Anchor is a stable marker for a fragment of the page.
type Anchor struct {
	Kind  Kind
	Value string
}

// ByID anchors on the element with the given id.
func ByID(id string) Anchor {
	return Anchor{Kind: KindSelector, Value: "#" + id}
}

// BySelector anchors on the first element matching a CSS selector.
func BySelector(selector string) Anchor {
	return Anchor{Kind: KindSelector, Value: selector}
}

// AfterLink anchors on the first table that follows, in document order,
// the first link whose href equals target.
func AfterLink(target string) Anchor {
	return Anchor{Kind: KindAfterLink, Value: target}
}

func (a Anchor) String() string {
	if a.Kind == KindAfterLink {
		return fmt.Sprintf("table after a[href=%q]", a.Value)
	}
	return a.Value
}

// Locate resolves an anchor against the document.
func Locate(doc *goquery.Document, a Anchor) (*goquery.Selection, error) {
	if doc == nil || a.Value == "" {
		return nil, fmt.Errorf("%s: %w", a, ErrNotFound)
	}

	switch a.Kind {
	case KindSelector:
		sel := doc.Find(a.Value).First()
		if sel.Length() == 0 {
			return nil, fmt.Errorf("%s: %w", a, ErrNotFound)
		}
		return sel, nil
	case KindAfterLink:
		return tableAfterLink(doc, a)
	default:
		return nil, fmt.Errorf("unknown anchor kind %d: %w", a.Kind, ErrNotFound)
	}
}

func tableAfterLink(doc *goquery.Document, a Anchor) (*goquery.Selection, error) {
	link := doc.Find("a[href]").FilterFunction(func(_ int, s *goquery.Selection) bool {
		href, _ := s.Attr("href")
		return href == a.Value
	}).First()
	if link.Length() == 0 {
		return nil, fmt.Errorf("%s: link missing: %w", a, ErrNotFound)
	}

	linkNode := link.Get(0)
	passed := false
	var table *html.Node

	// Find("*") yields elements in document order; ancestors of the link come
	// before it, so the first table seen after it is a following table.
	doc.Find("*").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		n := s.Get(0)
		if n == linkNode {
			passed = true
			return true
		}
		if passed && n.DataAtom == atom.Table {
			table = n
			return false
		}
		return true
	})

	if table == nil {
		return nil, fmt.Errorf("%s: no table after link: %w", a, ErrNotFound)
	}
	return doc.FindNodes(table), nil
}

// Field returns the trimmed text of the first child of s matching selector.
func Field(s *goquery.Selection, selector string) (string, error) {
	f := s.Find(selector).First()
	if f.Length() == 0 {
		return "", fmt.Errorf("%s: %w", selector, ErrFieldMissing)
	}
	return strings.TrimSpace(f.Text()), nil
}
