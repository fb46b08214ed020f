// Package extract locates the quotation fields in the source page.
package extract

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/tint-us/lm-api/internal/constants"
)

// Rule lists CSS selectors for one field, tried in order. The first selector
// matching any element decides the field; later selectors are not consulted
// even when that element's text is empty.
type Rule struct {
	Selectors []string
	Note      string // appended to the trace when the field is found
}

// Default rules for the ANTAM daily price page.
var (
	DefaultPriceRule = Rule{
		Selectors: []string{`div.harga-hari-ini`, `div[title*="ANTAM 1 gram"]`},
		Note:      constants.NotePriceViaSelector,
	}
	DefaultDateRule = Rule{
		Selectors: []string{`div.harga-tanggal`},
		Note:      constants.NoteDateViaSelector,
	}
)

// Fields holds the raw text found for each field. A nil pointer means the
// field was not found or its text was empty.
type Fields struct {
	PriceText *string
	DateText  *string
	Trace     string
}

// Extractor applies a price rule and a date rule to an HTML document.
type Extractor struct {
	price Rule
	date  Rule
}

// New returns an Extractor using the default rules.
func New() *Extractor {
	return NewWithRules(DefaultPriceRule, DefaultDateRule)
}

// NewWithRules returns an Extractor with custom rules.
func NewWithRules(price, date Rule) *Extractor {
	return &Extractor{price: price, date: date}
}

// Extract never fails: unparsable input yields empty Fields.
func (e *Extractor) Extract(body []byte) Fields {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return Fields{}
	}

	var (
		out   Fields
		notes []string
	)
	if text, ok := firstMatchText(doc, e.price.Selectors); ok {
		out.PriceText = &text
		notes = append(notes, e.price.Note)
	}
	if text, ok := firstMatchText(doc, e.date.Selectors); ok {
		out.DateText = &text
		notes = append(notes, e.date.Note)
	}
	out.Trace = strings.Join(notes, constants.NoteSeparator)
	return out
}

// firstMatchText returns the whitespace-collapsed text of the first element
// matched by the first selector that matches anything.
func firstMatchText(doc *goquery.Document, selectors []string) (string, bool) {
	for _, sel := range selectors {
		match := doc.Find(sel)
		if match.Length() == 0 {
			continue
		}
		text := strings.Join(strings.Fields(match.First().Text()), " ")
		return text, text != ""
	}
	return "", false
}
