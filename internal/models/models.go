// Package models contains the domain types shared across packages.
package models

import "time"

// PricePayload is the outcome of one scrape of the source page.
// It is built once by NewPricePayload and never mutated afterwards.
type PricePayload struct {
	RunID     string
	SourceURL string
	FetchedAt time.Time // UTC, stamped when the pipeline finished

	QuoteDateText *string    // raw date text as found on the page
	QuoteDate     *time.Time // midnight in UTC+7, nil when unparsable
	PriceText     *string    // raw price text as found on the page
	PriceIDR      *int64     // whole Rupiah, nil when absent or unparsable

	// Note is a " | " joined trace of which extraction rules matched.
	Note string
}

// PricePayloadParams holds the values for NewPricePayload.
type PricePayloadParams struct {
	RunID         string
	SourceURL     string
	FetchedAt     time.Time
	QuoteDateText *string
	QuoteDate     *time.Time
	PriceText     *string
	PriceIDR      *int64
	Note          string
}

// NewPricePayload builds a payload, normalizing FetchedAt to UTC.
func NewPricePayload(p PricePayloadParams) *PricePayload {
	return &PricePayload{
		RunID:         p.RunID,
		SourceURL:     p.SourceURL,
		FetchedAt:     p.FetchedAt.UTC(),
		QuoteDateText: p.QuoteDateText,
		QuoteDate:     p.QuoteDate,
		PriceText:     p.PriceText,
		PriceIDR:      p.PriceIDR,
		Note:          p.Note,
	}
}

// QuoteDateISO returns the quote date as RFC 3339 with its +07:00 offset.
func (p *PricePayload) QuoteDateISO() *string {
	if p.QuoteDate == nil {
		return nil
	}
	s := p.QuoteDate.Format(time.RFC3339)
	return &s
}

// FetchedAtISO returns FetchedAt as RFC 3339 in UTC with sub-second precision.
func (p *PricePayload) FetchedAtISO() string {
	return p.FetchedAt.UTC().Format(time.RFC3339Nano)
}
