package models

import (
	"testing"
	"time"
)

func TestNewPricePayload_NormalizesToUTC(t *testing.T) {
	wib := time.FixedZone("WIB", 7*3600)
	fetched := time.Date(2025, 5, 12, 9, 30, 0, 0, wib)

	p := NewPricePayload(PricePayloadParams{SourceURL: "https://example.test", FetchedAt: fetched})

	if p.FetchedAt.Location() != time.UTC {
		t.Errorf("FetchedAt location = %v, want UTC", p.FetchedAt.Location())
	}
	if !p.FetchedAt.Equal(fetched) {
		t.Errorf("FetchedAt = %v, want instant %v", p.FetchedAt, fetched)
	}
	if got, want := p.FetchedAtISO(), "2025-05-12T02:30:00Z"; got != want {
		t.Errorf("FetchedAtISO() = %q, want %q", got, want)
	}
}

func TestPricePayload_QuoteDateISO(t *testing.T) {
	p := NewPricePayload(PricePayloadParams{})
	if p.QuoteDateISO() != nil {
		t.Error("QuoteDateISO() should be nil without a quote date")
	}

	d := time.Date(2025, 5, 12, 0, 0, 0, 0, time.FixedZone("WIB", 7*3600))
	p = NewPricePayload(PricePayloadParams{QuoteDate: &d})
	got := p.QuoteDateISO()
	if got == nil || *got != "2025-05-12T00:00:00+07:00" {
		t.Errorf("QuoteDateISO() = %v, want 2025-05-12T00:00:00+07:00", got)
	}
}
