package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/tint-us/lm-api/internal/fetcher"
	"github.com/tint-us/lm-api/internal/logging"
	"github.com/tint-us/lm-api/internal/models"
)

// HargaBody is the public shape of a price quotation.
type HargaBody struct {
	HargaTanggalText   *string `json:"harga_tanggal_text" doc:"Quote date exactly as shown on the source page"`
	HargaTanggalISOJKT *string `json:"harga_tanggal_iso_jkt" doc:"Quote date as midnight in UTC+7 (RFC 3339), null when the date could not be parsed"`
	HargaIDR           *int64  `json:"harga_idr" doc:"Price of 1 gram in whole Rupiah, null when not found"`
	SourceURL          string  `json:"source_url"`
	FetchedAtUTC       string  `json:"fetched_at_utc" doc:"When the source page was scraped (RFC 3339, UTC)"`
	Note               string  `json:"note" doc:"Which extraction rules matched, joined with ' | '"`
}

// HargaOutput represents the /harga response.
type HargaOutput struct {
	CacheControl string `header:"Cache-Control"`
	Body         HargaBody
}

// HargaHandler serves /harga.
type HargaHandler struct {
	prices PriceProvider
	logger *slog.Logger
}

// NewHargaHandler creates a new price handler.
func NewHargaHandler(prices PriceProvider, logger *slog.Logger) *HargaHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &HargaHandler{prices: prices, logger: logger}
}

// GetHarga returns the current quotation, scraping the source on cache miss.
func (h *HargaHandler) GetHarga(ctx context.Context, input *struct{}) (*HargaOutput, error) {
	p, err := h.prices.Current(ctx)
	if err != nil {
		return nil, h.mapError(ctx, err)
	}

	return &HargaOutput{
		CacheControl: cacheControlFor(h.prices),
		Body:         toHargaBody(p),
	}, nil
}

func (h *HargaHandler) mapError(ctx context.Context, err error) error {
	logger := logging.FromContext(ctx, h.logger)

	var fe *fetcher.FetchError
	switch {
	case errors.As(err, &fe):
		logger.Warn("serving upstream failure", "url", fe.URL, "attempts", fe.Attempts, "error", fe.Cause)
		return huma.Error502BadGateway("upstream fetch failed")
	case errors.Is(err, context.DeadlineExceeded):
		logger.Warn("request deadline reached while waiting for scrape")
		return huma.Error504GatewayTimeout("upstream fetch timed out")
	case errors.Is(err, context.Canceled):
		return huma.Error503ServiceUnavailable("request cancelled")
	default:
		logger.Error("unexpected price service error", "error", err)
		return huma.Error500InternalServerError("internal error")
	}
}

func toHargaBody(p *models.PricePayload) HargaBody {
	return HargaBody{
		HargaTanggalText:   p.QuoteDateText,
		HargaTanggalISOJKT: p.QuoteDateISO(),
		HargaIDR:           p.PriceIDR,
		SourceURL:          p.SourceURL,
		FetchedAtUTC:       p.FetchedAtISO(),
		Note:               p.Note,
	}
}

// cacheControlFor lets clients reuse the response until the server-side entry expires.
func cacheControlFor(prices PriceProvider) string {
	remaining := prices.CacheTTL()
	if age, ok := prices.CacheAge(); ok {
		remaining -= age
	}
	if remaining < 0 {
		remaining = 0
	}
	return fmt.Sprintf("private, max-age=%d", int64(remaining/time.Second))
}
