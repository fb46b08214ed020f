package service

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/oklog/ulid/v2"
	"golang.org/x/sync/singleflight"

	"github.com/tint-us/lm-api/internal/extract"
	"github.com/tint-us/lm-api/internal/logging"
	"github.com/tint-us/lm-api/internal/models"
	"github.com/tint-us/lm-api/internal/normalize"
	"github.com/tint-us/lm-api/internal/pricecache"
)

// PageFetcher retrieves the raw source page.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// FieldExtractor locates the raw field texts in a page.
type FieldExtractor interface {
	Extract(body []byte) extract.Fields
}

// PriceServiceConfig holds dependencies for the PriceService.
type PriceServiceConfig struct {
	SourceURL string
	CacheTTL  time.Duration
	Fetcher   PageFetcher
	Extractor FieldExtractor    // defaults to extract.New()
	Cache     *pricecache.Cache // defaults to a wall-clock cache
	Now       func() time.Time  // defaults to time.Now
}

// PriceService serves the current quotation, scraping the source on cache miss.
// Concurrent misses share a single scrape.
type PriceService struct {
	sourceURL string
	ttl       time.Duration
	fetcher   PageFetcher
	extractor FieldExtractor
	cache     *pricecache.Cache
	now       func() time.Time
	group     singleflight.Group
	inflight  atomic.Int64
	logger    *slog.Logger
}

// NewPriceService creates a new price service.
func NewPriceService(cfg PriceServiceConfig, logger *slog.Logger) *PriceService {
	if cfg.Extractor == nil {
		cfg.Extractor = extract.New()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Cache == nil {
		cfg.Cache = pricecache.NewWithClock(cfg.Now)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PriceService{
		sourceURL: cfg.SourceURL,
		ttl:       cfg.CacheTTL,
		fetcher:   cfg.Fetcher,
		extractor: cfg.Extractor,
		cache:     cfg.Cache,
		now:       cfg.Now,
		logger:    logger,
	}
}

// SourceURL returns the page being scraped.
func (s *PriceService) SourceURL() string {
	return s.sourceURL
}

// CacheTTL returns the freshness window.
func (s *PriceService) CacheTTL() time.Duration {
	return s.ttl
}

// CacheAge returns how old the cached payload is, if any.
func (s *PriceService) CacheAge() (time.Duration, bool) {
	return s.cache.Age()
}

// Busy reports whether a scrape is running, including one every caller has
// stopped waiting for.
func (s *PriceService) Busy() bool {
	return s.inflight.Load() > 0
}

// Current returns a payload no older than the cache TTL, scraping when needed.
//
// A started scrape always runs to completion and fills the cache, because
// other callers may be waiting on it. A caller whose ctx ends first stops
// waiting and gets ctx.Err(). Fetch failures are returned as-is and leave the
// cache untouched.
func (s *PriceService) Current(ctx context.Context) (*models.PricePayload, error) {
	if p, ok := s.cache.GetFresh(s.ttl); ok {
		return p, nil
	}

	scrapeCtx := context.WithoutCancel(ctx)
	ch := s.group.DoChan(s.sourceURL, func() (any, error) {
		// A flight that finished just before this one started has already refilled the slot.
		if p, ok := s.cache.GetFresh(s.ttl); ok {
			return p, nil
		}
		s.inflight.Add(1)
		defer s.inflight.Add(-1)
		return s.scrape(scrapeCtx)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		if res.Shared {
			logging.FromContext(ctx, s.logger).Debug("joined in-flight scrape", "url", s.sourceURL)
		}
		return res.Val.(*models.PricePayload), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// scrape runs fetch, extract and normalize, then stores the result.
func (s *PriceService) scrape(ctx context.Context) (*models.PricePayload, error) {
	runID := ulid.Make().String()
	ctx = logging.WithRunID(ctx, runID)
	logger := logging.FromContext(ctx, s.logger)

	start := s.now()
	body, err := s.fetcher.Fetch(ctx, s.sourceURL)
	if err != nil {
		logger.Error("scrape failed", "url", s.sourceURL, "error", err)
		return nil, err
	}

	fields := s.extractor.Extract(body)

	var priceIDR *int64
	if fields.PriceText != nil {
		if v, ok := normalize.ToAmount(*fields.PriceText); ok {
			priceIDR = &v
		}
	}
	var quoteDate *time.Time
	if fields.DateText != nil {
		if v, ok := normalize.ToDate(*fields.DateText); ok {
			quoteDate = &v
		}
	}

	payload := models.NewPricePayload(models.PricePayloadParams{
		RunID:         runID,
		SourceURL:     s.sourceURL,
		FetchedAt:     s.now(),
		QuoteDateText: fields.DateText,
		QuoteDate:     quoteDate,
		PriceText:     fields.PriceText,
		PriceIDR:      priceIDR,
		Note:          fields.Trace,
	})

	if !s.cache.Set(payload) {
		logger.Warn("discarded scrape older than cached payload")
		if cur, ok := s.cache.GetFresh(s.ttl); ok {
			return cur, nil
		}
	}

	logger.Info("scrape completed",
		"url", s.sourceURL,
		"bytes", len(body),
		"price_found", fields.PriceText != nil,
		"price_parsed", priceIDR != nil,
		"date_found", fields.DateText != nil,
		"date_parsed", quoteDate != nil,
		"note", fields.Trace,
		"duration_ms", s.now().Sub(start).Milliseconds(),
	)
	return payload, nil
}
