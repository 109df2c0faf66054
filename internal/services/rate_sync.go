package services

//go:generate mockgen -source=rate_sync.go -destination=rate_sync_mock.go -package=services

import (
	"context"
	"strings"
	"time"

	"github.com/sbilibin2017/gw-ledger/internal/logger"
	"github.com/shopspring/decimal"
)

// RateFeed fetches units-per-USD quotes from the exchanger.
type RateFeed interface {
	GetExchangeRates(ctx context.Context) (map[string]decimal.Decimal, error)
}

// RateWriter persists the USD value of each currency.
type RateWriter interface {
	UpsertRatesToUSD(ctx context.Context, rates map[string]decimal.Decimal) error
}

// RateInvalidator drops cached conversion rates.
type RateInvalidator interface {
	Flush(ctx context.Context) error
}

// RateSyncer copies exchanger quotes into the currencies table.
type RateSyncer struct {
	feed     RateFeed
	writer   RateWriter
	cache    RateInvalidator
	interval time.Duration
}

// SyncOption configures a RateSyncer.
type SyncOption func(*RateSyncer)

// WithCacheInvalidation flushes cache after every stored snapshot, so rates
// composed from the previous snapshot are not served until they expire.
func WithCacheInvalidation(cache RateInvalidator) SyncOption {
	return func(s *RateSyncer) {
		s.cache = cache
	}
}

// NewRateSyncer creates a RateSyncer.
func NewRateSyncer(feed RateFeed, writer RateWriter, interval time.Duration, opts ...SyncOption) *RateSyncer {
	s := &RateSyncer{feed: feed, writer: writer, interval: interval}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Sync pulls one snapshot of quotes and stores it. A quote of q units per
// USD is stored as rate_to_usd = 1/q. Non-positive quotes are skipped.
func (s *RateSyncer) Sync(ctx context.Context) error {
	quotes, err := s.feed.GetExchangeRates(ctx)
	if err != nil {
		logger.Log.Errorw("failed to fetch exchange rates", "error", err)
		return err
	}

	one := decimal.NewFromInt(1)
	rates := make(map[string]decimal.Decimal, len(quotes)+1)
	rates[pivotCurrency] = one
	for code, q := range quotes {
		code = strings.ToUpper(code)
		if !q.IsPositive() {
			logger.Log.Warnw("skipping non-positive quote", "currency", code, "quote", q)
			continue
		}
		if code == pivotCurrency {
			continue
		}
		rates[code] = one.DivRound(q, 10)
	}

	if err := s.writer.UpsertRatesToUSD(ctx, rates); err != nil {
		logger.Log.Errorw("failed to store exchange rates", "error", err)
		return err
	}
	if s.cache != nil {
		if err := s.cache.Flush(ctx); err != nil {
			logger.Log.Warnw("failed to flush rate cache", "error", err)
		}
	}
	logger.Log.Infow("exchange rates synced", "currencies", len(rates))
	return nil
}

// Run syncs immediately and then on every tick until ctx is done.
func (s *RateSyncer) Run(ctx context.Context) {
	if err := s.Sync(ctx); err != nil {
		logger.Log.Warnw("initial rate sync failed", "error", err)
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.Sync(ctx); err != nil {
				logger.Log.Warnw("rate sync failed", "error", err)
			}
		}
	}
}
