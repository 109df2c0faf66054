package services

//go:generate mockgen -source=rate.go -destination=rate_mock.go -package=services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sbilibin2017/gw-ledger/internal/logger"
	"github.com/sbilibin2017/gw-ledger/internal/models"
	"github.com/sbilibin2017/gw-ledger/internal/xerrors"
	"github.com/shopspring/decimal"
)

// pivotCurrency is the currency every stored rate_to_usd is expressed in.
const pivotCurrency = "USD"

// RateCache caches resolved rates.
type RateCache interface {
	GetRate(ctx context.Context, base, target string) (decimal.Decimal, error)
	SetRate(ctx context.Context, base, target string, rate decimal.Decimal) error
}

// RateStore reads persisted conversion rates.
type RateStore interface {
	GetDirectRate(ctx context.Context, base, target string) (decimal.Decimal, error)
	GetRateToUSD(ctx context.Context, code string) (decimal.Decimal, error)
	List(ctx context.Context) ([]models.Currency, error)
}

// LiveRateSource quotes a currency pair from the upstream exchanger.
type LiveRateSource interface {
	GetExchangeRateForCurrency(ctx context.Context, fromCurrency, toCurrency string) (decimal.Decimal, error)
}

// DirectRateWriter persists a quoted pair so later lookups hit the store.
type DirectRateWriter interface {
	UpsertDirectRate(ctx context.Context, base, target string, rate decimal.Decimal) error
}

// RateService resolves the multiplier converting base into target.
type RateService struct {
	store   RateStore
	cache   RateCache
	timeout time.Duration

	live       LiveRateSource
	liveWriter DirectRateWriter
}

// RateOption configures a RateService.
type RateOption func(*RateService)

// WithLiveSource asks src for pairs the store cannot resolve and records the
// answer through writer. writer may be nil.
func WithLiveSource(src LiveRateSource, writer DirectRateWriter) RateOption {
	return func(s *RateService) {
		s.live = src
		s.liveWriter = writer
	}
}

// NewRateService creates a RateService. cache may be nil.
func NewRateService(store RateStore, cache RateCache, timeout time.Duration, opts ...RateOption) *RateService {
	s := &RateService{store: store, cache: cache, timeout: timeout}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListCurrencies returns every known currency with its USD rate.
func (s *RateService) ListCurrencies(ctx context.Context) ([]models.Currency, error) {
	currencies, err := s.store.List(ctx)
	if err != nil {
		logger.Log.Errorw("failed to list currencies", "error", err)
		return nil, err
	}
	return currencies, nil
}

// GetRate returns the rate r such that amount*r is the target amount.
// Lookup order: cache, direct conversion row, composition through USD and
// finally the live source when one is configured.
// Any miss or lookup failure is reported as ErrConversionUnavailable.
func (s *RateService) GetRate(ctx context.Context, base, target string) (decimal.Decimal, error) {
	base, target = strings.ToUpper(base), strings.ToUpper(target)
	if base == target {
		return decimal.NewFromInt(1), nil
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	if s.cache != nil {
		rate, err := s.cache.GetRate(ctx, base, target)
		if err == nil && rate.IsPositive() {
			return rate, nil
		}
		if err != nil && !errors.Is(err, xerrors.ErrNotFound) {
			logger.Log.Warnw("rate cache unavailable", "base", base, "target", target, "error", err)
		}
	}

	rate, err := s.lookup(ctx, base, target)
	if err != nil {
		logger.Log.Errorw("conversion rate unavailable", "base", base, "target", target, "error", err)
		return decimal.Zero, fmt.Errorf("%w: %s->%s: %w", xerrors.ErrConversionUnavailable, base, target, err)
	}
	if !rate.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: %s->%s: non-positive rate %s", xerrors.ErrConversionUnavailable, base, target, rate)
	}

	if s.cache != nil {
		if err := s.cache.SetRate(ctx, base, target, rate); err != nil {
			logger.Log.Warnw("failed to cache rate", "base", base, "target", target, "error", err)
		}
	}
	return rate, nil
}

func (s *RateService) lookup(ctx context.Context, base, target string) (decimal.Decimal, error) {
	rate, err := s.stored(ctx, base, target)
	if err == nil || s.live == nil || !errors.Is(err, xerrors.ErrNotFound) {
		return rate, err
	}

	rate, err = s.live.GetExchangeRateForCurrency(ctx, base, target)
	if err != nil {
		return decimal.Zero, err
	}
	if rate.IsPositive() && s.liveWriter != nil {
		if err := s.liveWriter.UpsertDirectRate(ctx, base, target, rate); err != nil {
			logger.Log.Warnw("failed to store live rate", "base", base, "target", target, "error", err)
		}
	}
	return rate, nil
}

func (s *RateService) stored(ctx context.Context, base, target string) (decimal.Decimal, error) {
	rate, err := s.store.GetDirectRate(ctx, base, target)
	if err == nil {
		return rate, nil
	}
	if !errors.Is(err, xerrors.ErrNotFound) {
		return decimal.Zero, err
	}

	baseUSD, err := s.toUSD(ctx, base)
	if err != nil {
		return decimal.Zero, err
	}
	targetUSD, err := s.toUSD(ctx, target)
	if err != nil {
		return decimal.Zero, err
	}
	if !targetUSD.IsPositive() {
		return decimal.Zero, fmt.Errorf("%s has no usable USD rate", target)
	}
	return baseUSD.DivRound(targetUSD, 8), nil
}

func (s *RateService) toUSD(ctx context.Context, code string) (decimal.Decimal, error) {
	if code == pivotCurrency {
		return decimal.NewFromInt(1), nil
	}
	return s.store.GetRateToUSD(ctx, code)
}
