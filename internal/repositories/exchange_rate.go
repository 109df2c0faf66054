package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sbilibin2017/gw-ledger/internal/logger"
	"github.com/sbilibin2017/gw-ledger/internal/xerrors"
	"github.com/shopspring/decimal"
)

const (
	rateKeyPrefix = "ledger:rate:"
	flushBatch    = 100
)

// RateCacheRepository caches conversion rates in Redis
type RateCacheRepository struct {
	client *redis.Client
	exp    time.Duration // expiration duration for cached rates
}

// NewRateCacheRepository creates a new repository instance with the given TTL
func NewRateCacheRepository(client *redis.Client, expiration time.Duration) *RateCacheRepository {
	return &RateCacheRepository{
		client: client,
		exp:    expiration,
	}
}

func rateKey(base, target string) string {
	return rateKeyPrefix + strings.ToUpper(base) + ":" + strings.ToUpper(target)
}

// GetRate returns the cached base->target rate or ErrNotFound.
func (r *RateCacheRepository) GetRate(ctx context.Context, base, target string) (decimal.Decimal, error) {
	key := rateKey(base, target)

	val, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		logger.Log.Debugw("rate cache miss", "key", key)
		return decimal.Zero, fmt.Errorf("%w: cached rate %s->%s", xerrors.ErrNotFound, base, target)
	}
	if err != nil {
		logger.Log.Errorw("rate cache get", "key", key, "error", err)
		return decimal.Zero, err
	}

	rate, err := decimal.NewFromString(val)
	if err != nil {
		logger.Log.Warnw("corrupt cached rate, dropping", "key", key, "value", val, "error", err)
		r.client.Del(ctx, key)
		return decimal.Zero, fmt.Errorf("%w: cached rate %s->%s unreadable", xerrors.ErrNotFound, base, target)
	}

	logger.Log.Debugw("rate cache hit", "key", key, "rate", rate)
	return rate, nil
}

// SetRate caches a base->target rate with expiration
func (r *RateCacheRepository) SetRate(ctx context.Context, base, target string, rate decimal.Decimal) error {
	key := rateKey(base, target)
	err := r.client.Set(ctx, key, rate.String(), r.exp).Err()
	logger.Log.Infow("rate cache set", "key", key, "rate", rate, "ttl", r.exp, "error", err)
	return err
}

// Flush deletes every cached rate. Keys are walked with SCAN so Redis is not
// blocked on large keyspaces.
func (r *RateCacheRepository) Flush(ctx context.Context) error {
	var (
		cursor  uint64
		deleted int64
	)
	for {
		keys, next, err := r.client.Scan(ctx, cursor, rateKeyPrefix+"*", flushBatch).Result()
		if err != nil {
			logger.Log.Errorw("rate cache flush", "deleted", deleted, "error", err)
			return err
		}
		if len(keys) > 0 {
			n, err := r.client.Del(ctx, keys...).Result()
			if err != nil {
				logger.Log.Errorw("rate cache flush", "deleted", deleted, "error", err)
				return err
			}
			deleted += n
		}
		if next == 0 {
			break
		}
		cursor = next
	}
	logger.Log.Infow("rate cache flushed", "deleted", deleted)
	return nil
}
