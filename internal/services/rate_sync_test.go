package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRateSyncer_Sync(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	feed := NewMockRateFeed(ctrl)
	writer := NewMockRateWriter(ctrl)

	feed.EXPECT().GetExchangeRates(ctx).Return(map[string]decimal.Decimal{
		"usd": decimal.NewFromInt(1),
		"RUB": dec("80"),
		"EUR": dec("0.8"),
		"BAD": decimal.Zero,
	}, nil)
	writer.EXPECT().UpsertRatesToUSD(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, rates map[string]decimal.Decimal) error {
		assert.Len(t, rates, 3)
		assert.Equal(t, "1", rates["USD"].String())
		assert.Equal(t, "0.0125", rates["RUB"].String())
		assert.Equal(t, "1.25", rates["EUR"].String())
		assert.NotContains(t, rates, "BAD")
		return nil
	})

	assert.NoError(t, NewRateSyncer(feed, writer, time.Minute).Sync(ctx))
}

func TestRateSyncer_SyncErrors(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	feed := NewMockRateFeed(ctrl)
	writer := NewMockRateWriter(ctrl)
	syncer := NewRateSyncer(feed, writer, time.Minute)

	feed.EXPECT().GetExchangeRates(ctx).Return(nil, errors.New("exchanger unavailable"))
	assert.Error(t, syncer.Sync(ctx))

	feed.EXPECT().GetExchangeRates(ctx).Return(map[string]decimal.Decimal{"EUR": dec("0.9")}, nil)
	writer.EXPECT().UpsertRatesToUSD(ctx, gomock.Any()).Return(errors.New("db down"))
	assert.Error(t, syncer.Sync(ctx))
}

func TestRateSyncer_RunStopsWithContext(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	feed := NewMockRateFeed(ctrl)
	writer := NewMockRateWriter(ctrl)

	feed.EXPECT().GetExchangeRates(gomock.Any()).Return(map[string]decimal.Decimal{}, nil).MinTimes(1)
	writer.EXPECT().UpsertRatesToUSD(gomock.Any(), gomock.Any()).Return(nil).MinTimes(1)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	done := make(chan struct{})
	go func() {
		NewRateSyncer(feed, writer, 10*time.Millisecond).Run(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after context cancellation")
	}
}

func TestRateSyncer_FlushesCache(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	feed := NewMockRateFeed(ctrl)
	writer := NewMockRateWriter(ctrl)
	cache := NewMockRateInvalidator(ctrl)
	syncer := NewRateSyncer(feed, writer, time.Minute, WithCacheInvalidation(cache))

	gomock.InOrder(
		feed.EXPECT().GetExchangeRates(ctx).Return(map[string]decimal.Decimal{"EUR": dec("0.8")}, nil),
		writer.EXPECT().UpsertRatesToUSD(ctx, gomock.Any()).Return(nil),
		cache.EXPECT().Flush(ctx).Return(errors.New("redis down")),
	)
	assert.NoError(t, syncer.Sync(ctx), "a cache failure does not fail the sync")

	feed.EXPECT().GetExchangeRates(ctx).Return(map[string]decimal.Decimal{"EUR": dec("0.8")}, nil)
	writer.EXPECT().UpsertRatesToUSD(ctx, gomock.Any()).Return(errors.New("db down"))
	assert.Error(t, syncer.Sync(ctx))
}
