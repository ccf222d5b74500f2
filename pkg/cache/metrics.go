package cache

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var meter = otel.Meter("wordlecalc.cache")

var (
	cacheHits          metric.Int64Counter
	cacheMisses        metric.Int64Counter
	cacheInvalidations metric.Int64Counter
	cacheStoreErrors   metric.Int64Counter
	cacheGetLatency    metric.Float64Histogram

	metricsOnce sync.Once
	metricsErr  error
)

// initMetrics initializes the metrics. Safe to call multiple times.
func initMetrics() error {
	metricsOnce.Do(func() {
		var err error

		cacheHits, err = meter.Int64Counter(
			"history_cache_hits_total",
			metric.WithDescription("Total number of next-guess cache hits"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		cacheMisses, err = meter.Int64Counter(
			"history_cache_misses_total",
			metric.WithDescription("Total number of next-guess cache misses"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		cacheInvalidations, err = meter.Int64Counter(
			"history_cache_invalidations_total",
			metric.WithDescription("Total number of entries removed by Invalidate"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		cacheStoreErrors, err = meter.Int64Counter(
			"history_cache_store_errors_total",
			metric.WithDescription("Store failures treated as a cold cache"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		cacheGetLatency, err = meter.Float64Histogram(
			"history_cache_get_duration_seconds",
			metric.WithDescription("Duration of cache get operations"),
			metric.WithUnit("s"),
		)
		if err != nil {
			metricsErr = err
			return
		}
	})
	return metricsErr
}

func recordHit(ctx context.Context) {
	if err := initMetrics(); err != nil {
		return
	}
	cacheHits.Add(ctx, 1)
}

func recordMiss(ctx context.Context) {
	if err := initMetrics(); err != nil {
		return
	}
	cacheMisses.Add(ctx, 1)
}

func recordInvalidation(ctx context.Context) {
	if err := initMetrics(); err != nil {
		return
	}
	cacheInvalidations.Add(ctx, 1)
}

func recordStoreError(ctx context.Context, op string) {
	if err := initMetrics(); err != nil {
		return
	}
	cacheStoreErrors.Add(ctx, 1, metric.WithAttributes(attribute.String("op", op)))
}

func recordGetLatency(ctx context.Context, d time.Duration, hit bool) {
	if err := initMetrics(); err != nil {
		return
	}
	cacheGetLatency.Record(ctx, d.Seconds(), metric.WithAttributes(attribute.Bool("hit", hit)))
}
