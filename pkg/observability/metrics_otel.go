package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// OTelMetrics holds OpenTelemetry metric instruments for the search
// domain. They export through the global MeterProvider alongside the
// Prometheus surface; transport-level HTTP metrics come from otelhttp.
type OTelMetrics struct {
	resolutionsTotal      metric.Int64Counter
	resolutionDuration    metric.Float64Histogram
	suggestionsTotal      metric.Int64Counter
	suggestionResultCount metric.Int64Histogram
	cacheLookupsTotal     metric.Int64Counter
}

// NewOTelMetrics creates the search metric instruments on the global
// meter.
func NewOTelMetrics() (*OTelMetrics, error) {
	meter := otel.Meter("github.com/swxiao/jenkins")

	m := &OTelMetrics{}
	var err error

	m.resolutionsTotal, err = meter.Int64Counter(
		"search.resolutions",
		metric.WithDescription("Total number of exact-match resolutions"),
		metric.WithUnit("{resolution}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resolutions counter: %w", err)
	}

	m.resolutionDuration, err = meter.Float64Histogram(
		"search.resolution.duration",
		metric.WithDescription("Exact-match resolution duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resolution duration histogram: %w", err)
	}

	m.suggestionsTotal, err = meter.Int64Counter(
		"search.suggestions",
		metric.WithDescription("Total number of suggestion queries"),
		metric.WithUnit("{query}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create suggestions counter: %w", err)
	}

	m.suggestionResultCount, err = meter.Int64Histogram(
		"search.suggestion.results",
		metric.WithDescription("Number of suggestions returned per query"),
		metric.WithUnit("{item}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create suggestion result histogram: %w", err)
	}

	m.cacheLookupsTotal, err = meter.Int64Counter(
		"search.cache.lookups",
		metric.WithDescription("Total number of suggestion cache lookups"),
		metric.WithUnit("{lookup}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create cache lookups counter: %w", err)
	}

	return m, nil
}

// RecordResolution records one exact-match resolution. Safe on a nil
// receiver.
func (m *OTelMetrics) RecordResolution(ctx context.Context, outcome string, duration time.Duration) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("outcome", outcome))
	m.resolutionsTotal.Add(ctx, 1, attrs)
	m.resolutionDuration.Record(ctx, duration.Seconds(), attrs)
}

// RecordSuggestion records one suggestion query and its result size.
func (m *OTelMetrics) RecordSuggestion(ctx context.Context, resultCount int) {
	if m == nil {
		return
	}
	m.suggestionsTotal.Add(ctx, 1)
	m.suggestionResultCount.Record(ctx, int64(resultCount))
}

// RecordCacheLookup records one suggestion cache lookup with its tier and
// outcome.
func (m *OTelMetrics) RecordCacheLookup(ctx context.Context, tier string, hit bool) {
	if m == nil {
		return
	}
	m.cacheLookupsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("tier", tier),
		attribute.Bool("hit", hit),
	))
}
