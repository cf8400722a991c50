package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics holds the reclaim pipeline instruments
type Metrics struct {
	CandidatesScanned metric.Int64Counter
	Outcomes          metric.Int64Counter
	ScanErrors        metric.Int64Counter
	RegionDuration    metric.Float64Histogram
}

// InitMetrics initializes pipeline metrics on the given meter
func InitMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}
	var err error

	m.CandidatesScanned, err = meter.Int64Counter(
		"kulu.candidates.scanned.total",
		metric.WithDescription("Total number of resource candidates discovered"),
		metric.WithUnit("candidates"),
	)
	if err != nil {
		return nil, err
	}

	m.Outcomes, err = meter.Int64Counter(
		"kulu.outcomes.total",
		metric.WithDescription("Total number of terminal candidate outcomes"),
		metric.WithUnit("outcomes"),
	)
	if err != nil {
		return nil, err
	}

	m.ScanErrors, err = meter.Int64Counter(
		"kulu.scan.errors.total",
		metric.WithDescription("Total number of isolated enumeration failures"),
		metric.WithUnit("errors"),
	)
	if err != nil {
		return nil, err
	}

	m.RegionDuration, err = meter.Float64Histogram(
		"kulu.region.scan.duration",
		metric.WithDescription("Wall time spent processing one region"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	return m, nil
}

// NewMetrics initializes pipeline metrics on the global meter provider
func NewMetrics() (*Metrics, error) {
	return InitMetrics(otel.GetMeterProvider().Meter("kulu"))
}

// RecordScanned records discovered candidates for one region and type
func (m *Metrics) RecordScanned(ctx context.Context, region, resourceType string, count int) {
	if m == nil {
		return
	}
	m.CandidatesScanned.Add(ctx, int64(count), metric.WithAttributes(
		attribute.String("region", region),
		attribute.String("resource_type", resourceType),
	))
}

// RecordOutcome records one terminal candidate outcome
func (m *Metrics) RecordOutcome(ctx context.Context, region, resourceType, result string) {
	if m == nil {
		return
	}
	m.Outcomes.Add(ctx, 1, metric.WithAttributes(
		attribute.String("region", region),
		attribute.String("resource_type", resourceType),
		attribute.String("result", result),
	))
}

// RecordScanError records one isolated enumeration failure
func (m *Metrics) RecordScanError(ctx context.Context, region, resourceType string) {
	if m == nil {
		return
	}
	m.ScanErrors.Add(ctx, 1, metric.WithAttributes(
		attribute.String("region", region),
		attribute.String("resource_type", resourceType),
	))
}

// RecordRegionDuration records wall time for one region in milliseconds
func (m *Metrics) RecordRegionDuration(ctx context.Context, region string, ms float64) {
	if m == nil {
		return
	}
	m.RegionDuration.Record(ctx, ms, metric.WithAttributes(
		attribute.String("region", region),
	))
}
