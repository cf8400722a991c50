package orchestrator

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/yairfalse/kulu/executor"
	"github.com/yairfalse/kulu/filter"
	"github.com/yairfalse/kulu/providers"
	"github.com/yairfalse/kulu/scanner"
	"github.com/yairfalse/kulu/telemetry"
	"github.com/yairfalse/kulu/types"
)

// Orchestrator coordinates the scan → filter → verify → destroy pipeline
// across regions. Regions are independent and run on a bounded worker
// pool; the summary is assembled in region enumeration order regardless
// of completion order.
type Orchestrator struct {
	regions     providers.RegionEnumerator
	scanner     *scanner.Scanner
	gate        *executor.Gate
	concurrency int
	logger      *telemetry.Logger
	metrics     *telemetry.Metrics
}

// New creates an orchestrator over the given collaborators
func New(regions providers.RegionEnumerator, scan *scanner.Scanner, gate *executor.Gate, concurrency int, logger *telemetry.Logger, metrics *telemetry.Metrics) *Orchestrator {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Orchestrator{
		regions:     regions,
		scanner:     scan,
		gate:        gate,
		concurrency: concurrency,
		logger:      logger,
		metrics:     metrics,
	}
}

// Run executes one full pipeline invocation. Nothing persists afterwards;
// each run starts from a fresh scan.
func (o *Orchestrator) Run(ctx context.Context) (*types.ScanSummary, error) {
	startedAt := time.Now()

	regionList, err := o.regions.ListRegions(ctx)
	if err != nil {
		return nil, fmt.Errorf("region discovery failed: %w", err)
	}

	o.logger.WithContext(ctx).Info().
		Int("regions", len(regionList)).
		Str("mode", string(o.gate.Mode())).
		Msg("starting reclaim run")

	results := make([]types.RegionResult, len(regionList))
	sem := make(chan struct{}, o.concurrency)
	var wg sync.WaitGroup

	for i, region := range regionList {
		wg.Add(1)
		go func(slot int, region string) {
			defer wg.Done()

			// No new enumeration work after cancellation
			if ctx.Err() != nil {
				results[slot] = types.RegionResult{
					Region:   region,
					Warnings: []string{"cancelled before scan started"},
				}
				return
			}

			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				results[slot] = types.RegionResult{
					Region:   region,
					Warnings: []string{"cancelled before scan started"},
				}
				return
			}

			results[slot] = o.processRegion(ctx, region)
		}(i, region)
	}

	wg.Wait()

	summary := &types.ScanSummary{
		Mode:       string(o.gate.Mode()),
		Regions:    results,
		StartedAt:  startedAt,
		FinishedAt: time.Now(),
	}

	o.logger.WithContext(ctx).Info().
		Int("scanned", summary.Scanned()).
		Int("eligible", summary.EligibleCount()).
		Int("failed", summary.FailedCount()).
		Int("warnings", summary.WarningCount()).
		Msg("reclaim run complete")

	return summary, nil
}

// processRegion runs scan, filter, and gate for one region. Each worker
// writes only its own slot, so the summary needs no locking.
func (o *Orchestrator) processRegion(ctx context.Context, region string) types.RegionResult {
	start := time.Now()

	scan := o.scanner.ScanRegion(ctx, region)
	result := types.RegionResult{
		Region:   region,
		Warnings: scan.Warnings,
	}

	for slot, adapter := range o.scanner.Adapters() {
		decisions := filter.Evaluate(adapter, scan.Candidates[slot])
		result.Decisions = append(result.Decisions, decisions...)

		outcomes := o.gate.Process(ctx, adapter, decisions)
		result.Outcomes = append(result.Outcomes, outcomes...)
	}

	if len(result.Decisions) == 0 && len(result.Warnings) == 0 {
		o.logger.WithContext(ctx).Debug().
			Str("region", region).
			Msg("no candidates found")
	}

	o.metrics.RecordRegionDuration(ctx, region, float64(time.Since(start).Milliseconds()))
	return result
}
