package scanner

import (
	"context"
	"sync"

	"github.com/yairfalse/kulu/providers"
	"github.com/yairfalse/kulu/telemetry"
	"github.com/yairfalse/kulu/types"
)

// RegionScan holds one region's enumeration results, grouped per adapter
// in registration order
type RegionScan struct {
	Region     string
	Candidates [][]types.ResourceCandidate // indexed by adapter position
	Warnings   []string
}

// Scanner enumerates candidates for every registered adapter in one region.
// Adapters touch disjoint resource namespaces, so they run concurrently.
type Scanner struct {
	adapters []providers.ResourceAdapter
	logger   *telemetry.Logger
	metrics  *telemetry.Metrics
}

// NewScanner creates a scanner over the registered adapters
func NewScanner(adapters []providers.ResourceAdapter, logger *telemetry.Logger, metrics *telemetry.Metrics) *Scanner {
	return &Scanner{adapters: adapters, logger: logger, metrics: metrics}
}

// Adapters returns the registered adapters in registration order
func (s *Scanner) Adapters() []providers.ResourceAdapter {
	return s.adapters
}

// ScanRegion enumerates all adapters in one region. A failed enumeration
// becomes a warning; the rest of the region still produces results.
func (s *Scanner) ScanRegion(ctx context.Context, region string) *RegionScan {
	scan := &RegionScan{
		Region:     region,
		Candidates: make([][]types.ResourceCandidate, len(s.adapters)),
	}

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)

	for i, adapter := range s.adapters {
		wg.Add(1)
		go func(slot int, adapter providers.ResourceAdapter) {
			defer wg.Done()

			candidates, err := adapter.Enumerate(ctx, region)
			if err != nil {
				scanErr := &providers.ScanError{Region: region, Type: adapter.Type(), Err: err}
				s.logger.LogScanError(ctx, region, string(adapter.Type()), err)
				s.metrics.RecordScanError(ctx, region, string(adapter.Type()))

				mu.Lock()
				scan.Warnings = append(scan.Warnings, scanErr.Error())
				mu.Unlock()
				return
			}

			s.metrics.RecordScanned(ctx, region, string(adapter.Type()), len(candidates))
			s.logger.WithContext(ctx).Debug().
				Str("region", region).
				Str("resource_type", string(adapter.Type())).
				Int("count", len(candidates)).
				Msg("enumeration complete")

			mu.Lock()
			scan.Candidates[slot] = candidates
			mu.Unlock()
		}(i, adapter)
	}

	wg.Wait()
	return scan
}
