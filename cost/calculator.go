package cost

import (
	"github.com/yairfalse/kulu/types"
)

// Built-in monthly estimates, USD. Rough on purpose: the summary needs a
// ranking signal, not a bill.
const (
	// AWS charges for an allocated but unattached Elastic IP
	eipMonthlyUSD = 3.65
	// gp3 storage per GiB-month; used as the baseline for all volume types
	volumeGiBMonthlyUSD = 0.08
	// An empty bucket itself costs nothing to keep
	bucketMonthlyUSD = 0.0
)

// Calculator estimates the monthly spend a reclaimed candidate frees up
type Calculator struct {
	rates map[types.ResourceType]float64
}

// NewCalculator creates a calculator. Overrides replace the built-in
// per-type rates, keyed by resource type.
func NewCalculator(overrides map[string]float64) *Calculator {
	rates := map[types.ResourceType]float64{
		types.TypeBucket:    bucketMonthlyUSD,
		types.TypeVolume:    volumeGiBMonthlyUSD,
		types.TypeElasticIP: eipMonthlyUSD,
	}
	for key, rate := range overrides {
		rates[types.ResourceType(key)] = rate
	}
	return &Calculator{rates: rates}
}

// MonthlyEstimate returns the estimated monthly cost of one candidate.
// Volumes scale with size; the other types are flat per resource.
func (c *Calculator) MonthlyEstimate(candidate types.ResourceCandidate) float64 {
	rate := c.rates[candidate.Type]
	if candidate.Type == types.TypeVolume {
		return rate * float64(candidate.IntAttr("size_gb"))
	}
	return rate
}

// Savings folds the estimated monthly savings over a summary. Deleted and
// dry-run-reported candidates both count: the dry-run figure is the point
// of running a preview.
func (c *Calculator) Savings(summary *types.ScanSummary) float64 {
	var total float64
	for _, region := range summary.Regions {
		for _, outcome := range region.Outcomes {
			switch outcome.Result {
			case types.ResultDeleted, types.ResultDryRun:
				total += c.MonthlyEstimate(outcome.Candidate)
			}
		}
	}
	return total
}
