package filter

import (
	"github.com/yairfalse/kulu/providers"
	"github.com/yairfalse/kulu/types"
)

// Evaluate applies the adapter's eligibility predicate to each candidate.
// Ineligible candidates are retained in the decision log, never silently
// dropped, so the summary can report "scanned N, eligible M".
func Evaluate(adapter providers.ResourceAdapter, candidates []types.ResourceCandidate) []types.EligibilityDecision {
	decisions := make([]types.EligibilityDecision, 0, len(candidates))
	for _, candidate := range candidates {
		eligible, reason := adapter.IsEligible(candidate)
		decisions = append(decisions, types.EligibilityDecision{
			Candidate: candidate,
			Eligible:  eligible,
			Reason:    reason,
		})
	}
	return decisions
}
