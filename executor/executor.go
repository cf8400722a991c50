package executor

import (
	"context"
	"fmt"

	"github.com/yairfalse/kulu/config"
	"github.com/yairfalse/kulu/providers"
	"github.com/yairfalse/kulu/telemetry"
	"github.com/yairfalse/kulu/types"
)

// Gate enforces the dry-run/execute boundary. In dry-run mode no destroy
// call is ever issued. In execute mode every eligible candidate is
// re-verified with a fresh lookup immediately before its destroy call,
// closing the time-of-check/time-of-use gap.
type Gate struct {
	mode    config.Mode
	logger  *telemetry.Logger
	metrics *telemetry.Metrics
}

// NewGate creates a gate for the given mode. The mode must be explicit
// and valid; the gate refuses to exist otherwise.
func NewGate(mode config.Mode, logger *telemetry.Logger, metrics *telemetry.Metrics) (*Gate, error) {
	if !mode.Valid() {
		return nil, fmt.Errorf("refusing to run without an explicit mode, got %q", mode)
	}
	return &Gate{mode: mode, logger: logger, metrics: metrics}, nil
}

// Mode returns the configured mode
func (g *Gate) Mode() config.Mode {
	return g.mode
}

// Process walks the decision log for one adapter and produces a terminal
// outcome for every eligible candidate, in input order. Ineligible
// candidates produce no outcome; they stay in the decision log only.
//
// After cancellation no new destroy or lookup work is started; an
// in-flight destroy is allowed to complete.
func (g *Gate) Process(ctx context.Context, adapter providers.ResourceAdapter, decisions []types.EligibilityDecision) []types.DeletionOutcome {
	var outcomes []types.DeletionOutcome

	for _, decision := range decisions {
		if !decision.Eligible {
			continue
		}
		if ctx.Err() != nil {
			g.logger.WithContext(ctx).Warn().
				Str("resource_id", decision.Candidate.ID).
				Msg("cancelled, not starting further reclaim work")
			break
		}

		outcome := g.processOne(ctx, adapter, decision)
		outcomes = append(outcomes, outcome)

		g.metrics.RecordOutcome(ctx, outcome.Candidate.Region, string(outcome.Candidate.Type), string(outcome.Result))
		g.logger.LogOutcome(ctx, outcome.Candidate.Region, string(outcome.Candidate.Type),
			outcome.Candidate.ID, string(outcome.Result), outcome.Detail)
	}

	return outcomes
}

// processOne takes a single eligible candidate to its terminal state
func (g *Gate) processOne(ctx context.Context, adapter providers.ResourceAdapter, decision types.EligibilityDecision) types.DeletionOutcome {
	candidate := decision.Candidate

	if !g.mode.IsExecute() {
		return types.DeletionOutcome{
			Candidate: candidate,
			Result:    types.ResultDryRun,
			Detail:    decision.Reason,
		}
	}

	// Fresh single-candidate lookup right before the destroy call. The
	// scan-time check alone never authorizes a destroy.
	fresh, err := adapter.LookupOne(ctx, candidate.Region, candidate.ID)
	if err != nil {
		return types.DeletionOutcome{
			Candidate: candidate,
			Result:    types.ResultFailed,
			Detail:    fmt.Sprintf("re-verification failed: %v", err),
		}
	}
	if fresh == nil {
		return types.DeletionOutcome{
			Candidate: candidate,
			Result:    types.ResultSkippedRace,
			Detail:    "resource no longer present",
		}
	}
	if eligible, reason := adapter.IsEligible(*fresh); !eligible {
		return types.DeletionOutcome{
			Candidate: candidate,
			Result:    types.ResultSkippedRace,
			Detail:    reason,
		}
	}

	// Destroys are never retried: a failed destroy is reported, not
	// masked as transient.
	if err := adapter.Destroy(ctx, candidate); err != nil {
		return types.DeletionOutcome{
			Candidate: candidate,
			Result:    types.ResultFailed,
			Detail:    err.Error(),
		}
	}

	return types.DeletionOutcome{
		Candidate: candidate,
		Result:    types.ResultDeleted,
		Detail:    decision.Reason,
	}
}
