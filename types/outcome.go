package types

import (
	"fmt"
	"time"
)

// EligibilityDecision records the predicate verdict for one candidate.
// Reason is mandatory even when eligible, so the audit log always states
// which rule passed or failed.
type EligibilityDecision struct {
	Candidate ResourceCandidate `json:"candidate"`
	Eligible  bool              `json:"eligible"`
	Reason    string            `json:"reason"`
}

// Validate ensures the decision carries its reason
func (d *EligibilityDecision) Validate() error {
	if d.Candidate.ID == "" {
		return fmt.Errorf("decision candidate ID cannot be empty")
	}
	if d.Reason == "" {
		return fmt.Errorf("decision reason cannot be empty")
	}
	return nil
}

// Result is the terminal state of an eligible candidate
type Result string

const (
	// ResultDryRun means the destroy call was suppressed by dry-run mode
	ResultDryRun Result = "dry_run"
	// ResultDeleted means the destroy call succeeded after re-verification
	ResultDeleted Result = "deleted"
	// ResultSkippedRace means re-verification found the candidate no longer
	// eligible (for example a volume got attached between scan and delete)
	ResultSkippedRace Result = "skipped_race"
	// ResultFailed means the destroy call failed for a reason other than
	// the resource already being gone
	ResultFailed Result = "failed"
)

// DeletionOutcome is the per-candidate record produced by the gate
type DeletionOutcome struct {
	Candidate ResourceCandidate `json:"candidate"`
	Result    Result            `json:"result"`
	Detail    string            `json:"detail,omitempty"`
}

// RegionResult holds everything produced for one region, in discovery order
type RegionResult struct {
	Region    string                `json:"region"`
	Decisions []EligibilityDecision `json:"decisions,omitempty"`
	Outcomes  []DeletionOutcome     `json:"outcomes,omitempty"`
	Warnings  []string              `json:"warnings,omitempty"`
}

// ScanSummary aggregates one full run. Regions are ordered by region
// enumeration order, never by completion order.
type ScanSummary struct {
	Mode       string         `json:"mode"`
	Regions    []RegionResult `json:"regions"`
	StartedAt  time.Time      `json:"started_at"`
	FinishedAt time.Time      `json:"finished_at"`
}

// Counts returns total outcomes by result kind
func (s *ScanSummary) Counts() map[Result]int {
	counts := make(map[Result]int)
	for _, region := range s.Regions {
		for _, o := range region.Outcomes {
			counts[o.Result]++
		}
	}
	return counts
}

// Scanned returns the total number of candidates examined
func (s *ScanSummary) Scanned() int {
	var n int
	for _, region := range s.Regions {
		n += len(region.Decisions)
	}
	return n
}

// EligibleCount returns how many candidates passed their predicate
func (s *ScanSummary) EligibleCount() int {
	var n int
	for _, region := range s.Regions {
		for _, d := range region.Decisions {
			if d.Eligible {
				n++
			}
		}
	}
	return n
}

// FailedCount returns how many destroy calls failed
func (s *ScanSummary) FailedCount() int {
	return s.Counts()[ResultFailed]
}

// WarningCount returns how many enumeration failures were isolated
func (s *ScanSummary) WarningCount() int {
	var n int
	for _, region := range s.Regions {
		n += len(region.Warnings)
	}
	return n
}
