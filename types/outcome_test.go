package types

import (
	"testing"
)

func TestEligibilityDecision_Validate(t *testing.T) {
	tests := []struct {
		name     string
		decision EligibilityDecision
		wantErr  bool
	}{
		{
			name: "valid eligible decision",
			decision: EligibilityDecision{
				Candidate: ResourceCandidate{ID: "vol-001", Type: TypeVolume},
				Eligible:  true,
				Reason:    "state available with zero attachments",
			},
		},
		{
			name: "valid ineligible decision",
			decision: EligibilityDecision{
				Candidate: ResourceCandidate{ID: "archive-prod", Type: TypeBucket},
				Eligible:  false,
				Reason:    "versioning enabled",
			},
		},
		{
			name: "missing reason",
			decision: EligibilityDecision{
				Candidate: ResourceCandidate{ID: "vol-001"},
				Eligible:  true,
			},
			wantErr: true,
		},
		{
			name:     "missing candidate ID",
			decision: EligibilityDecision{Reason: "whatever"},
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.decision.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestScanSummary_Counts(t *testing.T) {
	summary := ScanSummary{
		Mode: "execute",
		Regions: []RegionResult{
			{
				Region: "us-east-1",
				Decisions: []EligibilityDecision{
					{Candidate: ResourceCandidate{ID: "vol-001"}, Eligible: true, Reason: "available"},
					{Candidate: ResourceCandidate{ID: "vol-002"}, Eligible: false, Reason: "in use"},
				},
				Outcomes: []DeletionOutcome{
					{Candidate: ResourceCandidate{ID: "vol-001"}, Result: ResultDeleted},
				},
			},
			{
				Region: "eu-west-1",
				Decisions: []EligibilityDecision{
					{Candidate: ResourceCandidate{ID: "eipalloc-1"}, Eligible: true, Reason: "unassociated"},
				},
				Outcomes: []DeletionOutcome{
					{Candidate: ResourceCandidate{ID: "eipalloc-1"}, Result: ResultFailed, Detail: "api error"},
				},
				Warnings: []string{"bucket enumeration failed"},
			},
		},
	}

	if got := summary.Scanned(); got != 3 {
		t.Errorf("Scanned() = %d, want 3", got)
	}
	if got := summary.EligibleCount(); got != 2 {
		t.Errorf("EligibleCount() = %d, want 2", got)
	}
	if got := summary.FailedCount(); got != 1 {
		t.Errorf("FailedCount() = %d, want 1", got)
	}
	if got := summary.WarningCount(); got != 1 {
		t.Errorf("WarningCount() = %d, want 1", got)
	}

	counts := summary.Counts()
	if counts[ResultDeleted] != 1 || counts[ResultFailed] != 1 {
		t.Errorf("Counts() = %v, want one deleted and one failed", counts)
	}
}
