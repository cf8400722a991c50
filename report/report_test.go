package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yairfalse/kulu/cost"
	"github.com/yairfalse/kulu/types"
)

func sampleSummary() *types.ScanSummary {
	return &types.ScanSummary{
		Mode: "dry-run",
		Regions: []types.RegionResult{
			{
				Region: "us-east-1",
				Decisions: []types.EligibilityDecision{
					{Candidate: types.ResourceCandidate{ID: "logs-2019", Type: types.TypeBucket}, Eligible: true, Reason: "empty with versioning not enabled"},
					{Candidate: types.ResourceCandidate{ID: "archive-prod", Type: types.TypeBucket}, Eligible: false, Reason: "versioning enabled"},
					{Candidate: types.ResourceCandidate{ID: "eipalloc-1", Type: types.TypeElasticIP}, Eligible: true, Reason: "no association"},
				},
				Outcomes: []types.DeletionOutcome{
					{Candidate: types.ResourceCandidate{ID: "logs-2019", Type: types.TypeBucket}, Result: types.ResultDryRun, Detail: "empty with versioning not enabled"},
					{Candidate: types.ResourceCandidate{ID: "eipalloc-1", Type: types.TypeElasticIP}, Result: types.ResultDryRun, Detail: "no association"},
				},
			},
			{
				Region:   "eu-west-1",
				Warnings: []string{"scan eu-west-1/volume: throttled"},
			},
		},
	}
}

func TestReporter_Totals(t *testing.T) {
	reporter := NewReporter(cost.NewCalculator(nil), &bytes.Buffer{})

	totals := reporter.Totals(sampleSummary())

	assert.Equal(t, 3, totals.Scanned)
	assert.Equal(t, 2, totals.Eligible)
	assert.Equal(t, 2, totals.ByResult[types.ResultDryRun])
	assert.Equal(t, 1, totals.Warnings)
	assert.InDelta(t, 3.65, totals.MonthlySavings, 0.001)
}

func TestReporter_RenderTableListsEveryCandidate(t *testing.T) {
	var buf bytes.Buffer
	reporter := NewReporter(cost.NewCalculator(nil), &buf)

	require.NoError(t, reporter.RenderTable(sampleSummary()))
	output := buf.String()

	// Dry-run must list every candidate that would be affected
	assert.Contains(t, output, "logs-2019")
	assert.Contains(t, output, "eipalloc-1")
	assert.Contains(t, output, "Scanned 3 candidate(s), 2 eligible")
	assert.Contains(t, output, "throttled")
	assert.Contains(t, output, "$3.65")
	// Ineligible candidates are not in the affected listing
	assert.False(t, strings.Contains(output, "archive-prod"))
}

func TestReporter_RenderJSON(t *testing.T) {
	var buf bytes.Buffer
	reporter := NewReporter(cost.NewCalculator(nil), &buf)

	require.NoError(t, reporter.RenderJSON(sampleSummary()))

	var decoded struct {
		Summary types.ScanSummary `json:"summary"`
		Totals  Totals            `json:"totals"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "dry-run", decoded.Summary.Mode)
	assert.Equal(t, 3, decoded.Totals.Scanned)
	assert.Len(t, decoded.Summary.Regions, 2)
}
