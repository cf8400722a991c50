package report

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/yairfalse/kulu/cost"
	"github.com/yairfalse/kulu/types"
)

// Totals is the aggregated view of one run
type Totals struct {
	Scanned        int                  `json:"scanned"`
	Eligible       int                  `json:"eligible"`
	ByResult       map[types.Result]int `json:"by_result"`
	Warnings       int                  `json:"warnings"`
	MonthlySavings float64              `json:"estimated_monthly_savings_usd"`
}

// Reporter folds deletion outcomes into a human or machine readable
// summary. It has no effect on the engine's correctness.
type Reporter struct {
	calc *cost.Calculator
	out  io.Writer
}

// NewReporter creates a reporter writing to out
func NewReporter(calc *cost.Calculator, out io.Writer) *Reporter {
	return &Reporter{calc: calc, out: out}
}

// Totals aggregates a summary into counts and savings
func (r *Reporter) Totals(summary *types.ScanSummary) Totals {
	return Totals{
		Scanned:        summary.Scanned(),
		Eligible:       summary.EligibleCount(),
		ByResult:       summary.Counts(),
		Warnings:       summary.WarningCount(),
		MonthlySavings: r.calc.Savings(summary),
	}
}

// RenderTable writes the candidate listing and totals as a table. In
// dry-run mode this listing is the explicit preview of every candidate
// that would be affected.
func (r *Reporter) RenderTable(summary *types.ScanSummary) error {
	w := tabwriter.NewWriter(r.out, 0, 4, 2, ' ', 0)

	fmt.Fprintln(w, "REGION\tTYPE\tRESOURCE\tRESULT\tDETAIL")
	for _, region := range summary.Regions {
		for _, o := range region.Outcomes {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				region.Region, o.Candidate.Type, o.Candidate.ID, o.Result, o.Detail)
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}

	totals := r.Totals(summary)
	fmt.Fprintln(r.out)
	fmt.Fprintf(r.out, "Mode: %s\n", summary.Mode)
	fmt.Fprintf(r.out, "Scanned %d candidate(s), %d eligible\n", totals.Scanned, totals.Eligible)
	for _, result := range []types.Result{types.ResultDryRun, types.ResultDeleted, types.ResultSkippedRace, types.ResultFailed} {
		if n := totals.ByResult[result]; n > 0 {
			fmt.Fprintf(r.out, "  %s: %d\n", result, n)
		}
	}
	if totals.Warnings > 0 {
		fmt.Fprintf(r.out, "Warnings: %d region/type scan(s) failed, results are partial\n", totals.Warnings)
		for _, region := range summary.Regions {
			for _, warning := range region.Warnings {
				fmt.Fprintf(r.out, "  warning: %s\n", warning)
			}
		}
	}
	fmt.Fprintf(r.out, "Estimated monthly savings: $%.2f USD\n", totals.MonthlySavings)

	return nil
}

// RenderJSON writes the full summary and totals as JSON
func (r *Reporter) RenderJSON(summary *types.ScanSummary) error {
	payload := struct {
		Summary *types.ScanSummary `json:"summary"`
		Totals  Totals             `json:"totals"`
	}{
		Summary: summary,
		Totals:  r.Totals(summary),
	}

	encoder := json.NewEncoder(r.out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}
