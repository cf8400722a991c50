package main

import (
	"context"
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/yairfalse/kulu/config"
)

var (
	reclaimMode         string
	reclaimRegion       string
	reclaimResourceType string
	reclaimConfigFile   string
	reclaimConcurrency  int
	reclaimProfile      string
	reclaimOutput       string
	reclaimMetricsAddr  string
	reclaimSkipWebsite  bool
)

// reclaimCmd represents the reclaim command
var reclaimCmd = &cobra.Command{
	Use:   "reclaim",
	Short: "Find and reclaim idle billable resources",
	Long: `Scan the account for idle billable resources and reclaim them.

Eligibility rules:
- bucket: zero objects and versioning not enabled
- volume: state available with zero attachments
- elastic-ip: no association

In dry-run mode (the default) every affected candidate is listed and
no delete call is ever issued. Execute mode re-verifies each candidate
immediately before deleting it; a candidate that changed since the
scan is skipped, never deleted.`,
	Example: `  kulu reclaim                                 # dry-run, all types, all regions
  kulu reclaim --resource-type volume          # only EBS volumes
  kulu reclaim --region eu-west-1              # one region
  kulu reclaim --mode execute                  # actually delete
  kulu reclaim --output json                   # machine-readable summary`,
	RunE: runReclaim,
}

func init() {
	rootCmd.AddCommand(reclaimCmd)

	reclaimCmd.Flags().StringVar(&reclaimMode, "mode", string(config.ModeDryRun), "Run mode: dry-run or execute")
	reclaimCmd.Flags().StringVarP(&reclaimRegion, "region", "r", "all", "Region to scan, or all")
	reclaimCmd.Flags().StringVarP(&reclaimResourceType, "resource-type", "t", "all", "Resource type: bucket, volume, elastic-ip or all")
	reclaimCmd.Flags().StringVarP(&reclaimConfigFile, "config", "c", "", "Path to a YAML config file")
	reclaimCmd.Flags().IntVar(&reclaimConcurrency, "concurrency", config.DefaultConcurrency, "Concurrent region workers")
	reclaimCmd.Flags().StringVar(&reclaimProfile, "profile", "", "AWS shared-config profile")
	reclaimCmd.Flags().StringVarP(&reclaimOutput, "output", "o", "table", "Output format: table or json")
	reclaimCmd.Flags().StringVar(&reclaimMetricsAddr, "metrics", "", "Expose Prometheus metrics on this address (off by default)")
	reclaimCmd.Flags().BoolVar(&reclaimSkipWebsite, "skip-website-buckets", false, "Skip empty buckets serving a static website")
}

func runReclaim(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	if reclaimOutput != "table" && reclaimOutput != "json" {
		return fmt.Errorf("invalid output format %q (must be table or json)", reclaimOutput)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return runPipeline(ctx, cfg, reclaimOutput, reclaimMetricsAddr)
}

// buildConfig merges the optional config file with explicit flags.
// Flags win over the file; the file wins over defaults.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()
	if reclaimConfigFile != "" {
		loaded, err := config.Load(reclaimConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = *loaded
	}

	changed := cmd.Flags().Changed

	if reclaimConfigFile == "" || changed("mode") {
		mode, err := config.ParseMode(reclaimMode)
		if err != nil {
			return nil, err
		}
		cfg.Mode = mode
	}
	if reclaimConfigFile == "" || changed("region") {
		cfg.Regions = splitList(reclaimRegion)
	}
	if reclaimConfigFile == "" || changed("resource-type") {
		cfg.ResourceTypes = splitList(reclaimResourceType)
	}
	if changed("concurrency") {
		cfg.Concurrency = reclaimConcurrency
	}
	if changed("profile") {
		cfg.Profile = reclaimProfile
	}
	if changed("skip-website-buckets") {
		cfg.SkipWebsiteBuckets = reclaimSkipWebsite
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}
