package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "0.1.0"
	rootCmd = &cobra.Command{
		Use:   "kulu",
		Short: "Idle Cloud Resource Reclaimer",
		Long: `Kulu - Idle Cloud Resource Reclaimer

Kulu audits an AWS account across all regions for idle, billable
resources and reclaims them through a safe two-phase delete workflow:
empty S3 buckets, unattached EBS volumes and unassociated Elastic IPs.

Every run is stateless. Dry-run is the default; destructive calls only
happen when execute mode is requested explicitly, and every candidate
is re-verified immediately before its delete call.`,
		Version: version,
	}
)

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// init sets up the root command
func init() {
	rootCmd.SetVersionTemplate(`Kulu {{.Version}} - Idle Cloud Resource Reclaimer
`)
}
