package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/prometheus"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/yairfalse/kulu/config"
	"github.com/yairfalse/kulu/cost"
	"github.com/yairfalse/kulu/executor"
	"github.com/yairfalse/kulu/orchestrator"
	"github.com/yairfalse/kulu/providers"
	"github.com/yairfalse/kulu/providers/aws"
	"github.com/yairfalse/kulu/report"
	"github.com/yairfalse/kulu/scanner"
	"github.com/yairfalse/kulu/telemetry"
)

// runPipeline wires the collaborators and executes one full run
func runPipeline(ctx context.Context, cfg *config.Config, output, metricsAddr string) error {
	logger := telemetry.NewConsoleLogger("kulu", os.Stderr)

	if metricsAddr != "" {
		if err := startMetricsServer(metricsAddr, logger); err != nil {
			return err
		}
	}

	metrics, err := telemetry.NewMetrics()
	if err != nil {
		return fmt.Errorf("failed to init metrics: %w", err)
	}

	factory, err := aws.NewClientFactory(ctx, cfg.Profile)
	if err != nil {
		return err
	}

	adapters := aws.BuildAdapters(factory, cfg.SelectedTypes(), cfg.SkipWebsiteBuckets, logger)

	var regions providers.RegionEnumerator
	if cfg.AllRegions() {
		regions = aws.NewRegionEnumerator(factory)
	} else {
		regions = providers.StaticRegions(cfg.Regions)
	}

	gate, err := executor.NewGate(cfg.Mode, logger, metrics)
	if err != nil {
		return err
	}

	scan := scanner.NewScanner(adapters, logger, metrics)
	o := orchestrator.New(regions, scan, gate, cfg.Concurrency, logger, metrics)

	summary, err := o.Run(ctx)
	if err != nil {
		return err
	}

	reporter := report.NewReporter(cost.NewCalculator(cfg.MonthlyRates), os.Stdout)
	switch output {
	case "json":
		err = reporter.RenderJSON(summary)
	default:
		err = reporter.RenderTable(summary)
	}
	if err != nil {
		return err
	}

	if failed := summary.FailedCount(); failed > 0 {
		return fmt.Errorf("run completed with %d failed destroy call(s)", failed)
	}
	return nil
}

// startMetricsServer exposes OTEL metrics through a Prometheus endpoint
func startMetricsServer(addr string, logger *telemetry.Logger) error {
	promExporter, err := prometheus.New()
	if err != nil {
		return fmt.Errorf("failed to create prometheus exporter: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(promExporter))
	otel.SetMeterProvider(provider)

	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		logger.Info().Str("addr", addr).Msg("starting metrics server")
		if err := http.ListenAndServe(addr, mux); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("metrics server error")
		}
	}()

	return nil
}
