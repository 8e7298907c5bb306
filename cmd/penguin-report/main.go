package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"penguincli/internal/config"
	"penguincli/internal/dataset"
	"penguincli/internal/infrastructure"
	"penguincli/internal/regression"
	"penguincli/internal/report"
	"penguincli/internal/summary"
)

func main() {
	configFile := flag.String("config", "", "path to YAML config file (optional)")
	dataFile := flag.String("data", "", "path to penguins CSV (defaults to the embedded dataset)")
	outputDir := flag.String("out", "", "output directory for the report (defaults to config)")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if *dataFile != "" {
		cfg.Paths.DataFile = *dataFile
	}
	if *outputDir != "" {
		cfg.Paths.OutputDir = *outputDir
	}

	logger, logCloser, err := infrastructure.NewLogger(cfg.Logging)
	if err != nil {
		slog.Error("Failed to initialize logger", "error", err)
		os.Exit(1)
	}
	if logCloser != nil {
		defer logCloser.Close()
	}
	slog.SetDefault(logger)

	ctx := infrastructure.ContextWithRunID(context.Background())
	runID := infrastructure.GetRunID(ctx)

	if err := run(ctx, cfg, logger, runID); err != nil {
		logger.ErrorContext(ctx, "Report generation failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger, runID string) error {
	start := time.Now()

	// Load dataset
	source := cfg.Paths.DataFile
	if source == "" {
		logger.InfoContext(ctx, "Loading embedded penguin dataset")
	} else {
		logger.InfoContext(ctx, "Loading penguin dataset", slog.String("path", source))
	}
	ds, err := dataset.Load(source, cfg.Analysis.MissingTokens)
	if err != nil {
		return fmt.Errorf("load dataset: %w", err)
	}
	if ds.Len() == 0 {
		return fmt.Errorf("dataset is empty")
	}

	// Clean: complete cases feed the grouped summary, complete measurements
	// feed the species model (sex does not enter the model).
	cases := ds.CompleteCases()
	measured := ds.CompleteMeasurements()
	logger.InfoContext(ctx, "Cleaned dataset",
		slog.Int("loaded", ds.Len()),
		slog.Int("complete_cases", cases.Len()),
		slog.Int("complete_measurements", measured.Len()))

	// Grouped summary
	summaries, err := summary.NewSummarizer(logger).Summarize(ctx, cases)
	if err != nil {
		return fmt.Errorf("grouped summary: %w", err)
	}

	// Models and comparison
	fitter := regression.NewFitter(logger)
	nullFit, err := fitter.FitNull(ctx, measured)
	if err != nil {
		return fmt.Errorf("null model: %w", err)
	}
	fullFit, idx, err := fitter.FitSpecies(ctx, measured)
	if err != nil {
		return fmt.Errorf("species model: %w", err)
	}
	anova, err := fitter.Compare(nullFit, fullFit)
	if err != nil {
		return fmt.Errorf("model comparison: %w", err)
	}
	means, err := regression.ReconstructSpeciesMeans(fullFit, idx)
	if err != nil {
		return fmt.Errorf("species means: %w", err)
	}

	results := &report.Results{
		RunID:        runID,
		GeneratedAt:  time.Now(),
		Summaries:    summaries,
		NullFit:      nullFit,
		FullFit:      fullFit,
		Anova:        anova,
		SpeciesMeans: means,
		Observations: measured,
	}

	reporter := report.NewReporter(logger, report.Options{
		CSVBOMPrefix: cfg.Report.CSVBOMPrefix,
		HTMLTitle:    cfg.Report.HTMLTitle,
		JitterSeed:   cfg.Analysis.JitterSeed,
	})

	outDir := cfg.Paths.OutputDir
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	if cfg.WantsFormat("csv") {
		if err := reporter.WriteSummaryCSV(ctx, filepath.Join(outDir, "group_summary.csv"), results); err != nil {
			return fmt.Errorf("summary CSV: %w", err)
		}
		if err := reporter.WriteCoefficientsCSV(ctx, filepath.Join(outDir, "coefficients.csv"), results); err != nil {
			return fmt.Errorf("coefficients CSV: %w", err)
		}
		if err := reporter.WriteAnovaCSV(ctx, filepath.Join(outDir, "anova.csv"), results); err != nil {
			return fmt.Errorf("ANOVA CSV: %w", err)
		}
	}

	if cfg.WantsFormat("xlsx") {
		if err := reporter.WriteWorkbook(ctx, filepath.Join(outDir, "penguin_report.xlsx"), results); err != nil {
			return fmt.Errorf("workbook: %w", err)
		}
	}

	if cfg.WantsFormat("plots") {
		if err := reporter.RenderPlots(ctx, cfg.PlotsDir(), results); err != nil {
			return fmt.Errorf("plots: %w", err)
		}
	}

	if cfg.WantsFormat("html") {
		if err := reporter.WriteHTML(ctx, filepath.Join(outDir, "penguin_report.html"), results); err != nil {
			return fmt.Errorf("HTML report: %w", err)
		}
	}

	if cfg.WantsFormat("text") {
		if err := reporter.WriteText(ctx, os.Stdout, results); err != nil {
			return fmt.Errorf("text report: %w", err)
		}
	}

	logger.InfoContext(ctx, "Report generated successfully",
		slog.String("output_dir", outDir),
		slog.Int("groups", len(summaries)),
		slog.Float64("f_statistic", anova.F),
		slog.Duration("elapsed", time.Since(start)))

	return nil
}
