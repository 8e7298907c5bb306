package report

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"penguincli/internal/dataset"
	"penguincli/internal/regression"
	"penguincli/internal/summary"
)

// Results bundles everything the reporter renders. All fields are computed
// upstream; the reporter is pure presentation.
type Results struct {
	RunID        string
	GeneratedAt  time.Time
	Summaries    []summary.GroupSummary
	NullFit      *regression.ModelFit
	FullFit      *regression.ModelFit
	Anova        *regression.AnovaResult
	SpeciesMeans []regression.SpeciesMean
	// Observations is the cleaned dataset backing the plots.
	Observations dataset.Dataset
}

// Options configures report rendering
type Options struct {
	CSVBOMPrefix bool   // add a UTF-8 BOM to CSV output for Excel
	HTMLTitle    string // title of the HTML report
	JitterSeed   int64  // seed for the deterministic jitter in the category plot
}

// Reporter renders analysis results as tables, documents and plots
type Reporter struct {
	logger *slog.Logger
	opts   Options
}

// NewReporter creates a new reporter
func NewReporter(logger *slog.Logger, opts Options) *Reporter {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.HTMLTitle == "" {
		opts.HTMLTitle = "Penguin Morphometrics Report"
	}
	return &Reporter{logger: logger, opts: opts}
}

// WriteText writes the human-readable summary of all results
func (r *Reporter) WriteText(ctx context.Context, w io.Writer, res *Results) error {
	r.logger.InfoContext(ctx, "rendering text report",
		slog.Int("groups", len(res.Summaries)))

	fmt.Fprintln(w, "=== GROUP SUMMARY (species / island / sex) ===")
	fmt.Fprintln(w, "Species   | Island    | Sex    |   N | Bill len | Bill dep | Flipper | Body mass")
	fmt.Fprintln(w, "----------|-----------|--------|-----|----------|----------|---------|----------")
	for _, g := range res.Summaries {
		fmt.Fprintf(w, "%-9s | %-9s | %-6s | %3d | %8.2f | %8.2f | %7.1f | %9.1f\n",
			g.Species, g.Island, g.Sex, g.Count,
			g.MeanBillLengthMM, g.MeanBillDepthMM, g.MeanFlipperLengthMM, g.MeanBodyMassG)
	}

	fmt.Fprintln(w, "\n=== FULL MODEL: body mass ~ species ===")
	fmt.Fprintln(w, "Term                 |  Estimate |  Std.Err |  t value |  Pr(>|t|)")
	fmt.Fprintln(w, "---------------------|-----------|----------|----------|----------")
	for _, c := range res.FullFit.Terms {
		fmt.Fprintf(w, "%-20s | %9.2f | %8.2f | %8.3f | %9.2e\n",
			c.Term, c.Estimate, c.StdErr, c.TValue, c.PValue)
	}
	fmt.Fprintf(w, "Adjusted R-squared: %.4f on %d residual degrees of freedom\n",
		res.FullFit.AdjRSquared, res.FullFit.ResidualDF())

	fmt.Fprintln(w, "\n=== ANOVA: null vs full model ===")
	fmt.Fprintf(w, "F = %.3f on %d and %d DF, p-value = %.4g\n",
		res.Anova.F, res.Anova.NumDF, res.Anova.DenDF, res.Anova.PValue)
	fmt.Fprintf(w, "RSS null = %.1f, RSS full = %.1f\n", res.Anova.RSSNull, res.Anova.RSSFull)

	fmt.Fprintln(w, "\n=== MEAN BODY MASS BY SPECIES (from model coefficients) ===")
	for _, m := range res.SpeciesMeans {
		fmt.Fprintf(w, "%-10s %8.1f g\n", m.Species, m.MeanBodyMassG)
	}

	return nil
}
