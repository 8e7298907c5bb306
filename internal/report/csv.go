package report

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"penguincli/internal/errors"
)

// writeCSV writes a header and records to a CSV file, optionally prefixed
// with a UTF-8 BOM so Excel recognizes the encoding.
func (r *Reporter) writeCSV(path string, header []string, records [][]string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.NewStorageError("failed to create report directory", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return errors.NewStorageError("failed to create CSV file", err).
			WithContext("path", path)
	}
	defer file.Close()

	if r.opts.CSVBOMPrefix {
		if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return errors.NewStorageError("failed to write BOM", err)
		}
	}

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(header); err != nil {
		return errors.NewStorageError("failed to write CSV header", err)
	}
	for _, record := range records {
		if err := writer.Write(record); err != nil {
			return errors.NewStorageError("failed to write CSV record", err)
		}
	}

	return nil
}

// WriteSummaryCSV writes the grouped summary table
func (r *Reporter) WriteSummaryCSV(ctx context.Context, path string, res *Results) error {
	r.logger.InfoContext(ctx, "writing summary CSV",
		slog.String("path", path),
		slog.Int("groups", len(res.Summaries)))

	header := []string{
		"Species", "Island", "Sex", "Count",
		"MeanBillLengthMM", "MeanBillDepthMM", "MeanFlipperLengthMM", "MeanBodyMassG",
	}
	records := make([][]string, 0, len(res.Summaries))
	for _, g := range res.Summaries {
		records = append(records, []string{
			string(g.Species),
			string(g.Island),
			string(g.Sex),
			fmt.Sprintf("%d", g.Count),
			fmt.Sprintf("%.6f", g.MeanBillLengthMM),
			fmt.Sprintf("%.6f", g.MeanBillDepthMM),
			fmt.Sprintf("%.6f", g.MeanFlipperLengthMM),
			fmt.Sprintf("%.6f", g.MeanBodyMassG),
		})
	}

	return r.writeCSV(path, header, records)
}

// WriteCoefficientsCSV writes the coefficient tables of both models
func (r *Reporter) WriteCoefficientsCSV(ctx context.Context, path string, res *Results) error {
	r.logger.InfoContext(ctx, "writing coefficients CSV", slog.String("path", path))

	header := []string{"Model", "Term", "Estimate", "StdErr", "TValue", "PValue"}
	var records [][]string
	for _, c := range res.NullFit.Terms {
		records = append(records, []string{
			"null", c.Term,
			fmt.Sprintf("%.6f", c.Estimate),
			fmt.Sprintf("%.6f", c.StdErr),
			fmt.Sprintf("%.6f", c.TValue),
			fmt.Sprintf("%.6g", c.PValue),
		})
	}
	for _, c := range res.FullFit.Terms {
		records = append(records, []string{
			"full", c.Term,
			fmt.Sprintf("%.6f", c.Estimate),
			fmt.Sprintf("%.6f", c.StdErr),
			fmt.Sprintf("%.6f", c.TValue),
			fmt.Sprintf("%.6g", c.PValue),
		})
	}

	return r.writeCSV(path, header, records)
}

// WriteAnovaCSV writes the nested-model comparison table
func (r *Reporter) WriteAnovaCSV(ctx context.Context, path string, res *Results) error {
	r.logger.InfoContext(ctx, "writing ANOVA CSV", slog.String("path", path))

	header := []string{"F", "NumDF", "DenDF", "PValue", "RSSNull", "RSSFull"}
	records := [][]string{{
		fmt.Sprintf("%.6f", res.Anova.F),
		fmt.Sprintf("%d", res.Anova.NumDF),
		fmt.Sprintf("%d", res.Anova.DenDF),
		fmt.Sprintf("%.6g", res.Anova.PValue),
		fmt.Sprintf("%.6f", res.Anova.RSSNull),
		fmt.Sprintf("%.6f", res.Anova.RSSFull),
	}}

	return r.writeCSV(path, header, records)
}
