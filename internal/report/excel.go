package report

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"penguincli/internal/errors"
)

// Sheet names of the report workbook.
const (
	sheetSummary      = "Summary"
	sheetCoefficients = "Coefficients"
	sheetAnova        = "ANOVA"
)

// WriteWorkbook writes the complete set of result tables into one Excel
// workbook with a sheet per table.
func (r *Reporter) WriteWorkbook(ctx context.Context, path string, res *Results) error {
	r.logger.InfoContext(ctx, "writing Excel workbook", slog.String("path", path))

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.NewStorageError("failed to create report directory", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetSummary); err != nil {
		return errors.NewStorageError("failed to name summary sheet", err)
	}
	if err := r.fillSummarySheet(f, res); err != nil {
		return err
	}

	if _, err := f.NewSheet(sheetCoefficients); err != nil {
		return errors.NewStorageError("failed to create coefficients sheet", err)
	}
	if err := r.fillCoefficientsSheet(f, res); err != nil {
		return err
	}

	if _, err := f.NewSheet(sheetAnova); err != nil {
		return errors.NewStorageError("failed to create ANOVA sheet", err)
	}
	if err := r.fillAnovaSheet(f, res); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return errors.NewStorageError("failed to save workbook", err).
			WithContext("path", path)
	}

	return nil
}

func (r *Reporter) fillSummarySheet(f *excelize.File, res *Results) error {
	header := []interface{}{
		"Species", "Island", "Sex", "Count",
		"Mean bill length (mm)", "Mean bill depth (mm)",
		"Mean flipper length (mm)", "Mean body mass (g)",
	}
	if err := writeRow(f, sheetSummary, 1, header); err != nil {
		return err
	}

	for i, g := range res.Summaries {
		row := []interface{}{
			string(g.Species), string(g.Island), string(g.Sex), g.Count,
			g.MeanBillLengthMM, g.MeanBillDepthMM,
			g.MeanFlipperLengthMM, g.MeanBodyMassG,
		}
		if err := writeRow(f, sheetSummary, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func (r *Reporter) fillCoefficientsSheet(f *excelize.File, res *Results) error {
	header := []interface{}{"Model", "Term", "Estimate", "Std. error", "t value", "p value"}
	if err := writeRow(f, sheetCoefficients, 1, header); err != nil {
		return err
	}

	rowNum := 2
	for _, c := range res.NullFit.Terms {
		row := []interface{}{"null", c.Term, c.Estimate, c.StdErr, c.TValue, c.PValue}
		if err := writeRow(f, sheetCoefficients, rowNum, row); err != nil {
			return err
		}
		rowNum++
	}
	for _, c := range res.FullFit.Terms {
		row := []interface{}{"full", c.Term, c.Estimate, c.StdErr, c.TValue, c.PValue}
		if err := writeRow(f, sheetCoefficients, rowNum, row); err != nil {
			return err
		}
		rowNum++
	}
	return nil
}

func (r *Reporter) fillAnovaSheet(f *excelize.File, res *Results) error {
	header := []interface{}{"F", "Num DF", "Den DF", "p value", "RSS null", "RSS full"}
	if err := writeRow(f, sheetAnova, 1, header); err != nil {
		return err
	}
	row := []interface{}{
		res.Anova.F, res.Anova.NumDF, res.Anova.DenDF,
		res.Anova.PValue, res.Anova.RSSNull, res.Anova.RSSFull,
	}
	return writeRow(f, sheetAnova, 2, row)
}

// writeRow writes one row of cell values starting at column A
func writeRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return fmt.Errorf("cell name for column %d: %w", col+1, err)
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return fmt.Errorf("set cell %s!%s: %w", sheet, cell, err)
		}
	}
	return nil
}
