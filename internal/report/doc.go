// Package report renders analysis results to disk: an aligned text summary,
// CSV tables, an Excel workbook, an HTML page, and PNG plots. The reporter
// is pure presentation; it computes nothing beyond layout.
package report
