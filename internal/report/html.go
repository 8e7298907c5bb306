package report

import (
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"os"
	"path/filepath"

	"penguincli/internal/errors"
)

// reportTemplate is the single-page HTML rendering of the analysis. Plots
// are referenced relative to the report so the output directory is portable.
const reportTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; margin: 2em; max-width: 60em; }
table { border-collapse: collapse; margin: 1em 0; }
th, td { border: 1px solid #999; padding: 0.3em 0.7em; text-align: right; }
th { background: #eee; }
td.cat, th.cat { text-align: left; }
figure { margin: 1.5em 0; }
img { max-width: 100%; }
footer { margin-top: 2em; color: #666; font-size: 0.8em; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>

<h2>Grouped summary</h2>
<table>
<tr><th class="cat">Species</th><th class="cat">Island</th><th class="cat">Sex</th><th>N</th>
<th>Bill length (mm)</th><th>Bill depth (mm)</th><th>Flipper length (mm)</th><th>Body mass (g)</th></tr>
{{range .Results.Summaries}}
<tr><td class="cat">{{.Species}}</td><td class="cat">{{.Island}}</td><td class="cat">{{.Sex}}</td>
<td>{{.Count}}</td><td>{{printf "%.2f" .MeanBillLengthMM}}</td><td>{{printf "%.2f" .MeanBillDepthMM}}</td>
<td>{{printf "%.1f" .MeanFlipperLengthMM}}</td><td>{{printf "%.1f" .MeanBodyMassG}}</td></tr>
{{end}}
</table>

<h2>Model coefficients (body mass ~ species)</h2>
<table>
<tr><th class="cat">Term</th><th>Estimate</th><th>Std. error</th><th>t value</th><th>p value</th></tr>
{{range .Results.FullFit.Terms}}
<tr><td class="cat">{{.Term}}</td><td>{{printf "%.2f" .Estimate}}</td><td>{{printf "%.2f" .StdErr}}</td>
<td>{{printf "%.3f" .TValue}}</td><td>{{printf "%.3g" .PValue}}</td></tr>
{{end}}
</table>
<p>Adjusted R&sup2;: {{printf "%.4f" .Results.FullFit.AdjRSquared}}</p>

<h2>ANOVA: null vs full model</h2>
<table>
<tr><th>F</th><th>Num DF</th><th>Den DF</th><th>p value</th><th>RSS null</th><th>RSS full</th></tr>
<tr><td>{{printf "%.3f" .Results.Anova.F}}</td><td>{{.Results.Anova.NumDF}}</td><td>{{.Results.Anova.DenDF}}</td>
<td>{{printf "%.3g" .Results.Anova.PValue}}</td><td>{{printf "%.1f" .Results.Anova.RSSNull}}</td>
<td>{{printf "%.1f" .Results.Anova.RSSFull}}</td></tr>
</table>

<h2>Mean body mass by species</h2>
<table>
<tr><th class="cat">Species</th><th>Mean body mass (g)</th></tr>
{{range .Results.SpeciesMeans}}
<tr><td class="cat">{{.Species}}</td><td>{{printf "%.1f" .MeanBodyMassG}}</td></tr>
{{end}}
</table>

<h2>Plots</h2>
<figure><img src="plots/measurement_histograms.png" alt="Measurement histograms by species"></figure>
<figure><img src="plots/body_mass_by_species.png" alt="Body mass by species"></figure>
<figure><img src="plots/residuals_vs_fitted.png" alt="Residuals vs fitted"></figure>

<footer>Run {{.Results.RunID}} generated {{.Results.GeneratedAt.Format "2006-01-02 15:04:05 MST"}}</footer>
</body>
</html>
`

// WriteHTML renders the HTML report page
func (r *Reporter) WriteHTML(ctx context.Context, path string, res *Results) error {
	r.logger.InfoContext(ctx, "writing HTML report", slog.String("path", path))

	tmpl, err := template.New("report").Parse(reportTemplate)
	if err != nil {
		return fmt.Errorf("parse report template: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.NewStorageError("failed to create report directory", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return errors.NewStorageError("failed to create HTML report", err).
			WithContext("path", path)
	}
	defer file.Close()

	data := struct {
		Title   string
		Results *Results
	}{
		Title:   r.opts.HTMLTitle,
		Results: res,
	}

	if err := tmpl.Execute(file, data); err != nil {
		return fmt.Errorf("render report template: %w", err)
	}
	return nil
}
