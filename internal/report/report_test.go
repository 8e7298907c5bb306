package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"penguincli/internal/dataset"
	"penguincli/internal/regression"
	"penguincli/internal/summary"
)

// fixtureResults runs the real pipeline over a small dataset so the
// reporter is tested against genuine upstream output.
func fixtureResults(t *testing.T) *Results {
	t.Helper()

	masses := []struct {
		sp dataset.Species
		is dataset.Island
		bm float64
	}{
		{dataset.SpeciesAdelie, dataset.IslandTorgersen, 3800},
		{dataset.SpeciesAdelie, dataset.IslandTorgersen, 4000},
		{dataset.SpeciesAdelie, dataset.IslandTorgersen, 3600},
		{dataset.SpeciesGentoo, dataset.IslandBiscoe, 5200},
		{dataset.SpeciesGentoo, dataset.IslandBiscoe, 5000},
		{dataset.SpeciesGentoo, dataset.IslandBiscoe, 5400},
		{dataset.SpeciesChinstrap, dataset.IslandDream, 3400},
		{dataset.SpeciesChinstrap, dataset.IslandDream, 3700},
	}

	var ds dataset.Dataset
	for i, m := range masses {
		sex := dataset.SexMale
		if i%2 == 1 {
			sex = dataset.SexFemale
		}
		ds = append(ds, dataset.Observation{
			Species:         m.sp,
			Island:          m.is,
			Sex:             sex,
			BillLengthMM:    40 + float64(i),
			BillDepthMM:     17 + float64(i)/4,
			FlipperLengthMM: 190 + float64(i),
			BodyMassG:       m.bm,
			Year:            2008,
		})
	}

	ctx := context.Background()
	summaries, err := summary.NewSummarizer(nil).Summarize(ctx, ds)
	require.NoError(t, err)

	fitter := regression.NewFitter(nil)
	nullFit, err := fitter.FitNull(ctx, ds)
	require.NoError(t, err)
	fullFit, idx, err := fitter.FitSpecies(ctx, ds)
	require.NoError(t, err)
	anova, err := fitter.Compare(nullFit, fullFit)
	require.NoError(t, err)
	means, err := regression.ReconstructSpeciesMeans(fullFit, idx)
	require.NoError(t, err)

	return &Results{
		RunID:        "test-run",
		GeneratedAt:  time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		Summaries:    summaries,
		NullFit:      nullFit,
		FullFit:      fullFit,
		Anova:        anova,
		SpeciesMeans: means,
		Observations: ds,
	}
}

func TestWriteText(t *testing.T) {
	res := fixtureResults(t)
	var buf bytes.Buffer

	r := NewReporter(nil, Options{})
	require.NoError(t, r.WriteText(context.Background(), &buf, res))

	out := buf.String()
	assert.Contains(t, out, "GROUP SUMMARY")
	assert.Contains(t, out, "FULL MODEL")
	assert.Contains(t, out, "ANOVA")
	assert.Contains(t, out, "Adelie")
	assert.Contains(t, out, "(Intercept)")
	assert.Contains(t, out, "species[Gentoo]")
}

func TestWriteSummaryCSV(t *testing.T) {
	res := fixtureResults(t)
	path := filepath.Join(t.TempDir(), "out", "summary.csv")

	r := NewReporter(nil, Options{CSVBOMPrefix: true})
	require.NoError(t, r.WriteSummaryCSV(context.Background(), path, res))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}), "expected UTF-8 BOM")

	reader := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})))
	rows, err := reader.ReadAll()
	require.NoError(t, err)
	// Header plus one row per group
	assert.Len(t, rows, len(res.Summaries)+1)
	assert.Equal(t, "Species", rows[0][0])
}

func TestWriteSummaryCSV_NoBOM(t *testing.T) {
	res := fixtureResults(t)
	path := filepath.Join(t.TempDir(), "summary.csv")

	r := NewReporter(nil, Options{CSVBOMPrefix: false})
	require.NoError(t, r.WriteSummaryCSV(context.Background(), path, res))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.False(t, bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}))
}

func TestWriteCoefficientsCSV(t *testing.T) {
	res := fixtureResults(t)
	path := filepath.Join(t.TempDir(), "coefficients.csv")

	r := NewReporter(nil, Options{})
	require.NoError(t, r.WriteCoefficientsCSV(context.Background(), path, res))

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	// Header + 1 null coefficient + 3 full coefficients
	assert.Len(t, rows, 1+1+3)
	assert.Equal(t, "null", rows[1][0])
	assert.Equal(t, "full", rows[2][0])
}

func TestWriteAnovaCSV(t *testing.T) {
	res := fixtureResults(t)
	path := filepath.Join(t.TempDir(), "anova.csv")

	r := NewReporter(nil, Options{})
	require.NoError(t, r.WriteAnovaCSV(context.Background(), path, res))

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"F", "NumDF", "DenDF", "PValue", "RSSNull", "RSSFull"}, rows[0])
	assert.Equal(t, "2", rows[1][1])
}

func TestWriteWorkbook(t *testing.T) {
	res := fixtureResults(t)
	path := filepath.Join(t.TempDir(), "report.xlsx")

	r := NewReporter(nil, Options{})
	require.NoError(t, r.WriteWorkbook(context.Background(), path, res))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{"Summary", "Coefficients", "ANOVA"}, f.GetSheetList())

	v, err := f.GetCellValue(sheetSummary, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Species", v)

	v, err = f.GetCellValue(sheetSummary, "A2")
	require.NoError(t, err)
	assert.Equal(t, "Adelie", v)

	v, err = f.GetCellValue(sheetCoefficients, "B2")
	require.NoError(t, err)
	assert.Equal(t, "(Intercept)", v)
}

func TestWriteHTML(t *testing.T) {
	res := fixtureResults(t)
	path := filepath.Join(t.TempDir(), "report.html")

	r := NewReporter(nil, Options{HTMLTitle: "Fixture Report"})
	require.NoError(t, r.WriteHTML(context.Background(), path, res))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)

	assert.Contains(t, out, "<title>Fixture Report</title>")
	assert.Contains(t, out, "Grouped summary")
	assert.Contains(t, out, "Chinstrap")
	assert.Contains(t, out, "test-run")
	assert.Contains(t, out, "measurement_histograms.png")
}

func TestRenderPlots(t *testing.T) {
	res := fixtureResults(t)
	dir := filepath.Join(t.TempDir(), "plots")

	r := NewReporter(nil, Options{JitterSeed: 1})
	require.NoError(t, r.RenderPlots(context.Background(), dir, res))

	for _, name := range []string{PlotHistograms, PlotBodyMass, PlotResiduals} {
		info, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err, "plot %s", name)
		assert.Positive(t, info.Size(), "plot %s", name)
	}
}

func TestRenderPlots_Deterministic(t *testing.T) {
	res := fixtureResults(t)
	r := NewReporter(nil, Options{JitterSeed: 42})

	dirA := filepath.Join(t.TempDir(), "a")
	dirB := filepath.Join(t.TempDir(), "b")
	require.NoError(t, r.RenderPlots(context.Background(), dirA, res))
	require.NoError(t, r.RenderPlots(context.Background(), dirB, res))

	a, err := os.ReadFile(filepath.Join(dirA, PlotBodyMass))
	require.NoError(t, err)
	b, err := os.ReadFile(filepath.Join(dirB, PlotBodyMass))
	require.NoError(t, err)
	assert.True(t, bytes.Equal(a, b), "jittered plot should be byte-identical across runs")
}

func TestNewReporter_Defaults(t *testing.T) {
	r := NewReporter(nil, Options{})
	assert.Equal(t, "Penguin Morphometrics Report", r.opts.HTMLTitle)
	assert.NotNil(t, r.logger)
}
