package report

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"penguincli/internal/dataset"
	"penguincli/internal/errors"
	"penguincli/internal/regression"
)

// Plot file names inside the plots directory.
const (
	PlotHistograms   = "measurement_histograms.png"
	PlotBodyMass     = "body_mass_by_species.png"
	PlotResiduals    = "residuals_vs_fitted.png"
	histogramBins    = 16
	jitterHalfWidth  = 0.18
)

// RenderPlots renders all report plots into dir
func (r *Reporter) RenderPlots(ctx context.Context, dir string, res *Results) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.NewStorageError("failed to create plots directory", err)
	}

	r.logger.InfoContext(ctx, "rendering plots",
		slog.String("dir", dir),
		slog.Int("observations", res.Observations.Len()))

	if err := r.renderHistogramGrid(filepath.Join(dir, PlotHistograms), res.Observations); err != nil {
		return fmt.Errorf("render histograms: %w", err)
	}
	if err := r.renderBodyMassPlot(filepath.Join(dir, PlotBodyMass), res); err != nil {
		return fmt.Errorf("render body mass plot: %w", err)
	}
	if err := r.renderResidualsPlot(filepath.Join(dir, PlotResiduals), res.FullFit); err != nil {
		return fmt.Errorf("render residuals plot: %w", err)
	}
	return nil
}

// renderHistogramGrid draws one histogram panel per measurement, with the
// per-species distributions overlaid in distinct colors.
func (r *Reporter) renderHistogramGrid(path string, ds dataset.Dataset) error {
	levels := ds.SpeciesLevels()

	panels := make([][]*plot.Plot, 2)
	for i := range panels {
		panels[i] = make([]*plot.Plot, 2)
	}

	for mi, m := range dataset.Measurements {
		p := plot.New()
		p.Title.Text = m.String()
		p.X.Label.Text = m.String()
		p.Y.Label.Text = "count"

		for si, sp := range levels {
			var vals plotter.Values
			for _, o := range ds {
				if o.Species == sp {
					vals = append(vals, o.Value(m))
				}
			}
			if len(vals) == 0 {
				continue
			}
			h, err := plotter.NewHist(vals, histogramBins)
			if err != nil {
				return fmt.Errorf("histogram for %s/%s: %w", m, sp, err)
			}
			h.FillColor = plotutil.Color(si)
			h.LineStyle.Width = 0
			p.Add(h)
			p.Legend.Add(string(sp), h)
		}
		p.Legend.Top = true

		panels[mi/2][mi%2] = p
	}

	img := vgimg.New(10*vg.Inch, 7*vg.Inch)
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows: 2, Cols: 2,
		PadX: vg.Millimeter * 3, PadY: vg.Millimeter * 3,
		PadTop: vg.Millimeter * 2, PadBottom: vg.Millimeter * 2,
		PadLeft: vg.Millimeter * 2, PadRight: vg.Millimeter * 2,
	}
	canvases := plot.Align(panels, tiles, dc)
	for i := range panels {
		for j := range panels[i] {
			if panels[i][j] != nil {
				panels[i][j].Draw(canvases[i][j])
			}
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return errors.NewStorageError("failed to create plot file", err).
			WithContext("path", path)
	}
	defer file.Close()

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(file); err != nil {
		return errors.NewStorageError("failed to encode plot", err)
	}
	return nil
}

// renderBodyMassPlot draws a jittered category scatter of body mass by
// species with the per-species model means overlaid as cross markers.
func (r *Reporter) renderBodyMassPlot(path string, res *Results) error {
	ds := res.Observations
	levels := ds.SpeciesLevels()
	index := make(map[dataset.Species]int, len(levels))
	names := make([]string, len(levels))
	for i, sp := range levels {
		index[sp] = i
		names[i] = string(sp)
	}

	p := plot.New()
	p.Title.Text = "Body mass by species"
	p.Y.Label.Text = "body mass (g)"
	p.NominalX(names...)

	// Deterministic jitter keeps the rendering reproducible across runs.
	rng := rand.New(rand.NewSource(r.opts.JitterSeed))

	for si, sp := range levels {
		var pts plotter.XYs
		for _, o := range ds {
			if o.Species != sp {
				continue
			}
			jitter := (rng.Float64()*2 - 1) * jitterHalfWidth
			pts = append(pts, plotter.XY{X: float64(si) + jitter, Y: o.BodyMassG})
		}
		s, err := plotter.NewScatter(pts)
		if err != nil {
			return fmt.Errorf("scatter for %s: %w", sp, err)
		}
		s.GlyphStyle.Color = plotutil.Color(si)
		s.GlyphStyle.Radius = vg.Points(1.5)
		p.Add(s)
	}

	var meanPts plotter.XYs
	for _, m := range res.SpeciesMeans {
		if i, ok := index[m.Species]; ok {
			meanPts = append(meanPts, plotter.XY{X: float64(i), Y: m.MeanBodyMassG})
		}
	}
	means, err := plotter.NewScatter(meanPts)
	if err != nil {
		return fmt.Errorf("mean markers: %w", err)
	}
	means.GlyphStyle.Shape = draw.CrossGlyph{}
	means.GlyphStyle.Radius = vg.Points(5)
	p.Add(means)
	p.Legend.Add("species mean", means)
	p.Legend.Top = true

	return savePlot(p, path)
}

// renderResidualsPlot draws the residuals-vs-fitted diagnostic for the
// full model with a zero reference line.
func (r *Reporter) renderResidualsPlot(path string, fit *regression.ModelFit) error {
	if fit == nil || len(fit.Residuals) == 0 {
		return errors.NewValidationError("residuals plot needs a fitted model")
	}

	pts := make(plotter.XYs, len(fit.Residuals))
	minX, maxX := fit.Fitted[0], fit.Fitted[0]
	for i := range fit.Residuals {
		pts[i] = plotter.XY{X: fit.Fitted[i], Y: fit.Residuals[i]}
		if fit.Fitted[i] < minX {
			minX = fit.Fitted[i]
		}
		if fit.Fitted[i] > maxX {
			maxX = fit.Fitted[i]
		}
	}

	p := plot.New()
	p.Title.Text = "Residuals vs fitted"
	p.X.Label.Text = "fitted body mass (g)"
	p.Y.Label.Text = "residual (g)"

	s, err := plotter.NewScatter(pts)
	if err != nil {
		return fmt.Errorf("residual scatter: %w", err)
	}
	s.GlyphStyle.Radius = vg.Points(1.5)
	s.GlyphStyle.Color = plotutil.Color(0)
	p.Add(s)

	zero, err := plotter.NewLine(plotter.XYs{{X: minX, Y: 0}, {X: maxX, Y: 0}})
	if err != nil {
		return fmt.Errorf("zero line: %w", err)
	}
	zero.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}
	p.Add(zero)

	return savePlot(p, path)
}

// savePlot writes a single plot as PNG
func savePlot(p *plot.Plot, path string) error {
	if err := p.Save(7*vg.Inch, 5*vg.Inch, path); err != nil {
		return errors.NewStorageError("failed to save plot", err).
			WithContext("path", path)
	}
	return nil
}
