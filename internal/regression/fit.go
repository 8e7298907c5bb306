package regression

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"penguincli/internal/dataset"
)

// interceptTerm is the name of the intercept coefficient.
const interceptTerm = "(Intercept)"

// speciesTerm names the dummy coefficient of a non-reference species
func speciesTerm(sp dataset.Species) string {
	return fmt.Sprintf("species[%s]", sp)
}

// Fitter fits ordinary least squares models of body mass over a cleaned
// dataset. All fits are pure functions of their input; nothing is cached.
type Fitter struct {
	logger *slog.Logger
}

// NewFitter creates a new model fitter
func NewFitter(logger *slog.Logger) *Fitter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Fitter{logger: logger}
}

// FitNull fits the intercept-only model of body mass. The single coefficient
// equals the sample mean.
func (f *Fitter) FitNull(ctx context.Context, ds dataset.Dataset) (*ModelFit, error) {
	y := ds.BodyMasses()
	n := len(y)
	if n < 2 {
		return nil, fmt.Errorf("null model needs at least 2 observations, got %d", n)
	}

	X := mat.NewDense(n, 1, nil)
	for i := 0; i < n; i++ {
		X.Set(i, 0, 1)
	}

	fit, err := f.ols(y, X, []string{interceptTerm})
	if err != nil {
		return nil, fmt.Errorf("fit null model: %w", err)
	}

	f.logger.InfoContext(ctx, "fitted null model",
		slog.Int("n", fit.N),
		slog.Float64("intercept", fit.Terms[0].Estimate),
		slog.Float64("rss", fit.RSS))

	return fit, nil
}

// FitSpecies fits the full model of body mass on species, using
// reference-category dummy coding with levels in first-appearance order.
// The returned CategoryIndex maps each species to its design index.
func (f *Fitter) FitSpecies(ctx context.Context, ds dataset.Dataset) (*ModelFit, CategoryIndex, error) {
	idx := NewCategoryIndex(ds)
	fit, err := f.FitSpeciesWithIndex(ctx, ds, idx)
	if err != nil {
		return nil, CategoryIndex{}, err
	}
	return fit, idx, nil
}

// FitSpeciesWithIndex fits the full model against an explicit category
// ordering. Degenerate inputs (fewer than two levels, a level with no
// observations, a species outside the index) are fatal.
func (f *Fitter) FitSpeciesWithIndex(ctx context.Context, ds dataset.Dataset, idx CategoryIndex) (*ModelFit, error) {
	if idx.Len() < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewSpecies, idx.Len())
	}

	y := ds.BodyMasses()
	n := len(y)
	p := idx.Len() // intercept + (levels-1) dummies

	counts := make([]int, idx.Len())
	X := mat.NewDense(n, p, nil)
	for i, obs := range ds {
		j, ok := idx.Index(obs.Species)
		if !ok {
			return nil, fmt.Errorf("observation %d has species %q outside the category index", i, obs.Species)
		}
		counts[j]++
		X.Set(i, 0, 1)
		if j > 0 {
			// Dummy column for non-reference level j lives at design column j.
			X.Set(i, j, 1)
		}
	}

	for j, c := range counts {
		if c == 0 {
			return nil, fmt.Errorf("%w: %s", ErrEmptySpeciesGroup, idx.levels[j])
		}
	}

	terms := make([]string, p)
	terms[0] = interceptTerm
	for j := 1; j < p; j++ {
		terms[j] = speciesTerm(idx.levels[j])
	}

	fit, err := f.ols(y, X, terms)
	if err != nil {
		return nil, fmt.Errorf("fit species model: %w", err)
	}

	f.logger.InfoContext(ctx, "fitted species model",
		slog.Int("n", fit.N),
		slog.Int("params", fit.Params),
		slog.String("reference", string(idx.Reference())),
		slog.Float64("adj_r_squared", fit.AdjRSquared))

	return fit, nil
}

// ols solves the least squares problem by QR decomposition and derives the usual
// inference statistics. QR is used rather than the normal equations because
// categorical designs with sparse groups can be ill-conditioned.
func (f *Fitter) ols(y []float64, X *mat.Dense, terms []string) (*ModelFit, error) {
	n, p := X.Dims()
	if n <= p {
		return nil, fmt.Errorf("%d observations cannot identify %d parameters", n, p)
	}

	var qr mat.QR
	qr.Factorize(X)

	var beta mat.VecDense
	if err := qr.SolveVecTo(&beta, false, mat.NewVecDense(n, y)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSingularDesign, err)
	}

	var fittedVec mat.VecDense
	fittedVec.MulVec(X, &beta)

	fitted := make([]float64, n)
	residuals := make([]float64, n)
	rss := 0.0
	for i := 0; i < n; i++ {
		fitted[i] = fittedVec.AtVec(i)
		residuals[i] = y[i] - fitted[i]
		rss += residuals[i] * residuals[i]
	}

	mean := stat.Mean(y, nil)
	tss := 0.0
	for _, v := range y {
		d := v - mean
		tss += d * d
	}

	// Coefficient covariance from sigma^2 (X'X)^-1. The inverse also acts
	// as a second singularity check beyond the QR solve.
	var xtx, xtxInv mat.Dense
	xtx.Mul(X.T(), X)
	if err := xtxInv.Inverse(&xtx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSingularDesign, err)
	}

	sigma2 := rss / float64(n-p)
	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(n - p)}

	coefficients := make([]Coefficient, p)
	for j := 0; j < p; j++ {
		se := math.Sqrt(sigma2 * xtxInv.At(j, j))
		est := beta.AtVec(j)
		t := est / se
		coefficients[j] = Coefficient{
			Term:     terms[j],
			Estimate: est,
			StdErr:   se,
			TValue:   t,
			PValue:   2 * tDist.Survival(math.Abs(t)),
		}
	}

	r2 := 0.0
	if tss > 0 {
		r2 = 1 - rss/tss
	}

	return &ModelFit{
		Terms:       coefficients,
		Residuals:   residuals,
		Fitted:      fitted,
		N:           n,
		Params:      p,
		RSS:         rss,
		RSquared:    r2,
		AdjRSquared: 1 - (1-r2)*float64(n-1)/float64(n-p),
	}, nil
}
