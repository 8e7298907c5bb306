package regression

import (
	"errors"

	"penguincli/internal/dataset"
)

// Degenerate model inputs are fatal; callers can test for them with
// errors.Is and must not retry.
var (
	// ErrTooFewSpecies indicates the full model cannot be fit because the
	// cleaned data carries fewer than two distinct species.
	ErrTooFewSpecies = errors.New("species model requires at least two distinct species")
	// ErrEmptySpeciesGroup indicates a species level with no observations,
	// leaving its coefficient undefined.
	ErrEmptySpeciesGroup = errors.New("species group has no observations")
	// ErrSingularDesign indicates a singular or ill-conditioned design matrix.
	ErrSingularDesign = errors.New("design matrix is singular or ill-conditioned")
	// ErrNotNested indicates the two models passed to Compare are not a
	// nested null/full pair over the same observations.
	ErrNotNested = errors.New("models are not a nested pair over the same data")
	// ErrBaselineCoding indicates the fitted coefficients do not follow
	// reference-category dummy coding, so per-species means cannot be
	// reconstructed additively.
	ErrBaselineCoding = errors.New("coefficients do not follow reference-category coding")
)

// Coefficient holds one model term with its inference statistics
type Coefficient struct {
	Term     string  `json:"term"`
	Estimate float64 `json:"estimate"`
	StdErr   float64 `json:"std_err"`
	TValue   float64 `json:"t_value"`
	PValue   float64 `json:"p_value"`
}

// ModelFit holds a fitted ordinary least squares model
type ModelFit struct {
	// Terms are the model coefficients in design-matrix column order;
	// the intercept is always first.
	Terms []Coefficient `json:"terms"`
	// Residuals and Fitted are index-aligned with the input observations.
	Residuals []float64 `json:"residuals"`
	Fitted    []float64 `json:"fitted"`

	N           int     `json:"n"`
	Params      int     `json:"params"`
	RSS         float64 `json:"rss"`
	RSquared    float64 `json:"r_squared"`
	AdjRSquared float64 `json:"adj_r_squared"`
}

// ResidualDF returns the residual degrees of freedom of the fit
func (m *ModelFit) ResidualDF() int {
	return m.N - m.Params
}

// AnovaResult holds a nested-model F-test comparing a null and a full model
type AnovaResult struct {
	F       float64 `json:"f"`
	NumDF   int     `json:"num_df"`
	DenDF   int     `json:"den_df"`
	PValue  float64 `json:"p_value"`
	RSSNull float64 `json:"rss_null"`
	RSSFull float64 `json:"rss_full"`
}

// SpeciesMean is a per-species body mass mean reconstructed from the full
// model's coefficients.
type SpeciesMean struct {
	Species       dataset.Species `json:"species"`
	MeanBodyMassG float64         `json:"mean_body_mass_g"`
}
