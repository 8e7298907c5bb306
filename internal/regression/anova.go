package regression

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/stat/distuv"
)

// Compare runs the nested-model F-test between a null and a full fit over
// the same observations:
//
//	F = [(RSS0 - RSS1)/(p1 - p0)] / [RSS1/(n - p1)]
//
// with (p1 - p0) numerator and (n - p1) denominator degrees of freedom.
func (f *Fitter) Compare(nullFit, fullFit *ModelFit) (*AnovaResult, error) {
	if nullFit == nil || fullFit == nil {
		return nil, fmt.Errorf("%w: nil model", ErrNotNested)
	}
	if nullFit.N != fullFit.N {
		return nil, fmt.Errorf("%w: null has n=%d, full has n=%d", ErrNotNested, nullFit.N, fullFit.N)
	}
	if fullFit.Params <= nullFit.Params {
		return nil, fmt.Errorf("%w: full model must add parameters (null p=%d, full p=%d)",
			ErrNotNested, nullFit.Params, fullFit.Params)
	}

	numDF := fullFit.Params - nullFit.Params
	denDF := fullFit.N - fullFit.Params
	if denDF <= 0 {
		return nil, fmt.Errorf("%w: no residual degrees of freedom", ErrNotNested)
	}
	if fullFit.RSS <= 0 {
		return nil, fmt.Errorf("%w: full model has zero residual sum of squares", ErrSingularDesign)
	}

	fStat := ((nullFit.RSS - fullFit.RSS) / float64(numDF)) / (fullFit.RSS / float64(denDF))
	fDist := distuv.F{D1: float64(numDF), D2: float64(denDF)}

	return &AnovaResult{
		F:       fStat,
		NumDF:   numDF,
		DenDF:   denDF,
		PValue:  fDist.Survival(fStat),
		RSSNull: nullFit.RSS,
		RSSFull: fullFit.RSS,
	}, nil
}

// ReconstructSpeciesMeans derives each species' mean body mass from the full
// model's coefficients: the reference category's mean is the raw intercept,
// every other category's mean is intercept plus that category's dummy
// estimate. The additive reconstruction is only valid under strict
// reference-category coding, so the term layout is asserted against the
// CategoryIndex rather than assumed.
func ReconstructSpeciesMeans(fit *ModelFit, idx CategoryIndex) ([]SpeciesMean, error) {
	if fit == nil || len(fit.Terms) == 0 {
		return nil, fmt.Errorf("%w: no coefficients", ErrBaselineCoding)
	}
	if len(fit.Terms) != idx.Len() {
		return nil, fmt.Errorf("%w: %d coefficients for %d categories",
			ErrBaselineCoding, len(fit.Terms), idx.Len())
	}
	if fit.Terms[0].Term != interceptTerm {
		return nil, fmt.Errorf("%w: first term is %q, not the intercept",
			ErrBaselineCoding, fit.Terms[0].Term)
	}

	// The reference level must not own a dummy column.
	ref := idx.Reference()
	for _, c := range fit.Terms[1:] {
		if strings.Contains(c.Term, string(ref)) {
			return nil, fmt.Errorf("%w: reference category %s has a dummy coefficient",
				ErrBaselineCoding, ref)
		}
	}

	intercept := fit.Terms[0].Estimate
	means := make([]SpeciesMean, idx.Len())
	means[0] = SpeciesMean{Species: ref, MeanBodyMassG: intercept}

	for j := 1; j < idx.Len(); j++ {
		level := idx.levels[j]
		want := speciesTerm(level)
		if fit.Terms[j].Term != want {
			return nil, fmt.Errorf("%w: term %d is %q, expected %q",
				ErrBaselineCoding, j, fit.Terms[j].Term, want)
		}
		means[j] = SpeciesMean{
			Species:       level,
			MeanBodyMassG: intercept + fit.Terms[j].Estimate,
		}
	}

	return means, nil
}
