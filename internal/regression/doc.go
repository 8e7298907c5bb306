// Package regression fits ordinary least squares models of penguin body
// mass and compares them with a nested-model F-test.
//
// Two models are supported: the intercept-only null model, and the full
// model of body mass on species with reference-category dummy coding. The
// design is solved by QR decomposition for numerical stability, since
// categorical design matrices with sparse groups can be ill-conditioned.
//
//	fitter := regression.NewFitter(logger)
//	nullFit, err := fitter.FitNull(ctx, cleaned)
//	fullFit, idx, err := fitter.FitSpecies(ctx, cleaned)
//	anova, err := fitter.Compare(nullFit, fullFit)
//	means, err := regression.ReconstructSpeciesMeans(fullFit, idx)
//
// Degenerate inputs (fewer than two species, an empty species group, a
// singular design) fail with typed sentinel errors; the fitter never emits
// NaN coefficients.
package regression
