package regression

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"penguincli/internal/dataset"
)

func TestReconstructSpeciesMeans(t *testing.T) {
	ds := threeSpecies()
	fit, idx, err := NewFitter(nil).FitSpecies(context.Background(), ds)
	require.NoError(t, err)

	means, err := ReconstructSpeciesMeans(fit, idx)
	require.NoError(t, err)
	require.Len(t, means, 3)

	// Reference category mean is the raw intercept; the rest are additive
	assert.Equal(t, dataset.SpeciesAdelie, means[0].Species)
	assert.InEpsilon(t, 4200.0, means[0].MeanBodyMassG, 1e-9)
	assert.Equal(t, dataset.SpeciesGentoo, means[1].Species)
	assert.InEpsilon(t, 5400.0, means[1].MeanBodyMassG, 1e-9)
	assert.Equal(t, dataset.SpeciesChinstrap, means[2].Species)
	assert.InEpsilon(t, 3200.0, means[2].MeanBodyMassG, 1e-9)
}

func TestReconstructSpeciesMeans_RejectsBadCoding(t *testing.T) {
	ds := threeSpecies()
	fit, idx, err := NewFitter(nil).FitSpecies(context.Background(), ds)
	require.NoError(t, err)

	t.Run("nil fit", func(t *testing.T) {
		_, err := ReconstructSpeciesMeans(nil, idx)
		assert.ErrorIs(t, err, ErrBaselineCoding)
	})

	t.Run("coefficient count mismatch", func(t *testing.T) {
		twoLevels, err := NewCategoryIndexFromLevels([]dataset.Species{
			dataset.SpeciesAdelie, dataset.SpeciesGentoo,
		})
		require.NoError(t, err)
		_, err = ReconstructSpeciesMeans(fit, twoLevels)
		assert.ErrorIs(t, err, ErrBaselineCoding)
	})

	t.Run("missing intercept", func(t *testing.T) {
		broken := *fit
		broken.Terms = append([]Coefficient{}, fit.Terms...)
		broken.Terms[0].Term = "species[Adelie]"
		_, err := ReconstructSpeciesMeans(&broken, idx)
		assert.ErrorIs(t, err, ErrBaselineCoding)
	})

	t.Run("reference category has a dummy", func(t *testing.T) {
		broken := *fit
		broken.Terms = append([]Coefficient{}, fit.Terms...)
		broken.Terms[1].Term = "species[Adelie]"
		_, err := ReconstructSpeciesMeans(&broken, idx)
		assert.ErrorIs(t, err, ErrBaselineCoding)
	})

	t.Run("term order mismatch", func(t *testing.T) {
		broken := *fit
		broken.Terms = append([]Coefficient{}, fit.Terms...)
		broken.Terms[1], broken.Terms[2] = broken.Terms[2], broken.Terms[1]
		_, err := ReconstructSpeciesMeans(&broken, idx)
		assert.ErrorIs(t, err, ErrBaselineCoding)
	})
}

func TestAnovaResult_AgainstGroupedDecomposition(t *testing.T) {
	// With a saturated categorical model the ANOVA decomposition equals the
	// classic between/within sum-of-squares split.
	ds := threeSpecies()
	fitter := NewFitter(nil)
	ctx := context.Background()

	nullFit, err := fitter.FitNull(ctx, ds)
	require.NoError(t, err)
	fullFit, _, err := fitter.FitSpecies(ctx, ds)
	require.NoError(t, err)

	anova, err := fitter.Compare(nullFit, fullFit)
	require.NoError(t, err)

	between := anova.RSSNull - anova.RSSFull
	assert.InEpsilon(t, 5954285.714285714, between, 1e-9)
	assert.InEpsilon(t, 480000.0, anova.RSSFull, 1e-9)
}
