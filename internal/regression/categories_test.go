package regression

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"penguincli/internal/dataset"
)

func TestNewCategoryIndex_FirstAppearanceOrder(t *testing.T) {
	ds := dataset.Dataset{
		{Species: dataset.SpeciesGentoo},
		{Species: dataset.SpeciesChinstrap},
		{Species: dataset.SpeciesGentoo},
		{Species: dataset.SpeciesAdelie},
	}

	idx := NewCategoryIndex(ds)
	require.Equal(t, 3, idx.Len())
	assert.Equal(t, dataset.SpeciesGentoo, idx.Reference())
	assert.Equal(t,
		[]dataset.Species{dataset.SpeciesGentoo, dataset.SpeciesChinstrap, dataset.SpeciesAdelie},
		idx.Levels())

	i, ok := idx.Index(dataset.SpeciesAdelie)
	require.True(t, ok)
	assert.Equal(t, 2, i)

	_, ok = idx.Index("Emperor")
	assert.False(t, ok)
}

func TestNewCategoryIndexFromLevels(t *testing.T) {
	t.Run("valid levels", func(t *testing.T) {
		idx, err := NewCategoryIndexFromLevels([]dataset.Species{
			dataset.SpeciesAdelie, dataset.SpeciesGentoo,
		})
		require.NoError(t, err)
		assert.Equal(t, 2, idx.Len())
		assert.Equal(t, dataset.SpeciesAdelie, idx.Reference())
	})

	t.Run("duplicate level", func(t *testing.T) {
		_, err := NewCategoryIndexFromLevels([]dataset.Species{
			dataset.SpeciesAdelie, dataset.SpeciesAdelie,
		})
		assert.Error(t, err)
	})

	t.Run("empty level", func(t *testing.T) {
		_, err := NewCategoryIndexFromLevels([]dataset.Species{dataset.SpeciesAdelie, ""})
		assert.Error(t, err)
	})
}

func TestCategoryIndex_Empty(t *testing.T) {
	var idx CategoryIndex
	assert.Equal(t, 0, idx.Len())
	assert.Equal(t, dataset.Species(""), idx.Reference())
	assert.Empty(t, idx.Levels())
}

func TestCategoryIndex_LevelsIsACopy(t *testing.T) {
	idx := NewCategoryIndex(dataset.Dataset{
		{Species: dataset.SpeciesAdelie},
		{Species: dataset.SpeciesGentoo},
	})

	levels := idx.Levels()
	levels[0] = "Mutated"
	assert.Equal(t, dataset.SpeciesAdelie, idx.Reference())
}
