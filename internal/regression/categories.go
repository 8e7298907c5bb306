package regression

import (
	"fmt"

	"penguincli/internal/dataset"
)

// CategoryIndex is an explicit ordered mapping from species to design-matrix
// index. Index 0 is the reference (baseline) category and carries no dummy
// column; species at index i >= 1 maps to dummy column i-1. Keeping the
// mapping explicit makes the coefficient-to-category association testable
// instead of relying on string dispatch.
type CategoryIndex struct {
	levels []dataset.Species
	index  map[dataset.Species]int
}

// NewCategoryIndex builds an index over the distinct species of the dataset
// in first-appearance order.
func NewCategoryIndex(ds dataset.Dataset) CategoryIndex {
	levels := ds.SpeciesLevels()
	index := make(map[dataset.Species]int, len(levels))
	for i, sp := range levels {
		index[sp] = i
	}
	return CategoryIndex{levels: levels, index: index}
}

// NewCategoryIndexFromLevels builds an index over an explicit level ordering.
// Duplicate or empty levels are rejected.
func NewCategoryIndexFromLevels(levels []dataset.Species) (CategoryIndex, error) {
	index := make(map[dataset.Species]int, len(levels))
	for i, sp := range levels {
		if sp == "" {
			return CategoryIndex{}, fmt.Errorf("empty species level at position %d", i)
		}
		if _, dup := index[sp]; dup {
			return CategoryIndex{}, fmt.Errorf("duplicate species level %q", sp)
		}
		index[sp] = i
	}
	return CategoryIndex{levels: levels, index: index}, nil
}

// Len returns the number of category levels
func (ci CategoryIndex) Len() int {
	return len(ci.levels)
}

// Levels returns the category levels in index order
func (ci CategoryIndex) Levels() []dataset.Species {
	out := make([]dataset.Species, len(ci.levels))
	copy(out, ci.levels)
	return out
}

// Index returns the design index of the species
func (ci CategoryIndex) Index(sp dataset.Species) (int, bool) {
	i, ok := ci.index[sp]
	return i, ok
}

// Reference returns the baseline category
func (ci CategoryIndex) Reference() dataset.Species {
	if len(ci.levels) == 0 {
		return ""
	}
	return ci.levels[0]
}
