package dataset

import (
	"math"
)

// Species identifies a penguin species
type Species string

const (
	SpeciesAdelie    Species = "Adelie"
	SpeciesChinstrap Species = "Chinstrap"
	SpeciesGentoo    Species = "Gentoo"
)

// Island identifies the island an observation was collected on
type Island string

const (
	IslandBiscoe    Island = "Biscoe"
	IslandDream     Island = "Dream"
	IslandTorgersen Island = "Torgersen"
)

// Sex identifies the recorded sex of a penguin. An empty value means the
// field was missing in the source data.
type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

// Measurement enumerates the four numeric morphometric columns
type Measurement int

const (
	BillLength Measurement = iota
	BillDepth
	FlipperLength
	BodyMass
)

// Measurements lists all measurements in canonical column order
var Measurements = []Measurement{BillLength, BillDepth, FlipperLength, BodyMass}

// String returns the human-readable name of the measurement
func (m Measurement) String() string {
	switch m {
	case BillLength:
		return "bill length (mm)"
	case BillDepth:
		return "bill depth (mm)"
	case FlipperLength:
		return "flipper length (mm)"
	case BodyMass:
		return "body mass (g)"
	default:
		return "unknown"
	}
}

// Column returns the dataset column name of the measurement
func (m Measurement) Column() string {
	switch m {
	case BillLength:
		return "bill_length_mm"
	case BillDepth:
		return "bill_depth_mm"
	case FlipperLength:
		return "flipper_length_mm"
	case BodyMass:
		return "body_mass_g"
	default:
		return "unknown"
	}
}

// Observation represents a single penguin record. Missing numeric values are
// encoded as NaN, a missing sex as the empty string, a missing year as zero.
type Observation struct {
	Species         Species `json:"species"`
	Island          Island  `json:"island"`
	Sex             Sex     `json:"sex"`
	BillLengthMM    float64 `json:"bill_length_mm"`
	BillDepthMM     float64 `json:"bill_depth_mm"`
	FlipperLengthMM float64 `json:"flipper_length_mm"`
	BodyMassG       float64 `json:"body_mass_g"`
	Year            int     `json:"year"`
}

// Value returns the named measurement of the observation
func (o Observation) Value(m Measurement) float64 {
	switch m {
	case BillLength:
		return o.BillLengthMM
	case BillDepth:
		return o.BillDepthMM
	case FlipperLength:
		return o.FlipperLengthMM
	case BodyMass:
		return o.BodyMassG
	default:
		return math.NaN()
	}
}

// HasCompleteMeasurements reports whether none of the four numeric
// measurements is missing.
func (o Observation) HasCompleteMeasurements() bool {
	for _, m := range Measurements {
		if math.IsNaN(o.Value(m)) {
			return false
		}
	}
	return o.Species != "" && o.Island != ""
}

// IsComplete reports whether the observation has no missing field among
// those used anywhere downstream, including sex.
func (o Observation) IsComplete() bool {
	return o.HasCompleteMeasurements() && o.Sex != ""
}

// Dataset is an ordered sequence of observations, immutable once loaded.
// Derived views are new slices; the backing records are never mutated.
type Dataset []Observation

// Len returns the number of observations
func (ds Dataset) Len() int {
	return len(ds)
}

// CompleteCases returns the order-preserving subsequence of observations
// with no missing value in any downstream field, including sex. This feeds
// the grouped summary.
func (ds Dataset) CompleteCases() Dataset {
	out := make(Dataset, 0, len(ds))
	for _, o := range ds {
		if o.IsComplete() {
			out = append(out, o)
		}
	}
	return out
}

// CompleteMeasurements returns the order-preserving subsequence of
// observations with all four measurements present. Sex may still be missing;
// this feeds the species model, which does not use sex.
func (ds Dataset) CompleteMeasurements() Dataset {
	out := make(Dataset, 0, len(ds))
	for _, o := range ds {
		if o.HasCompleteMeasurements() {
			out = append(out, o)
		}
	}
	return out
}

// SpeciesLevels returns the distinct species in first-appearance order
func (ds Dataset) SpeciesLevels() []Species {
	seen := make(map[Species]bool)
	var levels []Species
	for _, o := range ds {
		if o.Species == "" || seen[o.Species] {
			continue
		}
		seen[o.Species] = true
		levels = append(levels, o.Species)
	}
	return levels
}

// BodyMasses returns the body mass column of the dataset
func (ds Dataset) BodyMasses() []float64 {
	out := make([]float64, len(ds))
	for i, o := range ds {
		out[i] = o.BodyMassG
	}
	return out
}
