package summary

import (
	"context"
	"fmt"
	"log/slog"

	"gonum.org/v1/gonum/stat"

	"penguincli/internal/dataset"
)

// GroupKey identifies a (species, island, sex) group
type GroupKey struct {
	Species dataset.Species `json:"species"`
	Island  dataset.Island  `json:"island"`
	Sex     dataset.Sex     `json:"sex"`
}

// String returns a compact representation of the key
func (k GroupKey) String() string {
	return fmt.Sprintf("%s/%s/%s", k.Species, k.Island, k.Sex)
}

// GroupSummary holds the per-group arithmetic means of the four measurements
type GroupSummary struct {
	GroupKey
	Count               int     `json:"count"`
	MeanBillLengthMM    float64 `json:"mean_bill_length_mm"`
	MeanBillDepthMM     float64 `json:"mean_bill_depth_mm"`
	MeanFlipperLengthMM float64 `json:"mean_flipper_length_mm"`
	MeanBodyMassG       float64 `json:"mean_body_mass_g"`
}

// Mean returns the summary mean for the named measurement
func (g GroupSummary) Mean(m dataset.Measurement) float64 {
	switch m {
	case dataset.BillLength:
		return g.MeanBillLengthMM
	case dataset.BillDepth:
		return g.MeanBillDepthMM
	case dataset.FlipperLength:
		return g.MeanFlipperLengthMM
	default:
		return g.MeanBodyMassG
	}
}

// Summarizer computes grouped summary statistics over a cleaned dataset
type Summarizer struct {
	logger *slog.Logger
}

// NewSummarizer creates a new grouped summarizer
func NewSummarizer(logger *slog.Logger) *Summarizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Summarizer{logger: logger}
}

// accumulator collects the measurement columns of one group
type accumulator struct {
	values [][]float64
}

func newAccumulator() *accumulator {
	return &accumulator{values: make([][]float64, len(dataset.Measurements))}
}

// Summarize groups the observations by (species, island, sex) and computes
// the arithmetic mean of each measurement per group. Observations with any
// missing downstream field must already have been removed; any remaining
// incomplete record is skipped, matching the missing-value policy.
//
// Emission order is the first-appearance order of each key in the input,
// tracked with an explicit key-to-slot mapping so the output is stable and
// deterministic for a fixed input ordering.
func (s *Summarizer) Summarize(ctx context.Context, ds dataset.Dataset) ([]GroupSummary, error) {
	s.logger.InfoContext(ctx, "computing grouped summary",
		slog.Int("observations", ds.Len()))

	var order []GroupKey
	slots := make(map[GroupKey]*accumulator)

	for _, obs := range ds {
		if !obs.IsComplete() {
			continue
		}
		key := GroupKey{Species: obs.Species, Island: obs.Island, Sex: obs.Sex}
		acc, ok := slots[key]
		if !ok {
			acc = newAccumulator()
			slots[key] = acc
			order = append(order, key)
		}
		for i, m := range dataset.Measurements {
			acc.values[i] = append(acc.values[i], obs.Value(m))
		}
	}

	summaries := make([]GroupSummary, 0, len(order))
	for _, key := range order {
		acc := slots[key]
		summaries = append(summaries, GroupSummary{
			GroupKey:            key,
			Count:               len(acc.values[0]),
			MeanBillLengthMM:    stat.Mean(acc.values[0], nil),
			MeanBillDepthMM:     stat.Mean(acc.values[1], nil),
			MeanFlipperLengthMM: stat.Mean(acc.values[2], nil),
			MeanBodyMassG:       stat.Mean(acc.values[3], nil),
		})
	}

	s.logger.InfoContext(ctx, "grouped summary complete",
		slog.Int("groups", len(summaries)))

	return summaries, nil
}
