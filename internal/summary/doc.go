// Package summary computes grouped summary statistics over a cleaned
// penguin dataset: one row of measurement means per distinct
// (species, island, sex) group, emitted in first-appearance order.
package summary
