// Package dataset loads and cleans the penguin morphometrics dataset.
//
// A Dataset is an ordered, read-only sequence of Observations parsed from
// CSV. Missing numeric values are encoded as NaN and a missing sex as the
// empty string, so cleaning is a pure filter:
//
//	ds, err := dataset.Load("", nil) // embedded data
//	if err != nil {
//	    return err
//	}
//	cases := ds.CompleteCases()          // feeds the grouped summary
//	measured := ds.CompleteMeasurements() // feeds the species model
//
// Both cleaning views preserve input order and never mutate the source.
package dataset
