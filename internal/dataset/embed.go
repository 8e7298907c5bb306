package dataset

import (
	_ "embed"
)

// embeddedPenguins carries the Palmer penguins dataset so the pipeline runs
// without any external files. 344 observations collected 2007-2009 on three
// islands of the Palmer Archipelago.
//
//go:embed penguins.csv
var embeddedPenguins []byte
