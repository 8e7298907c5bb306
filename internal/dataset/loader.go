package dataset

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"penguincli/internal/errors"
)

// Column names required in the source CSV.
const (
	colSpecies = "species"
	colIsland  = "island"
	colSex     = "sex"
	colYear    = "year"
)

// Load reads a penguin dataset from the CSV file at path. An empty path
// loads the embedded Palmer penguins dataset. The missingTokens are the cell
// values treated as missing.
func Load(path string, missingTokens []string) (Dataset, error) {
	if path == "" {
		return LoadReader(bytes.NewReader(embeddedPenguins), missingTokens)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, errors.NewStorageError("failed to open dataset file", err).
			WithContext("path", path)
	}
	defer file.Close()

	ds, err := LoadReader(file, missingTokens)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return ds, nil
}

// LoadReader reads a penguin dataset from CSV data. The first row must be a
// header carrying the species, island, sex, year and measurement columns.
// A malformed file is a fatal parsing error; no partial dataset is returned.
func LoadReader(r io.Reader, missingTokens []string) (Dataset, error) {
	if len(missingTokens) == 0 {
		missingTokens = []string{"NA", ""}
	}

	df := dataframe.ReadCSV(r,
		dataframe.HasHeader(true),
		dataframe.NaNValues(missingTokens),
		dataframe.WithTypes(map[string]series.Type{
			colSpecies:              series.String,
			colIsland:               series.String,
			colSex:                  series.String,
			colYear:                 series.Int,
			BillLength.Column():     series.Float,
			BillDepth.Column():      series.Float,
			FlipperLength.Column():  series.Float,
			BodyMass.Column():       series.Float,
		}),
	)
	if df.Err != nil {
		return nil, errors.NewParsingError("failed to parse dataset CSV", df.Err)
	}

	if err := checkColumns(df.Names()); err != nil {
		return nil, err
	}

	species := df.Col(colSpecies)
	island := df.Col(colIsland)
	sex := df.Col(colSex)
	year := df.Col(colYear)
	measured := make(map[Measurement]series.Series, len(Measurements))
	for _, m := range Measurements {
		measured[m] = df.Col(m.Column())
	}

	ds := make(Dataset, 0, df.Nrow())
	for i := 0; i < df.Nrow(); i++ {
		obs := Observation{
			BillLengthMM:    floatOrNaN(measured[BillLength].Elem(i)),
			BillDepthMM:     floatOrNaN(measured[BillDepth].Elem(i)),
			FlipperLengthMM: floatOrNaN(measured[FlipperLength].Elem(i)),
			BodyMassG:       floatOrNaN(measured[BodyMass].Elem(i)),
		}
		if e := species.Elem(i); !e.IsNA() {
			obs.Species = Species(e.String())
		}
		if e := island.Elem(i); !e.IsNA() {
			obs.Island = Island(e.String())
		}
		if e := sex.Elem(i); !e.IsNA() {
			obs.Sex = Sex(e.String())
		}
		if y, err := year.Elem(i).Int(); err == nil {
			obs.Year = y
		}
		ds = append(ds, obs)
	}

	return ds, nil
}

// checkColumns verifies that every required column is present
func checkColumns(names []string) error {
	present := make(map[string]bool, len(names))
	for _, n := range names {
		present[n] = true
	}

	required := []string{colSpecies, colIsland, colSex, colYear}
	for _, m := range Measurements {
		required = append(required, m.Column())
	}

	for _, col := range required {
		if !present[col] {
			return errors.NewParsingError(
				fmt.Sprintf("dataset is missing required column %q", col), nil).
				WithContext("columns", names)
		}
	}
	return nil
}

// floatOrNaN reads a float element, mapping missing values to NaN
func floatOrNaN(e series.Element) float64 {
	if e.IsNA() {
		return math.NaN()
	}
	return e.Float()
}
