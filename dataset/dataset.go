// Package dataset loads the mileage/price observations used for training and
// for the precision report.
package dataset

import (
	"bytes"
	"encoding/csv"
	"io"
	"os"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/carprice/pkg/errors"
)

// DefaultFile is the training data file read when none is configured.
const DefaultFile = "data.csv"

// Observation is one row of the training data.
type Observation struct {
	Mileage float64 `csv:"km"`
	Price   float64 `csv:"price"`
}

// Set is an ordered collection of observations.
type Set struct {
	Source       string
	Observations []Observation
}

// Summary describes the ranges reported before training starts.
type Summary struct {
	Samples    int
	MileageMin float64
	MileageMax float64
	PriceMin   float64
	PriceMax   float64
	PriceMean  float64
}

// New returns a set over the given observations.
func New(source string, observations []Observation) *Set {
	return &Set{Source: source, Observations: observations}
}

// LoadFile reads a CSV file whose header contains at least the km and price columns.
func LoadFile(path string) (*Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "carprice: open training data %q", path)
	}
	defer f.Close()

	return Load(f, path)
}

// Load reads CSV observations from r. Columns other than km and price are ignored.
func Load(r io.Reader, source string) (*Set, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrapf(err, "carprice: read training data %q", source)
	}

	if err := checkHeader(raw, source); err != nil {
		return nil, err
	}

	var observations []Observation
	if err := gocsv.UnmarshalBytes(raw, &observations); err != nil {
		return nil, errors.Wrapf(err, "carprice: decode training data %q", source)
	}
	if len(observations) == 0 {
		return nil, errors.NewModelError("dataset.Load", "no observations in "+source, errors.ErrEmptyData)
	}

	return New(source, observations), nil
}

func checkHeader(raw []byte, source string) error {
	header, err := csv.NewReader(bytes.NewReader(raw)).Read()
	if err == io.EOF {
		return errors.NewSchemaError(source, errors.RequiredColumns)
	}
	if err != nil {
		return errors.Wrapf(err, "carprice: read header of %q", source)
	}

	present := make(map[string]bool, len(header))
	for _, name := range header {
		present[name] = true
	}

	var missing []string
	for _, name := range errors.RequiredColumns {
		if !present[name] {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return errors.NewSchemaError(source, missing)
	}
	return nil
}

// Write encodes the set as CSV with a km,price header.
func (s *Set) Write(w io.Writer) error {
	if err := gocsv.Marshal(s.Observations, w); err != nil {
		return errors.Wrap(err, "carprice: encode observations")
	}
	return nil
}

// WriteFile writes the set to path, replacing any existing file.
func (s *Set) WriteFile(path string) error {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return errors.Wrapf(err, "carprice: create %q", path)
	}
	if err := s.Write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Len returns the number of observations.
func (s *Set) Len() int {
	return len(s.Observations)
}

// Mileages returns the km column.
func (s *Set) Mileages() []float64 {
	out := make([]float64, len(s.Observations))
	for i, o := range s.Observations {
		out[i] = o.Mileage
	}
	return out
}

// Prices returns the price column.
func (s *Set) Prices() []float64 {
	out := make([]float64, len(s.Observations))
	for i, o := range s.Observations {
		out[i] = o.Price
	}
	return out
}

// Summary computes column ranges. It panics on an empty set, like floats.Min.
func (s *Set) Summary() Summary {
	mileages, prices := s.Mileages(), s.Prices()
	return Summary{
		Samples:    s.Len(),
		MileageMin: floats.Min(mileages),
		MileageMax: floats.Max(mileages),
		PriceMin:   floats.Min(prices),
		PriceMax:   floats.Max(prices),
		PriceMean:  stat.Mean(prices, nil),
	}
}

// Validate reports whether the set can be fitted: it needs observations and
// at least two distinct mileages.
func (s *Set) Validate() error {
	if s.Len() == 0 {
		return errors.NewModelError("dataset.Validate", "no observations", errors.ErrEmptyData)
	}
	first := s.Observations[0].Mileage
	for _, o := range s.Observations[1:] {
		if o.Mileage != first {
			return nil
		}
	}
	return errors.NewDegenerateInputError("dataset.Validate", "at least two distinct mileages are required")
}
