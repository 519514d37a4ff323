// Package climate turns climate samples collected at occurrence
// coordinates into climate requirements of a species.
package climate

import (
	"context"
	"errors"
)

var (
	// ErrNoData is returned when a percentile is requested for an empty
	// set of values.
	ErrNoData = errors.New("no data for percentile")

	// ErrNumeric is returned when an estimate is not a finite number.
	ErrNumeric = errors.New("non-finite climate estimate")
)

// Sample is a climate observation at one coordinate.
type Sample struct {
	// Temperature is a mean temperature in °C.
	Temperature float64
	// Rainfall is a precipitation sum in mm.
	Rainfall float64
	// Altitude is an elevation in meters.
	Altitude float64
}

// Fetcher provides a climate sample for a coordinate.
type Fetcher interface {
	Fetch(ctx context.Context, lat, lon float64) (Sample, error)
}

// Samples accumulates climate values of many coordinates. The lists are
// independent, their order does not match occurrences.
type Samples struct {
	Temperatures []float64
	Rainfalls    []float64
	Altitudes    []float64
}

// Add appends a sample to accumulators.
func (s *Samples) Add(smp Sample) {
	s.Temperatures = append(s.Temperatures, smp.Temperature)
	s.Rainfalls = append(s.Rainfalls, smp.Rainfall)
	s.Altitudes = append(s.Altitudes, smp.Altitude)
}

// Len returns the number of temperature values.
func (s *Samples) Len() int {
	return len(s.Temperatures)
}
