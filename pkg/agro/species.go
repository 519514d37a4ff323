// Package agro contains entities of the agronomic enrichment: the species
// and occurrences it reads, the profiles it derives and the result it
// reports back to callers.
package agro

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gnames/gnlib"
)

var (
	// ErrInvalidSpecies is returned when a species row lacks required
	// fields.
	ErrInvalidSpecies = errors.New("invalid species")

	// ErrInvalidOccurrence is returned when an occurrence row cannot be
	// used by the pipeline.
	ErrInvalidOccurrence = errors.New("invalid occurrence")
)

// Species is a taxon imported from external registries. The pipeline only
// reads it.
type Species struct {
	ID             int
	ScientificName string
	Genus          string
	Family         string
}

// NewSpecies validates and normalizes a species row as it enters the
// pipeline. Genus can be empty, family can be empty as well (companion
// and nitrogen rules simply do not match then).
func NewSpecies(id int, scientificName, genus, family string) (Species, error) {
	var res Species
	if id <= 0 {
		return res, fmt.Errorf("%w: id %d is not positive", ErrInvalidSpecies, id)
	}
	scientificName = strings.TrimSpace(gnlib.FixUtf8(scientificName))
	if scientificName == "" {
		return res, fmt.Errorf("%w: species %d has no scientific name",
			ErrInvalidSpecies, id)
	}
	res = Species{
		ID:             id,
		ScientificName: scientificName,
		Genus:          strings.TrimSpace(gnlib.FixUtf8(genus)),
		Family:         strings.TrimSpace(gnlib.FixUtf8(family)),
	}
	return res, nil
}

// Occurrence is a georeferenced, dated observation of a species.
type Occurrence struct {
	Latitude  float64
	Longitude float64
	EventDate time.Time
	// Month is 1-12, or 0 when the month is unknown.
	Month int
}

// NewOccurrence builds an Occurrence from nullable database columns.
// Rows without coordinates are rejected. A month outside of 1-12 is
// treated as unknown.
func NewOccurrence(lat, lon *float64, eventDate *time.Time, month *int) (Occurrence, error) {
	var res Occurrence
	if lat == nil || lon == nil {
		return res, fmt.Errorf("%w: missing coordinates", ErrInvalidOccurrence)
	}
	res.Latitude = *lat
	res.Longitude = *lon
	if eventDate != nil {
		res.EventDate = *eventDate
	}
	if month != nil && *month >= 1 && *month <= 12 {
		res.Month = *month
	}
	return res, nil
}

// Coordinate is a latitude/longitude pair.
type Coordinate struct {
	Latitude  float64
	Longitude float64
}

// Coordinates extracts coordinate pairs from occurrences keeping their
// order.
func Coordinates(occs []Occurrence) []Coordinate {
	res := make([]Coordinate, len(occs))
	for i, v := range occs {
		res[i] = Coordinate{Latitude: v.Latitude, Longitude: v.Longitude}
	}
	return res
}

// DateSpan returns the earliest and latest known event dates. The last
// value is false if no occurrence has a date.
func DateSpan(occs []Occurrence) (time.Time, time.Time, bool) {
	var minDate, maxDate time.Time
	var found bool
	for _, v := range occs {
		if v.EventDate.IsZero() {
			continue
		}
		if !found || v.EventDate.Before(minDate) {
			minDate = v.EventDate
		}
		if !found || v.EventDate.After(maxDate) {
			maxDate = v.EventDate
		}
		found = true
	}
	return minDate, maxDate, found
}
