// Package calendar infers planting and harvest windows of a species from
// months when its occurrences were recorded.
package calendar

import "github.com/gnames/gnagro/pkg/agro"

// Offsets from the peak month.
const (
	harvestStartOffset  = -1
	harvestEndOffset    = 1
	plantingStartOffset = -5
	plantingEndOffset   = -3
)

// Static labels of every calendar.
const (
	RegionType = "temperate"
	Hemisphere = "northern"
)

// Distribution counts occurrences per month. Occurrences with unknown
// month are ignored.
func Distribution(occs []agro.Occurrence) map[int]int {
	res := make(map[int]int)
	for _, v := range occs {
		if v.Month < 1 || v.Month > 12 {
			continue
		}
		res[v.Month]++
	}
	return res
}

// Peak returns the month with the largest count. On a tie the earliest
// month wins. It returns false for an empty distribution.
func Peak(dist map[int]int) (int, bool) {
	var peak, best int
	for m := 1; m <= 12; m++ {
		if n := dist[m]; n > best {
			peak, best = m, n
		}
	}
	return peak, peak > 0
}

// Derive builds a calendar around the peak month: harvest spans one
// month on each side of the peak, planting runs from five to three months
// before it.
func Derive(speciesID, peak int) agro.PlantingCalendar {
	return agro.PlantingCalendar{
		SpeciesID:          speciesID,
		PlantingStartMonth: Shift(peak, plantingStartOffset),
		PlantingEndMonth:   Shift(peak, plantingEndOffset),
		HarvestStartMonth:  Shift(peak, harvestStartOffset),
		HarvestEndMonth:    Shift(peak, harvestEndOffset),
		RegionType:         RegionType,
		Hemisphere:         Hemisphere,
	}
}

// Shift moves a month by offset wrapping around the year. The result is
// always within 1-12.
func Shift(month, offset int) int {
	return ((month-1+offset)%12+12)%12 + 1
}
