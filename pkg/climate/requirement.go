package climate

import (
	"fmt"
	"math"
	"slices"

	"github.com/gnames/gnagro/pkg/agro"
)

// Percentile computes p-th percentile (0-100) of values with linear
// interpolation between closest ranks, the same way as numpy's default
// method. Values are not modified.
func Percentile(values []float64, p float64) (float64, error) {
	if len(values) == 0 {
		return 0, ErrNoData
	}
	sorted := slices.Clone(values)
	slices.Sort(sorted)

	p = clamp(p, 0, 100)
	pos := p / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo], nil
	}
	frac := pos - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac, nil
}

// Requirement reduces accumulated samples to climate requirement bounds.
// Temperature and rainfall get 5/25/75/95 percentiles, altitude gets
// 5/95 percentiles. Any empty accumulator results in ErrNoData.
func Requirement(speciesID int, smp Samples) (agro.ClimateRequirement, error) {
	res := agro.ClimateRequirement{
		SpeciesID:        speciesID,
		FrostTolerance:   agro.ToleranceModerate,
		DroughtTolerance: agro.ToleranceModerate,
	}

	type target struct {
		name   string
		values []float64
		p      float64
		field  *float64
	}
	targets := []target{
		{"temperature", smp.Temperatures, 5, &res.TempMin},
		{"temperature", smp.Temperatures, 25, &res.TempOptMin},
		{"temperature", smp.Temperatures, 75, &res.TempOptMax},
		{"temperature", smp.Temperatures, 95, &res.TempMax},
		{"rainfall", smp.Rainfalls, 5, &res.RainfallMin},
		{"rainfall", smp.Rainfalls, 25, &res.RainfallOptMin},
		{"rainfall", smp.Rainfalls, 75, &res.RainfallOptMax},
		{"rainfall", smp.Rainfalls, 95, &res.RainfallMax},
		{"altitude", smp.Altitudes, 5, &res.AltitudeMin},
		{"altitude", smp.Altitudes, 95, &res.AltitudeMax},
	}

	for _, v := range targets {
		val, err := Percentile(v.values, v.p)
		if err != nil {
			return res, fmt.Errorf("%s p%v: %w", v.name, v.p, err)
		}
		*v.field = val
	}
	return res, nil
}
