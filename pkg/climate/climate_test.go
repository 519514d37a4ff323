package climate_test

import (
	"errors"
	"testing"

	"github.com/gnames/gnagro/pkg/agro"
	"github.com/gnames/gnagro/pkg/climate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPercentile(t *testing.T) {
	vals := []float64{50, 10, 40, 20, 30}
	tests := []struct {
		p   float64
		res float64
	}{
		{0, 10},
		{5, 12},
		{25, 20},
		{50, 30},
		{75, 40},
		{95, 48},
		{100, 50},
	}
	for _, v := range tests {
		res, err := climate.Percentile(vals, v.p)
		require.NoError(t, err)
		assert.InDelta(t, v.res, res, 1e-9, "p%v", v.p)
	}
	assert.Equal(t, []float64{50, 10, 40, 20, 30}, vals, "input is not sorted in place")

	res, err := climate.Percentile([]float64{7}, 95)
	require.NoError(t, err)
	assert.InDelta(t, 7.0, res, 1e-9)

	_, err = climate.Percentile(nil, 5)
	assert.True(t, errors.Is(err, climate.ErrNoData))
}

func TestRequirement(t *testing.T) {
	smp := climate.Samples{
		Temperatures: []float64{10, 20, 30, 40, 50},
		Rainfalls:    []float64{100, 200, 300, 400, 500},
		Altitudes:    []float64{0, 100, 200, 300, 400},
	}
	req, err := climate.Requirement(3, smp)
	require.NoError(t, err)

	assert.Equal(t, 3, req.SpeciesID)
	assert.InDelta(t, 12.0, req.TempMin, 1e-9)
	assert.InDelta(t, 20.0, req.TempOptMin, 1e-9)
	assert.InDelta(t, 40.0, req.TempOptMax, 1e-9)
	assert.InDelta(t, 48.0, req.TempMax, 1e-9)
	assert.InDelta(t, 120.0, req.RainfallMin, 1e-9)
	assert.InDelta(t, 480.0, req.RainfallMax, 1e-9)
	assert.InDelta(t, 20.0, req.AltitudeMin, 1e-9)
	assert.InDelta(t, 380.0, req.AltitudeMax, 1e-9)
	assert.Equal(t, agro.ToleranceModerate, req.FrostTolerance)
	assert.Equal(t, agro.ToleranceModerate, req.DroughtTolerance)
}

func TestRequirementEmptyRainfall(t *testing.T) {
	smp := climate.Samples{
		Temperatures: []float64{10, 20},
		Altitudes:    []float64{1, 2},
	}
	_, err := climate.Requirement(1, smp)
	assert.True(t, errors.Is(err, climate.ErrNoData))
	assert.Contains(t, err.Error(), "rainfall")
}

func TestEstimateTemperature(t *testing.T) {
	tests := []struct {
		absLat float64
		res    float64
	}{
		{0, 25},
		{9, 20.5},
		{10, 20},
		{20, 15},
		{30, 15},
		{40, 12},
		{50, 5},
		{60, 0},
		{90, -15},
	}
	for _, v := range tests {
		assert.InDelta(t, v.res, climate.EstimateTemperature(v.absLat), 1e-9,
			"lat %v", v.absLat)
	}
}

func TestEstimator(t *testing.T) {
	est := climate.NewEstimator(42)
	lats := []float64{-89.9, -45, -20, -3, 0, 4.9, 15, 25, 35, 55, 89.9}

	for range 50 {
		for _, lat := range lats {
			smp, err := est.Estimate(lat, 10)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, smp.Temperature, climate.MinTemperature)
			assert.LessOrEqual(t, smp.Temperature, climate.MaxTemperature)
			assert.GreaterOrEqual(t, smp.Rainfall, climate.MinRainfall)
			assert.LessOrEqual(t, smp.Rainfall, climate.MaxRainfall)
			assert.GreaterOrEqual(t, smp.Altitude, 0.0)
		}
	}

	smp, err := est.Estimate(-40, 0)
	require.NoError(t, err)
	assert.InDelta(t, 12.0, smp.Temperature, 1e-9, "southern latitude uses abs value")
}

func TestEstimatorSeed(t *testing.T) {
	e1 := climate.NewEstimator(7)
	e2 := climate.NewEstimator(7)
	for range 10 {
		s1, err := e1.Estimate(12, 0)
		require.NoError(t, err)
		s2, err := e2.Estimate(12, 0)
		require.NoError(t, err)
		assert.Equal(t, s1, s2)
	}
}

func TestSamples(t *testing.T) {
	var smp climate.Samples
	smp.Add(climate.Sample{Temperature: 1, Rainfall: 2, Altitude: 3})
	smp.Add(climate.Sample{Temperature: 4, Rainfall: 5, Altitude: 6})
	assert.Equal(t, 2, smp.Len())
	assert.Equal(t, []float64{2, 5}, smp.Rainfalls)
}
