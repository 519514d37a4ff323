package climate

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sync"
)

// Clamp ranges of estimated values.
const (
	MinTemperature = -20.0
	MaxTemperature = 50.0
	MinRainfall    = 100.0
	MaxRainfall    = 5000.0
)

// Estimator synthesizes a climate sample from latitude alone. It is used
// when the archive does not answer. Rainfall and altitude contain
// Gaussian noise, so the source of randomness can be seeded for
// reproducible runs.
type Estimator struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewEstimator creates an Estimator. Zero seed means a random seed.
func NewEstimator(seed int64) *Estimator {
	var s1, s2 uint64
	if seed == 0 {
		s1, s2 = rand.Uint64(), rand.Uint64()
	} else {
		s1, s2 = uint64(seed), uint64(seed)
	}
	return &Estimator{rnd: rand.New(rand.NewPCG(s1, s2))}
}

// Estimate returns an approximate climate sample for a coordinate.
// Longitude does not take part in the estimate.
func (e *Estimator) Estimate(lat, _ float64) (Sample, error) {
	var res Sample
	absLat := math.Abs(lat)

	e.mu.Lock()
	rainNoise := e.rnd.NormFloat64()
	altNoise := e.rnd.NormFloat64()
	e.mu.Unlock()

	temp := EstimateTemperature(absLat)
	rain := rainfallMean(absLat) + rainfallStdDev(absLat)*rainNoise
	alt := math.Max(0, 200+50*altNoise)

	for _, v := range []float64{temp, rain, alt} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return res, fmt.Errorf("%w: latitude %v", ErrNumeric, lat)
		}
	}

	res = Sample{
		Temperature: clamp(temp, MinTemperature, MaxTemperature),
		Rainfall:    clamp(rain, MinRainfall, MaxRainfall),
		Altitude:    alt,
	}
	return res, nil
}

// EstimateTemperature applies linear latitude bands to an absolute
// latitude. The result is not clamped.
func EstimateTemperature(absLat float64) float64 {
	switch {
	case absLat < 10:
		return 25 - 0.5*absLat
	case absLat < 30:
		return 20 - 0.5*(absLat-10)
	case absLat < 50:
		return 15 - 0.3*(absLat-30)
	default:
		return 5 - 0.5*(absLat-50)
	}
}

func rainfallMean(absLat float64) float64 {
	switch {
	case absLat < 5:
		return 2000
	case absLat < 20:
		return 1200
	case absLat < 30:
		return 600
	default:
		return 800
	}
}

func rainfallStdDev(absLat float64) float64 {
	switch {
	case absLat < 5:
		return 300
	case absLat < 20:
		return 400
	case absLat < 30:
		return 300
	default:
		return 400
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}
