package ioclimate

import (
	"context"
	"log/slog"

	"github.com/gnames/gnagro/pkg/climate"
)

// Sampler gets samples from the archive and falls back to the estimator.
type Sampler struct {
	archive climate.Fetcher
	est     *climate.Estimator
}

// NewSampler creates a Sampler. With nil archive every sample is
// estimated.
func NewSampler(archive climate.Fetcher, est *climate.Estimator) *Sampler {
	return &Sampler{archive: archive, est: est}
}

// Fetch returns an archive sample, or an estimate if the archive failed.
// An error means that the estimate failed as well.
func (s *Sampler) Fetch(
	ctx context.Context,
	lat, lon float64,
) (climate.Sample, error) {
	if s.archive != nil {
		smp, err := s.archive.Fetch(ctx, lat, lon)
		if err == nil {
			return smp, nil
		}
		slog.Debug("Archive unavailable, estimating climate",
			"lat", lat, "lon", lon, "error", err)
	}

	smp, err := s.est.Estimate(lat, lon)
	if err != nil {
		slog.Debug("Climate estimate failed",
			"lat", lat, "lon", lon, "error", err)
		return smp, err
	}
	return smp, nil
}
