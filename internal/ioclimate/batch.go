package ioclimate

import (
	"context"
	"log/slog"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gnagro/pkg/agro"
	"github.com/gnames/gnagro/pkg/climate"
	"golang.org/x/sync/errgroup"
)

// Stats counts coordinates that got a sample and those that did not.
type Stats struct {
	Succeeded int
	Failed    int
}

// Enrich fetches samples for all coordinates. Batches of batchSize
// coordinates are fetched concurrently, one batch after another. A failed
// coordinate is counted and skipped. Only context cancellation stops the
// process, then accumulated samples are returned with the error.
func Enrich(
	ctx context.Context,
	f climate.Fetcher,
	coords []agro.Coordinate,
	batchSize int,
) (climate.Samples, Stats, error) {
	var res climate.Samples
	var stats Stats
	batchSize = max(batchSize, 1)

	for start := 0; start < len(coords); start += batchSize {
		if err := ctx.Err(); err != nil {
			return res, stats, err
		}

		end := min(start+batchSize, len(coords))
		batch := coords[start:end]
		samples := make([]*climate.Sample, len(batch))

		var g errgroup.Group
		for i, c := range batch {
			g.Go(func() error {
				smp, err := f.Fetch(ctx, c.Latitude, c.Longitude)
				if err != nil {
					return nil
				}
				samples[i] = &smp
				return nil
			})
		}
		_ = g.Wait()

		for _, smp := range samples {
			if smp == nil {
				stats.Failed++
				continue
			}
			stats.Succeeded++
			res.Add(*smp)
		}

		slog.Debug("Climate batch done",
			"processed", humanize.Comma(int64(end)),
			"total", humanize.Comma(int64(len(coords))),
		)
	}
	return res, stats, nil
}
