package lifecycle

import (
	"context"

	"github.com/gnames/gnagro/pkg/agro"
)

// Enricher derives agronomic profiles of species from their occurrences.
type Enricher interface {
	// Enrich runs the whole pipeline for one species. Failures are
	// reported inside the result, never returned.
	Enrich(ctx context.Context, speciesID int) agro.Result

	// EnrichAll enriches many species concurrently. Results keep the
	// order of ids.
	EnrichAll(ctx context.Context, speciesIDs []int) []agro.Result
}
