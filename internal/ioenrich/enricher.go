// Package ioenrich implements the Enricher interface. It sequences
// species loading, climate sampling and the writes of derived profiles
// for every enrichment run.
package ioenrich

import (
	"context"
	"log/slog"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gnagro/internal/ioclimate"
	"github.com/gnames/gnagro/pkg/agro"
	"github.com/gnames/gnagro/pkg/climate"
	"github.com/gnames/gnagro/pkg/companion"
	"github.com/gnames/gnagro/pkg/config"
	"github.com/gnames/gnagro/pkg/lifecycle"
	"github.com/gnames/gnagro/pkg/parserpool"
	"github.com/gnames/gnfmt"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

type enricher struct {
	cfg   *config.Config
	store lifecycle.Storage
	rules companion.Rules

	// archive is nil in offline mode.
	archive climate.Fetcher
	parser  parserpool.Pool

	// now gives the timestamp of results.
	now func() time.Time
}

// New creates an Enricher that keeps derived profiles in the store.
// Unless offline mode is set, climate samples come from the historical
// archive shared by all runs.
func New(
	cfg *config.Config,
	store lifecycle.Storage,
) (lifecycle.Enricher, error) {
	rules, err := companion.DefaultRules()
	if err != nil {
		return nil, err
	}

	res := &enricher{
		cfg:    cfg,
		store:  store,
		rules:  rules,
		parser: parserpool.NewPool(cfg.JobsNumber),
		now:    time.Now,
	}
	if !cfg.Enrich.Offline {
		res.archive = ioclimate.NewArchive(cfg.Climate)
	}
	return res, nil
}

// Enrich runs the pipeline for one species. A missing species, failed
// species or occurrences loading, or a panic make the whole run fail.
// A species without occurrences gives a warning. Otherwise every derived
// write is attempted and reports its own status.
func (e *enricher) Enrich(ctx context.Context, id int) (res agro.Result) {
	log := slog.With("run_id", uuid.NewString(), "id_species", id)
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			err := PanicError(id, r)
			log.Error("Enrichment panicked", "error", err)
			res = agro.Result{SpeciesID: id, Error: errorText(err)}
		}
	}()

	sess, err := e.store.Session(ctx)
	if err != nil {
		return runFailed(log, id, err)
	}
	defer sess.Release()

	sp, ok, err := sess.Species(ctx, id)
	if err != nil {
		return runFailed(log, id, SpeciesLoadError(id, err))
	}
	if !ok {
		return runFailed(log, id, SpeciesNotFoundError(id))
	}
	if sp.Genus == "" {
		sp.Genus = e.parser.Genus(sp.ScientificName)
	}
	log.Info("Enriching species",
		"name", sp.ScientificName,
		"genus", sp.Genus,
		"family", sp.Family,
	)

	occs, err := sess.Occurrences(ctx, id)
	if err != nil {
		return runFailed(log, id, OccurrencesLoadError(id, err))
	}
	if len(occs) == 0 {
		log.Warn("Species has no occurrences")
		return agro.Result{SpeciesID: id, Warning: NoOccurrencesText}
	}
	logOccurrences(log, occs)

	res = agro.NewResult(sp, e.now())
	ops := res.Operations
	ops.Climate = e.climateStep(ctx, log, sess, sp, occs)
	ops.CropProfile = cropStep(ctx, log, sess, sp)
	ops.Soil = soilStep(ctx, log, sess, sp)
	ops.Calendar = calendarStep(ctx, log, sess, sp, occs)
	ops.Companions = e.companionsStep(ctx, log, sess, sp)

	log.Info("Enrichment done",
		"step_errors", res.StepErrors(),
		"duration", gnfmt.TimeString(time.Since(start).Seconds()),
	)
	return res
}

// EnrichAll runs up to JobsNumber enrichments at a time. Results keep the
// order of ids.
func (e *enricher) EnrichAll(ctx context.Context, ids []int) []agro.Result {
	res := make([]agro.Result, len(ids))
	var bar *pb.ProgressBar
	if len(ids) > 1 {
		bar = newProgressBar(len(ids))
		defer bar.Finish()
	}

	var g errgroup.Group
	g.SetLimit(max(e.cfg.JobsNumber, 1))
	for i, id := range ids {
		g.Go(func() error {
			res[i] = e.Enrich(ctx, id)
			if bar != nil {
				bar.Increment()
			}
			return nil
		})
	}
	_ = g.Wait()

	var failed int
	for _, v := range res {
		if v.Failed() {
			failed++
		}
	}
	slog.Info("Enrichment of species finished",
		"total", humanize.Comma(int64(len(ids))),
		"failed", humanize.Comma(int64(failed)),
	)
	return res
}

// fetcher gives a run its own estimator, so seeded runs do not depend on
// each other. The archive with its cache and rate limit is shared.
func (e *enricher) fetcher() climate.Fetcher {
	est := climate.NewEstimator(e.cfg.Enrich.Seed)
	return ioclimate.NewSampler(e.archive, est)
}

func runFailed(log *slog.Logger, id int, err error) agro.Result {
	log.Error("Enrichment failed", "error", err)
	return agro.Result{SpeciesID: id, Error: errorText(err)}
}

func logOccurrences(log *slog.Logger, occs []agro.Occurrence) {
	args := []any{"occurrences", humanize.Comma(int64(len(occs)))}
	if minDate, maxDate, ok := agro.DateSpan(occs); ok {
		args = append(args,
			"from", minDate.Format(time.DateOnly),
			"to", maxDate.Format(time.DateOnly),
		)
	}
	log.Info("Occurrences loaded", args...)
}
