package ioenrich

import (
	"context"
	"log/slog"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gnagro/internal/ioclimate"
	"github.com/gnames/gnagro/pkg/agro"
	"github.com/gnames/gnagro/pkg/calendar"
	"github.com/gnames/gnagro/pkg/climate"
	"github.com/gnames/gnagro/pkg/lifecycle"
)

const (
	noTemperatureReason = "no temperature data"
	noMonthReason       = "no month data"
)

func stepFailed(log *slog.Logger, step string, err error) agro.StepResult {
	log.Error("Enrichment step failed", "step", step, "error", err)
	return agro.Failed(errorText(err))
}

// climateStep samples climate at every occurrence and stores percentile
// bounds of the samples.
func (e *enricher) climateStep(
	ctx context.Context,
	log *slog.Logger,
	sess lifecycle.Session,
	sp agro.Species,
	occs []agro.Occurrence,
) agro.ClimateStep {
	var res agro.ClimateStep
	coords := agro.Coordinates(occs)
	samples, stats, err := ioclimate.Enrich(
		ctx, e.fetcher(), coords, e.cfg.Climate.BatchSize,
	)
	log.Info("Climate samples collected",
		"succeeded", humanize.Comma(int64(stats.Succeeded)),
		"failed", humanize.Comma(int64(stats.Failed)),
	)
	if err != nil {
		res.StepResult = stepFailed(log, "climate", err)
		return res
	}

	if len(samples.Temperatures) == 0 {
		res.StepResult = agro.Skipped(noTemperatureReason)
		return res
	}

	req, err := climate.Requirement(sp.ID, samples)
	if err != nil {
		res.StepResult = stepFailed(log, "climate", err)
		return res
	}

	if err = sess.UpsertClimateRequirement(ctx, req); err != nil {
		res.StepResult = stepFailed(log, "climate", err)
		return res
	}
	log.Debug("Climate requirements stored",
		"temp_min", req.TempMin, "temp_max", req.TempMax,
		"rainfall_min", req.RainfallMin, "rainfall_max", req.RainfallMax,
	)
	res.StepResult = agro.Inserted()
	res.Params = &req
	return res
}

func cropStep(
	ctx context.Context,
	log *slog.Logger,
	sess lifecycle.Session,
	sp agro.Species,
) agro.CropStep {
	cp := agro.NewCropProfile(sp.ID, sp.Family)
	if err := sess.UpsertCropProfile(ctx, cp); err != nil {
		return agro.CropStep{StepResult: stepFailed(log, "crop_profile", err)}
	}
	nf := cp.NitrogenFixing
	return agro.CropStep{StepResult: agro.Inserted(), NitrogenFixing: &nf}
}

func soilStep(
	ctx context.Context,
	log *slog.Logger,
	sess lifecycle.Session,
	sp agro.Species,
) agro.StepResult {
	soil := agro.NewSoilRequirement(sp.ID)
	if err := sess.UpsertSoilRequirement(ctx, soil); err != nil {
		return stepFailed(log, "soil", err)
	}
	return agro.Inserted()
}

// calendarStep uses months of raw occurrences, climate samples play no
// role here.
func calendarStep(
	ctx context.Context,
	log *slog.Logger,
	sess lifecycle.Session,
	sp agro.Species,
	occs []agro.Occurrence,
) agro.CalendarStep {
	var res agro.CalendarStep
	dist := calendar.Distribution(occs)
	peak, ok := calendar.Peak(dist)
	if !ok {
		res.StepResult = agro.Skipped(noMonthReason)
		return res
	}

	cal := calendar.Derive(sp.ID, peak)
	if err := sess.UpsertPlantingCalendar(ctx, cal); err != nil {
		res.StepResult = stepFailed(log, "calendar", err)
		return res
	}
	log.Debug("Planting calendar stored", "peak_month", peak)
	res.StepResult = agro.Inserted()
	res.PeakMonth = peak
	res.MonthDistribution = dist
	res.Calendar = &cal
	return res
}

// companionsStep always reports inserted edges, an empty list is a normal
// outcome for families without rules.
func (e *enricher) companionsStep(
	ctx context.Context,
	log *slog.Logger,
	sess lifecycle.Session,
	sp agro.Species,
) agro.CompanionsStep {
	var res agro.CompanionsStep
	comps, err := e.rules.Resolve(ctx, sess, sp)
	if err != nil {
		res.StepResult = stepFailed(log, "companions", err)
		return res
	}

	for _, v := range comps {
		if err = sess.InsertCompanionPlant(ctx, v); err != nil {
			res.StepResult = stepFailed(log, "companions", err)
			return res
		}
		log.Debug("Companion stored",
			"companion", v.CompanionName, "benefit", v.BenefitType)
	}
	res.StepResult = agro.Inserted()
	res.Count = len(comps)
	res.Inserted = comps
	return res
}
