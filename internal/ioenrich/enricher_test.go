package ioenrich_test

import (
	"context"
	"errors"
	"math"
	"net/http"
	"testing"
	"time"

	"github.com/gnames/gnagro/internal/ioenrich"
	"github.com/gnames/gnagro/internal/iotesting"
	"github.com/gnames/gnagro/pkg/agro"
	"github.com/gnames/gnagro/pkg/climate"
	"github.com/gnames/gnagro/pkg/config"
	"github.com/gnames/gnagro/pkg/lifecycle"
	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	glycineID = 1
	zeaID     = 2
	solanumID = 3
	lonelyID  = 4
)

func species(t *testing.T, id int, name, genus, family string) agro.Species {
	t.Helper()
	sp, err := agro.NewSpecies(id, name, genus, family)
	require.NoError(t, err)
	return sp
}

func occurrence(lat, lon float64, month int) agro.Occurrence {
	return agro.Occurrence{
		Latitude:  lat,
		Longitude: lon,
		EventDate: time.Date(2020, time.Month(month), 10, 0, 0, 0, 0, time.UTC),
		Month:     month,
	}
}

// glycineOccurrences gives 12 occurrences, June has the most of them.
func glycineOccurrences() []agro.Occurrence {
	months := []int{6, 6, 6, 6, 6, 1, 2, 3, 4, 5, 7, 8}
	res := make([]agro.Occurrence, len(months))
	for i, m := range months {
		res[i] = occurrence(35+float64(i), -90+float64(i), m)
	}
	return res
}

func newStorage(t *testing.T) *iotesting.MemStorage {
	t.Helper()
	st := iotesting.NewMemStorage()
	st.AddSpecies(
		species(t, glycineID, "Glycine max (L.) Merr.", "Glycine", "Fabaceae"),
		species(t, zeaID, "Zea mays L.", "Zea", "Poaceae"),
		species(t, solanumID, "Solanum tuberosum L.", "Solanum", "Solanaceae"),
		species(t, lonelyID, "Quercus alba L.", "", "Fagaceae"),
	)
	st.AddOccurrences(glycineID, glycineOccurrences()...)
	return st
}

func newEnricher(
	t *testing.T,
	cfg *config.Config,
	st lifecycle.Storage,
) lifecycle.Enricher {
	t.Helper()
	enr, err := ioenrich.New(cfg, st)
	require.NoError(t, err)
	return enr
}

func assertClimateBounds(t *testing.T, req *agro.ClimateRequirement) {
	t.Helper()
	require.NotNil(t, req)
	for _, v := range []float64{
		req.TempMin, req.TempOptMin, req.TempOptMax, req.TempMax,
	} {
		assert.GreaterOrEqual(t, v, climate.MinTemperature)
		assert.LessOrEqual(t, v, climate.MaxTemperature)
	}
	for _, v := range []float64{
		req.RainfallMin, req.RainfallOptMin, req.RainfallOptMax, req.RainfallMax,
	} {
		assert.GreaterOrEqual(t, v, climate.MinRainfall)
		assert.LessOrEqual(t, v, climate.MaxRainfall)
	}
	assert.GreaterOrEqual(t, req.AltitudeMin, 0.0)
	assert.LessOrEqual(t, req.TempMin, req.TempMax)
	assert.LessOrEqual(t, req.AltitudeMin, req.AltitudeMax)
}

func TestEnrichFallbackWhenArchiveFails(t *testing.T) {
	httpmock.Activate()
	t.Cleanup(httpmock.DeactivateAndReset)
	httpmock.RegisterResponder(http.MethodGet,
		`=~^http://archive\.test/v1/archive`,
		httpmock.NewStringResponder(http.StatusInternalServerError, "down"),
	)

	cfg := iotesting.OfflineConfig(t, 1)
	cfg.Update([]config.Option{
		config.OptEnrichOffline(false),
		config.OptClimateArchiveURL("http://archive.test/v1/archive"),
		config.OptClimateRateLimit(1000),
		config.OptClimateTimeoutSec(2),
	})
	st := newStorage(t)
	enr := newEnricher(t, cfg, st)

	res := enr.Enrich(context.Background(), glycineID)
	require.Empty(t, res.Error)
	require.Empty(t, res.Warning)
	require.NotNil(t, res.Operations)
	assert.Equal(t, 12, httpmock.GetTotalCallCount())

	assert.Equal(t, glycineID, res.SpeciesID)
	assert.Equal(t, "Glycine max (L.) Merr.", res.SpeciesName)
	_, err := time.Parse(time.RFC3339, res.Timestamp)
	assert.NoError(t, err)

	ops := res.Operations
	assert.Equal(t, agro.StatusInserted, ops.Climate.Status)
	assertClimateBounds(t, ops.Climate.Params)
	assert.Equal(t, agro.ToleranceModerate, ops.Climate.Params.FrostTolerance)

	assert.Equal(t, agro.StatusInserted, ops.CropProfile.Status)
	require.NotNil(t, ops.CropProfile.NitrogenFixing)
	assert.True(t, *ops.CropProfile.NitrogenFixing)

	assert.Equal(t, agro.StatusInserted, ops.Soil.Status)

	assert.Equal(t, agro.StatusInserted, ops.Calendar.Status)
	assert.Equal(t, 6, ops.Calendar.PeakMonth)
	var total int
	for _, v := range ops.Calendar.MonthDistribution {
		total += v
	}
	assert.Equal(t, 12, total)
	assert.Equal(t, 5, ops.Calendar.MonthDistribution[6])

	assert.Equal(t, agro.StatusInserted, ops.Companions.Status)
	assert.Equal(t, 2, ops.Companions.Count)
	require.Len(t, ops.Companions.Inserted, 2)
	assert.Equal(t, zeaID, ops.Companions.Inserted[0].SpeciesBID)
	assert.Equal(t, "Zea mays L.", ops.Companions.Inserted[0].CompanionName)
	assert.Equal(t, solanumID, ops.Companions.Inserted[1].SpeciesBID)
	assert.Zero(t, res.StepErrors())

	stored, ok := st.ClimateRequirement(glycineID)
	require.True(t, ok)
	assert.Equal(t, *ops.Climate.Params, stored)

	cal, ok := st.PlantingCalendar(glycineID)
	require.True(t, ok)
	assert.Equal(t, 1, cal.PlantingStartMonth)
	assert.Equal(t, 3, cal.PlantingEndMonth)
	assert.Equal(t, 5, cal.HarvestStartMonth)
	assert.Equal(t, 7, cal.HarvestEndMonth)

	assert.Zero(t, st.OpenSessions())
}

func TestEnrichOfflineIsReproducible(t *testing.T) {
	cfg := iotesting.OfflineConfig(t, 1)
	// one coordinate at a time keeps the order of random draws
	cfg.Update([]config.Option{config.OptClimateBatchSize(1)})

	res1 := newEnricher(t, cfg, newStorage(t)).
		Enrich(context.Background(), glycineID)
	res2 := newEnricher(t, cfg, newStorage(t)).
		Enrich(context.Background(), glycineID)

	require.NotNil(t, res1.Operations)
	require.NotNil(t, res2.Operations)
	assert.Equal(t, res1.Operations.Climate, res2.Operations.Climate)
	assertClimateBounds(t, res1.Operations.Climate.Params)
}

func TestEnrichNotFound(t *testing.T) {
	st := newStorage(t)
	enr := newEnricher(t, iotesting.OfflineConfig(t, 1), st)

	res := enr.Enrich(context.Background(), 99)
	assert.Equal(t, agro.Result{SpeciesID: 99, Error: ioenrich.NotFoundText}, res)
	assert.True(t, res.Failed())
	assert.Zero(t, st.OpenSessions())
}

func TestEnrichNoOccurrences(t *testing.T) {
	st := newStorage(t)
	enr := newEnricher(t, iotesting.OfflineConfig(t, 1), st)

	res := enr.Enrich(context.Background(), zeaID)
	assert.Equal(t, zeaID, res.SpeciesID)
	assert.Equal(t, ioenrich.NoOccurrencesText, res.Warning)
	assert.Nil(t, res.Operations)
	assert.False(t, res.Failed())

	_, ok := st.CropProfile(zeaID)
	assert.False(t, ok, "no derived rows without occurrences")
	_, ok = st.SoilRequirement(zeaID)
	assert.False(t, ok)
	assert.Empty(t, st.CompanionPlants())
}

func TestEnrichLoadFailures(t *testing.T) {
	tests := []struct {
		msg string
		op  string
	}{
		{"session", iotesting.OpSession},
		{"species", iotesting.OpSpecies},
		{"occurrences", iotesting.OpOccurrences},
	}

	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			st := newStorage(t)
			st.FailOn(v.op, errors.New("connection reset"))
			enr := newEnricher(t, iotesting.OfflineConfig(t, 1), st)

			res := enr.Enrich(context.Background(), glycineID)
			assert.True(t, res.Failed())
			assert.Contains(t, res.Error, "connection reset")
			assert.Nil(t, res.Operations)
			assert.Zero(t, st.OpenSessions())
		})
	}
}

func TestEnrichPanic(t *testing.T) {
	st := newStorage(t)
	st.PanicOn(iotesting.OpCrop)
	enr := newEnricher(t, iotesting.OfflineConfig(t, 1), st)

	res := enr.Enrich(context.Background(), glycineID)
	assert.Equal(t, glycineID, res.SpeciesID)
	assert.Contains(t, res.Error, "panicked")
	assert.Contains(t, res.Error, "crop_profile exploded")
	assert.Nil(t, res.Operations)
	assert.Zero(t, st.OpenSessions(), "session is released after panic")
}

func TestEnrichStepFailuresAreIsolated(t *testing.T) {
	tests := []struct {
		msg    string
		op     string
		status func(*agro.Operations) agro.StepResult
	}{
		{"climate", iotesting.OpClimate,
			func(o *agro.Operations) agro.StepResult { return o.Climate.StepResult }},
		{"crop", iotesting.OpCrop,
			func(o *agro.Operations) agro.StepResult { return o.CropProfile.StepResult }},
		{"soil", iotesting.OpSoil,
			func(o *agro.Operations) agro.StepResult { return o.Soil }},
		{"calendar", iotesting.OpCalendar,
			func(o *agro.Operations) agro.StepResult { return o.Calendar.StepResult }},
		{"companion lookup", iotesting.OpGenus,
			func(o *agro.Operations) agro.StepResult { return o.Companions.StepResult }},
		{"companion insert", iotesting.OpCompanions,
			func(o *agro.Operations) agro.StepResult { return o.Companions.StepResult }},
	}

	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			st := newStorage(t)
			st.FailOn(v.op, errors.New("disk full"))
			enr := newEnricher(t, iotesting.OfflineConfig(t, 1), st)

			res := enr.Enrich(context.Background(), glycineID)
			require.False(t, res.Failed())
			require.NotNil(t, res.Operations)
			assert.Equal(t, 1, res.StepErrors())

			step := v.status(res.Operations)
			assert.Equal(t, agro.StatusError, step.Status)
			assert.Equal(t, "disk full", step.Error)

			if v.op != iotesting.OpCrop {
				_, ok := st.CropProfile(glycineID)
				assert.True(t, ok, "sibling steps still write")
			}
			if v.op != iotesting.OpClimate {
				_, ok := st.ClimateRequirement(glycineID)
				assert.True(t, ok, "sibling steps still write")
			}
		})
	}
}

func TestEnrichSkippedSteps(t *testing.T) {
	st := newStorage(t)
	nan := math.NaN()
	st.AddOccurrences(lonelyID,
		agro.Occurrence{Latitude: nan, Longitude: 10, Month: 0},
		agro.Occurrence{Latitude: nan, Longitude: 11, Month: 0},
	)
	enr := newEnricher(t, iotesting.OfflineConfig(t, 1), st)

	res := enr.Enrich(context.Background(), lonelyID)
	require.NotNil(t, res.Operations)
	ops := res.Operations

	assert.Equal(t, agro.Skipped("no temperature data"), ops.Climate.StepResult)
	assert.Nil(t, ops.Climate.Params)
	assert.Equal(t, agro.Skipped("no month data"), ops.Calendar.StepResult)
	assert.Zero(t, ops.Calendar.PeakMonth)

	assert.Equal(t, agro.StatusInserted, ops.CropProfile.Status)
	require.NotNil(t, ops.CropProfile.NitrogenFixing)
	assert.False(t, *ops.CropProfile.NitrogenFixing)
	assert.Equal(t, agro.StatusInserted, ops.Soil.Status)

	assert.Equal(t, agro.StatusInserted, ops.Companions.Status)
	assert.Zero(t, ops.Companions.Count, "family without rules")

	_, ok := st.ClimateRequirement(lonelyID)
	assert.False(t, ok)
	_, ok = st.PlantingCalendar(lonelyID)
	assert.False(t, ok)
}

func TestReEnrich(t *testing.T) {
	st := newStorage(t)
	cfg := iotesting.OfflineConfig(t, 1)
	ctx := context.Background()

	res := newEnricher(t, cfg, st).Enrich(ctx, glycineID)
	require.NotNil(t, res.Operations)
	soil1, ok := st.SoilRequirement(glycineID)
	require.True(t, ok)
	cal1, ok := st.PlantingCalendar(glycineID)
	require.True(t, ok)
	crop1, ok := st.CropProfile(glycineID)
	require.True(t, ok)
	require.True(t, crop1.NitrogenFixing)

	// the family is corrected and September observations arrive
	st.AddSpecies(species(t, glycineID, "Glycine max", "Glycine", "Poaceae"))
	for i := range 10 {
		st.AddOccurrences(glycineID, occurrence(-5+float64(i), 20, 9))
	}

	res = newEnricher(t, cfg, st).Enrich(ctx, glycineID)
	require.NotNil(t, res.Operations)
	assert.Equal(t, 9, res.Operations.Calendar.PeakMonth)

	clim, ok := st.ClimateRequirement(glycineID)
	require.True(t, ok)
	assert.Equal(t, *res.Operations.Climate.Params, clim, "climate is replaced")

	crop2, ok := st.CropProfile(glycineID)
	require.True(t, ok)
	assert.False(t, crop2.NitrogenFixing, "nitrogen flag is refreshed")

	soil2, _ := st.SoilRequirement(glycineID)
	assert.Equal(t, soil1, soil2)
	cal2, _ := st.PlantingCalendar(glycineID)
	assert.Equal(t, cal1, cal2, "calendar keeps the first insert")

	assert.Len(t, st.CompanionPlants(), 2)
}

func TestCompanionsAreIdempotent(t *testing.T) {
	st := newStorage(t)
	enr := newEnricher(t, iotesting.OfflineConfig(t, 1), st)
	ctx := context.Background()

	for range 3 {
		res := enr.Enrich(ctx, glycineID)
		require.NotNil(t, res.Operations)
		assert.Equal(t, 2, res.Operations.Companions.Count)
	}

	edges := st.CompanionPlants()
	require.Len(t, edges, 2)
	for _, v := range edges {
		assert.Equal(t, glycineID, v.SpeciesAID)
		assert.Equal(t, agro.RelationshipCompatible, v.RelationshipType)
		assert.Equal(t, agro.BenefitNitrogenFixing, v.BenefitType)
	}
}

func TestEnrichAll(t *testing.T) {
	st := newStorage(t)
	st.AddOccurrences(solanumID, occurrence(-12, -77, 3))
	enr := newEnricher(t, iotesting.OfflineConfig(t, 3), st)

	ids := []int{solanumID, 99, glycineID, zeaID}
	res := enr.EnrichAll(context.Background(), ids)
	require.Len(t, res, len(ids))
	for i, v := range res {
		assert.Equal(t, ids[i], v.SpeciesID)
	}
	assert.Empty(t, res[0].Error)
	assert.Equal(t, ioenrich.NotFoundText, res[1].Error)
	assert.Equal(t, 6, res[2].Operations.Calendar.PeakMonth)
	assert.Equal(t, ioenrich.NoOccurrencesText, res[3].Warning)

	assert.Equal(t, len(ids), st.OpenedSessions())
	assert.Zero(t, st.OpenSessions())
}

func TestEnrichAllSingle(t *testing.T) {
	st := newStorage(t)
	enr := newEnricher(t, iotesting.OfflineConfig(t, 0), st)

	res := enr.EnrichAll(context.Background(), []int{glycineID})
	require.Len(t, res, 1)
	assert.False(t, res[0].Failed())

	assert.Empty(t, enr.EnrichAll(context.Background(), nil))
}
