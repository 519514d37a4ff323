package iostore

import (
	"context"
	"errors"
	"math"

	"github.com/gnames/gnagro/pkg/agro"
	"github.com/jackc/pgx/v5"
)

// lockClass is the first key of per-species advisory locks. It separates
// gnagro locks from locks taken by other applications on the same
// database.
const lockClass int32 = 7291

var errLockKeyRange = errors.New("species id does not fit advisory lock key")

// UpsertClimateRequirement inserts climate bounds or replaces all numeric
// bounds of an existing row.
func (s *Session) UpsertClimateRequirement(
	ctx context.Context,
	req agro.ClimateRequirement,
) error {
	q := `INSERT INTO climate_requirements (
  id_species, temp_min, temp_opt_min, temp_opt_max, temp_max,
  rainfall_min, rainfall_opt_min, rainfall_opt_max, rainfall_max,
  altitude_min, altitude_max, frost_tolerance, drought_tolerance
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
ON CONFLICT (id_species) DO UPDATE SET
  temp_min = EXCLUDED.temp_min,
  temp_opt_min = EXCLUDED.temp_opt_min,
  temp_opt_max = EXCLUDED.temp_opt_max,
  temp_max = EXCLUDED.temp_max,
  rainfall_min = EXCLUDED.rainfall_min,
  rainfall_opt_min = EXCLUDED.rainfall_opt_min,
  rainfall_opt_max = EXCLUDED.rainfall_opt_max,
  rainfall_max = EXCLUDED.rainfall_max,
  altitude_min = EXCLUDED.altitude_min,
  altitude_max = EXCLUDED.altitude_max`

	args := []any{
		req.SpeciesID,
		req.TempMin, req.TempOptMin, req.TempOptMax, req.TempMax,
		req.RainfallMin, req.RainfallOptMin, req.RainfallOptMax, req.RainfallMax,
		req.AltitudeMin, req.AltitudeMax,
		string(req.FrostTolerance), string(req.DroughtTolerance),
	}
	return s.exec(ctx, "climate_requirements", req.SpeciesID, q, args)
}

// UpsertCropProfile inserts a crop profile. On conflict only the nitrogen
// fixing flag is refreshed.
func (s *Session) UpsertCropProfile(
	ctx context.Context,
	cp agro.CropProfile,
) error {
	q := `INSERT INTO crop_profile (
  id_species, crop_type, planting_method,
  sunlight_requirement, water_requirement, nitrogen_fixing
) VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (id_species) DO UPDATE SET
  nitrogen_fixing = EXCLUDED.nitrogen_fixing`

	args := []any{
		cp.SpeciesID, cp.CropType, cp.PlantingMethod,
		cp.SunlightRequirement, cp.WaterRequirement, cp.NitrogenFixing,
	}
	return s.exec(ctx, "crop_profile", cp.SpeciesID, q, args)
}

// UpsertSoilRequirement inserts soil requirements only once.
func (s *Session) UpsertSoilRequirement(
	ctx context.Context,
	soil agro.SoilRequirement,
) error {
	q := `INSERT INTO soil_requirements (
  id_species, ph_min, ph_max, soil_texture, drainage,
  salinity_tolerance, organic_matter_need
) VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (id_species) DO NOTHING`

	args := []any{
		soil.SpeciesID, soil.PHMin, soil.PHMax, soil.SoilTexture,
		soil.Drainage, soil.SalinityTolerance, soil.OrganicMatterNeed,
	}
	return s.exec(ctx, "soil_requirements", soil.SpeciesID, q, args)
}

// UpsertPlantingCalendar inserts a planting calendar only once.
func (s *Session) UpsertPlantingCalendar(
	ctx context.Context,
	cal agro.PlantingCalendar,
) error {
	q := `INSERT INTO planting_calendar (
  id_species, planting_start_month, planting_end_month,
  harvest_start_month, harvest_end_month, region_type, hemisphere
) VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (id_species) DO NOTHING`

	args := []any{
		cal.SpeciesID, cal.PlantingStartMonth, cal.PlantingEndMonth,
		cal.HarvestStartMonth, cal.HarvestEndMonth,
		cal.RegionType, cal.Hemisphere,
	}
	return s.exec(ctx, "planting_calendar", cal.SpeciesID, q, args)
}

// InsertCompanionPlant adds a companion edge. An existing edge for the
// same pair of species is kept as is.
func (s *Session) InsertCompanionPlant(
	ctx context.Context,
	cp agro.CompanionPlant,
) error {
	q := `INSERT INTO companion_plants (
  id_species_a, id_species_b, relationship_type, benefit_type
) VALUES ($1, $2, $3, $4)
ON CONFLICT (id_species_a, id_species_b) DO NOTHING`

	args := []any{
		cp.SpeciesAID, cp.SpeciesBID, cp.RelationshipType, cp.BenefitType,
	}
	return s.exec(ctx, "companion_plants", cp.SpeciesAID, q, args)
}

// exec runs one statement in a transaction that holds the advisory lock
// of the species.
func (s *Session) exec(
	ctx context.Context,
	table string,
	speciesID int,
	q string,
	args []any,
) error {
	return s.withSpeciesLock(ctx, speciesID, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, q, args...); err != nil {
			return UpsertError(table, speciesID, err)
		}
		return nil
	})
}

func (s *Session) withSpeciesLock(
	ctx context.Context,
	speciesID int,
	fn func(pgx.Tx) error,
) error {
	// the second key of the lock is int4
	if speciesID < math.MinInt32 || speciesID > math.MaxInt32 {
		return TxError(speciesID, errLockKeyRange)
	}

	tx, err := s.conn.Begin(ctx)
	if err != nil {
		return TxError(speciesID, err)
	}

	_, err = tx.Exec(ctx, "SELECT pg_advisory_xact_lock($1, $2)",
		lockClass, int32(speciesID))
	if err != nil {
		_ = tx.Rollback(ctx)
		return TxError(speciesID, err)
	}

	if err = fn(tx); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		return TxError(speciesID, err)
	}
	return nil
}
