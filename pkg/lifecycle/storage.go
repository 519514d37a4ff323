package lifecycle

import (
	"context"

	"github.com/gnames/gnagro/pkg/agro"
)

// Storage gives out sessions to enrichment runs.
type Storage interface {
	// Session acquires a session bound to one database connection. Every
	// run uses its own session, sessions are not shared between goroutines.
	Session(ctx context.Context) (Session, error)
}

// Session reads species data and writes derived profiles. Every write is
// idempotent, so repeating a run does not duplicate rows.
type Session interface {
	// Species returns a species by its id. The boolean is false when the
	// species does not exist.
	Species(ctx context.Context, id int) (agro.Species, bool, error)

	// Occurrences returns georeferenced and dated occurrences of a species.
	Occurrences(ctx context.Context, speciesID int) ([]agro.Occurrence, error)

	// FindOneSpeciesByGenus returns any species of a genus.
	FindOneSpeciesByGenus(ctx context.Context, genus string) (agro.Species, bool, error)

	// UpsertClimateRequirement inserts climate requirements or replaces
	// all numeric bounds of the existing row.
	UpsertClimateRequirement(ctx context.Context, req agro.ClimateRequirement) error

	// UpsertCropProfile inserts a crop profile or refreshes only its
	// nitrogen fixing flag.
	UpsertCropProfile(ctx context.Context, cp agro.CropProfile) error

	// UpsertSoilRequirement inserts soil requirements once, an existing
	// row stays unchanged.
	UpsertSoilRequirement(ctx context.Context, soil agro.SoilRequirement) error

	// UpsertPlantingCalendar inserts a planting calendar once, an existing
	// row stays unchanged.
	UpsertPlantingCalendar(ctx context.Context, cal agro.PlantingCalendar) error

	// InsertCompanionPlant adds a companion edge, a duplicate is ignored.
	InsertCompanionPlant(ctx context.Context, cp agro.CompanionPlant) error

	// Release returns the session connection back to the pool.
	Release()
}
