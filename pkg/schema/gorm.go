package schema

import (
	"gorm.io/gorm"
)

// AllModels returns all schema models for GORM AutoMigrate.
func AllModels() []any {
	return []any{
		&Species{},
		&Occurrence{},
		&ClimateRequirement{},
		&CropProfile{},
		&SoilRequirement{},
		&PlantingCalendar{},
		&CompanionPlant{},
	}
}

// MonthColumns lists columns that hold month numbers, keyed by table.
func MonthColumns() map[string][]string {
	return map[string][]string{
		"planting_calendar": {
			"planting_start_month",
			"planting_end_month",
			"harvest_start_month",
			"harvest_end_month",
		},
	}
}

// Migrate runs GORM AutoMigrate to create or update schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(AllModels()...)
}
