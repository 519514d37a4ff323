// Package schema provides database schema models for gnagro.
// Species and occurrences are imported by external tools, the rest of the
// tables are derived by the enrichment pipeline. Tables of derived
// profiles use the species id as a primary key, so a species has at most
// one row in each of them.
package schema

import "time"

// Species is a taxon with its classification.
type Species struct {
	IDSpecies      int    `gorm:"column:id_species;primaryKey"`
	ScientificName string `gorm:"type:varchar(255);not null;index"`
	Genus          string `gorm:"type:varchar(100);index"`
	Family         string `gorm:"type:varchar(100);index"`
}

// TableName returns the PostgreSQL table name for this model.
func (Species) TableName() string { return "species" }

// Occurrence is a record of a species observed at some place and time.
type Occurrence struct {
	IDOccurrence int64      `gorm:"column:id_occurrence;primaryKey;autoIncrement"`
	IDSpecies    int        `gorm:"column:id_species;not null;index:idx_occurrences_species"`
	Latitude     *float64   `gorm:"column:latitude"`
	Longitude    *float64   `gorm:"column:longitude"`
	EventDate    *time.Time `gorm:"column:event_date;type:date"`
}

// TableName returns the PostgreSQL table name for this model.
func (Occurrence) TableName() string { return "occurrences" }

// ClimateRequirement keeps climate bounds calculated from occurrences.
type ClimateRequirement struct {
	IDSpecies        int     `gorm:"column:id_species;primaryKey;autoIncrement:false"`
	TempMin          float64 `gorm:"column:temp_min"`
	TempOptMin       float64 `gorm:"column:temp_opt_min"`
	TempOptMax       float64 `gorm:"column:temp_opt_max"`
	TempMax          float64 `gorm:"column:temp_max"`
	RainfallMin      float64 `gorm:"column:rainfall_min"`
	RainfallOptMin   float64 `gorm:"column:rainfall_opt_min"`
	RainfallOptMax   float64 `gorm:"column:rainfall_opt_max"`
	RainfallMax      float64 `gorm:"column:rainfall_max"`
	AltitudeMin      float64 `gorm:"column:altitude_min"`
	AltitudeMax      float64 `gorm:"column:altitude_max"`
	FrostTolerance   string  `gorm:"column:frost_tolerance;type:varchar(20)"`
	DroughtTolerance string  `gorm:"column:drought_tolerance;type:varchar(20)"`
}

// TableName returns the PostgreSQL table name for this model.
func (ClimateRequirement) TableName() string { return "climate_requirements" }

// CropProfile is the crop_profile row of a species.
type CropProfile struct {
	IDSpecies           int    `gorm:"column:id_species;primaryKey;autoIncrement:false"`
	CropType            string `gorm:"column:crop_type;type:varchar(50)"`
	PlantingMethod      string `gorm:"column:planting_method;type:varchar(50)"`
	SunlightRequirement string `gorm:"column:sunlight_requirement;type:varchar(20)"`
	WaterRequirement    string `gorm:"column:water_requirement;type:varchar(20)"`
	NitrogenFixing      bool   `gorm:"column:nitrogen_fixing;not null;default:false"`
}

// TableName returns the PostgreSQL table name for this model.
func (CropProfile) TableName() string { return "crop_profile" }

// SoilRequirement is the soil_requirements row of a species.
type SoilRequirement struct {
	IDSpecies         int     `gorm:"column:id_species;primaryKey;autoIncrement:false"`
	PHMin             float64 `gorm:"column:ph_min"`
	PHMax             float64 `gorm:"column:ph_max"`
	SoilTexture       string  `gorm:"column:soil_texture;type:varchar(50)"`
	Drainage          string  `gorm:"column:drainage;type:varchar(20)"`
	SalinityTolerance string  `gorm:"column:salinity_tolerance;type:varchar(20)"`
	OrganicMatterNeed string  `gorm:"column:organic_matter_need;type:varchar(20)"`
}

// TableName returns the PostgreSQL table name for this model.
func (SoilRequirement) TableName() string { return "soil_requirements" }

// PlantingCalendar keeps planting and harvest months (1-12).
type PlantingCalendar struct {
	IDSpecies          int    `gorm:"column:id_species;primaryKey;autoIncrement:false"`
	PlantingStartMonth int    `gorm:"column:planting_start_month"`
	PlantingEndMonth   int    `gorm:"column:planting_end_month"`
	HarvestStartMonth  int    `gorm:"column:harvest_start_month"`
	HarvestEndMonth    int    `gorm:"column:harvest_end_month"`
	RegionType         string `gorm:"column:region_type;type:varchar(50)"`
	Hemisphere         string `gorm:"column:hemisphere;type:varchar(20)"`
}

// TableName returns the PostgreSQL table name for this model.
func (PlantingCalendar) TableName() string { return "planting_calendar" }

// CompanionPlant links two species that grow well together. A pair of
// species is stored only once.
type CompanionPlant struct {
	ID               int64  `gorm:"column:id;primaryKey;autoIncrement"`
	IDSpeciesA       int    `gorm:"column:id_species_a;not null;uniqueIndex:idx_companion_pair"`
	IDSpeciesB       int    `gorm:"column:id_species_b;not null;uniqueIndex:idx_companion_pair"`
	RelationshipType string `gorm:"column:relationship_type;type:varchar(20)"`
	BenefitType      string `gorm:"column:benefit_type;type:varchar(50)"`
}

// TableName returns the PostgreSQL table name for this model.
func (CompanionPlant) TableName() string { return "companion_plants" }
