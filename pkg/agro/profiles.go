package agro

// Tolerance is a categorical tolerance level.
type Tolerance string

const ToleranceModerate Tolerance = "moderate"

// NitrogenFixingFamily is the only family flagged as nitrogen fixing.
// The comparison is exact and case-sensitive.
const NitrogenFixingFamily = "Fabaceae"

// ClimateRequirement holds percentile-derived climate bounds of a species.
type ClimateRequirement struct {
	SpeciesID        int       `json:"id_species"`
	TempMin          float64   `json:"temp_min"`
	TempOptMin       float64   `json:"temp_opt_min"`
	TempOptMax       float64   `json:"temp_opt_max"`
	TempMax          float64   `json:"temp_max"`
	RainfallMin      float64   `json:"rainfall_min"`
	RainfallOptMin   float64   `json:"rainfall_opt_min"`
	RainfallOptMax   float64   `json:"rainfall_opt_max"`
	RainfallMax      float64   `json:"rainfall_max"`
	AltitudeMin      float64   `json:"altitude_min"`
	AltitudeMax      float64   `json:"altitude_max"`
	FrostTolerance   Tolerance `json:"frost_tolerance"`
	DroughtTolerance Tolerance `json:"drought_tolerance"`
}

// CropProfile describes how a species is grown. Everything but
// NitrogenFixing is a default.
type CropProfile struct {
	SpeciesID           int    `json:"id_species"`
	CropType            string `json:"crop_type"`
	PlantingMethod      string `json:"planting_method"`
	SunlightRequirement string `json:"sunlight_requirement"`
	WaterRequirement    string `json:"water_requirement"`
	NitrogenFixing      bool   `json:"nitrogen_fixing"`
}

// NewCropProfile returns default crop profile of a species of the given
// family.
func NewCropProfile(speciesID int, family string) CropProfile {
	return CropProfile{
		SpeciesID:           speciesID,
		CropType:            "herbaceous",
		PlantingMethod:      "direct_seed",
		SunlightRequirement: "high",
		WaterRequirement:    "medium",
		NitrogenFixing:      IsNitrogenFixing(family),
	}
}

// IsNitrogenFixing is true only for the exact family name "Fabaceae".
func IsNitrogenFixing(family string) bool {
	return family == NitrogenFixingFamily
}

// SoilRequirement holds soil preferences of a species.
type SoilRequirement struct {
	SpeciesID         int     `json:"id_species"`
	PHMin             float64 `json:"ph_min"`
	PHMax             float64 `json:"ph_max"`
	SoilTexture       string  `json:"soil_texture"`
	Drainage          string  `json:"drainage"`
	SalinityTolerance string  `json:"salinity_tolerance"`
	OrganicMatterNeed string  `json:"organic_matter_need"`
}

// NewSoilRequirement returns static soil defaults.
func NewSoilRequirement(speciesID int) SoilRequirement {
	return SoilRequirement{
		SpeciesID:         speciesID,
		PHMin:             5.5,
		PHMax:             7.5,
		SoilTexture:       "loam",
		Drainage:          "good",
		SalinityTolerance: "low",
		OrganicMatterNeed: "medium",
	}
}

// PlantingCalendar holds planting and harvest windows as month numbers
// (1-12).
type PlantingCalendar struct {
	SpeciesID          int    `json:"id_species"`
	PlantingStartMonth int    `json:"planting_start_month"`
	PlantingEndMonth   int    `json:"planting_end_month"`
	HarvestStartMonth  int    `json:"harvest_start_month"`
	HarvestEndMonth    int    `json:"harvest_end_month"`
	RegionType         string `json:"region_type"`
	Hemisphere         string `json:"hemisphere"`
}

// Relationship and benefit types of companion edges.
const (
	RelationshipCompatible = "compatible"
	BenefitNitrogenFixing  = "nitrogen_fixing"
	BenefitGroundCover     = "ground_cover"
)

// CompanionPlant is an edge between two species.
type CompanionPlant struct {
	SpeciesAID       int    `json:"id_species_a"`
	SpeciesBID       int    `json:"id_species_b"`
	RelationshipType string `json:"relationship_type"`
	BenefitType      string `json:"benefit"`
	// CompanionName is the scientific name of species B, reported only.
	CompanionName string `json:"companion_name,omitempty"`
}
