package agro

import "time"

// Status is the outcome of one enrichment step.
type Status string

const (
	StatusInserted Status = "inserted"
	StatusSkipped  Status = "skipped"
	StatusError    Status = "error"
)

// StepResult is the common part of every step report.
type StepResult struct {
	Status Status `json:"status"`
	Reason string `json:"reason,omitempty"`
	Error  string `json:"error,omitempty"`
}

// Inserted creates a successful step report.
func Inserted() StepResult {
	return StepResult{Status: StatusInserted}
}

// Skipped creates a report of a step that had nothing to work with.
func Skipped(reason string) StepResult {
	return StepResult{Status: StatusSkipped, Reason: reason}
}

// Failed creates a report of a step that failed with the given message.
func Failed(msg string) StepResult {
	return StepResult{Status: StatusError, Error: msg}
}

// ClimateStep reports the climate requirement step.
type ClimateStep struct {
	StepResult
	Params *ClimateRequirement `json:"params,omitempty"`
}

// CropStep reports the crop profile step.
type CropStep struct {
	StepResult
	NitrogenFixing *bool `json:"nitrogen_fixing,omitempty"`
}

// CalendarStep reports the planting calendar step.
type CalendarStep struct {
	StepResult
	PeakMonth         int               `json:"peak_month,omitempty"`
	MonthDistribution map[int]int       `json:"month_distribution,omitempty"`
	Calendar          *PlantingCalendar `json:"calendar,omitempty"`
}

// CompanionsStep reports the companion plants step.
type CompanionsStep struct {
	StepResult
	Count    int              `json:"count"`
	Inserted []CompanionPlant `json:"inserted,omitempty"`
}

// Operations collects reports of all derived writes.
type Operations struct {
	Climate     ClimateStep    `json:"climate"`
	CropProfile CropStep       `json:"crop_profile"`
	Soil        StepResult     `json:"soil"`
	Calendar    CalendarStep   `json:"calendar"`
	Companions  CompanionsStep `json:"companions"`
}

// Result is the outcome of one enrichment run. Exactly one of Operations,
// Warning or Error is set. A run with Operations can still contain failed
// steps, callers must look at every step status.
type Result struct {
	SpeciesID   int         `json:"id_species"`
	SpeciesName string      `json:"species_name,omitempty"`
	Timestamp   string      `json:"timestamp,omitempty"`
	Operations  *Operations `json:"operations,omitempty"`
	Warning     string      `json:"warning,omitempty"`
	Error       string      `json:"error,omitempty"`
}

// NewResult starts a result of a run that passed species and occurrences
// loading.
func NewResult(sp Species, now time.Time) Result {
	return Result{
		SpeciesID:   sp.ID,
		SpeciesName: sp.ScientificName,
		Timestamp:   now.Format(time.RFC3339),
		Operations:  &Operations{},
	}
}

// Failed is true if the whole run failed.
func (r Result) Failed() bool {
	return r.Error != ""
}

// StepErrors counts steps that ended with an error.
func (r Result) StepErrors() int {
	if r.Operations == nil {
		return 0
	}
	var res int
	ops := r.Operations
	for _, s := range []Status{
		ops.Climate.Status,
		ops.CropProfile.Status,
		ops.Soil.Status,
		ops.Calendar.Status,
		ops.Companions.Status,
	} {
		if s == StatusError {
			res++
		}
	}
	return res
}
