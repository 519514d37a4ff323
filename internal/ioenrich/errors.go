package ioenrich

import (
	"errors"
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gnagro/pkg/errcode"
)

// NotFoundText is reported when a species id has no stored row.
const NotFoundText = "species not found"

// NoOccurrencesText is the warning of a species without occurrences.
const NoOccurrencesText = "no occurrences found for climate inference"

// SpeciesNotFoundError is returned when a species id has no stored row.
func SpeciesNotFoundError(id int) error {
	return &gn.Error{
		Code: errcode.EnrichSpeciesNotFoundError,
		Msg:  "Species <em>%d</em> not found",
		Vars: []any{id},
		Err:  errors.New(NotFoundText),
	}
}

// SpeciesLoadError is returned when the species row cannot be read.
func SpeciesLoadError(id int, err error) error {
	return &gn.Error{
		Code: errcode.EnrichSpeciesLoadError,
		Msg:  "Cannot load species <em>%d</em>",
		Vars: []any{id},
		Err:  fmt.Errorf("load species %d: %w", id, err),
	}
}

// OccurrencesLoadError is returned when occurrences of a species cannot
// be read.
func OccurrencesLoadError(id int, err error) error {
	return &gn.Error{
		Code: errcode.EnrichOccurrencesLoadError,
		Msg:  "Cannot load occurrences of species <em>%d</em>",
		Vars: []any{id},
		Err:  fmt.Errorf("load occurrences of species %d: %w", id, err),
	}
}

// PanicError wraps a panic recovered from an enrichment run.
func PanicError(id int, r any) error {
	return &gn.Error{
		Code: errcode.EnrichPanicError,
		Msg:  "Enrichment of species <em>%d</em> crashed",
		Vars: []any{id},
		Err:  fmt.Errorf("enrichment of species %d panicked: %v", id, r),
	}
}

// AllRunsFailedError is returned when no requested species could be
// enriched.
func AllRunsFailedError(total int) error {
	msg := `None of <em>%d</em> species were enriched

<em>How to fix:</em>
  1. Check species ids: <em>SELECT id_species FROM species</em>
  2. Look for details in the log file`
	return &gn.Error{
		Code: errcode.EnrichAllRunsFailedError,
		Msg:  msg,
		Vars: []any{total},
		Err:  fmt.Errorf("all %d enrichment runs failed", total),
	}
}

// errorText gives the technical description of an error. For gn.Error it
// is the wrapped error, the user-facing message is meant for terminals.
func errorText(err error) string {
	var gnErr *gn.Error
	if errors.As(err, &gnErr) && gnErr.Err != nil {
		return gnErr.Err.Error()
	}
	return err.Error()
}
