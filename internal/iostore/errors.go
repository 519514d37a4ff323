package iostore

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gnagro/pkg/errcode"
)

// NotConnectedError is returned when a session is requested before the
// database connection is established.
func NotConnectedError() error {
	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  "Storage used without database connection",
		Err:  fmt.Errorf("not connected to database"),
	}
}

// AcquireConnError is returned when the pool cannot provide a connection.
func AcquireConnError(err error) error {
	msg := `Cannot get a database connection

<em>How to fix:</em>
  Increase <em>database.max_connections</em> or decrease <em>jobs_number</em>`
	return &gn.Error{
		Code: errcode.DBAcquireConnError,
		Msg:  msg,
		Err:  fmt.Errorf("failed to acquire connection: %w", err),
	}
}

// SpeciesQueryError is returned when a species row cannot be read.
func SpeciesQueryError(key any, err error) error {
	return &gn.Error{
		Code: errcode.StoreSpeciesQueryError,
		Msg:  "Cannot read species <em>%v</em>",
		Vars: []any{key},
		Err:  fmt.Errorf("species query for %v: %w", key, err),
	}
}

// GenusQueryError is returned when species lookup by genus fails.
func GenusQueryError(genus string, err error) error {
	return &gn.Error{
		Code: errcode.StoreGenusQueryError,
		Msg:  "Cannot find species of genus <em>%s</em>",
		Vars: []any{genus},
		Err:  fmt.Errorf("genus query for %s: %w", genus, err),
	}
}

// OccurrencesQueryError is returned when occurrences cannot be read.
func OccurrencesQueryError(speciesID int, err error) error {
	return &gn.Error{
		Code: errcode.StoreOccurrencesQueryError,
		Msg:  "Cannot read occurrences of species <em>%d</em>",
		Vars: []any{speciesID},
		Err:  fmt.Errorf("occurrences query for %d: %w", speciesID, err),
	}
}

// TxError is returned when a transaction cannot start, lock or commit.
func TxError(speciesID int, err error) error {
	return &gn.Error{
		Code: errcode.StoreTxError,
		Msg:  "Transaction failed for species <em>%d</em>",
		Vars: []any{speciesID},
		Err:  fmt.Errorf("transaction for species %d: %w", speciesID, err),
	}
}

// UpsertError is returned when a derived row cannot be written.
func UpsertError(table string, speciesID int, err error) error {
	return &gn.Error{
		Code: errcode.StoreUpsertError,
		Msg:  "Cannot write <em>%s</em> of species <em>%d</em>",
		Vars: []any{table, speciesID},
		Err:  fmt.Errorf("upsert %s for species %d: %w", table, speciesID, err),
	}
}
