package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError

	// Logging errors
	CreateLogFileError

	// Database errors
	DBConnectionError
	DBTableCheckError
	DBEmptyDatabaseError
	DBNotConnectedError
	DBTableExistsCheckError
	DBQueryTablesError
	DBScanTableError
	DBDropTableError
	DBAcquireConnError

	// Schema errors
	SchemaGORMConnectionError
	SchemaCreateError
	SchemaMigrateError
	SchemaMonthCheckError

	// Store errors
	StoreSpeciesQueryError
	StoreOccurrencesQueryError
	StoreGenusQueryError
	StoreTxError
	StoreUpsertError

	// Climate errors
	ClimateRequestError
	ClimateStatusError
	ClimateDecodeError
	ClimateEmptySeriesError

	// Enrichment errors
	EnrichSpeciesNotFoundError
	EnrichSpeciesLoadError
	EnrichOccurrencesLoadError
	EnrichPanicError
	EnrichAllRunsFailedError
	EnrichInvalidSpeciesIDError
	EnrichNoSpeciesIDsError
)
