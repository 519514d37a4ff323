// Package gnagro derives agronomic profiles (climate requirements, planting
// calendars, crop, soil and companion records) for species stored in a
// biodiversity occurrence database.
package gnagro

var (
	// Version of gnagro, set by build flags.
	Version = "v0.1.0"
	// Build timestamp, set by build flags.
	Build = "n/a"
)
