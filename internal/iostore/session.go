package iostore

import (
	"context"
	"errors"
	"time"

	"github.com/gnames/gnagro/pkg/agro"
	"github.com/jackc/pgx/v5"
)

// Session reads species data and writes derived profiles through one
// connection. It must not be used from several goroutines at once.
type Session struct {
	conn    Conn
	release func()
}

// NewSession creates a session on the given connection. The release
// function is called by Release, it can be nil.
func NewSession(conn Conn, release func()) *Session {
	return &Session{conn: conn, release: release}
}

const speciesFields = `id_species, scientific_name,
  COALESCE(genus, ''), COALESCE(family, '')`

// Species returns a species by id.
func (s *Session) Species(
	ctx context.Context,
	id int,
) (agro.Species, bool, error) {
	q := `SELECT ` + speciesFields + ` FROM species WHERE id_species = $1`
	return s.querySpecies(ctx, q, id)
}

// FindOneSpeciesByGenus returns the species with the smallest id among
// species of the genus.
func (s *Session) FindOneSpeciesByGenus(
	ctx context.Context,
	genus string,
) (agro.Species, bool, error) {
	q := `SELECT ` + speciesFields + ` FROM species
  WHERE genus = $1
  ORDER BY id_species
  LIMIT 1`
	sp, ok, err := s.querySpecies(ctx, q, genus)
	if err != nil {
		return sp, false, GenusQueryError(genus, err)
	}
	return sp, ok, nil
}

func (s *Session) querySpecies(
	ctx context.Context,
	q string,
	arg any,
) (agro.Species, bool, error) {
	var res agro.Species
	var id int
	var name, genus, family string

	err := s.conn.QueryRow(ctx, q, arg).Scan(&id, &name, &genus, &family)
	if errors.Is(err, pgx.ErrNoRows) {
		return res, false, nil
	}
	if err != nil {
		return res, false, SpeciesQueryError(arg, err)
	}

	res, err = agro.NewSpecies(id, name, genus, family)
	if err != nil {
		return res, false, SpeciesQueryError(arg, err)
	}
	return res, true, nil
}

// Occurrences returns occurrences of a species that have coordinates and
// an event date, ordered by date.
func (s *Session) Occurrences(
	ctx context.Context,
	speciesID int,
) ([]agro.Occurrence, error) {
	q := `SELECT latitude, longitude, event_date,
  EXTRACT(MONTH FROM event_date)::int
  FROM occurrences
  WHERE id_species = $1
    AND latitude IS NOT NULL
    AND longitude IS NOT NULL
    AND event_date IS NOT NULL
  ORDER BY event_date`

	rows, err := s.conn.Query(ctx, q, speciesID)
	if err != nil {
		return nil, OccurrencesQueryError(speciesID, err)
	}
	defer rows.Close()

	var res []agro.Occurrence
	for rows.Next() {
		var lat, lon float64
		var date time.Time
		var month int
		if err = rows.Scan(&lat, &lon, &date, &month); err != nil {
			return nil, OccurrencesQueryError(speciesID, err)
		}
		occ, err := agro.NewOccurrence(&lat, &lon, &date, &month)
		if err != nil {
			return nil, OccurrencesQueryError(speciesID, err)
		}
		res = append(res, occ)
	}
	if err = rows.Err(); err != nil {
		return nil, OccurrencesQueryError(speciesID, err)
	}
	return res, nil
}

// Release returns the connection to the pool. It is safe to call it more
// than once.
func (s *Session) Release() {
	if s.release != nil {
		s.release()
		s.release = nil
	}
}
