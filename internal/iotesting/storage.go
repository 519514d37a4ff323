package iotesting

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/gnames/gnagro/pkg/agro"
	"github.com/gnames/gnagro/pkg/lifecycle"
)

// Operation names understood by FailOn and PanicOn. Write operations use
// table names.
const (
	OpSession     = "session"
	OpSpecies     = "species"
	OpOccurrences = "occurrences"
	OpGenus       = "genus"
	OpClimate     = "climate_requirements"
	OpCrop        = "crop_profile"
	OpSoil        = "soil_requirements"
	OpCalendar    = "planting_calendar"
	OpCompanions  = "companion_plants"
)

type pair struct{ a, b int }

// MemStorage keeps species data in memory. Its writes follow the same
// conflict rules as the PostgreSQL store. It is safe for concurrent use.
type MemStorage struct {
	mu          sync.Mutex
	species     map[int]agro.Species
	occurrences map[int][]agro.Occurrence
	climate     map[int]agro.ClimateRequirement
	crops       map[int]agro.CropProfile
	soils       map[int]agro.SoilRequirement
	calendars   map[int]agro.PlantingCalendar
	companions  map[pair]agro.CompanionPlant
	failures    map[string]error
	panics      map[string]bool
	open        int
	opened      int
}

// NewMemStorage creates an empty storage.
func NewMemStorage() *MemStorage {
	return &MemStorage{
		species:     make(map[int]agro.Species),
		occurrences: make(map[int][]agro.Occurrence),
		climate:     make(map[int]agro.ClimateRequirement),
		crops:       make(map[int]agro.CropProfile),
		soils:       make(map[int]agro.SoilRequirement),
		calendars:   make(map[int]agro.PlantingCalendar),
		companions:  make(map[pair]agro.CompanionPlant),
		failures:    make(map[string]error),
		panics:      make(map[string]bool),
	}
}

// AddSpecies stores species rows.
func (m *MemStorage) AddSpecies(sp ...agro.Species) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, v := range sp {
		m.species[v.ID] = v
	}
}

// AddOccurrences appends occurrences of a species.
func (m *MemStorage) AddOccurrences(speciesID int, occs ...agro.Occurrence) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.occurrences[speciesID] = append(m.occurrences[speciesID], occs...)
}

// FailOn makes an operation return err. A nil err removes the failure.
func (m *MemStorage) FailOn(op string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err == nil {
		delete(m.failures, op)
		return
	}
	m.failures[op] = err
}

// PanicOn makes an operation panic.
func (m *MemStorage) PanicOn(op string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.panics[op] = true
}

// Session opens a new in-memory session.
func (m *MemStorage) Session(_ context.Context) (lifecycle.Session, error) {
	if err := m.check(OpSession); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.open++
	m.opened++
	return &memSession{m: m}, nil
}

// OpenSessions is the number of sessions that were not released.
func (m *MemStorage) OpenSessions() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.open
}

// OpenedSessions is the number of sessions ever opened.
func (m *MemStorage) OpenedSessions() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.opened
}

// ClimateRequirement returns the stored climate row of a species.
func (m *MemStorage) ClimateRequirement(id int) (agro.ClimateRequirement, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	res, ok := m.climate[id]
	return res, ok
}

// CropProfile returns the stored crop profile of a species.
func (m *MemStorage) CropProfile(id int) (agro.CropProfile, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	res, ok := m.crops[id]
	return res, ok
}

// SoilRequirement returns the stored soil row of a species.
func (m *MemStorage) SoilRequirement(id int) (agro.SoilRequirement, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	res, ok := m.soils[id]
	return res, ok
}

// PlantingCalendar returns the stored calendar of a species.
func (m *MemStorage) PlantingCalendar(id int) (agro.PlantingCalendar, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	res, ok := m.calendars[id]
	return res, ok
}

// SetPlantingCalendar overwrites a stored calendar, imitating a manual
// edit of the row.
func (m *MemStorage) SetPlantingCalendar(cal agro.PlantingCalendar) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calendars[cal.SpeciesID] = cal
}

// CompanionPlants returns stored edges sorted by species ids.
func (m *MemStorage) CompanionPlants() []agro.CompanionPlant {
	m.mu.Lock()
	defer m.mu.Unlock()
	res := make([]agro.CompanionPlant, 0, len(m.companions))
	for _, v := range m.companions {
		res = append(res, v)
	}
	slices.SortFunc(res, func(a, b agro.CompanionPlant) int {
		return cmp.Or(
			cmp.Compare(a.SpeciesAID, b.SpeciesAID),
			cmp.Compare(a.SpeciesBID, b.SpeciesBID),
		)
	})
	return res
}

func (m *MemStorage) check(op string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.panics[op] {
		panic(fmt.Sprintf("%s exploded", op))
	}
	return m.failures[op]
}

type memSession struct {
	m        *MemStorage
	released bool
}

func (s *memSession) Species(
	_ context.Context,
	id int,
) (agro.Species, bool, error) {
	if err := s.m.check(OpSpecies); err != nil {
		return agro.Species{}, false, err
	}
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	res, ok := s.m.species[id]
	return res, ok, nil
}

func (s *memSession) Occurrences(
	_ context.Context,
	speciesID int,
) ([]agro.Occurrence, error) {
	if err := s.m.check(OpOccurrences); err != nil {
		return nil, err
	}
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	return slices.Clone(s.m.occurrences[speciesID]), nil
}

// FindOneSpeciesByGenus returns the species with the lowest id, like
// the SQL store does.
func (s *memSession) FindOneSpeciesByGenus(
	_ context.Context,
	genus string,
) (agro.Species, bool, error) {
	if err := s.m.check(OpGenus); err != nil {
		return agro.Species{}, false, err
	}
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	var res agro.Species
	var found bool
	for _, v := range s.m.species {
		if v.Genus != genus {
			continue
		}
		if !found || v.ID < res.ID {
			res = v
			found = true
		}
	}
	return res, found, nil
}

func (s *memSession) UpsertClimateRequirement(
	_ context.Context,
	req agro.ClimateRequirement,
) error {
	if err := s.m.check(OpClimate); err != nil {
		return err
	}
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if old, ok := s.m.climate[req.SpeciesID]; ok {
		req.FrostTolerance = old.FrostTolerance
		req.DroughtTolerance = old.DroughtTolerance
	}
	s.m.climate[req.SpeciesID] = req
	return nil
}

func (s *memSession) UpsertCropProfile(
	_ context.Context,
	cp agro.CropProfile,
) error {
	if err := s.m.check(OpCrop); err != nil {
		return err
	}
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if old, ok := s.m.crops[cp.SpeciesID]; ok {
		old.NitrogenFixing = cp.NitrogenFixing
		cp = old
	}
	s.m.crops[cp.SpeciesID] = cp
	return nil
}

func (s *memSession) UpsertSoilRequirement(
	_ context.Context,
	soil agro.SoilRequirement,
) error {
	if err := s.m.check(OpSoil); err != nil {
		return err
	}
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if _, ok := s.m.soils[soil.SpeciesID]; !ok {
		s.m.soils[soil.SpeciesID] = soil
	}
	return nil
}

func (s *memSession) UpsertPlantingCalendar(
	_ context.Context,
	cal agro.PlantingCalendar,
) error {
	if err := s.m.check(OpCalendar); err != nil {
		return err
	}
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if _, ok := s.m.calendars[cal.SpeciesID]; !ok {
		s.m.calendars[cal.SpeciesID] = cal
	}
	return nil
}

func (s *memSession) InsertCompanionPlant(
	_ context.Context,
	cp agro.CompanionPlant,
) error {
	if err := s.m.check(OpCompanions); err != nil {
		return err
	}
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	key := pair{cp.SpeciesAID, cp.SpeciesBID}
	if _, ok := s.m.companions[key]; !ok {
		cp.CompanionName = ""
		s.m.companions[key] = cp
	}
	return nil
}

func (s *memSession) Release() {
	if s.released {
		return
	}
	s.released = true
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	s.m.open--
}
