// Package history keeps the append-only time series of observed prices per
// model and retailer, mirrored to durable storage between sweeps.
package history

import (
	"encoding/json"

	"watchtracker/logger"
	"watchtracker/pkg/errors"
)

// Observation is a single observed price on a calendar day. Observations
// are immutable once recorded and kept in insertion order; two sweeps on
// the same day produce two entries, never a merged one.
type Observation struct {
	Date  string  `json:"date"`
	Price float64 `json:"price"`
}

// Store maps (model, retailer) to its chronological observation sequence.
// Every pair from the catalog and retailer tables always has an entry, so
// readers never need an existence check; absence of data is an empty
// sequence. The store is owned by a single writer during a sweep and only
// read afterward, so it carries no locking.
type Store struct {
	data      map[string]map[string][]Observation
	models    []string
	retailers []string
	storage   Storage
	log       *logger.Logger
}

// NewStore creates a store covering the full models × retailers grid, all
// sequences empty.
func NewStore(models, retailers []string, storage Storage) *Store {
	s := &Store{
		models:    models,
		retailers: retailers,
		storage:   storage,
		log:       logger.ForHistory(),
	}
	s.reset()
	return s
}

// Load replaces the in-memory state with the persisted record. Missing grid
// entries are reconstructed as empty sequences, so adding a model or
// retailer to the static configuration needs no data migration. Corrupt or
// unreadable storage falls back to the all-empty grid and is logged, never
// fatal.
func (s *Store) Load() {
	data, ok, err := s.storage.ReadIfExists()
	if err != nil {
		s.log.Warn().
			Err(errors.NewPersistence("could not read price history", err)).
			Msg("Starting with empty history")
		s.reset()
		return
	}
	if !ok {
		s.reset()
		return
	}

	var loaded map[string]map[string][]Observation
	if err := json.Unmarshal(data, &loaded); err != nil {
		s.log.Warn().
			Err(errors.NewPersistence("corrupt price history", err)).
			Msg("Starting with empty history")
		s.reset()
		return
	}

	s.data = loaded
	s.ensureGrid()
}

// Save persists the full in-memory state.
func (s *Store) Save() error {
	data, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return errors.NewPersistence("could not encode price history", err)
	}
	if err := s.storage.Write(data); err != nil {
		return errors.NewPersistence("could not write price history", err)
	}
	return nil
}

// Record appends an observation for the given model and retailer. It never
// overwrites or deduplicates by date.
func (s *Store) Record(model, retailer string, obs Observation) {
	if s.data[model] == nil {
		s.data[model] = make(map[string][]Observation)
	}
	s.data[model][retailer] = append(s.data[model][retailer], obs)
}

// Observations returns the recorded sequence for a model and retailer.
func (s *Store) Observations(model, retailer string) []Observation {
	return s.data[model][retailer]
}

// reset discards all state and rebuilds the empty grid
func (s *Store) reset() {
	s.data = make(map[string]map[string][]Observation)
	s.ensureGrid()
}

// ensureGrid fills in any missing model or retailer keys with empty
// sequences, upholding the full-grid invariant.
func (s *Store) ensureGrid() {
	for _, model := range s.models {
		if s.data[model] == nil {
			s.data[model] = make(map[string][]Observation)
		}
		for _, retailer := range s.retailers {
			if s.data[model][retailer] == nil {
				s.data[model][retailer] = []Observation{}
			}
		}
	}
}
