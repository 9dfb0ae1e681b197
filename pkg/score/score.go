// Package score persists the best score between sessions.
package score

import (
	"fmt"
	"sync"
	"time"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// Store loads and saves the best score. Implementations must tolerate being
// called from the simulation goroutine.
type Store interface {
	Load() (float64, error)
	Save(best float64) error
}

// Record is the persisted form of the best score.
type Record struct {
	Best      int       `yaml:"best"`
	UpdatedAt time.Time `yaml:"updatedAt"`
}

// MemoryStore keeps the best score in memory. It is the fallback when no
// persistent storage is available.
type MemoryStore struct {
	mu    sync.Mutex
	best  float64
	saves int
}

// NewMemoryStore creates a MemoryStore seeded with best.
func NewMemoryStore(best float64) *MemoryStore {
	return &MemoryStore{best: best}
}

// Load returns the stored best score.
func (s *MemoryStore) Load() (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.best, nil
}

// Save replaces the stored best score.
func (s *MemoryStore) Save(best float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.best = best
	s.saves++
	return nil
}

// Saves returns how many times Save was called.
func (s *MemoryStore) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

const (
	recordObject   = "highscore"
	recordProperty = "best"
)

// GdataStore keeps the best score in the per-user application data
// directory managed by gdata, encoded as YAML.
type GdataStore struct {
	manager *gdata.Manager
}

// OpenGdataStore opens the gdata storage for appName.
func OpenGdataStore(appName string) (*GdataStore, error) {
	manager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("failed to open save data for %q: %w", appName, err)
	}
	return &GdataStore{manager: manager}, nil
}

// Load returns the stored best score, or 0 if nothing was saved yet.
func (s *GdataStore) Load() (float64, error) {
	if !s.manager.ObjectPropExists(recordObject, recordProperty) {
		return 0, nil
	}
	data, err := s.manager.LoadObjectProp(recordObject, recordProperty)
	if err != nil {
		return 0, fmt.Errorf("failed to load best score: %w", err)
	}
	var rec Record
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return 0, fmt.Errorf("failed to decode best score: %w", err)
	}
	if rec.Best < 0 {
		return 0, nil
	}
	return float64(rec.Best), nil
}

// Save writes best, truncated to a whole number.
func (s *GdataStore) Save(best float64) error {
	data, err := yaml.Marshal(Record{Best: int(best), UpdatedAt: time.Now().UTC()})
	if err != nil {
		return fmt.Errorf("failed to encode best score: %w", err)
	}
	if err := s.manager.SaveObjectProp(recordObject, recordProperty, data); err != nil {
		return fmt.Errorf("failed to save best score: %w", err)
	}
	return nil
}
