package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/sensing-garden/trellis/internal/garden"
)

// Counts holds the per-resource record totals reported by the backend.
type Counts struct {
	Classifications int64
	Detections      int64
	Devices         int64
	Environment     int64
}

// Data is one successful poll's worth of backend records.
type Data struct {
	Classifications []garden.Classification
	Detections      []garden.Detection
	Devices         []garden.Device
	Environment     []garden.EnvironmentReading
	Counts          Counts
}

// Snapshot represents the latest data available to the UI.
type Snapshot struct {
	Data
	HasData             bool
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int
}

// IsOffline returns true when the API has been unreachable for multiple polls.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Store coordinates concurrent updates to the snapshot.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Update replaces the stored snapshot. When err is non-nil the previous data
// is kept but the error is recorded for visibility.
func (s *Store) Update(data *Data, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.LastUpdated = time.Now()
	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.ConsecutiveFailures++
		return
	}

	if data != nil {
		s.snapshot.Data = cloneData(*data)
		s.snapshot.HasData = true
	}
	s.snapshot.LastError = nil
	s.snapshot.ConsecutiveFailures = 0
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Data = cloneData(s.snapshot.Data)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

func cloneData(data Data) Data {
	return Data{
		Classifications: cloneSlice(data.Classifications),
		Detections:      cloneSlice(data.Detections),
		Devices:         cloneSlice(data.Devices),
		Environment:     cloneSlice(data.Environment),
		Counts:          data.Counts,
	}
}

func cloneSlice[T any](items []T) []T {
	if len(items) == 0 {
		return nil
	}
	dup := make([]T, len(items))
	copy(dup, items)
	return dup
}
