package content

import (
	"errors"
	"sync"

	"residence/server/internal/models"
)

var ErrResetNotConfirmed = errors.New("reset was not confirmed")

// ChangeFunc receives a full snapshot after every effective mutation
type ChangeFunc func(models.AllData)

// ConfirmFunc asks the operator to approve an irreversible action
type ConfirmFunc func(prompt string) bool

// Store owns the current site content. Getters return copies;
// mutations on unknown ids are silent no-ops.
type Store struct {
	mu       sync.RWMutex
	data     models.AllData
	onChange ChangeFunc
}

// NewStore creates a store holding a copy of initial
func NewStore(initial models.AllData) *Store {
	return &Store{data: initial.Clone()}
}

// OnChange registers the listener notified after mutations
func (s *Store) OnChange(fn ChangeFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = fn
}

// Snapshot returns a deep copy of all content
func (s *Store) Snapshot() models.AllData {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.Clone()
}

// Replace installs data without notifying the change listener
func (s *Store) Replace(data models.AllData) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = data.Clone()
}

// Reset discards all content and restores the built-in defaults
func (s *Store) Reset(confirm ConfirmFunc) error {
	if confirm == nil || !confirm("Reset all content to the built-in defaults? Local changes will be lost.") {
		return ErrResetNotConfirmed
	}
	s.mutate(func(d *models.AllData) bool {
		*d = Defaults()
		return true
	})
	return nil
}

// mutate applies fn under the write lock and notifies the listener
// outside of it when fn reports a change.
func (s *Store) mutate(fn func(*models.AllData) bool) {
	s.mu.Lock()
	changed := fn(&s.data)
	var snapshot models.AllData
	listener := s.onChange
	if changed && listener != nil {
		snapshot = s.data.Clone()
	}
	s.mu.Unlock()

	if changed && listener != nil {
		listener(snapshot)
	}
}

func replaceByID[T any](items []T, id string, idOf func(T) string, v T) bool {
	for i := range items {
		if idOf(items[i]) == id {
			items[i] = v
			return true
		}
	}
	return false
}

func removeByID[T any](items []T, id string, idOf func(T) string) ([]T, bool) {
	for i := range items {
		if idOf(items[i]) == id {
			out := make([]T, 0, len(items)-1)
			out = append(out, items[:i]...)
			return append(out, items[i+1:]...), true
		}
	}
	return items, false
}

func findByID[T any](items []T, id string, idOf func(T) string) (T, bool) {
	for _, item := range items {
		if idOf(item) == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}
