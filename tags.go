package linelog

import (
	"sync"

	"github.com/willibrandon/linelog/core"
)

// TagStore holds the ambient tags applied to every record a logger formats.
// It is an explicit, injectable replacement for a process-global registry:
// log calls keep their "no tag threading" ergonomics while the dependency
// stays visible and testable.
//
// The store preserves insertion order and is safe for concurrent use. Tag
// churn is expected to be rare relative to log volume, so a single RWMutex
// guards the mapping.
type TagStore struct {
	mu     sync.RWMutex
	order  []string
	values map[string]any
}

// NewTagStore creates an empty tag store.
func NewTagStore() *TagStore {
	return &TagStore{values: make(map[string]any)}
}

// Add sets a tag. Re-adding an existing name updates the value in place and
// keeps the original position. Name and value validity are checked at
// render time, not here; invalid tags are silently dropped from output.
func (s *TagStore) Add(name string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.values[name]; !exists {
		s.order = append(s.order, name)
	}
	s.values[name] = value
}

// Remove deletes a tag. Removing an absent name is a no-op.
func (s *TagStore) Remove(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.values[name]; !exists {
		return
	}
	delete(s.values, name)
	for i, n := range s.order {
		if n == name {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Snapshot returns the current tags in insertion order. The result is a
// copy; callers may retain it across further Add/Remove calls.
func (s *TagStore) Snapshot() []core.Tag {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tags := make([]core.Tag, 0, len(s.order))
	for _, name := range s.order {
		tags = append(tags, core.Tag{Name: name, Value: s.values[name]})
	}
	return tags
}
