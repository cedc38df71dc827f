package store

import (
	"context"
	"sort"
	"sync"

	"github.com/viant/leveling/service/dao"
)

// MemoryStore is a generic in-memory implementation of dao.Service keyed by
// string ids. Records are listed in insertion order.
type MemoryStore[T any] struct {
	mu          sync.RWMutex
	records     map[string]*T
	order       map[string]int
	sequence    int
	keySelector func(*T) string
	filter      func(*T, []*dao.Parameter) bool
}

// NewMemoryStore creates a store; keySelector extracts the entity id and
// filter, when not nil, decides which records List returns.
func NewMemoryStore[T any](keySelector func(*T) string, filter func(*T, []*dao.Parameter) bool) *MemoryStore[T] {
	return &MemoryStore[T]{
		records:     make(map[string]*T),
		order:       make(map[string]int),
		keySelector: keySelector,
		filter:      filter,
	}
}

// Save stores or overwrites a record.
func (s *MemoryStore[T]) Save(_ context.Context, v *T) error {
	if v == nil {
		return dao.ErrNilEntity
	}
	key := s.keySelector(v)
	if key == "" {
		return dao.ErrInvalidID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.order[key]; !ok {
		s.sequence++
		s.order[key] = s.sequence
	}
	s.records[key] = v
	return nil
}

// Load returns a record by key.
func (s *MemoryStore[T]) Load(_ context.Context, key string) (*T, error) {
	if key == "" {
		return nil, dao.ErrInvalidID
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.records[key]
	if !ok {
		return nil, dao.ErrNotFound
	}
	return v, nil
}

// Delete removes a record.
func (s *MemoryStore[T]) Delete(_ context.Context, key string) error {
	if key == "" {
		return dao.ErrInvalidID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[key]; !ok {
		return dao.ErrNotFound
	}
	delete(s.records, key)
	delete(s.order, key)
	return nil
}

// List returns matching records in insertion order.
func (s *MemoryStore[T]) List(_ context.Context, parameters ...*dao.Parameter) ([]*T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.records))
	for key := range s.records {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return s.order[keys[i]] < s.order[keys[j]] })
	out := make([]*T, 0, len(keys))
	for _, key := range keys {
		v := s.records[key]
		if s.filter != nil && !s.filter(v, parameters) {
			continue
		}
		out = append(out, v)
	}
	return out, nil
}
