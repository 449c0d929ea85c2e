package store

import (
	"context"
	"maps"
	"sync"
)

// Memory is a non-durable store for tests and dry runs
type Memory struct {
	mu      sync.RWMutex
	records map[string]string
}

// NewMemory creates a store seeded with initial (copied)
func NewMemory(initial map[string]string) *Memory {
	records := make(map[string]string, len(initial))
	maps.Copy(records, initial)
	return &Memory{records: records}
}

func (s *Memory) Get(_ context.Context, repo string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tag, ok := s.records[repo]
	return tag, ok, nil
}

func (s *Memory) Put(_ context.Context, repo, tag string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[repo] = tag
	return nil
}

func (s *Memory) List(_ context.Context) (map[string]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.records), nil
}
