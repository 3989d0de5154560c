// Package memory provides an in-memory ports.MachineStore.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/absm/pkg/definition"
	"github.com/aretw0/absm/pkg/domain"
)

// Store implements ports.MachineStore in memory.
// Definitions are kept encoded so callers never share pointers with the store.
// Safe for concurrent use.
type Store struct {
	data map[string][]byte
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string][]byte),
	}
}

// Save persists the definition in memory.
func (s *Store) Save(ctx context.Context, machineID string, def *definition.Definition) error {
	if machineID == "" {
		return fmt.Errorf("machineID cannot be empty")
	}
	data, err := json.Marshal(def)
	if err != nil {
		return fmt.Errorf("failed to marshal definition: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[machineID] = data
	return nil
}

// Load retrieves a copy of the definition.
func (s *Store) Load(ctx context.Context, machineID string) (*definition.Definition, error) {
	s.mu.RLock()
	data, ok := s.data[machineID]
	s.mu.RUnlock()
	if !ok {
		return nil, domain.ErrMachineNotFound
	}

	var def definition.Definition
	if err := json.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("failed to unmarshal definition: %w", err)
	}
	return &def, nil
}

// Delete removes the definition.
func (s *Store) Delete(ctx context.Context, machineID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, machineID)
	return nil
}

// List returns the stored IDs in ascending order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
