package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/arbor/pkg/domain"
)

// Source implements ports.FlowSource using an in-memory map.
// Safe for concurrent use; Replace supports hot-swapping the whole set.
type Source struct {
	mu    sync.RWMutex
	flows map[string]domain.FlowSpec
}

// NewSource creates an empty in-memory flow source.
func NewSource() *Source {
	return &Source{flows: make(map[string]domain.FlowSpec)}
}

// NewFromSpecs creates a source pre-populated with the given flows.
// This keeps embedded setups and tests to one call.
func NewFromSpecs(flows ...domain.FlowSpec) (*Source, error) {
	s := NewSource()
	for _, flow := range flows {
		if err := s.Put(flow); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Put validates and stores a flow, overwriting any previous definition with
// the same id.
func (s *Source) Put(flow domain.FlowSpec) error {
	if err := flow.Validate(); err != nil {
		return fmt.Errorf("invalid flow: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flows[flow.ID] = flow
	return nil
}

// GetFlow retrieves a flow definition by id.
func (s *Source) GetFlow(ctx context.Context, id string) (domain.FlowSpec, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	flow, ok := s.flows[id]
	if !ok {
		return domain.FlowSpec{}, domain.ErrFlowNotFound
	}
	return flow, nil
}

// ListFlows returns all known flow ids in sorted order.
func (s *Source) ListFlows(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.flows))
	for id := range s.flows {
		ids = append(ids, id)
	}
	sort.Strings(ids) // Deterministic order
	return ids, nil
}
