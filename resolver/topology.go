package resolver

import (
	"context"
	"fmt"
	"sync"

	"github.com/lmmx/roundel/topology"
)

// TopologySource loads a topology dataset once and then serves it from
// memory. Failed loads are retried on the next call.
type TopologySource struct {
	Provider     topology.Provider
	IncludeBuses bool

	mu      sync.Mutex
	dataset *topology.Dataset
}

// NewTopologySource wraps a provider. A nil provider is allowed and always
// reports that no topology is configured.
func NewTopologySource(p topology.Provider, includeBuses bool) *TopologySource {
	return &TopologySource{Provider: p, IncludeBuses: includeBuses}
}

// Preloaded serves an already loaded dataset.
func Preloaded(ds *topology.Dataset) *TopologySource {
	return &TopologySource{dataset: ds}
}

// Dataset returns the cached dataset, loading it on first use.
func (s *TopologySource) Dataset(ctx context.Context) (*topology.Dataset, error) {
	if s == nil {
		return nil, fmt.Errorf("no topology configured")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dataset != nil {
		return s.dataset, nil
	}
	if s.Provider == nil {
		return nil, fmt.Errorf("no topology configured")
	}
	ds, err := s.Provider.Load(ctx, s.IncludeBuses)
	if err != nil {
		return nil, fmt.Errorf("failed to load topology: %w", err)
	}
	s.dataset = ds
	return ds, nil
}
