package storage

import (
	"sort"
	"sync"

	"github.com/runtofuture/ethereumj/internal/core"
)

// BlockStore persists imported block summaries. It is a bus consumer, not
// bus state: the node feeds it through a BlockAdded subscription.
type BlockStore interface {
	SaveSummary(s *core.BlockSummary) error
	GetSummary(number uint64) (*core.BlockSummary, error)
	// LatestSummary returns nil when the store is empty.
	LatestSummary() (*core.BlockSummary, error)

	Close() error
}

// InMemory is a map-backed BlockStore for tests and light embedders.
type InMemory struct {
	mu        sync.RWMutex
	summaries map[uint64]*core.BlockSummary
}

func NewInMemory() *InMemory {
	return &InMemory{summaries: make(map[uint64]*core.BlockSummary)}
}

func (m *InMemory) SaveSummary(s *core.BlockSummary) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.summaries[s.Block.Number] = s
	return nil
}

func (m *InMemory) GetSummary(number uint64) (*core.BlockSummary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.summaries[number]
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

func (m *InMemory) LatestSummary() (*core.BlockSummary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if len(m.summaries) == 0 {
		return nil, nil
	}
	numbers := make([]uint64, 0, len(m.summaries))
	for n := range m.summaries {
		numbers = append(numbers, n)
	}
	sort.Slice(numbers, func(i, j int) bool { return numbers[i] < numbers[j] })
	return m.summaries[numbers[len(numbers)-1]], nil
}

func (m *InMemory) Close() error { return nil }
