package store

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Memory holds summaries in a bounded LRU. Contents are lost on restart.
type Memory struct {
	cache *lru.Cache[string, string]
}

func NewMemory(maxItems int) (*Memory, error) {
	if maxItems <= 0 {
		maxItems = 1024
	}
	c, err := lru.New[string, string](maxItems)
	if err != nil {
		return nil, err
	}
	return &Memory{cache: c}, nil
}

func (m *Memory) LatestSummary(_ context.Context, userID string) (string, bool, error) {
	s, ok := m.cache.Get(userID)
	return s, ok, nil
}

func (m *Memory) SaveSummary(_ context.Context, userID, summary string) error {
	m.cache.Add(userID, summary)
	return nil
}

func (m *Memory) Close() error {
	m.cache.Purge()
	return nil
}
