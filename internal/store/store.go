// Package store keeps the most recent session summary per user so the next
// session analysis can refer to it.
package store

import (
	"context"
	"fmt"

	"github.com/sozercan/prodsight/internal/config"
)

type SummaryStore interface {
	// LatestSummary returns the last saved summary for userID; ok is false
	// when none exists.
	LatestSummary(ctx context.Context, userID string) (summary string, ok bool, err error)
	SaveSummary(ctx context.Context, userID, summary string) error
	Close() error
}

// New returns the backend selected by cfg.Backend.
func New(ctx context.Context, cfg config.StoreConfig) (SummaryStore, error) {
	switch cfg.Backend {
	case "redis":
		return NewRedis(ctx, cfg)
	case "memory", "":
		return NewMemory(cfg.Size)
	}
	return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
}
