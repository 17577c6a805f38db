package repository

import (
	"context"

	"github.com/veilbrowser/veil/internal/domain/entity"
)

// HistoryCacheRepository persists the aggregated history view locally so
// panels can render without a host round-trip. The host remains the
// authoritative source; this is a transient cache.
type HistoryCacheRepository interface {
	// Upsert stores an aggregated entry keyed by URL.
	Upsert(ctx context.Context, entry *entity.HistoryEntry) error

	// GetAll retrieves cached entries ordered by last visited desc.
	GetAll(ctx context.Context, limit int) ([]*entity.HistoryEntry, error)

	// DeleteByURL removes one cached entry.
	DeleteByURL(ctx context.Context, url string) error

	// Clear drops the whole cache.
	Clear(ctx context.Context) error
}
