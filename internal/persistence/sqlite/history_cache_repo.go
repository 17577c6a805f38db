package sqlite

import (
	"context"
	"database/sql"

	"github.com/veilbrowser/veil/internal/domain/entity"
	"github.com/veilbrowser/veil/internal/domain/repository"
)

type historyCacheRepo struct {
	db *sql.DB
}

// NewHistoryCacheRepository creates a SQLite-backed history cache.
func NewHistoryCacheRepository(db *sql.DB) repository.HistoryCacheRepository {
	return &historyCacheRepo{db: db}
}

func (r *historyCacheRepo) Upsert(ctx context.Context, entry *entity.HistoryEntry) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO history_cache (url, title, favicon_url, visit_count, last_visited)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(url) DO UPDATE SET
			title = excluded.title,
			favicon_url = excluded.favicon_url,
			visit_count = excluded.visit_count,
			last_visited = excluded.last_visited`,
		entry.URL, entry.Title, entry.FaviconURL, entry.VisitCount, entry.LastVisited,
	)
	return err
}

func (r *historyCacheRepo) GetAll(ctx context.Context, limit int) ([]*entity.HistoryEntry, error) {
	if limit <= 0 {
		limit = 1000
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT url, title, favicon_url, visit_count, last_visited
		FROM history_cache ORDER BY last_visited DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*entity.HistoryEntry
	for rows.Next() {
		var e entity.HistoryEntry
		if err := rows.Scan(&e.URL, &e.Title, &e.FaviconURL, &e.VisitCount, &e.LastVisited); err != nil {
			return nil, err
		}
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}

func (r *historyCacheRepo) DeleteByURL(ctx context.Context, url string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM history_cache WHERE url = ?`, url)
	return err
}

func (r *historyCacheRepo) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM history_cache`)
	return err
}
