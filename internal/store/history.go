package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/veilbrowser/veil/internal/bridge"
	"github.com/veilbrowser/veil/internal/domain/entity"
	"github.com/veilbrowser/veil/internal/domain/repository"
)

// HistoryStore owns the aggregated history view. The host stores raw
// visits; this store collapses them into one entry per URL with a visit
// count and the newest title/favicon.
type HistoryStore struct {
	client *bridge.Client
	cache  repository.HistoryCacheRepository
	log    zerolog.Logger

	mu      sync.RWMutex
	entries map[string]*entity.HistoryEntry // keyed by URL
	err     string
}

// NewHistoryStore creates a history store. cache may be nil to skip local
// warm caching.
func NewHistoryStore(client *bridge.Client, cache repository.HistoryCacheRepository, log zerolog.Logger) *HistoryStore {
	return &HistoryStore{
		client:  client,
		cache:   cache,
		log:     log.With().Str("component", "history-store").Logger(),
		entries: make(map[string]*entity.HistoryEntry),
	}
}

// Err returns the last store-level error string.
func (s *HistoryStore) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// Load fetches raw visits from the host and aggregates them by URL.
// Loading is idempotent: the collection is rebuilt from scratch each time.
func (s *HistoryStore) Load(ctx context.Context, limit int) bool {
	res := s.client.History.GetAll(ctx, limit)
	if res.Failed() {
		s.mu.Lock()
		s.err = res.Error
		s.mu.Unlock()
		return false
	}

	entries := make(map[string]*entity.HistoryEntry, len(res.Entries))
	for _, v := range res.Entries {
		if existing, ok := entries[v.URL]; ok {
			existing.RecordVisit(v.Title, v.FaviconURL, v.VisitedAt)
			continue
		}
		entries[v.URL] = &entity.HistoryEntry{
			ID:          v.ID,
			URL:         v.URL,
			Title:       v.Title,
			FaviconURL:  v.FaviconURL,
			VisitCount:  1,
			LastVisited: v.VisitedAt,
		}
	}

	s.mu.Lock()
	s.entries = entries
	s.err = ""
	s.mu.Unlock()

	s.warmCache(ctx)
	return true
}

// warmCache mirrors the aggregated view into the local cache, best-effort.
func (s *HistoryStore) warmCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	for _, e := range s.Entries() {
		if err := s.cache.Upsert(ctx, e); err != nil {
			s.log.Debug().Err(err).Str("url", e.URL).Msg("history cache upsert failed")
			return
		}
	}
}

// AddVisit records a page visit. Internal and non-web URL schemes are
// skipped entirely: no host call, no error.
func (s *HistoryStore) AddVisit(ctx context.Context, url, title, faviconURL string) {
	if !entity.IsRecordableURL(url) {
		return
	}

	if res := s.client.History.Add(ctx, url, title, faviconURL); res.Failed() {
		s.log.Warn().Str("url", url).Str("error", res.Error).Msg("failed to record visit host-side")
	}

	now := time.Now()
	s.mu.Lock()
	if existing, ok := s.entries[url]; ok {
		existing.RecordVisit(title, faviconURL, now)
	} else {
		s.entries[url] = &entity.HistoryEntry{
			URL:         url,
			Title:       title,
			FaviconURL:  faviconURL,
			VisitCount:  1,
			LastVisited: now,
		}
	}
	entry := *s.entries[url]
	s.mu.Unlock()

	if s.cache != nil {
		if err := s.cache.Upsert(ctx, &entry); err != nil {
			s.log.Debug().Err(err).Msg("history cache upsert failed")
		}
	}
}

// Delete removes a URL from history.
func (s *HistoryStore) Delete(ctx context.Context, url string) bool {
	res := s.client.History.Delete(ctx, url)
	if res.Failed() {
		s.mu.Lock()
		s.err = res.Error
		s.mu.Unlock()
		return false
	}

	s.mu.Lock()
	delete(s.entries, url)
	s.err = ""
	s.mu.Unlock()

	if s.cache != nil {
		if err := s.cache.DeleteByURL(ctx, url); err != nil {
			s.log.Debug().Err(err).Msg("history cache delete failed")
		}
	}
	return true
}

// Clear wipes all history.
func (s *HistoryStore) Clear(ctx context.Context) bool {
	res := s.client.History.Clear(ctx)
	if res.Failed() {
		s.mu.Lock()
		s.err = res.Error
		s.mu.Unlock()
		return false
	}

	s.mu.Lock()
	s.entries = make(map[string]*entity.HistoryEntry)
	s.err = ""
	s.mu.Unlock()

	if s.cache != nil {
		if err := s.cache.Clear(ctx); err != nil {
			s.log.Debug().Err(err).Msg("history cache clear failed")
		}
	}
	return true
}

// Entries returns the aggregated entries sorted by last visited, newest
// first.
func (s *HistoryStore) Entries() []*entity.HistoryEntry {
	s.mu.RLock()
	out := make([]*entity.HistoryEntry, 0, len(s.entries))
	for _, e := range s.entries {
		copied := *e
		out = append(out, &copied)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].LastVisited.After(out[j].LastVisited)
	})
	return out
}

// Search returns entries whose title or URL contains the query,
// case-insensitive.
func (s *HistoryStore) Search(query string) []*entity.HistoryEntry {
	q := strings.ToLower(query)
	var out []*entity.HistoryEntry
	for _, e := range s.Entries() {
		if strings.Contains(strings.ToLower(e.Title), q) || strings.Contains(strings.ToLower(e.URL), q) {
			out = append(out, e)
		}
	}
	return out
}

// DayGroup is one display bucket of history entries.
type DayGroup struct {
	Label   string
	Entries []*entity.HistoryEntry
}

// GroupedByDay buckets entries into Today / Yesterday / weekday / full-date
// groups, newest group first.
func (s *HistoryStore) GroupedByDay(now time.Time) []DayGroup {
	var groups []DayGroup
	index := make(map[string]int)

	for _, e := range s.Entries() {
		label := entity.DayLabel(e.LastVisited, now)
		if i, ok := index[label]; ok {
			groups[i].Entries = append(groups[i].Entries, e)
			continue
		}
		index[label] = len(groups)
		groups = append(groups, DayGroup{Label: label, Entries: []*entity.HistoryEntry{e}})
	}
	return groups
}
