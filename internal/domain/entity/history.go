package entity

import (
	"strings"
	"time"
)

// HistoryEntry represents a visited URL in browsing history, aggregated by
// URL. The host hands the client a raw visit list; de-duplication into one
// entry per URL with a visit count happens client-side.
type HistoryEntry struct {
	ID          int64     `json:"id"`
	URL         string    `json:"url"`
	Title       string    `json:"title"`
	FaviconURL  string    `json:"favicon_url"`
	VisitCount  int64     `json:"visit_count"`
	LastVisited time.Time `json:"last_visited"`
}

// NewHistoryEntry creates a new history entry for a URL.
func NewHistoryEntry(url, title string) *HistoryEntry {
	return &HistoryEntry{
		URL:         url,
		Title:       title,
		VisitCount:  1,
		LastVisited: time.Now(),
	}
}

// RecordVisit folds a visit at ts into the entry. Title and favicon from
// newer visits win; older visits only bump the count.
func (h *HistoryEntry) RecordVisit(title, faviconURL string, ts time.Time) {
	h.VisitCount++
	if ts.After(h.LastVisited) {
		h.LastVisited = ts
		if title != "" {
			h.Title = title
		}
		if faviconURL != "" {
			h.FaviconURL = faviconURL
		}
	}
}

// Visit is a single raw visit as reported by the host, before aggregation.
type Visit struct {
	ID         int64     `json:"id"`
	URL        string    `json:"url"`
	Title      string    `json:"title"`
	FaviconURL string    `json:"favicon_url"`
	VisitedAt  time.Time `json:"visited_at"`
}

// nonWebSchemes are URL schemes that never enter history.
var nonWebSchemes = []string{
	"about:", "veil:", "chrome:", "file:", "data:", "javascript:", "blob:",
}

// IsRecordableURL reports whether a URL belongs in browsing history.
// Internal and non-web schemes are skipped entirely.
func IsRecordableURL(url string) bool {
	if url == "" {
		return false
	}
	lower := strings.ToLower(url)
	for _, scheme := range nonWebSchemes {
		if strings.HasPrefix(lower, scheme) {
			return false
		}
	}
	return true
}

// DayLabel buckets a timestamp for display: "Today", "Yesterday", the
// weekday name for the last week, or the full date for anything older.
func DayLabel(ts, now time.Time) string {
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	day := ts.In(now.Location())

	switch {
	case !day.Before(today):
		return "Today"
	case !day.Before(today.AddDate(0, 0, -1)):
		return "Yesterday"
	case !day.Before(today.AddDate(0, 0, -6)):
		return day.Weekday().String()
	default:
		return day.Format("January 2, 2006")
	}
}
