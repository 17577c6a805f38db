package bridge

import (
	"context"

	"github.com/veilbrowser/veil/internal/domain/entity"
)

// HistoryAPI wraps the history.* host namespace. The host stores raw
// visits; aggregation by URL is done client-side by the history store.
type HistoryAPI struct {
	c *Client
}

// VisitsResult carries raw visit records.
type VisitsResult struct {
	Result
	Entries []entity.Visit `json:"entries,omitempty"`
}

type historyGetParams struct {
	Limit int `json:"limit,omitempty"`
}

// GetAll retrieves raw visits, newest first. limit <= 0 means host default.
func (h *HistoryAPI) GetAll(ctx context.Context, limit int) VisitsResult {
	var out VisitsResult
	if !h.c.call(ctx, "history.getAll", historyGetParams{Limit: limit}, &out) {
		return VisitsResult{Result: unavailable("history")}
	}
	return out
}

type historyAddParams struct {
	URL        string `json:"url"`
	Title      string `json:"title"`
	FaviconURL string `json:"favicon_url,omitempty"`
}

// Add records a visit.
func (h *HistoryAPI) Add(ctx context.Context, url, title, faviconURL string) Result {
	var out Result
	if !h.c.call(ctx, "history.add", historyAddParams{URL: url, Title: title, FaviconURL: faviconURL}, &out) {
		return unavailable("history")
	}
	return out
}

type historyDeleteParams struct {
	URL string `json:"url"`
}

// Delete removes all visits for a URL.
func (h *HistoryAPI) Delete(ctx context.Context, url string) Result {
	var out Result
	if !h.c.call(ctx, "history.delete", historyDeleteParams{URL: url}, &out) {
		return unavailable("history")
	}
	return out
}

// Clear wipes browsing history.
func (h *HistoryAPI) Clear(ctx context.Context) Result {
	var out Result
	if !h.c.call(ctx, "history.clear", nil, &out) {
		return unavailable("history")
	}
	return out
}
