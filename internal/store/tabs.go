package store

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/veilbrowser/veil/internal/bridge"
	"github.com/veilbrowser/veil/internal/domain/entity"
)

// TabsStore owns tab existence, ordering, and the active-tab pointer. Tab
// ids are generated locally; the host is merely informed so it can manage
// the backing webviews. Two invariants hold after Init: the tab list is
// never empty, and exactly one tab is active.
type TabsStore struct {
	client    *bridge.Client
	newTabURL string
	log       zerolog.Logger

	mu   sync.RWMutex
	tabs *entity.TabList
	err  string
}

// NewTabsStore creates a tabs store. newTabURL is loaded into fresh tabs.
func NewTabsStore(client *bridge.Client, newTabURL string, log zerolog.Logger) *TabsStore {
	if newTabURL == "" {
		newTabURL = entity.BlankTabURL
	}
	return &TabsStore{
		client:    client,
		newTabURL: newTabURL,
		log:       log.With().Str("component", "tabs-store").Logger(),
		tabs:      entity.NewTabList(),
	}
}

// Err returns the last store-level error string.
func (s *TabsStore) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// Init creates the initial blank tab.
func (s *TabsStore) Init(ctx context.Context) *entity.Tab {
	return s.NewTab(ctx, s.newTabURL)
}

// Tabs returns a snapshot of the tab list in order.
func (s *TabsStore) Tabs() []entity.Tab {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.Tab, 0, len(s.tabs.Tabs))
	for _, t := range s.tabs.Tabs {
		out = append(out, *t)
	}
	return out
}

// ActiveTab returns a copy of the active tab. The second return is false
// only before Init.
func (s *TabsStore) ActiveTab() (entity.Tab, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if t := s.tabs.ActiveTab(); t != nil {
		return *t, true
	}
	return entity.Tab{}, false
}

// Count returns the number of open tabs.
func (s *TabsStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tabs.Count()
}

// NewTab creates a tab locally, activates it, and informs the host.
func (s *TabsStore) NewTab(ctx context.Context, url string) *entity.Tab {
	if url == "" {
		url = s.newTabURL
	}
	tab := entity.NewTab(entity.NewTabID(), url)

	s.mu.Lock()
	s.tabs.Add(tab)
	s.tabs.ActiveTabID = tab.ID
	s.mu.Unlock()

	if res := s.client.Browser.CreateTab(ctx, tab.ID, url); res.Failed() {
		s.log.Warn().Str("tab_id", string(tab.ID)).Str("error", res.Error).Msg("host tab creation failed")
	}
	return tab
}

// Close removes a tab. Closing the active tab promotes the nearest
// remaining tab; closing the last tab replaces it with a fresh blank tab so
// the list never empties.
func (s *TabsStore) Close(ctx context.Context, id entity.TabID) {
	s.mu.Lock()
	if !s.tabs.Remove(id) {
		s.mu.Unlock()
		return
	}
	empty := s.tabs.Count() == 0
	s.mu.Unlock()

	if res := s.client.Browser.CloseTab(ctx, id); res.Failed() {
		s.log.Warn().Str("tab_id", string(id)).Str("error", res.Error).Msg("host tab close failed")
	}

	if empty {
		s.NewTab(ctx, s.newTabURL)
		return
	}

	s.mu.RLock()
	active := s.tabs.ActiveTabID
	s.mu.RUnlock()
	if res := s.client.Browser.SwitchTab(ctx, active); res.Failed() {
		s.log.Warn().Str("tab_id", string(active)).Str("error", res.Error).Msg("host tab switch failed")
	}
}

// Switch changes the active tab.
func (s *TabsStore) Switch(ctx context.Context, id entity.TabID) bool {
	s.mu.Lock()
	if s.tabs.Find(id) == nil {
		s.err = "Tab not found"
		s.mu.Unlock()
		return false
	}
	s.tabs.ActiveTabID = id
	s.err = ""
	s.mu.Unlock()

	if res := s.client.Browser.SwitchTab(ctx, id); res.Failed() {
		s.log.Warn().Str("tab_id", string(id)).Str("error", res.Error).Msg("host tab switch failed")
	}
	return true
}

// Navigate loads a URL in the active tab, optimistically marking it
// loading; the authoritative navigation state arrives via events.
func (s *TabsStore) Navigate(ctx context.Context, url string) bool {
	s.mu.Lock()
	tab := s.tabs.ActiveTab()
	if tab == nil {
		s.err = "No active tab"
		s.mu.Unlock()
		return false
	}
	tab.URL = url
	tab.IsLoading = true
	id := tab.ID
	s.err = ""
	s.mu.Unlock()

	res := s.client.Browser.Navigate(ctx, id, url)
	if res.Failed() {
		s.mu.Lock()
		s.err = res.Error
		if t := s.tabs.Find(id); t != nil {
			t.IsLoading = false
		}
		s.mu.Unlock()
		return false
	}
	return true
}

// GoBack navigates the active tab back.
func (s *TabsStore) GoBack(ctx context.Context) {
	if tab, ok := s.ActiveTab(); ok && tab.CanGoBack {
		if res := s.client.Browser.GoBack(ctx, tab.ID); res.Failed() {
			s.log.Warn().Str("error", res.Error).Msg("go back failed")
		}
	}
}

// GoForward navigates the active tab forward.
func (s *TabsStore) GoForward(ctx context.Context) {
	if tab, ok := s.ActiveTab(); ok && tab.CanGoForward {
		if res := s.client.Browser.GoForward(ctx, tab.ID); res.Failed() {
			s.log.Warn().Str("error", res.Error).Msg("go forward failed")
		}
	}
}

// Reload reloads the active tab.
func (s *TabsStore) Reload(ctx context.Context) {
	if tab, ok := s.ActiveTab(); ok {
		if res := s.client.Browser.Reload(ctx, tab.ID); res.Failed() {
			s.log.Warn().Str("error", res.Error).Msg("reload failed")
		}
	}
}

// Stop cancels the active tab's load.
func (s *TabsStore) Stop(ctx context.Context) {
	if tab, ok := s.ActiveTab(); ok {
		if res := s.client.Browser.Stop(ctx, tab.ID); res.Failed() {
			s.log.Warn().Str("error", res.Error).Msg("stop failed")
		}
	}
}

// ApplyNavigated reconciles a host navigation event. Events for unknown
// tabs are ignored; the tab may have been closed while the event was in
// flight.
func (s *TabsStore) ApplyNavigated(id entity.TabID, url string, canGoBack, canGoForward bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t := s.tabs.Find(id); t != nil {
		t.URL = url
		t.CanGoBack = canGoBack
		t.CanGoForward = canGoForward
	}
}

// ApplyTitle reconciles a host title event.
func (s *TabsStore) ApplyTitle(id entity.TabID, title string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t := s.tabs.Find(id); t != nil {
		t.Title = title
	}
}

// ApplyFavicon reconciles a host favicon event.
func (s *TabsStore) ApplyFavicon(id entity.TabID, faviconURL string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t := s.tabs.Find(id); t != nil {
		t.FaviconURL = faviconURL
	}
}

// ApplyLoading reconciles a host loading-state event.
func (s *TabsStore) ApplyLoading(id entity.TabID, isLoading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t := s.tabs.Find(id); t != nil {
		t.IsLoading = isLoading
	}
}
