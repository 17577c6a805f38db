package events_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veilbrowser/veil/internal/bridge"
	"github.com/veilbrowser/veil/internal/bridge/bridgetest"
	"github.com/veilbrowser/veil/internal/domain/entity"
	"github.com/veilbrowser/veil/internal/events"
	"github.com/veilbrowser/veil/internal/store"
)

type fixture struct {
	transport  *bridgetest.FakeTransport
	tabs       *store.TabsStore
	history    *store.HistoryStore
	downloads  *store.DownloadsStore
	dispatcher *events.Dispatcher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	transport := bridgetest.NewFakeTransport()
	client := bridge.New(transport, zerolog.Nop())

	tabs := store.NewTabsStore(client, "about:blank", zerolog.Nop())
	history := store.NewHistoryStore(client, nil, zerolog.Nop())
	downloads := store.NewDownloadsStore()

	d := events.New(client, tabs, history, downloads, zerolog.Nop())
	return &fixture{transport: transport, tabs: tabs, history: history, downloads: downloads, dispatcher: d}
}

func TestDispatcher_BindInstallsSingleHandler(t *testing.T) {
	f := newFixture(t)

	assert.False(t, f.transport.HasHandler())
	f.dispatcher.Bind()
	assert.True(t, f.transport.HasHandler())

	// Binding twice is a no-op, not a second subscription.
	f.dispatcher.Bind()
	assert.True(t, f.transport.HasHandler())
}

func TestDispatcher_TeardownRemovesWholeLayer(t *testing.T) {
	f := newFixture(t)
	f.dispatcher.Bind()
	f.dispatcher.Teardown()

	assert.False(t, f.transport.HasHandler())
}

func TestDispatcher_TabNavigatedUpdatesTabAndHistory(t *testing.T) {
	f := newFixture(t)
	tab := f.tabs.Init(context.Background())
	f.dispatcher.Bind()

	f.transport.Push("tab.navigated", map[string]any{
		"tab_id":      string(tab.ID),
		"url":         "https://aleo.org",
		"can_go_back": true,
	})

	active, _ := f.tabs.ActiveTab()
	assert.Equal(t, "https://aleo.org", active.URL)
	assert.True(t, active.CanGoBack)

	entries := f.history.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "https://aleo.org", entries[0].URL)
}

func TestDispatcher_NavigationToInternalPageSkipsHistory(t *testing.T) {
	f := newFixture(t)
	tab := f.tabs.Init(context.Background())
	f.dispatcher.Bind()

	f.transport.Push("tab.navigated", map[string]any{
		"tab_id": string(tab.ID),
		"url":    "veil://settings",
	})

	assert.Empty(t, f.history.Entries())
}

func TestDispatcher_TitleAndFaviconEvents(t *testing.T) {
	f := newFixture(t)
	tab := f.tabs.Init(context.Background())
	f.dispatcher.Bind()

	f.transport.Push("tab.titleUpdated", map[string]any{
		"tab_id": string(tab.ID),
		"title":  "Aleo",
	})
	f.transport.Push("tab.faviconUpdated", map[string]any{
		"tab_id":      string(tab.ID),
		"favicon_url": "https://aleo.org/icon.png",
	})

	active, _ := f.tabs.ActiveTab()
	assert.Equal(t, "Aleo", active.Title)
	assert.Equal(t, "https://aleo.org/icon.png", active.FaviconURL)
}

func TestDispatcher_DownloadLifecycle(t *testing.T) {
	f := newFixture(t)
	f.dispatcher.Bind()

	f.transport.Push("download.started", map[string]any{
		"id":       "dl-1",
		"url":      "https://example.com/big.iso",
		"filename": "big.iso",
		"total":    100,
	})
	f.transport.Push("download.progress", map[string]any{
		"id":       "dl-1",
		"received": 40,
		"total":    100,
	})

	downloads := f.downloads.Downloads()
	require.Len(t, downloads, 1)
	assert.Equal(t, entity.DownloadActive, downloads[0].State)
	assert.InDelta(t, 0.4, downloads[0].Progress(), 0.001)

	f.transport.Push("download.done", map[string]any{
		"id":    "dl-1",
		"state": "completed",
	})
	downloads = f.downloads.Downloads()
	assert.Equal(t, entity.DownloadCompleted, downloads[0].State)
	assert.Equal(t, int64(100), downloads[0].Received)
}

func TestDispatcher_PermissionRequestReachesCallback(t *testing.T) {
	f := newFixture(t)
	var got entity.PermissionRequest
	f.dispatcher.OnPermission(func(req entity.PermissionRequest) { got = req })
	f.dispatcher.Bind()

	f.transport.Push("permission.request", map[string]any{
		"id":         "perm-1",
		"origin":     "https://dapp.example",
		"capability": "transact",
	})

	assert.Equal(t, "perm-1", got.ID)
	assert.Equal(t, entity.CapabilityTransact, got.Capability)
}

func TestDispatcher_ShortcutAndTransactionCallbacks(t *testing.T) {
	f := newFixture(t)
	var shortcut string
	var txID, txStatus string
	f.dispatcher.OnShortcut(func(name string) { shortcut = name })
	f.dispatcher.OnTransactionUpdate(func(id, status string) { txID, txStatus = id, status })
	f.dispatcher.Bind()

	f.transport.Push("shortcut.triggered", map[string]any{"name": "new-tab"})
	f.transport.Push("transaction.updated", map[string]any{
		"transaction_id": "at1tx",
		"status":         "finalized",
	})

	assert.Equal(t, "new-tab", shortcut)
	assert.Equal(t, "at1tx", txID)
	assert.Equal(t, "finalized", txStatus)
}

func TestDispatcher_UnknownEventIsIgnored(t *testing.T) {
	f := newFixture(t)
	refreshed := false
	f.dispatcher.OnRefresh(func() { refreshed = true })
	f.dispatcher.Bind()

	f.transport.Push("future.event", map[string]any{"x": 1})
	assert.False(t, refreshed)
}

func TestDispatcher_EventsForClosedTabIgnored(t *testing.T) {
	f := newFixture(t)
	f.tabs.Init(context.Background())
	f.dispatcher.Bind()

	f.transport.Push("tab.titleUpdated", map[string]any{
		"tab_id": "tab-closed-long-ago",
		"title":  "Ghost",
	})

	active, _ := f.tabs.ActiveTab()
	assert.Empty(t, active.Title)
}
