// Package events routes host-pushed events into the domain stores. One
// dispatcher owns the whole subscription layer; handlers read current state
// through the injected stores at dispatch time.
package events

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"

	"github.com/veilbrowser/veil/internal/bridge"
	"github.com/veilbrowser/veil/internal/domain/entity"
	"github.com/veilbrowser/veil/internal/store"
)

// Dispatcher fans host events out to stores and UI callbacks. Bind installs
// the single transport handler; Teardown removes the whole layer at once,
// matching the bridge contract of no per-event unsubscription.
type Dispatcher struct {
	client    *bridge.Client
	tabs      *store.TabsStore
	history   *store.HistoryStore
	downloads *store.DownloadsStore
	log       zerolog.Logger

	mu           sync.Mutex
	bound        bool
	onPermission func(entity.PermissionRequest)
	onShortcut   func(name string)
	onTxUpdate   func(txID, status string)
	onRefresh    func()
}

// New creates a dispatcher over the given stores. downloads may be nil.
func New(client *bridge.Client, tabs *store.TabsStore, history *store.HistoryStore, downloads *store.DownloadsStore, log zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		client:    client,
		tabs:      tabs,
		history:   history,
		downloads: downloads,
		log:       log.With().Str("component", "events").Logger(),
	}
}

// OnPermission registers the callback for pushed permission requests.
func (d *Dispatcher) OnPermission(f func(entity.PermissionRequest)) {
	d.mu.Lock()
	d.onPermission = f
	d.mu.Unlock()
}

// OnShortcut registers the callback for host-forwarded shortcuts.
func (d *Dispatcher) OnShortcut(f func(name string)) {
	d.mu.Lock()
	d.onShortcut = f
	d.mu.Unlock()
}

// OnTransactionUpdate registers the callback for transaction status pushes.
func (d *Dispatcher) OnTransactionUpdate(f func(txID, status string)) {
	d.mu.Lock()
	d.onTxUpdate = f
	d.mu.Unlock()
}

// OnRefresh registers a callback invoked after any store-mutating event,
// letting the UI re-render from fresh snapshots.
func (d *Dispatcher) OnRefresh(f func()) {
	d.mu.Lock()
	d.onRefresh = f
	d.mu.Unlock()
}

// Bind subscribes to the host event stream. Binding twice is a no-op.
func (d *Dispatcher) Bind() {
	d.mu.Lock()
	if d.bound {
		d.mu.Unlock()
		return
	}
	d.bound = true
	d.mu.Unlock()

	d.client.Events.Subscribe(d.dispatch)
	d.log.Debug().Msg("event layer bound")
}

// Teardown removes every listener. There is no partial teardown.
func (d *Dispatcher) Teardown() {
	d.mu.Lock()
	bound := d.bound
	d.bound = false
	d.mu.Unlock()
	if !bound {
		return
	}

	d.client.Events.RemoveAllListeners()
	d.log.Debug().Msg("event layer torn down")
}

func (d *Dispatcher) dispatch(event string, payload json.RawMessage) {
	switch event {
	case bridge.EventTabNavigated:
		var p bridge.EventTabNavigatedPayload
		if !d.decode(event, payload, &p) {
			return
		}
		d.tabs.ApplyNavigated(entity.TabID(p.TabID), p.URL, p.CanGoBack, p.CanGoForward)
		// Navigations are the history feed: record the visit once the tab
		// actually lands somewhere.
		if d.history != nil {
			if tab, ok := d.tabs.ActiveTab(); ok && tab.ID == entity.TabID(p.TabID) {
				d.history.AddVisit(context.Background(), p.URL, tab.Title, tab.FaviconURL)
			}
		}

	case bridge.EventTabTitleUpdated:
		var p bridge.EventTabTitlePayload
		if !d.decode(event, payload, &p) {
			return
		}
		d.tabs.ApplyTitle(entity.TabID(p.TabID), p.Title)

	case bridge.EventTabFaviconUpdated:
		var p bridge.EventTabFaviconPayload
		if !d.decode(event, payload, &p) {
			return
		}
		d.tabs.ApplyFavicon(entity.TabID(p.TabID), p.FaviconURL)

	case bridge.EventTabLoadingChanged:
		var p bridge.EventTabLoadingPayload
		if !d.decode(event, payload, &p) {
			return
		}
		d.tabs.ApplyLoading(entity.TabID(p.TabID), p.IsLoading)

	case bridge.EventDownloadStarted:
		var dl entity.Download
		if !d.decode(event, payload, &dl) {
			return
		}
		if d.downloads != nil {
			d.downloads.ApplyStarted(dl)
		}

	case bridge.EventDownloadProgress:
		var dl entity.Download
		if !d.decode(event, payload, &dl) {
			return
		}
		if d.downloads != nil {
			d.downloads.ApplyProgress(dl.ID, dl.Received, dl.Total)
		}

	case bridge.EventDownloadDone:
		var dl entity.Download
		if !d.decode(event, payload, &dl) {
			return
		}
		if d.downloads != nil {
			state := dl.State
			if state == "" {
				state = entity.DownloadCompleted
			}
			d.downloads.ApplyDone(dl.ID, state)
		}

	case bridge.EventPermissionRequest:
		var req entity.PermissionRequest
		if !d.decode(event, payload, &req) {
			return
		}
		d.mu.Lock()
		f := d.onPermission
		d.mu.Unlock()
		if f != nil {
			f(req)
		}

	case bridge.EventShortcutTriggered:
		var p bridge.EventShortcutPayload
		if !d.decode(event, payload, &p) {
			return
		}
		d.mu.Lock()
		f := d.onShortcut
		d.mu.Unlock()
		if f != nil {
			f(p.Name)
		}

	case bridge.EventTransactionUpdated:
		var p bridge.EventTransactionPayload
		if !d.decode(event, payload, &p) {
			return
		}
		d.mu.Lock()
		f := d.onTxUpdate
		d.mu.Unlock()
		if f != nil {
			f(p.TransactionID, p.Status)
		}

	default:
		d.log.Debug().Str("event", event).Msg("unhandled host event")
		return
	}

	d.mu.Lock()
	refresh := d.onRefresh
	d.mu.Unlock()
	if refresh != nil {
		refresh()
	}
}

func (d *Dispatcher) decode(event string, payload json.RawMessage, out any) bool {
	if err := json.Unmarshal(payload, out); err != nil {
		d.log.Warn().Err(err).Str("event", event).Msg("malformed event payload")
		return false
	}
	return true
}
