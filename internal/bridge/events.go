package bridge

// Host-pushed event names. Payload shapes are documented on the
// corresponding Event* types.
const (
	EventTabNavigated       = "tab.navigated"
	EventTabTitleUpdated    = "tab.titleUpdated"
	EventTabFaviconUpdated  = "tab.faviconUpdated"
	EventTabLoadingChanged  = "tab.loadingChanged"
	EventDownloadStarted    = "download.started"
	EventDownloadProgress   = "download.progress"
	EventDownloadDone       = "download.done"
	EventPermissionRequest  = "permission.request"
	EventShortcutTriggered  = "shortcut.triggered"
	EventTransactionUpdated = "transaction.updated"
)

// EventsAPI wraps the events.* host namespace: one handler for the whole
// layer, whole-layer teardown only.
type EventsAPI struct {
	c *Client
}

// Subscribe installs the event handler. Calling it again replaces the
// previous handler; there is no per-event registration.
func (e *EventsAPI) Subscribe(handler EventHandler) {
	e.c.transport.Subscribe(handler)
}

// RemoveAllListeners tears the whole subscription layer down.
func (e *EventsAPI) RemoveAllListeners() {
	e.c.transport.RemoveAllListeners()
}

// EventTabNavigatedPayload accompanies tab.navigated.
type EventTabNavigatedPayload struct {
	TabID        string `json:"tab_id"`
	URL          string `json:"url"`
	CanGoBack    bool   `json:"can_go_back"`
	CanGoForward bool   `json:"can_go_forward"`
}

// EventTabTitlePayload accompanies tab.titleUpdated.
type EventTabTitlePayload struct {
	TabID string `json:"tab_id"`
	Title string `json:"title"`
}

// EventTabFaviconPayload accompanies tab.faviconUpdated.
type EventTabFaviconPayload struct {
	TabID      string `json:"tab_id"`
	FaviconURL string `json:"favicon_url"`
}

// EventTabLoadingPayload accompanies tab.loadingChanged.
type EventTabLoadingPayload struct {
	TabID     string `json:"tab_id"`
	IsLoading bool   `json:"is_loading"`
}

// EventShortcutPayload accompanies shortcut.triggered.
type EventShortcutPayload struct {
	Name string `json:"name"`
}

// EventTransactionPayload accompanies transaction.updated.
type EventTransactionPayload struct {
	TransactionID string `json:"transaction_id"`
	Status        string `json:"status"`
}
