package entity

import (
	"fmt"
	"time"
)

// TabID uniquely identifies a tab.
// Tab identity is generated locally (time-based); the host process is only
// informed of creation, switching, and closing.
type TabID string

// NewTabID generates a local time-based tab identifier.
func NewTabID() TabID {
	return TabID(fmt.Sprintf("tab-%d", time.Now().UnixNano()))
}

// Tab represents a browser tab mirrored in the client.
type Tab struct {
	ID           TabID
	URL          string
	Title        string
	FaviconURL   string
	IsLoading    bool
	CanGoBack    bool
	CanGoForward bool
	Pinned       bool
	Suspended    bool
	CreatedAt    time.Time
}

// NewTab creates a new tab pointing at the given URL.
func NewTab(id TabID, url string) *Tab {
	return &Tab{
		ID:        id,
		URL:       url,
		CreatedAt: time.Now(),
	}
}

// DisplayTitle returns the display title for the tab, falling back to the
// URL and then to "New Tab".
func (t *Tab) DisplayTitle() string {
	if t.Title != "" {
		return t.Title
	}
	if t.URL != "" && t.URL != BlankTabURL {
		return t.URL
	}
	return "New Tab"
}

// BlankTabURL is the URL loaded into freshly created tabs.
const BlankTabURL = "about:blank"

// TabList manages an ordered collection of tabs.
// Invariants: once initialized the list is never empty, and ActiveTabID
// always refers to exactly one existing tab.
type TabList struct {
	Tabs        []*Tab
	ActiveTabID TabID
}

// NewTabList creates an empty tab list.
func NewTabList() *TabList {
	return &TabList{Tabs: make([]*Tab, 0)}
}

// Add appends a tab to the list and activates it if nothing is active.
func (tl *TabList) Add(tab *Tab) {
	tl.Tabs = append(tl.Tabs, tab)
	if tl.ActiveTabID == "" {
		tl.ActiveTabID = tab.ID
	}
}

// Remove removes a tab by ID. When the active tab is removed the nearest
// remaining tab is promoted: the tab now occupying the same index, else the
// previous one.
func (tl *TabList) Remove(id TabID) bool {
	for i, tab := range tl.Tabs {
		if tab.ID == id {
			tl.Tabs = append(tl.Tabs[:i], tl.Tabs[i+1:]...)
			if tl.ActiveTabID == id && len(tl.Tabs) > 0 {
				if i < len(tl.Tabs) {
					tl.ActiveTabID = tl.Tabs[i].ID
				} else {
					tl.ActiveTabID = tl.Tabs[len(tl.Tabs)-1].ID
				}
			}
			return true
		}
	}
	return false
}

// Find returns a tab by ID, or nil.
func (tl *TabList) Find(id TabID) *Tab {
	for _, tab := range tl.Tabs {
		if tab.ID == id {
			return tab
		}
	}
	return nil
}

// ActiveTab returns the currently active tab.
func (tl *TabList) ActiveTab() *Tab {
	return tl.Find(tl.ActiveTabID)
}

// Count returns the number of tabs.
func (tl *TabList) Count() int {
	return len(tl.Tabs)
}

// Index returns the position of a tab, or -1.
func (tl *TabList) Index(id TabID) int {
	for i, tab := range tl.Tabs {
		if tab.ID == id {
			return i
		}
	}
	return -1
}
