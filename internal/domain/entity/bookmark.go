package entity

import (
	"strings"
	"time"
)

// BookmarkID uniquely identifies a bookmark. IDs are assigned by the host
// process when a bookmark is created.
type BookmarkID string

// FolderID uniquely identifies a bookmark folder.
type FolderID string

// Default folders present in every profile. They cannot be renamed or
// deleted; deleting another folder re-homes its bookmarks into
// FolderOtherBookmarks.
const (
	FolderBookmarksBar   FolderID = "bookmarks-bar"
	FolderOtherBookmarks FolderID = "other-bookmarks"
)

// IsDefaultFolder reports whether id names one of the protected folders.
func IsDefaultFolder(id FolderID) bool {
	return id == FolderBookmarksBar || id == FolderOtherBookmarks
}

// Bookmark represents a bookmarked URL.
type Bookmark struct {
	ID           BookmarkID `json:"id"`
	URL          string     `json:"url"`
	Title        string     `json:"title"`
	FaviconURL   string     `json:"favicon_url,omitempty"`
	Tags         []string   `json:"tags,omitempty"`
	FolderID     FolderID   `json:"folder_id,omitempty"`
	IsFavorite   bool       `json:"is_favorite,omitempty"`
	LedgerPinned bool       `json:"ledger_pinned,omitempty"` // marked for mirroring to the ledger
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// NewBookmark creates a new bookmark for a URL.
func NewBookmark(url, title string) *Bookmark {
	now := time.Now()
	return &Bookmark{
		URL:       url,
		Title:     title,
		FolderID:  FolderOtherBookmarks,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Matches reports whether the bookmark matches a case-insensitive substring
// query over title, URL, and tags.
func (b *Bookmark) Matches(query string) bool {
	q := strings.ToLower(query)
	if q == "" {
		return true
	}
	if strings.Contains(strings.ToLower(b.Title), q) {
		return true
	}
	if strings.Contains(strings.ToLower(b.URL), q) {
		return true
	}
	for _, tag := range b.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

// HasTag reports whether the bookmark carries the given tag.
func (b *Bookmark) HasTag(tag string) bool {
	for _, t := range b.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// Folder represents a container for organizing bookmarks. Folders form a
// tree via ParentID.
type Folder struct {
	ID         FolderID  `json:"id"`
	Name       string    `json:"name"`
	ParentID   FolderID  `json:"parent_id,omitempty"` // empty = root level
	IsExpanded bool      `json:"is_expanded,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewFolder creates a new folder.
func NewFolder(id FolderID, name string) *Folder {
	return &Folder{
		ID:        id,
		Name:      name,
		CreatedAt: time.Now(),
	}
}

// IsRoot reports whether this folder is at root level.
func (f *Folder) IsRoot() bool {
	return f.ParentID == ""
}
