package store

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/veilbrowser/veil/internal/bridge"
	"github.com/veilbrowser/veil/internal/domain/entity"
	"github.com/veilbrowser/veil/internal/ledger"
)

// BookmarksStore owns the bookmark and folder collections. Bookmark ids are
// assigned by the host; folder structure is mirrored locally and every
// mutation is pushed through the bridge before local state changes.
type BookmarksStore struct {
	client *bridge.Client
	queue  *ledger.Queue
	log    zerolog.Logger

	mu        sync.RWMutex
	bookmarks []*entity.Bookmark
	folders   []*entity.Folder
	err       string
}

// NewBookmarksStore creates a bookmarks store. queue may be nil to disable
// ledger mirroring.
func NewBookmarksStore(client *bridge.Client, queue *ledger.Queue, log zerolog.Logger) *BookmarksStore {
	return &BookmarksStore{
		client: client,
		queue:  queue,
		log:    log.With().Str("component", "bookmarks-store").Logger(),
	}
}

// Err returns the last store-level error string.
func (s *BookmarksStore) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

func (s *BookmarksStore) setErr(msg string) {
	s.mu.Lock()
	s.err = msg
	s.mu.Unlock()
}

// Load fetches both collections from the host. The protected default
// folders always exist locally even when the host returns none.
func (s *BookmarksStore) Load(ctx context.Context) bool {
	res := s.client.Bookmarks.GetAll(ctx)
	if res.Failed() {
		s.setErr(res.Error)
		return false
	}

	folders := res.Folders
	for _, def := range []struct {
		id   entity.FolderID
		name string
	}{
		{entity.FolderBookmarksBar, "Bookmarks Bar"},
		{entity.FolderOtherBookmarks, "Other Bookmarks"},
	} {
		found := false
		for _, f := range folders {
			if f.ID == def.id {
				found = true
				break
			}
		}
		if !found {
			folders = append(folders, entity.NewFolder(def.id, def.name))
		}
	}

	s.mu.Lock()
	s.bookmarks = res.Bookmarks
	s.folders = folders
	s.err = ""
	s.mu.Unlock()
	return true
}

// Bookmarks returns a copy of the bookmark collection.
func (s *BookmarksStore) Bookmarks() []*entity.Bookmark {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*entity.Bookmark, len(s.bookmarks))
	copy(out, s.bookmarks)
	return out
}

// Folders returns a copy of the folder collection.
func (s *BookmarksStore) Folders() []*entity.Folder {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*entity.Folder, len(s.folders))
	copy(out, s.folders)
	return out
}

// Find returns the bookmark with the given id, or nil.
func (s *BookmarksStore) Find(id entity.BookmarkID) *entity.Bookmark {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, b := range s.bookmarks {
		if b.ID == id {
			return b
		}
	}
	return nil
}

// Add creates a bookmark. The new bookmark is marked for ledger mirroring,
// inserted locally once the host confirms, and then queued for background
// sync. Sync failures are observable on the queue but never roll back the
// local insert.
func (s *BookmarksStore) Add(ctx context.Context, url, title string, tags []string, folderID entity.FolderID) (*entity.Bookmark, bool) {
	if url == "" {
		s.setErr("URL is required")
		return nil, false
	}

	bm := entity.NewBookmark(url, title)
	bm.Tags = tags
	if folderID != "" {
		bm.FolderID = folderID
	}
	bm.LedgerPinned = true

	res := s.client.Bookmarks.Add(ctx, bm)
	if res.Failed() {
		s.setErr(res.Error)
		return nil, false
	}
	if res.Bookmark != nil {
		bm = res.Bookmark
	}

	s.mu.Lock()
	s.bookmarks = append(s.bookmarks, bm)
	s.err = ""
	s.mu.Unlock()

	if s.queue != nil && bm.LedgerPinned {
		s.queue.Enqueue(bm)
	}

	return bm, true
}

// Update replaces a bookmark's fields host-side, then reconciles locally.
// Two rapid updates for the same id may interleave; the later host response
// wins, which is acceptable for a single-user UI.
func (s *BookmarksStore) Update(ctx context.Context, bm *entity.Bookmark) bool {
	bm.UpdatedAt = time.Now()

	res := s.client.Bookmarks.Update(ctx, bm)
	if res.Failed() {
		s.setErr(res.Error)
		return false
	}
	updated := bm
	if res.Bookmark != nil {
		updated = res.Bookmark
	}

	s.mu.Lock()
	for i, existing := range s.bookmarks {
		if existing.ID == updated.ID {
			s.bookmarks[i] = updated
			break
		}
	}
	s.err = ""
	s.mu.Unlock()
	return true
}

// Delete removes a bookmark.
func (s *BookmarksStore) Delete(ctx context.Context, id entity.BookmarkID) bool {
	res := s.client.Bookmarks.Delete(ctx, id)
	if res.Failed() {
		s.setErr(res.Error)
		return false
	}

	s.mu.Lock()
	for i, b := range s.bookmarks {
		if b.ID == id {
			s.bookmarks = append(s.bookmarks[:i], s.bookmarks[i+1:]...)
			break
		}
	}
	s.err = ""
	s.mu.Unlock()
	return true
}

// ToggleFavorite flips a bookmark's favorite flag.
func (s *BookmarksStore) ToggleFavorite(ctx context.Context, id entity.BookmarkID) bool {
	bm := s.Find(id)
	if bm == nil {
		s.setErr("Bookmark not found")
		return false
	}
	copied := *bm
	copied.IsFavorite = !copied.IsFavorite
	return s.Update(ctx, &copied)
}

// Search returns bookmarks matching a case-insensitive substring query over
// title, URL, and tags. Results keep collection order; there is no ranking.
func (s *BookmarksStore) Search(query string) []*entity.Bookmark {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*entity.Bookmark
	for _, b := range s.bookmarks {
		if b.Matches(query) {
			out = append(out, b)
		}
	}
	return out
}

// SyncStatus exposes the ledger queue state for a bookmark.
func (s *BookmarksStore) SyncStatus(id entity.BookmarkID) *ledger.Task {
	if s.queue == nil {
		return nil
	}
	return s.queue.Status(id)
}

// CreateFolder creates a folder under parent ("" for root).
func (s *BookmarksStore) CreateFolder(ctx context.Context, id entity.FolderID, name string, parent entity.FolderID) bool {
	if name == "" {
		s.setErr("Folder name is required")
		return false
	}

	folder := entity.NewFolder(id, name)
	folder.ParentID = parent

	res := s.client.Bookmarks.AddFolder(ctx, folder)
	if res.Failed() {
		s.setErr(res.Error)
		return false
	}

	s.mu.Lock()
	s.folders = append(s.folders, folder)
	s.err = ""
	s.mu.Unlock()
	return true
}

// RenameFolder renames a folder. Default folders are protected.
func (s *BookmarksStore) RenameFolder(ctx context.Context, id entity.FolderID, name string) bool {
	if entity.IsDefaultFolder(id) {
		s.setErr("Default folders cannot be renamed")
		return false
	}
	if name == "" {
		s.setErr("Folder name is required")
		return false
	}

	s.mu.RLock()
	var folder *entity.Folder
	for _, f := range s.folders {
		if f.ID == id {
			folder = f
			break
		}
	}
	s.mu.RUnlock()
	if folder == nil {
		s.setErr("Folder not found")
		return false
	}

	renamed := *folder
	renamed.Name = name
	res := s.client.Bookmarks.UpdateFolder(ctx, &renamed)
	if res.Failed() {
		s.setErr(res.Error)
		return false
	}

	s.mu.Lock()
	for i, f := range s.folders {
		if f.ID == id {
			s.folders[i] = &renamed
			break
		}
	}
	s.err = ""
	s.mu.Unlock()
	return true
}

// DeleteFolder removes a folder. Default folders are protected. Every
// bookmark in the folder is first re-homed to Other Bookmarks with
// sequential awaited updates; only then is the folder itself removed. A
// failed re-home aborts the whole operation with the folder intact.
func (s *BookmarksStore) DeleteFolder(ctx context.Context, id entity.FolderID) bool {
	if entity.IsDefaultFolder(id) {
		s.setErr("Default folders cannot be deleted")
		return false
	}

	s.mu.RLock()
	var orphans []*entity.Bookmark
	for _, b := range s.bookmarks {
		if b.FolderID == id {
			orphans = append(orphans, b)
		}
	}
	s.mu.RUnlock()

	for _, b := range orphans {
		rehomed := *b
		rehomed.FolderID = entity.FolderOtherBookmarks
		if !s.Update(ctx, &rehomed) {
			return false
		}
	}

	res := s.client.Bookmarks.DeleteFolder(ctx, id)
	if res.Failed() {
		s.setErr(res.Error)
		return false
	}

	s.mu.Lock()
	for i, f := range s.folders {
		if f.ID == id {
			s.folders = append(s.folders[:i], s.folders[i+1:]...)
			break
		}
	}
	s.err = ""
	s.mu.Unlock()
	return true
}
