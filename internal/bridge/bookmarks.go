package bridge

import (
	"context"

	"github.com/veilbrowser/veil/internal/domain/entity"
)

// BookmarksAPI wraps the bookmarks.* host namespace.
type BookmarksAPI struct {
	c *Client
}

// BookmarkResult carries a single bookmark.
type BookmarkResult struct {
	Result
	Bookmark *entity.Bookmark `json:"bookmark,omitempty"`
}

// BookmarksResult carries the full bookmark and folder collections.
type BookmarksResult struct {
	Result
	Bookmarks []*entity.Bookmark `json:"bookmarks,omitempty"`
	Folders   []*entity.Folder   `json:"folders,omitempty"`
}

// SyncResult carries the ledger transaction id for a bookmark sync.
type SyncResult struct {
	Result
	TransactionID string `json:"transaction_id,omitempty"`
}

// GetAll retrieves every bookmark and folder.
func (b *BookmarksAPI) GetAll(ctx context.Context) BookmarksResult {
	var out BookmarksResult
	if !b.c.call(ctx, "bookmarks.getAll", nil, &out) {
		return BookmarksResult{Result: unavailable("bookmarks")}
	}
	return out
}

// Add creates a bookmark. The host assigns the id.
func (b *BookmarksAPI) Add(ctx context.Context, bm *entity.Bookmark) BookmarkResult {
	var out BookmarkResult
	if !b.c.call(ctx, "bookmarks.add", bm, &out) {
		return BookmarkResult{Result: unavailable("bookmarks")}
	}
	return out
}

// Update replaces a bookmark's stored fields.
func (b *BookmarksAPI) Update(ctx context.Context, bm *entity.Bookmark) BookmarkResult {
	var out BookmarkResult
	if !b.c.call(ctx, "bookmarks.update", bm, &out) {
		return BookmarkResult{Result: unavailable("bookmarks")}
	}
	return out
}

type bookmarkIDParams struct {
	ID entity.BookmarkID `json:"id"`
}

// Delete removes a bookmark.
func (b *BookmarksAPI) Delete(ctx context.Context, id entity.BookmarkID) Result {
	var out Result
	if !b.c.call(ctx, "bookmarks.delete", bookmarkIDParams{ID: id}, &out) {
		return unavailable("bookmarks")
	}
	return out
}

// SyncToLedger asks the host to mirror a bookmark to the ledger. The host
// generates the proof and submits the transaction.
func (b *BookmarksAPI) SyncToLedger(ctx context.Context, id entity.BookmarkID, fields []entity.Literal) SyncResult {
	var out SyncResult
	params := struct {
		ID     entity.BookmarkID `json:"id"`
		Fields []entity.Literal  `json:"fields"`
	}{ID: id, Fields: fields}
	if !b.c.call(ctx, "bookmarks.syncToLedger", params, &out) {
		return SyncResult{Result: unavailable("bookmarks")}
	}
	return out
}

// AddFolder creates a folder. The host assigns the id.
func (b *BookmarksAPI) AddFolder(ctx context.Context, folder *entity.Folder) Result {
	var out Result
	if !b.c.call(ctx, "bookmarks.addFolder", folder, &out) {
		return unavailable("bookmarks")
	}
	return out
}

// UpdateFolder renames or moves a folder.
func (b *BookmarksAPI) UpdateFolder(ctx context.Context, folder *entity.Folder) Result {
	var out Result
	if !b.c.call(ctx, "bookmarks.updateFolder", folder, &out) {
		return unavailable("bookmarks")
	}
	return out
}

type folderIDParams struct {
	ID entity.FolderID `json:"id"`
}

// DeleteFolder removes a folder record. Re-homing the folder's bookmarks is
// the caller's job and must happen first.
func (b *BookmarksAPI) DeleteFolder(ctx context.Context, id entity.FolderID) Result {
	var out Result
	if !b.c.call(ctx, "bookmarks.deleteFolder", folderIDParams{ID: id}, &out) {
		return unavailable("bookmarks")
	}
	return out
}
