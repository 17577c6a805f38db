package store

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veilbrowser/veil/internal/bridge"
	"github.com/veilbrowser/veil/internal/bridge/bridgetest"
	"github.com/veilbrowser/veil/internal/domain/entity"
)

func newBookmarksStore(transport *bridgetest.FakeTransport) *BookmarksStore {
	client := bridge.New(transport, zerolog.Nop())
	return NewBookmarksStore(client, nil, zerolog.Nop())
}

func TestBookmarksStore_LoadEnsuresDefaultFolders(t *testing.T) {
	transport := bridgetest.NewFakeTransport()
	transport.Respond("bookmarks.getAll", map[string]any{
		"success":   true,
		"bookmarks": []any{},
		"folders":   []any{},
	})

	s := newBookmarksStore(transport)
	require.True(t, s.Load(context.Background()))

	folders := s.Folders()
	require.Len(t, folders, 2)
	ids := []entity.FolderID{folders[0].ID, folders[1].ID}
	assert.Contains(t, ids, entity.FolderBookmarksBar)
	assert.Contains(t, ids, entity.FolderOtherBookmarks)
}

func TestBookmarksStore_AddThenDeleteRoundTrip(t *testing.T) {
	transport := bridgetest.NewFakeTransport()
	transport.Respond("bookmarks.add", map[string]any{
		"success": true,
		"bookmark": map[string]any{
			"id":    "bm-1",
			"url":   "https://aleo.org",
			"title": "Aleo",
		},
	})

	s := newBookmarksStore(transport)

	bm, ok := s.Add(context.Background(), "https://aleo.org", "Aleo", nil, "")
	require.True(t, ok)
	assert.Equal(t, entity.BookmarkID("bm-1"), bm.ID)
	assert.Len(t, s.Bookmarks(), 1)

	require.True(t, s.Delete(context.Background(), "bm-1"))
	assert.Empty(t, s.Bookmarks())
	assert.Empty(t, s.Err())
}

func TestBookmarksStore_AddRequiresURL(t *testing.T) {
	transport := bridgetest.NewFakeTransport()
	s := newBookmarksStore(transport)

	_, ok := s.Add(context.Background(), "", "No URL", nil, "")
	assert.False(t, ok)
	assert.Equal(t, "URL is required", s.Err())
	assert.Equal(t, 0, transport.CallCount("bookmarks.add"))
}

func TestBookmarksStore_HostFailureSurfacedVerbatim(t *testing.T) {
	transport := bridgetest.NewFakeTransport()
	transport.Respond("bookmarks.add", map[string]any{
		"success": false,
		"error":   "duplicate bookmark",
	})

	s := newBookmarksStore(transport)
	_, ok := s.Add(context.Background(), "https://example.com", "Example", nil, "")

	assert.False(t, ok)
	assert.Equal(t, "duplicate bookmark", s.Err())
	assert.Empty(t, s.Bookmarks())
}

func TestBookmarksStore_DefaultFolderProtection(t *testing.T) {
	transport := bridgetest.NewFakeTransport()
	s := newBookmarksStore(transport)
	require.True(t, s.Load(context.Background()))

	assert.False(t, s.DeleteFolder(context.Background(), entity.FolderBookmarksBar))
	assert.Equal(t, "Default folders cannot be deleted", s.Err())

	assert.False(t, s.RenameFolder(context.Background(), entity.FolderOtherBookmarks, "Renamed"))
	assert.Equal(t, "Default folders cannot be renamed", s.Err())

	// No host call, no mutation.
	assert.Equal(t, 0, transport.CallCount("bookmarks.deleteFolder"))
	assert.Equal(t, 0, transport.CallCount("bookmarks.updateFolder"))
	assert.Len(t, s.Folders(), 2)
}

func TestBookmarksStore_DeleteFolderRehomesBookmarks(t *testing.T) {
	transport := bridgetest.NewFakeTransport()
	transport.Respond("bookmarks.getAll", map[string]any{
		"success": true,
		"bookmarks": []map[string]any{
			{"id": "bm-1", "url": "https://a.example", "title": "A", "folder_id": "work"},
			{"id": "bm-2", "url": "https://b.example", "title": "B", "folder_id": "work"},
			{"id": "bm-3", "url": "https://c.example", "title": "C", "folder_id": "other-bookmarks"},
		},
		"folders": []map[string]any{
			{"id": "work", "name": "Work"},
		},
	})

	s := newBookmarksStore(transport)
	require.True(t, s.Load(context.Background()))

	require.True(t, s.DeleteFolder(context.Background(), "work"))

	// Both folder members were re-homed with awaited updates before the
	// folder itself was removed.
	assert.Equal(t, 2, transport.CallCount("bookmarks.update"))
	assert.Equal(t, 1, transport.CallCount("bookmarks.deleteFolder"))

	for _, bm := range s.Bookmarks() {
		assert.Equal(t, entity.FolderOtherBookmarks, bm.FolderID)
	}
	for _, f := range s.Folders() {
		assert.NotEqual(t, entity.FolderID("work"), f.ID)
	}
}

func TestBookmarksStore_DeleteFolderAbortsOnRehomeFailure(t *testing.T) {
	transport := bridgetest.NewFakeTransport()
	transport.Respond("bookmarks.getAll", map[string]any{
		"success": true,
		"bookmarks": []map[string]any{
			{"id": "bm-1", "url": "https://a.example", "title": "A", "folder_id": "work"},
		},
		"folders": []map[string]any{
			{"id": "work", "name": "Work"},
		},
	})
	transport.Respond("bookmarks.update", map[string]any{
		"success": false,
		"error":   "storage unavailable",
	})

	s := newBookmarksStore(transport)
	require.True(t, s.Load(context.Background()))

	assert.False(t, s.DeleteFolder(context.Background(), "work"))
	assert.Equal(t, "storage unavailable", s.Err())

	// Folder intact, no delete attempted.
	assert.Equal(t, 0, transport.CallCount("bookmarks.deleteFolder"))
	var found bool
	for _, f := range s.Folders() {
		if f.ID == "work" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestBookmarksStore_SearchMatchesTitleURLAndTags(t *testing.T) {
	transport := bridgetest.NewFakeTransport()
	transport.Respond("bookmarks.getAll", map[string]any{
		"success": true,
		"bookmarks": []map[string]any{
			{"id": "bm-1", "url": "https://aleo.org", "title": "Aleo Developer Docs"},
			{"id": "bm-2", "url": "https://example.com", "title": "Example", "tags": []string{"aleo", "misc"}},
			{"id": "bm-3", "url": "https://unrelated.dev", "title": "Unrelated"},
		},
	})

	s := newBookmarksStore(transport)
	require.True(t, s.Load(context.Background()))

	results := s.Search("aleo")
	require.Len(t, results, 2)
	assert.Equal(t, entity.BookmarkID("bm-1"), results[0].ID)
	assert.Equal(t, entity.BookmarkID("bm-2"), results[1].ID)
}

func TestBookmarksStore_AddMarksLedgerPinned(t *testing.T) {
	transport := bridgetest.NewFakeTransport()
	transport.Respond("bookmarks.add", map[string]any{
		"success": true,
	})

	s := newBookmarksStore(transport)
	bm, ok := s.Add(context.Background(), "https://aleo.org", "Aleo", nil, "")
	require.True(t, ok)
	assert.True(t, bm.LedgerPinned)

	// The pinned flag went over the wire too.
	calls := transport.Calls()
	require.Len(t, calls, 1)
	var sent entity.Bookmark
	require.NoError(t, json.Unmarshal(calls[0].Params, &sent))
	assert.True(t, sent.LedgerPinned)
}
