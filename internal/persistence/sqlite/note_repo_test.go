package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veilbrowser/veil/internal/domain/entity"
	"github.com/veilbrowser/veil/internal/domain/repository"
	"github.com/veilbrowser/veil/internal/logging"
	"github.com/veilbrowser/veil/internal/persistence/sqlite"
)

func testCtx() context.Context {
	logger := logging.NewFromConfigValues("debug", "console")
	return logging.WithContext(context.Background(), logger)
}

func openTestDB(t *testing.T) *testDB {
	t.Helper()
	ctx := testCtx()
	dbPath := filepath.Join(t.TempDir(), "veil.db")

	db, err := sqlite.NewConnection(ctx, dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return &testDB{
		ctx:     ctx,
		notes:   sqlite.NewNoteRepository(db),
		history: sqlite.NewHistoryCacheRepository(db),
	}
}

type testDB struct {
	ctx     context.Context
	notes   repository.NoteRepository
	history repository.HistoryCacheRepository
}

func TestNoteRepository_RoundTrip(t *testing.T) {
	db := openTestDB(t)

	note := entity.NewNote("n-1", "Shopping", "milk, eggs")
	note.Tags = []string{"home", "todo"}
	require.NoError(t, db.notes.Save(db.ctx, note))

	got, err := db.notes.FindByID(db.ctx, "n-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Shopping", got.Title)
	assert.Equal(t, []string{"home", "todo"}, got.Tags)
	assert.Equal(t, entity.NoteLocal, got.SyncStatus)
}

func TestNoteRepository_FindMissingReturnsNil(t *testing.T) {
	db := openTestDB(t)

	got, err := db.notes.FindByID(db.ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestNoteRepository_SetSyncStatus(t *testing.T) {
	db := openTestDB(t)

	note := entity.NewNote("n-1", "T", "c")
	require.NoError(t, db.notes.Save(db.ctx, note))

	require.NoError(t, db.notes.SetSyncStatus(db.ctx, "n-1", entity.NoteOnChain, "at1hash"))

	got, err := db.notes.FindByID(db.ctx, "n-1")
	require.NoError(t, err)
	assert.Equal(t, entity.NoteOnChain, got.SyncStatus)
	assert.Equal(t, "at1hash", got.TxHash)
}

func TestNoteRepository_GetAllOrdersByUpdatedDesc(t *testing.T) {
	db := openTestDB(t)

	older := entity.NewNote("n-old", "Old", "")
	older.UpdatedAt = time.Now().Add(-time.Hour)
	newer := entity.NewNote("n-new", "New", "")

	require.NoError(t, db.notes.Save(db.ctx, older))
	require.NoError(t, db.notes.Save(db.ctx, newer))

	all, err := db.notes.GetAll(db.ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, entity.NoteID("n-new"), all[0].ID)
}

func TestNoteRepository_Delete(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, db.notes.Save(db.ctx, entity.NewNote("n-1", "T", "")))
	require.NoError(t, db.notes.Delete(db.ctx, "n-1"))

	all, err := db.notes.GetAll(db.ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestHistoryCacheRepository_UpsertAndClear(t *testing.T) {
	db := openTestDB(t)

	entry := entity.NewHistoryEntry("https://aleo.org", "Aleo")
	require.NoError(t, db.history.Upsert(db.ctx, entry))

	entry.VisitCount = 5
	require.NoError(t, db.history.Upsert(db.ctx, entry))

	all, err := db.history.GetAll(db.ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, int64(5), all[0].VisitCount)

	require.NoError(t, db.history.Clear(db.ctx))
	all, err = db.history.GetAll(db.ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, all)
}
