package store

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veilbrowser/veil/internal/bridge"
	"github.com/veilbrowser/veil/internal/bridge/bridgetest"
	"github.com/veilbrowser/veil/internal/config"
	"github.com/veilbrowser/veil/internal/domain/entity"
)

// memNoteRepo is an in-memory NoteRepository for store tests.
type memNoteRepo struct {
	mu    sync.Mutex
	notes map[entity.NoteID]*entity.Note
}

func newMemNoteRepo() *memNoteRepo {
	return &memNoteRepo{notes: make(map[entity.NoteID]*entity.Note)}
}

func (r *memNoteRepo) Save(_ context.Context, note *entity.Note) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *note
	r.notes[note.ID] = &copied
	return nil
}

func (r *memNoteRepo) FindByID(_ context.Context, id entity.NoteID) (*entity.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if n, ok := r.notes[id]; ok {
		copied := *n
		return &copied, nil
	}
	return nil, nil
}

func (r *memNoteRepo) GetAll(_ context.Context) ([]*entity.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Note, 0, len(r.notes))
	for _, n := range r.notes {
		copied := *n
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

func (r *memNoteRepo) SetSyncStatus(_ context.Context, id entity.NoteID, status entity.NoteSyncStatus, txHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if n, ok := r.notes[id]; ok {
		n.SyncStatus = status
		n.TxHash = txHash
	}
	return nil
}

func (r *memNoteRepo) Delete(_ context.Context, id entity.NoteID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.notes, id)
	return nil
}

func newNotesStore(transport *bridgetest.FakeTransport, repo *memNoteRepo) *NotesStore {
	client := bridge.New(transport, zerolog.Nop())
	cfg := config.WalletConfig{TxPollInterval: time.Millisecond, TxPollTimeout: 100 * time.Millisecond}
	return NewNotesStore(client, repo, cfg, zerolog.Nop())
}

func TestNotesStore_CreateUpdateDelete(t *testing.T) {
	ctx := context.Background()
	repo := newMemNoteRepo()
	s := newNotesStore(bridgetest.NewFakeTransport(), repo)

	note, ok := s.Create(ctx, "Groceries", "milk, eggs", []string{"home"})
	require.True(t, ok)
	assert.Equal(t, entity.NoteLocal, note.SyncStatus)
	assert.NotEmpty(t, note.ID)

	require.True(t, s.Update(ctx, note.ID, "Groceries", "milk, eggs, bread", nil))
	updated := s.Find(note.ID)
	require.NotNil(t, updated)
	assert.Equal(t, "milk, eggs, bread", updated.Content)

	require.True(t, s.Delete(ctx, note.ID))
	assert.Nil(t, s.Find(note.ID))
	assert.Empty(t, s.Notes())
}

func TestNotesStore_CreateRejectsEmptyNote(t *testing.T) {
	s := newNotesStore(bridgetest.NewFakeTransport(), newMemNoteRepo())

	_, ok := s.Create(context.Background(), "", "", nil)
	assert.False(t, ok)
	assert.Equal(t, "Note is empty", s.Err())
}

func TestNotesStore_LoadReadsFromRepository(t *testing.T) {
	ctx := context.Background()
	repo := newMemNoteRepo()
	require.NoError(t, repo.Save(ctx, entity.NewNote("n-1", "One", "first")))

	s := newNotesStore(bridgetest.NewFakeTransport(), repo)
	require.True(t, s.Load(ctx))
	require.Len(t, s.Notes(), 1)
	assert.Equal(t, "One", s.Notes()[0].Title)
}

func TestNotesStore_SyncFinalizesOnChain(t *testing.T) {
	ctx := context.Background()
	transport := bridgetest.NewFakeTransport()
	transport.Respond("dapp.requestTransaction", map[string]any{
		"success":        true,
		"transaction_id": "at1note",
	})
	transport.Respond("dapp.transactionStatus", map[string]any{
		"success": true,
		"status":  "finalized",
	})

	repo := newMemNoteRepo()
	s := newNotesStore(transport, repo)
	note, _ := s.Create(ctx, "Sync me", "content", nil)

	require.True(t, s.Sync(ctx, note.ID))

	synced := s.Find(note.ID)
	assert.Equal(t, entity.NoteOnChain, synced.SyncStatus)
	assert.Equal(t, "at1note", synced.TxHash)

	// Persisted too.
	stored, err := repo.FindByID(ctx, note.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.NoteOnChain, stored.SyncStatus)
}

func TestNotesStore_SyncRejectedMarksFailed(t *testing.T) {
	ctx := context.Background()
	transport := bridgetest.NewFakeTransport()
	transport.Respond("dapp.requestTransaction", map[string]any{
		"success":        true,
		"transaction_id": "at1bad",
	})
	transport.Respond("dapp.transactionStatus", map[string]any{
		"success": true,
		"status":  "rejected",
	})

	s := newNotesStore(transport, newMemNoteRepo())
	note, _ := s.Create(ctx, "Doomed", "content", nil)

	assert.False(t, s.Sync(ctx, note.ID))
	assert.Equal(t, "Transaction was rejected", s.Err())
	assert.Equal(t, entity.NoteSyncFailed, s.Find(note.ID).SyncStatus)
}

func TestNotesStore_SyncTimesOutWhilePending(t *testing.T) {
	ctx := context.Background()
	transport := bridgetest.NewFakeTransport()
	transport.Respond("dapp.requestTransaction", map[string]any{
		"success":        true,
		"transaction_id": "at1slow",
	})
	transport.Respond("dapp.transactionStatus", map[string]any{
		"success": true,
		"status":  "pending",
	})

	s := newNotesStore(transport, newMemNoteRepo())
	note, _ := s.Create(ctx, "Slow", "content", nil)

	assert.False(t, s.Sync(ctx, note.ID))
	assert.Equal(t, "Timed out waiting for transaction", s.Err())
	assert.Equal(t, entity.NoteSyncFailed, s.Find(note.ID).SyncStatus)
}

func TestNotesStore_SyncSubmissionFailureKeepsNote(t *testing.T) {
	ctx := context.Background()
	transport := bridgetest.NewFakeTransport()
	transport.Respond("dapp.requestTransaction", map[string]any{
		"success": false,
		"error":   "user declined",
	})

	s := newNotesStore(transport, newMemNoteRepo())
	note, _ := s.Create(ctx, "Declined", "content", nil)

	assert.False(t, s.Sync(ctx, note.ID))
	assert.Equal(t, "user declined", s.Err())

	kept := s.Find(note.ID)
	require.NotNil(t, kept)
	assert.Equal(t, entity.NoteSyncFailed, kept.SyncStatus)
	assert.Equal(t, "Declined", kept.Title)
}

func TestNotesStore_EditAfterSyncDropsBackToLocal(t *testing.T) {
	ctx := context.Background()
	transport := bridgetest.NewFakeTransport()
	transport.Respond("dapp.requestTransaction", map[string]any{
		"success":        true,
		"transaction_id": "at1note",
	})
	transport.Respond("dapp.transactionStatus", map[string]any{
		"success": true,
		"status":  "finalized",
	})

	s := newNotesStore(transport, newMemNoteRepo())
	note, _ := s.Create(ctx, "Versioned", "v1", nil)
	require.True(t, s.Sync(ctx, note.ID))

	require.True(t, s.Update(ctx, note.ID, "Versioned", "v2", nil))
	edited := s.Find(note.ID)
	assert.Equal(t, entity.NoteLocal, edited.SyncStatus)
	assert.Empty(t, edited.TxHash)
}
