package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/veilbrowser/veil/internal/bridge"
	"github.com/veilbrowser/veil/internal/config"
	"github.com/veilbrowser/veil/internal/domain/entity"
	"github.com/veilbrowser/veil/internal/ledger"
	"github.com/veilbrowser/veil/internal/domain/repository"
)

// NotesProgramID is the ledger program that stores note commitments.
const NotesProgramID = "veil_notes.aleo"

// NotesStore owns locally persisted notes. Unlike bookmarks and history the
// source of truth is the local database, not the host; the bridge is only
// used for explicit on-chain syncs.
type NotesStore struct {
	client *bridge.Client
	repo   repository.NoteRepository
	cfg    config.WalletConfig
	log    zerolog.Logger

	mu    sync.RWMutex
	notes []*entity.Note
	err   string
}

// NewNotesStore creates a notes store backed by repo.
func NewNotesStore(client *bridge.Client, repo repository.NoteRepository, cfg config.WalletConfig, log zerolog.Logger) *NotesStore {
	return &NotesStore{
		client: client,
		repo:   repo,
		cfg:    cfg,
		log:    log.With().Str("component", "notes-store").Logger(),
	}
}

// Err returns the last store-level error string.
func (s *NotesStore) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

func (s *NotesStore) setErr(msg string) {
	s.mu.Lock()
	s.err = msg
	s.mu.Unlock()
}

// Load reads all notes from the local database.
func (s *NotesStore) Load(ctx context.Context) bool {
	notes, err := s.repo.GetAll(ctx)
	if err != nil {
		s.setErr("Failed to load notes")
		s.log.Error().Err(err).Msg("note load failed")
		return false
	}

	s.mu.Lock()
	s.notes = notes
	s.err = ""
	s.mu.Unlock()
	return true
}

// Notes returns a copy of the note collection, most recently updated first.
func (s *NotesStore) Notes() []*entity.Note {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*entity.Note, len(s.notes))
	for i, n := range s.notes {
		copied := *n
		out[i] = &copied
	}
	return out
}

// Find returns a copy of the note with the given id, or nil.
func (s *NotesStore) Find(id entity.NoteID) *entity.Note {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, n := range s.notes {
		if n.ID == id {
			copied := *n
			return &copied
		}
	}
	return nil
}

// Create persists a new note and prepends it to the collection.
func (s *NotesStore) Create(ctx context.Context, title, content string, tags []string) (*entity.Note, bool) {
	if title == "" && content == "" {
		s.setErr("Note is empty")
		return nil, false
	}

	note := entity.NewNote(entity.NoteID(uuid.NewString()), title, content)
	note.Tags = tags

	if err := s.repo.Save(ctx, note); err != nil {
		s.setErr("Failed to save note")
		s.log.Error().Err(err).Msg("note save failed")
		return nil, false
	}

	s.mu.Lock()
	s.notes = append([]*entity.Note{note}, s.notes...)
	s.err = ""
	s.mu.Unlock()
	return note, true
}

// Update edits a note. Editing an on-chain note drops it back to local so
// the stale commitment is not mistaken for current content.
func (s *NotesStore) Update(ctx context.Context, id entity.NoteID, title, content string, tags []string) bool {
	note := s.Find(id)
	if note == nil {
		s.setErr("Note not found")
		return false
	}

	note.Title = title
	note.Content = content
	note.Tags = tags
	note.Touch()

	if err := s.repo.Save(ctx, note); err != nil {
		s.setErr("Failed to save note")
		s.log.Error().Err(err).Msg("note save failed")
		return false
	}

	s.replace(note)
	return true
}

// Delete removes a note locally. Any on-chain commitment is left behind;
// ledger records are immutable.
func (s *NotesStore) Delete(ctx context.Context, id entity.NoteID) bool {
	if err := s.repo.Delete(ctx, id); err != nil {
		s.setErr("Failed to delete note")
		s.log.Error().Err(err).Msg("note delete failed")
		return false
	}

	s.mu.Lock()
	for i, n := range s.notes {
		if n.ID == id {
			s.notes = append(s.notes[:i], s.notes[i+1:]...)
			break
		}
	}
	s.err = ""
	s.mu.Unlock()
	return true
}

// Sync submits a note's commitment to the ledger and blocks polling the
// transaction until it finalizes, is rejected, or the poll times out. The
// note moves local → syncing → on-chain or failed; failure never loses the
// note and a re-sync can be requested at any time.
func (s *NotesStore) Sync(ctx context.Context, id entity.NoteID) bool {
	note := s.Find(id)
	if note == nil {
		s.setErr("Note not found")
		return false
	}
	if note.SyncStatus == entity.NoteSyncing {
		s.setErr("Note is already syncing")
		return false
	}

	s.setSyncState(ctx, note, entity.NoteSyncing, "")

	res := s.client.DApp.RequestTransaction(ctx, bridge.RequestTransactionParams{
		ProgramID:    NotesProgramID,
		FunctionName: "store_note",
		Inputs:       ledger.EncodeNote(note),
		Fee:          0,
		Origin:       "veil://notes",
	})
	if res.Failed() {
		s.setSyncState(ctx, note, entity.NoteSyncFailed, "")
		s.setErr(res.Error)
		return false
	}

	status, ok := s.awaitFinalized(ctx, res.TransactionID)
	if !ok {
		s.setSyncState(ctx, note, entity.NoteSyncFailed, res.TransactionID)
		s.setErr(status)
		return false
	}

	s.setSyncState(ctx, note, entity.NoteOnChain, res.TransactionID)
	s.setErr("")
	return true
}

// awaitFinalized polls the transaction at the configured interval. Returns
// ("", true) on finalization, or an error string otherwise.
func (s *NotesStore) awaitFinalized(ctx context.Context, txID string) (string, bool) {
	interval := s.cfg.TxPollInterval
	if interval <= 0 {
		interval = 2 * time.Second
	}
	timeout := s.cfg.TxPollTimeout
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	deadline := time.NewTimer(timeout)
	defer deadline.Stop()

	for {
		res := s.client.DApp.TransactionStatus(ctx, txID)
		if res.Failed() {
			return res.Error, false
		}
		switch res.Status {
		case "finalized":
			return "", true
		case "rejected":
			return "Transaction was rejected", false
		}

		select {
		case <-ctx.Done():
			return "Sync cancelled", false
		case <-deadline.C:
			return "Timed out waiting for transaction", false
		case <-ticker.C:
		}
	}
}

func (s *NotesStore) setSyncState(ctx context.Context, note *entity.Note, status entity.NoteSyncStatus, txHash string) {
	note.SyncStatus = status
	note.TxHash = txHash
	if err := s.repo.SetSyncStatus(ctx, note.ID, status, txHash); err != nil {
		s.log.Warn().Err(err).Str("note_id", string(note.ID)).Msg("failed to persist sync status")
	}
	s.replace(note)
}

func (s *NotesStore) replace(note *entity.Note) {
	s.mu.Lock()
	for i, n := range s.notes {
		if n.ID == note.ID {
			copied := *note
			s.notes[i] = &copied
			break
		}
	}
	s.err = ""
	s.mu.Unlock()
}
