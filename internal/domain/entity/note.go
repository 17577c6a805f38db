package entity

import "time"

// NoteID uniquely identifies a note.
type NoteID string

// NoteSyncStatus tracks a note's progress toward the ledger.
type NoteSyncStatus string

const (
	// NoteLocal means the note exists only on this machine.
	NoteLocal NoteSyncStatus = "local"

	// NoteSyncing means a ledger transaction has been submitted and is
	// being polled for finalization.
	NoteSyncing NoteSyncStatus = "syncing"

	// NoteOnChain means the ledger transaction finalized.
	NoteOnChain NoteSyncStatus = "on-chain"

	// NoteSyncFailed means the last sync attempt failed; the note remains
	// intact locally and can be re-synced.
	NoteSyncFailed NoteSyncStatus = "failed"
)

// Note is a locally persisted note that can be explicitly mirrored to the
// ledger. Notes stay local until the user asks for a sync.
type Note struct {
	ID         NoteID
	Title      string
	Content    string
	Tags       []string
	SyncStatus NoteSyncStatus
	TxHash     string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewNote creates a local note.
func NewNote(id NoteID, title, content string) *Note {
	now := time.Now()
	return &Note{
		ID:         id,
		Title:      title,
		Content:    content,
		SyncStatus: NoteLocal,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Touch bumps UpdatedAt and drops the note back to local sync state; edits
// after a sync require a new sync.
func (n *Note) Touch() {
	n.UpdatedAt = time.Now()
	if n.SyncStatus == NoteOnChain {
		n.SyncStatus = NoteLocal
		n.TxHash = ""
	}
}
