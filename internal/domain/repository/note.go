package repository

import (
	"context"

	"github.com/veilbrowser/veil/internal/domain/entity"
)

// NoteRepository defines operations for local note persistence.
type NoteRepository interface {
	// Save creates or updates a note.
	Save(ctx context.Context, note *entity.Note) error

	// FindByID retrieves a note by its ID.
	FindByID(ctx context.Context, id entity.NoteID) (*entity.Note, error)

	// GetAll retrieves all notes ordered by most recently updated.
	GetAll(ctx context.Context) ([]*entity.Note, error)

	// SetSyncStatus updates a note's sync status and transaction hash.
	SetSyncStatus(ctx context.Context, id entity.NoteID, status entity.NoteSyncStatus, txHash string) error

	// Delete removes a note by ID.
	Delete(ctx context.Context, id entity.NoteID) error
}
