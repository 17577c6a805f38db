package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/veilbrowser/veil/internal/domain/entity"
	"github.com/veilbrowser/veil/internal/domain/repository"
	"github.com/veilbrowser/veil/internal/logging"
)

type noteRepo struct {
	db *sql.DB
}

// NewNoteRepository creates a SQLite-backed note repository.
func NewNoteRepository(db *sql.DB) repository.NoteRepository {
	return &noteRepo{db: db}
}

func (r *noteRepo) Save(ctx context.Context, note *entity.Note) error {
	log := logging.FromContext(ctx)
	log.Debug().Str("note_id", string(note.ID)).Msg("saving note")

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO notes (id, title, content, tags, sync_status, tx_hash, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			content = excluded.content,
			tags = excluded.tags,
			sync_status = excluded.sync_status,
			tx_hash = excluded.tx_hash,
			updated_at = excluded.updated_at`,
		string(note.ID), note.Title, note.Content, strings.Join(note.Tags, ","),
		string(note.SyncStatus), note.TxHash, note.CreatedAt, note.UpdatedAt,
	)
	return err
}

func (r *noteRepo) FindByID(ctx context.Context, id entity.NoteID) (*entity.Note, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, title, content, tags, sync_status, tx_hash, created_at, updated_at
		FROM notes WHERE id = ?`, string(id))

	note, err := scanNote(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return note, err
}

func (r *noteRepo) GetAll(ctx context.Context) ([]*entity.Note, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, content, tags, sync_status, tx_hash, created_at, updated_at
		FROM notes ORDER BY updated_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []*entity.Note
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, note)
	}
	return notes, rows.Err()
}

func (r *noteRepo) SetSyncStatus(ctx context.Context, id entity.NoteID, status entity.NoteSyncStatus, txHash string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE notes SET sync_status = ?, tx_hash = ? WHERE id = ?`,
		string(status), txHash, string(id))
	return err
}

func (r *noteRepo) Delete(ctx context.Context, id entity.NoteID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM notes WHERE id = ?`, string(id))
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNote(row rowScanner) (*entity.Note, error) {
	var note entity.Note
	var id, tags, status string
	if err := row.Scan(&id, &note.Title, &note.Content, &tags, &status,
		&note.TxHash, &note.CreatedAt, &note.UpdatedAt); err != nil {
		return nil, err
	}
	note.ID = entity.NoteID(id)
	note.SyncStatus = entity.NoteSyncStatus(status)
	if tags != "" {
		note.Tags = strings.Split(tags, ",")
	}
	return &note, nil
}
