package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/veilbrowser/veil/internal/cli/model"
	"github.com/veilbrowser/veil/internal/domain/entity"
)

var notesCmd = &cobra.Command{
	Use:   "notes",
	Short: "Manage local notes and their ledger sync",
	Long: `Interactive notes panel.

Notes live in the local database and reach the ledger only through the
explicit sync action, which submits a transaction via the host wallet.`,
	RunE: runNotes,
}

var notesSyncCmd = &cobra.Command{
	Use:   "sync <note-id>",
	Short: "Sync a note to the ledger and wait for finalization",
	Args:  cobra.ExactArgs(1),
	RunE:  runNotesSync,
}

func init() {
	rootCmd.AddCommand(notesCmd)
	notesCmd.AddCommand(notesSyncCmd)
}

func runNotes(_ *cobra.Command, _ []string) error {
	m := model.NewNotesModel(app.Ctx(), app.Theme, app.Notes)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func runNotesSync(_ *cobra.Command, args []string) error {
	ctx := app.Ctx()
	if !app.Notes.Load(ctx) {
		return fmt.Errorf("%s", app.Notes.Err())
	}

	id := entity.NoteID(args[0])
	if !app.Notes.Sync(ctx, id) {
		return fmt.Errorf("%s", app.Notes.Err())
	}

	note := app.Notes.Find(id)
	fmt.Println("synced, transaction:", note.TxHash)
	return nil
}
