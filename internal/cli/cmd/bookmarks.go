package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/veilbrowser/veil/internal/cli/model"
	"github.com/veilbrowser/veil/internal/domain/entity"
)

var bookmarksJSON bool

var bookmarksCmd = &cobra.Command{
	Use:   "bookmarks",
	Short: "Browse and manage bookmarks",
	Long:  `Interactive bookmark manager with search, favorites, and ledger sync status.`,
	RunE:  runBookmarks,
}

var bookmarksAddCmd = &cobra.Command{
	Use:   "add <url> [title]",
	Short: "Add a bookmark",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runBookmarksAdd,
}

func init() {
	rootCmd.AddCommand(bookmarksCmd)
	bookmarksCmd.AddCommand(bookmarksAddCmd)

	bookmarksCmd.Flags().BoolVar(&bookmarksJSON, "json", false, "output as JSON")
}

func runBookmarks(_ *cobra.Command, _ []string) error {
	if bookmarksJSON {
		if !app.Bookmarks.Load(app.Ctx()) {
			return fmt.Errorf("%s", app.Bookmarks.Err())
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(app.Bookmarks.Bookmarks())
	}

	m := model.NewBookmarksModel(app.Ctx(), app.Theme, app.Bookmarks)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func runBookmarksAdd(_ *cobra.Command, args []string) error {
	url := args[0]
	title := url
	if len(args) == 2 {
		title = args[1]
	}

	bm, ok := app.Bookmarks.Add(app.Ctx(), url, title, nil, entity.FolderOtherBookmarks)
	if !ok {
		return fmt.Errorf("%s", app.Bookmarks.Err())
	}
	fmt.Println("added", bm.ID)
	return nil
}
