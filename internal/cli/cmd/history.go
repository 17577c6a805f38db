package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/veilbrowser/veil/internal/cli/model"
)

var (
	historyJSON bool
	historyMax  int
)

const defaultHistoryMax = 100

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse and manage history",
	Long:  `Interactive history browser, grouped by day, with search and deletion.`,
	RunE:  runHistory,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear all browsing history",
	RunE:  runHistoryClear,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyClearCmd)

	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "output as JSON")
	historyCmd.Flags().IntVar(&historyMax, "max", defaultHistoryMax, "maximum entries to fetch (for --json)")
}

func runHistory(_ *cobra.Command, _ []string) error {
	if historyJSON {
		if !app.History.Load(app.Ctx(), historyMax) {
			return fmt.Errorf("%s", app.History.Err())
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(app.History.Entries())
	}

	m := model.NewHistoryModel(app.Ctx(), app.Theme, app.History)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func runHistoryClear(_ *cobra.Command, _ []string) error {
	if !app.History.Clear(app.Ctx()) {
		return fmt.Errorf("%s", app.History.Err())
	}
	fmt.Println("history cleared")
	return nil
}
