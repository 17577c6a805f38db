package cmd

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/veilbrowser/veil/internal/cli/model"
)

var browseCmd = &cobra.Command{
	Use:   "browse [url]",
	Short: "Open the interactive browsing surface",
	Long: `Open the tab strip and address bar connected to the browser host.

If a URL is provided, the first tab navigates to it.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBrowse,
}

func init() {
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(_ *cobra.Command, args []string) error {
	ctx := app.Ctx()

	tab := app.Tabs.Init(ctx)
	if len(args) == 1 {
		app.Tabs.Navigate(ctx, args[0])
		_ = tab
	}

	m := model.NewBrowseModel(ctx, app.Theme, app.Tabs, app.Downloads)
	p := tea.NewProgram(m, tea.WithAltScreen())

	// Host events re-render the surface through the running program.
	app.Events.OnRefresh(func() {
		p.Send(model.RefreshMsg{})
	})
	app.Events.Bind()
	defer app.Events.Teardown()

	_, err := p.Run()
	return err
}
