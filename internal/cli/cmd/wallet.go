package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/veilbrowser/veil/internal/cli/model"
)

var walletCmd = &cobra.Command{
	Use:   "wallet",
	Short: "Manage the embedded Aleo wallet",
	Long: `Interactive wallet panel: status, unlock, create, and send.

All keys live in the browser host; this panel only drives it.`,
	RunE: runWallet,
}

var walletStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print wallet status without the TUI",
	RunE:  runWalletStatus,
}

func init() {
	rootCmd.AddCommand(walletCmd)
	walletCmd.AddCommand(walletStatusCmd)
}

func runWallet(_ *cobra.Command, _ []string) error {
	m := model.NewWalletModel(app.Ctx(), app.Theme, app.Wallet)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func runWalletStatus(_ *cobra.Command, _ []string) error {
	app.Wallet.CheckStatus(app.Ctx())
	if msg := app.Wallet.Err(); msg != "" {
		return fmt.Errorf("%s", msg)
	}

	w := app.Wallet.Snapshot()
	fmt.Println("status: ", w.Status)
	if w.Address != "" {
		fmt.Println("address:", w.Address)
		fmt.Printf("balance: %.6f credits\n", w.Balance)
	}
	return nil
}
