package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
)

var resetYes bool

// resetCmd represents the reset command.
var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Erase all recorded sales",
	Long: `Erase the journal storage. The next read restores the sample data.

This is irreversible. It is also the way out when the stored data is corrupt.

Example:
  sales-journal reset --yes`,
	Run: runReset,
}

func init() {
	resetCmd.Flags().BoolVarP(&resetYes, "yes", "y", false, "Do not ask for confirmation")
}

func runReset(cmd *cobra.Command, args []string) {
	if !resetYes && !confirm("This deletes every recorded sale. Continue?") {
		fmt.Println("Aborted")
		return
	}

	a := mustOpenApp()
	defer a.Close()

	// Clear goes straight to the store so a corrupt list can still be reset.
	exitOnError(a.store.Clear(), "failed to reset storage")
	slog.Warn("Storage reset", "path", a.paths.GetStorePath())

	txns, err := a.store.ReadAll()
	exitOnError(err, "failed to reload transactions")

	fmt.Printf("Storage reset. %d sample records restored.\n", len(txns))
}
