package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var deleteYes bool

// deleteCmd represents the delete command.
var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a recorded sale",
	Long: `Delete a recorded sale permanently. There is no undo.

Deleting an id that does not exist does nothing.

Example:
  sales-journal delete 1737331200000
  sales-journal delete 1737331200000 --yes`,
	Args: cobra.ExactArgs(1),
	Run:  runDelete,
}

func init() {
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "Do not ask for confirmation")
}

func runDelete(cmd *cobra.Command, args []string) {
	id, err := strconv.ParseInt(args[0], 10, 64)
	exitOnError(err, "invalid transaction id")

	if !deleteYes && !confirm(fmt.Sprintf("Are you sure you want to delete record %d?", id)) {
		fmt.Println("Aborted")
		return
	}

	a := mustOpenApp()
	defer a.Close()

	wf, err := a.workflow()
	exitOnError(err, "failed to load journal")

	before := len(wf.Transactions())
	exitOnError(wf.Delete(id), "failed to delete sale")

	if len(wf.Transactions()) == before {
		fmt.Printf("No sale with id %d\n", id)
		return
	}
	fmt.Printf("Deleted sale %d\n", id)
}

// confirm asks a yes/no question on stdin.
func confirm(question string) bool {
	fmt.Printf("%s [y/N]: ", question)

	answer, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
