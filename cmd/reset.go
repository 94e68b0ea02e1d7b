package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var yesConfirm bool

// resetCmd represents the reset command
var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Drop and recreate every table",
	Long: `Destroys all units and registry entries and recreates the empty schema.
Identifier sequences restart. This cannot be undone.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !confirmDestructiveAction() {
			fmt.Println("Aborted.")
			return nil
		}

		rt, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		defer rt.Close()

		if err := rt.maintenance.Service().Reset(cmd.Context()); err != nil {
			return err
		}
		rt.log.Info("Database reset complete")
		return nil
	},
}

// confirmDestructiveAction prompts the user for confirmation or uses --yes flag.
func confirmDestructiveAction() bool {
	if yesConfirm {
		fmt.Println("\n✓ Auto-confirmed via --yes flag")
		return true
	}

	fmt.Print("\n⚠️  Type 'yes' to drop every table: ")
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	return strings.TrimSpace(response) == "yes"
}

func init() {
	resetCmd.Flags().BoolVarP(&yesConfirm, "yes", "y", false, "Skip the confirmation prompt")
	RootCmd.AddCommand(resetCmd)
}
