package cmd

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"traceability/feature/inventory/models"

	"github.com/spf13/cobra"
)

var (
	inventoryFilter string
	inventoryJSON   bool
)

// inventoryCmd represents the inventory command
var inventoryCmd = &cobra.Command{
	Use:   "inventory",
	Short: "List units, optionally filtered",
	Long: `Lists every unit in the inventory. With --filter, only units whose batch,
origin serial, local serial, client or order contains the text are shown.
Matching is case-sensitive.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		defer rt.Close()

		units, err := rt.inventory.Service().Query(cmd.Context(), inventoryFilter)
		if err != nil {
			return err
		}

		if inventoryJSON {
			data, err := json.MarshalIndent(units, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, strings.Join(models.ViewColumns, "\t"))
		for _, u := range units {
			fmt.Fprintln(w, strings.Join(u.Values(), "\t"))
		}
		if err := w.Flush(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "\n%d units\n", len(units))
		return nil
	},
}

func init() {
	inventoryCmd.Flags().StringVar(&inventoryFilter, "filter", "", "Substring to match against batch, serials, client and order")
	inventoryCmd.Flags().BoolVar(&inventoryJSON, "json", false, "Output as JSON")
	RootCmd.AddCommand(inventoryCmd)
}
