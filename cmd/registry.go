package cmd

import (
	"fmt"

	"traceability/feature/registry"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// newRegistryCmd builds the add/list command pair for one registry.
func newRegistryCmd(kind registry.Kind, short string) *cobra.Command {
	parent := &cobra.Command{
		Use:   string(kind),
		Short: short,
	}

	parent.AddCommand(&cobra.Command{
		Use:   "add [name]",
		Short: fmt.Sprintf("Register a %s name", kind),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := bootstrap(cmd.Context())
			if err != nil {
				return err
			}
			defer rt.Close()

			if err := rt.registry.Service().Register(cmd.Context(), kind, args[0]); err != nil {
				return err
			}
			rt.log.Info("Registered", zap.String("kind", string(kind)), zap.String("name", args[0]))
			return nil
		},
	})

	parent.AddCommand(&cobra.Command{
		Use:   "list",
		Short: fmt.Sprintf("List registered %s names", kind),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := bootstrap(cmd.Context())
			if err != nil {
				return err
			}
			defer rt.Close()

			names, err := rt.registry.Service().List(cmd.Context(), kind)
			if err != nil {
				return err
			}
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	})

	return parent
}

func init() {
	RootCmd.AddCommand(newRegistryCmd(registry.KindModel, "Manage the scale model registry"))
	RootCmd.AddCommand(newRegistryCmd(registry.KindClient, "Manage the client registry"))
}
