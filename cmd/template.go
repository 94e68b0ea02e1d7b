package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var templateOut string

// templateCmd represents the template command
var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Write the empty calibration workbook",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		defer rt.Close()

		out := templateOut
		if out == "" {
			out = rt.cfg.Calibration.TemplateFile
		}

		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", out, err)
		}
		if err := rt.calibration.Service().WriteTemplate(f); err != nil {
			_ = f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}

		rt.log.Info("Template written", zap.String("path", out), zap.String("sheet", rt.cfg.Calibration.SheetName))
		return nil
	},
}

func init() {
	templateCmd.Flags().StringVarP(&templateOut, "out", "o", "", "Output path (default calibration.template_file)")
	RootCmd.AddCommand(templateCmd)
}
