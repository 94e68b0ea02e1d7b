package cmd

import (
	"fmt"
	"io"
	"os"

	"traceability/feature/intake"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	intakeBatch  string
	intakeImport string
	intakeModel  string
	intakeFile   string
)

// intakeCmd represents the intake command
var intakeCmd = &cobra.Command{
	Use:   "intake",
	Short: "Register a batch of received units",
	Long: `Registers one Available unit per origin serial, one serial per line.
Serials are read from --file, or from stdin when --file is "-" or omitted.
Serials already in the inventory are skipped.`,
	Example: `  traceability intake --batch LOTE-A --import DI-2024-01 --model BAL-30 --file serials.txt`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			raw []byte
			err error
		)
		if intakeFile == "" || intakeFile == "-" {
			raw, err = io.ReadAll(cmd.InOrStdin())
		} else {
			raw, err = os.ReadFile(intakeFile)
		}
		if err != nil {
			return fmt.Errorf("failed to read serials: %w", err)
		}

		rt, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		defer rt.Close()

		res, err := rt.intake.Service().Process(cmd.Context(), intake.Request{
			BatchLabel:      intakeBatch,
			ImportReference: intakeImport,
			ModelName:       intakeModel,
			Serials:         string(raw),
		})
		if err != nil {
			return err
		}

		rt.log.Info(res.Message(), zap.Int("inserted", res.Inserted), zap.Int("total", res.Total))
		return nil
	},
}

func init() {
	intakeCmd.Flags().StringVar(&intakeBatch, "batch", "", "Batch label (required)")
	intakeCmd.Flags().StringVar(&intakeImport, "import", "", "Import document reference")
	intakeCmd.Flags().StringVar(&intakeModel, "model", "", "Model name (required)")
	intakeCmd.Flags().StringVarP(&intakeFile, "file", "f", "", "File with one serial per line (default stdin)")
	RootCmd.AddCommand(intakeCmd)
}
