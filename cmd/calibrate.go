package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"traceability/core/reconcile"
	"traceability/feature/calibration"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	calibrateClient string
	calibrateOrder  string
	calibrateDryRun bool
	calibrateObject string
	calibrateJSON   bool
)

// calibrateCmd represents the calibrate command
var calibrateCmd = &cobra.Command{
	Use:   "calibrate [workbook.xlsx]",
	Short: "Reconcile a filled calibration workbook",
	Long: `Matches every row of the workbook against Available units and finalizes the
matches with the client, the order and the measurements.

Use --dry-run to report what would happen without writing, and --object to replay a
workbook from the archive instead of a local file.`,
	Example: `  traceability calibrate lote.xlsx --client Acme --order PED-100
  traceability calibrate --object uploads/PED-100/1700000000_lote.xlsx --client Acme --order PED-100 --dry-run`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if calibrateObject == "" && len(args) == 0 {
			return fmt.Errorf("a workbook path or --object is required")
		}

		rt, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		defer rt.Close()

		ctx := cmd.Context()
		svc := rt.calibration.Service()
		opts := reconcile.Options{DryRun: calibrateDryRun}

		var res *reconcile.Result
		if calibrateObject != "" {
			res, err = svc.Replay(ctx, calibrateObject, calibrateClient, calibrateOrder, opts)
		} else {
			data, readErr := os.ReadFile(args[0])
			if readErr != nil {
				return fmt.Errorf("failed to read workbook: %w", readErr)
			}
			res, err = svc.ReconcileUpload(ctx, calibration.Upload{
				ClientName:     calibrateClient,
				OrderReference: calibrateOrder,
				Filename:       filepath.Base(args[0]),
				Data:           data,
			}, opts)
		}

		if res != nil {
			if calibrateJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				_ = enc.Encode(res)
			} else {
				printCalibrationReport(rt.log, res)
			}
		}
		return err
	},
}

// printCalibrationReport prints a formatted batch report using logger.
func printCalibrationReport(l *zap.Logger, res *reconcile.Result) {
	l.Info("Calibration report",
		zap.String("order", res.OrderReference),
		zap.String("client", res.ClientName),
		zap.Int("finalized", res.Succeeded),
		zap.Int("unmatched", len(res.Unmatched)),
		zap.Int("blank_rows", res.Blank),
		zap.Bool("dry_run", res.DryRun),
	)
	for _, serial := range res.Unmatched {
		l.Warn("Serial not in stock or already finalized", zap.String("serial", serial))
	}
	l.Info(res.Message())
	if res.DryRun {
		l.Info("Dry-run mode: No changes were made.")
	}
}

func init() {
	calibrateCmd.Flags().StringVar(&calibrateClient, "client", "", "Client name (required)")
	calibrateCmd.Flags().StringVar(&calibrateOrder, "order", "", "Order reference (required)")
	calibrateCmd.Flags().BoolVar(&calibrateDryRun, "dry-run", false, "Report the outcome without finalizing any unit")
	calibrateCmd.Flags().StringVar(&calibrateObject, "object", "", "Replay an archived workbook by object key")
	calibrateCmd.Flags().BoolVar(&calibrateJSON, "json", false, "Print the full report as JSON")
	RootCmd.AddCommand(calibrateCmd)
}
