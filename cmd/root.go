package cmd

import (
	"fmt"
	"os"

	"traceability/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "traceability",
	Short: "Scale traceability service",
	Long: `Traceability tracks scale units from import through calibration to shipment.
Units are registered at intake, matched against calibration workbooks and finalized
against a client order.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		l, logErr := logger.Console()
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}
