package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"traceability/feature/maintenance/checks"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	fixFlag  bool
	jsonFlag bool
)

// integrityCmd represents the integrity command
var integrityCmd = &cobra.Command{
	Use:   "integrity",
	Short: "Perform integrity checks on the database and storage",
	Long:  `Checks that the database schema matches the models and that the archive bucket is reachable.`,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

// schemaCmd represents the integrity schema command
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Compare the database schema with the models",
	RunE: func(cmd *cobra.Command, args []string) error {
		startTime := time.Now()

		rt, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		defer rt.Close()

		report, err := rt.maintenance.Service().CheckSchema(cmd.Context())
		if err != nil {
			return err
		}

		if jsonFlag {
			return printJSON(cmd, report)
		}
		printSchemaReport(rt.log, report, time.Since(startTime))
		if !report.Matched {
			return fmt.Errorf("schema does not match the models")
		}
		return nil
	},
}

// storageCmd represents the integrity storage command
var storageCmd = &cobra.Command{
	Use:   "storage",
	Short: "Check the calibration archive bucket",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		defer rt.Close()

		report, err := rt.maintenance.Service().CheckStorage(cmd.Context(), fixFlag)
		if err != nil {
			return err
		}

		if jsonFlag {
			return printJSON(cmd, report)
		}
		rt.log.Info("Storage check",
			zap.String("bucket", report.Bucket),
			zap.Bool("exists", report.Exists),
			zap.Bool("fixed", report.Fixed),
		)
		if !report.Exists {
			return fmt.Errorf("bucket %s does not exist", report.Bucket)
		}
		return nil
	},
}

// printSchemaReport prints a formatted schema report using logger.
func printSchemaReport(l *zap.Logger, report *checks.SchemaReport, elapsed time.Duration) {
	l.Info("Schema check", zap.Bool("matched", report.Matched), zap.Duration("duration", elapsed))
	for name, table := range report.Tables {
		fields := []zap.Field{zap.String("table", name), zap.String("status", table.Status)}
		if len(table.MissingColumns) > 0 {
			fields = append(fields, zap.Strings("missing_columns", table.MissingColumns))
		}
		if len(table.TypeMismatches) > 0 {
			fields = append(fields, zap.Strings("type_mismatches", table.TypeMismatches))
		}
		l.Info("Table", fields...)
	}
	for _, e := range report.Errors {
		l.Warn("Schema error", zap.String("error", e))
	}
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

func init() {
	integrityCmd.PersistentFlags().BoolVar(&jsonFlag, "json", false, "Output as JSON")
	storageCmd.Flags().BoolVar(&fixFlag, "fix", false, "Create the bucket when it is missing")
	integrityCmd.AddCommand(schemaCmd)
	integrityCmd.AddCommand(storageCmd)
	RootCmd.AddCommand(integrityCmd)
}
