// Package logger builds the zap loggers used by the server and the CLI.
//
// New honours Config.Level (debug, info, warn, error) and Config.Format
// (json or console). Console is the fixed debug console logger the CLI
// falls back to when a command fails before configuration is loaded.
//
// # Scoped loggers
//
// WithRayID tags entries with the request RayID stored by the rayid middleware.
// WithOrder tags entries with the calibration order and client.
//
//	l := logger.WithRayID(log, c)
//	l.Error("Intake failed", zap.Error(err))
package logger
