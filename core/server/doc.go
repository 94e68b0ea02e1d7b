// Package server holds the HTTP server configuration.
//
// The start command builds the Fiber application from this configuration:
// the listen port, the optional API key that protects every operator route,
// and the body limit applied to workbook uploads.
package server
