// Package utils provides common utility functions for the traceability service.
// It includes the value coercion used when reading spreadsheet cells and JSON rows,
// plus other shared logic that doesn't fit into domain-specific packages.
package utils
