// Package maintenance provides the administrative operations on the store.
//
// # Operations
//
//   - Reset: drops the units, models and clients tables and recreates them empty.
//   - Schema: compares the live columns with the gorm models. Reset is the only
//     migration path, so a mismatch tells the operator a reset is due.
//   - Storage: checks that the workbook archive bucket exists (supports ?fix=true).
//
// # HTTP Endpoints
//
//   - POST /maintenance/reset
//   - GET /maintenance/schema
//   - GET /maintenance/storage
package maintenance
