// Package inventory owns the Unit table.
//
// The Store is the only writer: intake inserts Available units and the calibration
// reconciler finalizes them through the reconcile.Target methods. Finalize is a single
// conditional UPDATE on (serial_origin, status), so a unit can never be finalized twice.
//
// The Service is the read side. Query filters are bound as parameters with LIKE
// wildcards escaped, then confirmed with a case-sensitive substring check.
package inventory
