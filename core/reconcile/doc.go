// Package reconcile matches a batch of calibration measurements against the units in stock
// and finalizes the ones that are eligible.
//
// # Algorithm
//
// Validate gates the whole batch: an order reference, a client name and an origin serial
// column are required, otherwise nothing is attempted. Past the gate, Run walks the rows in
// order:
//
//  1. The origin serial is coerced to a string and trimmed. Empty rows are dropped.
//  2. The Target is asked whether a unit with that exact serial is Available. Unknown
//     serials and serials already Finalized are both reported as unmatched.
//  3. The optional cells are normalized to explicit strings ("" when missing).
//  4. Target.Finalize applies client, order, measurements and the Finalized status in a
//     single conditional update.
//
// Rows are independent. A failure on one row never rolls back earlier rows, and a store
// error stops the batch with the partial Result.
//
// # Dry Run
//
// With Options.DryRun the same steps run without Finalize. Serials matched earlier in the
// batch are treated as consumed, so duplicates report exactly what a live run would.
//
// # Usage
//
//	res, err := reconcile.Run(ctx, store, batch, reconcile.Options{})
//	if err != nil {
//	    return err
//	}
//	log.Info(res.Message())
package reconcile
