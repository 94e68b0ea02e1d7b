package reconcile

import "context"

// Target is the inventory the reconciler matches rows against.
// Implementations run every call on the same reserved store connection.
type Target interface {
	// IsAvailable reports whether a unit with this exact origin serial exists in Available status.
	IsAvailable(ctx context.Context, originSerial string) (bool, error)

	// Finalize applies the assignment and moves the unit to Finalized, provided it is still
	// Available. It returns false when no unit was transitioned.
	Finalize(ctx context.Context, originSerial string, a Assignment) (bool, error)
}
