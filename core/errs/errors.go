package errs

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	// ErrValidation marks a request rejected before any processing started.
	ErrValidation = errors.New("validation failed")
	// ErrDuplicateKey marks an insert that collided with an existing unique key.
	ErrDuplicateKey = errors.New("duplicate key")
	// ErrNotEligible marks a serial that is unknown or no longer Available.
	ErrNotEligible = errors.New("not eligible")
	// ErrStoreUnavailable marks a failure of the underlying persistence layer.
	ErrStoreUnavailable = errors.New("store unavailable")
)

// Validation returns an ErrValidation carrying a formatted reason.
func Validation(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// Store classifies a gorm error. Duplicate key violations become ErrDuplicateKey,
// anything else becomes ErrStoreUnavailable. A nil error stays nil.
func Store(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%s: %w", op, ErrDuplicateKey)
	}
	return fmt.Errorf("%s: %w: %v", op, ErrStoreUnavailable, err)
}
