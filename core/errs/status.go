package errs

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// StatusCode maps an error onto the HTTP status returned to operators.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, ErrDuplicateKey):
		return fiber.StatusConflict
	case errors.Is(err, ErrNotEligible):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, ErrStoreUnavailable):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}
