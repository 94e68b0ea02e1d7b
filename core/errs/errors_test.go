package errs_test

import (
	"errors"
	"fmt"
	"testing"

	"traceability/core/errs"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestStore(t *testing.T) {
	t.Run("Nil", func(t *testing.T) {
		assert.NoError(t, errs.Store("insert", nil))
	})

	t.Run("Duplicate", func(t *testing.T) {
		err := errs.Store("insert model", fmt.Errorf("wrapped: %w", gorm.ErrDuplicatedKey))
		assert.ErrorIs(t, err, errs.ErrDuplicateKey)
		assert.NotErrorIs(t, err, errs.ErrStoreUnavailable)
	})

	t.Run("Other", func(t *testing.T) {
		err := errs.Store("query units", errors.New("connection refused"))
		assert.ErrorIs(t, err, errs.ErrStoreUnavailable)
		assert.Contains(t, err.Error(), "connection refused")
	})
}

func TestStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"Validation", errs.Validation("batch label is required"), fiber.StatusBadRequest},
		{"Duplicate", fmt.Errorf("x: %w", errs.ErrDuplicateKey), fiber.StatusConflict},
		{"NotEligible", errs.ErrNotEligible, fiber.StatusUnprocessableEntity},
		{"Store", errs.Store("op", errors.New("boom")), fiber.StatusServiceUnavailable},
		{"Unknown", errors.New("boom"), fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errs.StatusCode(tt.err))
		})
	}
}
