//go:build unit

package errs_test

import (
	"errors"
	"fmt"
	"testing"

	"venue-booking/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMark(t *testing.T) {
	sentinel := errs.New("time slot unavailable")
	cause := errors.New("CONFLICT: interval overlaps")

	t.Run("mark is matched by the standard errors.Is", func(t *testing.T) {
		err := errs.Mark(cause, sentinel)

		require.ErrorIs(t, err, sentinel)
	})

	t.Run("cause stays in the chain", func(t *testing.T) {
		err := errs.Mark(cause, sentinel)

		require.ErrorIs(t, err, cause)
		assert.Contains(t, err.Error(), "interval overlaps")
	})

	t.Run("nil cause returns the mark itself", func(t *testing.T) {
		err := errs.Mark(nil, sentinel)

		require.ErrorIs(t, err, sentinel)
	})

	t.Run("stacked marks all remain matchable", func(t *testing.T) {
		busy := errs.New("booking system busy")
		err := errs.Mark(errs.Mark(cause, sentinel), busy)

		assert.ErrorIs(t, err, sentinel)
		assert.ErrorIs(t, err, busy)
		assert.ErrorIs(t, err, cause)
	})

	t.Run("marked wrapped errors survive further wrapping", func(t *testing.T) {
		err := fmt.Errorf("create booking: %w", errs.Mark(cause, sentinel))

		require.ErrorIs(t, err, sentinel)
	})
}
