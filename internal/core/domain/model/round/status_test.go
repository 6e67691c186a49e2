package round_test

import (
	"fmt"
	"testing"

	"roundplanner/internal/core/domain/model/round"
	"roundplanner/internal/core/domain/model/shipment"
	"roundplanner/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	t.Run("should parse wire names", func(t *testing.T) {
		cases := map[string]round.Status{
			"assigned":    round.Assigned,
			"in-progress": round.InProgress,
			"completed":   round.Completed,
		}

		for name, want := range cases {
			t.Run(name, func(t *testing.T) {
				got, err := round.ParseStatus(name)

				require.NoError(t, err)
				assert.Equal(t, want, got)
				assert.Equal(t, name, got.String())
			})
		}
	})

	t.Run("should reject unknown names", func(t *testing.T) {
		for _, name := range []string{"", "Completed", "in_progress", "archived"} {
			t.Run(fmt.Sprintf("%q", name), func(t *testing.T) {
				got, err := round.ParseStatus(name)

				require.Error(t, err)
				assert.Equal(t, round.Unknown, got)
				assert.ErrorIs(t, err, round.ErrInvalidStatus)
				assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
			})
		}
	})
}

func TestStatus_Validate(t *testing.T) {
	require.NoError(t, round.Assigned.Validate())
	require.NoError(t, round.InProgress.Validate())
	require.NoError(t, round.Completed.Validate())

	for _, s := range []round.Status{round.Unknown, round.Status(4), round.Status(-1)} {
		err := s.Validate()
		assert.ErrorIs(t, err, round.ErrInvalidStatus, "status %d", int(s))
	}
	assert.Equal(t, "unknown", round.Status(42).String())
}

func TestStatus_ValidateTransition(t *testing.T) {
	allowed := []struct {
		from, to round.Status
	}{
		{round.Assigned, round.Assigned},
		{round.Assigned, round.InProgress},
		{round.Assigned, round.Completed},
		{round.InProgress, round.Assigned},
		{round.InProgress, round.InProgress},
		{round.InProgress, round.Completed},
		{round.Completed, round.Completed},
	}
	for _, tc := range allowed {
		t.Run(fmt.Sprintf("%s to %s is allowed", tc.from, tc.to), func(t *testing.T) {
			require.NoError(t, tc.from.ValidateTransition(tc.to))
		})
	}

	t.Run("should not leave completed", func(t *testing.T) {
		for _, to := range []round.Status{round.Assigned, round.InProgress} {
			err := round.Completed.ValidateTransition(to)
			assert.ErrorIs(t, err, round.ErrStatusTransitionNotAllowed)
			assert.NotErrorIs(t, err, round.ErrInvalidStatus)
		}
	})

	t.Run("should reject invalid target", func(t *testing.T) {
		err := round.Assigned.ValidateTransition(round.Unknown)
		assert.ErrorIs(t, err, round.ErrInvalidStatus)
	})
}

func TestStatus_ShipmentCascade(t *testing.T) {
	cases := map[round.Status]shipment.Status{
		round.Completed:  shipment.Delivered,
		round.InProgress: shipment.InTransit,
		round.Assigned:   shipment.AssignedToRound,
	}

	for from, want := range cases {
		got, ok := from.ShipmentCascade()
		assert.True(t, ok)
		assert.Equal(t, want, got)
	}

	_, ok := round.Unknown.ShipmentCascade()
	assert.False(t, ok)
}
