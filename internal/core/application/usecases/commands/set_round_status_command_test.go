package commands_test

import (
	"testing"

	"roundplanner/internal/core/application/usecases/commands"
	"roundplanner/internal/core/domain/model/kernel"
	"roundplanner/internal/core/domain/model/round"
	"roundplanner/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSetRoundStatusCommand(t *testing.T) {
	cmd, err := commands.NewSetRoundStatusCommand(kernel.NewUUID(), "in-progress")

	require.NoError(t, err)
	assert.Equal(t, round.InProgress, cmd.Status())
}

func TestNewSetRoundStatusCommand_InvalidStatus(t *testing.T) {
	_, err := commands.NewSetRoundStatusCommand(kernel.NewUUID(), "archived")

	assert.ErrorIs(t, err, round.ErrInvalidStatus)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
