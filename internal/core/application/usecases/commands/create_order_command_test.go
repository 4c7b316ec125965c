package commands_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreateOrderCommand_ValidInput(t *testing.T) {
	id, customer := kernel.NewUUID(), kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(id, customer, parcelDraft(t, "50.00"))
	require.NoError(t, err)
	assert.Equal(t, id, cmd.OrderID())
	assert.Equal(t, customer, cmd.RequesterID())
	assert.Equal(t, order.TypeParcel, cmd.Type())

	params := cmd.Params("Riyadh")
	assert.Equal(t, "Riyadh", params.Region)
	assert.Equal(t, order.PaymentCash, params.PaymentMethod)
}

func TestNewCreateOrderCommand_InvalidInput(t *testing.T) {
	draft := parcelDraft(t, "50.00")
	draft.Type = "boat"
	draft.PaymentMethod = ""
	draft.Price = decimal.Zero

	_, err := commands.NewCreateOrderCommand(kernel.UUID{}, kernel.NewUUID(), draft)
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestNewRateOrderCommand_ScoreOutOfRange(t *testing.T) {
	_, err := commands.NewRateOrderCommand(kernel.NewUUID(), kernel.NewUUID(), 6, "")
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	_, err = commands.NewRateOrderCommand(kernel.NewUUID(), kernel.NewUUID(), 0, "")
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}

func TestNewSetDriverStatusCommand_UnknownAvailability(t *testing.T) {
	_, err := commands.NewSetDriverStatusCommand(kernel.NewUUID(), "sleeping")
	require.True(t, errs.IsValidation(err))
}
