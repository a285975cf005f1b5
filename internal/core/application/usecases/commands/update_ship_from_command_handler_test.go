package commands_test

import (
	"testing"

	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUpdateShipFromCommandHandler_Handle_ReplacesExisting(t *testing.T) {
	ctx := t.Context()
	existing := testShipFrom(t)
	newAddr := testAddress(t, "New Warehouse")
	cmd, err := commands.NewUpdateShipFromCommand(newAddr)
	require.NoError(t, err)

	repo := new(MockShipFromRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ShipFromRepository").Return(repo).Twice(),
		repo.On("Get", mock.Anything).Return(existing, nil).Once(),
		repo.On("Save", mock.Anything, existing).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockShipFromUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateShipFromCommandHandler(factory)
	settings, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, "New Warehouse", settings.Address().Name())
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestUpdateShipFromCommandHandler_Handle_CreatesWhenAbsent(t *testing.T) {
	ctx := t.Context()
	addr := testAddress(t, "First Warehouse")
	cmd, err := commands.NewUpdateShipFromCommand(addr)
	require.NoError(t, err)

	repo := new(MockShipFromRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ShipFromRepository").Return(repo).Twice()
	repo.On("Get", mock.Anything).
		Return(nil, errs.NewObjectNotFoundError("ShipFromSettings", "singleton")).Once()
	repo.On("Save", mock.Anything, mock.AnythingOfType("*catalog.ShipFromSettings")).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockShipFromUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateShipFromCommandHandler(factory)
	settings, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, "First Warehouse", settings.Address().Name())
	repo.AssertExpectations(t)
}
