package commands_test

import (
	"testing"

	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateShipmentCommandHandler_Handle_CustomDims(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	dims := testDims(t)
	weight := 2.5
	cmd, err := commands.NewCreateShipmentCommand(orderID, nil, &dims, &weight)
	require.NoError(t, err)

	repo := new(MockShipmentRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ShipmentRepository").Return(repo).Once()
	repo.On("CountByOrder", mock.Anything, orderID).Return(2, nil).Once()
	repo.On("Add", mock.Anything, mock.AnythingOfType("*shipment.Shipment")).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateShipmentCommandHandler(factory)
	s, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, 2, s.ParcelIndex())
	assert.Equal(t, shipment.Pending, s.LabelState())
	assert.Nil(t, s.BoxPresetID())
	assert.True(t, dims.IsEqual(s.EffectiveDimensions()))
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestCreateShipmentCommandHandler_Handle_PresetDefaultWeight(t *testing.T) {
	ctx := t.Context()
	defaultWeight := 1.25
	preset := testPreset(t, "Small Box", &defaultWeight)
	presetID := preset.ID()
	cmd, err := commands.NewCreateShipmentCommand(kernel.NewUUID(), &presetID, nil, nil)
	require.NoError(t, err)

	shipments := new(MockShipmentRepository)
	presets := new(MockPresetRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("PresetRepository").Return(presets).Once()
	presets.On("Get", mock.Anything, presetID).Return(preset, nil).Once()
	uow.On("ShipmentRepository").Return(shipments).Once()
	shipments.On("CountByOrder", mock.Anything, mock.Anything).Return(0, nil).Once()
	shipments.On("Add", mock.Anything, mock.AnythingOfType("*shipment.Shipment")).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateShipmentCommandHandler(factory)
	s, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.NotNil(t, s.BoxPresetID())
	assert.Equal(t, "Small Box", s.BoxPresetName())
	assert.True(t, preset.Dimensions().IsEqual(s.EffectiveDimensions()))
	assert.InEpsilon(t, defaultWeight, s.Weight().Pounds(), 1e-9)
	presets.AssertExpectations(t)
	shipments.AssertExpectations(t)
}

func TestCreateShipmentCommandHandler_Handle_PresetWithoutDefaultWeightNeedsWeight(t *testing.T) {
	ctx := t.Context()
	preset := testPreset(t, "Bare Box", nil)
	presetID := preset.ID()
	cmd, err := commands.NewCreateShipmentCommand(kernel.NewUUID(), &presetID, nil, nil)
	require.NoError(t, err)

	presets := new(MockPresetRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("PresetRepository").Return(presets).Once()
	presets.On("Get", mock.Anything, presetID).Return(preset, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateShipmentCommandHandler(factory)
	_, err = h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestCreateShipmentCommandHandler_Handle_PresetNotFound(t *testing.T) {
	ctx := t.Context()
	presetID := kernel.NewUUID()
	cmd, err := commands.NewCreateShipmentCommand(kernel.NewUUID(), &presetID, nil, nil)
	require.NoError(t, err)

	presets := new(MockPresetRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("PresetRepository").Return(presets).Once()
	presets.On("Get", mock.Anything, presetID).
		Return(nil, errs.NewObjectNotFoundError("BoxPreset", presetID.String())).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateShipmentCommandHandler(factory)
	_, err = h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestCreateShipmentCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	factory := new(MockUoWFactory)
	h := commands.NewCreateShipmentCommandHandler(factory)
	_, err := h.Handle(ctx, commands.CreateShipmentCommand{})
	require.Error(t, err)
}
