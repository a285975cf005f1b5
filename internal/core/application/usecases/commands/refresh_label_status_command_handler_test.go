package commands_test

import (
	"errors"
	"testing"
	"time"

	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/core/ports"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/keymutex"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func awaitingShipment(t *testing.T) *shipment.Shipment {
	t.Helper()
	s := testShipment(t)
	require.NoError(t, s.ApplyPurchasePending("es_ship_7", time.Now().UTC()))
	require.True(t, s.NeedsStatusRefresh())
	return s
}

func TestRefreshLabelStatusCommandHandler_Handle_Resolved(t *testing.T) {
	ctx := t.Context()
	s := awaitingShipment(t)
	cmd, err := commands.NewRefreshLabelStatusCommand(s.ID())
	require.NoError(t, err)

	repo := new(MockShipmentRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ShipmentRepository").Return(repo).Twice(),
		repo.On("Get", mock.Anything, s.ID()).Return(s, nil).Once(),
		repo.On("Update", mock.Anything, s).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	gateway := new(MockCarrierGateway)
	gateway.On("GetLabelStatus", mock.Anything, "es_ship_7").
		Return(ports.PurchaseResult{Outcome: ports.OutcomeConfirmed, Label: confirmedLabel(t)}, nil).Once()

	h := commands.NewRefreshLabelStatusCommandHandler(factory, gateway, keymutex.New())
	res, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.True(t, res.Refreshed)
	assert.False(t, res.PendingRefresh)
	assert.Equal(t, shipment.Generated, res.Shipment.LabelState())
	assert.False(t, res.Shipment.NeedsStatusRefresh())
	gateway.AssertExpectations(t)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestRefreshLabelStatusCommandHandler_Handle_StillPending(t *testing.T) {
	ctx := t.Context()
	s := awaitingShipment(t)
	cmd, err := commands.NewRefreshLabelStatusCommand(s.ID())
	require.NoError(t, err)

	repo := new(MockShipmentRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ShipmentRepository").Return(repo).Once()
	repo.On("Get", mock.Anything, s.ID()).Return(s, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	gateway := new(MockCarrierGateway)
	gateway.On("GetLabelStatus", mock.Anything, "es_ship_7").
		Return(ports.PurchaseResult{Outcome: ports.OutcomePendingAsync}, nil).Once()

	h := commands.NewRefreshLabelStatusCommandHandler(factory, gateway, keymutex.New())
	res, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.False(t, res.Refreshed)
	assert.True(t, res.PendingRefresh)
	assert.True(t, res.Shipment.NeedsStatusRefresh())
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestRefreshLabelStatusCommandHandler_Handle_RejectionPersistsFailedState(t *testing.T) {
	ctx := t.Context()
	s := awaitingShipment(t)
	cmd, err := commands.NewRefreshLabelStatusCommand(s.ID())
	require.NoError(t, err)

	repo := new(MockShipmentRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ShipmentRepository").Return(repo).Twice()
	repo.On("Get", mock.Anything, s.ID()).Return(s, nil).Once()
	repo.On("Update", mock.Anything, s).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	gateway := new(MockCarrierGateway)
	gateway.On("GetLabelStatus", mock.Anything, "es_ship_7").
		Return(ports.PurchaseResult{Outcome: ports.OutcomeRejected, RejectionDetail: "parcel over weight limit"}, nil).Once()

	h := commands.NewRefreshLabelStatusCommandHandler(factory, gateway, keymutex.New())
	res, err := h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrProviderRejected)
	assert.True(t, res.Refreshed)
	assert.Equal(t, shipment.Failed, res.Shipment.LabelState())
	assert.Equal(t, "parcel over weight limit", res.Shipment.ErrorMessage())
}

func TestRefreshLabelStatusCommandHandler_Handle_NoRefreshNeeded(t *testing.T) {
	ctx := t.Context()
	s := testShipment(t) // never purchased, nothing to poll
	cmd, err := commands.NewRefreshLabelStatusCommand(s.ID())
	require.NoError(t, err)

	repo := new(MockShipmentRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ShipmentRepository").Return(repo).Once()
	repo.On("Get", mock.Anything, s.ID()).Return(s, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	gateway := new(MockCarrierGateway)

	h := commands.NewRefreshLabelStatusCommandHandler(factory, gateway, keymutex.New())
	res, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.False(t, res.Refreshed)
	assert.False(t, res.PendingRefresh)
	gateway.AssertNotCalled(t, "GetLabelStatus", mock.Anything, mock.Anything)
}

func TestRefreshLabelStatusCommandHandler_Handle_TransportFailureChangesNothing(t *testing.T) {
	ctx := t.Context()
	s := awaitingShipment(t)
	cmd, err := commands.NewRefreshLabelStatusCommand(s.ID())
	require.NoError(t, err)

	repo := new(MockShipmentRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ShipmentRepository").Return(repo).Once()
	repo.On("Get", mock.Anything, s.ID()).Return(s, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	gateway := new(MockCarrierGateway)
	gateway.On("GetLabelStatus", mock.Anything, "es_ship_7").
		Return(ports.PurchaseResult{}, errs.NewProviderUnavailableError("label status", errors.New("timeout"))).Once()

	h := commands.NewRefreshLabelStatusCommandHandler(factory, gateway, keymutex.New())
	_, err = h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.True(t, errs.IsRetryable(err))
	assert.True(t, s.NeedsStatusRefresh())
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}
