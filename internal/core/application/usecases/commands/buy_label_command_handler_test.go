package commands_test

import (
	"errors"
	"testing"
	"time"

	"shipping/internal/core/application/quoting"
	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/core/ports"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/keymutex"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func confirmedLabel(t *testing.T) shipment.LabelInfo {
	t.Helper()
	cost, err := kernel.NewMoney(595, "USD")
	require.NoError(t, err)
	return shipment.LabelInfo{
		ProviderShipmentID: "es_ship_42",
		ProviderLabelID:    "es_label_42",
		Carrier:            "USPS",
		Service:            "Priority Mail",
		TrackingNumber:     "9400100000000000000042",
		LabelURL:           "https://labels.example.com/es_label_42.pdf",
		Cost:               cost,
	}
}

func quoteResult(t *testing.T, ids ...string) quoting.Result {
	t.Helper()
	rates := make([]shipment.Quote, 0, len(ids))
	for i, id := range ids {
		rates = append(rates, testQuote(t, id, int64(595+i*100)))
	}
	return quoting.Result{Rates: rates, ExpiresAt: time.Now().Add(time.Minute)}
}

func buyLabelUoW(ctx any, s *shipment.Shipment) (*MockUoW, *MockShipmentRepository, *MockShipFromRepository) {
	repo := new(MockShipmentRepository)
	shipFromRepo := new(MockShipFromRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ShipmentRepository").Return(repo)
	repo.On("Get", mock.Anything, s.ID()).Return(s, nil).Once()
	uow.On("ShipFromRepository").Return(shipFromRepo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	return uow, repo, shipFromRepo
}

func TestBuyLabelCommandHandler_Handle_Confirmed(t *testing.T) {
	ctx := t.Context()
	s := testShipment(t)
	dest := testAddress(t, "Jane Doe")
	cmd, err := commands.NewBuyLabelCommand(s.ID(), dest, "rate_cheap", false)
	require.NoError(t, err)

	uow, repo, shipFromRepo := buyLabelUoW(ctx, s)
	shipFromRepo.On("Get", mock.Anything).Return(testShipFrom(t), nil).Once()
	repo.On("Update", mock.Anything, s).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	quotes := &stubQuoteSource{res: quoteResult(t, "rate_cheap", "rate_pricey")}
	gateway := new(MockCarrierGateway)
	gateway.On("PurchaseLabel", mock.Anything, "rate_cheap", mock.Anything, dest, mock.Anything).
		Return(ports.PurchaseResult{Outcome: ports.OutcomeConfirmed, Label: confirmedLabel(t)}, nil).Once()

	h := commands.NewBuyLabelCommandHandler(factory, quotes, gateway, keymutex.New())
	res, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.False(t, res.PendingRefresh)
	assert.Equal(t, shipment.Generated, res.Shipment.LabelState())
	assert.Equal(t, "9400100000000000000042", res.Shipment.TrackingNumber())
	assert.Equal(t, "rate_cheap", res.Shipment.QuoteSelectedID())
	require.NotNil(t, res.Shipment.PurchasedAt())
	gateway.AssertExpectations(t)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestBuyLabelCommandHandler_Handle_PendingAsync(t *testing.T) {
	ctx := t.Context()
	s := testShipment(t)
	dest := testAddress(t, "Jane Doe")
	cmd, err := commands.NewBuyLabelCommand(s.ID(), dest, "", true)
	require.NoError(t, err)

	uow, repo, shipFromRepo := buyLabelUoW(ctx, s)
	shipFromRepo.On("Get", mock.Anything).Return(testShipFrom(t), nil).Once()
	repo.On("Update", mock.Anything, s).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	quotes := &stubQuoteSource{res: quoteResult(t, "rate_cheap")}
	gateway := new(MockCarrierGateway)
	gateway.On("PurchaseLabel", mock.Anything, "rate_cheap", mock.Anything, dest, mock.Anything).
		Return(ports.PurchaseResult{Outcome: ports.OutcomePendingAsync, ProviderShipmentID: "es_ship_9"}, nil).Once()

	h := commands.NewBuyLabelCommandHandler(factory, quotes, gateway, keymutex.New())
	res, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.True(t, res.PendingRefresh)
	assert.Equal(t, shipment.Pending, res.Shipment.LabelState())
	assert.Equal(t, "es_ship_9", res.Shipment.ProviderShipmentID())
	assert.True(t, res.Shipment.NeedsStatusRefresh())
}

func TestBuyLabelCommandHandler_Handle_RejectedPersistsFailedState(t *testing.T) {
	ctx := t.Context()
	s := testShipment(t)
	dest := testAddress(t, "Jane Doe")
	cmd, err := commands.NewBuyLabelCommand(s.ID(), dest, "rate_cheap", false)
	require.NoError(t, err)

	uow, repo, shipFromRepo := buyLabelUoW(ctx, s)
	shipFromRepo.On("Get", mock.Anything).Return(testShipFrom(t), nil).Once()
	repo.On("Update", mock.Anything, s).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	quotes := &stubQuoteSource{res: quoteResult(t, "rate_cheap")}
	gateway := new(MockCarrierGateway)
	gateway.On("PurchaseLabel", mock.Anything, "rate_cheap", mock.Anything, dest, mock.Anything).
		Return(ports.PurchaseResult{Outcome: ports.OutcomeRejected, RejectionDetail: "address not serviceable"}, nil).Once()

	h := commands.NewBuyLabelCommandHandler(factory, quotes, gateway, keymutex.New())
	res, err := h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrProviderRejected)
	// The failed state and the provider's detail are persisted.
	require.NotNil(t, res.Shipment)
	assert.Equal(t, shipment.Failed, res.Shipment.LabelState())
	assert.Equal(t, "address not serviceable", res.Shipment.ErrorMessage())
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestBuyLabelCommandHandler_Handle_TransportFailureChangesNothing(t *testing.T) {
	ctx := t.Context()
	s := testShipment(t)
	dest := testAddress(t, "Jane Doe")
	cmd, err := commands.NewBuyLabelCommand(s.ID(), dest, "rate_cheap", false)
	require.NoError(t, err)

	uow, repo, shipFromRepo := buyLabelUoW(ctx, s)
	shipFromRepo.On("Get", mock.Anything).Return(testShipFrom(t), nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	quotes := &stubQuoteSource{res: quoteResult(t, "rate_cheap")}
	gateway := new(MockCarrierGateway)
	gateway.On("PurchaseLabel", mock.Anything, "rate_cheap", mock.Anything, dest, mock.Anything).
		Return(ports.PurchaseResult{}, errs.NewProviderUnavailableError("purchase label", errors.New("timeout"))).Once()

	h := commands.NewBuyLabelCommandHandler(factory, quotes, gateway, keymutex.New())
	_, err = h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrProviderUnavailable)
	assert.True(t, errs.IsRetryable(err))
	// No state was written: the purchase may have gone through provider-side.
	assert.Equal(t, shipment.Pending, s.LabelState())
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestBuyLabelCommandHandler_Handle_StaleQuoteID(t *testing.T) {
	ctx := t.Context()
	s := testShipment(t)
	dest := testAddress(t, "Jane Doe")
	cmd, err := commands.NewBuyLabelCommand(s.ID(), dest, "rate_gone", false)
	require.NoError(t, err)

	uow, repo, shipFromRepo := buyLabelUoW(ctx, s)
	shipFromRepo.On("Get", mock.Anything).Return(testShipFrom(t), nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	quotes := &stubQuoteSource{res: quoteResult(t, "rate_cheap")}
	gateway := new(MockCarrierGateway)

	h := commands.NewBuyLabelCommandHandler(factory, quotes, gateway, keymutex.New())
	_, err = h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrStaleQuote)
	gateway.AssertNotCalled(t, "PurchaseLabel",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestBuyLabelCommandHandler_Handle_NoSelectionWithoutRefreshRejected(t *testing.T) {
	ctx := t.Context()
	s := testShipment(t)
	require.Empty(t, s.QuoteSelectedID())
	dest := testAddress(t, "Jane Doe")
	cmd, err := commands.NewBuyLabelCommand(s.ID(), dest, "", false)
	require.NoError(t, err)

	uow, repo, shipFromRepo := buyLabelUoW(ctx, s)
	shipFromRepo.On("Get", mock.Anything).Return(testShipFrom(t), nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	// Rates would be available, but without a selection or a refresh the
	// handler must not pick one on its own.
	quotes := &stubQuoteSource{res: quoteResult(t, "rate_cheap")}
	gateway := new(MockCarrierGateway)

	h := commands.NewBuyLabelCommandHandler(factory, quotes, gateway, keymutex.New())
	_, err = h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrNoQuoteSelected)
	assert.Zero(t, quotes.calls)
	gateway.AssertNotCalled(t, "PurchaseLabel",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	assert.Equal(t, shipment.Pending, s.LabelState())
	assert.Empty(t, s.QuoteSelectedID())
}

func TestBuyLabelCommandHandler_Handle_StoredSelectionUsedWithoutRefresh(t *testing.T) {
	ctx := t.Context()
	s := testShipment(t)
	require.NoError(t, s.SelectQuote("rate_stored", time.Now().UTC()))
	dest := testAddress(t, "Jane Doe")
	cmd, err := commands.NewBuyLabelCommand(s.ID(), dest, "", false)
	require.NoError(t, err)

	uow, repo, shipFromRepo := buyLabelUoW(ctx, s)
	shipFromRepo.On("Get", mock.Anything).Return(testShipFrom(t), nil).Once()
	repo.On("Update", mock.Anything, s).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	quotes := &stubQuoteSource{res: quoteResult(t, "rate_cheap", "rate_stored")}
	gateway := new(MockCarrierGateway)
	gateway.On("PurchaseLabel", mock.Anything, "rate_stored", mock.Anything, dest, mock.Anything).
		Return(ports.PurchaseResult{Outcome: ports.OutcomeConfirmed, Label: confirmedLabel(t)}, nil).Once()

	h := commands.NewBuyLabelCommandHandler(factory, quotes, gateway, keymutex.New())
	res, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, "rate_stored", res.Shipment.QuoteSelectedID())
	gateway.AssertExpectations(t)
}

func TestBuyLabelCommandHandler_Handle_GeneratedShipmentRejected(t *testing.T) {
	ctx := t.Context()
	s := testGeneratedShipment(t)
	dest := testAddress(t, "Jane Doe")
	cmd, err := commands.NewBuyLabelCommand(s.ID(), dest, "", false)
	require.NoError(t, err)

	repo := new(MockShipmentRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ShipmentRepository").Return(repo).Once()
	repo.On("Get", mock.Anything, s.ID()).Return(s, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewBuyLabelCommandHandler(factory, &stubQuoteSource{}, new(MockCarrierGateway), keymutex.New())
	_, err = h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrInvalidState)
}

func TestBuyLabelCommandHandler_Handle_ConcurrentAttemptRejected(t *testing.T) {
	ctx := t.Context()
	s := testShipment(t)
	dest := testAddress(t, "Jane Doe")
	cmd, err := commands.NewBuyLabelCommand(s.ID(), dest, "", false)
	require.NoError(t, err)

	locks := keymutex.New()
	locks.Lock(s.ID().String())
	defer locks.Unlock(s.ID().String())

	factory := new(MockUoWFactory)
	h := commands.NewBuyLabelCommandHandler(factory, &stubQuoteSource{}, new(MockCarrierGateway), locks)
	_, err = h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrPurchaseAttemptInFlight)
	factory.AssertNotCalled(t, "Create")
}

func TestBuyLabelCommandHandler_Handle_RetryAfterFailureClearsError(t *testing.T) {
	ctx := t.Context()
	s := testShipment(t)
	require.NoError(t, s.ApplyPurchaseRejected("address not serviceable", time.Now().UTC()))
	require.Equal(t, shipment.Failed, s.LabelState())

	dest := testAddress(t, "Jane Doe")
	cmd, err := commands.NewBuyLabelCommand(s.ID(), dest, "", true)
	require.NoError(t, err)

	uow, repo, shipFromRepo := buyLabelUoW(ctx, s)
	shipFromRepo.On("Get", mock.Anything).Return(testShipFrom(t), nil).Once()
	repo.On("Update", mock.Anything, s).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	quotes := &stubQuoteSource{res: quoteResult(t, "rate_cheap")}
	gateway := new(MockCarrierGateway)
	gateway.On("PurchaseLabel", mock.Anything, "rate_cheap", mock.Anything, dest, mock.Anything).
		Return(ports.PurchaseResult{Outcome: ports.OutcomeConfirmed, Label: confirmedLabel(t)}, nil).Once()

	h := commands.NewBuyLabelCommandHandler(factory, quotes, gateway, keymutex.New())
	res, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, shipment.Generated, res.Shipment.LabelState())
	assert.Empty(t, res.Shipment.ErrorMessage())
}
