package queries_test

import (
	"context"
	"testing"
	"time"

	"shipping/internal/core/application/quoting"
	"shipping/internal/core/application/usecases/queries"
	"shipping/internal/core/domain/model/catalog"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/core/ports"
	"shipping/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockShipmentRepository struct{ mock.Mock }

func (m *MockShipmentRepository) Add(_ context.Context, _ *shipment.Shipment) error    { return nil }
func (m *MockShipmentRepository) Update(_ context.Context, _ *shipment.Shipment) error { return nil }
func (m *MockShipmentRepository) Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipment.Shipment), args.Error(1)
}
func (m *MockShipmentRepository) GetAllByOrder(_ context.Context, _ kernel.UUID) ([]*shipment.Shipment, error) {
	return nil, nil
}
func (m *MockShipmentRepository) CountByOrder(_ context.Context, _ kernel.UUID) (int, error) {
	return 0, nil
}
func (m *MockShipmentRepository) GetAllAwaitingStatusRefresh(_ context.Context) ([]*shipment.Shipment, error) {
	return nil, nil
}
func (m *MockShipmentRepository) Delete(_ context.Context, _ kernel.UUID) error { return nil }

type MockPresetRepository struct{ mock.Mock }

func (m *MockPresetRepository) Add(_ context.Context, _ *catalog.BoxPreset) error    { return nil }
func (m *MockPresetRepository) Update(_ context.Context, _ *catalog.BoxPreset) error { return nil }
func (m *MockPresetRepository) Get(ctx context.Context, id kernel.UUID) (*catalog.BoxPreset, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.BoxPreset), args.Error(1)
}
func (m *MockPresetRepository) GetAll(_ context.Context) ([]*catalog.BoxPreset, error) {
	return nil, nil
}
func (m *MockPresetRepository) Delete(_ context.Context, _ kernel.UUID) error { return nil }

type MockShipFromRepository struct{ mock.Mock }

func (m *MockShipFromRepository) Get(ctx context.Context) (*catalog.ShipFromSettings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.ShipFromSettings), args.Error(1)
}
func (m *MockShipFromRepository) Save(_ context.Context, _ *catalog.ShipFromSettings) error {
	return nil
}

type stubQuoteFetcher struct {
	res        quoting.Result
	err        error
	lastParcel ports.ParcelSpec
	lastForce  bool
	adHocCalls int
}

func (s *stubQuoteFetcher) GetQuotes(
	_ context.Context, _ kernel.UUID, _, _ kernel.Address, parcel ports.ParcelSpec, force bool,
) (quoting.Result, error) {
	s.lastParcel = parcel
	s.lastForce = force
	return s.res, s.err
}

func (s *stubQuoteFetcher) GetAdHocQuotes(
	_ context.Context, _, _ kernel.Address, parcel ports.ParcelSpec,
) (quoting.Result, error) {
	s.adHocCalls++
	s.lastParcel = parcel
	return s.res, s.err
}

func testAddress(t *testing.T, name string) kernel.Address {
	t.Helper()
	addr, err := kernel.NewAddress(name, "", "1 Depot Rd", "", "Springfield", "IL", "62701", "US", "")
	require.NoError(t, err)
	return addr
}

func testShipFrom(t *testing.T) *catalog.ShipFromSettings {
	t.Helper()
	settings, err := catalog.NewShipFromSettings(testAddress(t, "Warehouse"), time.Now().UTC())
	require.NoError(t, err)
	return settings
}

func testShipmentWithPreset(t *testing.T, preset *catalog.BoxPreset) *shipment.Shipment {
	t.Helper()
	source, err := shipment.NewPresetDimensionSource(preset.ID(), preset.Name(), preset.Dimensions())
	require.NoError(t, err)
	weight, err := kernel.NewWeight(2.5)
	require.NoError(t, err)
	s, err := shipment.NewShipment(
		kernel.NewUUID(), kernel.NewUUID(), 0, source, weight, time.Now().UTC())
	require.NoError(t, err)
	return s
}

func testRateResult(t *testing.T) quoting.Result {
	t.Helper()
	price, err := kernel.NewMoney(595, "USD")
	require.NoError(t, err)
	rate, err := shipment.NewQuote("rate_a", "USPS", "Priority Mail", price, nil, nil)
	require.NoError(t, err)
	return quoting.Result{Rates: []shipment.Quote{rate}, ExpiresAt: time.Now().Add(time.Minute)}
}

func TestGetShipmentQuotesQueryHandler_Handle_LivePresetDimensionsWin(t *testing.T) {
	ctx := t.Context()
	dims, err := kernel.NewDimensions(12, 10, 4)
	require.NoError(t, err)
	preset, err := catalog.NewBoxPreset(kernel.NewUUID(), "Medium Box", dims, nil, time.Now().UTC())
	require.NoError(t, err)
	s := testShipmentWithPreset(t, preset)

	// The preset grew after the shipment snapshotted it.
	grown, err := kernel.NewDimensions(14, 12, 6)
	require.NoError(t, err)
	require.NoError(t, preset.Update("Medium Box", grown, nil, time.Now().UTC()))

	shipments := new(MockShipmentRepository)
	shipments.On("Get", mock.Anything, s.ID()).Return(s, nil).Once()
	presets := new(MockPresetRepository)
	presets.On("Get", mock.Anything, preset.ID()).Return(preset, nil).Once()
	shipFrom := new(MockShipFromRepository)
	shipFrom.On("Get", mock.Anything).Return(testShipFrom(t), nil).Once()
	fetcher := &stubQuoteFetcher{res: testRateResult(t)}

	h := queries.NewGetShipmentQuotesQueryHandler(shipments, presets, shipFrom, fetcher)
	query, err := queries.NewGetShipmentQuotesQuery(s.ID(), testAddress(t, "Jane Doe"), false)
	require.NoError(t, err)

	res, err := h.Handle(ctx, query)
	require.NoError(t, err)
	require.Len(t, res.Rates, 1)
	assert.Equal(t, "rate_a", res.Rates[0].QuoteID)
	assert.Equal(t, int64(595), res.Rates[0].PriceCents)
	assert.True(t, grown.IsEqual(fetcher.lastParcel.Dimensions))
}

func TestGetShipmentQuotesQueryHandler_Handle_DeletedPresetFallsBackToSnapshot(t *testing.T) {
	ctx := t.Context()
	dims, err := kernel.NewDimensions(12, 10, 4)
	require.NoError(t, err)
	preset, err := catalog.NewBoxPreset(kernel.NewUUID(), "Medium Box", dims, nil, time.Now().UTC())
	require.NoError(t, err)
	s := testShipmentWithPreset(t, preset)

	shipments := new(MockShipmentRepository)
	shipments.On("Get", mock.Anything, s.ID()).Return(s, nil).Once()
	presets := new(MockPresetRepository)
	presets.On("Get", mock.Anything, preset.ID()).
		Return(nil, errs.NewObjectNotFoundError("BoxPreset", preset.ID().String())).Once()
	shipFrom := new(MockShipFromRepository)
	shipFrom.On("Get", mock.Anything).Return(testShipFrom(t), nil).Once()
	fetcher := &stubQuoteFetcher{res: testRateResult(t)}

	h := queries.NewGetShipmentQuotesQueryHandler(shipments, presets, shipFrom, fetcher)
	query, err := queries.NewGetShipmentQuotesQuery(s.ID(), testAddress(t, "Jane Doe"), true)
	require.NoError(t, err)

	_, err = h.Handle(ctx, query)
	require.NoError(t, err)
	assert.True(t, dims.IsEqual(fetcher.lastParcel.Dimensions))
	assert.True(t, fetcher.lastForce)
}

func TestGetShipmentQuotesQueryHandler_HandleAdHoc(t *testing.T) {
	ctx := t.Context()
	dims, err := kernel.NewDimensions(6, 6, 6)
	require.NoError(t, err)
	weight, err := kernel.NewWeight(1.0)
	require.NoError(t, err)

	shipFrom := new(MockShipFromRepository)
	shipFrom.On("Get", mock.Anything).Return(testShipFrom(t), nil).Once()
	fetcher := &stubQuoteFetcher{res: testRateResult(t)}

	h := queries.NewGetShipmentQuotesQueryHandler(
		new(MockShipmentRepository), new(MockPresetRepository), shipFrom, fetcher)
	query, err := queries.NewGetAdHocQuotesQuery(dims, weight, testAddress(t, "Jane Doe"))
	require.NoError(t, err)

	res, err := h.HandleAdHoc(ctx, query)
	require.NoError(t, err)
	assert.Equal(t, 1, fetcher.adHocCalls)
	assert.Len(t, res.Rates, 1)
	assert.True(t, dims.IsEqual(fetcher.lastParcel.Dimensions))
}
