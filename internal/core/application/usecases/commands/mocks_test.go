package commands_test

import (
	"context"
	"testing"
	"time"

	"shipping/internal/core/application/quoting"
	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/domain/model/catalog"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockShipmentRepository struct{ mock.Mock }

func (m *MockShipmentRepository) Add(ctx context.Context, s *shipment.Shipment) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}
func (m *MockShipmentRepository) Update(ctx context.Context, s *shipment.Shipment) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}
func (m *MockShipmentRepository) Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipment.Shipment), args.Error(1)
}
func (m *MockShipmentRepository) GetAllByOrder(ctx context.Context, orderID kernel.UUID) ([]*shipment.Shipment, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*shipment.Shipment), args.Error(1)
}
func (m *MockShipmentRepository) CountByOrder(ctx context.Context, orderID kernel.UUID) (int, error) {
	args := m.Called(ctx, orderID)
	return args.Int(0), args.Error(1)
}
func (m *MockShipmentRepository) GetAllAwaitingStatusRefresh(ctx context.Context) ([]*shipment.Shipment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*shipment.Shipment), args.Error(1)
}
func (m *MockShipmentRepository) Delete(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockPresetRepository struct{ mock.Mock }

func (m *MockPresetRepository) Add(ctx context.Context, p *catalog.BoxPreset) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
func (m *MockPresetRepository) Update(ctx context.Context, p *catalog.BoxPreset) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
func (m *MockPresetRepository) Get(ctx context.Context, id kernel.UUID) (*catalog.BoxPreset, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.BoxPreset), args.Error(1)
}
func (m *MockPresetRepository) GetAll(ctx context.Context) ([]*catalog.BoxPreset, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*catalog.BoxPreset), args.Error(1)
}
func (m *MockPresetRepository) Delete(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockShipFromRepository struct{ mock.Mock }

func (m *MockShipFromRepository) Get(ctx context.Context) (*catalog.ShipFromSettings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.ShipFromSettings), args.Error(1)
}
func (m *MockShipFromRepository) Save(ctx context.Context, s *catalog.ShipFromSettings) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

// MockUoW satisfies every unit-of-work interface in the commands package.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockUoW) ShipmentRepository() ports.ShipmentRepository {
	args := m.Called()
	return args.Get(0).(ports.ShipmentRepository)
}
func (m *MockUoW) PresetRepository() ports.PresetRepository {
	args := m.Called()
	return args.Get(0).(ports.PresetRepository)
}
func (m *MockUoW) ShipFromRepository() ports.ShipFromRepository {
	args := m.Called()
	return args.Get(0).(ports.ShipFromRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockShipmentUoWFactory struct{ mock.Mock }

func (m *MockShipmentUoWFactory) Create() commands.ShipmentUoW {
	args := m.Called()
	return args.Get(0).(commands.ShipmentUoW)
}

type MockCatalogUoWFactory struct{ mock.Mock }

func (m *MockCatalogUoWFactory) Create() commands.CatalogUoW {
	args := m.Called()
	return args.Get(0).(commands.CatalogUoW)
}

type MockShipFromUoWFactory struct{ mock.Mock }

func (m *MockShipFromUoWFactory) Create() commands.ShipFromUoW {
	args := m.Called()
	return args.Get(0).(commands.ShipFromUoW)
}

type MockCarrierGateway struct{ mock.Mock }

func (m *MockCarrierGateway) QuoteRates(
	ctx context.Context, shipFrom, destination kernel.Address, parcel ports.ParcelSpec,
) (ports.RateQuoteResult, error) {
	args := m.Called(ctx, shipFrom, destination, parcel)
	return args.Get(0).(ports.RateQuoteResult), args.Error(1)
}
func (m *MockCarrierGateway) PurchaseLabel(
	ctx context.Context, quoteID string, shipFrom, destination kernel.Address, parcel ports.ParcelSpec,
) (ports.PurchaseResult, error) {
	args := m.Called(ctx, quoteID, shipFrom, destination, parcel)
	return args.Get(0).(ports.PurchaseResult), args.Error(1)
}
func (m *MockCarrierGateway) GetLabelStatus(
	ctx context.Context, providerShipmentID string,
) (ports.PurchaseResult, error) {
	args := m.Called(ctx, providerShipmentID)
	return args.Get(0).(ports.PurchaseResult), args.Error(1)
}

// stubQuoteSource returns canned quote results without caching.
type stubQuoteSource struct {
	res         quoting.Result
	err         error
	calls       int
	invalidated []kernel.UUID
}

func (s *stubQuoteSource) GetQuotes(
	_ context.Context, _ kernel.UUID, _, _ kernel.Address, _ ports.ParcelSpec, _ bool,
) (quoting.Result, error) {
	s.calls++
	if s.err != nil {
		return quoting.Result{}, s.err
	}
	return s.res, nil
}
func (s *stubQuoteSource) Peek(_ kernel.UUID) (quoting.Result, bool) {
	return s.res, s.res.Rates != nil
}
func (s *stubQuoteSource) Invalidate(id kernel.UUID) {
	s.invalidated = append(s.invalidated, id)
}

type stubInvalidator struct {
	invalidated []kernel.UUID
}

func (s *stubInvalidator) Invalidate(id kernel.UUID) {
	s.invalidated = append(s.invalidated, id)
}

func testDims(t *testing.T) kernel.Dimensions {
	t.Helper()
	dims, err := kernel.NewDimensions(10, 8, 6)
	require.NoError(t, err)
	return dims
}

func testWeight(t *testing.T, lb float64) kernel.Weight {
	t.Helper()
	w, err := kernel.NewWeight(lb)
	require.NoError(t, err)
	return w
}

func testAddress(t *testing.T, name string) kernel.Address {
	t.Helper()
	addr, err := kernel.NewAddress(name, "", "1 Depot Rd", "", "Springfield", "IL", "62701", "US", "")
	require.NoError(t, err)
	return addr
}

func testPreset(t *testing.T, name string, defaultWeightLb *float64) *catalog.BoxPreset {
	t.Helper()
	var dw *kernel.Weight
	if defaultWeightLb != nil {
		w := testWeight(t, *defaultWeightLb)
		dw = &w
	}
	dims, err := kernel.NewDimensions(12, 10, 4)
	require.NoError(t, err)
	p, err := catalog.NewBoxPreset(kernel.NewUUID(), name, dims, dw, time.Now().UTC())
	require.NoError(t, err)
	return p
}

func testShipFrom(t *testing.T) *catalog.ShipFromSettings {
	t.Helper()
	settings, err := catalog.NewShipFromSettings(testAddress(t, "Warehouse"), time.Now().UTC())
	require.NoError(t, err)
	return settings
}

func testShipment(t *testing.T) *shipment.Shipment {
	t.Helper()
	source, err := shipment.NewCustomDimensionSource(testDims(t))
	require.NoError(t, err)
	s, err := shipment.NewShipment(
		kernel.NewUUID(), kernel.NewUUID(), 0, source, testWeight(t, 2.5), time.Now().UTC())
	require.NoError(t, err)
	return s
}

func testGeneratedShipment(t *testing.T) *shipment.Shipment {
	t.Helper()
	s := testShipment(t)
	cost, err := kernel.NewMoney(1234, "USD")
	require.NoError(t, err)
	require.NoError(t, s.ApplyPurchaseConfirmed(shipment.LabelInfo{
		ProviderShipmentID: "es_ship_1",
		ProviderLabelID:    "es_label_1",
		Carrier:            "USPS",
		Service:            "Priority Mail",
		TrackingNumber:     "9400100000000000000000",
		LabelURL:           "https://labels.example.com/es_label_1.pdf",
		Cost:               cost,
	}, time.Now().UTC()))
	return s
}

func testQuote(t *testing.T, id string, cents int64) shipment.Quote {
	t.Helper()
	price, err := kernel.NewMoney(cents, "USD")
	require.NoError(t, err)
	q, err := shipment.NewQuote(id, "USPS", "Priority Mail", price, nil, nil)
	require.NoError(t, err)
	return q
}
