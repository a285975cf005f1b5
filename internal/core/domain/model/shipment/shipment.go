package shipment

import (
	"errors"
	"fmt"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"
)

var (
	// ErrShipmentIsNotConstructed is returned when a Shipment instance was not
	// created through NewShipment or RestoreShipment.
	ErrShipmentIsNotConstructed = errors.New("Shipment must be created via NewShipment or RestoreShipment")

	// ErrGeneratedShipmentIsIncomplete is returned when restoring a shipment in
	// the generated state without the fields that state guarantees: a provider
	// label id, a tracking number, and a purchase timestamp.
	ErrGeneratedShipmentIsIncomplete = errors.New(
		"generated shipment must have a label id, tracking number, and purchasedAt")
)

// LabelInfo is the confirmed payload of a label purchase: the provider's
// opaque identifiers, the carrier/service actually booked, the tracking
// number, the printable label location, and the final cost.
type LabelInfo struct {
	ProviderShipmentID string
	ProviderLabelID    string
	Carrier            string
	Service            string
	TrackingNumber     string
	LabelURL           string
	Cost               kernel.Money
}

// DimensionSource identifies where a shipment's effective dimensions come
// from: a reusable box preset (weak, non-owning reference plus denormalized
// display name) or a one-off custom size. Exactly one source is
// authoritative at any time.
type DimensionSource struct {
	presetID   *kernel.UUID
	presetName string
	dims       kernel.Dimensions
}

// NewPresetDimensionSource creates a preset-backed source. The preset's
// dimensions are snapshotted onto the shipment so that deleting the preset
// later never corrupts the shipment's historical dimensions.
func NewPresetDimensionSource(presetID kernel.UUID, presetName string, dims kernel.Dimensions) (DimensionSource, error) {
	if err := presetID.Validate(); err != nil {
		return DimensionSource{}, err
	}
	if presetName == "" {
		return DimensionSource{}, errs.NewValueIsRequiredError("boxPresetName")
	}
	if err := dims.Validate(); err != nil {
		return DimensionSource{}, err
	}
	return DimensionSource{presetID: &presetID, presetName: presetName, dims: dims}, nil
}

// NewCustomDimensionSource creates a source from caller-supplied dimensions.
func NewCustomDimensionSource(dims kernel.Dimensions) (DimensionSource, error) {
	if err := dims.Validate(); err != nil {
		return DimensionSource{}, err
	}
	return DimensionSource{dims: dims}, nil
}

// IsPreset reports whether the source references a box preset.
func (s DimensionSource) IsPreset() bool { return s.presetID != nil }

// Shipment is the central aggregate: one physical parcel belonging to an
// order, with its dimension source, weight, and label lifecycle fields.
// An order may have many shipments, ordered by parcel index.
//
// Shipment follows these invariants:
//   - Weight is strictly positive before any quote or purchase
//   - Exactly one dimension source (preset or custom) is authoritative
//   - Effective dimensions are snapshotted so a deleted preset never
//     corrupts them; the last entered custom dimensions are retained even
//     while a preset is selected
//   - The generated state implies a provider label id, tracking number,
//     and purchase timestamp
//   - Label state transitions only happen through the purchase and
//     reconciliation methods below
type Shipment struct {
	id          kernel.UUID
	orderID     kernel.UUID
	parcelIndex int

	boxPresetID   *kernel.UUID
	boxPresetName string
	// effectiveDims is the snapshot used for quoting and purchase, frozen at
	// the last dimension edit. When a preset is still resolvable its live
	// dimensions win at read time; this snapshot is the fallback.
	effectiveDims kernel.Dimensions
	customDims    *kernel.Dimensions

	weight kernel.Weight

	labelState         LabelState
	providerShipmentID string
	providerLabelID    string
	carrier            string
	service            string
	trackingNumber     string
	labelURL           string
	labelCost          *kernel.Money
	quoteSelectedID    string
	errorMessage       string

	createdAt   time.Time
	purchasedAt *time.Time
	updatedAt   time.Time

	version int64

	isConstructed bool
}

// NewShipment creates a new parcel for an order in the pending label state,
// with no provider linkage. parcelIndex is the 0-based, stable position of
// the parcel within its order.
func NewShipment(
	id kernel.UUID,
	orderID kernel.UUID,
	parcelIndex int,
	source DimensionSource,
	weight kernel.Weight,
	now time.Time,
) (*Shipment, error) {
	if err := errors.Join(id.Validate(), orderID.Validate(), weight.Validate(), source.dims.Validate()); err != nil {
		return nil, err
	}
	if parcelIndex < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("parcelIndex",
			fmt.Errorf("%d is negative", parcelIndex))
	}

	s := &Shipment{
		id:            id,
		orderID:       orderID,
		parcelIndex:   parcelIndex,
		weight:        weight,
		labelState:    Pending,
		createdAt:     now,
		updatedAt:     now,
		version:       1,
		isConstructed: true,
	}
	s.applyDimensionSource(source)
	return s, nil
}

// RestoreShipmentParams carries the full persisted state of a shipment.
type RestoreShipmentParams struct {
	ID                 kernel.UUID
	OrderID            kernel.UUID
	ParcelIndex        int
	BoxPresetID        *kernel.UUID
	BoxPresetName      string
	EffectiveDims      kernel.Dimensions
	CustomDims         *kernel.Dimensions
	Weight             kernel.Weight
	LabelState         LabelState
	ProviderShipmentID string
	ProviderLabelID    string
	Carrier            string
	Service            string
	TrackingNumber     string
	LabelURL           string
	LabelCost          *kernel.Money
	QuoteSelectedID    string
	ErrorMessage       string
	CreatedAt          time.Time
	PurchasedAt        *time.Time
	UpdatedAt          time.Time
	Version            int64
}

// RestoreShipment reconstructs a shipment from persistence, re-checking the
// aggregate invariants.
func RestoreShipment(p RestoreShipmentParams) (*Shipment, error) {
	if err := errors.Join(
		p.ID.Validate(),
		p.OrderID.Validate(),
		p.Weight.Validate(),
		p.EffectiveDims.Validate(),
		p.LabelState.Validate(),
	); err != nil {
		return nil, err
	}
	if p.LabelState == Generated &&
		(p.ProviderLabelID == "" || p.TrackingNumber == "" || p.PurchasedAt == nil) {
		return nil, ErrGeneratedShipmentIsIncomplete
	}

	return &Shipment{
		id:                 p.ID,
		orderID:            p.OrderID,
		parcelIndex:        p.ParcelIndex,
		boxPresetID:        p.BoxPresetID,
		boxPresetName:      p.BoxPresetName,
		effectiveDims:      p.EffectiveDims,
		customDims:         p.CustomDims,
		weight:             p.Weight,
		labelState:         p.LabelState,
		providerShipmentID: p.ProviderShipmentID,
		providerLabelID:    p.ProviderLabelID,
		carrier:            p.Carrier,
		service:            p.Service,
		trackingNumber:     p.TrackingNumber,
		labelURL:           p.LabelURL,
		labelCost:          p.LabelCost,
		quoteSelectedID:    p.QuoteSelectedID,
		errorMessage:       p.ErrorMessage,
		createdAt:          p.CreatedAt,
		purchasedAt:        p.PurchasedAt,
		updatedAt:          p.UpdatedAt,
		version:            p.Version,
		isConstructed:      true,
	}, nil
}

// Validate ensures the Shipment instance was properly constructed.
func (s *Shipment) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrShipmentIsNotConstructed
	}
	return nil
}

// IsEqual compares two shipments by identity.
func (s *Shipment) IsEqual(other *Shipment) bool {
	return other != nil && s.id.IsEqual(other.id)
}

// ID returns the shipment's unique identifier.
func (s *Shipment) ID() kernel.UUID { return s.id }

// OrderID returns the owning order's identifier.
func (s *Shipment) OrderID() kernel.UUID { return s.orderID }

// ParcelIndex returns the 0-based position of the parcel within its order.
func (s *Shipment) ParcelIndex() int { return s.parcelIndex }

// BoxPresetID returns the weak preset reference, or nil for custom dimensions.
func (s *Shipment) BoxPresetID() *kernel.UUID { return s.boxPresetID }

// BoxPresetName returns the denormalized preset display name. It survives
// deletion of the preset itself.
func (s *Shipment) BoxPresetName() string { return s.boxPresetName }

// EffectiveDimensions returns the dimensions used for quoting and purchase,
// as snapshotted at the last dimension edit. Callers that can still resolve
// the referenced preset should prefer its live dimensions.
func (s *Shipment) EffectiveDimensions() kernel.Dimensions { return s.effectiveDims }

// CustomDimensions returns the last entered custom dimensions, if any.
// They are retained even while a preset is the authoritative source.
func (s *Shipment) CustomDimensions() *kernel.Dimensions { return s.customDims }

// Weight returns the parcel weight.
func (s *Shipment) Weight() kernel.Weight { return s.weight }

// LabelState returns the current label lifecycle state.
func (s *Shipment) LabelState() LabelState { return s.labelState }

// ProviderShipmentID returns the provider's opaque shipment identifier.
func (s *Shipment) ProviderShipmentID() string { return s.providerShipmentID }

// ProviderLabelID returns the provider's opaque label identifier.
func (s *Shipment) ProviderLabelID() string { return s.providerLabelID }

// Carrier returns the booked carrier name, set on purchase confirmation.
func (s *Shipment) Carrier() string { return s.carrier }

// Service returns the booked carrier service, set on purchase confirmation.
func (s *Shipment) Service() string { return s.service }

// TrackingNumber returns the carrier tracking number.
func (s *Shipment) TrackingNumber() string { return s.trackingNumber }

// LabelURL returns the printable label location.
func (s *Shipment) LabelURL() string { return s.labelURL }

// LabelCost returns the confirmed label cost, nil until purchase confirmed.
func (s *Shipment) LabelCost() *kernel.Money { return s.labelCost }

// QuoteSelectedID returns the id of the rate quote the purchase was (or will
// be) attempted against. It is only an attempt record: the coordinator
// re-validates it against the live cache entry before use.
func (s *Shipment) QuoteSelectedID() string { return s.quoteSelectedID }

// ErrorMessage returns the provider's rejection detail. Populated only while
// the label state is failed; cleared on any new purchase attempt.
func (s *Shipment) ErrorMessage() string { return s.errorMessage }

// CreatedAt returns the creation timestamp.
func (s *Shipment) CreatedAt() time.Time { return s.createdAt }

// PurchasedAt returns the purchase confirmation timestamp, nil until then.
func (s *Shipment) PurchasedAt() *time.Time { return s.purchasedAt }

// UpdatedAt returns the last mutation timestamp.
func (s *Shipment) UpdatedAt() time.Time { return s.updatedAt }

// Version returns the optimistic-locking version of the record.
func (s *Shipment) Version() int64 { return s.version }

// NeedsStatusRefresh reports whether the shipment's purchase was accepted by
// the provider but has not resolved yet: label state pending with a provider
// shipment id and no label id. Such shipments are picked up by the status
// reconciler.
func (s *Shipment) NeedsStatusRefresh() bool {
	return s.labelState == Pending && s.providerShipmentID != "" && s.providerLabelID == ""
}

// SetDimensionSource replaces the authoritative dimension source.
// Rejected once a label has been generated: purchased parcels are
// physically fixed. Switching to a preset retains the previously entered
// custom dimensions so switching back preserves them.
func (s *Shipment) SetDimensionSource(source DimensionSource, now time.Time) error {
	if err := s.labelState.ValidatePhysicalEdit(); err != nil {
		return err
	}
	s.applyDimensionSource(source)
	s.updatedAt = now
	return nil
}

// SetWeight replaces the parcel weight. Rejected once a label has been generated.
func (s *Shipment) SetWeight(weight kernel.Weight, now time.Time) error {
	if err := s.labelState.ValidatePhysicalEdit(); err != nil {
		return err
	}
	if err := weight.Validate(); err != nil {
		return err
	}
	s.weight = weight
	s.updatedAt = now
	return nil
}

// SelectQuote records the quote id a subsequent purchase should be attempted
// against. Selection does not purchase anything.
func (s *Shipment) SelectQuote(quoteID string, now time.Time) error {
	if err := s.labelState.ValidatePurchase(); err != nil {
		return err
	}
	if quoteID == "" {
		return errs.NewValueIsRequiredError("quoteSelectedId")
	}
	s.quoteSelectedID = quoteID
	s.updatedAt = now
	return nil
}

// BeginPurchase prepares the shipment for a purchase attempt: it rejects
// attempts against a generated shipment and resets a failed shipment back to
// pending, clearing the previous error message.
func (s *Shipment) BeginPurchase(now time.Time) error {
	if err := s.labelState.ValidatePurchase(); err != nil {
		return err
	}
	if s.labelState == Failed {
		newState, err := s.labelState.Retry()
		if err != nil {
			return err
		}
		s.labelState = newState
	}
	s.errorMessage = ""
	s.updatedAt = now
	return nil
}

// ApplyPurchaseConfirmed maps the provider's confirmed response onto the
// shipment: provider identifiers, carrier, service, tracking number, label
// URL, and final cost are persisted, the state becomes generated, and the
// purchase timestamp is set. The same mapping is applied whether the
// confirmation arrived synchronously or through status reconciliation.
func (s *Shipment) ApplyPurchaseConfirmed(info LabelInfo, now time.Time) error {
	if info.ProviderLabelID == "" {
		return errs.NewValueIsRequiredError("easyshipLabelId")
	}
	if info.TrackingNumber == "" {
		return errs.NewValueIsRequiredError("trackingNumber")
	}
	if err := info.Cost.Validate(); err != nil {
		return err
	}

	newState, err := s.labelState.Generate()
	if err != nil {
		return err
	}

	s.labelState = newState
	if info.ProviderShipmentID != "" {
		s.providerShipmentID = info.ProviderShipmentID
	}
	s.providerLabelID = info.ProviderLabelID
	s.carrier = info.Carrier
	s.service = info.Service
	s.trackingNumber = info.TrackingNumber
	s.labelURL = info.LabelURL
	cost := info.Cost
	s.labelCost = &cost
	s.errorMessage = ""
	s.purchasedAt = &now
	s.updatedAt = now
	return nil
}

// ApplyPurchasePending records that the provider acknowledged the purchase
// request but label generation is asynchronous. The label state stays
// pending; only the provider shipment id is persisted so the reconciler can
// poll for the outcome.
func (s *Shipment) ApplyPurchasePending(providerShipmentID string, now time.Time) error {
	if err := s.labelState.ValidatePurchase(); err != nil {
		return err
	}
	if providerShipmentID != "" {
		s.providerShipmentID = providerShipmentID
	}
	s.updatedAt = now
	return nil
}

// ApplyPurchaseRejected maps a definitive provider rejection: the state
// becomes failed and the carrier's detail text is persisted. Ambiguous
// transport failures must not use this method.
func (s *Shipment) ApplyPurchaseRejected(detail string, now time.Time) error {
	newState, err := s.labelState.Fail()
	if err != nil {
		return err
	}
	if detail == "" {
		detail = "label purchase rejected by provider"
	}
	s.labelState = newState
	s.errorMessage = detail
	s.updatedAt = now
	return nil
}

func (s *Shipment) applyDimensionSource(source DimensionSource) {
	if source.IsPreset() {
		presetID := *source.presetID
		s.boxPresetID = &presetID
		s.boxPresetName = source.presetName
	} else {
		s.boxPresetID = nil
		s.boxPresetName = ""
		dims := source.dims
		s.customDims = &dims
	}
	s.effectiveDims = source.dims
}
