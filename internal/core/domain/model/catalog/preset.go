package catalog

import (
	"errors"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"
)

// ErrBoxPresetIsNotConstructed is returned when a BoxPreset instance was not
// created through NewBoxPreset or RestoreBoxPreset.
var ErrBoxPresetIsNotConstructed = errors.New("BoxPreset must be created via NewBoxPreset or RestoreBoxPreset")

// BoxPreset is a reusable, human-facing box size: a unique name, dimensions
// in inches, and an optional default weight in pounds.
//
// Shipments reference presets weakly: they denormalize the preset name and
// snapshot its dimensions at selection time, so deleting a preset never
// corrupts the historical dimensions of shipments that used it.
type BoxPreset struct {
	id            kernel.UUID
	name          string
	dimensions    kernel.Dimensions
	defaultWeight *kernel.Weight
	createdAt     time.Time
	updatedAt     time.Time

	isConstructed bool
}

// NewBoxPreset creates a box preset. Name and positive dimensions are
// required; the default weight is optional.
func NewBoxPreset(
	id kernel.UUID,
	name string,
	dimensions kernel.Dimensions,
	defaultWeight *kernel.Weight,
	now time.Time,
) (*BoxPreset, error) {
	p := &BoxPreset{
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		p.setID(id),
		p.setName(name),
		p.setDimensions(dimensions),
		p.setDefaultWeight(defaultWeight),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// RestoreBoxPreset reconstructs a preset from persistence.
func RestoreBoxPreset(
	id kernel.UUID,
	name string,
	dimensions kernel.Dimensions,
	defaultWeight *kernel.Weight,
	createdAt, updatedAt time.Time,
) (*BoxPreset, error) {
	p, err := NewBoxPreset(id, name, dimensions, defaultWeight, createdAt)
	if err != nil {
		return nil, err
	}
	p.updatedAt = updatedAt
	return p, nil
}

// Validate ensures the BoxPreset was properly constructed.
func (p *BoxPreset) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrBoxPresetIsNotConstructed
	}
	return nil
}

// ID returns the preset's unique identifier.
func (p *BoxPreset) ID() kernel.UUID { return p.id }

// Name returns the human-facing preset name, unique per catalog.
func (p *BoxPreset) Name() string { return p.name }

// Dimensions returns the preset's box dimensions in inches.
func (p *BoxPreset) Dimensions() kernel.Dimensions { return p.dimensions }

// DefaultWeight returns the optional default weight in pounds.
func (p *BoxPreset) DefaultWeight() *kernel.Weight { return p.defaultWeight }

// CreatedAt returns the creation timestamp.
func (p *BoxPreset) CreatedAt() time.Time { return p.createdAt }

// UpdatedAt returns the last mutation timestamp.
func (p *BoxPreset) UpdatedAt() time.Time { return p.updatedAt }

// Update replaces the preset's fields, re-validating them.
func (p *BoxPreset) Update(
	name string,
	dimensions kernel.Dimensions,
	defaultWeight *kernel.Weight,
	now time.Time,
) error {
	if err := errors.Join(
		p.setName(name),
		p.setDimensions(dimensions),
		p.setDefaultWeight(defaultWeight),
	); err != nil {
		return err
	}
	p.updatedAt = now
	return nil
}

func (p *BoxPreset) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *BoxPreset) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	p.name = name
	return nil
}

func (p *BoxPreset) setDimensions(dimensions kernel.Dimensions) error {
	if err := dimensions.Validate(); err != nil {
		return err
	}
	p.dimensions = dimensions
	return nil
}

func (p *BoxPreset) setDefaultWeight(defaultWeight *kernel.Weight) error {
	if defaultWeight == nil {
		p.defaultWeight = nil
		return nil
	}
	if err := defaultWeight.Validate(); err != nil {
		return err
	}
	w := *defaultWeight
	p.defaultWeight = &w
	return nil
}
