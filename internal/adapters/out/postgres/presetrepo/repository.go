package presetrepo

import (
	"context"
	"errors"

	"shipping/internal/core/domain/model/catalog"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormPresetRepository implements PresetRepository using GORM.
type GormPresetRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormPresetRepository creates a new GORM preset repository.
func NewGormPresetRepository(db *gorm.DB, tracker aggregateTracker) *GormPresetRepository {
	return &GormPresetRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new preset to the database.
func (r *GormPresetRepository) Add(ctx context.Context, aggregate *catalog.BoxPreset) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing preset to the database.
func (r *GormPresetRepository) Update(ctx context.Context, aggregate *catalog.BoxPreset) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&BoxPresetDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("box preset", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a preset by ID.
func (r *GormPresetRepository) Get(ctx context.Context, id kernel.UUID) (*catalog.BoxPreset, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto BoxPresetDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("box preset", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAll retrieves all presets ordered by name.
func (r *GormPresetRepository) GetAll(ctx context.Context) ([]*catalog.BoxPreset, error) {
	var dtos []BoxPresetDTO
	if err := r.db.WithContext(ctx).Order("name").Find(&dtos).Error; err != nil {
		return nil, err
	}

	presets := make([]*catalog.BoxPreset, 0, len(dtos))
	for _, dto := range dtos {
		p, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		presets = append(presets, p)
	}

	return presets, nil
}

// Delete removes a preset. Shipments referencing it keep their snapshotted
// dimensions and denormalized name, so no cleanup happens here.
func (r *GormPresetRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&BoxPresetDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("box preset", id.String())
	}

	return nil
}
