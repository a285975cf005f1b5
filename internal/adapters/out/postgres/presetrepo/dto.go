// Package presetrepo provides data transfer objects and mapping functions
// for box preset persistence.
package presetrepo

import (
	"time"

	"shipping/internal/core/domain/model/catalog"
	"shipping/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// BoxPresetDTO represents the database structure for persisting box presets.
type BoxPresetDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name            string    `gorm:"uniqueIndex"`
	LengthIn        float64
	WidthIn         float64
	HeightIn        float64
	DefaultWeightLb *float64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName specifies the database table name for box preset entities.
func (BoxPresetDTO) TableName() string {
	return "box_presets"
}

func fromDomain(p *catalog.BoxPreset) BoxPresetDTO {
	dto := BoxPresetDTO{
		ID:        p.ID().Bytes(),
		Name:      p.Name(),
		LengthIn:  p.Dimensions().LengthIn(),
		WidthIn:   p.Dimensions().WidthIn(),
		HeightIn:  p.Dimensions().HeightIn(),
		CreatedAt: p.CreatedAt(),
		UpdatedAt: p.UpdatedAt(),
	}
	if w := p.DefaultWeight(); w != nil {
		lb := w.Pounds()
		dto.DefaultWeightLb = &lb
	}
	return dto
}

func toDomain(dto BoxPresetDTO) (*catalog.BoxPreset, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	dims, err := kernel.NewDimensions(dto.LengthIn, dto.WidthIn, dto.HeightIn)
	if err != nil {
		return nil, err
	}

	var defaultWeight *kernel.Weight
	if dto.DefaultWeightLb != nil {
		w, weightErr := kernel.NewWeight(*dto.DefaultWeightLb)
		if weightErr != nil {
			return nil, weightErr
		}
		defaultWeight = &w
	}

	return catalog.RestoreBoxPreset(id, dto.Name, dims, defaultWeight, dto.CreatedAt, dto.UpdatedAt)
}
