package shipfromrepo

import (
	"context"
	"errors"

	"shipping/internal/core/domain/model/catalog"
	"shipping/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormShipFromRepository implements ShipFromRepository using GORM.
type GormShipFromRepository struct {
	db *gorm.DB
}

// NewGormShipFromRepository creates a new GORM ship-from repository.
func NewGormShipFromRepository(db *gorm.DB) *GormShipFromRepository {
	return &GormShipFromRepository{db: db}
}

// Get retrieves the live ship-from record.
func (r *GormShipFromRepository) Get(ctx context.Context) (*catalog.ShipFromSettings, error) {
	var dto ShipFromDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", singletonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("ship-from settings", singletonID)
		}
		return nil, err
	}

	return toDomain(dto)
}

// Save replaces the live ship-from record, creating it on first save.
func (r *GormShipFromRepository) Save(ctx context.Context, aggregate *catalog.ShipFromSettings) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(&dto).Error
}
