package packagerepo

import (
	"context"

	"shoporder/internal/core/domain/model/kernel"
	"shoporder/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// GormPackageRepository implements PackageRepository using GORM.
type GormPackageRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormPackageRepository creates a new GORM package repository.
func NewGormPackageRepository(db *gorm.DB, tracker aggregateTracker) *GormPackageRepository {
	return &GormPackageRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new shipment record.
func (r *GormPackageRepository) Add(ctx context.Context, pkg *order.Package) error {
	if err := pkg.Validate(); err != nil {
		return err
	}

	dto := fromDomain(pkg)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(pkg.ID(), pkg)
	return nil
}

// Update saves an existing shipment record.
func (r *GormPackageRepository) Update(ctx context.Context, pkg *order.Package) error {
	if err := pkg.Validate(); err != nil {
		return err
	}

	dto := fromDomain(pkg)
	result := r.db.WithContext(ctx).
		Model(&PackageDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(pkg.ID(), pkg)
	return nil
}

// ExistsForOrder reports whether the order already has a shipment record.
func (r *GormPackageRepository) ExistsForOrder(ctx context.Context, orderID kernel.UUID) (bool, error) {
	if err := orderID.Validate(); err != nil {
		return false, err
	}

	var count int64
	err := r.db.WithContext(ctx).
		Model(&PackageDTO{}).
		Where("order_id = ?", orderID.Bytes()).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// GetByOrder retrieves all shipment records of one order, oldest first.
func (r *GormPackageRepository) GetByOrder(
	ctx context.Context, orderID kernel.UUID,
) ([]*order.Package, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []PackageDTO
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID.Bytes()).
		Order("inserted_at").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	packages := make([]*order.Package, 0, len(dtos))
	for _, dto := range dtos {
		p, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		packages = append(packages, p)
	}

	return packages, nil
}
