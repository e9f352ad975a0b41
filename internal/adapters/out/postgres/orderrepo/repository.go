package orderrepo

import (
	"context"
	"errors"
	"time"

	"shoporder/internal/core/domain/model/kernel"
	"shoporder/internal/core/domain/model/order"
	"shoporder/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order to the database, including its item lines.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Omit("Status").Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing order to the database. All scalar columns are
// written (flags may flip back to false), item lines are upserted because the
// aggregate only ever appends them.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Omit("Status", "Items").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	if len(dto.Items) > 0 {
		err := r.db.WithContext(ctx).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&dto.Items).Error
		if err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	return r.getOne(ctx, "orders.id = ?", id.Bytes(), id.String())
}

// GetByNumber retrieves an order by its customer-facing number.
func (r *GormOrderRepository) GetByNumber(ctx context.Context, number string) (*order.Order, error) {
	if number == "" {
		return nil, errs.NewValueIsRequiredError("number")
	}

	return r.getOne(ctx, "orders.number = ?", number, number)
}

// GetByHash retrieves an order by its opaque public hash.
func (r *GormOrderRepository) GetByHash(ctx context.Context, hash string) (*order.Order, error) {
	if hash == "" {
		return nil, errs.NewValueIsRequiredError("hash")
	}

	return r.getOne(ctx, "orders.hash = ?", hash, hash)
}

// GetAllInStatusCode retrieves all orders currently in the given status.
func (r *GormOrderRepository) GetAllInStatusCode(ctx context.Context, code string) ([]*order.Order, error) {
	if code == "" {
		return nil, errs.NewValueIsRequiredError("code")
	}

	return r.getAll(ctx, r.scopeStatusCode(ctx, code))
}

// GetAllInStatusCodeUpdatedBefore retrieves all orders in the given status
// whose last mutation happened before the cutoff.
func (r *GormOrderRepository) GetAllInStatusCodeUpdatedBefore(
	ctx context.Context, code string, cutoff time.Time,
) ([]*order.Order, error) {
	if code == "" {
		return nil, errs.NewValueIsRequiredError("code")
	}

	return r.getAll(ctx, r.scopeStatusCode(ctx, code).Where("orders.updated_at < ?", cutoff))
}

func (r *GormOrderRepository) getOne(
	ctx context.Context, condition string, value any, lookup string,
) (*order.Order, error) {
	var dto OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Status").
		Preload("Items").
		First(&dto, condition, value).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", lookup)
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormOrderRepository) getAll(_ context.Context, query *gorm.DB) ([]*order.Order, error) {
	var dtos []OrderDTO
	if err := query.Find(&dtos).Error; err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}

func (r *GormOrderRepository) scopeStatusCode(ctx context.Context, code string) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Preload("Status").
		Preload("Items").
		Joins("JOIN statuses ON statuses.id = orders.status_id").
		Where("statuses.code = ?", code).
		Order("orders.inserted_at")
}
