package paymentrepo

import (
	"context"
	"errors"
	"fmt"

	"shoporder/internal/core/domain/model/kernel"
	"shoporder/internal/core/domain/model/order"
	"shoporder/internal/pkg/errs"

	"gorm.io/gorm"
)

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// GormBankPaymentRepository implements BankPaymentRepository using GORM.
type GormBankPaymentRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// NewGormBankPaymentRepository creates a new GORM bank payment repository.
func NewGormBankPaymentRepository(db *gorm.DB, tracker aggregateTracker) *GormBankPaymentRepository {
	return &GormBankPaymentRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new bank transaction record. The unique index on the
// transaction identifier rejects a second record for the same transaction.
func (r *GormBankPaymentRepository) Add(ctx context.Context, payment *order.BankPayment) error {
	if err := payment.Validate(); err != nil {
		return err
	}

	dto := bankFromDomain(payment)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(payment.ID(), payment)
	return nil
}

// Update saves an existing bank transaction record.
func (r *GormBankPaymentRepository) Update(ctx context.Context, payment *order.BankPayment) error {
	if err := payment.Validate(); err != nil {
		return err
	}

	dto := bankFromDomain(payment)
	result := r.db.WithContext(ctx).
		Model(&BankPaymentDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(payment.ID(), payment)
	return nil
}

// ExistsByTransactionID reports whether a transaction has already been recorded.
func (r *GormBankPaymentRepository) ExistsByTransactionID(
	ctx context.Context, transactionID string,
) (bool, error) {
	if transactionID == "" {
		return false, errs.NewValueIsRequiredError("transactionID")
	}

	var count int64
	err := r.db.WithContext(ctx).
		Model(&BankPaymentDTO{}).
		Where("transaction_id = ?", transactionID).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// GetByTransactionID retrieves a bank transaction by its bank-assigned identifier.
func (r *GormBankPaymentRepository) GetByTransactionID(
	ctx context.Context, transactionID string,
) (*order.BankPayment, error) {
	if transactionID == "" {
		return nil, errs.NewValueIsRequiredError("transactionID")
	}

	var dto BankPaymentDTO
	err := r.db.WithContext(ctx).First(&dto, "transaction_id = ?", transactionID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("bank payment", transactionID)
		}
		return nil, err
	}

	return bankToDomain(dto)
}

// GormOnlinePaymentRepository implements OnlinePaymentRepository using GORM.
type GormOnlinePaymentRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// NewGormOnlinePaymentRepository creates a new GORM online payment repository.
func NewGormOnlinePaymentRepository(db *gorm.DB, tracker aggregateTracker) *GormOnlinePaymentRepository {
	return &GormOnlinePaymentRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new gateway payment session.
func (r *GormOnlinePaymentRepository) Add(ctx context.Context, payment *order.OnlinePayment) error {
	if err := payment.Validate(); err != nil {
		return err
	}

	dto := onlineFromDomain(payment)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(payment.ID(), payment)
	return nil
}

// Update saves an existing gateway payment session.
func (r *GormOnlinePaymentRepository) Update(ctx context.Context, payment *order.OnlinePayment) error {
	if err := payment.Validate(); err != nil {
		return err
	}

	dto := onlineFromDomain(payment)
	result := r.db.WithContext(ctx).
		Model(&OnlinePaymentDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(payment.ID(), payment)
	return nil
}

// GetByGatewayAndHash retrieves the session matching both the gateway payment
// identifier and the order hash. A gateway identifier belonging to another
// order's session never matches.
func (r *GormOnlinePaymentRepository) GetByGatewayAndHash(
	ctx context.Context, gatewayID string, orderHash string,
) (*order.OnlinePayment, error) {
	if gatewayID == "" {
		return nil, errs.NewValueIsRequiredError("gatewayID")
	}
	if orderHash == "" {
		return nil, errs.NewValueIsRequiredError("orderHash")
	}

	var dto OnlinePaymentDTO
	err := r.db.WithContext(ctx).
		First(&dto, "gateway_id = ? AND order_hash = ?", gatewayID, orderHash).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("online payment",
				fmt.Sprintf("%s/%s", gatewayID, orderHash))
		}
		return nil, err
	}

	return onlineToDomain(dto)
}

// GetByOrder retrieves all sessions created for one order, oldest first.
func (r *GormOnlinePaymentRepository) GetByOrder(
	ctx context.Context, orderID kernel.UUID,
) ([]*order.OnlinePayment, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []OnlinePaymentDTO
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID.Bytes()).
		Order("inserted_at").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	payments := make([]*order.OnlinePayment, 0, len(dtos))
	for _, dto := range dtos {
		p, err := onlineToDomain(dto)
		if err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}

	return payments, nil
}
