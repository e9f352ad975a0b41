// Package paymentrepo provides data transfer objects and mapping functions
// for payment persistence: bank transactions ingested from the account feed
// and hosted-gateway payment sessions.
//
// The unique indexes carry the idempotency guarantees of the reconcilers: a
// bank transaction identifier can only ever be recorded once, and a gateway
// session is addressable only by the (gateway id, order hash) pair.
package paymentrepo

import (
	"time"

	"shoporder/internal/core/domain/model/kernel"
	"shoporder/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BankPaymentDTO represents one recorded bank transaction.
type BankPaymentDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	TransactionID  string    `gorm:"uniqueIndex"`
	Amount         decimal.Decimal `gorm:"type:numeric"`
	Currency       string
	VariableSymbol string     `gorm:"index"`
	OrderID        *uuid.UUID `gorm:"type:uuid;index"`
	InsertedAt     time.Time
}

// TableName specifies the database table name for bank transactions.
func (BankPaymentDTO) TableName() string {
	return "bank_payments"
}

// OnlinePaymentDTO represents one hosted-gateway payment session.
type OnlinePaymentDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	GatewayID     string    `gorm:"uniqueIndex:idx_online_payments_gateway_hash"`
	OrderHash     string    `gorm:"uniqueIndex:idx_online_payments_gateway_hash"`
	OrderID       uuid.UUID `gorm:"type:uuid;index"`
	Price         decimal.Decimal `gorm:"type:numeric"`
	Currency      string
	Status        string
	LastCheckedAt *time.Time
	InsertedAt    time.Time
}

// TableName specifies the database table name for gateway payment sessions.
func (OnlinePaymentDTO) TableName() string {
	return "online_payments"
}

// bankFromDomain converts a bank payment record to its database representation.
func bankFromDomain(p *order.BankPayment) BankPaymentDTO {
	var orderID *uuid.UUID
	if id := p.OrderID(); id != nil {
		raw := id.Bytes()
		orderID = &raw
	}

	return BankPaymentDTO{
		ID:             p.ID().Bytes(),
		TransactionID:  p.TransactionID(),
		Amount:         p.Amount(),
		Currency:       p.Currency(),
		VariableSymbol: p.VariableSymbol(),
		OrderID:        orderID,
		InsertedAt:     p.InsertedAt(),
	}
}

// bankToDomain converts a database row to a bank payment record.
func bankToDomain(dto BankPaymentDTO) (*order.BankPayment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var orderID *kernel.UUID
	if dto.OrderID != nil {
		oID, orderErr := kernel.UUIDFromBytes((*dto.OrderID)[:])
		if orderErr != nil {
			return nil, orderErr
		}
		orderID = &oID
	}

	return order.RestoreBankPayment(
		id,
		dto.TransactionID,
		dto.Amount,
		dto.Currency,
		dto.VariableSymbol,
		orderID,
		dto.InsertedAt,
	)
}

// onlineFromDomain converts a gateway session to its database representation.
func onlineFromDomain(p *order.OnlinePayment) OnlinePaymentDTO {
	return OnlinePaymentDTO{
		ID:            p.ID().Bytes(),
		GatewayID:     p.GatewayID(),
		OrderHash:     p.OrderHash(),
		OrderID:       p.OrderID().Bytes(),
		Price:         p.Price().Amount(),
		Currency:      p.Price().Currency(),
		Status:        p.Status(),
		LastCheckedAt: p.LastCheckedAt(),
		InsertedAt:    p.InsertedAt(),
	}
}

// onlineToDomain converts a database row to a gateway session.
func onlineToDomain(dto OnlinePaymentDTO) (*order.OnlinePayment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	price, err := kernel.NewMoney(dto.Price, dto.Currency)
	if err != nil {
		return nil, err
	}

	return order.RestoreOnlinePayment(
		id,
		dto.GatewayID,
		orderID,
		dto.OrderHash,
		price,
		dto.Status,
		dto.LastCheckedAt,
		dto.InsertedAt,
	)
}
