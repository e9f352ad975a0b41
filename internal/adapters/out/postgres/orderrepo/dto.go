// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It covers the order aggregate (with its item lines and
// embedded delivery information) and the append-only status history.
package orderrepo

import (
	"time"

	"shoporder/internal/adapters/out/postgres/statusrepo"
	"shoporder/internal/core/domain/model/kernel"
	"shoporder/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The status is a foreign key into the status registry; loading an order
// always preloads the status row so the aggregate can be fully restored.
//
// Timestamps are owned by the domain (the aggregate advances updatedAt on
// mutation), so GORM's automatic time tracking is disabled.
type OrderDTO struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	Number string    `gorm:"uniqueIndex"`
	Hash   string    `gorm:"uniqueIndex"`

	StatusID uuid.UUID            `gorm:"type:uuid;index"`
	Status   statusrepo.StatusDTO `gorm:"foreignKey:StatusID"`

	Paid   bool
	Pinged bool

	BasePrice     decimal.Decimal `gorm:"type:numeric"`
	Sale          decimal.Decimal `gorm:"type:numeric"`
	DeliveryPrice decimal.Decimal `gorm:"type:numeric"`
	Currency      string

	Delivery DeliveryDTO `gorm:"embedded;embeddedPrefix:delivery_"`

	Items []ItemDTO `gorm:"foreignKey:OrderID"`

	Notice            string
	HandoverReference string

	InsertedAt time.Time
	UpdatedAt  time.Time `gorm:"autoUpdateTime:false"`
}

// TableName specifies the database table name for order aggregates.
func (OrderDTO) TableName() string {
	return "orders"
}

// DeliveryDTO represents the embedded delivery information within the order
// table. An empty carrier code means the order has no delivery yet.
type DeliveryDTO struct {
	CarrierCode   string
	RecipientName string
	Street        string
	City          string
	Zip           string
}

// ItemDTO represents one order item line.
type ItemDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID `gorm:"type:uuid;index"`
	Label     string
	Quantity  int
	UnitPrice decimal.Decimal `gorm:"type:numeric"`
	Currency  string
}

// TableName specifies the database table name for order item lines.
func (ItemDTO) TableName() string {
	return "order_items"
}

// HistoryDTO represents one append-only row of the order status history.
type HistoryDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID `gorm:"type:uuid;index"`
	StatusID   uuid.UUID `gorm:"type:uuid"`
	InsertedAt time.Time
}

// TableName specifies the database table name for status history rows.
func (HistoryDTO) TableName() string {
	return "order_history"
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(o *order.Order) OrderDTO {
	var delivery DeliveryDTO
	if d := o.Delivery(); d != nil {
		delivery = DeliveryDTO{
			CarrierCode:   d.CarrierCode(),
			RecipientName: d.RecipientName(),
			Street:        d.Street(),
			City:          d.City(),
			Zip:           d.Zip(),
		}
	}

	items := make([]ItemDTO, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, ItemDTO{
			ID:        item.ID().Bytes(),
			OrderID:   o.ID().Bytes(),
			Label:     item.Label(),
			Quantity:  item.Quantity(),
			UnitPrice: item.UnitPrice().Amount(),
			Currency:  item.UnitPrice().Currency(),
		})
	}

	return OrderDTO{
		ID:                o.ID().Bytes(),
		Number:            o.Number(),
		Hash:              o.Hash(),
		StatusID:          o.Status().ID().Bytes(),
		Paid:              o.IsPaid(),
		Pinged:            o.Pinged(),
		BasePrice:         o.BasePrice().Amount(),
		Sale:              o.Sale().Amount(),
		DeliveryPrice:     o.DeliveryPrice().Amount(),
		Currency:          o.Currency(),
		Delivery:          delivery,
		Items:             items,
		Notice:            o.Notice(),
		HandoverReference: o.HandoverReference(),
		InsertedAt:        o.InsertedAt(),
		UpdatedAt:         o.UpdatedAt(),
	}
}

// toDomain converts a database row to an order aggregate. The Status and
// Items associations must be loaded on the DTO.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	st, err := statusrepo.ToDomain(dto.Status)
	if err != nil {
		return nil, err
	}

	basePrice, err := kernel.NewMoney(dto.BasePrice, dto.Currency)
	if err != nil {
		return nil, err
	}
	sale, err := kernel.NewMoney(dto.Sale, dto.Currency)
	if err != nil {
		return nil, err
	}
	deliveryPrice, err := kernel.NewMoney(dto.DeliveryPrice, dto.Currency)
	if err != nil {
		return nil, err
	}

	var delivery *order.Delivery
	if dto.Delivery.CarrierCode != "" {
		delivery, err = order.NewDelivery(
			dto.Delivery.CarrierCode,
			dto.Delivery.RecipientName,
			dto.Delivery.Street,
			dto.Delivery.City,
			dto.Delivery.Zip,
		)
		if err != nil {
			return nil, err
		}
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		itemID, itemErr := kernel.UUIDFromBytes(itemDTO.ID[:])
		if itemErr != nil {
			return nil, itemErr
		}
		unitPrice, itemErr := kernel.NewMoney(itemDTO.UnitPrice, itemDTO.Currency)
		if itemErr != nil {
			return nil, itemErr
		}
		item, itemErr := order.NewItem(itemID, itemDTO.Label, itemDTO.Quantity, unitPrice)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(
		id,
		dto.Number,
		dto.Hash,
		st,
		dto.Paid,
		dto.Pinged,
		basePrice,
		sale,
		deliveryPrice,
		delivery,
		items,
		dto.Notice,
		dto.HandoverReference,
		dto.InsertedAt,
		dto.UpdatedAt,
	)
}

// historyFromDomain converts a history entry to its database representation.
func historyFromDomain(entry *order.HistoryEntry) HistoryDTO {
	return HistoryDTO{
		ID:         entry.ID().Bytes(),
		OrderID:    entry.OrderID().Bytes(),
		StatusID:   entry.StatusID().Bytes(),
		InsertedAt: entry.InsertedAt(),
	}
}

// historyToDomain converts a database row to a history entry.
func historyToDomain(dto HistoryDTO) (*order.HistoryEntry, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	statusID, err := kernel.UUIDFromBytes(dto.StatusID[:])
	if err != nil {
		return nil, err
	}

	return order.NewHistoryEntry(id, orderID, statusID, dto.InsertedAt)
}
