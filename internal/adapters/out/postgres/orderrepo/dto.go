// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// It implements the order store: orders with their line items, soft delete and an
// optimistic concurrency version.
package orderrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Subtotal and Total are written from the aggregate on every save so the admin
// facade can sort and search without recomputing them.
type OrderDTO struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Number        string     `gorm:"size:32;uniqueIndex"`
	CustomerID    uuid.UUID  `gorm:"type:uuid;index"`
	DriverID      *uuid.UUID `gorm:"type:uuid;index"`
	Address       AddressDTO `gorm:"embedded;embeddedPrefix:address_"`
	Status        string     `gorm:"size:32;index"`
	PaymentStatus string     `gorm:"size:32;index"`
	Subtotal      int64
	DeliveryFee   int64
	Taxes         int64
	Total         int64 `gorm:"index"`
	Notes         string
	Version       int64 `gorm:"not null;default:0"`
	DeliveredAt   *time.Time
	CreatedAt     time.Time      `gorm:"index"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime:false"`
	DeletedAt     gorm.DeletedAt `gorm:"index"`
	Items         []OrderItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// AddressDTO is the delivery address snapshot embedded in the orders table.
type AddressDTO struct {
	Recipient  string
	Phone      string
	Line1      string
	Line2      string
	City       string
	State      string
	PostalCode string
}

// OrderItemDTO is one line item. Position keeps the original ordering.
type OrderItemDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID `gorm:"type:uuid;index"`
	VariantID uuid.UUID `gorm:"type:uuid;index"`
	Position  int
	Quantity  int
	UnitPrice int64
	LineTotal int64
}

func (OrderItemDTO) TableName() string {
	return "order_items"
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(o *order.Order) OrderDTO {
	var driverID *uuid.UUID
	if id := o.Driver(); id != nil {
		raw := id.Bytes()
		driverID = &raw
	}

	var deletedAt gorm.DeletedAt
	if at := o.DeletedAt(); at != nil {
		deletedAt = gorm.DeletedAt{Time: *at, Valid: true}
	}

	addr := o.Address()
	items := o.Items()
	itemDTOs := make([]OrderItemDTO, 0, len(items))
	for i, item := range items {
		itemDTOs = append(itemDTOs, OrderItemDTO{
			ID:        item.ID().Bytes(),
			OrderID:   o.ID().Bytes(),
			VariantID: item.VariantID().Bytes(),
			Position:  i,
			Quantity:  item.Quantity(),
			UnitPrice: item.UnitPrice().MinorUnits(),
			LineTotal: item.LineTotal().MinorUnits(),
		})
	}

	return OrderDTO{
		ID:         o.ID().Bytes(),
		Number:     o.Number(),
		CustomerID: o.CustomerID().Bytes(),
		DriverID:   driverID,
		Address: AddressDTO{
			Recipient:  addr.Recipient(),
			Phone:      addr.Phone(),
			Line1:      addr.Line1(),
			Line2:      addr.Line2(),
			City:       addr.City(),
			State:      addr.State(),
			PostalCode: addr.PostalCode(),
		},
		Status:        o.Status().String(),
		PaymentStatus: o.PaymentStatus().String(),
		Subtotal:      o.Subtotal().MinorUnits(),
		DeliveryFee:   o.DeliveryFee().MinorUnits(),
		Taxes:         o.Taxes().MinorUnits(),
		Total:         o.Total().MinorUnits(),
		Notes:         o.Notes(),
		Version:       o.Version(),
		DeliveredAt:   o.DeliveredAt(),
		CreatedAt:     o.CreatedAt(),
		UpdatedAt:     o.UpdatedAt(),
		DeletedAt:     deletedAt,
		Items:         itemDTOs,
	}
}

// toDomain converts a database DTO (with preloaded items) to an order aggregate.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	var driverID *kernel.UUID
	if dto.DriverID != nil {
		dID, driverErr := kernel.UUIDFromBytes((*dto.DriverID)[:])
		if driverErr != nil {
			return nil, driverErr
		}
		driverID = &dID
	}

	addr, err := order.NewAddress(
		dto.Address.Recipient,
		dto.Address.Phone,
		dto.Address.Line1,
		dto.Address.Line2,
		dto.Address.City,
		dto.Address.State,
		dto.Address.PostalCode,
	)
	if err != nil {
		return nil, err
	}

	items := make([]order.LineItem, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := itemToDomain(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	var deletedAt *time.Time
	if dto.DeletedAt.Valid {
		deletedAt = &dto.DeletedAt.Time
	}

	return order.RestoreOrder(order.Snapshot{
		ID:            id,
		Number:        dto.Number,
		CustomerID:    customerID,
		Address:       addr,
		DriverID:      driverID,
		Items:         items,
		Status:        order.Status(dto.Status),
		PaymentStatus: order.PaymentStatus(dto.PaymentStatus),
		DeliveryFee:   kernel.Money(dto.DeliveryFee),
		Taxes:         kernel.Money(dto.Taxes),
		Notes:         dto.Notes,
		CreatedAt:     dto.CreatedAt,
		UpdatedAt:     dto.UpdatedAt,
		DeliveredAt:   dto.DeliveredAt,
		DeletedAt:     deletedAt,
		Version:       dto.Version,
	})
}

func itemToDomain(dto OrderItemDTO) (order.LineItem, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return order.LineItem{}, err
	}
	variantID, err := kernel.UUIDFromBytes(dto.VariantID[:])
	if err != nil {
		return order.LineItem{}, err
	}
	return order.NewLineItem(id, variantID, dto.Quantity, kernel.Money(dto.UnitPrice))
}
