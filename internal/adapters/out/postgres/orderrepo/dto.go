// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// Orders are stored with their items and an append-only status change audit table.
package orderrepo

import (
	"time"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Status is stored by name so ad-hoc SQL and reports read naturally.
type OrderDTO struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Status          string          `gorm:"type:varchar(32);not null;index"`
	CustomerName    string          `gorm:"type:varchar(255);not null"`
	CustomerPhone   string          `gorm:"type:varchar(64)"`
	CustomerEmail   string          `gorm:"type:varchar(255)"`
	ShippingAddress string          `gorm:"type:text"`
	ShippingMethod  string          `gorm:"type:varchar(64)"`
	TrackingCode    string          `gorm:"type:varchar(128)"`
	Notes           string          `gorm:"type:text"`
	Total           decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	Received        decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	Discount        decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	LaborCost       decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	NetProfit       decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	StockCommitted  bool            `gorm:"not null;default:false"`
	Version         int64           `gorm:"not null;default:1"`
	CreatedAt       time.Time       `gorm:"not null;autoCreateTime:false"`
	UpdatedAt       time.Time       `gorm:"not null;autoUpdateTime:false"`
	Items           []ItemDTO       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO is one order line. Personalization keeps the free-form options the
// customer picked; its keys select optional recipe rows.
type ItemDTO struct {
	ID              uuid.UUID         `gorm:"type:uuid;primaryKey"`
	OrderID         uuid.UUID         `gorm:"type:uuid;not null;index"`
	ProductID       uuid.UUID         `gorm:"type:uuid;not null;index"`
	Quantity        int               `gorm:"not null"`
	UnitPrice       decimal.Decimal   `gorm:"type:numeric(14,2);not null"`
	Personalization datatypes.JSONMap `gorm:"type:jsonb"`
}

func (ItemDTO) TableName() string {
	return "order_items"
}

// StatusChangeDTO is one row of the transition audit trail.
type StatusChangeDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID `gorm:"type:uuid;not null;index"`
	FromStatus string    `gorm:"type:varchar(32);not null"`
	ToStatus   string    `gorm:"type:varchar(32);not null"`
	Actor      string    `gorm:"type:varchar(128);not null"`
	Undo       bool      `gorm:"not null;default:false"`
	ChangedAt  time.Time `gorm:"not null;index"`
}

func (StatusChangeDTO) TableName() string {
	return "order_status_changes"
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(o *order.Order) OrderDTO {
	money := o.Money()
	customer := o.Customer()
	shipping := o.Shipping()

	items := make([]ItemDTO, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, ItemDTO{
			ID:              item.ID().Bytes(),
			OrderID:         o.ID().Bytes(),
			ProductID:       item.ProductID().Bytes(),
			Quantity:        item.Quantity(),
			UnitPrice:       item.UnitPrice(),
			Personalization: item.Personalization(),
		})
	}

	return OrderDTO{
		ID:              o.ID().Bytes(),
		Status:          o.Status().String(),
		CustomerName:    customer.Name,
		CustomerPhone:   customer.Phone,
		CustomerEmail:   customer.Email,
		ShippingAddress: shipping.Address,
		ShippingMethod:  shipping.Method,
		TrackingCode:    shipping.TrackingCode,
		Notes:           o.Notes(),
		Total:           money.Total,
		Received:        money.Received,
		Discount:        money.Discount,
		LaborCost:       money.LaborCost,
		NetProfit:       o.NetProfit(),
		StockCommitted:  o.StockCommitted(),
		Version:         o.Version(),
		CreatedAt:       o.CreatedAt(),
		UpdatedAt:       o.UpdatedAt(),
		Items:           items,
	}
}

// toDomain rebuilds the aggregate with RestoreOrder. net_profit is derived and
// not read back.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}
	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	items := make([]*order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		itemID, err := kernel.UUIDFromGoogle(itemDTO.ID)
		if err != nil {
			return nil, err
		}
		productID, err := kernel.UUIDFromGoogle(itemDTO.ProductID)
		if err != nil {
			return nil, err
		}
		item, err := order.NewItem(itemID, productID, itemDTO.Quantity, itemDTO.UnitPrice, itemDTO.Personalization)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return order.RestoreOrder(
		id,
		status,
		items,
		order.Money{Total: dto.Total, Received: dto.Received, Discount: dto.Discount, LaborCost: dto.LaborCost},
		order.Customer{Name: dto.CustomerName, Phone: dto.CustomerPhone, Email: dto.CustomerEmail},
		order.Shipping{Address: dto.ShippingAddress, Method: dto.ShippingMethod, TrackingCode: dto.TrackingCode},
		dto.Notes,
		dto.StockCommitted,
		dto.Version,
		dto.CreatedAt,
		dto.UpdatedAt,
	), nil
}

func statusChangeFromDomain(change order.StatusChange) StatusChangeDTO {
	return StatusChangeDTO{
		ID:         kernel.NewUUID().Bytes(),
		OrderID:    change.OrderID.Bytes(),
		FromStatus: change.From.String(),
		ToStatus:   change.To.String(),
		Actor:      change.Actor,
		Undo:       change.Undo,
		ChangedAt:  change.ChangedAt,
	}
}
