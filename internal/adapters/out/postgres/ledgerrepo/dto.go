// Package ledgerrepo is the only writer of raw material balances. Every write
// pairs an atomic balance increment with an append-only movement row.
package ledgerrepo

import (
	"time"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/model/ledger"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MovementDTO is one stock_movements row. Rows are never updated or deleted.
type MovementDTO struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	RawMaterialID uuid.UUID       `gorm:"type:uuid;not null;index:idx_movements_material_created,priority:1"`
	Type          string          `gorm:"type:varchar(16);not null"`
	Quantity      decimal.Decimal `gorm:"type:numeric(14,3);not null"`
	BalanceAfter  decimal.Decimal `gorm:"type:numeric(14,3);not null"`
	Reason        string          `gorm:"type:text;not null"`
	OrderID       *uuid.UUID      `gorm:"type:uuid;index"`
	CreatedAt     time.Time       `gorm:"not null;autoCreateTime:false;index:idx_movements_material_created,priority:2"`
}

func (MovementDTO) TableName() string {
	return "stock_movements"
}

func fromDomain(m *ledger.Movement, balanceAfter decimal.Decimal) MovementDTO {
	var orderID *uuid.UUID
	if id := m.OrderID(); id != nil {
		raw := id.Bytes()
		orderID = &raw
	}

	return MovementDTO{
		ID:            m.ID().Bytes(),
		RawMaterialID: m.RawMaterialID().Bytes(),
		Type:          string(m.Type()),
		Quantity:      m.Quantity(),
		BalanceAfter:  balanceAfter,
		Reason:        m.Reason(),
		OrderID:       orderID,
		CreatedAt:     m.CreatedAt(),
	}
}

// ToDomain rebuilds a booked movement from its row.
func ToDomain(dto MovementDTO) (*ledger.Movement, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}
	materialID, err := kernel.UUIDFromGoogle(dto.RawMaterialID)
	if err != nil {
		return nil, err
	}
	typ, err := ledger.ParseMovementType(dto.Type)
	if err != nil {
		return nil, err
	}

	var orderID *kernel.UUID
	if dto.OrderID != nil {
		oID, orderErr := kernel.UUIDFromGoogle(*dto.OrderID)
		if orderErr != nil {
			return nil, orderErr
		}
		orderID = &oID
	}

	return ledger.RestoreMovement(id, materialID, typ, dto.Quantity, dto.BalanceAfter, dto.Reason, orderID, dto.CreatedAt), nil
}
