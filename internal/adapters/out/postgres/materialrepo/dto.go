// Package materialrepo persists raw materials and suppliers.
package materialrepo

import (
	"time"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/model/material"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MaterialDTO is the raw_materials row. stock_quantity is only ever moved by
// the ledger repository.
type MaterialDTO struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name             string          `gorm:"type:varchar(255);not null"`
	Unit             string          `gorm:"type:varchar(32);not null"`
	StockQuantity    decimal.Decimal `gorm:"type:numeric(14,3);not null;default:0"`
	MinStockQuantity decimal.Decimal `gorm:"type:numeric(14,3);not null;default:0"`
	MaxStockQuantity decimal.Decimal `gorm:"type:numeric(14,3);not null;default:0"`
	UnitPrice        decimal.Decimal `gorm:"type:numeric(14,4);not null;default:0"`
	SupplierID       *uuid.UUID      `gorm:"type:uuid;index"`
	Version          int64           `gorm:"not null;default:1"`
	CreatedAt        time.Time       `gorm:"not null;autoCreateTime:false"`
	UpdatedAt        time.Time       `gorm:"not null;autoUpdateTime:false"`
}

func (MaterialDTO) TableName() string {
	return "raw_materials"
}

type SupplierDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string    `gorm:"type:varchar(255);not null"`
	ContactEmail string    `gorm:"type:varchar(255)"`
	Phone        string    `gorm:"type:varchar(64)"`
}

func (SupplierDTO) TableName() string {
	return "suppliers"
}

func fromDomain(m *material.RawMaterial) MaterialDTO {
	var supplierID *uuid.UUID
	if id := m.SupplierID(); id != nil {
		raw := id.Bytes()
		supplierID = &raw
	}

	return MaterialDTO{
		ID:               m.ID().Bytes(),
		Name:             m.Name(),
		Unit:             m.Unit(),
		StockQuantity:    m.StockQuantity(),
		MinStockQuantity: m.MinStock(),
		MaxStockQuantity: m.MaxStock(),
		UnitPrice:        m.UnitPrice(),
		SupplierID:       supplierID,
		Version:          m.Version(),
		CreatedAt:        m.CreatedAt(),
		UpdatedAt:        m.UpdatedAt(),
	}
}

// ToDomain rebuilds a material from its row. The ledger repository uses it to
// return the balance it just wrote.
func ToDomain(dto MaterialDTO) (*material.RawMaterial, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}

	var supplierID *kernel.UUID
	if dto.SupplierID != nil {
		sID, supplierErr := kernel.UUIDFromGoogle(*dto.SupplierID)
		if supplierErr != nil {
			return nil, supplierErr
		}
		supplierID = &sID
	}

	return material.RestoreRawMaterial(
		id,
		dto.Name,
		dto.Unit,
		dto.StockQuantity,
		dto.MinStockQuantity,
		dto.MaxStockQuantity,
		dto.UnitPrice,
		supplierID,
		dto.Version,
		dto.CreatedAt,
		dto.UpdatedAt,
	), nil
}

func supplierFromDomain(s *material.Supplier) SupplierDTO {
	return SupplierDTO{
		ID:           s.ID().Bytes(),
		Name:         s.Name(),
		ContactEmail: s.ContactEmail(),
		Phone:        s.Phone(),
	}
}
