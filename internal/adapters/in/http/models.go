package http

import (
	"time"

	"backoffice/internal/core/application/stockledger"
	"backoffice/internal/core/application/usecases/commands"
	"backoffice/internal/core/application/usecases/queries"
	"backoffice/internal/core/domain/model/conflict"
	"backoffice/internal/core/domain/model/ledger"
	"backoffice/internal/core/domain/model/material"
	"backoffice/internal/core/domain/model/order"
	"backoffice/internal/core/domain/model/recipe"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request bodies. Struct tags are checked by the echo validator after the
// OpenAPI middleware has accepted the raw request.

type SnapshotBody struct {
	Version int64             `json:"version" validate:"gt=0"`
	Fields  map[string]string `json:"fields"`
}

func (b *SnapshotBody) toDomain() *conflict.Snapshot {
	if b == nil {
		return nil
	}
	s := conflict.NewSnapshot(b.Version, b.Fields)
	return &s
}

type CustomerBody struct {
	Name  string `json:"name" validate:"required"`
	Phone string `json:"phone"`
	Email string `json:"email" validate:"omitempty,email"`
}

type ShippingBody struct {
	Address      string `json:"address"`
	Method       string `json:"method"`
	TrackingCode string `json:"tracking_code"`
}

type MoneyBody struct {
	Total     decimal.Decimal `json:"total" validate:"gte=0"`
	Received  decimal.Decimal `json:"received" validate:"gte=0"`
	Discount  decimal.Decimal `json:"discount" validate:"gte=0"`
	LaborCost decimal.Decimal `json:"labor_cost" validate:"gte=0"`
}

type CreateOrderItemBody struct {
	ProductID       uuid.UUID        `json:"product_id" validate:"required"`
	Quantity        int              `json:"quantity" validate:"gt=0"`
	UnitPrice       *decimal.Decimal `json:"unit_price"`
	Personalization map[string]any   `json:"personalization"`
}

type CreateOrderRequest struct {
	Customer CustomerBody          `json:"customer"`
	Shipping ShippingBody          `json:"shipping"`
	Money    MoneyBody             `json:"money"`
	Notes    string                `json:"notes"`
	Items    []CreateOrderItemBody `json:"items" validate:"required,min=1,dive"`
}

type TransitionRequest struct {
	Target string        `json:"target" validate:"required"`
	Actor  string        `json:"actor" validate:"required"`
	Base   *SnapshotBody `json:"base"`
}

type UndoRequest struct {
	Actor string `json:"actor" validate:"required"`
}

type UpdateRequest struct {
	Base    SnapshotBody      `json:"base"`
	Changes map[string]string `json:"changes" validate:"required,min=1"`
	Actor   string            `json:"actor" validate:"required"`
}

type CreateMaterialRequest struct {
	Name         string          `json:"name" validate:"required"`
	Unit         string          `json:"unit" validate:"required"`
	MinStock     decimal.Decimal `json:"min_stock_quantity" validate:"gte=0"`
	MaxStock     decimal.Decimal `json:"max_stock_quantity" validate:"gte=0"`
	UnitPrice    decimal.Decimal `json:"unit_price" validate:"gte=0"`
	SupplierID   *uuid.UUID      `json:"supplier_id"`
	OpeningStock decimal.Decimal `json:"opening_stock" validate:"gte=0"`
}

type AdjustmentRequest struct {
	Delta  decimal.Decimal `json:"delta" validate:"required"`
	Reason string          `json:"reason" validate:"required"`
}

type ReceiptRequest struct {
	Quantity decimal.Decimal `json:"quantity" validate:"gt=0"`
	Reason   string          `json:"reason"`
}

type CreateSupplierRequest struct {
	Name         string `json:"name" validate:"required"`
	ContactEmail string `json:"contact_email" validate:"omitempty,email"`
	Phone        string `json:"phone"`
}

type RecipeRowBody struct {
	RawMaterialID   *uuid.UUID      `json:"raw_material_id"`
	Type            string          `json:"type" validate:"required,oneof=MATERIAL LABOR"`
	QuantityPerUnit decimal.Decimal `json:"quantity_per_unit" validate:"gt=0"`
	Unit            string          `json:"unit"`
	OptionKey       string          `json:"option_key"`
}

type CreateProductRequest struct {
	Name          string          `json:"name" validate:"required"`
	Price         decimal.Decimal `json:"price" validate:"gte=0"`
	StockQuantity int             `json:"stock_quantity" validate:"gte=0"`
	Recipes       []RecipeRowBody `json:"recipes" validate:"dive"`
}

type ResolveConflictRequest struct {
	Resolution string `json:"resolution" validate:"required"`
	Actor      string `json:"actor" validate:"required"`
}

// Response bodies.

type ErrorResponse struct {
	Code       string     `json:"code"`
	Message    string     `json:"message"`
	Details    string     `json:"details,omitempty"`
	ConflictID *uuid.UUID `json:"conflict_id,omitempty"`
}

type OrderItemResponse struct {
	ID              uuid.UUID       `json:"id"`
	ProductID       uuid.UUID       `json:"product_id"`
	Quantity        int             `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	Personalization map[string]any  `json:"personalization,omitempty"`
}

type OrderResponse struct {
	ID             uuid.UUID           `json:"id"`
	Status         string              `json:"status"`
	Customer       CustomerBody        `json:"customer"`
	Shipping       ShippingBody        `json:"shipping"`
	Money          MoneyBody           `json:"money"`
	NetProfit      decimal.Decimal     `json:"net_profit"`
	Notes          string              `json:"notes"`
	StockCommitted bool                `json:"stock_committed"`
	Version        int64               `json:"version"`
	Items          []OrderItemResponse `json:"items"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

type OrderViewResponse struct {
	OrderResponse
	UndoDepth int          `json:"undo_depth"`
	Snapshot  SnapshotBody `json:"snapshot"`
}

type MovementResponse struct {
	ID            uuid.UUID       `json:"id"`
	RawMaterialID uuid.UUID       `json:"raw_material_id"`
	Type          string          `json:"type"`
	Quantity      decimal.Decimal `json:"quantity"`
	BalanceAfter  decimal.Decimal `json:"balance_after"`
	Reason        string          `json:"reason"`
	OrderID       *uuid.UUID      `json:"order_id,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

type TransitionResponse struct {
	Order     OrderResponse      `json:"order"`
	From      string             `json:"from"`
	Effect    string             `json:"effect"`
	Movements []MovementResponse `json:"movements"`
}

type MaterialResponse struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	Unit          string          `json:"unit"`
	StockQuantity decimal.Decimal `json:"stock_quantity"`
	MinStock      decimal.Decimal `json:"min_stock_quantity"`
	MaxStock      decimal.Decimal `json:"max_stock_quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	SupplierID    *uuid.UUID      `json:"supplier_id,omitempty"`
	Version       int64           `json:"version"`
}

type PostingResponse struct {
	Movement MovementResponse `json:"movement"`
	Material MaterialResponse `json:"material"`
}

type StockLevelResponse struct {
	MaterialID       uuid.UUID       `json:"material_id"`
	Name             string          `json:"name"`
	Unit             string          `json:"unit"`
	StockQuantity    decimal.Decimal `json:"stock_quantity"`
	MinStock         decimal.Decimal `json:"min_stock_quantity"`
	Level            string          `json:"level"`
	SuggestedReorder decimal.Decimal `json:"suggested_reorder"`
	Snapshot         SnapshotBody    `json:"snapshot"`
}

type MovementPageResponse struct {
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
	Total int64              `json:"total"`
	Items []MovementResponse `json:"items"`
}

type SupplierResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	ContactEmail string    `json:"contact_email"`
	Phone        string    `json:"phone"`
}

type ProductResponse struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stock_quantity"`
}

type ConflictResponse struct {
	ID          uuid.UUID            `json:"id"`
	EntityTable string               `json:"entity_table"`
	EntityID    uuid.UUID            `json:"entity_id"`
	Fields      []conflict.FieldDiff `json:"fields"`
	Priority    string               `json:"priority"`
	Status      string               `json:"status"`
	DetectedAt  time.Time            `json:"detected_at"`
	Resolution  string               `json:"resolution,omitempty"`
	ResolvedBy  string               `json:"resolved_by,omitempty"`
	ResolvedAt  *time.Time           `json:"resolved_at,omitempty"`
}

func snapshotResponse(s conflict.Snapshot) SnapshotBody {
	return SnapshotBody{Version: s.Version, Fields: s.Fields}
}

func orderResponse(o *order.Order) OrderResponse {
	money := o.Money()
	customer := o.Customer()
	shipping := o.Shipping()

	items := make([]OrderItemResponse, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, OrderItemResponse{
			ID:              item.ID().Bytes(),
			ProductID:       item.ProductID().Bytes(),
			Quantity:        item.Quantity(),
			UnitPrice:       item.UnitPrice(),
			Personalization: item.Personalization(),
		})
	}

	return OrderResponse{
		ID:     o.ID().Bytes(),
		Status: o.Status().String(),
		Customer: CustomerBody{
			Name: customer.Name, Phone: customer.Phone, Email: customer.Email,
		},
		Shipping: ShippingBody{
			Address: shipping.Address, Method: shipping.Method, TrackingCode: shipping.TrackingCode,
		},
		Money: MoneyBody{
			Total: money.Total, Received: money.Received, Discount: money.Discount, LaborCost: money.LaborCost,
		},
		NetProfit:      o.NetProfit(),
		Notes:          o.Notes(),
		StockCommitted: o.StockCommitted(),
		Version:        o.Version(),
		Items:          items,
		CreatedAt:      o.CreatedAt(),
		UpdatedAt:      o.UpdatedAt(),
	}
}

func orderViewResponse(v *queries.GetOrderQueryResponse) OrderViewResponse {
	items := make([]OrderItemResponse, 0, len(v.Items))
	for _, item := range v.Items {
		items = append(items, OrderItemResponse{
			ID:              item.ID.Bytes(),
			ProductID:       item.ProductID.Bytes(),
			Quantity:        item.Quantity,
			UnitPrice:       item.UnitPrice,
			Personalization: item.Personalization,
		})
	}

	return OrderViewResponse{
		OrderResponse: OrderResponse{
			ID:     v.ID.Bytes(),
			Status: v.Status,
			Customer: CustomerBody{
				Name: v.CustomerName, Phone: v.CustomerPhone, Email: v.CustomerEmail,
			},
			Shipping: ShippingBody{
				Address: v.ShippingAddress, Method: v.ShippingMethod, TrackingCode: v.TrackingCode,
			},
			Money: MoneyBody{
				Total: v.Total, Received: v.Received, Discount: v.Discount, LaborCost: v.LaborCost,
			},
			NetProfit:      v.NetProfit,
			Notes:          v.Notes,
			StockCommitted: v.StockCommitted,
			Version:        v.Version,
			Items:          items,
			CreatedAt:      v.CreatedAt,
			UpdatedAt:      v.UpdatedAt,
		},
		UndoDepth: v.UndoDepth,
		Snapshot:  snapshotResponse(v.Snapshot),
	}
}

func movementResponse(m *ledger.Movement) MovementResponse {
	resp := MovementResponse{
		ID:            m.ID().Bytes(),
		RawMaterialID: m.RawMaterialID().Bytes(),
		Type:          string(m.Type()),
		Quantity:      m.Quantity(),
		BalanceAfter:  m.BalanceAfter(),
		Reason:        m.Reason(),
		CreatedAt:     m.CreatedAt(),
	}
	if id := m.OrderID(); id != nil {
		raw := id.Bytes()
		resp.OrderID = &raw
	}
	return resp
}

func transitionResponse(r commands.TransitionResult) TransitionResponse {
	movements := make([]MovementResponse, 0, len(r.Postings))
	for _, p := range r.Postings {
		movements = append(movements, movementResponse(p.Movement))
	}
	return TransitionResponse{
		Order:     orderResponse(r.Order),
		From:      r.From.String(),
		Effect:    r.Effect.String(),
		Movements: movements,
	}
}

func materialResponse(m *material.RawMaterial) MaterialResponse {
	resp := MaterialResponse{
		ID:            m.ID().Bytes(),
		Name:          m.Name(),
		Unit:          m.Unit(),
		StockQuantity: m.StockQuantity(),
		MinStock:      m.MinStock(),
		MaxStock:      m.MaxStock(),
		UnitPrice:     m.UnitPrice(),
		Version:       m.Version(),
	}
	if id := m.SupplierID(); id != nil {
		raw := id.Bytes()
		resp.SupplierID = &raw
	}
	return resp
}

func postingResponse(p stockledger.Posting) PostingResponse {
	return PostingResponse{
		Movement: movementResponse(p.Movement),
		Material: materialResponse(p.Material),
	}
}

func stockLevelResponse(v queries.StockLevelView) StockLevelResponse {
	return StockLevelResponse{
		MaterialID:       v.MaterialID.Bytes(),
		Name:             v.Name,
		Unit:             v.Unit,
		StockQuantity:    v.StockQuantity,
		MinStock:         v.MinStock,
		Level:            v.Level.String(),
		SuggestedReorder: v.SuggestedReorder,
		Snapshot:         snapshotResponse(v.Snapshot),
	}
}

func movementPageResponse(materialID uuid.UUID, p *queries.GetMaterialMovementsQueryResponse) MovementPageResponse {
	items := make([]MovementResponse, 0, len(p.Items))
	for _, m := range p.Items {
		resp := MovementResponse{
			ID:            m.ID.Bytes(),
			RawMaterialID: materialID,
			Type:          m.Type,
			Quantity:      m.Quantity,
			BalanceAfter:  m.BalanceAfter,
			Reason:        m.Reason,
			CreatedAt:     m.CreatedAt,
		}
		if m.OrderID != nil {
			raw := m.OrderID.Bytes()
			resp.OrderID = &raw
		}
		items = append(items, resp)
	}
	return MovementPageResponse{Page: p.Page, Limit: p.Limit, Total: p.Total, Items: items}
}

func supplierResponse(s *material.Supplier) SupplierResponse {
	return SupplierResponse{
		ID:           s.ID().Bytes(),
		Name:         s.Name(),
		ContactEmail: s.ContactEmail(),
		Phone:        s.Phone(),
	}
}

func productResponse(p *recipe.Product) ProductResponse {
	return ProductResponse{
		ID:            p.ID().Bytes(),
		Name:          p.Name(),
		Price:         p.Price(),
		StockQuantity: p.StockQuantity(),
	}
}

func conflictRecordResponse(r *conflict.Record) ConflictResponse {
	return ConflictResponse{
		ID:          r.ID().Bytes(),
		EntityTable: r.EntityTable(),
		EntityID:    r.EntityID().Bytes(),
		Fields:      r.Fields(),
		Priority:    string(r.Priority()),
		Status:      string(r.Status()),
		DetectedAt:  r.DetectedAt(),
		Resolution:  r.Resolution(),
		ResolvedBy:  r.ResolvedBy(),
		ResolvedAt:  r.ResolvedAt(),
	}
}

func conflictViewResponse(v queries.ConflictView) ConflictResponse {
	return ConflictResponse{
		ID:          v.ID.Bytes(),
		EntityTable: v.EntityTable,
		EntityID:    v.EntityID.Bytes(),
		Fields:      v.Fields,
		Priority:    v.Priority,
		Status:      v.Status,
		DetectedAt:  v.DetectedAt,
		Resolution:  v.Resolution,
		ResolvedBy:  v.ResolvedBy,
		ResolvedAt:  v.ResolvedAt,
	}
}
