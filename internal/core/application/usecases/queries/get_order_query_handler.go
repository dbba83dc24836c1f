package queries

import (
	"context"
	"fmt"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/model/order"
	"backoffice/internal/core/ports"
	"backoffice/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// GetOrderQueryHandler reads an order row and its items with plain SQL and
// asks the undo log how many changes can still be reverted.
type GetOrderQueryHandler struct {
	db      *gorm.DB
	undoLog ports.UndoLog
}

func NewGetOrderQueryHandler(db *gorm.DB, undoLog ports.UndoLog) (GetOrderQueryHandler, error) {
	if db == nil {
		return GetOrderQueryHandler{}, errs.NewValueIsRequiredError("db")
	}
	if undoLog == nil {
		return GetOrderQueryHandler{}, errs.NewValueIsRequiredError("undoLog")
	}
	return GetOrderQueryHandler{db: db, undoLog: undoLog}, nil
}

func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (*GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			status,
			customer_name, customer_phone, customer_email,
			shipping_address, shipping_method, tracking_code,
			notes,
			total, received, discount, labor_cost, net_profit,
			stock_committed, version, created_at, updated_at
		FROM orders
		WHERE id = ?
	`, query.OrderID().Bytes()).Row()

	resp := GetOrderQueryResponse{ID: query.OrderID()}
	err := row.Scan(
		&resp.Status,
		&resp.CustomerName, &resp.CustomerPhone, &resp.CustomerEmail,
		&resp.ShippingAddress, &resp.ShippingMethod, &resp.TrackingCode,
		&resp.Notes,
		&resp.Total, &resp.Received, &resp.Discount, &resp.LaborCost, &resp.NetProfit,
		&resp.StockCommitted, &resp.Version, &resp.CreatedAt, &resp.UpdatedAt,
	)
	if isNoRows(err) {
		return nil, errs.NewObjectNotFoundError("order", query.OrderID())
	}
	if err != nil {
		return nil, err
	}

	items, err := h.items(ctx, query.OrderID())
	if err != nil {
		return nil, err
	}
	resp.Items = items

	entries, err := h.undoLog.Entries(ctx, query.OrderID())
	if err != nil {
		return nil, fmt.Errorf("read undo log: %w", err)
	}
	resp.UndoDepth = len(entries)

	status, err := order.ParseStatus(resp.Status)
	if err != nil {
		return nil, err
	}
	resp.Snapshot = order.RestoreOrder(
		resp.ID,
		status,
		nil,
		order.Money{Total: resp.Total, Received: resp.Received, Discount: resp.Discount, LaborCost: resp.LaborCost},
		order.Customer{Name: resp.CustomerName, Phone: resp.CustomerPhone, Email: resp.CustomerEmail},
		order.Shipping{Address: resp.ShippingAddress, Method: resp.ShippingMethod, TrackingCode: resp.TrackingCode},
		resp.Notes,
		resp.StockCommitted,
		resp.Version,
		resp.CreatedAt,
		resp.UpdatedAt,
	).Snapshot()

	return &resp, nil
}

func (h GetOrderQueryHandler) items(ctx context.Context, orderID kernel.UUID) ([]OrderItemView, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, product_id, quantity, unit_price, personalization
		FROM order_items
		WHERE order_id = ?
		ORDER BY id
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]OrderItemView, 0)
	for rows.Next() {
		var item OrderItemView
		var id, productID uuid.UUID
		var personalization datatypes.JSONMap

		if err = rows.Scan(&id, &productID, &item.Quantity, &item.UnitPrice, &personalization); err != nil {
			return nil, err
		}
		if item.ID, err = kernel.UUIDFromGoogle(id); err != nil {
			return nil, err
		}
		if item.ProductID, err = kernel.UUIDFromGoogle(productID); err != nil {
			return nil, err
		}
		item.Personalization = map[string]any(personalization)
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
