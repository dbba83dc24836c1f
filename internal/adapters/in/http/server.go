// Package http is the inbound REST adapter. Routes mirror api/openapi.yaml;
// every handler turns a request into a command or query and maps the result
// back to JSON.
package http

import (
	"net/http"

	"backoffice/internal/core/application/usecases/commands"
	"backoffice/internal/core/application/usecases/queries"
	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/model/order"
	"backoffice/internal/core/domain/model/recipe"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Handlers groups the use cases the server delegates to.
type Handlers struct {
	CreateOrder        commands.CreateOrderCommandHandler
	TransitionOrder    commands.TransitionOrderCommandHandler
	UndoOrder          commands.UndoOrderCommandHandler
	UpdateOrderDetails commands.UpdateOrderDetailsCommandHandler
	StockBooking       commands.StockBookingHandler
	CreateMaterial     commands.CreateMaterialCommandHandler
	UpdateMaterial     commands.UpdateMaterialCommandHandler
	CreateSupplier     commands.CreateSupplierCommandHandler
	CreateProduct      commands.CreateProductCommandHandler
	ResolveConflict    commands.ResolveConflictCommandHandler

	GetOrder             queries.GetOrderQueryHandler
	GetStockLevel        queries.GetStockLevelQueryHandler
	GetLowStockReport    queries.GetLowStockReportQueryHandler
	GetMaterialMovements queries.GetMaterialMovementsQueryHandler
	ListConflicts        queries.ListConflictsQueryHandler
}

// Server implements ServerInterface.
type Server struct {
	h Handlers
}

func NewServer(handlers Handlers) *Server {
	return &Server{h: handlers}
}

var _ ServerInterface = (*Server)(nil)

func (s *Server) GetHealth(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req CreateOrderRequest
	if err := bindBody(ctx, &req); err != nil {
		return err
	}

	items := make([]commands.OrderItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		productID, err := kernel.UUIDFromGoogle(item.ProductID)
		if err != nil {
			return err
		}
		items = append(items, commands.OrderItemInput{
			ProductID:       productID,
			Quantity:        item.Quantity,
			UnitPrice:       item.UnitPrice,
			Personalization: item.Personalization,
		})
	}

	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(),
		order.Customer{Name: req.Customer.Name, Phone: req.Customer.Phone, Email: req.Customer.Email},
		order.Shipping{Address: req.Shipping.Address, Method: req.Shipping.Method, TrackingCode: req.Shipping.TrackingCode},
		order.Money{
			Total:     req.Money.Total,
			Received:  req.Money.Received,
			Discount:  req.Money.Discount,
			LaborCost: req.Money.LaborCost,
		},
		req.Notes,
		items,
	)
	if err != nil {
		return err
	}

	o, err := s.h.CreateOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, orderResponse(o))
}

// GetOrder handles GET /api/v1/orders/{id}.
func (s *Server) GetOrder(ctx echo.Context, id uuid.UUID) error {
	orderID, err := kernel.UUIDFromGoogle(id)
	if err != nil {
		return err
	}
	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return err
	}

	view, err := s.h.GetOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, orderViewResponse(view))
}

// UpdateOrderDetails handles PATCH /api/v1/orders/{id}.
func (s *Server) UpdateOrderDetails(ctx echo.Context, id uuid.UUID) error {
	var req UpdateRequest
	if err := bindBody(ctx, &req); err != nil {
		return err
	}
	orderID, err := kernel.UUIDFromGoogle(id)
	if err != nil {
		return err
	}

	cmd, err := commands.NewUpdateOrderDetailsCommand(orderID, *req.Base.toDomain(), req.Changes, req.Actor)
	if err != nil {
		return err
	}

	o, err := s.h.UpdateOrderDetails.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, orderResponse(o))
}

// TransitionOrder handles POST /api/v1/orders/{id}/transitions.
func (s *Server) TransitionOrder(ctx echo.Context, id uuid.UUID) error {
	var req TransitionRequest
	if err := bindBody(ctx, &req); err != nil {
		return err
	}
	orderID, err := kernel.UUIDFromGoogle(id)
	if err != nil {
		return err
	}
	target, err := order.ParseStatus(req.Target)
	if err != nil {
		return err
	}

	cmd, err := commands.NewTransitionOrderCommand(orderID, target, req.Actor, req.Base.toDomain())
	if err != nil {
		return err
	}

	result, err := s.h.TransitionOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, transitionResponse(result))
}

// UndoOrder handles POST /api/v1/orders/{id}/undo.
func (s *Server) UndoOrder(ctx echo.Context, id uuid.UUID) error {
	var req UndoRequest
	if err := bindBody(ctx, &req); err != nil {
		return err
	}
	orderID, err := kernel.UUIDFromGoogle(id)
	if err != nil {
		return err
	}

	cmd, err := commands.NewUndoOrderCommand(orderID, req.Actor)
	if err != nil {
		return err
	}

	result, err := s.h.UndoOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, transitionResponse(result))
}

// CreateMaterial handles POST /api/v1/materials.
func (s *Server) CreateMaterial(ctx echo.Context) error {
	var req CreateMaterialRequest
	if err := bindBody(ctx, &req); err != nil {
		return err
	}
	supplierID, err := optionalID(req.SupplierID)
	if err != nil {
		return err
	}

	cmd, err := commands.NewCreateMaterialCommand(
		kernel.NewUUID(), req.Name, req.Unit,
		req.MinStock, req.MaxStock, req.UnitPrice,
		supplierID, req.OpeningStock,
	)
	if err != nil {
		return err
	}

	m, err := s.h.CreateMaterial.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, materialResponse(m))
}

// GetLowStockReport handles GET /api/v1/materials/low-stock.
func (s *Server) GetLowStockReport(ctx echo.Context) error {
	report, err := s.h.GetLowStockReport.Handle(ctx.Request().Context(), queries.NewGetLowStockReportQuery())
	if err != nil {
		return err
	}

	response := make([]StockLevelResponse, len(report))
	for i, view := range report {
		response[i] = stockLevelResponse(view)
	}
	return ctx.JSON(http.StatusOK, response)
}

// UpdateMaterial handles PATCH /api/v1/materials/{id}.
func (s *Server) UpdateMaterial(ctx echo.Context, id uuid.UUID) error {
	var req UpdateRequest
	if err := bindBody(ctx, &req); err != nil {
		return err
	}
	materialID, err := kernel.UUIDFromGoogle(id)
	if err != nil {
		return err
	}

	cmd, err := commands.NewUpdateMaterialCommand(materialID, *req.Base.toDomain(), req.Changes, req.Actor)
	if err != nil {
		return err
	}

	m, err := s.h.UpdateMaterial.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, materialResponse(m))
}

// GetStockLevel handles GET /api/v1/materials/{id}/stock-level.
func (s *Server) GetStockLevel(ctx echo.Context, id uuid.UUID) error {
	materialID, err := kernel.UUIDFromGoogle(id)
	if err != nil {
		return err
	}
	query, err := queries.NewGetStockLevelQuery(materialID)
	if err != nil {
		return err
	}

	view, err := s.h.GetStockLevel.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, stockLevelResponse(*view))
}

// AdjustStock handles POST /api/v1/materials/{id}/adjustments.
func (s *Server) AdjustStock(ctx echo.Context, id uuid.UUID) error {
	var req AdjustmentRequest
	if err := bindBody(ctx, &req); err != nil {
		return err
	}
	materialID, err := kernel.UUIDFromGoogle(id)
	if err != nil {
		return err
	}

	cmd, err := commands.NewAdjustStockCommand(materialID, req.Delta, req.Reason)
	if err != nil {
		return err
	}

	posting, err := s.h.StockBooking.HandleAdjust(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, postingResponse(posting))
}

// ReceiveStock handles POST /api/v1/materials/{id}/receipts.
func (s *Server) ReceiveStock(ctx echo.Context, id uuid.UUID) error {
	var req ReceiptRequest
	if err := bindBody(ctx, &req); err != nil {
		return err
	}
	materialID, err := kernel.UUIDFromGoogle(id)
	if err != nil {
		return err
	}

	cmd, err := commands.NewReceiveStockCommand(materialID, req.Quantity, req.Reason)
	if err != nil {
		return err
	}

	posting, err := s.h.StockBooking.HandleReceive(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, postingResponse(posting))
}

// GetMaterialMovements handles GET /api/v1/materials/{id}/movements.
func (s *Server) GetMaterialMovements(ctx echo.Context, id uuid.UUID, params MovementsParams) error {
	materialID, err := kernel.UUIDFromGoogle(id)
	if err != nil {
		return err
	}

	var page, limit int
	if params.Page != nil {
		page = *params.Page
	}
	if params.Limit != nil {
		limit = *params.Limit
	}
	query, err := queries.NewGetMaterialMovementsQuery(materialID, page, limit)
	if err != nil {
		return err
	}

	result, err := s.h.GetMaterialMovements.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, movementPageResponse(id, result))
}

// CreateSupplier handles POST /api/v1/suppliers.
func (s *Server) CreateSupplier(ctx echo.Context) error {
	var req CreateSupplierRequest
	if err := bindBody(ctx, &req); err != nil {
		return err
	}

	supplier, err := s.h.CreateSupplier.Handle(ctx.Request().Context(),
		kernel.NewUUID(), req.Name, req.ContactEmail, req.Phone)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, supplierResponse(supplier))
}

// CreateProduct handles POST /api/v1/products.
func (s *Server) CreateProduct(ctx echo.Context) error {
	var req CreateProductRequest
	if err := bindBody(ctx, &req); err != nil {
		return err
	}

	rows := make([]commands.RecipeInput, 0, len(req.Recipes))
	for _, row := range req.Recipes {
		materialID, err := optionalID(row.RawMaterialID)
		if err != nil {
			return err
		}
		typ, err := recipe.ParseType(row.Type)
		if err != nil {
			return err
		}
		rows = append(rows, commands.RecipeInput{
			RawMaterialID:   materialID,
			Type:            typ,
			QuantityPerUnit: row.QuantityPerUnit,
			Unit:            row.Unit,
			OptionKey:       row.OptionKey,
		})
	}

	cmd, err := commands.NewCreateProductCommand(kernel.NewUUID(), req.Name, req.Price, req.StockQuantity, rows)
	if err != nil {
		return err
	}

	product, err := s.h.CreateProduct.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, productResponse(product))
}

// ListConflicts handles GET /api/v1/conflicts.
func (s *Server) ListConflicts(ctx echo.Context, params ListConflictsParams) error {
	status := ""
	if params.Status != nil {
		status = *params.Status
	}
	query, err := queries.NewListConflictsQuery(status)
	if err != nil {
		return err
	}

	views, err := s.h.ListConflicts.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	response := make([]ConflictResponse, len(views))
	for i, v := range views {
		response[i] = conflictViewResponse(v)
	}
	return ctx.JSON(http.StatusOK, response)
}

// ResolveConflict handles POST /api/v1/conflicts/{id}/resolve.
func (s *Server) ResolveConflict(ctx echo.Context, id uuid.UUID) error {
	var req ResolveConflictRequest
	if err := bindBody(ctx, &req); err != nil {
		return err
	}
	recordID, err := kernel.UUIDFromGoogle(id)
	if err != nil {
		return err
	}

	cmd, err := commands.NewResolveConflictCommand(recordID, req.Resolution, req.Actor)
	if err != nil {
		return err
	}

	record, err := s.h.ResolveConflict.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, conflictRecordResponse(record))
}

func bindBody(ctx echo.Context, dst any) error {
	if err := (&echo.DefaultBinder{}).BindBody(ctx, dst); err != nil {
		return err
	}
	return ctx.Validate(dst)
}

func optionalID(id *uuid.UUID) (*kernel.UUID, error) {
	if id == nil {
		return nil, nil //nolint:nilnil // absent reference
	}
	k, err := kernel.UUIDFromGoogle(*id)
	if err != nil {
		return nil, err
	}
	return &k, nil
}
