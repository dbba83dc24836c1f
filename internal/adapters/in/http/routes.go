package http

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// ServerInterface lists one method per operation of api/openapi.yaml.
type ServerInterface interface {
	GetHealth(ctx echo.Context) error
	CreateOrder(ctx echo.Context) error
	GetOrder(ctx echo.Context, id uuid.UUID) error
	UpdateOrderDetails(ctx echo.Context, id uuid.UUID) error
	TransitionOrder(ctx echo.Context, id uuid.UUID) error
	UndoOrder(ctx echo.Context, id uuid.UUID) error
	CreateMaterial(ctx echo.Context) error
	GetLowStockReport(ctx echo.Context) error
	UpdateMaterial(ctx echo.Context, id uuid.UUID) error
	GetStockLevel(ctx echo.Context, id uuid.UUID) error
	AdjustStock(ctx echo.Context, id uuid.UUID) error
	ReceiveStock(ctx echo.Context, id uuid.UUID) error
	GetMaterialMovements(ctx echo.Context, id uuid.UUID, params MovementsParams) error
	CreateSupplier(ctx echo.Context) error
	CreateProduct(ctx echo.Context) error
	ListConflicts(ctx echo.Context, params ListConflictsParams) error
	ResolveConflict(ctx echo.Context, id uuid.UUID) error
}

type MovementsParams struct {
	Page  *int
	Limit *int
}

type ListConflictsParams struct {
	Status *string
}

// EchoRouter is satisfied by both *echo.Echo and *echo.Group.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PATCH(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// serverInterfaceWrapper binds path and query parameters before delegating.
type serverInterfaceWrapper struct {
	handler ServerInterface
}

// RegisterHandlers mounts every operation under baseURL.
func RegisterHandlers(router EchoRouter, si ServerInterface, baseURL string) {
	w := serverInterfaceWrapper{handler: si}

	router.GET(baseURL+"/health", si.GetHealth)
	router.POST(baseURL+"/orders", si.CreateOrder)
	router.GET(baseURL+"/orders/:id", w.withID(si.GetOrder))
	router.PATCH(baseURL+"/orders/:id", w.withID(si.UpdateOrderDetails))
	router.POST(baseURL+"/orders/:id/transitions", w.withID(si.TransitionOrder))
	router.POST(baseURL+"/orders/:id/undo", w.withID(si.UndoOrder))
	router.POST(baseURL+"/materials", si.CreateMaterial)
	router.GET(baseURL+"/materials/low-stock", si.GetLowStockReport)
	router.PATCH(baseURL+"/materials/:id", w.withID(si.UpdateMaterial))
	router.GET(baseURL+"/materials/:id/stock-level", w.withID(si.GetStockLevel))
	router.POST(baseURL+"/materials/:id/adjustments", w.withID(si.AdjustStock))
	router.POST(baseURL+"/materials/:id/receipts", w.withID(si.ReceiveStock))
	router.GET(baseURL+"/materials/:id/movements", w.GetMaterialMovements)
	router.POST(baseURL+"/suppliers", si.CreateSupplier)
	router.POST(baseURL+"/products", si.CreateProduct)
	router.GET(baseURL+"/conflicts", w.ListConflicts)
	router.POST(baseURL+"/conflicts/:id/resolve", w.withID(si.ResolveConflict))
}

func (w serverInterfaceWrapper) withID(next func(echo.Context, uuid.UUID) error) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		id, err := bindID(ctx)
		if err != nil {
			return err
		}
		return next(ctx, id)
	}
}

func (w serverInterfaceWrapper) GetMaterialMovements(ctx echo.Context) error {
	id, err := bindID(ctx)
	if err != nil {
		return err
	}

	var params MovementsParams
	if err = runtime.BindQueryParameter("form", true, false, "page", ctx.QueryParams(), &params.Page); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid format for parameter page").SetInternal(err)
	}
	if err = runtime.BindQueryParameter("form", true, false, "limit", ctx.QueryParams(), &params.Limit); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid format for parameter limit").SetInternal(err)
	}

	return w.handler.GetMaterialMovements(ctx, id, params)
}

func (w serverInterfaceWrapper) ListConflicts(ctx echo.Context) error {
	var params ListConflictsParams
	if err := runtime.BindQueryParameter("form", true, false, "status", ctx.QueryParams(), &params.Status); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid format for parameter status").SetInternal(err)
	}
	return w.handler.ListConflicts(ctx, params)
}

func bindID(ctx echo.Context) (uuid.UUID, error) {
	var id uuid.UUID
	err := runtime.BindStyledParameterWithOptions("simple", "id", ctx.Param("id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "invalid format for parameter id").SetInternal(err)
	}
	return id, nil
}
