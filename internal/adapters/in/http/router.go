package http

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"backoffice/api"
	"backoffice/internal/pkg/logging"
)

const (
	BaseURL  = "/api/v1"
	specPath = "/api/openapi.yaml"
)

type RouterConfig struct {
	Logger zerolog.Logger

	// ValidateRequests enables OpenAPI request validation in front of the
	// handlers.
	ValidateRequests bool
}

// NewRouter builds the echo instance serving the API, its OpenAPI document
// and Swagger UI.
func NewRouter(ctx context.Context, cfg RouterConfig, si ServerInterface) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Logger.SetLevel(log.WARN)
	e.Validator = NewRequestValidator()
	e.HTTPErrorHandler = ErrorHandler

	e.Use(middleware.Recover())
	e.Use(logging.RequestLogger(cfg.Logger))

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET(specPath, func(c echo.Context) error {
		return c.Blob(http.StatusOK, "application/yaml", api.Spec)
	})
	e.GET("/swagger/*", echoSwagger.EchoWrapHandler(echoSwagger.URL(specPath)))

	group := e.Group(BaseURL)
	if cfg.ValidateRequests {
		doc, err := LoadSpec(ctx, api.Spec)
		if err != nil {
			return nil, err
		}
		validator, err := OpenAPIValidator(doc)
		if err != nil {
			return nil, err
		}
		group.Use(validator)
	}

	RegisterHandlers(group, si, "")
	return e, nil
}
