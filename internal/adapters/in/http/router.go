package http

import (
	"net/http"

	_ "dispatch/internal/docs" // swagger 2.0 document served by echo-swagger
	"dispatch/internal/generated/servers"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

const BasePath = "/api/v1"

// NewRouter builds the echo instance serving the REST API under BasePath, the realtime
// endpoint at /ws and the API documents. realtime may be nil when websockets are disabled.
func NewRouter(server *Server, auth Authenticator, realtime http.Handler) (*echo.Echo, error) {
	swagger, err := servers.GetSwagger()
	if err != nil {
		return nil, err
	}
	validator, err := RequestValidator(swagger, BasePath)
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/openapi.yaml", func(c echo.Context) error {
		return c.Blob(http.StatusOK, "application/yaml", servers.RawSpec())
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	if realtime != nil {
		e.GET("/ws", echo.WrapHandler(realtime))
	}

	api := e.Group(BasePath, BearerAuth(auth), validator)
	servers.RegisterHandlers(api, server)
	return e, nil
}
