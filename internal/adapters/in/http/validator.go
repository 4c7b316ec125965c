package http

import (
	"errors"
	"net/http"
	"strings"

	"dispatch/internal/generated/servers"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/gorillamux"
	"github.com/labstack/echo/v4"
)

// RequestValidator checks requests under basePath against the OpenAPI document before they
// reach the handlers. Requests for paths the document does not describe pass through.
func RequestValidator(swagger *openapi3.T, basePath string) (echo.MiddlewareFunc, error) {
	// Paths are matched without the server prefix, which is stripped below.
	swagger.Servers = nil
	router, err := gorillamux.NewRouter(swagger)
	if err != nil {
		return nil, err
	}

	options := &openapi3filter.Options{
		AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			req := ctx.Request()
			if !strings.HasPrefix(req.URL.Path, basePath) {
				return next(ctx)
			}

			routed := req.Clone(req.Context())
			routed.URL.Path = strings.TrimPrefix(req.URL.Path, basePath)
			route, pathParams, err := router.FindRoute(routed)
			if err != nil {
				if errors.Is(err, routers.ErrPathNotFound) || errors.Is(err, routers.ErrMethodNotAllowed) {
					return next(ctx)
				}
				return badRequest(ctx, err.Error())
			}

			input := &openapi3filter.RequestValidationInput{
				Request:    routed,
				PathParams: pathParams,
				Route:      route,
				Options:    options,
			}
			err = openapi3filter.ValidateRequest(req.Context(), input)
			// The validator consumed the body and left a replayable copy on the clone.
			req.Body = routed.Body
			if err != nil {
				return ctx.JSON(http.StatusBadRequest, servers.Error{
					Code:    http.StatusBadRequest,
					Message: validationMessage(err),
				})
			}
			return next(ctx)
		}
	}, nil
}

func validationMessage(err error) string {
	reason := err.Error()
	var schemaErr *openapi3.SchemaError
	if errors.As(err, &schemaErr) {
		reason = schemaErr.Reason
		if path := schemaErr.JSONPointer(); len(path) > 0 {
			reason = strings.Join(path, ".") + ": " + reason
		}
	}

	var reqErr *openapi3filter.RequestError
	if errors.As(err, &reqErr) && reqErr.Parameter != nil {
		return "parameter " + reqErr.Parameter.Name + ": " + reason
	}
	return reason
}
