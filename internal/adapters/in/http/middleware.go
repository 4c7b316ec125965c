package http

import (
	"errors"
	"net/http"
	"strings"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/generated/servers"
	"dispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const actorContextKey = "dispatch.actor"

// Authenticator resolves a bearer token to the user and role it was issued for.
type Authenticator interface {
	Authenticate(token string) (kernel.UUID, kernel.Role, error)
}

// BearerAuth rejects requests without a valid "Authorization: Bearer" token and stores the
// authenticated actor on the echo context.
func BearerAuth(auth Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			header := ctx.Request().Header.Get(echo.HeaderAuthorization)
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || strings.TrimSpace(token) == "" {
				return unauthorized(ctx, "missing bearer token")
			}

			userID, role, err := auth.Authenticate(strings.TrimSpace(token))
			if err != nil {
				return unauthorized(ctx, "invalid bearer token")
			}
			actor, err := kernel.NewActor(userID, role)
			if err != nil {
				return unauthorized(ctx, "invalid bearer token")
			}

			ctx.Set(actorContextKey, actor)
			return next(ctx)
		}
	}
}

func unauthorized(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusUnauthorized, servers.Error{
		Code:    http.StatusUnauthorized,
		Message: message,
	})
}

var errNoActor = errors.New("no authenticated actor on the request")

// requireActor returns the authenticated actor when it holds one of roles.
func requireActor(ctx echo.Context, roles ...kernel.Role) (kernel.Actor, error) {
	actor, ok := ctx.Get(actorContextKey).(kernel.Actor)
	if !ok {
		return kernel.Actor{}, errNoActor
	}
	if len(roles) == 0 {
		return actor, nil
	}
	for _, role := range roles {
		if actor.Role == role {
			return actor, nil
		}
	}
	return kernel.Actor{}, errs.NewForbiddenError(ctx.Path(), "role "+actor.Role.String()+" is not allowed")
}
