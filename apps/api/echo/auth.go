package echoapi

import (
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/shulehub/shule/core/auth"
	"github.com/shulehub/shule/core/user"
)

const (
	bearerPrefix    = "Bearer "
	contextActorKey = "actor"
)

// authGate verifies the bearer token of an incoming request, resolves the
// identity it names and attaches the Actor to the request context. Missing
// token, invalid token and unknown subject all produce the same 401; the
// distinction only matters for diagnostics.
func authGate(tokenSvc *auth.TokenService, svc *user.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			header := ctx.Request().Header.Get(echo.HeaderAuthorization)
			if !strings.HasPrefix(header, bearerPrefix) {
				return errNotAuthorized
			}

			claims, err := tokenSvc.VerifyToken(strings.TrimPrefix(header, bearerPrefix))
			if err != nil {
				return errNotAuthorized
			}

			// the account may have been deleted since the token was issued
			usr, err := svc.GetByEmail(ctx.Request().Context(), claims.Email)
			if err != nil {
				if errors.Is(err, user.ErrNotFound) {
					return errNotAuthorized
				}
				return errors.Wrap(err, "finding user by email")
			}

			ctx.Set(contextActorKey, auth.Actor{ID: usr.ID, Role: usr.Role})
			return next(ctx)
		}
	}
}

func contextActor(ctx echo.Context) (auth.Actor, error) {
	if actor, ok := ctx.Get(contextActorKey).(auth.Actor); ok {
		return actor, nil
	}
	return auth.Actor{}, errNotAuthorized
}

// authenticate checks a login attempt. An unknown email and a wrong password
// fail identically so accounts cannot be enumerated.
func authenticate(ctx echo.Context, email, pwd string, svc *user.Service) (user.User, error) {
	usr, err := svc.GetByEmail(ctx.Request().Context(), email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, errInvalidCredentials
		}
		return user.User{}, errors.Wrap(err, "finding user by email")
	}
	if err = usr.CheckPassword(pwd); err != nil {
		return user.User{}, errInvalidCredentials
	}
	return usr, nil
}
