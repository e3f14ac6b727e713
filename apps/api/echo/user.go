package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/shulehub/shule/core"
	"github.com/shulehub/shule/core/auth"
	"github.com/shulehub/shule/core/user"
)

type userAPI struct {
	tokenSvc *auth.TokenService
	service  *user.Service
}

func registerUserAPI(g *echo.Group, gate echo.MiddlewareFunc, tokenSvc *auth.TokenService, svc *user.Service) {
	api := userAPI{tokenSvc: tokenSvc, service: svc}

	// un-authed endpoints
	g.POST("/login", api.login)

	// authed endpoints
	ag := g.Group("", gate)
	ag.GET("", api.list)
	ag.POST("", api.create)
	ag.GET("/:id", api.retrieve)
	ag.PUT("/:id", api.update)
	ag.DELETE("/:id", api.destroy)
}

// Handlers

func (api *userAPI) login(ctx echo.Context) error {
	data := new(LoginRequest)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(); err != nil {
		return err
	}

	usr, err := authenticate(ctx, data.Email, data.Password, api.service)
	if err != nil {
		return err
	}
	token, err := api.tokenSvc.IssueToken(usr.ID, usr.Email)
	if err != nil {
		return errors.Wrap(err, "issuing token")
	}

	return ctx.JSON(http.StatusOK, LoginResponse{Token: token})
}

func (api *userAPI) list(ctx echo.Context) error {
	actor, err := contextActor(ctx)
	if err != nil {
		return err
	}
	if !auth.Allow(auth.ActionListUsers, actor, "") {
		return errNotAuthorized
	}

	var q core.PageQuery
	if err = ctx.Bind(&q); err != nil {
		return err
	}

	page, err := api.service.List(ctx.Request().Context(), q)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, page)
}

func (api *userAPI) retrieve(ctx echo.Context) error {
	actor, err := contextActor(ctx)
	if err != nil {
		return err
	}
	if !auth.Allow(auth.ActionReadUser, actor, ctx.Param("id")) {
		return errNotAuthorized
	}

	usr, err := api.service.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return errHTTPNotFound
		}
		return err
	}
	return ctx.JSON(http.StatusOK, usr)
}

func (api *userAPI) create(ctx echo.Context) error {
	actor, err := contextActor(ctx)
	if err != nil {
		return err
	}
	if !auth.Allow(auth.ActionCreateUser, actor, "") {
		return errNotAuthorized
	}

	data := new(user.NewUser)
	if err = ctx.Bind(data); err != nil {
		return err
	}
	if err = data.Validate(); err != nil {
		return err
	}

	usr, err := api.service.Create(ctx.Request().Context(), *data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, usr)
}

func (api *userAPI) update(ctx echo.Context) error {
	actor, err := contextActor(ctx)
	if err != nil {
		return err
	}
	if !auth.Allow(auth.ActionUpdateUser, actor, "") {
		return errNotAuthorized
	}

	data := new(user.UpdateUser)
	if err = ctx.Bind(data); err != nil {
		return err
	}
	if err = data.Validate(); err != nil {
		return err
	}

	usr, err := api.service.Update(ctx.Request().Context(), ctx.Param("id"), *data)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return errHTTPNotFound
		}
		return err
	}
	return ctx.JSON(http.StatusOK, usr)
}

func (api *userAPI) destroy(ctx echo.Context) error {
	actor, err := contextActor(ctx)
	if err != nil {
		return err
	}
	if !auth.Allow(auth.ActionDeleteUser, actor, "") {
		return errNotAuthorized
	}

	usr, err := api.service.Delete(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return errHTTPNotFound
		}
		return err
	}
	return ctx.JSON(http.StatusOK, usr)
}

type (
	LoginRequest struct {
		Email    string `json:"email" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		Token string `json:"token"`
	}
)

func (lr *LoginRequest) Validate() error {
	lr.Email = core.CleanString(lr.Email)
	return core.Validate.Struct(lr)
}
