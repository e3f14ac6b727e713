package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/shulehub/shule/core"
	"github.com/shulehub/shule/core/auth"
	"github.com/shulehub/shule/core/subject"
)

type subjectAPI struct {
	service *subject.Service
}

func registerSubjectAPI(g *echo.Group, gate echo.MiddlewareFunc, svc *subject.Service) {
	api := subjectAPI{service: svc}

	ag := g.Group("", gate)
	ag.GET("", api.list)
	ag.POST("", api.create)
	ag.GET("/:id", api.retrieve)
	ag.PUT("/:id", api.update)
	ag.DELETE("/:id", api.destroy)
}

// Handlers

func (api *subjectAPI) list(ctx echo.Context) error {
	actor, err := contextActor(ctx)
	if err != nil {
		return err
	}
	if !auth.Allow(auth.ActionListSubjects, actor, "") {
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

func (api *subjectAPI) retrieve(ctx echo.Context) error {
	actor, err := contextActor(ctx)
	if err != nil {
		return err
	}
	if !auth.Allow(auth.ActionReadSubject, actor, "") {
		return errNotAuthorized
	}

	sub, err := api.service.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		if errors.Is(err, subject.ErrNotFound) {
			return errHTTPNotFound
		}
		return err
	}
	return ctx.JSON(http.StatusOK, sub)
}

func (api *subjectAPI) create(ctx echo.Context) error {
	actor, err := contextActor(ctx)
	if err != nil {
		return err
	}
	if !auth.Allow(auth.ActionCreateSubject, actor, "") {
		return errNotAuthorized
	}

	data := new(subject.NewSubject)
	if err = ctx.Bind(data); err != nil {
		return err
	}
	if err = data.Validate(); err != nil {
		return err
	}

	sub, err := api.service.Create(ctx.Request().Context(), *data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, sub)
}

func (api *subjectAPI) update(ctx echo.Context) error {
	actor, err := contextActor(ctx)
	if err != nil {
		return err
	}
	if !auth.Allow(auth.ActionUpdateSubject, actor, "") {
		return errNotAuthorized
	}

	data := new(subject.UpdateSubject)
	if err = ctx.Bind(data); err != nil {
		return err
	}
	if err = data.Validate(); err != nil {
		return err
	}

	sub, err := api.service.Update(ctx.Request().Context(), ctx.Param("id"), *data)
	if err != nil {
		if errors.Is(err, subject.ErrNotFound) {
			return errHTTPNotFound
		}
		return err
	}
	return ctx.JSON(http.StatusOK, sub)
}

func (api *subjectAPI) destroy(ctx echo.Context) error {
	actor, err := contextActor(ctx)
	if err != nil {
		return err
	}
	if !auth.Allow(auth.ActionDeleteSubject, actor, "") {
		return errNotAuthorized
	}

	sub, err := api.service.Delete(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		if errors.Is(err, subject.ErrNotFound) {
			return errHTTPNotFound
		}
		return err
	}
	return ctx.JSON(http.StatusOK, sub)
}
