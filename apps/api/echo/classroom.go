package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/shulehub/shule/core"
	"github.com/shulehub/shule/core/auth"
	"github.com/shulehub/shule/core/classroom"
)

type classroomAPI struct {
	service *classroom.Service
}

func registerClassroomAPI(g *echo.Group, gate echo.MiddlewareFunc, svc *classroom.Service) {
	api := classroomAPI{service: svc}

	ag := g.Group("", gate)
	ag.GET("", api.list)
	ag.POST("", api.create)
	ag.GET("/:id", api.retrieve)
	ag.PUT("/:id", api.update)
	ag.DELETE("/:id", api.destroy)
}

// Handlers

func (api *classroomAPI) list(ctx echo.Context) error {
	actor, err := contextActor(ctx)
	if err != nil {
		return err
	}
	if !auth.Allow(auth.ActionListClassrooms, actor, "") {
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

func (api *classroomAPI) retrieve(ctx echo.Context) error {
	actor, err := contextActor(ctx)
	if err != nil {
		return err
	}
	if !auth.Allow(auth.ActionReadClassroom, actor, "") {
		return errNotAuthorized
	}

	room, err := api.service.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		if errors.Is(err, classroom.ErrNotFound) {
			return errHTTPNotFound
		}
		return err
	}
	return ctx.JSON(http.StatusOK, room)
}

func (api *classroomAPI) create(ctx echo.Context) error {
	actor, err := contextActor(ctx)
	if err != nil {
		return err
	}
	if !auth.Allow(auth.ActionCreateClassroom, actor, "") {
		return errNotAuthorized
	}

	data := new(classroom.NewClassroom)
	if err = ctx.Bind(data); err != nil {
		return err
	}
	if err = data.Validate(); err != nil {
		return err
	}

	room, err := api.service.Create(ctx.Request().Context(), *data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, room)
}

func (api *classroomAPI) update(ctx echo.Context) error {
	actor, err := contextActor(ctx)
	if err != nil {
		return err
	}
	if !auth.Allow(auth.ActionUpdateClassroom, actor, "") {
		return errNotAuthorized
	}

	data := new(classroom.UpdateClassroom)
	if err = ctx.Bind(data); err != nil {
		return err
	}
	if err = data.Validate(); err != nil {
		return err
	}

	room, err := api.service.Update(ctx.Request().Context(), ctx.Param("id"), *data)
	if err != nil {
		if errors.Is(err, classroom.ErrNotFound) {
			return errHTTPNotFound
		}
		return err
	}
	return ctx.JSON(http.StatusOK, room)
}

func (api *classroomAPI) destroy(ctx echo.Context) error {
	actor, err := contextActor(ctx)
	if err != nil {
		return err
	}
	if !auth.Allow(auth.ActionDeleteClassroom, actor, "") {
		return errNotAuthorized
	}

	room, err := api.service.Delete(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		if errors.Is(err, classroom.ErrNotFound) {
			return errHTTPNotFound
		}
		return err
	}
	return ctx.JSON(http.StatusOK, room)
}
