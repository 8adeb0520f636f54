package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/edunexus/core/teacher"
)

type teacherApi struct {
	deps ServerDeps
}

func registerTeacherAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := teacherApi{deps: deps}

	tg := g.Group("/teachers", jwt)
	tg.GET("", api.query)
	tg.POST("", api.create)
	tg.GET("/:id", api.retrieve)
	tg.PUT("/:id", api.update)
}

func (api *teacherApi) query(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.deps.TeacherSvc.QueryAll())
}

func (api *teacherApi) create(ctx echo.Context) error {
	var data teacher.NewTeacher
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewTeacher")
	}
	if err := data.Validate(api.deps.Validate); err != nil {
		return err
	}

	tch, err := api.deps.TeacherSvc.Add(data)
	if err != nil {
		return errors.Wrap(err, "adding teacher")
	}
	return ctx.JSON(http.StatusCreated, tch)
}

func (api *teacherApi) retrieve(ctx echo.Context) error {
	tch, err := api.deps.TeacherSvc.Get(ctx.Param("id"))
	if err != nil {
		return errHttpNotFound
	}
	return ctx.JSON(http.StatusOK, tch)
}

func (api *teacherApi) update(ctx echo.Context) error {
	var data teacher.UpdateTeacher
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateTeacher")
	}
	if err := data.Validate(api.deps.Validate); err != nil {
		return err
	}

	tch, err := api.deps.TeacherSvc.Update(ctx.Param("id"), data)
	if err != nil {
		if errors.Cause(err) == teacher.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "updating teacher")
	}
	return ctx.JSON(http.StatusOK, tch)
}
