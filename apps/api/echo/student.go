package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/edunexus/core/student"
)

type studentApi struct {
	deps ServerDeps
}

func registerStudentAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := studentApi{deps: deps}

	sg := g.Group("/students", jwt)
	sg.GET("", api.query)
	sg.POST("", api.admit)
	sg.GET("/:id", api.retrieve)
	sg.PUT("/:id", api.update)
	sg.POST("/:id/toggle-status", api.toggleStatus)
}

func (api *studentApi) query(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.deps.StudentSvc.Search(ctx.QueryParam("search")))
}

func (api *studentApi) admit(ctx echo.Context) error {
	var data student.NewStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewStudent")
	}
	if err := data.Validate(api.deps.Validate); err != nil {
		return err
	}

	std, err := api.deps.StudentSvc.Admit(data)
	if err != nil {
		return errors.Wrap(err, "admitting student")
	}
	return ctx.JSON(http.StatusCreated, std)
}

func (api *studentApi) retrieve(ctx echo.Context) error {
	std, err := api.deps.StudentSvc.Get(ctx.Param("id"))
	if err != nil {
		return errHttpNotFound
	}
	return ctx.JSON(http.StatusOK, std)
}

func (api *studentApi) update(ctx echo.Context) error {
	var data student.UpdateStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateStudent")
	}
	if err := data.Validate(api.deps.Validate); err != nil {
		return err
	}

	std, err := api.deps.StudentSvc.Update(ctx.Param("id"), data)
	if err != nil {
		if errors.Cause(err) == student.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "updating student")
	}
	return ctx.JSON(http.StatusOK, std)
}

func (api *studentApi) toggleStatus(ctx echo.Context) error {
	std, err := api.deps.StudentSvc.ToggleStatus(ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == student.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "toggling student status")
	}
	return ctx.JSON(http.StatusOK, std)
}
