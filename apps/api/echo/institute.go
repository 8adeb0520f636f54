package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/edunexus/core/institute"
)

type instituteApi struct {
	deps ServerDeps
}

func registerInstituteAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := instituteApi{deps: deps}

	ig := g.Group("/institute", jwt)
	ig.GET("", api.retrieve)
	ig.PUT("", api.update, adminMiddleware())
}

func (api *instituteApi) retrieve(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.deps.InstituteSvc.Get())
}

func (api *instituteApi) update(ctx echo.Context) error {
	var data institute.UpdateProfile
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateProfile")
	}
	if err := data.Validate(api.deps.Validate); err != nil {
		return err
	}

	inst, err := api.deps.InstituteSvc.Update(data)
	if err != nil {
		return errors.Wrap(err, "updating institute profile")
	}
	return ctx.JSON(http.StatusOK, inst)
}
