package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/edunexus/core/attendance"
)

type attendanceApi struct {
	deps ServerDeps
}

func registerAttendanceAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := attendanceApi{deps: deps}

	ag := g.Group("/attendance", jwt)
	ag.GET("", api.query)
	ag.POST("", api.mark)
}

func (api *attendanceApi) query(ctx echo.Context) error {
	batchID, date := ctx.QueryParam("batchId"), ctx.QueryParam("date")
	switch {
	case batchID != "" && date != "":
		return ctx.JSON(http.StatusOK, api.deps.AttendanceSvc.QueryByBatchAndDate(batchID, date))
	case ctx.QueryParam("studentId") != "":
		return ctx.JSON(http.StatusOK, api.deps.AttendanceSvc.QueryByStudent(ctx.QueryParam("studentId")))
	}
	return ctx.JSON(http.StatusOK, api.deps.AttendanceSvc.QueryAll())
}

func (api *attendanceApi) mark(ctx echo.Context) error {
	var data attendance.Sheet
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Sheet")
	}
	if err := data.Validate(api.deps.Validate); err != nil {
		return err
	}

	marks, err := api.deps.AttendanceSvc.Mark(data)
	if err != nil {
		return errors.Wrap(err, "marking attendance")
	}
	return ctx.JSON(http.StatusCreated, marks)
}
