package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/edunexus/core/batch"
	"github.com/trezcool/edunexus/core/record"
)

// BatchDetail joins a Batch with its parsed timing and resolved teacher
// name; a dangling teacher reference renders as "Unassigned".
type BatchDetail struct {
	record.Batch
	TeacherName string       `json:"teacherName"`
	Schedule    batch.Timing `json:"-"`
	Days        []string     `json:"days,omitempty"`
	Start       string       `json:"start,omitempty"`
	End         string       `json:"end,omitempty"`
}

type batchApi struct {
	deps ServerDeps
}

func registerBatchAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := batchApi{deps: deps}

	bg := g.Group("/batches", jwt)
	bg.GET("", api.query)
	bg.POST("", api.create)
	bg.GET("/:id", api.retrieve)
	bg.PUT("/:id", api.update)
	bg.DELETE("/:id", api.destroy)
	bg.GET("/:id/students", api.students)
}

func (api *batchApi) detail(bch record.Batch) BatchDetail {
	d := BatchDetail{Batch: bch, TeacherName: "Unassigned"}
	if tch, err := api.deps.TeacherSvc.Get(bch.TeacherID); err == nil {
		d.TeacherName = tch.Name
	}
	if t := batch.ParseTiming(bch.Timing); t.Structured {
		d.Days, d.Start, d.End = t.Days, t.Start, t.End
	}
	return d
}

func (api *batchApi) query(ctx echo.Context) error {
	batches := api.deps.BatchSvc.QueryAll()
	details := make([]BatchDetail, 0, len(batches))
	for _, bch := range batches {
		details = append(details, api.detail(bch))
	}
	return ctx.JSON(http.StatusOK, details)
}

func (api *batchApi) create(ctx echo.Context) error {
	var data batch.NewBatch
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewBatch")
	}
	if err := data.Validate(api.deps.Validate); err != nil {
		return err
	}

	bch, err := api.deps.BatchSvc.Add(data)
	if err != nil {
		return errors.Wrap(err, "adding batch")
	}
	return ctx.JSON(http.StatusCreated, api.detail(bch))
}

func (api *batchApi) retrieve(ctx echo.Context) error {
	bch, err := api.deps.BatchSvc.Get(ctx.Param("id"))
	if err != nil {
		return errHttpNotFound
	}
	return ctx.JSON(http.StatusOK, api.detail(bch))
}

func (api *batchApi) update(ctx echo.Context) error {
	var data batch.UpdateBatch
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateBatch")
	}
	if err := data.Validate(api.deps.Validate); err != nil {
		return err
	}

	bch, err := api.deps.BatchSvc.Update(ctx.Param("id"), data)
	if err != nil {
		if errors.Cause(err) == batch.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "updating batch")
	}
	return ctx.JSON(http.StatusOK, api.detail(bch))
}

func (api *batchApi) destroy(ctx echo.Context) error {
	if err := api.deps.BatchSvc.Delete(ctx.Param("id")); err != nil {
		if errors.Cause(err) == batch.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "deleting batch")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *batchApi) students(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.deps.BatchSvc.Students(ctx.Param("id")))
}
