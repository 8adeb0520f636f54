package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/edunexus/core/payment"
)

type paymentApi struct {
	deps ServerDeps
}

func registerPaymentAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := paymentApi{deps: deps}

	pg := g.Group("/payments", jwt)
	pg.GET("", api.query)
	pg.POST("", api.record)
	pg.GET("/:id", api.retrieve)
	pg.GET("/:id/receipt", api.receipt)
}

func (api *paymentApi) query(ctx echo.Context) error {
	if studentID := ctx.QueryParam("studentId"); studentID != "" {
		return ctx.JSON(http.StatusOK, api.deps.PaymentSvc.QueryByStudent(studentID))
	}
	return ctx.JSON(http.StatusOK, api.deps.PaymentSvc.QueryAll())
}

func (api *paymentApi) record(ctx echo.Context) error {
	var data payment.NewPayment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewPayment")
	}
	if err := data.Validate(api.deps.Validate); err != nil {
		return err
	}

	pmt, err := api.deps.PaymentSvc.Record(data)
	if err != nil {
		return errors.Wrap(err, "recording payment")
	}
	return ctx.JSON(http.StatusCreated, pmt)
}

func (api *paymentApi) retrieve(ctx echo.Context) error {
	pmt, err := api.deps.PaymentSvc.Get(ctx.Param("id"))
	if err != nil {
		return errHttpNotFound
	}
	return ctx.JSON(http.StatusOK, pmt)
}

// receipt returns the printable receipt payload: the payment joined with
// its student and the institute profile.
func (api *paymentApi) receipt(ctx echo.Context) error {
	rcpt, err := api.deps.PaymentSvc.BuildReceipt(ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == payment.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "building receipt")
	}
	return ctx.JSON(http.StatusOK, rcpt)
}
