package echoapi

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/edunexus/core/record"
)

// DashboardStats mirrors the dashboard cards.
type DashboardStats struct {
	TotalStudents      int     `json:"totalStudents"`
	ActiveStudents     int     `json:"activeStudents"`
	TotalFeesCollected float64 `json:"totalFeesCollected"`
	TotalBatches       int     `json:"totalBatches"`
}

type reportsApi struct {
	deps ServerDeps
}

func registerReportsAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := reportsApi{deps: deps}

	rg := g.Group("/reports", jwt)
	rg.GET("/dashboard", api.dashboard)
	rg.GET("/students.csv", api.studentsCSV)
	rg.GET("/revenue.csv", api.revenueCSV)
	rg.GET("/attendance.csv", api.attendanceCSV)

	g.GET("/backup", api.backup, jwt, adminMiddleware())
}

func (api *reportsApi) dashboard(ctx echo.Context) error {
	doc := api.deps.Store.Load()

	stats := DashboardStats{
		TotalStudents: len(doc.Students),
		TotalBatches:  len(doc.Batches),
	}
	for _, std := range doc.Students {
		if std.Status == record.StatusActive {
			stats.ActiveStudents++
		}
	}
	for _, pmt := range doc.Payments {
		stats.TotalFeesCollected += pmt.Amount
	}
	return ctx.JSON(http.StatusOK, stats)
}

// CSV exports: flat, header-first extracts of the in-memory collections.

func (api *reportsApi) studentsCSV(ctx echo.Context) error {
	doc := api.deps.Store.Load()

	rows := [][]string{{"ID", "Name", "Mobile", "Course", "Status"}}
	for _, std := range doc.Students {
		rows = append(rows, []string{std.ID, std.Name, std.Mobile, std.Course, std.Status})
	}
	return api.sendCSV(ctx, "students.csv", rows)
}

func (api *reportsApi) revenueCSV(ctx echo.Context) error {
	doc := api.deps.Store.Load()

	rows := [][]string{{"ReceiptNo", "Student", "Date", "Amount", "Mode"}}
	for _, pmt := range doc.Payments {
		name := "Unknown"
		if std, ok := doc.StudentByID(pmt.StudentID); ok {
			name = std.Name
		}
		rows = append(rows, []string{
			pmt.ReceiptNo, name, pmt.Date, strconv.FormatFloat(pmt.Amount, 'f', -1, 64), pmt.Mode,
		})
	}
	return api.sendCSV(ctx, "revenue.csv", rows)
}

func (api *reportsApi) attendanceCSV(ctx echo.Context) error {
	doc := api.deps.Store.Load()

	rows := [][]string{{"Date", "Batch", "Student", "Status"}}
	for _, a := range doc.Attendance {
		batchName, studentName := "Unknown", "Unknown"
		if bch, ok := doc.BatchByID(a.BatchID); ok {
			batchName = bch.Name
		}
		if std, ok := doc.StudentByID(a.StudentID); ok {
			studentName = std.Name
		}
		rows = append(rows, []string{a.Date, batchName, studentName, a.Status})
	}
	return api.sendCSV(ctx, "attendance.csv", rows)
}

func (api *reportsApi) sendCSV(ctx echo.Context, filename string, rows [][]string) error {
	buf := new(bytes.Buffer)
	w := csv.NewWriter(buf)
	if err := w.WriteAll(rows); err != nil {
		return errors.Wrap(err, "writing csv")
	}

	ctx.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return ctx.Blob(http.StatusOK, "text/csv", buf.Bytes())
}

// backup streams the raw persisted document for offline safekeeping.
// Restore has no in-system path; it means re-seeding the slot by hand.
func (api *reportsApi) backup(ctx echo.Context) error {
	data, filename, err := api.deps.Store.ExportSnapshot()
	if err != nil {
		return errors.Wrap(err, "exporting snapshot")
	}
	ctx.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return ctx.Blob(http.StatusOK, echo.MIMEApplicationJSON, data)
}
