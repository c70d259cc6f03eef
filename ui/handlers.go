package ui

import (
	"bytes"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"pharmarisk/adapters/excel"
	"pharmarisk/app"
	"pharmarisk/domain/inventory"
	"pharmarisk/internal/errors"
	"pharmarisk/internal/testkit"
)

type seedQuery struct {
	Seed int64 `form:"seed"`
}

type predictForm struct {
	Stock *int  `form:"stock" binding:"required"`
	Days  *int  `form:"days" binding:"required"`
	Rate  *int  `form:"rate" binding:"required"`
	Seed  int64 `form:"seed"`
}

type errorView struct {
	Title   string
	Status  int
	Message string
}

// handleIndex renders the dashboard for the requested or a fresh seed
func (s *Server) handleIndex(c *gin.Context) {
	var q seedQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		s.renderError(c, errors.InvalidInput("seed inválida"))
		return
	}

	d, err := s.dashboard.Render(c.Request.Context(), s.dashboard.ResolveSeed(q.Seed))
	if err != nil {
		s.renderError(c, err)
		return
	}
	s.renderTemplate(c, http.StatusOK, "index.html", newPageView(d, inventory.DefaultLotInput()))
}

// handlePredict scores the sidebar lot and re-renders the same inventory
func (s *Server) handlePredict(c *gin.Context) {
	var form predictForm
	bindErr := c.ShouldBind(&form)

	d, err := s.dashboard.Render(c.Request.Context(), s.dashboard.ResolveSeed(form.Seed))
	if err != nil {
		s.renderError(c, err)
		return
	}

	if bindErr != nil {
		view := newPageView(d, inventory.DefaultLotInput())
		view.PredictError = "Entrada inválida: informe estoque, dias e venda média como números inteiros."
		s.renderTemplate(c, http.StatusBadRequest, "index.html", view)
		return
	}

	input := inventory.LotInput{Stock: *form.Stock, DaysToExpiry: *form.Days, DailySaleRate: *form.Rate}
	view := newPageView(d, input)

	prediction, err := s.dashboard.PredictLot(input)
	if err != nil {
		s.logger.Warn("prediction rejected (request %s): %v", c.GetString(requestIDKey), err)
		view.PredictError = err.Error()
		s.renderTemplate(c, errors.HTTPStatus(err), "index.html", view)
		return
	}
	view.Prediction = newPredictionView(prediction)
	s.renderTemplate(c, http.StatusOK, "index.html", view)
}

// handleExportCSV downloads the scored lots of one render
func (s *Server) handleExportCSV(c *gin.Context) {
	var q seedQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		s.renderError(c, errors.InvalidInput("seed inválida"))
		return
	}
	seed := s.dashboard.ResolveSeed(q.Seed)

	lots, err := s.dashboard.ScoreLots(c.Request.Context(), seed)
	if err != nil {
		s.renderError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := testkit.LotsFrame(lots).WriteCSV(&buf); err != nil {
		s.renderError(c, errors.Wrap(err, "write csv"))
		return
	}
	s.attachment(c, fmt.Sprintf("lotes_%d.csv", seed), "text/csv; charset=utf-8", buf.Bytes())
}

// handleExportWorkbook downloads the diagnostics workbook of one render
func (s *Server) handleExportWorkbook(c *gin.Context) {
	var q seedQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		s.renderError(c, errors.InvalidInput("seed inválida"))
		return
	}

	d, err := s.dashboard.Render(c.Request.Context(), s.dashboard.ResolveSeed(q.Seed))
	if err != nil {
		s.renderError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := WriteWorkbook(&buf, d); err != nil {
		s.renderError(c, errors.Wrap(err, "write workbook"))
		return
	}
	s.attachment(c, fmt.Sprintf("relatorio_%d.xlsx", d.Seed),
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

func (s *Server) attachment(c *gin.Context, filename, contentType string, body []byte) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, body)
}

func (s *Server) renderError(c *gin.Context, err error) {
	status := errors.HTTPStatus(err)
	s.logger.Error("request %s failed with %d: %v", c.GetString(requestIDKey), status, err)
	s.renderTemplate(c, status, "error.html", errorView{
		Title:   pageTitle,
		Status:  status,
		Message: err.Error(),
	})
}

// WriteWorkbook exports a rendered dashboard as an .xlsx workbook
func WriteWorkbook(w io.Writer, d *app.Dashboard) error {
	writer, err := excel.NewWorkbookWriter()
	if err != nil {
		return err
	}
	frame := d.Frame()
	wb := excel.DiagnosticsWorkbook{
		Seed:      d.Seed,
		ModelKind: d.ModelKind,
		Metrics:   d.Metrics,
		Confusion: d.Confusion,
		Report:    d.Report,
		Lots:      frame,
		HighRisk:  testkit.HighRiskFrame(frame),
	}
	if d.Manifest != nil {
		wb.Fingerprint = d.Manifest.Fingerprint
	}
	return writer.Write(w, wb)
}
