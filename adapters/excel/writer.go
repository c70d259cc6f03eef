package excel

import (
	"fmt"
	"io"
	"strconv"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/xuri/excelize/v2"

	"pharmarisk/internal/analysis"
	"pharmarisk/internal/format"
)

// WorkbookWriter renders a DiagnosticsWorkbook as .xlsx
type WorkbookWriter struct {
	file      *excelize.File
	headStyle int
	maxStyle  int
}

// NewWorkbookWriter creates a writer with the header and highlight styles registered
func NewWorkbookWriter() (*WorkbookWriter, error) {
	f := excelize.NewFile()
	headStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("register header style: %w", err)
	}
	maxStyle, err := f.NewStyle(&excelize.Style{
		Fill:   excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#FFFF00"}},
		NumFmt: 4,
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("register highlight style: %w", err)
	}
	return &WorkbookWriter{file: f, headStyle: headStyle, maxStyle: maxStyle}, nil
}

// Write fills every sheet and streams the workbook to w
func (ww *WorkbookWriter) Write(w io.Writer, wb DiagnosticsWorkbook) error {
	defer ww.file.Close()

	if err := ww.file.SetSheetName("Sheet1", SheetSummary); err != nil {
		return fmt.Errorf("rename summary sheet: %w", err)
	}
	steps := []struct {
		name string
		fn   func(DiagnosticsWorkbook) error
	}{
		{SheetSummary, ww.writeSummary},
		{SheetReport, ww.writeReport},
		{SheetConfusion, ww.writeConfusion},
		{SheetLots, func(wb DiagnosticsWorkbook) error { return ww.writeFrame(SheetLots, wb.Lots) }},
		{SheetHighRisk, func(wb DiagnosticsWorkbook) error { return ww.writeFrame(SheetHighRisk, wb.HighRisk) }},
	}
	for _, step := range steps {
		if step.name != SheetSummary {
			if _, err := ww.file.NewSheet(step.name); err != nil {
				return fmt.Errorf("create sheet %s: %w", step.name, err)
			}
		}
		if err := step.fn(wb); err != nil {
			return fmt.Errorf("write sheet %s: %w", step.name, err)
		}
	}

	if err := ww.file.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func (ww *WorkbookWriter) writeSummary(wb DiagnosticsWorkbook) error {
	m := wb.Metrics
	rows := [][]interface{}{
		{"Indicador", "Valor"},
		{"Semente da simulação", strconv.FormatInt(wb.Seed, 10)},
		{"Modelo", wb.ModelKind},
		{"Total de Lotes Monitorados", m.TotalLots},
		{"Lotes Atualmente em ALTO RISCO", m.HighRiskLots},
		{"% do total", m.HighRiskShare},
		{"Valor Financeiro TOTAL em Risco", format.Currency(m.ValueAtRisk)},
		{"Média de dias até o vencimento", m.MeanDaysAtRisk},
		{"Impressão digital", wb.Fingerprint},
	}
	if err := ww.setRows(SheetSummary, rows); err != nil {
		return err
	}
	return ww.file.SetCellStyle(SheetSummary, "A1", "B1", ww.headStyle)
}

func (ww *WorkbookWriter) writeReport(wb DiagnosticsWorkbook) error {
	header := []interface{}{""}
	for _, col := range analysis.ReportColumns {
		header = append(header, col)
	}
	rows := [][]interface{}{header}
	for _, r := range wb.Report.Rows {
		row := []interface{}{r.Label}
		for _, v := range r.Values() {
			row = append(row, v)
		}
		rows = append(rows, row)
	}
	if err := ww.setRows(SheetReport, rows); err != nil {
		return err
	}
	if err := ww.file.SetCellStyle(SheetReport, "A1", "E1", ww.headStyle); err != nil {
		return err
	}

	maxima := wb.Report.ColumnMaxima()
	for i, r := range wb.Report.Rows {
		for j, v := range r.Values() {
			if v != maxima[j] {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(j+2, i+2)
			if err != nil {
				return err
			}
			if err := ww.file.SetCellStyle(SheetReport, cell, cell, ww.maxStyle); err != nil {
				return err
			}
		}
	}
	return nil
}

func (ww *WorkbookWriter) writeConfusion(wb DiagnosticsWorkbook) error {
	if wb.Confusion == nil {
		return fmt.Errorf("missing confusion matrix")
	}
	counts := wb.Confusion.Counts()
	rows := [][]interface{}{
		{"", "Previsto Baixo Risco", "Previsto Alto Risco"},
		{"Real Baixo Risco", counts[0][0], counts[0][1]},
		{"Real Alto Risco", counts[1][0], counts[1][1]},
		{},
		{"Falsos Negativos (Risco Perdido)", wb.Confusion.FalseNegatives()},
	}
	return ww.setRows(SheetConfusion, rows)
}

// writeFrame copies a dataframe, keeping Int columns numeric
func (ww *WorkbookWriter) writeFrame(sheet string, df dataframe.DataFrame) error {
	if df.Err != nil {
		return df.Err
	}
	names := df.Names()
	header := make([]interface{}, len(names))
	for i, name := range names {
		header[i] = name
	}
	rows := [][]interface{}{header}

	columns := make([][]interface{}, len(names))
	for j, name := range names {
		col := df.Col(name)
		values := make([]interface{}, col.Len())
		if col.Type() == series.Int {
			ints, err := col.Int()
			if err != nil {
				return fmt.Errorf("column %s: %w", name, err)
			}
			for i, v := range ints {
				values[i] = v
			}
		} else {
			for i, v := range col.Records() {
				if f, err := strconv.ParseFloat(v, 64); err == nil {
					values[i] = f
				} else {
					values[i] = v
				}
			}
		}
		columns[j] = values
	}
	for i := 0; i < df.Nrow(); i++ {
		row := make([]interface{}, len(names))
		for j := range names {
			row[j] = columns[j][i]
		}
		rows = append(rows, row)
	}

	if err := ww.setRows(sheet, rows); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(names), 1)
	if err != nil {
		return err
	}
	return ww.file.SetCellStyle(sheet, "A1", last, ww.headStyle)
}

func (ww *WorkbookWriter) setRows(sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		values := row
		if err := ww.file.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("row %d: %w", i+1, err)
		}
	}
	return nil
}
