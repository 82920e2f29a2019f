// Package excel genera reportes .xlsx con excelize.
package excel

import (
	"fmt"
	"time"

	"github.com/jhoicas/Contable-api/internal/application/analytics"
	"github.com/jhoicas/Contable-api/internal/application/dto"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

var _ analytics.SpreadsheetExporter = (*Exporter)(nil)

const dateLayout = "2006-01-02"

// Exporter implementa analytics.SpreadsheetExporter.
type Exporter struct{}

func NewExporter() *Exporter { return &Exporter{} }

// StockReport hoja "Existencias": una fila por producto y una fila de total.
func (e *Exporter) StockReport(report *dto.StockReportDTO) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Existencias"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	header := []any{"Código", "Nombre", "Unidad", "Stock", "Mínimo", "Costo promedio", "Valor", "Bajo mínimo"}
	if err := writeHeader(f, sheet, header); err != nil {
		return nil, err
	}
	row := 2
	for _, it := range report.Items {
		low := "NO"
		if it.IsLow {
			low = "SI"
		}
		values := []any{it.Code, it.Name, it.Unit, num(it.CurrentStock), num(it.MinStock), num(it.BuyPrice), num(it.StockValue), low}
		if err := setRow(f, sheet, row, values); err != nil {
			return nil, err
		}
		row++
	}
	if err := setRow(f, sheet, row, []any{"TOTAL", "", "", "", "", "", num(report.TotalValue), report.LowCount}); err != nil {
		return nil, err
	}
	_ = f.SetColWidth(sheet, "B", "B", 40)
	return write(f)
}

// PartyStatement hoja "Estado de cuenta" con encabezado del tercero, saldo anterior, movimientos y totales.
func (e *Exporter) PartyStatement(st *dto.PartyStatementDTO) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Estado de cuenta"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	meta := [][]any{
		{"Tercero", st.Party.Code + " - " + st.Party.Name},
		{"Desde", formatDate(st.From)},
		{"Hasta", formatDate(st.To)},
		{"Saldo anterior", num(st.OpeningBalance)},
	}
	for i, values := range meta {
		if err := setRow(f, sheet, i+1, values); err != nil {
			return nil, err
		}
	}
	const headerRow = 6
	header := []any{"Fecha", "Documento", "Número", "Débito", "Crédito", "Saldo"}
	cell, _ := excelize.CoordinatesToCellName(1, headerRow)
	if err := f.SetSheetRow(sheet, cell, &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	if err := styleHeader(f, sheet, headerRow, len(header)); err != nil {
		return nil, err
	}
	row := headerRow + 1
	for _, l := range st.Lines {
		values := []any{l.Date.Format(dateLayout), l.DocumentType, l.Number, num(l.Debit), num(l.Credit), num(l.Balance)}
		if err := setRow(f, sheet, row, values); err != nil {
			return nil, err
		}
		row++
	}
	if err := setRow(f, sheet, row, []any{"TOTALES", "", "", num(st.TotalDebit), num(st.TotalCredit), num(st.ClosingBalance)}); err != nil {
		return nil, err
	}
	return write(f)
}

func writeHeader(f *excelize.File, sheet string, header []any) error {
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	return styleHeader(f, sheet, 1, len(header))
}

func styleHeader(f *excelize.File, sheet string, row, cols int) error {
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	first, _ := excelize.CoordinatesToCellName(1, row)
	last, _ := excelize.CoordinatesToCellName(cols, row)
	return f.SetCellStyle(sheet, first, last, style)
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("write row %d: %w", row, err)
	}
	return nil
}

func write(f *excelize.File) ([]byte, error) {
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

// num celdas numéricas (no texto) para que la hoja permita sumar y filtrar.
func num(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}
