package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/Contable-api/internal/application/dto"
)

// Columnas esperadas: codigo;nombre;unidad;precio_compra;precio_venta;stock_minimo.
// Solo código y nombre son obligatorias.
const minColumns = 2

// rowError describe una fila descartada durante la lectura.
type rowError struct {
	Line int
	Err  error
}

func (e rowError) Error() string { return fmt.Sprintf("fila %d: %v", e.Line, e.Err) }

// readCSV lee un catálogo exportado por el sistema anterior: Latin-1, separado por ';'.
func readCSV(r io.Reader, latin1 bool) ([]dto.CreateProductRequest, []rowError, error) {
	if latin1 {
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	}
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("leer CSV: %w", err)
	}
	products, rejected := parseRows(records)
	return products, rejected, nil
}

// readXLSX lee la primera hoja (o sheet si se indica) de un libro de Excel.
func readXLSX(r io.Reader, sheet string) ([]dto.CreateProductRequest, []rowError, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("abrir Excel: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, nil, fmt.Errorf("el libro no tiene hojas")
		}
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, nil, fmt.Errorf("leer hoja %s: %w", sheet, err)
	}
	products, rejected := parseRows(rows)
	return products, rejected, nil
}

func parseRows(rows [][]string) ([]dto.CreateProductRequest, []rowError) {
	var (
		products []dto.CreateProductRequest
		rejected []rowError
	)
	for i, row := range rows {
		line := i + 1
		if isBlank(row) {
			continue
		}
		if i == 0 && isHeader(row) {
			continue
		}
		p, err := parseRow(row)
		if err != nil {
			rejected = append(rejected, rowError{Line: line, Err: err})
			continue
		}
		products = append(products, p)
	}
	return products, rejected
}

func parseRow(row []string) (dto.CreateProductRequest, error) {
	var p dto.CreateProductRequest
	if len(row) < minColumns {
		return p, fmt.Errorf("se esperaban al menos %d columnas", minColumns)
	}
	p.Code = strings.TrimSpace(row[0])
	p.Name = strings.TrimSpace(row[1])
	if p.Code == "" || p.Name == "" {
		return p, fmt.Errorf("código y nombre son obligatorios")
	}
	p.Unit = strings.ToUpper(cell(row, 2))

	var err error
	if p.BuyPrice, err = parseAmount(cell(row, 3)); err != nil {
		return p, fmt.Errorf("precio de compra: %w", err)
	}
	if p.SellPrice, err = parseAmount(cell(row, 4)); err != nil {
		return p, fmt.Errorf("precio de venta: %w", err)
	}
	if p.MinStock, err = parseAmount(cell(row, 5)); err != nil {
		return p, fmt.Errorf("stock mínimo: %w", err)
	}
	return p, nil
}

// parseAmount acepta "1234.5", "1234,5" y "1.234,50" (formato local). Vacío es cero.
func parseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "$"))
	if s == "" {
		return decimal.Zero, nil
	}
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("valor inválido %q", s)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("valor negativo %s", d)
	}
	return d, nil
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func isHeader(row []string) bool {
	first := strings.ToLower(strings.TrimSpace(row[0]))
	return first == "codigo" || first == "código" || first == "code" || first == "cod"
}
