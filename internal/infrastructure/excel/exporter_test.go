package excel

import (
	"bytes"
	"testing"
	"time"

	"github.com/jhoicas/Contable-api/internal/application/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExporter_StockReport(t *testing.T) {
	report := &dto.StockReportDTO{
		Items: []dto.StockReportItem{
			{Code: "P-001", Name: "Tornillo", Unit: "UND", CurrentStock: decimal.NewFromInt(10), MinStock: decimal.NewFromInt(2),
				BuyPrice: decimal.NewFromInt(500), StockValue: decimal.NewFromInt(5000)},
			{Code: "P-002", Name: "Tuerca", Unit: "UND", CurrentStock: decimal.NewFromInt(1), MinStock: decimal.NewFromInt(5),
				BuyPrice: decimal.NewFromInt(100), StockValue: decimal.NewFromInt(100), IsLow: true},
		},
		TotalValue: decimal.NewFromInt(5100),
		LowCount:   1,
	}

	data, err := NewExporter().StockReport(report)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"Existencias"}, f.GetSheetList())

	rows, err := f.GetRows("Existencias")
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "Código", rows[0][0])
	assert.Equal(t, "P-002", rows[2][0])
	assert.Equal(t, "SI", rows[2][7])
	assert.Equal(t, "TOTAL", rows[3][0])
	assert.Equal(t, "5100", rows[3][6])
}

func TestExporter_PartyStatement(t *testing.T) {
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	st := &dto.PartyStatementDTO{
		Party:          dto.PartyResponse{Code: "C-01", Name: "Cliente Uno"},
		From:           &from,
		OpeningBalance: decimal.NewFromInt(100),
		Lines: []dto.StatementLine{
			{Date: from.AddDate(0, 0, 2), DocumentType: "SALES_INVOICE", Number: "FV-000001",
				Debit: decimal.NewFromInt(300), Credit: decimal.Zero, Balance: decimal.NewFromInt(400)},
		},
		TotalDebit:     decimal.NewFromInt(300),
		TotalCredit:    decimal.Zero,
		ClosingBalance: decimal.NewFromInt(400),
	}

	data, err := NewExporter().PartyStatement(st)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Estado de cuenta")
	require.NoError(t, err)
	assert.Equal(t, "C-01 - Cliente Uno", rows[0][1])
	assert.Equal(t, "2026-01-01", rows[1][1])
	assert.Equal(t, "FV-000001", rows[6][2])
	assert.Equal(t, "TOTALES", rows[7][0])
	assert.Equal(t, "400", rows[7][5])
}
