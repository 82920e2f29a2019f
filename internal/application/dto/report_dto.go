package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// TopProductDTO producto más vendido del período.
type TopProductDTO struct {
	ProductID string          `json:"product_id"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Quantity  decimal.Decimal `json:"quantity"`
	Revenue   decimal.Decimal `json:"revenue"`
}

// DashboardSummaryDTO indicadores del dashboard principal.
type DashboardSummaryDTO struct {
	TodaySales           decimal.Decimal `json:"today_sales"`
	MonthSales           decimal.Decimal `json:"month_sales"`
	MonthPurchases       decimal.Decimal `json:"month_purchases"`
	MonthSalesReturns    decimal.Decimal `json:"month_sales_returns"`
	MonthPurchaseReturns decimal.Decimal `json:"month_purchase_returns"`
	CashInSafes          decimal.Decimal `json:"cash_in_safes"`
	CashInBanks          decimal.Decimal `json:"cash_in_banks"`
	Receivables          decimal.Decimal `json:"receivables"`
	Payables             decimal.Decimal `json:"payables"`
	LowStockCount        int             `json:"low_stock_count"`
	TopProducts          []TopProductDTO `json:"top_products"`
	DateLabel            string          `json:"date_label"`
}

// StatementLine línea de un estado de cuenta de tercero.
type StatementLine struct {
	Date         time.Time       `json:"date"`
	DocumentType string          `json:"document_type"`
	DocumentID   string          `json:"document_id"`
	Number       string          `json:"number"`
	Debit        decimal.Decimal `json:"debit"`
	Credit       decimal.Decimal `json:"credit"`
	Balance      decimal.Decimal `json:"balance"`
}

// PartyStatementDTO estado de cuenta de un cliente o proveedor.
type PartyStatementDTO struct {
	Party          PartyResponse   `json:"party"`
	From           *time.Time      `json:"from,omitempty"`
	To             *time.Time      `json:"to,omitempty"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	Lines          []StatementLine `json:"lines"`
	TotalDebit     decimal.Decimal `json:"total_debit"`
	TotalCredit    decimal.Decimal `json:"total_credit"`
	ClosingBalance decimal.Decimal `json:"closing_balance"`
}

// StockReportItem fila del reporte de existencias.
type StockReportItem struct {
	ProductID    string          `json:"product_id"`
	Code         string          `json:"code"`
	Name         string          `json:"name"`
	Unit         string          `json:"unit"`
	CurrentStock decimal.Decimal `json:"current_stock"`
	MinStock     decimal.Decimal `json:"min_stock"`
	BuyPrice     decimal.Decimal `json:"buy_price"`
	StockValue   decimal.Decimal `json:"stock_value"`
	IsLow        bool            `json:"is_low"`
}

// StockReportDTO reporte de existencias valorizado.
type StockReportDTO struct {
	Items      []StockReportItem `json:"items"`
	TotalValue decimal.Decimal   `json:"total_value"`
	LowCount   int               `json:"low_count"`
}

// LedgerLine línea del libro de una cuenta de tesorería.
type LedgerLine struct {
	Date        time.Time       `json:"date"`
	SourceType  string          `json:"source_type"`
	SourceID    string          `json:"source_id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Balance     decimal.Decimal `json:"balance"`
}

// AccountLedgerDTO libro de una caja o banco con saldo corrido.
type AccountLedgerDTO struct {
	Account        AccountResponse `json:"account"`
	From           *time.Time      `json:"from,omitempty"`
	To             *time.Time      `json:"to,omitempty"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	Lines          []LedgerLine    `json:"lines"`
	ClosingBalance decimal.Decimal `json:"closing_balance"`
}

// StockDiscrepancyDTO producto cuyo stock no coincide con su libro.
type StockDiscrepancyDTO struct {
	ProductID    string          `json:"product_id"`
	Code         string          `json:"code"`
	Name         string          `json:"name"`
	CurrentStock decimal.Decimal `json:"current_stock"`
	LedgerStock  decimal.Decimal `json:"ledger_stock"`
}

// AccountDiscrepancyDTO cuenta cuyo saldo no coincide con su libro.
type AccountDiscrepancyDTO struct {
	AccountID string          `json:"account_id"`
	Name      string          `json:"name"`
	Balance   decimal.Decimal `json:"balance"`
	Expected  decimal.Decimal `json:"expected"`
}

// IntegrityReportDTO resultado de la conciliación de saldos contra libros.
type IntegrityReportDTO struct {
	OK        bool                    `json:"ok"`
	Products  []StockDiscrepancyDTO   `json:"products"`
	Accounts  []AccountDiscrepancyDTO `json:"accounts"`
	CheckedAt time.Time               `json:"checked_at"`
}
