package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// PartyEntry efecto de un documento sobre el saldo de un tercero.
// Effect positivo aumenta lo que el cliente nos debe (o lo que le debemos al proveedor).
type PartyEntry struct {
	Date         time.Time
	DocumentType string // SALES_INVOICE, RECEIPT, SALES_RETURN, SALES_REFUND, ...
	DocumentID   string
	Number       string
	Effect       decimal.Decimal
}

// TopProduct producto más vendido en un período.
type TopProduct struct {
	ProductID string
	Code      string
	Name      string
	Quantity  decimal.Decimal
	Revenue   decimal.Decimal
}

// StockDiscrepancy producto cuyo stock desnormalizado no coincide con su libro.
type StockDiscrepancy struct {
	ProductID    string
	Code         string
	Name         string
	CurrentStock decimal.Decimal
	LedgerStock  decimal.Decimal
}

// AccountDiscrepancy cuenta cuyo saldo no coincide con saldo inicial + libro.
type AccountDiscrepancy struct {
	AccountID string
	Name      string
	Balance   decimal.Decimal
	Expected  decimal.Decimal
}

// ReportRepository define las consultas de lectura (agregaciones sobre los libros).
// Las implementaciones son read-only (no modifican datos).
type ReportRepository interface {
	// PartyBalances suma el efecto de todos los documentos por tercero (sin saldo inicial).
	// before, si no es nil, limita a documentos con fecha anterior.
	PartyBalances(ctx context.Context, companyID, kind string, before *time.Time) (map[string]decimal.Decimal, error)

	// PartyEntries devuelve los documentos de un tercero en orden cronológico (extremos incluidos).
	PartyEntries(ctx context.Context, partyID string, from, to *time.Time) ([]PartyEntry, error)

	// InvoiceTotal suma los totales de facturas del tipo indicado en el rango.
	InvoiceTotal(ctx context.Context, companyID, kind string, from, to time.Time) (decimal.Decimal, error)

	// ReturnTotal suma los totales de devoluciones del tipo indicado en el rango.
	ReturnTotal(ctx context.Context, companyID, kind string, from, to time.Time) (decimal.Decimal, error)

	// AccountBalanceTotal suma los saldos de cuentas activas del tipo (SAFE o BANK).
	AccountBalanceTotal(ctx context.Context, companyID, kind string) (decimal.Decimal, error)

	// OpeningBalanceTotal suma los saldos iniciales de los terceros del tipo.
	OpeningBalanceTotal(ctx context.Context, companyID, kind string) (decimal.Decimal, error)

	LowStockCount(ctx context.Context, companyID string) (int, error)

	// TopProducts productos más vendidos (cantidad facturada) del período, de mayor a menor.
	TopProducts(ctx context.Context, companyID string, from, to time.Time, limit int) ([]TopProduct, error)

	StockDiscrepancies(ctx context.Context, companyID string) ([]StockDiscrepancy, error)
	AccountDiscrepancies(ctx context.Context, companyID string) ([]AccountDiscrepancy, error)
}
