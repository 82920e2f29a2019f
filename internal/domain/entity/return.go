package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Return representa una devolución de venta (cliente devuelve) o de compra (se devuelve al proveedor).
// Kind usa los mismos valores que Invoice.Kind.
type Return struct {
	ID           string
	CompanyID    string
	Kind         string
	Number       string
	InvoiceID    string
	PartyID      string
	Date         time.Time
	Total        decimal.Decimal
	RefundAmount decimal.Decimal // liquidación en efectivo/banco
	AccountID    string
	Reason       string
	Items        []*ReturnItem
	CreatedBy    string
	CreatedAt    time.Time
}

// ReturnItem línea devuelta contra una línea de la factura original.
type ReturnItem struct {
	ID            string
	ReturnID      string
	InvoiceItemID string
	ProductID     string
	Quantity      decimal.Decimal
	UnitPrice     decimal.Decimal
	Subtotal      decimal.Decimal
}

// DocumentType devuelve el tipo de documento usado en los libros para esta devolución.
func (r *Return) DocumentType() string {
	if r.Kind == InvoiceKindPurchase {
		return DocumentPurchaseReturn
	}
	return DocumentSalesReturn
}
