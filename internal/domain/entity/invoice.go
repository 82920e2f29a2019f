package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de factura.
const (
	InvoiceKindSales    = "SALES"
	InvoiceKindPurchase = "PURCHASE"
)

// Invoice representa la cabecera de una factura de venta o de compra.
// Subtotal, Discount y Total se congelan al crearla.
type Invoice struct {
	ID         string
	CompanyID  string
	Kind       string
	Number     string // único por empresa y tipo
	PartyID    string // cliente (venta) o proveedor (compra)
	Date       time.Time
	Subtotal   decimal.Decimal
	Discount   decimal.Decimal
	Total      decimal.Decimal
	PaidAmount decimal.Decimal // pago registrado al momento de crearla
	AccountID  string          // cuenta de tesorería del pago inicial (vacío si no hubo)
	Notes      string
	Items      []*InvoiceItem
	CreatedBy  string
	CreatedAt  time.Time
}

// InvoiceItem representa una línea de factura.
type InvoiceItem struct {
	ID        string
	InvoiceID string
	ProductID string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
}

// DocumentType devuelve el tipo de documento usado en los libros para esta factura.
func (i *Invoice) DocumentType() string {
	if i.Kind == InvoiceKindPurchase {
		return DocumentPurchaseInvoice
	}
	return DocumentSalesInvoice
}

// InvoicePartyKind devuelve el tipo de tercero que corresponde al tipo de factura.
func InvoicePartyKind(kind string) string {
	if kind == InvoiceKindPurchase {
		return PartyKindSupplier
	}
	return PartyKindCustomer
}

// ValidInvoiceKind indica si k es SALES o PURCHASE.
func ValidInvoiceKind(k string) bool {
	return k == InvoiceKindSales || k == InvoiceKindPurchase
}
