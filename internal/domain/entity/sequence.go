package entity

import "fmt"

// Prefijos de numeración automática por tipo de documento.
const (
	PrefixSalesInvoice    = "FV"
	PrefixPurchaseInvoice = "FC"
	PrefixSalesReturn     = "DV"
	PrefixPurchaseReturn  = "DC"
	PrefixReceipt         = "RC"
	PrefixPayment         = "CE"
)

// FormatNumber arma el número visible de un documento, ej: FV-000001.
func FormatNumber(prefix string, n int64) string {
	return fmt.Sprintf("%s-%06d", prefix, n)
}

// InvoicePrefix prefijo de numeración de facturas según tipo.
func InvoicePrefix(kind string) string {
	if kind == InvoiceKindPurchase {
		return PrefixPurchaseInvoice
	}
	return PrefixSalesInvoice
}

// ReturnPrefix prefijo de numeración de devoluciones según tipo.
func ReturnPrefix(kind string) string {
	if kind == InvoiceKindPurchase {
		return PrefixPurchaseReturn
	}
	return PrefixSalesReturn
}

// VoucherPrefix prefijo de numeración de comprobantes según tipo.
func VoucherPrefix(kind string) string {
	if kind == VoucherKindPayment {
		return PrefixPayment
	}
	return PrefixReceipt
}
