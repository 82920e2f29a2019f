package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario.
const (
	MovementTypePurchase       = "PURCHASE"        // entrada por factura de compra
	MovementTypeSale           = "SALE"            // salida por factura de venta
	MovementTypePurchaseReturn = "PURCHASE_RETURN" // salida por devolución a proveedor
	MovementTypeSaleReturn     = "SALE_RETURN"     // entrada por devolución de cliente
	MovementTypeAdjustment     = "ADJUSTMENT"      // ajuste manual (signo libre)
)

// Tipos de documento que originan movimientos (de stock o de tesorería).
const (
	DocumentSalesInvoice    = "SALES_INVOICE"
	DocumentPurchaseInvoice = "PURCHASE_INVOICE"
	DocumentSalesReturn     = "SALES_RETURN"
	DocumentPurchaseReturn  = "PURCHASE_RETURN"
	DocumentAdjustment      = "ADJUSTMENT"
	DocumentReceipt         = "RECEIPT"
	DocumentPayment         = "PAYMENT"
	DocumentSalesRefund     = "SALES_REFUND"    // reembolso al cliente por devolución
	DocumentPurchaseRefund  = "PURCHASE_REFUND" // reembolso del proveedor por devolución
)

// StockMovement es una fila inmutable del libro de inventario.
// Quantity es con signo: positivo entrada, negativo salida.
// Invariante: Product.CurrentStock == Σ Quantity de sus movimientos.
type StockMovement struct {
	ID             string
	CompanyID      string
	ProductID      string
	Type           string
	Quantity       decimal.Decimal
	UnitPrice      decimal.Decimal
	Reference      string // número de documento o motivo del ajuste
	DocumentType   string
	DocumentID     string
	DocumentLineID string
	Date           time.Time
	CreatedBy      string
	CreatedAt      time.Time
}

// ValidMovementType indica si t es un tipo de movimiento conocido.
func ValidMovementType(t string) bool {
	switch t {
	case MovementTypePurchase, MovementTypeSale, MovementTypePurchaseReturn,
		MovementTypeSaleReturn, MovementTypeAdjustment:
		return true
	}
	return false
}
