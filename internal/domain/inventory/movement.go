package inventory

import (
	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// SignedQuantity devuelve la cantidad con el signo que le corresponde al tipo de movimiento.
// qty llega en valor absoluto para todos los tipos salvo ADJUSTMENT, que ya trae su signo.
func SignedQuantity(movementType string, qty decimal.Decimal) decimal.Decimal {
	switch movementType {
	case entity.MovementTypeSale, entity.MovementTypePurchaseReturn:
		return qty.Abs().Neg()
	case entity.MovementTypePurchase, entity.MovementTypeSaleReturn:
		return qty.Abs()
	default:
		return qty
	}
}

// InvoiceMovementType tipo de movimiento que genera una línea de factura.
func InvoiceMovementType(invoiceKind string) string {
	if invoiceKind == entity.InvoiceKindPurchase {
		return entity.MovementTypePurchase
	}
	return entity.MovementTypeSale
}

// ReturnMovementType tipo de movimiento que genera una línea de devolución.
func ReturnMovementType(returnKind string) string {
	if returnKind == entity.InvoiceKindPurchase {
		return entity.MovementTypePurchaseReturn
	}
	return entity.MovementTypeSaleReturn
}

// ApplyDelta devuelve el nuevo stock y false si el resultado quedaría negativo.
func ApplyDelta(current, delta decimal.Decimal) (decimal.Decimal, bool) {
	next := current.Add(delta)
	if next.IsNegative() {
		return current, false
	}
	return next, true
}

// RemainingReturnable cantidad que aún puede devolverse de una línea de factura.
func RemainingReturnable(original, alreadyReturned decimal.Decimal) decimal.Decimal {
	rest := original.Sub(alreadyReturned)
	if rest.IsNegative() {
		return decimal.Zero
	}
	return rest
}
