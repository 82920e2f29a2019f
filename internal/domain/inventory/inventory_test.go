package inventory

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Contable-api/internal/domain/entity"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestCostCalculator_PromedioPonderado(t *testing.T) {
	// (10*100 + 30*120) / 40 = 115
	got := CostCalculator(d("10"), d("100"), d("30"), d("120"))
	assert.True(t, got.Equal(d("115")), "got %s", got)

	// (3*10 + 1*11) / 4 = 10.25
	got = CostCalculator(d("3"), d("10"), d("1"), d("11"))
	assert.True(t, got.Equal(d("10.25")), "got %s", got)

	// se redondea a 4 decimales: (1*1 + 2*2) / 3 = 1.6667
	got = CostCalculator(d("1"), d("1"), d("2"), d("2"))
	assert.True(t, got.Equal(d("1.6667")), "got %s", got)
}

func TestCostCalculator_SinStockTomaCostoEntrada(t *testing.T) {
	got := CostCalculator(decimal.Zero, d("999"), d("5"), d("42"))
	assert.True(t, got.Equal(d("42")))
}

func TestSignedQuantity(t *testing.T) {
	assert.True(t, SignedQuantity(entity.MovementTypeSale, d("3")).Equal(d("-3")))
	assert.True(t, SignedQuantity(entity.MovementTypePurchaseReturn, d("3")).Equal(d("-3")))
	assert.True(t, SignedQuantity(entity.MovementTypePurchase, d("-3")).Equal(d("3")))
	assert.True(t, SignedQuantity(entity.MovementTypeSaleReturn, d("3")).Equal(d("3")))
	assert.True(t, SignedQuantity(entity.MovementTypeAdjustment, d("-2")).Equal(d("-2")))
}

func TestMovementTypes(t *testing.T) {
	assert.Equal(t, entity.MovementTypeSale, InvoiceMovementType(entity.InvoiceKindSales))
	assert.Equal(t, entity.MovementTypePurchase, InvoiceMovementType(entity.InvoiceKindPurchase))
	assert.Equal(t, entity.MovementTypeSaleReturn, ReturnMovementType(entity.InvoiceKindSales))
	assert.Equal(t, entity.MovementTypePurchaseReturn, ReturnMovementType(entity.InvoiceKindPurchase))
}

func TestApplyDelta(t *testing.T) {
	next, ok := ApplyDelta(d("5"), d("-5"))
	assert.True(t, ok)
	assert.True(t, next.IsZero())

	next, ok = ApplyDelta(d("5"), d("-5.01"))
	assert.False(t, ok)
	assert.True(t, next.Equal(d("5")), "el stock no cambia si la salida no alcanza")
}

func TestRemainingReturnable(t *testing.T) {
	assert.True(t, RemainingReturnable(d("10"), d("4")).Equal(d("6")))
	assert.True(t, RemainingReturnable(d("10"), d("12")).IsZero())
}
