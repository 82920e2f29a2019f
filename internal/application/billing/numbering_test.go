package billing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Contable-api/internal/application/dto"
	"github.com/jhoicas/Contable-api/internal/domain"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
)

func TestNumeracion_FacturaManualConFormatoDelConsecutivo(t *testing.T) {
	f := newFixture(t)

	manual, err := f.invoices.CreatePurchase(f.ctx, companyID, userID, dto.CreateInvoiceRequest{
		Number:  "FC-000002",
		PartyID: f.supplier,
		Items:   []dto.InvoiceItemRequest{{ProductID: f.product, Quantity: d("1")}},
	})
	require.NoError(t, err)
	assert.Equal(t, "FC-000002", manual.Number)

	var numbers []string
	for i := 0; i < 3; i++ {
		numbers = append(numbers, f.purchase(t, "1", "100").Number)
	}
	assert.Equal(t, []string{"FC-000001", "FC-000003", "FC-000004"}, numbers)
	assert.True(t, f.stock(t).CurrentStock.Equal(d("4")))
}

func TestNumeracion_DevolucionManualConFormatoDelConsecutivo(t *testing.T) {
	f := newFixture(t)
	buy := f.purchase(t, "10", "100")
	line := buy.Items[0].ID

	manual, err := f.returns.CreatePurchase(f.ctx, companyID, userID, dto.CreateReturnRequest{
		Number:    "DC-000001",
		InvoiceID: buy.ID,
		Items:     []dto.ReturnItemRequest{{InvoiceItemID: line, Quantity: d("1")}},
	})
	require.NoError(t, err)
	assert.Equal(t, "DC-000001", manual.Number)

	auto, err := f.returns.CreatePurchase(f.ctx, companyID, userID, dto.CreateReturnRequest{
		InvoiceID: buy.ID,
		Items:     []dto.ReturnItemRequest{{InvoiceItemID: line, Quantity: d("1")}},
	})
	require.NoError(t, err)
	assert.Equal(t, "DC-000002", auto.Number)

	_, err = f.returns.CreatePurchase(f.ctx, companyID, userID, dto.CreateReturnRequest{
		Number:    "DC-000002",
		InvoiceID: buy.ID,
		Items:     []dto.ReturnItemRequest{{InvoiceItemID: line, Quantity: d("1")}},
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestNumeracion_ReciboManualYPagoInmediato(t *testing.T) {
	f := newFixture(t)
	f.purchase(t, "10", "100")

	manual, err := f.vouchers.CreateReceipt(f.ctx, companyID, userID, dto.CreateVoucherRequest{
		Number: "RC-000001", PartyID: f.customer, AccountID: f.safe, Amount: d("50"),
	})
	require.NoError(t, err)
	assert.Equal(t, "RC-000001", manual.Number)

	inv := f.sale(t, dto.CreateInvoiceRequest{
		PaidAmount: d("150"),
		AccountID:  f.safe,
		Items:      []dto.InvoiceItemRequest{{ProductID: f.product, Quantity: d("1")}},
	})
	require.NotEmpty(t, inv.VoucherID)
	receipt, err := f.vouchers.Get(f.ctx, companyID, entity.VoucherKindReceipt, inv.VoucherID)
	require.NoError(t, err)
	assert.Equal(t, "RC-000002", receipt.Number)

	next, err := f.vouchers.CreateReceipt(f.ctx, companyID, userID, dto.CreateVoucherRequest{
		PartyID: f.customer, AccountID: f.safe, Amount: d("10"),
	})
	require.NoError(t, err)
	assert.Equal(t, "RC-000003", next.Number)
	assert.True(t, f.balance(t, f.safe).Equal(d("210")))
}

func TestDeleteReceipt_LigadoAFacturaEsConflicto(t *testing.T) {
	f := newFixture(t)
	f.purchase(t, "10", "100")
	inv := f.sale(t, dto.CreateInvoiceRequest{
		PaidAmount: d("300"),
		AccountID:  f.safe,
		Items:      []dto.InvoiceItemRequest{{ProductID: f.product, Quantity: d("2")}},
	})
	require.NotEmpty(t, inv.VoucherID)

	err := f.vouchers.DeleteReceipt(f.ctx, companyID, inv.VoucherID)
	assert.ErrorIs(t, err, domain.ErrConflict)

	got, err := f.invoices.Get(f.ctx, companyID, entity.InvoiceKindSales, inv.ID)
	require.NoError(t, err)
	assert.True(t, got.PaidAmount.Equal(d("300")))
	assert.True(t, f.balance(t, f.safe).Equal(d("300")), "el recibo sigue aplicado")

	require.NoError(t, f.invoices.DeleteSales(f.ctx, companyID, inv.ID))
	assert.True(t, f.balance(t, f.safe).IsZero())
	_, err = f.vouchers.Get(f.ctx, companyID, entity.VoucherKindReceipt, inv.VoucherID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeletePurchaseReturn_RestauraStockYCaja(t *testing.T) {
	f := newFixture(t)
	buy := f.purchase(t, "10", "100")

	ret, err := f.returns.CreatePurchase(f.ctx, companyID, userID, dto.CreateReturnRequest{
		InvoiceID:    buy.ID,
		RefundAmount: d("200"),
		AccountID:    f.safe,
		Items:        []dto.ReturnItemRequest{{InvoiceItemID: buy.Items[0].ID, Quantity: d("2")}},
	})
	require.NoError(t, err)
	assert.True(t, f.stock(t).CurrentStock.Equal(d("8")))
	assert.True(t, f.balance(t, f.safe).Equal(d("200")))

	require.NoError(t, f.returns.DeletePurchase(f.ctx, companyID, ret.ID))
	assert.True(t, f.stock(t).CurrentStock.Equal(d("10")))
	assert.True(t, f.balance(t, f.safe).IsZero())

	supplier, err := f.parties.Get(f.ctx, companyID, entity.PartyKindSupplier, f.supplier)
	require.NoError(t, err)
	assert.True(t, supplier.Balance.Equal(d("1000")))

	returnable, err := f.returns.ReturnableQuantities(f.ctx, companyID, buy.ID)
	require.NoError(t, err)
	require.Len(t, returnable, 1)
	assert.True(t, returnable[0].Remaining.Equal(d("10")))

	err = f.returns.DeleteSales(f.ctx, companyID, ret.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
