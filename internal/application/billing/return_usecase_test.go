package billing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Contable-api/internal/application/dto"
	"github.com/jhoicas/Contable-api/internal/domain"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
)

func (f *fixture) sale(t *testing.T, in dto.CreateInvoiceRequest) *dto.InvoiceResponse {
	t.Helper()
	in.PartyID = f.customer
	inv, err := f.invoices.CreateSales(f.ctx, companyID, userID, in)
	require.NoError(t, err)
	return inv
}

func TestCreateSalesReturn_RepondeStockYReduceCartera(t *testing.T) {
	f := newFixture(t)
	f.purchase(t, "10", "100")
	inv := f.sale(t, dto.CreateInvoiceRequest{
		Items: []dto.InvoiceItemRequest{{ProductID: f.product, Quantity: d("4"), UnitPrice: d("150")}},
	})

	ret, err := f.returns.CreateSales(f.ctx, companyID, userID, dto.CreateReturnRequest{
		InvoiceID: inv.ID,
		Items:     []dto.ReturnItemRequest{{InvoiceItemID: inv.Items[0].ID, Quantity: d("1")}},
	})
	require.NoError(t, err)
	assert.Equal(t, "DV-000001", ret.Number)
	assert.Equal(t, f.customer, ret.PartyID)
	assert.True(t, ret.Total.Equal(d("150")))
	assert.True(t, f.stock(t).CurrentStock.Equal(d("7")))

	customer, err := f.parties.Get(f.ctx, companyID, entity.PartyKindCustomer, f.customer)
	require.NoError(t, err)
	assert.True(t, customer.Balance.Equal(d("450")))

	returnable, err := f.returns.ReturnableQuantities(f.ctx, companyID, inv.ID)
	require.NoError(t, err)
	require.Len(t, returnable, 1)
	assert.True(t, returnable[0].Returned.Equal(d("1")))
	assert.True(t, returnable[0].Remaining.Equal(d("3")))
}

func TestCreateReturn_NoSuperaLoFacturado(t *testing.T) {
	f := newFixture(t)
	f.purchase(t, "10", "100")
	inv := f.sale(t, dto.CreateInvoiceRequest{
		Items: []dto.InvoiceItemRequest{{ProductID: f.product, Quantity: d("2")}},
	})
	line := inv.Items[0].ID

	_, err := f.returns.CreateSales(f.ctx, companyID, userID, dto.CreateReturnRequest{
		InvoiceID: inv.ID,
		Items:     []dto.ReturnItemRequest{{InvoiceItemID: line, Quantity: d("2")}},
	})
	require.NoError(t, err)

	_, err = f.returns.CreateSales(f.ctx, companyID, userID, dto.CreateReturnRequest{
		InvoiceID: inv.ID,
		Items:     []dto.ReturnItemRequest{{InvoiceItemID: line, Quantity: d("0.5")}},
	})
	assert.ErrorIs(t, err, domain.ErrReturnExceeded)

	// la misma línea repetida en una solicitud también se acumula
	inv2 := f.sale(t, dto.CreateInvoiceRequest{
		Items: []dto.InvoiceItemRequest{{ProductID: f.product, Quantity: d("2")}},
	})
	_, err = f.returns.CreateSales(f.ctx, companyID, userID, dto.CreateReturnRequest{
		InvoiceID: inv2.ID,
		Items: []dto.ReturnItemRequest{
			{InvoiceItemID: inv2.Items[0].ID, Quantity: d("1.5")},
			{InvoiceItemID: inv2.Items[0].ID, Quantity: d("1")},
		},
	})
	assert.ErrorIs(t, err, domain.ErrReturnExceeded)
}

func TestCreateSalesReturn_ReembolsoSaleDeCaja(t *testing.T) {
	f := newFixture(t)
	f.purchase(t, "10", "100")
	inv := f.sale(t, dto.CreateInvoiceRequest{
		PaidAmount: d("300"),
		AccountID:  f.safe,
		Items:      []dto.InvoiceItemRequest{{ProductID: f.product, Quantity: d("2")}},
	})
	require.True(t, f.balance(t, f.safe).Equal(d("300")))

	ret, err := f.returns.CreateSales(f.ctx, companyID, userID, dto.CreateReturnRequest{
		InvoiceID:    inv.ID,
		RefundAmount: d("150"),
		AccountID:    f.safe,
		Items:        []dto.ReturnItemRequest{{InvoiceItemID: inv.Items[0].ID, Quantity: d("1")}},
	})
	require.NoError(t, err)
	assert.True(t, f.balance(t, f.safe).Equal(d("150")))

	customer, err := f.parties.Get(f.ctx, companyID, entity.PartyKindCustomer, f.customer)
	require.NoError(t, err)
	assert.True(t, customer.Balance.IsZero(), "300 - 300 pagado - 150 devuelto + 150 reembolsado")

	require.NoError(t, f.returns.DeleteSales(f.ctx, companyID, ret.ID))
	assert.True(t, f.balance(t, f.safe).Equal(d("300")))
	assert.True(t, f.stock(t).CurrentStock.Equal(d("8")))
}

func TestCreateSalesReturn_ReembolsoSinSaldo(t *testing.T) {
	f := newFixture(t)
	f.purchase(t, "10", "100")
	inv := f.sale(t, dto.CreateInvoiceRequest{
		Items: []dto.InvoiceItemRequest{{ProductID: f.product, Quantity: d("2")}},
	})

	_, err := f.returns.CreateSales(f.ctx, companyID, userID, dto.CreateReturnRequest{
		InvoiceID:    inv.ID,
		RefundAmount: d("100"),
		AccountID:    f.safe,
		Items:        []dto.ReturnItemRequest{{InvoiceItemID: inv.Items[0].ID, Quantity: d("1")}},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientBalance)
	assert.True(t, f.stock(t).CurrentStock.Equal(d("8")), "el stock no cambia si la devolución falla")
}

func TestCreatePurchaseReturn_ReembolsoEntraACaja(t *testing.T) {
	f := newFixture(t)
	buy := f.purchase(t, "10", "100")

	_, err := f.returns.CreatePurchase(f.ctx, companyID, userID, dto.CreateReturnRequest{
		InvoiceID:    buy.ID,
		RefundAmount: d("200"),
		AccountID:    f.safe,
		Items:        []dto.ReturnItemRequest{{InvoiceItemID: buy.Items[0].ID, Quantity: d("2")}},
	})
	require.NoError(t, err)
	assert.True(t, f.balance(t, f.safe).Equal(d("200")))
	assert.True(t, f.stock(t).CurrentStock.Equal(d("8")))

	supplier, err := f.parties.Get(f.ctx, companyID, entity.PartyKindSupplier, f.supplier)
	require.NoError(t, err)
	assert.True(t, supplier.Balance.Equal(d("1000")), "1000 comprado - 200 devuelto + 200 reembolsado")
}

func TestCreateReturn_ReembolsoMayorAlTotal(t *testing.T) {
	f := newFixture(t)
	buy := f.purchase(t, "10", "100")

	_, err := f.returns.CreatePurchase(f.ctx, companyID, userID, dto.CreateReturnRequest{
		InvoiceID:    buy.ID,
		RefundAmount: d("101"),
		AccountID:    f.safe,
		Items:        []dto.ReturnItemRequest{{InvoiceItemID: buy.Items[0].ID, Quantity: d("1")}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDeleteInvoice_ConDevolucionesEsConflicto(t *testing.T) {
	f := newFixture(t)
	f.purchase(t, "10", "100")
	inv := f.sale(t, dto.CreateInvoiceRequest{
		Items: []dto.InvoiceItemRequest{{ProductID: f.product, Quantity: d("2")}},
	})
	ret, err := f.returns.CreateSales(f.ctx, companyID, userID, dto.CreateReturnRequest{
		InvoiceID: inv.ID,
		Items:     []dto.ReturnItemRequest{{InvoiceItemID: inv.Items[0].ID, Quantity: d("1")}},
	})
	require.NoError(t, err)

	err = f.invoices.DeleteSales(f.ctx, companyID, inv.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)

	require.NoError(t, f.returns.DeleteSales(f.ctx, companyID, ret.ID))
	require.NoError(t, f.invoices.DeleteSales(f.ctx, companyID, inv.ID))
	assert.True(t, f.stock(t).CurrentStock.Equal(d("10")))
}

func TestCreateReturn_FacturaDeOtroTipo(t *testing.T) {
	f := newFixture(t)
	buy := f.purchase(t, "1", "100")

	_, err := f.returns.CreateSales(f.ctx, companyID, userID, dto.CreateReturnRequest{
		InvoiceID: buy.ID,
		Items:     []dto.ReturnItemRequest{{InvoiceItemID: buy.Items[0].ID, Quantity: d("1")}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
