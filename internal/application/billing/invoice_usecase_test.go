package billing_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Contable-api/internal/application/billing"
	"github.com/jhoicas/Contable-api/internal/application/dto"
	"github.com/jhoicas/Contable-api/internal/application/treasury"
	"github.com/jhoicas/Contable-api/internal/application/usecase"
	"github.com/jhoicas/Contable-api/internal/domain"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/infrastructure/memory"
)

const (
	companyID = "00000000-0000-0000-0000-0000000000c1"
	otherID   = "00000000-0000-0000-0000-0000000000c2"
	userID    = "00000000-0000-0000-0000-0000000000u1"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type fixture struct {
	ctx      context.Context
	invoices *billing.InvoiceUseCase
	returns  *billing.ReturnUseCase
	products *usecase.ProductUseCase
	parties  *usecase.PartyUseCase
	accounts *treasury.AccountUseCase
	vouchers *treasury.VoucherUseCase

	customer string
	supplier string
	product  string
	safe     string
}

// newFixture prepara una empresa con un cliente, un proveedor, un producto sin stock y una caja vacía.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	f := &fixture{
		ctx:      context.Background(),
		invoices: billing.NewInvoiceUseCase(store),
		returns:  billing.NewReturnUseCase(store),
		products: usecase.NewProductUseCase(store),
		parties:  usecase.NewPartyUseCase(store),
		accounts: treasury.NewAccountUseCase(store),
		vouchers: treasury.NewVoucherUseCase(store),
	}
	c, err := f.parties.CreateCustomer(f.ctx, companyID, dto.CreatePartyRequest{Code: "CLI-1", Name: "Cliente Uno"})
	require.NoError(t, err)
	f.customer = c.ID
	s, err := f.parties.CreateSupplier(f.ctx, companyID, dto.CreatePartyRequest{Code: "PRO-1", Name: "Proveedor Uno"})
	require.NoError(t, err)
	f.supplier = s.ID
	p, err := f.products.Create(f.ctx, companyID, dto.CreateProductRequest{
		Code: "P1", Name: "Arroz", BuyPrice: d("90"), SellPrice: d("150"),
	})
	require.NoError(t, err)
	f.product = p.ID
	a, err := f.accounts.CreateSafe(f.ctx, companyID, dto.CreateAccountRequest{Name: "Caja general"})
	require.NoError(t, err)
	f.safe = a.ID
	return f
}

func (f *fixture) purchase(t *testing.T, qty, price string) *dto.InvoiceResponse {
	t.Helper()
	inv, err := f.invoices.CreatePurchase(f.ctx, companyID, userID, dto.CreateInvoiceRequest{
		PartyID: f.supplier,
		Items:   []dto.InvoiceItemRequest{{ProductID: f.product, Quantity: d(qty), UnitPrice: d(price)}},
	})
	require.NoError(t, err)
	return inv
}

func (f *fixture) stock(t *testing.T) *dto.ProductResponse {
	t.Helper()
	p, err := f.products.GetByID(f.ctx, companyID, f.product)
	require.NoError(t, err)
	return p
}

func (f *fixture) balance(t *testing.T, accountID string) decimal.Decimal {
	t.Helper()
	a, err := f.accounts.Get(f.ctx, companyID, accountID)
	require.NoError(t, err)
	return a.Balance
}

func TestCreatePurchase_SumaStockYPromediaCosto(t *testing.T) {
	f := newFixture(t)

	first := f.purchase(t, "10", "100")
	assert.Equal(t, "FC-000001", first.Number)
	assert.True(t, first.Total.Equal(d("1000")))

	p := f.stock(t)
	assert.True(t, p.CurrentStock.Equal(d("10")))
	assert.True(t, p.BuyPrice.Equal(d("100")), "sin stock previo el costo es el de la compra")

	f.purchase(t, "30", "120")
	p = f.stock(t)
	assert.True(t, p.CurrentStock.Equal(d("40")))
	assert.True(t, p.BuyPrice.Equal(d("115")), "got %s", p.BuyPrice)
}

func TestCreateSales_PrecioPorDefectoYNumeracion(t *testing.T) {
	f := newFixture(t)
	f.purchase(t, "10", "100")

	inv, err := f.invoices.CreateSales(f.ctx, companyID, userID, dto.CreateInvoiceRequest{
		PartyID:  f.customer,
		Discount: d("50"),
		Items:    []dto.InvoiceItemRequest{{ProductID: f.product, Quantity: d("3")}},
	})
	require.NoError(t, err)
	assert.Equal(t, "FV-000001", inv.Number)
	require.Len(t, inv.Items, 1)
	assert.True(t, inv.Items[0].UnitPrice.Equal(d("150")), "precio 0 toma el precio de venta")
	assert.True(t, inv.Subtotal.Equal(d("450")))
	assert.True(t, inv.Total.Equal(d("400")))
	assert.Empty(t, inv.VoucherID)

	assert.True(t, f.stock(t).CurrentStock.Equal(d("7")))

	customer, err := f.parties.Get(f.ctx, companyID, entity.PartyKindCustomer, f.customer)
	require.NoError(t, err)
	assert.True(t, customer.Balance.Equal(d("400")))
}

func TestCreateSales_StockInsuficienteNoDejaRastro(t *testing.T) {
	f := newFixture(t)
	f.purchase(t, "2", "100")

	_, err := f.invoices.CreateSales(f.ctx, companyID, userID, dto.CreateInvoiceRequest{
		PartyID: f.customer,
		Items:   []dto.InvoiceItemRequest{{ProductID: f.product, Quantity: d("3")}},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.True(t, f.stock(t).CurrentStock.Equal(d("2")))
	list, err := f.invoices.List(f.ctx, companyID, entity.InvoiceKindSales, dto.InvoiceFilter{})
	require.NoError(t, err)
	assert.Empty(t, list.Items)

	// el consecutivo tampoco se consume
	inv, err := f.invoices.CreateSales(f.ctx, companyID, userID, dto.CreateInvoiceRequest{
		PartyID: f.customer,
		Items:   []dto.InvoiceItemRequest{{ProductID: f.product, Quantity: d("2")}},
	})
	require.NoError(t, err)
	assert.Equal(t, "FV-000001", inv.Number)
}

func TestCreateSales_PagoInmediatoGeneraRecibo(t *testing.T) {
	f := newFixture(t)
	f.purchase(t, "10", "100")

	inv, err := f.invoices.CreateSales(f.ctx, companyID, userID, dto.CreateInvoiceRequest{
		PartyID:    f.customer,
		PaidAmount: d("200"),
		AccountID:  f.safe,
		Items:      []dto.InvoiceItemRequest{{ProductID: f.product, Quantity: d("2"), UnitPrice: d("160")}},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, inv.VoucherID)
	assert.True(t, f.balance(t, f.safe).Equal(d("200")))

	customer, err := f.parties.Get(f.ctx, companyID, entity.PartyKindCustomer, f.customer)
	require.NoError(t, err)
	assert.True(t, customer.Balance.Equal(d("120")), "320 facturado menos 200 pagado")
}

func TestCreateInvoice_Validaciones(t *testing.T) {
	f := newFixture(t)
	f.purchase(t, "10", "100")

	cases := map[string]dto.CreateInvoiceRequest{
		"sin líneas": {PartyID: f.customer},
		"descuento mayor al subtotal": {
			PartyID: f.customer, Discount: d("1000"),
			Items: []dto.InvoiceItemRequest{{ProductID: f.product, Quantity: d("1")}},
		},
		"pago sin cuenta": {
			PartyID: f.customer, PaidAmount: d("10"),
			Items: []dto.InvoiceItemRequest{{ProductID: f.product, Quantity: d("1")}},
		},
		"pago mayor al total": {
			PartyID: f.customer, PaidAmount: d("151"), AccountID: f.safe,
			Items: []dto.InvoiceItemRequest{{ProductID: f.product, Quantity: d("1")}},
		},
		"proveedor en una venta": {
			PartyID: f.supplier,
			Items:   []dto.InvoiceItemRequest{{ProductID: f.product, Quantity: d("1")}},
		},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := f.invoices.CreateSales(f.ctx, companyID, userID, in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestCreateInvoice_NumeroManualDuplicado(t *testing.T) {
	f := newFixture(t)
	in := dto.CreateInvoiceRequest{
		Number:  "FAC-77",
		PartyID: f.supplier,
		Items:   []dto.InvoiceItemRequest{{ProductID: f.product, Quantity: d("1"), UnitPrice: d("10")}},
	}
	_, err := f.invoices.CreatePurchase(f.ctx, companyID, userID, in)
	require.NoError(t, err)
	_, err = f.invoices.CreatePurchase(f.ctx, companyID, userID, in)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestDeleteSales_RevierteStockYRecibo(t *testing.T) {
	f := newFixture(t)
	f.purchase(t, "10", "100")
	inv, err := f.invoices.CreateSales(f.ctx, companyID, userID, dto.CreateInvoiceRequest{
		PartyID:    f.customer,
		PaidAmount: d("150"),
		AccountID:  f.safe,
		Items:      []dto.InvoiceItemRequest{{ProductID: f.product, Quantity: d("1")}},
	})
	require.NoError(t, err)

	require.NoError(t, f.invoices.DeleteSales(f.ctx, companyID, inv.ID))
	assert.True(t, f.stock(t).CurrentStock.Equal(d("10")))
	assert.True(t, f.balance(t, f.safe).IsZero())

	_, err = f.invoices.Get(f.ctx, companyID, entity.InvoiceKindSales, inv.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeletePurchase_SinStockParaRetirar(t *testing.T) {
	f := newFixture(t)
	buy := f.purchase(t, "5", "100")
	_, err := f.invoices.CreateSales(f.ctx, companyID, userID, dto.CreateInvoiceRequest{
		PartyID: f.customer,
		Items:   []dto.InvoiceItemRequest{{ProductID: f.product, Quantity: d("4")}},
	})
	require.NoError(t, err)

	err = f.invoices.DeletePurchase(f.ctx, companyID, buy.ID)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.True(t, f.stock(t).CurrentStock.Equal(d("1")))
}

func TestGetInvoice_OtraEmpresaOTipo(t *testing.T) {
	f := newFixture(t)
	buy := f.purchase(t, "1", "100")

	_, err := f.invoices.Get(f.ctx, otherID, entity.InvoiceKindPurchase, buy.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = f.invoices.Get(f.ctx, companyID, entity.InvoiceKindSales, buy.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
