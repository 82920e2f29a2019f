package analytics_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/Contable-api/internal/application/analytics"
	"github.com/jhoicas/Contable-api/internal/application/billing"
	"github.com/jhoicas/Contable-api/internal/application/dto"
	"github.com/jhoicas/Contable-api/internal/application/inventory"
	"github.com/jhoicas/Contable-api/internal/application/treasury"
	"github.com/jhoicas/Contable-api/internal/application/usecase"
	"github.com/jhoicas/Contable-api/internal/domain"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/infrastructure/excel"
	"github.com/jhoicas/Contable-api/internal/infrastructure/memory"
)

const (
	companyID = "00000000-0000-0000-0000-0000000000c1"
	userID    = "00000000-0000-0000-0000-0000000000a1"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func day(s string) *time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return &t
}

type fixture struct {
	ctx      context.Context
	store    *memory.Store
	invoices *billing.InvoiceUseCase
	vouchers *treasury.VoucherUseCase
	reports  *analytics.ReportUseCase

	customer string
	supplier string
	product  string
	safe     string
	bank     string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	parties := usecase.NewPartyUseCase(store)
	accounts := treasury.NewAccountUseCase(store)
	f := &fixture{
		ctx:      ctx,
		store:    store,
		invoices: billing.NewInvoiceUseCase(store),
		vouchers: treasury.NewVoucherUseCase(store),
		reports:  analytics.NewReportUseCase(store, excel.NewExporter()),
	}
	c, err := parties.CreateCustomer(ctx, companyID, dto.CreatePartyRequest{Code: "C1", Name: "Cliente", OpeningBalance: d("100")})
	require.NoError(t, err)
	f.customer = c.ID
	s, err := parties.CreateSupplier(ctx, companyID, dto.CreatePartyRequest{Code: "S1", Name: "Proveedor"})
	require.NoError(t, err)
	f.supplier = s.ID
	p, err := usecase.NewProductUseCase(store).Create(ctx, companyID, dto.CreateProductRequest{
		Code: "P1", Name: "Cemento", BuyPrice: d("100"), SellPrice: d("150"), MinStock: d("5"),
	})
	require.NoError(t, err)
	f.product = p.ID
	safe, err := accounts.CreateSafe(ctx, companyID, dto.CreateAccountRequest{Name: "Caja"})
	require.NoError(t, err)
	f.safe = safe.ID
	bank, err := accounts.CreateBank(ctx, companyID, dto.CreateAccountRequest{Name: "Banco", InitialBalance: d("1000")})
	require.NoError(t, err)
	f.bank = bank.ID
	return f
}

func (f *fixture) purchase(t *testing.T, qty string, date *time.Time) {
	t.Helper()
	_, err := f.invoices.CreatePurchase(f.ctx, companyID, userID, dto.CreateInvoiceRequest{
		PartyID: f.supplier, Date: date,
		Items: []dto.InvoiceItemRequest{{ProductID: f.product, Quantity: d(qty)}},
	})
	require.NoError(t, err)
}

func (f *fixture) sale(t *testing.T, qty string, date *time.Time, paid string) {
	t.Helper()
	in := dto.CreateInvoiceRequest{
		PartyID: f.customer, Date: date,
		Items: []dto.InvoiceItemRequest{{ProductID: f.product, Quantity: d(qty)}},
	}
	if paid != "" {
		in.PaidAmount = d(paid)
		in.AccountID = f.safe
	}
	_, err := f.invoices.CreateSales(f.ctx, companyID, userID, in)
	require.NoError(t, err)
}

func (f *fixture) receipt(t *testing.T, amount string, date *time.Time) {
	t.Helper()
	_, err := f.vouchers.CreateReceipt(f.ctx, companyID, userID, dto.CreateVoucherRequest{
		PartyID: f.customer, AccountID: f.bank, Amount: d(amount), Date: date,
	})
	require.NoError(t, err)
}

func TestPartyStatement_SaldoAnteriorYCorrido(t *testing.T) {
	f := newFixture(t)
	f.purchase(t, "20", day("2026-01-02"))
	f.sale(t, "2", day("2026-01-10"), "")  // 300
	f.receipt(t, "150", day("2026-02-05")) // abono
	f.sale(t, "1", day("2026-02-20"), "")  // 150
	f.sale(t, "1", day("2026-03-01"), "")  // fuera del rango

	feb := dto.DateRange{From: day("2026-02-01"), To: day("2026-02-28")}
	st, err := f.reports.PartyStatement(f.ctx, companyID, f.customer, feb)
	require.NoError(t, err)

	assert.True(t, st.OpeningBalance.Equal(d("400")), "100 inicial + 300 de enero")
	require.Len(t, st.Lines, 2)
	assert.Equal(t, entity.DocumentReceipt, st.Lines[0].DocumentType)
	assert.True(t, st.Lines[0].Credit.Equal(d("150")))
	assert.True(t, st.Lines[0].Balance.Equal(d("250")))
	assert.Equal(t, entity.DocumentSalesInvoice, st.Lines[1].DocumentType)
	assert.True(t, st.Lines[1].Debit.Equal(d("150")))
	assert.True(t, st.ClosingBalance.Equal(d("400")))
	assert.True(t, st.TotalDebit.Equal(d("150")))
	assert.True(t, st.TotalCredit.Equal(d("150")))
	assert.True(t, st.Party.Balance.Equal(d("400")))

	all, err := f.reports.PartyStatement(f.ctx, companyID, f.customer, dto.DateRange{})
	require.NoError(t, err)
	assert.True(t, all.OpeningBalance.Equal(d("100")))
	assert.Len(t, all.Lines, 4)
	assert.True(t, all.ClosingBalance.Equal(d("550")))
}

func TestPartyStatement_ProveedorCompraEsCredito(t *testing.T) {
	f := newFixture(t)
	f.purchase(t, "3", day("2026-01-02"))

	st, err := f.reports.PartyStatement(f.ctx, companyID, f.supplier, dto.DateRange{})
	require.NoError(t, err)
	require.Len(t, st.Lines, 1)
	assert.True(t, st.Lines[0].Credit.Equal(d("300")))
	assert.True(t, st.Lines[0].Debit.IsZero())
	assert.True(t, st.ClosingBalance.Equal(d("300")))

	_, err = f.reports.PartyStatement(f.ctx, "00000000-0000-0000-0000-0000000000ff", f.supplier, dto.DateRange{})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestPartyStatement_FiltraPorTipoDeTercero(t *testing.T) {
	f := newFixture(t)
	f.purchase(t, "3", day("2026-01-02"))

	st, err := f.reports.PartyStatement(f.ctx, companyID, f.supplier, dto.DateRange{}, entity.PartyKindSupplier)
	require.NoError(t, err)
	assert.Equal(t, entity.PartyKindSupplier, st.Party.Kind)

	_, err = f.reports.PartyStatement(f.ctx, companyID, f.supplier, dto.DateRange{}, entity.PartyKindCustomer)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.reports.PartyStatement(f.ctx, companyID, f.customer, dto.DateRange{}, entity.PartyKindCustomer, entity.PartyKindSupplier)
	assert.NoError(t, err)
}

func TestAccountLedger(t *testing.T) {
	f := newFixture(t)
	f.purchase(t, "10", day("2026-01-02"))
	f.sale(t, "2", day("2026-01-10"), "")
	f.receipt(t, "100", day("2026-01-20"))
	f.receipt(t, "150", day("2026-02-05"))

	ledger, err := f.reports.AccountLedger(f.ctx, companyID, f.bank, dto.DateRange{From: day("2026-02-01")})
	require.NoError(t, err)
	assert.True(t, ledger.OpeningBalance.Equal(d("1100")))
	require.Len(t, ledger.Lines, 1)
	assert.Equal(t, entity.TreasurySourceReceipt, ledger.Lines[0].SourceType)
	assert.True(t, ledger.Lines[0].Balance.Equal(d("1250")))
	assert.True(t, ledger.ClosingBalance.Equal(d("1250")))
	assert.True(t, ledger.Account.Balance.Equal(ledger.ClosingBalance))
}

func TestStockReport_Valorizado(t *testing.T) {
	f := newFixture(t)
	f.purchase(t, "8", nil)
	f.sale(t, "5", nil, "")

	report, err := f.reports.StockReport(f.ctx, companyID, false)
	require.NoError(t, err)
	require.Len(t, report.Items, 1)
	assert.True(t, report.Items[0].StockValue.Equal(d("300")))
	assert.True(t, report.Items[0].IsLow)
	assert.Equal(t, 1, report.LowCount)
	assert.True(t, report.TotalValue.Equal(d("300")))

	data, err := f.reports.ExportStockReport(f.ctx, companyID, true)
	require.NoError(t, err)
	book, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	assert.NotEmpty(t, book.GetSheetList())
}

func TestIntegrityCheck(t *testing.T) {
	f := newFixture(t)
	f.purchase(t, "8", nil)
	f.sale(t, "2", nil, "300")

	report, err := f.reports.IntegrityCheck(f.ctx, companyID)
	require.NoError(t, err)
	assert.True(t, report.OK)

	// saldo desnormalizado alterado por fuera de los casos de uso
	require.NoError(t, f.store.Repos().Products.UpdateStock(f.ctx, f.product, d("99")))
	require.NoError(t, f.store.Repos().Accounts.UpdateBalance(f.ctx, f.safe, d("1")))

	report, err = f.reports.IntegrityCheck(f.ctx, companyID)
	require.NoError(t, err)
	assert.False(t, report.OK)
	require.Len(t, report.Products, 1)
	assert.True(t, report.Products[0].LedgerStock.Equal(d("6")))
	require.Len(t, report.Accounts, 1)
	assert.True(t, report.Accounts[0].Expected.Equal(d("300")))
}

func TestIntegrityCheck_SecuenciaMixtaDeAltasYBajas(t *testing.T) {
	f := newFixture(t)
	returns := billing.NewReturnUseCase(f.store)
	transfers := treasury.NewTransferUseCase(f.store)
	adjustments := inventory.NewInventoryUseCase(f.store)
	accounts := treasury.NewAccountUseCase(f.store)

	buy, err := f.invoices.CreatePurchase(f.ctx, companyID, userID, dto.CreateInvoiceRequest{
		PartyID: f.supplier,
		Items:   []dto.InvoiceItemRequest{{ProductID: f.product, Quantity: d("20")}},
	})
	require.NoError(t, err)
	sale, err := f.invoices.CreateSales(f.ctx, companyID, userID, dto.CreateInvoiceRequest{
		PartyID: f.customer, PaidAmount: d("300"), AccountID: f.safe,
		Items: []dto.InvoiceItemRequest{{ProductID: f.product, Quantity: d("5")}},
	})
	require.NoError(t, err)
	f.receipt(t, "200", nil)

	salesReturn, err := returns.CreateSales(f.ctx, companyID, userID, dto.CreateReturnRequest{
		InvoiceID: sale.ID, RefundAmount: d("100"), AccountID: f.safe,
		Items: []dto.ReturnItemRequest{{InvoiceItemID: sale.Items[0].ID, Quantity: d("1")}},
	})
	require.NoError(t, err)
	_, err = returns.CreatePurchase(f.ctx, companyID, userID, dto.CreateReturnRequest{
		InvoiceID: buy.ID, RefundAmount: d("200"), AccountID: f.bank,
		Items: []dto.ReturnItemRequest{{InvoiceItemID: buy.Items[0].ID, Quantity: d("2")}},
	})
	require.NoError(t, err)
	transfer, err := transfers.Create(f.ctx, companyID, userID, dto.CreateTransferRequest{
		FromAccountID: f.safe, ToAccountID: f.bank, Amount: d("150"),
	})
	require.NoError(t, err)
	adjustment, err := adjustments.CreateAdjustment(f.ctx, companyID, userID, dto.CreateAdjustmentRequest{
		ProductID: f.product, Quantity: d("-3"), Reason: "merma",
	})
	require.NoError(t, err)
	payment, err := f.vouchers.CreatePayment(f.ctx, companyID, userID, dto.CreateVoucherRequest{
		PartyID: f.supplier, AccountID: f.bank, Amount: d("100"),
	})
	require.NoError(t, err)

	report, err := f.reports.IntegrityCheck(f.ctx, companyID)
	require.NoError(t, err)
	assert.True(t, report.OK, "después de las altas")

	require.NoError(t, transfers.Delete(f.ctx, companyID, transfer.ID))
	require.NoError(t, f.vouchers.DeletePayment(f.ctx, companyID, payment.ID))
	require.NoError(t, returns.DeleteSales(f.ctx, companyID, salesReturn.ID))
	require.NoError(t, adjustments.DeleteAdjustment(f.ctx, companyID, adjustment.ID))

	report, err = f.reports.IntegrityCheck(f.ctx, companyID)
	require.NoError(t, err)
	assert.True(t, report.OK, "después de las bajas")
	assert.Empty(t, report.Products)
	assert.Empty(t, report.Accounts)

	stock, err := f.reports.StockReport(f.ctx, companyID, false)
	require.NoError(t, err)
	require.Len(t, stock.Items, 1)
	assert.True(t, stock.Items[0].CurrentStock.Equal(d("13")), "20 - 5 vendidos - 2 devueltos al proveedor")

	safe, err := accounts.Get(f.ctx, companyID, f.safe)
	require.NoError(t, err)
	assert.True(t, safe.Balance.Equal(d("300")))
	bank, err := accounts.Get(f.ctx, companyID, f.bank)
	require.NoError(t, err)
	assert.True(t, bank.Balance.Equal(d("1400")), "1000 inicial + 200 recibo + 200 reembolso del proveedor")
}

func TestDashboard_GetSummary(t *testing.T) {
	f := newFixture(t)
	f.purchase(t, "10", nil) // 1000 a crédito
	f.sale(t, "4", nil, "200")

	summary, err := analytics.NewDashboardUseCase(f.store.Repos().Reports).GetSummary(f.ctx, companyID)
	require.NoError(t, err)

	assert.True(t, summary.TodaySales.Equal(d("600")))
	assert.True(t, summary.MonthSales.Equal(d("600")))
	assert.True(t, summary.MonthPurchases.Equal(d("1000")))
	assert.True(t, summary.CashInSafes.Equal(d("200")))
	assert.True(t, summary.CashInBanks.Equal(d("1000")))
	assert.True(t, summary.Receivables.Equal(d("500")), "100 inicial + 600 - 200")
	assert.True(t, summary.Payables.Equal(d("1000")))
	assert.Equal(t, 0, summary.LowStockCount)
	require.Len(t, summary.TopProducts, 1)
	assert.True(t, summary.TopProducts[0].Quantity.Equal(d("4")))
	assert.NotEmpty(t, summary.DateLabel)
}
