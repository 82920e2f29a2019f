package treasury_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Contable-api/internal/application/dto"
	"github.com/jhoicas/Contable-api/internal/application/treasury"
	"github.com/jhoicas/Contable-api/internal/application/usecase"
	"github.com/jhoicas/Contable-api/internal/domain"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/infrastructure/memory"
)

const (
	companyID = "00000000-0000-0000-0000-0000000000c1"
	userID    = "00000000-0000-0000-0000-0000000000a1"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type fixture struct {
	ctx       context.Context
	accounts  *treasury.AccountUseCase
	vouchers  *treasury.VoucherUseCase
	transfers *treasury.TransferUseCase
	parties   *usecase.PartyUseCase

	customer string
	supplier string
	safe     string
	bank     string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	f := &fixture{
		ctx:       context.Background(),
		accounts:  treasury.NewAccountUseCase(store),
		vouchers:  treasury.NewVoucherUseCase(store),
		transfers: treasury.NewTransferUseCase(store),
		parties:   usecase.NewPartyUseCase(store),
	}
	c, err := f.parties.CreateCustomer(f.ctx, companyID, dto.CreatePartyRequest{Code: "C1", Name: "Cliente", OpeningBalance: d("500")})
	require.NoError(t, err)
	f.customer = c.ID
	s, err := f.parties.CreateSupplier(f.ctx, companyID, dto.CreatePartyRequest{Code: "S1", Name: "Proveedor", OpeningBalance: d("800")})
	require.NoError(t, err)
	f.supplier = s.ID
	safe, err := f.accounts.CreateSafe(f.ctx, companyID, dto.CreateAccountRequest{Name: "Caja"})
	require.NoError(t, err)
	f.safe = safe.ID
	bank, err := f.accounts.CreateBank(f.ctx, companyID, dto.CreateAccountRequest{
		Name: "Cuenta corriente", BankName: "Banco de Bogotá", InitialBalance: d("1000"),
	})
	require.NoError(t, err)
	f.bank = bank.ID
	return f
}

func (f *fixture) balance(t *testing.T, id string) decimal.Decimal {
	t.Helper()
	a, err := f.accounts.Get(f.ctx, companyID, id)
	require.NoError(t, err)
	return a.Balance
}

func TestCreateReceipt_SumaACajaYReduceCartera(t *testing.T) {
	f := newFixture(t)

	v, err := f.vouchers.CreateReceipt(f.ctx, companyID, userID, dto.CreateVoucherRequest{
		PartyID: f.customer, AccountID: f.safe, Amount: d("200"),
	})
	require.NoError(t, err)
	assert.Equal(t, "RC-000001", v.Number)
	assert.Equal(t, entity.VoucherKindReceipt, v.Kind)
	assert.True(t, f.balance(t, f.safe).Equal(d("200")))

	customer, err := f.parties.Get(f.ctx, companyID, entity.PartyKindCustomer, f.customer)
	require.NoError(t, err)
	assert.True(t, customer.Balance.Equal(d("300")))
}

func TestCreatePayment_SinSaldoNoPersiste(t *testing.T) {
	f := newFixture(t)

	_, err := f.vouchers.CreatePayment(f.ctx, companyID, userID, dto.CreateVoucherRequest{
		PartyID: f.supplier, AccountID: f.safe, Amount: d("1"),
	})
	require.ErrorIs(t, err, domain.ErrInsufficientBalance)

	list, err := f.vouchers.List(f.ctx, companyID, entity.VoucherKindPayment, dto.VoucherFilter{})
	require.NoError(t, err)
	assert.Empty(t, list.Items)

	v, err := f.vouchers.CreatePayment(f.ctx, companyID, userID, dto.CreateVoucherRequest{
		PartyID: f.supplier, AccountID: f.bank, Amount: d("300"),
	})
	require.NoError(t, err)
	assert.Equal(t, "CE-000001", v.Number, "el consecutivo del intento fallido no se consume")
	assert.True(t, f.balance(t, f.bank).Equal(d("700")))

	require.NoError(t, f.vouchers.DeletePayment(f.ctx, companyID, v.ID))
	assert.True(t, f.balance(t, f.bank).Equal(d("1000")))
}

func TestDeleteReceipt_RequiereSaldoParaRevertir(t *testing.T) {
	f := newFixture(t)
	receipt, err := f.vouchers.CreateReceipt(f.ctx, companyID, userID, dto.CreateVoucherRequest{
		PartyID: f.customer, AccountID: f.safe, Amount: d("100"),
	})
	require.NoError(t, err)
	_, err = f.vouchers.CreatePayment(f.ctx, companyID, userID, dto.CreateVoucherRequest{
		PartyID: f.supplier, AccountID: f.safe, Amount: d("60"),
	})
	require.NoError(t, err)

	err = f.vouchers.DeleteReceipt(f.ctx, companyID, receipt.ID)
	assert.ErrorIs(t, err, domain.ErrInsufficientBalance)
	assert.True(t, f.balance(t, f.safe).Equal(d("40")))

	// un recibo no se elimina como egreso
	err = f.vouchers.DeletePayment(f.ctx, companyID, receipt.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateVoucher_TerceroDelTipoEquivocado(t *testing.T) {
	f := newFixture(t)
	_, err := f.vouchers.CreateReceipt(f.ctx, companyID, userID, dto.CreateVoucherRequest{
		PartyID: f.supplier, AccountID: f.safe, Amount: d("10"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.vouchers.CreateReceipt(f.ctx, companyID, userID, dto.CreateVoucherRequest{
		PartyID: f.customer, AccountID: f.safe, Amount: decimal.Zero,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateVoucher_NumeroManualDuplicado(t *testing.T) {
	f := newFixture(t)
	in := dto.CreateVoucherRequest{Number: "R-10", PartyID: f.customer, AccountID: f.safe, Amount: d("10")}
	_, err := f.vouchers.CreateReceipt(f.ctx, companyID, userID, in)
	require.NoError(t, err)
	_, err = f.vouchers.CreateReceipt(f.ctx, companyID, userID, in)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	assert.True(t, f.balance(t, f.safe).Equal(d("10")))
}

func TestTransfer_MueveFondosYSeRevierte(t *testing.T) {
	f := newFixture(t)

	tr, err := f.transfers.Create(f.ctx, companyID, userID, dto.CreateTransferRequest{
		FromAccountID: f.bank, ToAccountID: f.safe, Amount: d("250"), Notes: "base de caja",
	})
	require.NoError(t, err)
	assert.True(t, f.balance(t, f.bank).Equal(d("750")))
	assert.True(t, f.balance(t, f.safe).Equal(d("250")))

	require.NoError(t, f.transfers.Delete(f.ctx, companyID, tr.ID))
	assert.True(t, f.balance(t, f.bank).Equal(d("1000")))
	assert.True(t, f.balance(t, f.safe).IsZero())

	list, err := f.transfers.List(f.ctx, companyID, dto.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, list.Items)
}

func TestTransfer_Validaciones(t *testing.T) {
	f := newFixture(t)

	_, err := f.transfers.Create(f.ctx, companyID, userID, dto.CreateTransferRequest{
		FromAccountID: f.bank, ToAccountID: f.bank, Amount: d("1"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.transfers.Create(f.ctx, companyID, userID, dto.CreateTransferRequest{
		FromAccountID: f.safe, ToAccountID: f.bank, Amount: d("1"),
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientBalance)
	assert.True(t, f.balance(t, f.bank).Equal(d("1000")), "la entrada al banco se deshace")
}

func TestTransfer_DeleteConDestinoSinSaldo(t *testing.T) {
	f := newFixture(t)
	tr, err := f.transfers.Create(f.ctx, companyID, userID, dto.CreateTransferRequest{
		FromAccountID: f.bank, ToAccountID: f.safe, Amount: d("100"),
	})
	require.NoError(t, err)
	_, err = f.vouchers.CreatePayment(f.ctx, companyID, userID, dto.CreateVoucherRequest{
		PartyID: f.supplier, AccountID: f.safe, Amount: d("100"),
	})
	require.NoError(t, err)

	err = f.transfers.Delete(f.ctx, companyID, tr.ID)
	assert.ErrorIs(t, err, domain.ErrInsufficientBalance)
}

func TestAccounts_NombreUnicoEInactivacion(t *testing.T) {
	f := newFixture(t)

	_, err := f.accounts.CreateSafe(f.ctx, companyID, dto.CreateAccountRequest{Name: "Caja"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	_, err = f.accounts.CreateBank(f.ctx, companyID, dto.CreateAccountRequest{Name: "Caja"})
	assert.NoError(t, err, "el nombre es único por tipo de cuenta")

	assert.ErrorIs(t, f.accounts.Deactivate(f.ctx, companyID, f.bank), domain.ErrConflict)
	require.NoError(t, f.accounts.Deactivate(f.ctx, companyID, f.safe))

	_, err = f.vouchers.CreateReceipt(f.ctx, companyID, userID, dto.CreateVoucherRequest{
		PartyID: f.customer, AccountID: f.safe, Amount: d("10"),
	})
	assert.ErrorIs(t, err, domain.ErrInactive)

	safes, err := f.accounts.List(f.ctx, companyID, entity.AccountKindSafe, false)
	require.NoError(t, err)
	assert.Empty(t, safes)
	safes, err = f.accounts.List(f.ctx, companyID, entity.AccountKindSafe, true)
	require.NoError(t, err)
	assert.Len(t, safes, 1)
}

func TestAccounts_UpdateNoTocaSaldo(t *testing.T) {
	f := newFixture(t)
	name := "Bancolombia ahorros"
	acc, err := f.accounts.Update(f.ctx, companyID, f.bank, dto.UpdateAccountRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, name, acc.Name)
	assert.True(t, acc.Balance.Equal(d("1000")))

	_, err = f.accounts.Get(f.ctx, "00000000-0000-0000-0000-0000000000ff", f.bank)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
