package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de cuenta de tesorería.
const (
	AccountKindSafe = "SAFE" // caja
	AccountKindBank = "BANK" // banco
)

// Orígenes de un movimiento de tesorería.
const (
	TreasurySourceReceipt        = "RECEIPT"
	TreasurySourcePayment        = "PAYMENT"
	TreasurySourceSalesReturn    = "SALES_RETURN"
	TreasurySourcePurchaseReturn = "PURCHASE_RETURN"
	TreasurySourceTransferOut    = "TRANSFER_OUT"
	TreasurySourceTransferIn     = "TRANSFER_IN"
)

// TreasuryAccount representa una caja o una cuenta bancaria.
// Invariante: Balance == InitialBalance + Σ Amount de sus movimientos.
type TreasuryAccount struct {
	ID             string
	CompanyID      string
	Kind           string
	Name           string
	BankName       string
	AccountNumber  string
	InitialBalance decimal.Decimal
	Balance        decimal.Decimal
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TreasuryMovement es una fila inmutable del libro de una cuenta (Amount con signo).
type TreasuryMovement struct {
	ID          string
	CompanyID   string
	AccountID   string
	Amount      decimal.Decimal
	SourceType  string
	SourceID    string
	Description string
	Date        time.Time
	CreatedBy   string
	CreatedAt   time.Time
}

// Tipos de comprobante.
const (
	VoucherKindReceipt = "RECEIPT" // recibo de caja: cliente paga
	VoucherKindPayment = "PAYMENT" // comprobante de egreso: se paga al proveedor
)

// Voucher comprobante de recibo o de pago ligado a un tercero y una cuenta.
type Voucher struct {
	ID        string
	CompanyID string
	Kind      string
	Number    string
	PartyID   string
	AccountID string
	Amount    decimal.Decimal // siempre positivo; el signo lo da Kind
	Date      time.Time
	InvoiceID string // factura pagada al crearla (opcional)
	Notes     string
	CreatedBy string
	CreatedAt time.Time
}

// SignedAmount devuelve el efecto del comprobante sobre el saldo de la cuenta.
func (v *Voucher) SignedAmount() decimal.Decimal {
	if v.Kind == VoucherKindPayment {
		return v.Amount.Neg()
	}
	return v.Amount
}

// SourceType devuelve el origen con el que el comprobante queda en el libro de tesorería.
func (v *Voucher) SourceType() string {
	if v.Kind == VoucherKindPayment {
		return TreasurySourcePayment
	}
	return TreasurySourceReceipt
}

// VoucherPartyKind devuelve el tipo de tercero que corresponde al comprobante.
func VoucherPartyKind(kind string) string {
	if kind == VoucherKindPayment {
		return PartyKindSupplier
	}
	return PartyKindCustomer
}

// Transfer traslado de fondos entre dos cuentas de tesorería.
type Transfer struct {
	ID            string
	CompanyID     string
	FromAccountID string
	ToAccountID   string
	Amount        decimal.Decimal
	Date          time.Time
	Notes         string
	CreatedBy     string
	CreatedAt     time.Time
}

// ValidAccountKind indica si k es SAFE o BANK.
func ValidAccountKind(k string) bool {
	return k == AccountKindSafe || k == AccountKindBank
}

// ValidVoucherKind indica si k es RECEIPT o PAYMENT.
func ValidVoucherKind(k string) bool {
	return k == VoucherKindReceipt || k == VoucherKindPayment
}
