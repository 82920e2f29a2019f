package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateAccountRequest entrada para crear una caja o un banco.
type CreateAccountRequest struct {
	Name           string          `json:"name" validate:"required,min=1,max=100"`
	BankName       string          `json:"bank_name" validate:"omitempty,max=100"`
	AccountNumber  string          `json:"account_number" validate:"omitempty,max=50"`
	InitialBalance decimal.Decimal `json:"initial_balance" validate:"gte=0"`
}

// UpdateAccountRequest entrada para actualizar datos de una cuenta (nunca el saldo).
type UpdateAccountRequest struct {
	Name          *string `json:"name" validate:"omitempty,min=1,max=100"`
	BankName      *string `json:"bank_name" validate:"omitempty,max=100"`
	AccountNumber *string `json:"account_number" validate:"omitempty,max=50"`
}

// AccountResponse salida de una cuenta de tesorería.
type AccountResponse struct {
	ID             string          `json:"id"`
	Kind           string          `json:"kind"`
	Name           string          `json:"name"`
	BankName       string          `json:"bank_name,omitempty"`
	AccountNumber  string          `json:"account_number,omitempty"`
	InitialBalance decimal.Decimal `json:"initial_balance"`
	Balance        decimal.Decimal `json:"balance"`
	IsActive       bool            `json:"is_active"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// CreateVoucherRequest body para crear un recibo de caja o un comprobante de egreso.
type CreateVoucherRequest struct {
	Number    string          `json:"number" validate:"omitempty,max=30"`
	PartyID   string          `json:"party_id" validate:"required,uuid"`
	AccountID string          `json:"account_id" validate:"required,uuid"`
	Amount    decimal.Decimal `json:"amount" validate:"gt=0"`
	Date      *time.Time      `json:"date"`
	InvoiceID string          `json:"invoice_id" validate:"omitempty,uuid"`
	Notes     string          `json:"notes" validate:"omitempty,max=500"`
}

// VoucherResponse salida de un comprobante.
type VoucherResponse struct {
	ID        string          `json:"id"`
	Kind      string          `json:"kind"`
	Number    string          `json:"number"`
	PartyID   string          `json:"party_id"`
	AccountID string          `json:"account_id"`
	Amount    decimal.Decimal `json:"amount"`
	Date      time.Time       `json:"date"`
	InvoiceID string          `json:"invoice_id,omitempty"`
	Notes     string          `json:"notes"`
	CreatedBy string          `json:"created_by"`
	CreatedAt time.Time       `json:"created_at"`
}

// VoucherFilter filtros de listados de comprobantes.
type VoucherFilter struct {
	PartyID   string
	AccountID string
	DateRange
	PageRequest
}

// VoucherListResponse listado paginado de comprobantes.
type VoucherListResponse struct {
	Items []VoucherResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// CreateTransferRequest body para trasladar fondos entre cuentas.
type CreateTransferRequest struct {
	FromAccountID string          `json:"from_account_id" validate:"required,uuid"`
	ToAccountID   string          `json:"to_account_id" validate:"required,uuid,nefield=FromAccountID"`
	Amount        decimal.Decimal `json:"amount" validate:"gt=0"`
	Date          *time.Time      `json:"date"`
	Notes         string          `json:"notes" validate:"omitempty,max=500"`
}

// TransferResponse salida de un traslado.
type TransferResponse struct {
	ID            string          `json:"id"`
	FromAccountID string          `json:"from_account_id"`
	ToAccountID   string          `json:"to_account_id"`
	Amount        decimal.Decimal `json:"amount"`
	Date          time.Time       `json:"date"`
	Notes         string          `json:"notes"`
	CreatedBy     string          `json:"created_by"`
	CreatedAt     time.Time       `json:"created_at"`
}

// TransferListResponse listado paginado de traslados.
type TransferListResponse struct {
	Items []TransferResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
