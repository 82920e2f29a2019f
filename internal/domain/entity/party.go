package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de tercero.
const (
	PartyKindCustomer = "CUSTOMER"
	PartyKindSupplier = "SUPPLIER"
)

// Party representa un cliente o un proveedor de la empresa.
// El saldo no se almacena: se deriva de facturas, devoluciones y comprobantes.
type Party struct {
	ID             string
	CompanyID      string
	Kind           string
	Code           string // único por empresa y tipo
	Name           string
	TaxID          string
	Phone          string
	Email          string
	Address        string
	OpeningBalance decimal.Decimal
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ValidPartyKind indica si k es CUSTOMER o SUPPLIER.
func ValidPartyKind(k string) bool {
	return k == PartyKindCustomer || k == PartyKindSupplier
}
