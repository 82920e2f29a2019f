package entity

import "time"

// Company representa una organización/tenant del sistema.
type Company struct {
	ID        string
	Name      string
	TaxID     string // NIT / RUC / identificación tributaria
	Address   string
	Phone     string
	Email     string
	Currency  string // código ISO 4217 para reportes
	Status    string // active, suspended, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}
