package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePartyRequest entrada para crear un cliente o un proveedor.
type CreatePartyRequest struct {
	Code           string          `json:"code" validate:"required,min=1,max=50"`
	Name           string          `json:"name" validate:"required,min=1,max=200"`
	TaxID          string          `json:"tax_id" validate:"omitempty,max=30"`
	Phone          string          `json:"phone" validate:"omitempty,max=50"`
	Email          string          `json:"email" validate:"omitempty,email"`
	Address        string          `json:"address" validate:"omitempty,max=300"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
}

// UpdatePartyRequest entrada para actualizar un tercero (campos opcionales).
type UpdatePartyRequest struct {
	Code     *string `json:"code" validate:"omitempty,min=1,max=50"`
	Name     *string `json:"name" validate:"omitempty,min=1,max=200"`
	TaxID    *string `json:"tax_id" validate:"omitempty,max=30"`
	Phone    *string `json:"phone" validate:"omitempty,max=50"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Address  *string `json:"address" validate:"omitempty,max=300"`
	IsActive *bool   `json:"is_active"`
}

// PartyResponse salida de un tercero con su saldo derivado.
type PartyResponse struct {
	ID             string          `json:"id"`
	CompanyID      string          `json:"company_id"`
	Kind           string          `json:"kind"`
	Code           string          `json:"code"`
	Name           string          `json:"name"`
	TaxID          string          `json:"tax_id"`
	Phone          string          `json:"phone"`
	Email          string          `json:"email"`
	Address        string          `json:"address"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	Balance        decimal.Decimal `json:"balance"`
	IsActive       bool            `json:"is_active"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// PartyListResponse listado paginado de terceros.
type PartyListResponse struct {
	Items []PartyResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
