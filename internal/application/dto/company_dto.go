package dto

import "time"

// CreateCompanyRequest entrada para crear una empresa.
type CreateCompanyRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=200"`
	TaxID    string `json:"tax_id" validate:"required,min=3,max=30"`
	Address  string `json:"address" validate:"omitempty,max=300"`
	Phone    string `json:"phone" validate:"omitempty,max=50"`
	Email    string `json:"email" validate:"omitempty,email"`
	Currency string `json:"currency" validate:"omitempty,len=3"`
}

// CompanyResponse salida de una empresa.
type CompanyResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	TaxID     string    `json:"tax_id"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	Currency  string    `json:"currency"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CompanyListResponse listado paginado de empresas.
type CompanyListResponse struct {
	Items []CompanyResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
