package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto. El stock inicia en 0.
type CreateProductRequest struct {
	Code      string          `json:"code" validate:"required,min=1,max=50"`
	Name      string          `json:"name" validate:"required,min=1,max=200"`
	Unit      string          `json:"unit" validate:"omitempty,max=20"`
	BuyPrice  decimal.Decimal `json:"buy_price" validate:"gte=0"`
	SellPrice decimal.Decimal `json:"sell_price" validate:"gte=0"`
	MinStock  decimal.Decimal `json:"min_stock" validate:"gte=0"`
}

// UpdateProductRequest entrada para actualizar un producto (sin stock).
type UpdateProductRequest struct {
	Name      *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Unit      *string          `json:"unit" validate:"omitempty,max=20"`
	BuyPrice  *decimal.Decimal `json:"buy_price" validate:"omitempty,gte=0"`
	SellPrice *decimal.Decimal `json:"sell_price" validate:"omitempty,gte=0"`
	MinStock  *decimal.Decimal `json:"min_stock" validate:"omitempty,gte=0"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID           string          `json:"id"`
	CompanyID    string          `json:"company_id"`
	Code         string          `json:"code"`
	Name         string          `json:"name"`
	Unit         string          `json:"unit"`
	BuyPrice     decimal.Decimal `json:"buy_price"`
	SellPrice    decimal.Decimal `json:"sell_price"`
	MinStock     decimal.Decimal `json:"min_stock"`
	CurrentStock decimal.Decimal `json:"current_stock"`
	IsLowStock   bool            `json:"is_low_stock"`
	IsActive     bool            `json:"is_active"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ProductListResponse listado paginado de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
