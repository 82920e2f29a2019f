package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateAdjustmentRequest body para POST /api/inventory/adjustments.
// Quantity con signo: positiva entra, negativa sale.
type CreateAdjustmentRequest struct {
	ProductID string          `json:"product_id" validate:"required,uuid"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price" validate:"gte=0"`
	Reason    string          `json:"reason" validate:"omitempty,max=300"`
	Date      *time.Time      `json:"date"`
}

// MovementFilter filtros de GET /api/inventory/movements.
type MovementFilter struct {
	ProductID string
	Type      string
	DateRange
	PageRequest
}

// MovementResponse salida de un movimiento del libro de inventario.
type MovementResponse struct {
	ID           string          `json:"id"`
	ProductID    string          `json:"product_id"`
	Type         string          `json:"type"`
	Quantity     decimal.Decimal `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Reference    string          `json:"reference"`
	DocumentType string          `json:"document_type"`
	DocumentID   string          `json:"document_id"`
	Date         time.Time       `json:"date"`
	CreatedBy    string          `json:"created_by"`
	CreatedAt    time.Time       `json:"created_at"`
}

// MovementListResponse listado paginado de movimientos.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
