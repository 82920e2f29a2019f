package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReturnItemRequest línea devuelta contra una línea de la factura original.
type ReturnItemRequest struct {
	InvoiceItemID string          `json:"invoice_item_id" validate:"required,uuid"`
	Quantity      decimal.Decimal `json:"quantity" validate:"gt=0"`
}

// CreateReturnRequest body para crear una devolución de venta o de compra.
type CreateReturnRequest struct {
	Number       string              `json:"number" validate:"omitempty,max=30"`
	InvoiceID    string              `json:"invoice_id" validate:"required,uuid"`
	Date         *time.Time          `json:"date"`
	RefundAmount decimal.Decimal     `json:"refund_amount" validate:"gte=0"`
	AccountID    string              `json:"account_id" validate:"omitempty,uuid"`
	Reason       string              `json:"reason" validate:"omitempty,max=500"`
	Items        []ReturnItemRequest `json:"items" validate:"required,min=1,dive"`
}

// ReturnItemResponse línea devuelta en la respuesta.
type ReturnItemResponse struct {
	ID            string          `json:"id"`
	InvoiceItemID string          `json:"invoice_item_id"`
	ProductID     string          `json:"product_id"`
	Quantity      decimal.Decimal `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	Subtotal      decimal.Decimal `json:"subtotal"`
}

// ReturnResponse salida de una devolución.
type ReturnResponse struct {
	ID           string               `json:"id"`
	CompanyID    string               `json:"company_id"`
	Kind         string               `json:"kind"`
	Number       string               `json:"number"`
	InvoiceID    string               `json:"invoice_id"`
	PartyID      string               `json:"party_id"`
	Date         time.Time            `json:"date"`
	Total        decimal.Decimal      `json:"total"`
	RefundAmount decimal.Decimal      `json:"refund_amount"`
	AccountID    string               `json:"account_id,omitempty"`
	Reason       string               `json:"reason"`
	Items        []ReturnItemResponse `json:"items,omitempty"`
	CreatedBy    string               `json:"created_by"`
	CreatedAt    time.Time            `json:"created_at"`
}

// ReturnFilter filtros de listados de devoluciones.
type ReturnFilter struct {
	InvoiceID string
	PageRequest
}

// ReturnListResponse listado paginado de devoluciones.
type ReturnListResponse struct {
	Items []ReturnResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}

// ReturnableItemResponse cantidad aún devolvible de una línea de factura.
type ReturnableItemResponse struct {
	InvoiceItemID string          `json:"invoice_item_id"`
	ProductID     string          `json:"product_id"`
	Quantity      decimal.Decimal `json:"quantity"`
	Returned      decimal.Decimal `json:"returned"`
	Remaining     decimal.Decimal `json:"remaining"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
}
