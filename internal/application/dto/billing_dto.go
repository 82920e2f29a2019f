package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceItemRequest línea de factura en el request.
// UnitPrice 0 toma el precio de venta (ventas) o de compra (compras) del producto.
type InvoiceItemRequest struct {
	ProductID string          `json:"product_id" validate:"required,uuid"`
	Quantity  decimal.Decimal `json:"quantity" validate:"gt=0"`
	UnitPrice decimal.Decimal `json:"unit_price" validate:"gte=0"`
}

// CreateInvoiceRequest body para crear una factura de venta o de compra.
// Number vacío asigna el consecutivo de la empresa.
type CreateInvoiceRequest struct {
	Number     string               `json:"number" validate:"omitempty,max=30"`
	PartyID    string               `json:"party_id" validate:"required,uuid"`
	Date       *time.Time           `json:"date"`
	Discount   decimal.Decimal      `json:"discount" validate:"gte=0"`
	PaidAmount decimal.Decimal      `json:"paid_amount" validate:"gte=0"`
	AccountID  string               `json:"account_id" validate:"omitempty,uuid"`
	Notes      string               `json:"notes" validate:"omitempty,max=500"`
	Items      []InvoiceItemRequest `json:"items" validate:"required,min=1,dive"`
}

// InvoiceItemResponse línea de factura en la respuesta.
type InvoiceItemResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// InvoiceResponse salida de una factura.
type InvoiceResponse struct {
	ID         string                `json:"id"`
	CompanyID  string                `json:"company_id"`
	Kind       string                `json:"kind"`
	Number     string                `json:"number"`
	PartyID    string                `json:"party_id"`
	Date       time.Time             `json:"date"`
	Subtotal   decimal.Decimal       `json:"subtotal"`
	Discount   decimal.Decimal       `json:"discount"`
	Total      decimal.Decimal       `json:"total"`
	PaidAmount decimal.Decimal       `json:"paid_amount"`
	AccountID  string                `json:"account_id,omitempty"`
	VoucherID  string                `json:"voucher_id,omitempty"`
	Notes      string                `json:"notes"`
	Items      []InvoiceItemResponse `json:"items,omitempty"`
	CreatedBy  string                `json:"created_by"`
	CreatedAt  time.Time             `json:"created_at"`
}

// InvoiceFilter filtros de listados de facturas.
type InvoiceFilter struct {
	PartyID string
	DateRange
	PageRequest
}

// InvoiceListResponse listado paginado de facturas (sin líneas).
type InvoiceListResponse struct {
	Items []InvoiceResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
