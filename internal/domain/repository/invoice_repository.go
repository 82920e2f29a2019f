package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Contable-api/internal/domain/entity"
)

// InvoiceFilter filtros para listar facturas.
type InvoiceFilter struct {
	CompanyID string
	Kind      string
	PartyID   string
	From      *time.Time
	To        *time.Time
	Limit     int
	Offset    int
}

// InvoiceRepository define el puerto de persistencia para facturas y sus líneas.
type InvoiceRepository interface {
	// Create persiste cabecera y líneas.
	Create(ctx context.Context, invoice *entity.Invoice) error
	// GetByID devuelve la factura con sus líneas.
	GetByID(ctx context.Context, id string) (*entity.Invoice, error)
	// GetForUpdate igual que GetByID bloqueando la cabecera (serializa devoluciones concurrentes).
	GetForUpdate(ctx context.Context, id string) (*entity.Invoice, error)
	GetByNumber(ctx context.Context, companyID, kind, number string) (*entity.Invoice, error)
	// List devuelve cabeceras sin líneas.
	List(ctx context.Context, f InvoiceFilter) ([]*entity.Invoice, error)
	// Delete elimina líneas y cabecera.
	Delete(ctx context.Context, id string) error
}
