package repository

import (
	"context"

	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ReturnFilter filtros para listar devoluciones.
type ReturnFilter struct {
	CompanyID string
	Kind      string
	InvoiceID string
	PartyID   string
	Limit     int
	Offset    int
}

// ReturnRepository define el puerto de persistencia para devoluciones y sus líneas.
type ReturnRepository interface {
	Create(ctx context.Context, ret *entity.Return) error
	GetByID(ctx context.Context, id string) (*entity.Return, error)
	GetByNumber(ctx context.Context, companyID, kind, number string) (*entity.Return, error)
	List(ctx context.Context, f ReturnFilter) ([]*entity.Return, error)
	Delete(ctx context.Context, id string) error
	// ReturnedQuantities suma lo ya devuelto por línea de la factura (clave: InvoiceItemID).
	ReturnedQuantities(ctx context.Context, invoiceID string) (map[string]decimal.Decimal, error)
	CountByInvoice(ctx context.Context, invoiceID string) (int, error)
}
