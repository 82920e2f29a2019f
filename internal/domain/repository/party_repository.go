package repository

import (
	"context"

	"github.com/jhoicas/Contable-api/internal/domain/entity"
)

// PartyFilter filtros para listar clientes o proveedores.
type PartyFilter struct {
	CompanyID string
	Kind      string
	Search    string // coincide con código o nombre (sin distinguir mayúsculas)
	Limit     int
	Offset    int
}

// PartyRepository define el puerto de persistencia para clientes y proveedores.
type PartyRepository interface {
	Create(ctx context.Context, party *entity.Party) error
	Update(ctx context.Context, party *entity.Party) error
	GetByID(ctx context.Context, id string) (*entity.Party, error)
	GetByCode(ctx context.Context, companyID, kind, code string) (*entity.Party, error)
	List(ctx context.Context, f PartyFilter) ([]*entity.Party, error)
	Delete(ctx context.Context, id string) error
	// HasDocuments indica si alguna factura, devolución o comprobante referencia al tercero.
	HasDocuments(ctx context.Context, id string) (bool, error)
}
