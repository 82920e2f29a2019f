package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Contable-api/internal/domain/entity"
)

// MovementFilter filtros para consultar el libro de inventario.
type MovementFilter struct {
	CompanyID string
	ProductID string
	Type      string
	From      *time.Time
	To        *time.Time
	Limit     int
	Offset    int
}

// StockMovementRepository define el puerto de persistencia del libro de inventario.
// Las filas no se actualizan: solo se insertan o se eliminan al borrar su documento.
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	GetByID(ctx context.Context, id string) (*entity.StockMovement, error)
	ListByDocument(ctx context.Context, documentType, documentID string) ([]*entity.StockMovement, error)
	DeleteByDocument(ctx context.Context, documentType, documentID string) error
	List(ctx context.Context, f MovementFilter) ([]*entity.StockMovement, error)
}
