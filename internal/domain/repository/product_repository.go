package repository

import (
	"context"

	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ProductFilter filtros para listar productos.
type ProductFilter struct {
	CompanyID       string
	Search          string
	IncludeInactive bool
	LowStockOnly    bool
	Limit           int // 0 = sin límite
	Offset          int
}

// ProductRepository define el puerto de persistencia para Product (DIP).
// CurrentStock solo se modifica con UpdateStock, llamado por el motor de inventario.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	// Update actualiza datos maestros. No toca CurrentStock.
	Update(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetForUpdate obtiene el producto y bloquea la fila (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	GetByCode(ctx context.Context, companyID, code string) (*entity.Product, error)
	// List ordena por código.
	List(ctx context.Context, f ProductFilter) ([]*entity.Product, error)
	UpdateStock(ctx context.Context, id string, stock decimal.Decimal) error
	UpdateBuyPrice(ctx context.Context, id string, price decimal.Decimal) error
	SetActive(ctx context.Context, id string, active bool) error
}
