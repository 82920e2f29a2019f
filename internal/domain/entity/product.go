package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del inventario.
// CurrentStock es un total corrido desnormalizado: solo cambia al aplicar un StockMovement.
// BuyPrice es el costo promedio ponderado actualizado por las compras.
type Product struct {
	ID           string
	CompanyID    string
	Code         string // código único por empresa
	Name         string
	Unit         string
	BuyPrice     decimal.Decimal
	SellPrice    decimal.Decimal
	MinStock     decimal.Decimal
	CurrentStock decimal.Decimal
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsLowStock indica si el stock actual está por debajo (o igual) al mínimo configurado.
func (p *Product) IsLowStock() bool {
	return p.MinStock.GreaterThan(decimal.Zero) && p.CurrentStock.LessThanOrEqual(p.MinStock)
}
