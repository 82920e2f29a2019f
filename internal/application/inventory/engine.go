package inventory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Contable-api/internal/domain"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/domain/inventory"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// StockDocument documento que origina movimientos de inventario (factura, devolución o ajuste).
type StockDocument struct {
	CompanyID    string
	UserID       string
	Type         string // entity.Document*
	ID           string
	MovementType string // entity.MovementType*
	Reference    string
	Date         time.Time
}

// StockLine línea a aplicar. Quantity en valor absoluto salvo en ADJUSTMENT, que trae su signo.
type StockLine struct {
	ProductID string
	LineID    string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
}

// ApplyStockInTx aplica las líneas del documento usando los repositorios de la transacción del caller.
// Por cada línea: bloquea el producto (SELECT FOR UPDATE), valida que pertenezca a la empresa y esté activo,
// rechaza stock negativo con ErrInsufficientStock, persiste el nuevo stock e inserta el movimiento.
// Las líneas se procesan ordenadas por producto para adquirir los bloqueos siempre en el mismo orden.
// Si retorna error el caller debe hacer rollback.
func ApplyStockInTx(ctx context.Context, r repository.Repos, doc StockDocument, lines []StockLine) ([]*entity.StockMovement, error) {
	ordered := make([]StockLine, len(lines))
	copy(ordered, lines)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].ProductID < ordered[j].ProductID })

	now := time.Now()
	if doc.Date.IsZero() {
		doc.Date = now
	}
	movements := make([]*entity.StockMovement, 0, len(ordered))
	for _, line := range ordered {
		product, err := r.Products.GetForUpdate(ctx, line.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, line.ProductID)
		}
		if product.CompanyID != doc.CompanyID {
			return nil, domain.ErrForbidden
		}
		if !product.IsActive {
			return nil, fmt.Errorf("%w: el producto %s está inactivo", domain.ErrInactive, product.Code)
		}

		delta := inventory.SignedQuantity(doc.MovementType, line.Quantity)
		next, ok := inventory.ApplyDelta(product.CurrentStock, delta)
		if !ok {
			return nil, fmt.Errorf("%w: producto %s, disponible %s, requerido %s",
				domain.ErrInsufficientStock, product.Code, product.CurrentStock.String(), delta.Abs().String())
		}

		// Las compras recalculan el costo promedio ponderado antes de sumar el stock.
		if doc.MovementType == entity.MovementTypePurchase {
			cost := inventory.CostCalculator(product.CurrentStock, product.BuyPrice, delta, line.UnitPrice)
			if err := r.Products.UpdateBuyPrice(ctx, product.ID, cost); err != nil {
				return nil, err
			}
		}
		if err := r.Products.UpdateStock(ctx, product.ID, next); err != nil {
			return nil, err
		}

		mov := &entity.StockMovement{
			ID:             uuid.New().String(),
			CompanyID:      doc.CompanyID,
			ProductID:      product.ID,
			Type:           doc.MovementType,
			Quantity:       delta,
			UnitPrice:      line.UnitPrice,
			Reference:      doc.Reference,
			DocumentType:   doc.Type,
			DocumentID:     doc.ID,
			DocumentLineID: line.LineID,
			Date:           doc.Date,
			CreatedBy:      doc.UserID,
			CreatedAt:      now,
		}
		if err := r.Movements.Create(ctx, mov); err != nil {
			return nil, err
		}
		movements = append(movements, mov)
	}
	return movements, nil
}

// RevertDocumentStockInTx deshace todos los movimientos de un documento: aplica el delta opuesto
// (con la misma validación de stock no negativo) y elimina las filas del libro.
func RevertDocumentStockInTx(ctx context.Context, r repository.Repos, documentType, documentID string) error {
	movements, err := r.Movements.ListByDocument(ctx, documentType, documentID)
	if err != nil {
		return err
	}
	sort.SliceStable(movements, func(i, j int) bool { return movements[i].ProductID < movements[j].ProductID })

	for _, mov := range movements {
		product, err := r.Products.GetForUpdate(ctx, mov.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return fmt.Errorf("%w: producto %s", domain.ErrNotFound, mov.ProductID)
		}
		next, ok := inventory.ApplyDelta(product.CurrentStock, mov.Quantity.Neg())
		if !ok {
			return fmt.Errorf("%w: no se puede revertir, producto %s tiene %s y se requieren %s",
				domain.ErrInsufficientStock, product.Code, product.CurrentStock.String(), mov.Quantity.String())
		}
		if err := r.Products.UpdateStock(ctx, product.ID, next); err != nil {
			return err
		}
	}
	return r.Movements.DeleteByDocument(ctx, documentType, documentID)
}
