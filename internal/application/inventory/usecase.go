package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Contable-api/internal/application/dto"
	"github.com/jhoicas/Contable-api/internal/domain"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
)

// InventoryUseCase ajustes manuales y consulta del libro de inventario.
// Las escrituras corren dentro de Store.Run (Commit/Rollback).
type InventoryUseCase struct {
	store repository.Store
}

// NewInventoryUseCase construye el caso de uso.
func NewInventoryUseCase(store repository.Store) *InventoryUseCase {
	return &InventoryUseCase{store: store}
}

// CreateAdjustment registra un ajuste manual con signo. Una salida mayor al stock se rechaza sin escribir nada.
func (uc *InventoryUseCase) CreateAdjustment(ctx context.Context, companyID, userID string, in dto.CreateAdjustmentRequest) (*dto.MovementResponse, error) {
	if in.ProductID == "" {
		return nil, fmt.Errorf("%w: el producto es obligatorio", domain.ErrInvalidInput)
	}
	if in.Quantity.IsZero() {
		return nil, fmt.Errorf("%w: la cantidad del ajuste no puede ser cero", domain.ErrInvalidInput)
	}
	if in.UnitPrice.IsNegative() {
		return nil, fmt.Errorf("%w: el costo unitario no puede ser negativo", domain.ErrInvalidInput)
	}
	date := time.Now()
	if in.Date != nil {
		date = *in.Date
	}
	reference := in.Reason
	if reference == "" {
		reference = "Ajuste manual"
	}

	var created *entity.StockMovement
	err := uc.store.Run(ctx, func(r repository.Repos) error {
		movs, err := ApplyStockInTx(ctx, r, StockDocument{
			CompanyID:    companyID,
			UserID:       userID,
			Type:         entity.DocumentAdjustment,
			ID:           uuid.New().String(),
			MovementType: entity.MovementTypeAdjustment,
			Reference:    reference,
			Date:         date,
		}, []StockLine{{ProductID: in.ProductID, Quantity: in.Quantity, UnitPrice: in.UnitPrice}})
		if err != nil {
			return err
		}
		created = movs[0]
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toMovementResponse(created), nil
}

// DeleteAdjustment elimina un ajuste revirtiendo su efecto sobre el stock. Solo aplica a movimientos ADJUSTMENT.
func (uc *InventoryUseCase) DeleteAdjustment(ctx context.Context, companyID, movementID string) error {
	return uc.store.Run(ctx, func(r repository.Repos) error {
		mov, err := r.Movements.GetByID(ctx, movementID)
		if err != nil {
			return err
		}
		if mov == nil {
			return fmt.Errorf("%w: movimiento %s", domain.ErrNotFound, movementID)
		}
		if mov.CompanyID != companyID {
			return domain.ErrForbidden
		}
		if mov.Type != entity.MovementTypeAdjustment {
			return fmt.Errorf("%w: solo se pueden eliminar ajustes; elimine el documento de origen", domain.ErrConflict)
		}
		return RevertDocumentStockInTx(ctx, r, mov.DocumentType, mov.DocumentID)
	})
}

// GetMovement obtiene un movimiento del libro.
func (uc *InventoryUseCase) GetMovement(ctx context.Context, companyID, id string) (*dto.MovementResponse, error) {
	mov, err := uc.store.Repos().Movements.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if mov == nil {
		return nil, domain.ErrNotFound
	}
	if mov.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return toMovementResponse(mov), nil
}

// ListMovements lista el libro de inventario con filtros (más recientes primero).
func (uc *InventoryUseCase) ListMovements(ctx context.Context, companyID string, f dto.MovementFilter) (*dto.MovementListResponse, error) {
	if f.Type != "" && !entity.ValidMovementType(f.Type) {
		return nil, fmt.Errorf("%w: tipo de movimiento %q", domain.ErrInvalidInput, f.Type)
	}
	f.DefaultPage()
	list, err := uc.store.Repos().Movements.List(ctx, repository.MovementFilter{
		CompanyID: companyID,
		ProductID: f.ProductID,
		Type:      f.Type,
		From:      f.From,
		To:        f.To,
		Limit:     f.Limit,
		Offset:    f.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *toMovementResponse(m))
	}
	return &dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: f.Limit, Offset: f.Offset},
	}, nil
}

func toMovementResponse(m *entity.StockMovement) *dto.MovementResponse {
	return &dto.MovementResponse{
		ID:           m.ID,
		ProductID:    m.ProductID,
		Type:         m.Type,
		Quantity:     m.Quantity,
		UnitPrice:    m.UnitPrice,
		Reference:    m.Reference,
		DocumentType: m.DocumentType,
		DocumentID:   m.DocumentID,
		Date:         m.Date,
		CreatedBy:    m.CreatedBy,
		CreatedAt:    m.CreatedAt,
	}
}
