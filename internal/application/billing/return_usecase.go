package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Contable-api/internal/application/dto"
	"github.com/jhoicas/Contable-api/internal/application/inventory"
	"github.com/jhoicas/Contable-api/internal/application/treasury"
	"github.com/jhoicas/Contable-api/internal/domain"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
	stockrules "github.com/jhoicas/Contable-api/internal/domain/inventory"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// ReturnUseCase devoluciones de venta y de compra contra una factura existente.
type ReturnUseCase struct {
	store repository.Store
}

// NewReturnUseCase construye el caso de uso.
func NewReturnUseCase(store repository.Store) *ReturnUseCase {
	return &ReturnUseCase{store: store}
}

// CreateSales registra la devolución de un cliente: entra stock y, si hay reembolso, sale dinero de la cuenta.
func (uc *ReturnUseCase) CreateSales(ctx context.Context, companyID, userID string, in dto.CreateReturnRequest) (*dto.ReturnResponse, error) {
	return uc.create(ctx, companyID, userID, entity.InvoiceKindSales, in)
}

// CreatePurchase registra la devolución a un proveedor: sale stock y, si hay reembolso, entra dinero a la cuenta.
func (uc *ReturnUseCase) CreatePurchase(ctx context.Context, companyID, userID string, in dto.CreateReturnRequest) (*dto.ReturnResponse, error) {
	return uc.create(ctx, companyID, userID, entity.InvoiceKindPurchase, in)
}

func (uc *ReturnUseCase) create(ctx context.Context, companyID, userID, kind string, in dto.CreateReturnRequest) (*dto.ReturnResponse, error) {
	if in.InvoiceID == "" {
		return nil, fmt.Errorf("%w: la factura es obligatoria", domain.ErrInvalidInput)
	}
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: la devolución debe tener al menos una línea", domain.ErrInvalidInput)
	}
	for i, item := range in.Items {
		if item.InvoiceItemID == "" || !item.Quantity.IsPositive() {
			return nil, fmt.Errorf("%w: línea %d: línea de factura y cantidad mayor que cero son obligatorias", domain.ErrInvalidInput, i+1)
		}
	}
	if in.RefundAmount.IsNegative() {
		return nil, fmt.Errorf("%w: el reembolso no puede ser negativo", domain.ErrInvalidInput)
	}
	if in.RefundAmount.IsPositive() && in.AccountID == "" {
		return nil, fmt.Errorf("%w: el reembolso requiere una cuenta de tesorería", domain.ErrInvalidInput)
	}

	now := time.Now()
	date := now
	if in.Date != nil {
		date = *in.Date
	}
	ret := &entity.Return{
		ID:           uuid.New().String(),
		CompanyID:    companyID,
		Kind:         kind,
		Number:       in.Number,
		InvoiceID:    in.InvoiceID,
		Date:         date,
		RefundAmount: in.RefundAmount,
		AccountID:    in.AccountID,
		Reason:       in.Reason,
		CreatedBy:    userID,
		CreatedAt:    now,
	}

	err := uc.store.Run(ctx, func(r repository.Repos) error {
		// Bloquear la factura serializa devoluciones concurrentes sobre las mismas líneas.
		inv, err := r.Invoices.GetForUpdate(ctx, in.InvoiceID)
		if err != nil {
			return err
		}
		if inv == nil || inv.Kind != kind {
			return fmt.Errorf("%w: factura %s", domain.ErrNotFound, in.InvoiceID)
		}
		if inv.CompanyID != companyID {
			return domain.ErrForbidden
		}
		ret.PartyID = inv.PartyID

		returned, err := r.Returns.ReturnedQuantities(ctx, inv.ID)
		if err != nil {
			return err
		}
		itemsByID := make(map[string]*entity.InvoiceItem, len(inv.Items))
		for _, item := range inv.Items {
			itemsByID[item.ID] = item
		}
		requested := make(map[string]decimal.Decimal)
		total := decimal.Zero
		for i, req := range in.Items {
			item, ok := itemsByID[req.InvoiceItemID]
			if !ok {
				return fmt.Errorf("%w: línea %d no pertenece a la factura %s", domain.ErrInvalidInput, i+1, inv.Number)
			}
			requested[item.ID] = requested[item.ID].Add(req.Quantity)
			remaining := stockrules.RemainingReturnable(item.Quantity, returned[item.ID])
			if requested[item.ID].GreaterThan(remaining) {
				return fmt.Errorf("%w: línea %d, disponible para devolver %s, solicitado %s",
					domain.ErrReturnExceeded, i+1, remaining.String(), requested[item.ID].String())
			}
			line := &entity.ReturnItem{
				ID:            uuid.New().String(),
				ReturnID:      ret.ID,
				InvoiceItemID: item.ID,
				ProductID:     item.ProductID,
				Quantity:      req.Quantity,
				UnitPrice:     item.UnitPrice,
				Subtotal:      req.Quantity.Mul(item.UnitPrice).Round(2),
			}
			total = total.Add(line.Subtotal)
			ret.Items = append(ret.Items, line)
		}
		ret.Total = total
		if ret.RefundAmount.GreaterThan(total) {
			return fmt.Errorf("%w: el reembolso %s supera el total devuelto %s", domain.ErrInvalidInput, ret.RefundAmount.String(), total.String())
		}

		if err := assignReturnNumber(ctx, r, ret); err != nil {
			return err
		}
		if err := r.Returns.Create(ctx, ret); err != nil {
			return err
		}

		lines := make([]inventory.StockLine, 0, len(ret.Items))
		for _, item := range ret.Items {
			lines = append(lines, inventory.StockLine{
				ProductID: item.ProductID,
				LineID:    item.ID,
				Quantity:  item.Quantity,
				UnitPrice: item.UnitPrice,
			})
		}
		if _, err := inventory.ApplyStockInTx(ctx, r, inventory.StockDocument{
			CompanyID:    companyID,
			UserID:       userID,
			Type:         ret.DocumentType(),
			ID:           ret.ID,
			MovementType: stockrules.ReturnMovementType(kind),
			Reference:    ret.Number,
			Date:         ret.Date,
		}, lines); err != nil {
			return err
		}

		if ret.RefundAmount.IsPositive() {
			amount := ret.RefundAmount.Neg() // reembolso al cliente: sale dinero
			if kind == entity.InvoiceKindPurchase {
				amount = ret.RefundAmount
			}
			if _, err := treasury.ApplyTreasuryInTx(ctx, r, treasury.Entry{
				CompanyID:   companyID,
				UserID:      userID,
				AccountID:   ret.AccountID,
				Amount:      amount,
				SourceType:  refundSource(kind),
				SourceID:    ret.ID,
				Description: "Reembolso devolución " + ret.Number,
				Date:        ret.Date,
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toReturnResponse(ret), nil
}

// DeleteSales elimina una devolución de venta restaurando stock y saldo de la cuenta.
func (uc *ReturnUseCase) DeleteSales(ctx context.Context, companyID, id string) error {
	return uc.delete(ctx, companyID, entity.InvoiceKindSales, id)
}

// DeletePurchase elimina una devolución de compra restaurando stock y saldo de la cuenta.
func (uc *ReturnUseCase) DeletePurchase(ctx context.Context, companyID, id string) error {
	return uc.delete(ctx, companyID, entity.InvoiceKindPurchase, id)
}

func (uc *ReturnUseCase) delete(ctx context.Context, companyID, kind, id string) error {
	return uc.store.Run(ctx, func(r repository.Repos) error {
		ret, err := r.Returns.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if ret == nil || ret.Kind != kind {
			return fmt.Errorf("%w: devolución %s", domain.ErrNotFound, id)
		}
		if ret.CompanyID != companyID {
			return domain.ErrForbidden
		}
		if err := inventory.RevertDocumentStockInTx(ctx, r, ret.DocumentType(), ret.ID); err != nil {
			return err
		}
		if err := treasury.RevertSourceInTx(ctx, r, ret.ID, refundSource(kind)); err != nil {
			return err
		}
		return r.Returns.Delete(ctx, ret.ID)
	})
}

// ReturnableQuantities informa, por línea de la factura, cuánto se ha devuelto y cuánto queda.
func (uc *ReturnUseCase) ReturnableQuantities(ctx context.Context, companyID, invoiceID string) ([]dto.ReturnableItemResponse, error) {
	repos := uc.store.Repos()
	inv, err := repos.Invoices.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	if inv.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	returned, err := repos.Returns.ReturnedQuantities(ctx, inv.ID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ReturnableItemResponse, 0, len(inv.Items))
	for _, item := range inv.Items {
		out = append(out, dto.ReturnableItemResponse{
			InvoiceItemID: item.ID,
			ProductID:     item.ProductID,
			Quantity:      item.Quantity,
			Returned:      returned[item.ID],
			Remaining:     stockrules.RemainingReturnable(item.Quantity, returned[item.ID]),
			UnitPrice:     item.UnitPrice,
		})
	}
	return out, nil
}

// Get obtiene una devolución con sus líneas.
func (uc *ReturnUseCase) Get(ctx context.Context, companyID, kind, id string) (*dto.ReturnResponse, error) {
	ret, err := uc.store.Repos().Returns.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ret == nil || ret.Kind != kind {
		return nil, domain.ErrNotFound
	}
	if ret.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return toReturnResponse(ret), nil
}

// List lista devoluciones del tipo indicado.
func (uc *ReturnUseCase) List(ctx context.Context, companyID, kind string, f dto.ReturnFilter) (*dto.ReturnListResponse, error) {
	f.DefaultPage()
	list, err := uc.store.Repos().Returns.List(ctx, repository.ReturnFilter{
		CompanyID: companyID,
		Kind:      kind,
		InvoiceID: f.InvoiceID,
		Limit:     f.Limit,
		Offset:    f.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.ReturnResponse, 0, len(list))
	for _, ret := range list {
		items = append(items, *toReturnResponse(ret))
	}
	return &dto.ReturnListResponse{Items: items, Page: dto.PageResponse{Limit: f.Limit, Offset: f.Offset}}, nil
}

func assignReturnNumber(ctx context.Context, r repository.Repos, ret *entity.Return) error {
	if ret.Number != "" {
		existing, err := r.Returns.GetByNumber(ctx, ret.CompanyID, ret.Kind, ret.Number)
		if err != nil {
			return err
		}
		if existing != nil {
			return fmt.Errorf("%w: la devolución %s ya existe", domain.ErrDuplicate, ret.Number)
		}
		return nil
	}
	prefix := entity.ReturnPrefix(ret.Kind)
	for {
		n, err := r.Sequences.Next(ctx, ret.CompanyID, prefix)
		if err != nil {
			return err
		}
		number := entity.FormatNumber(prefix, n)
		existing, err := r.Returns.GetByNumber(ctx, ret.CompanyID, ret.Kind, number)
		if err != nil {
			return err
		}
		if existing == nil {
			ret.Number = number
			return nil
		}
	}
}

func refundSource(kind string) string {
	if kind == entity.InvoiceKindPurchase {
		return entity.TreasurySourcePurchaseReturn
	}
	return entity.TreasurySourceSalesReturn
}

func toReturnResponse(ret *entity.Return) *dto.ReturnResponse {
	resp := &dto.ReturnResponse{
		ID:           ret.ID,
		CompanyID:    ret.CompanyID,
		Kind:         ret.Kind,
		Number:       ret.Number,
		InvoiceID:    ret.InvoiceID,
		PartyID:      ret.PartyID,
		Date:         ret.Date,
		Total:        ret.Total,
		RefundAmount: ret.RefundAmount,
		AccountID:    ret.AccountID,
		Reason:       ret.Reason,
		CreatedBy:    ret.CreatedBy,
		CreatedAt:    ret.CreatedAt,
	}
	for _, item := range ret.Items {
		resp.Items = append(resp.Items, dto.ReturnItemResponse{
			ID:            item.ID,
			InvoiceItemID: item.InvoiceItemID,
			ProductID:     item.ProductID,
			Quantity:      item.Quantity,
			UnitPrice:     item.UnitPrice,
			Subtotal:      item.Subtotal,
		})
	}
	return resp
}
