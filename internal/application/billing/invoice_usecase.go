// Package billing contiene las facturas de venta y de compra y sus devoluciones.
// Cada documento mueve inventario y, si hay pago o reembolso, tesorería, todo en una sola transacción.
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

// InvoiceUseCase crea, consulta y elimina facturas.
type InvoiceUseCase struct {
	store repository.Store
}

// NewInvoiceUseCase construye el caso de uso.
func NewInvoiceUseCase(store repository.Store) *InvoiceUseCase {
	return &InvoiceUseCase{store: store}
}

// CreateSales crea una factura de venta: descuenta stock y, si PaidAmount > 0, registra el recibo de caja.
func (uc *InvoiceUseCase) CreateSales(ctx context.Context, companyID, userID string, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	return uc.create(ctx, companyID, userID, entity.InvoiceKindSales, in)
}

// CreatePurchase crea una factura de compra: suma stock, recalcula costo promedio y,
// si PaidAmount > 0, registra el comprobante de egreso.
func (uc *InvoiceUseCase) CreatePurchase(ctx context.Context, companyID, userID string, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	return uc.create(ctx, companyID, userID, entity.InvoiceKindPurchase, in)
}

func (uc *InvoiceUseCase) create(ctx context.Context, companyID, userID, kind string, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if in.PartyID == "" {
		return nil, fmt.Errorf("%w: el tercero es obligatorio", domain.ErrInvalidInput)
	}
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: la factura debe tener al menos una línea", domain.ErrInvalidInput)
	}
	for i, item := range in.Items {
		if item.ProductID == "" || !item.Quantity.IsPositive() {
			return nil, fmt.Errorf("%w: línea %d: producto y cantidad mayor que cero son obligatorios", domain.ErrInvalidInput, i+1)
		}
		if item.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("%w: línea %d: el precio no puede ser negativo", domain.ErrInvalidInput, i+1)
		}
	}
	if in.Discount.IsNegative() || in.PaidAmount.IsNegative() {
		return nil, fmt.Errorf("%w: descuento y pago no pueden ser negativos", domain.ErrInvalidInput)
	}
	if in.PaidAmount.IsPositive() && in.AccountID == "" {
		return nil, fmt.Errorf("%w: el pago requiere una cuenta de tesorería", domain.ErrInvalidInput)
	}

	now := time.Now()
	date := now
	if in.Date != nil {
		date = *in.Date
	}
	inv := &entity.Invoice{
		ID:         uuid.New().String(),
		CompanyID:  companyID,
		Kind:       kind,
		Number:     in.Number,
		PartyID:    in.PartyID,
		Date:       date,
		Discount:   in.Discount,
		PaidAmount: in.PaidAmount,
		AccountID:  in.AccountID,
		Notes:      in.Notes,
		CreatedBy:  userID,
		CreatedAt:  now,
	}
	var voucher *entity.Voucher

	err := uc.store.Run(ctx, func(r repository.Repos) error {
		if _, err := loadParty(ctx, r, companyID, in.PartyID, entity.InvoicePartyKind(kind)); err != nil {
			return err
		}

		// Validar productos y fijar precios
		subtotal := decimal.Zero
		for _, item := range in.Items {
			product, err := r.Products.GetByID(ctx, item.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return fmt.Errorf("%w: producto %s", domain.ErrNotFound, item.ProductID)
			}
			if product.CompanyID != companyID {
				return domain.ErrForbidden
			}
			if !product.IsActive {
				return fmt.Errorf("%w: el producto %s está inactivo", domain.ErrInactive, product.Code)
			}
			price := item.UnitPrice
			if price.IsZero() {
				price = product.SellPrice
				if kind == entity.InvoiceKindPurchase {
					price = product.BuyPrice
				}
			}
			line := &entity.InvoiceItem{
				ID:        uuid.New().String(),
				InvoiceID: inv.ID,
				ProductID: product.ID,
				Quantity:  item.Quantity,
				UnitPrice: price,
				Subtotal:  item.Quantity.Mul(price).Round(2),
			}
			subtotal = subtotal.Add(line.Subtotal)
			inv.Items = append(inv.Items, line)
		}
		if inv.Discount.GreaterThan(subtotal) {
			return fmt.Errorf("%w: el descuento %s supera el subtotal %s", domain.ErrInvalidInput, inv.Discount.String(), subtotal.String())
		}
		inv.Subtotal = subtotal
		inv.Total = subtotal.Sub(inv.Discount)
		if inv.PaidAmount.GreaterThan(inv.Total) {
			return fmt.Errorf("%w: el pago %s supera el total %s", domain.ErrInvalidInput, inv.PaidAmount.String(), inv.Total.String())
		}

		if err := assignInvoiceNumber(ctx, r, inv); err != nil {
			return err
		}
		if err := r.Invoices.Create(ctx, inv); err != nil {
			return err
		}

		// Movimientos de inventario por línea (si falta stock se hace rollback de todo)
		lines := make([]inventory.StockLine, 0, len(inv.Items))
		for _, item := range inv.Items {
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
			Type:         inv.DocumentType(),
			ID:           inv.ID,
			MovementType: stockrules.InvoiceMovementType(kind),
			Reference:    inv.Number,
			Date:         inv.Date,
		}, lines); err != nil {
			return err
		}

		// Pago inmediato: recibo (venta) o egreso (compra) ligado a la factura
		if inv.PaidAmount.IsPositive() {
			voucherKind := entity.VoucherKindReceipt
			if kind == entity.InvoiceKindPurchase {
				voucherKind = entity.VoucherKindPayment
			}
			voucher = &entity.Voucher{
				ID:        uuid.New().String(),
				CompanyID: companyID,
				Kind:      voucherKind,
				PartyID:   inv.PartyID,
				AccountID: inv.AccountID,
				Amount:    inv.PaidAmount,
				Date:      inv.Date,
				InvoiceID: inv.ID,
				Notes:     "Pago factura " + inv.Number,
				CreatedBy: userID,
				CreatedAt: now,
			}
			if err := treasury.RecordVoucherInTx(ctx, r, voucher); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	resp := toInvoiceResponse(inv)
	if voucher != nil {
		resp.VoucherID = voucher.ID
	}
	return resp, nil
}

// DeleteSales elimina una factura de venta: devuelve el stock y revierte sus recibos.
func (uc *InvoiceUseCase) DeleteSales(ctx context.Context, companyID, id string) error {
	return uc.delete(ctx, companyID, entity.InvoiceKindSales, id)
}

// DeletePurchase elimina una factura de compra: retira el stock (debe estar disponible) y revierte sus egresos.
// El costo promedio del producto no se recalcula.
func (uc *InvoiceUseCase) DeletePurchase(ctx context.Context, companyID, id string) error {
	return uc.delete(ctx, companyID, entity.InvoiceKindPurchase, id)
}

func (uc *InvoiceUseCase) delete(ctx context.Context, companyID, kind, id string) error {
	return uc.store.Run(ctx, func(r repository.Repos) error {
		inv, err := r.Invoices.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if inv == nil || inv.Kind != kind {
			return fmt.Errorf("%w: factura %s", domain.ErrNotFound, id)
		}
		if inv.CompanyID != companyID {
			return domain.ErrForbidden
		}
		n, err := r.Returns.CountByInvoice(ctx, inv.ID)
		if err != nil {
			return err
		}
		if n > 0 {
			return fmt.Errorf("%w: la factura %s tiene %d devolución(es); elimínelas primero", domain.ErrConflict, inv.Number, n)
		}
		if err := inventory.RevertDocumentStockInTx(ctx, r, inv.DocumentType(), inv.ID); err != nil {
			return err
		}
		vouchers, err := r.Vouchers.ListByInvoice(ctx, inv.ID)
		if err != nil {
			return err
		}
		for _, v := range vouchers {
			if err := treasury.DeleteVoucherInTx(ctx, r, v); err != nil {
				return err
			}
		}
		return r.Invoices.Delete(ctx, inv.ID)
	})
}

// Get obtiene una factura con sus líneas.
func (uc *InvoiceUseCase) Get(ctx context.Context, companyID, kind, id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.store.Repos().Invoices.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv == nil || inv.Kind != kind {
		return nil, domain.ErrNotFound
	}
	if inv.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return toInvoiceResponse(inv), nil
}

// List lista cabeceras de facturas del tipo indicado.
func (uc *InvoiceUseCase) List(ctx context.Context, companyID, kind string, f dto.InvoiceFilter) (*dto.InvoiceListResponse, error) {
	f.DefaultPage()
	list, err := uc.store.Repos().Invoices.List(ctx, repository.InvoiceFilter{
		CompanyID: companyID,
		Kind:      kind,
		PartyID:   f.PartyID,
		From:      f.From,
		To:        f.To,
		Limit:     f.Limit,
		Offset:    f.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.InvoiceResponse, 0, len(list))
	for _, inv := range list {
		items = append(items, *toInvoiceResponse(inv))
	}
	return &dto.InvoiceListResponse{Items: items, Page: dto.PageResponse{Limit: f.Limit, Offset: f.Offset}}, nil
}

// assignInvoiceNumber toma el siguiente consecutivo libre. Un número manual con el mismo
// formato pudo haber ocupado un valor de la secuencia; ese valor se salta.
func assignInvoiceNumber(ctx context.Context, r repository.Repos, inv *entity.Invoice) error {
	if inv.Number != "" {
		existing, err := r.Invoices.GetByNumber(ctx, inv.CompanyID, inv.Kind, inv.Number)
		if err != nil {
			return err
		}
		if existing != nil {
			return fmt.Errorf("%w: la factura %s ya existe", domain.ErrDuplicate, inv.Number)
		}
		return nil
	}
	prefix := entity.InvoicePrefix(inv.Kind)
	for {
		n, err := r.Sequences.Next(ctx, inv.CompanyID, prefix)
		if err != nil {
			return err
		}
		number := entity.FormatNumber(prefix, n)
		existing, err := r.Invoices.GetByNumber(ctx, inv.CompanyID, inv.Kind, number)
		if err != nil {
			return err
		}
		if existing == nil {
			inv.Number = number
			return nil
		}
	}
}

// loadParty valida que el tercero exista, sea de la empresa, del tipo esperado y esté activo.
func loadParty(ctx context.Context, r repository.Repos, companyID, partyID, kind string) (*entity.Party, error) {
	party, err := r.Parties.GetByID(ctx, partyID)
	if err != nil {
		return nil, err
	}
	if party == nil {
		return nil, fmt.Errorf("%w: tercero %s", domain.ErrNotFound, partyID)
	}
	if party.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	if party.Kind != kind {
		return nil, fmt.Errorf("%w: el tercero %s no es de tipo %s", domain.ErrInvalidInput, party.Code, kind)
	}
	if !party.IsActive {
		return nil, fmt.Errorf("%w: el tercero %s está inactivo", domain.ErrInactive, party.Code)
	}
	return party, nil
}

func toInvoiceResponse(inv *entity.Invoice) *dto.InvoiceResponse {
	resp := &dto.InvoiceResponse{
		ID:         inv.ID,
		CompanyID:  inv.CompanyID,
		Kind:       inv.Kind,
		Number:     inv.Number,
		PartyID:    inv.PartyID,
		Date:       inv.Date,
		Subtotal:   inv.Subtotal,
		Discount:   inv.Discount,
		Total:      inv.Total,
		PaidAmount: inv.PaidAmount,
		AccountID:  inv.AccountID,
		Notes:      inv.Notes,
		CreatedBy:  inv.CreatedBy,
		CreatedAt:  inv.CreatedAt,
	}
	for _, item := range inv.Items {
		resp.Items = append(resp.Items, dto.InvoiceItemResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Subtotal:  item.Subtotal,
		})
	}
	return resp
}
