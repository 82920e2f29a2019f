package treasury

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

// VoucherUseCase recibos de caja (cliente → cuenta) y comprobantes de egreso (cuenta → proveedor).
type VoucherUseCase struct {
	store repository.Store
}

// NewVoucherUseCase construye el caso de uso.
func NewVoucherUseCase(store repository.Store) *VoucherUseCase {
	return &VoucherUseCase{store: store}
}

// CreateReceipt registra un recibo de caja: suma el monto a la cuenta y reduce la cartera del cliente.
func (uc *VoucherUseCase) CreateReceipt(ctx context.Context, companyID, userID string, in dto.CreateVoucherRequest) (*dto.VoucherResponse, error) {
	return uc.create(ctx, companyID, userID, entity.VoucherKindReceipt, in)
}

// CreatePayment registra un comprobante de egreso: resta el monto de la cuenta (requiere saldo).
func (uc *VoucherUseCase) CreatePayment(ctx context.Context, companyID, userID string, in dto.CreateVoucherRequest) (*dto.VoucherResponse, error) {
	return uc.create(ctx, companyID, userID, entity.VoucherKindPayment, in)
}

func (uc *VoucherUseCase) create(ctx context.Context, companyID, userID, kind string, in dto.CreateVoucherRequest) (*dto.VoucherResponse, error) {
	if in.PartyID == "" || in.AccountID == "" {
		return nil, fmt.Errorf("%w: tercero y cuenta son obligatorios", domain.ErrInvalidInput)
	}
	if !in.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: el monto debe ser mayor que cero", domain.ErrInvalidInput)
	}
	date := time.Now()
	if in.Date != nil {
		date = *in.Date
	}
	voucher := &entity.Voucher{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Kind:      kind,
		Number:    in.Number,
		PartyID:   in.PartyID,
		AccountID: in.AccountID,
		Amount:    in.Amount,
		Date:      date,
		InvoiceID: in.InvoiceID,
		Notes:     in.Notes,
		CreatedBy: userID,
		CreatedAt: time.Now(),
	}

	err := uc.store.Run(ctx, func(r repository.Repos) error {
		party, err := r.Parties.GetByID(ctx, in.PartyID)
		if err != nil {
			return err
		}
		if party == nil {
			return fmt.Errorf("%w: tercero %s", domain.ErrNotFound, in.PartyID)
		}
		if party.CompanyID != companyID {
			return domain.ErrForbidden
		}
		if party.Kind != entity.VoucherPartyKind(kind) {
			return fmt.Errorf("%w: el tercero %s no es de tipo %s", domain.ErrInvalidInput, party.Code, entity.VoucherPartyKind(kind))
		}
		if !party.IsActive {
			return fmt.Errorf("%w: el tercero %s está inactivo", domain.ErrInactive, party.Code)
		}
		if in.InvoiceID != "" {
			inv, err := r.Invoices.GetByID(ctx, in.InvoiceID)
			if err != nil {
				return err
			}
			if inv == nil || inv.CompanyID != companyID {
				return fmt.Errorf("%w: factura %s", domain.ErrNotFound, in.InvoiceID)
			}
			if entity.InvoicePartyKind(inv.Kind) != party.Kind || inv.PartyID != party.ID {
				return fmt.Errorf("%w: la factura %s no corresponde al tercero", domain.ErrInvalidInput, inv.Number)
			}
		}
		return RecordVoucherInTx(ctx, r, voucher)
	})
	if err != nil {
		return nil, err
	}
	return toVoucherResponse(voucher), nil
}

// RecordVoucherInTx numera (si no trae número), persiste el comprobante y aplica su efecto en la cuenta.
// Usa los repositorios de la transacción del caller (facturas con pago inmediato lo llaman también).
func RecordVoucherInTx(ctx context.Context, r repository.Repos, v *entity.Voucher) error {
	if err := assignVoucherNumber(ctx, r, v); err != nil {
		return err
	}
	if err := r.Vouchers.Create(ctx, v); err != nil {
		return err
	}
	_, err := ApplyTreasuryInTx(ctx, r, Entry{
		CompanyID:   v.CompanyID,
		UserID:      v.CreatedBy,
		AccountID:   v.AccountID,
		Amount:      v.SignedAmount(),
		SourceType:  v.SourceType(),
		SourceID:    v.ID,
		Description: voucherLabel(v.Kind) + " " + v.Number,
		Date:        v.Date,
	})
	return err
}

// assignVoucherNumber valida el número manual o toma el siguiente consecutivo que no esté en uso.
func assignVoucherNumber(ctx context.Context, r repository.Repos, v *entity.Voucher) error {
	if v.Number != "" {
		existing, err := r.Vouchers.GetByNumber(ctx, v.CompanyID, v.Kind, v.Number)
		if err != nil {
			return err
		}
		if existing != nil {
			return fmt.Errorf("%w: el comprobante %s ya existe", domain.ErrDuplicate, v.Number)
		}
		return nil
	}
	prefix := entity.VoucherPrefix(v.Kind)
	for {
		n, err := r.Sequences.Next(ctx, v.CompanyID, prefix)
		if err != nil {
			return err
		}
		number := entity.FormatNumber(prefix, n)
		existing, err := r.Vouchers.GetByNumber(ctx, v.CompanyID, v.Kind, number)
		if err != nil {
			return err
		}
		if existing == nil {
			v.Number = number
			return nil
		}
	}
}

// DeleteVoucherInTx revierte el efecto del comprobante en la cuenta y lo elimina.
func DeleteVoucherInTx(ctx context.Context, r repository.Repos, v *entity.Voucher) error {
	if err := RevertSourceInTx(ctx, r, v.ID, v.SourceType()); err != nil {
		return err
	}
	return r.Vouchers.Delete(ctx, v.ID)
}

// DeleteReceipt elimina un recibo; la reversión requiere saldo en la cuenta.
func (uc *VoucherUseCase) DeleteReceipt(ctx context.Context, companyID, id string) error {
	return uc.delete(ctx, companyID, entity.VoucherKindReceipt, id)
}

// DeletePayment elimina un comprobante de egreso devolviendo el monto a la cuenta.
func (uc *VoucherUseCase) DeletePayment(ctx context.Context, companyID, id string) error {
	return uc.delete(ctx, companyID, entity.VoucherKindPayment, id)
}

func (uc *VoucherUseCase) delete(ctx context.Context, companyID, kind, id string) error {
	return uc.store.Run(ctx, func(r repository.Repos) error {
		v, err := r.Vouchers.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if v == nil || v.Kind != kind {
			return fmt.Errorf("%w: comprobante %s", domain.ErrNotFound, id)
		}
		if v.CompanyID != companyID {
			return domain.ErrForbidden
		}
		// el pago de una factura se elimina junto con la factura
		if v.InvoiceID != "" {
			return fmt.Errorf("%w: el comprobante %s está ligado a una factura; elimine la factura", domain.ErrConflict, v.Number)
		}
		return DeleteVoucherInTx(ctx, r, v)
	})
}

// Get obtiene un comprobante del tipo indicado.
func (uc *VoucherUseCase) Get(ctx context.Context, companyID, kind, id string) (*dto.VoucherResponse, error) {
	v, err := uc.store.Repos().Vouchers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if v == nil || v.Kind != kind {
		return nil, domain.ErrNotFound
	}
	if v.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return toVoucherResponse(v), nil
}

// List lista comprobantes del tipo indicado.
func (uc *VoucherUseCase) List(ctx context.Context, companyID, kind string, f dto.VoucherFilter) (*dto.VoucherListResponse, error) {
	f.DefaultPage()
	list, err := uc.store.Repos().Vouchers.List(ctx, repository.VoucherFilter{
		CompanyID: companyID,
		Kind:      kind,
		PartyID:   f.PartyID,
		AccountID: f.AccountID,
		From:      f.From,
		To:        f.To,
		Limit:     f.Limit,
		Offset:    f.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.VoucherResponse, 0, len(list))
	for _, v := range list {
		items = append(items, *toVoucherResponse(v))
	}
	return &dto.VoucherListResponse{Items: items, Page: dto.PageResponse{Limit: f.Limit, Offset: f.Offset}}, nil
}

func voucherLabel(kind string) string {
	if kind == entity.VoucherKindPayment {
		return "Comprobante de egreso"
	}
	return "Recibo de caja"
}

func toVoucherResponse(v *entity.Voucher) *dto.VoucherResponse {
	return &dto.VoucherResponse{
		ID:        v.ID,
		Kind:      v.Kind,
		Number:    v.Number,
		PartyID:   v.PartyID,
		AccountID: v.AccountID,
		Amount:    v.Amount,
		Date:      v.Date,
		InvoiceID: v.InvoiceID,
		Notes:     v.Notes,
		CreatedBy: v.CreatedBy,
		CreatedAt: v.CreatedAt,
	}
}
