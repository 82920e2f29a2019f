package treasury

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Contable-api/internal/application/dto"
	"github.com/jhoicas/Contable-api/internal/domain"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
)

// TransferUseCase traslados de fondos entre cajas y bancos.
type TransferUseCase struct {
	store repository.Store
}

// NewTransferUseCase construye el caso de uso.
func NewTransferUseCase(store repository.Store) *TransferUseCase {
	return &TransferUseCase{store: store}
}

// Create traslada Amount de FromAccountID a ToAccountID en una sola transacción.
func (uc *TransferUseCase) Create(ctx context.Context, companyID, userID string, in dto.CreateTransferRequest) (*dto.TransferResponse, error) {
	if in.FromAccountID == "" || in.ToAccountID == "" {
		return nil, fmt.Errorf("%w: cuenta origen y destino son obligatorias", domain.ErrInvalidInput)
	}
	if in.FromAccountID == in.ToAccountID {
		return nil, fmt.Errorf("%w: la cuenta origen y destino deben ser distintas", domain.ErrInvalidInput)
	}
	if !in.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: el monto debe ser mayor que cero", domain.ErrInvalidInput)
	}
	now := time.Now()
	date := now
	if in.Date != nil {
		date = *in.Date
	}
	t := &entity.Transfer{
		ID:            uuid.New().String(),
		CompanyID:     companyID,
		FromAccountID: in.FromAccountID,
		ToAccountID:   in.ToAccountID,
		Amount:        in.Amount,
		Date:          date,
		Notes:         in.Notes,
		CreatedBy:     userID,
		CreatedAt:     now,
	}
	entries := []Entry{
		{AccountID: t.FromAccountID, Amount: t.Amount.Neg(), SourceType: entity.TreasurySourceTransferOut},
		{AccountID: t.ToAccountID, Amount: t.Amount, SourceType: entity.TreasurySourceTransferIn},
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].AccountID < entries[j].AccountID })

	err := uc.store.Run(ctx, func(r repository.Repos) error {
		if err := r.Transfers.Create(ctx, t); err != nil {
			return err
		}
		for _, e := range entries {
			e.CompanyID = companyID
			e.UserID = userID
			e.SourceID = t.ID
			e.Date = date
			e.Description = "Traslado entre cuentas"
			if t.Notes != "" {
				e.Description += ": " + t.Notes
			}
			if _, err := ApplyTreasuryInTx(ctx, r, e); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toTransferResponse(t), nil
}

// Delete revierte el traslado; requiere que la cuenta destino aún tenga el saldo.
func (uc *TransferUseCase) Delete(ctx context.Context, companyID, id string) error {
	return uc.store.Run(ctx, func(r repository.Repos) error {
		t, err := r.Transfers.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if t == nil {
			return fmt.Errorf("%w: traslado %s", domain.ErrNotFound, id)
		}
		if t.CompanyID != companyID {
			return domain.ErrForbidden
		}
		if err := RevertSourceInTx(ctx, r, t.ID, entity.TreasurySourceTransferOut, entity.TreasurySourceTransferIn); err != nil {
			return err
		}
		return r.Transfers.Delete(ctx, t.ID)
	})
}

// List lista traslados de la empresa.
func (uc *TransferUseCase) List(ctx context.Context, companyID string, page dto.PageRequest) (*dto.TransferListResponse, error) {
	page.DefaultPage()
	list, err := uc.store.Repos().Transfers.List(ctx, companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TransferResponse, 0, len(list))
	for _, t := range list {
		items = append(items, *toTransferResponse(t))
	}
	return &dto.TransferListResponse{Items: items, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}}, nil
}

func toTransferResponse(t *entity.Transfer) *dto.TransferResponse {
	return &dto.TransferResponse{
		ID:            t.ID,
		FromAccountID: t.FromAccountID,
		ToAccountID:   t.ToAccountID,
		Amount:        t.Amount,
		Date:          t.Date,
		Notes:         t.Notes,
		CreatedBy:     t.CreatedBy,
		CreatedAt:     t.CreatedAt,
	}
}
