// Package treasury contiene los casos de uso de cajas, bancos, comprobantes y traslados,
// y el motor que mantiene el saldo de cada cuenta igual a su saldo inicial más su libro.
package treasury

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Contable-api/internal/domain"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// Entry asiento a aplicar sobre una cuenta. Amount con signo: positivo entra, negativo sale.
type Entry struct {
	CompanyID   string
	UserID      string
	AccountID   string
	Amount      decimal.Decimal
	SourceType  string
	SourceID    string
	Description string
	Date        time.Time
}

// ApplyTreasuryInTx bloquea la cuenta (SELECT FOR UPDATE), valida empresa y estado,
// rechaza un débito mayor al saldo con ErrInsufficientBalance, actualiza el saldo e inserta el movimiento.
// Usa los repositorios de la transacción del caller.
func ApplyTreasuryInTx(ctx context.Context, r repository.Repos, e Entry) (*entity.TreasuryMovement, error) {
	account, err := r.Accounts.GetForUpdate(ctx, e.AccountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, fmt.Errorf("%w: cuenta %s", domain.ErrNotFound, e.AccountID)
	}
	if account.CompanyID != e.CompanyID {
		return nil, domain.ErrForbidden
	}
	if !account.IsActive {
		return nil, fmt.Errorf("%w: la cuenta %s está inactiva", domain.ErrInactive, account.Name)
	}
	next := account.Balance.Add(e.Amount)
	if next.IsNegative() {
		return nil, fmt.Errorf("%w: cuenta %s, saldo %s, requerido %s",
			domain.ErrInsufficientBalance, account.Name, account.Balance.String(), e.Amount.Abs().String())
	}
	if err := r.Accounts.UpdateBalance(ctx, account.ID, next); err != nil {
		return nil, err
	}

	now := time.Now()
	if e.Date.IsZero() {
		e.Date = now
	}
	mov := &entity.TreasuryMovement{
		ID:          uuid.New().String(),
		CompanyID:   e.CompanyID,
		AccountID:   account.ID,
		Amount:      e.Amount,
		SourceType:  e.SourceType,
		SourceID:    e.SourceID,
		Description: e.Description,
		Date:        e.Date,
		CreatedBy:   e.UserID,
		CreatedAt:   now,
	}
	if err := r.TreasuryMovements.Create(ctx, mov); err != nil {
		return nil, err
	}
	return mov, nil
}

// RevertSourceInTx deshace los movimientos de un origen (uno o varios tipos con el mismo ID):
// resta cada monto del saldo de su cuenta (una reversión que deje saldo negativo se rechaza) y elimina las filas.
// Las cuentas se bloquean en orden de ID.
func RevertSourceInTx(ctx context.Context, r repository.Repos, sourceID string, sourceTypes ...string) error {
	var movements []*entity.TreasuryMovement
	for _, st := range sourceTypes {
		list, err := r.TreasuryMovements.ListBySource(ctx, st, sourceID)
		if err != nil {
			return err
		}
		movements = append(movements, list...)
	}
	sort.SliceStable(movements, func(i, j int) bool { return movements[i].AccountID < movements[j].AccountID })

	for _, mov := range movements {
		account, err := r.Accounts.GetForUpdate(ctx, mov.AccountID)
		if err != nil {
			return err
		}
		if account == nil {
			return fmt.Errorf("%w: cuenta %s", domain.ErrNotFound, mov.AccountID)
		}
		next := account.Balance.Sub(mov.Amount)
		if next.IsNegative() {
			return fmt.Errorf("%w: no se puede revertir, cuenta %s tiene %s y se requieren %s",
				domain.ErrInsufficientBalance, account.Name, account.Balance.String(), mov.Amount.String())
		}
		if err := r.Accounts.UpdateBalance(ctx, account.ID, next); err != nil {
			return err
		}
	}
	for _, st := range sourceTypes {
		if err := r.TreasuryMovements.DeleteBySource(ctx, st, sourceID); err != nil {
			return err
		}
	}
	return nil
}
