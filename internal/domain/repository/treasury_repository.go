package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// TreasuryAccountRepository define el puerto de persistencia para cajas y bancos.
// Balance solo se modifica con UpdateBalance, llamado por el motor de tesorería.
type TreasuryAccountRepository interface {
	Create(ctx context.Context, account *entity.TreasuryAccount) error
	// Update actualiza nombre y datos bancarios. No toca Balance.
	Update(ctx context.Context, account *entity.TreasuryAccount) error
	GetByID(ctx context.Context, id string) (*entity.TreasuryAccount, error)
	// GetForUpdate obtiene la cuenta y bloquea la fila (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.TreasuryAccount, error)
	GetByName(ctx context.Context, companyID, kind, name string) (*entity.TreasuryAccount, error)
	List(ctx context.Context, companyID, kind string, includeInactive bool) ([]*entity.TreasuryAccount, error)
	UpdateBalance(ctx context.Context, id string, balance decimal.Decimal) error
	SetActive(ctx context.Context, id string, active bool) error
}

// TreasuryMovementFilter filtros para el libro de una cuenta.
type TreasuryMovementFilter struct {
	CompanyID string
	AccountID string
	From      *time.Time
	To        *time.Time
	Limit     int // 0 = sin límite
	Offset    int
}

// TreasuryMovementRepository define el puerto de persistencia del libro de tesorería.
type TreasuryMovementRepository interface {
	Create(ctx context.Context, movement *entity.TreasuryMovement) error
	ListBySource(ctx context.Context, sourceType, sourceID string) ([]*entity.TreasuryMovement, error)
	DeleteBySource(ctx context.Context, sourceType, sourceID string) error
	// List devuelve movimientos en orden cronológico ascendente.
	List(ctx context.Context, f TreasuryMovementFilter) ([]*entity.TreasuryMovement, error)
	// SumBefore suma los movimientos de la cuenta con fecha anterior a before.
	SumBefore(ctx context.Context, accountID string, before time.Time) (decimal.Decimal, error)
}

// VoucherFilter filtros para listar comprobantes.
type VoucherFilter struct {
	CompanyID string
	Kind      string
	PartyID   string
	AccountID string
	From      *time.Time
	To        *time.Time
	Limit     int
	Offset    int
}

// VoucherRepository define el puerto de persistencia para recibos y comprobantes de pago.
type VoucherRepository interface {
	Create(ctx context.Context, voucher *entity.Voucher) error
	GetByID(ctx context.Context, id string) (*entity.Voucher, error)
	GetByNumber(ctx context.Context, companyID, kind, number string) (*entity.Voucher, error)
	List(ctx context.Context, f VoucherFilter) ([]*entity.Voucher, error)
	ListByInvoice(ctx context.Context, invoiceID string) ([]*entity.Voucher, error)
	Delete(ctx context.Context, id string) error
}

// TransferRepository define el puerto de persistencia para traslados entre cuentas.
type TransferRepository interface {
	Create(ctx context.Context, transfer *entity.Transfer) error
	GetByID(ctx context.Context, id string) (*entity.Transfer, error)
	List(ctx context.Context, companyID string, limit, offset int) ([]*entity.Transfer, error)
	Delete(ctx context.Context, id string) error
}

// SequenceRepository entrega consecutivos por empresa y clave (ej. "FV", "RC").
// Next debe ejecutarse dentro de la transacción del documento para no dejar huecos al hacer rollback.
type SequenceRepository interface {
	Next(ctx context.Context, companyID, key string) (int64, error)
}
