package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Contable-api/internal/domain"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var (
	_ repository.TreasuryAccountRepository  = (*TreasuryAccountRepo)(nil)
	_ repository.TreasuryMovementRepository = (*TreasuryMovementRepo)(nil)
	_ repository.SequenceRepository         = (*SequenceRepo)(nil)
)

// ── cuentas ────────────────────────────────────────────────────────────────────

// TreasuryAccountRepo cajas y bancos (usable con pool o tx).
type TreasuryAccountRepo struct {
	q Querier
}

// NewTreasuryAccountRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTreasuryAccountRepository(q Querier) *TreasuryAccountRepo {
	return &TreasuryAccountRepo{q: q}
}

const accountColumns = `id, company_id, kind, name, bank_name, account_number, initial_balance, balance, is_active, created_at, updated_at`

func scanAccount(row rowScanner) (*entity.TreasuryAccount, error) {
	var a entity.TreasuryAccount
	err := row.Scan(&a.ID, &a.CompanyID, &a.Kind, &a.Name, &a.BankName, &a.AccountNumber,
		&a.InitialBalance, &a.Balance, &a.IsActive, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *TreasuryAccountRepo) Create(ctx context.Context, a *entity.TreasuryAccount) error {
	query := `
		INSERT INTO treasury_accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		a.ID, a.CompanyID, a.Kind, a.Name, a.BankName, a.AccountNumber,
		a.InitialBalance, a.Balance, a.IsActive, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: cuenta %s", domain.ErrDuplicate, a.Name)
		}
		return fmt.Errorf("insert treasury account: %w", err)
	}
	return nil
}

// Update modifica solo los datos descriptivos; saldo y estado tienen sus propios métodos.
func (r *TreasuryAccountRepo) Update(ctx context.Context, a *entity.TreasuryAccount) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE treasury_accounts SET name = $2, bank_name = $3, account_number = $4, updated_at = $5
		WHERE id = $1`, a.ID, a.Name, a.BankName, a.AccountNumber, a.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: cuenta %s", domain.ErrDuplicate, a.Name)
		}
		return fmt.Errorf("update treasury account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *TreasuryAccountRepo) GetByID(ctx context.Context, id string) (*entity.TreasuryAccount, error) {
	return r.findOne(ctx, `SELECT `+accountColumns+` FROM treasury_accounts WHERE id = $1`, id)
}

// GetForUpdate bloquea la cuenta hasta el fin de la transacción.
func (r *TreasuryAccountRepo) GetForUpdate(ctx context.Context, id string) (*entity.TreasuryAccount, error) {
	return r.findOne(ctx, `SELECT `+accountColumns+` FROM treasury_accounts WHERE id = $1 FOR UPDATE`, id)
}

func (r *TreasuryAccountRepo) GetByName(ctx context.Context, companyID, kind, name string) (*entity.TreasuryAccount, error) {
	return r.findOne(ctx, `SELECT `+accountColumns+` FROM treasury_accounts WHERE company_id = $1 AND kind = $2 AND name = $3`,
		companyID, kind, name)
}

func (r *TreasuryAccountRepo) findOne(ctx context.Context, query string, args ...any) (*entity.TreasuryAccount, error) {
	a, err := scanAccount(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get treasury account: %w", err)
	}
	return a, nil
}

func (r *TreasuryAccountRepo) List(ctx context.Context, companyID, kind string, includeInactive bool) ([]*entity.TreasuryAccount, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+accountColumns+` FROM treasury_accounts
		WHERE company_id = $1 AND ($2 = '' OR kind = $2) AND ($3 OR is_active)
		ORDER BY name`, companyID, kind, includeInactive)
	if err != nil {
		return nil, fmt.Errorf("list treasury accounts: %w", err)
	}
	defer rows.Close()
	var list []*entity.TreasuryAccount
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("scan treasury account: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

func (r *TreasuryAccountRepo) UpdateBalance(ctx context.Context, id string, balance decimal.Decimal) error {
	return r.set(ctx, "balance", id, balance)
}

func (r *TreasuryAccountRepo) SetActive(ctx context.Context, id string, active bool) error {
	return r.set(ctx, "is_active", id, active)
}

func (r *TreasuryAccountRepo) set(ctx context.Context, column, id string, value any) error {
	query := fmt.Sprintf(`UPDATE treasury_accounts SET %s = $2, updated_at = $3 WHERE id = $1`, column)
	tag, err := r.q.Exec(ctx, query, id, value, time.Now())
	if err != nil {
		return fmt.Errorf("update treasury account %s: %w", column, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: cuenta %s", domain.ErrNotFound, id)
	}
	return nil
}

// ── movimientos ────────────────────────────────────────────────────────────────

// TreasuryMovementRepo libro de caja y bancos (usable con pool o tx).
type TreasuryMovementRepo struct {
	q Querier
}

// NewTreasuryMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTreasuryMovementRepository(q Querier) *TreasuryMovementRepo {
	return &TreasuryMovementRepo{q: q}
}

const treasuryMovementSelect = `
	SELECT id, company_id, account_id, amount, source_type, source_id, description, date,
	       COALESCE(created_by::text, ''), created_at
	FROM treasury_movements`

func (r *TreasuryMovementRepo) Create(ctx context.Context, m *entity.TreasuryMovement) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO treasury_movements (id, company_id, account_id, amount, source_type, source_id, description, date, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		m.ID, m.CompanyID, m.AccountID, m.Amount, m.SourceType, m.SourceID, m.Description, m.Date,
		nullIfEmpty(m.CreatedBy), m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert treasury movement: %w", err)
	}
	return nil
}

func (r *TreasuryMovementRepo) ListBySource(ctx context.Context, sourceType, sourceID string) ([]*entity.TreasuryMovement, error) {
	return r.query(ctx, treasuryMovementSelect+` WHERE source_type = $1 AND source_id = $2 ORDER BY seq`, sourceType, sourceID)
}

func (r *TreasuryMovementRepo) DeleteBySource(ctx context.Context, sourceType, sourceID string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM treasury_movements WHERE source_type = $1 AND source_id = $2`, sourceType, sourceID)
	if err != nil {
		return fmt.Errorf("delete treasury movements: %w", err)
	}
	return nil
}

// List en orden cronológico ascendente, como lo consume el libro de la cuenta.
func (r *TreasuryMovementRepo) List(ctx context.Context, f repository.TreasuryMovementFilter) ([]*entity.TreasuryMovement, error) {
	query := treasuryMovementSelect + `
		WHERE company_id = $1
		  AND ($2 = '' OR account_id::text = $2)
		  AND ($3::timestamptz IS NULL OR date >= $3)
		  AND ($4::timestamptz IS NULL OR date <= $4)
		ORDER BY date, seq
		LIMIT $5 OFFSET $6`
	return r.query(ctx, query, f.CompanyID, f.AccountID, f.From, f.To, limitArg(f.Limit), f.Offset)
}

// SumBefore suma de movimientos de la cuenta con fecha anterior a before.
func (r *TreasuryMovementRepo) SumBefore(ctx context.Context, accountID string, before time.Time) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.q.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount), 0) FROM treasury_movements WHERE account_id = $1 AND date < $2`,
		accountID, before).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum treasury movements: %w", err)
	}
	return sum, nil
}

func (r *TreasuryMovementRepo) query(ctx context.Context, query string, args ...any) ([]*entity.TreasuryMovement, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list treasury movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.TreasuryMovement
	for rows.Next() {
		var m entity.TreasuryMovement
		if err := rows.Scan(&m.ID, &m.CompanyID, &m.AccountID, &m.Amount, &m.SourceType, &m.SourceID,
			&m.Description, &m.Date, &m.CreatedBy, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan treasury movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// ── consecutivos ───────────────────────────────────────────────────────────────

// SequenceRepo consecutivos de numeración por empresa y prefijo.
type SequenceRepo struct {
	q Querier
}

// NewSequenceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSequenceRepository(q Querier) *SequenceRepo {
	return &SequenceRepo{q: q}
}

// Next incrementa y devuelve el consecutivo; el upsert bloquea la fila hasta el fin de la transacción.
func (r *SequenceRepo) Next(ctx context.Context, companyID, key string) (int64, error) {
	var n int64
	err := r.q.QueryRow(ctx, `
		INSERT INTO document_sequences (company_id, key, last_value) VALUES ($1, $2, 1)
		ON CONFLICT (company_id, key) DO UPDATE SET last_value = document_sequences.last_value + 1
		RETURNING last_value`, companyID, key).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("next sequence %s: %w", key, err)
	}
	return n, nil
}
