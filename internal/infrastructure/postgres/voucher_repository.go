package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Contable-api/internal/domain"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
)

var (
	_ repository.VoucherRepository  = (*VoucherRepo)(nil)
	_ repository.TransferRepository = (*TransferRepo)(nil)
)

// VoucherRepo recibos de caja y comprobantes de egreso (usable con pool o tx).
type VoucherRepo struct {
	q Querier
}

// NewVoucherRepository construye el adaptador. Pasar pool o tx (Querier).
func NewVoucherRepository(q Querier) *VoucherRepo {
	return &VoucherRepo{q: q}
}

const voucherSelect = `
	SELECT id, company_id, kind, number, party_id, account_id, amount, date,
	       COALESCE(invoice_id::text, ''), notes, COALESCE(created_by::text, ''), created_at
	FROM vouchers`

func scanVoucher(row rowScanner) (*entity.Voucher, error) {
	var v entity.Voucher
	err := row.Scan(&v.ID, &v.CompanyID, &v.Kind, &v.Number, &v.PartyID, &v.AccountID, &v.Amount, &v.Date,
		&v.InvoiceID, &v.Notes, &v.CreatedBy, &v.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *VoucherRepo) Create(ctx context.Context, v *entity.Voucher) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO vouchers (id, company_id, kind, number, party_id, account_id, amount, date, invoice_id, notes, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		v.ID, v.CompanyID, v.Kind, v.Number, v.PartyID, v.AccountID, v.Amount, v.Date,
		nullIfEmpty(v.InvoiceID), v.Notes, nullIfEmpty(v.CreatedBy), v.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: comprobante %s", domain.ErrDuplicate, v.Number)
		}
		return fmt.Errorf("insert voucher: %w", err)
	}
	return nil
}

func (r *VoucherRepo) GetByID(ctx context.Context, id string) (*entity.Voucher, error) {
	return r.findOne(ctx, voucherSelect+` WHERE id = $1`, id)
}

func (r *VoucherRepo) GetByNumber(ctx context.Context, companyID, kind, number string) (*entity.Voucher, error) {
	return r.findOne(ctx, voucherSelect+` WHERE company_id = $1 AND kind = $2 AND number = $3`, companyID, kind, number)
}

func (r *VoucherRepo) findOne(ctx context.Context, query string, args ...any) (*entity.Voucher, error) {
	v, err := scanVoucher(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get voucher: %w", err)
	}
	return v, nil
}

func (r *VoucherRepo) List(ctx context.Context, f repository.VoucherFilter) ([]*entity.Voucher, error) {
	query := voucherSelect + `
		WHERE company_id = $1
		  AND ($2 = '' OR kind = $2)
		  AND ($3 = '' OR party_id::text = $3)
		  AND ($4 = '' OR account_id::text = $4)
		  AND ($5::timestamptz IS NULL OR date >= $5)
		  AND ($6::timestamptz IS NULL OR date <= $6)
		ORDER BY date DESC, seq DESC
		LIMIT $7 OFFSET $8`
	return r.query(ctx, query, f.CompanyID, f.Kind, f.PartyID, f.AccountID, f.From, f.To, limitArg(f.Limit), f.Offset)
}

func (r *VoucherRepo) ListByInvoice(ctx context.Context, invoiceID string) ([]*entity.Voucher, error) {
	return r.query(ctx, voucherSelect+` WHERE invoice_id = $1 ORDER BY date, seq`, invoiceID)
}

func (r *VoucherRepo) query(ctx context.Context, query string, args ...any) ([]*entity.Voucher, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list vouchers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Voucher
	for rows.Next() {
		v, err := scanVoucher(rows)
		if err != nil {
			return nil, fmt.Errorf("scan voucher: %w", err)
		}
		list = append(list, v)
	}
	return list, rows.Err()
}

func (r *VoucherRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM vouchers WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete voucher: %w", err)
	}
	return nil
}

// TransferRepo traslados entre cuentas de tesorería.
type TransferRepo struct {
	q Querier
}

// NewTransferRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransferRepository(q Querier) *TransferRepo {
	return &TransferRepo{q: q}
}

const transferSelect = `
	SELECT id, company_id, from_account_id, to_account_id, amount, date, notes, COALESCE(created_by::text, ''), created_at
	FROM transfers`

func scanTransfer(row rowScanner) (*entity.Transfer, error) {
	var t entity.Transfer
	if err := row.Scan(&t.ID, &t.CompanyID, &t.FromAccountID, &t.ToAccountID, &t.Amount, &t.Date, &t.Notes, &t.CreatedBy, &t.CreatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TransferRepo) Create(ctx context.Context, t *entity.Transfer) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO transfers (id, company_id, from_account_id, to_account_id, amount, date, notes, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		t.ID, t.CompanyID, t.FromAccountID, t.ToAccountID, t.Amount, t.Date, t.Notes, nullIfEmpty(t.CreatedBy), t.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert transfer: %w", err)
	}
	return nil
}

func (r *TransferRepo) GetByID(ctx context.Context, id string) (*entity.Transfer, error) {
	t, err := scanTransfer(r.q.QueryRow(ctx, transferSelect+` WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transfer: %w", err)
	}
	return t, nil
}

func (r *TransferRepo) List(ctx context.Context, companyID string, limit, offset int) ([]*entity.Transfer, error) {
	rows, err := r.q.Query(ctx, transferSelect+` WHERE company_id = $1 ORDER BY date DESC, created_at DESC LIMIT $2 OFFSET $3`,
		companyID, limitArg(limit), offset)
	if err != nil {
		return nil, fmt.Errorf("list transfers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Transfer
	for rows.Next() {
		t, err := scanTransfer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transfer: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

func (r *TransferRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM transfers WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete transfer: %w", err)
	}
	return nil
}
