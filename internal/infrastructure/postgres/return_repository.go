package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Contable-api/internal/domain"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.ReturnRepository = (*ReturnRepo)(nil)

// ReturnRepo devoluciones de venta y compra (usable con pool o tx).
type ReturnRepo struct {
	q Querier
}

// NewReturnRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReturnRepository(q Querier) *ReturnRepo {
	return &ReturnRepo{q: q}
}

const returnSelect = `
	SELECT id, company_id, kind, number, invoice_id, party_id, date, total, refund_amount,
	       COALESCE(account_id::text, ''), reason, COALESCE(created_by::text, ''), created_at
	FROM returns`

func scanReturn(row rowScanner) (*entity.Return, error) {
	var ret entity.Return
	err := row.Scan(&ret.ID, &ret.CompanyID, &ret.Kind, &ret.Number, &ret.InvoiceID, &ret.PartyID, &ret.Date,
		&ret.Total, &ret.RefundAmount, &ret.AccountID, &ret.Reason, &ret.CreatedBy, &ret.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &ret, nil
}

// Create persiste la devolución con sus líneas.
func (r *ReturnRepo) Create(ctx context.Context, ret *entity.Return) error {
	query := `
		INSERT INTO returns (id, company_id, kind, number, invoice_id, party_id, date, total, refund_amount,
		                     account_id, reason, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		ret.ID, ret.CompanyID, ret.Kind, ret.Number, ret.InvoiceID, ret.PartyID, ret.Date, ret.Total, ret.RefundAmount,
		nullIfEmpty(ret.AccountID), ret.Reason, nullIfEmpty(ret.CreatedBy), ret.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: devolución %s", domain.ErrDuplicate, ret.Number)
		}
		return fmt.Errorf("insert return: %w", err)
	}
	for i, it := range ret.Items {
		_, err := r.q.Exec(ctx, `
			INSERT INTO return_items (id, return_id, line_no, invoice_item_id, product_id, quantity, unit_price, subtotal)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			it.ID, ret.ID, i+1, it.InvoiceItemID, it.ProductID, it.Quantity, it.UnitPrice, it.Subtotal,
		)
		if err != nil {
			return fmt.Errorf("insert return item: %w", err)
		}
	}
	return nil
}

func (r *ReturnRepo) GetByID(ctx context.Context, id string) (*entity.Return, error) {
	return r.findOne(ctx, returnSelect+` WHERE id = $1`, id)
}

func (r *ReturnRepo) GetByNumber(ctx context.Context, companyID, kind, number string) (*entity.Return, error) {
	return r.findOne(ctx, returnSelect+` WHERE company_id = $1 AND kind = $2 AND number = $3`, companyID, kind, number)
}

func (r *ReturnRepo) findOne(ctx context.Context, query string, args ...any) (*entity.Return, error) {
	ret, err := scanReturn(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get return: %w", err)
	}
	if err := r.loadItems(ctx, []*entity.Return{ret}); err != nil {
		return nil, err
	}
	return ret, nil
}

// loadItems completa las líneas de varias devoluciones con una sola consulta.
func (r *ReturnRepo) loadItems(ctx context.Context, list []*entity.Return) error {
	if len(list) == 0 {
		return nil
	}
	byID := make(map[string]*entity.Return, len(list))
	ids := make([]string, 0, len(list))
	for _, ret := range list {
		byID[ret.ID] = ret
		ids = append(ids, ret.ID)
		ret.Items = []*entity.ReturnItem{}
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, return_id, invoice_item_id, product_id, quantity, unit_price, subtotal
		FROM return_items WHERE return_id::text = ANY($1) ORDER BY return_id, line_no`, ids)
	if err != nil {
		return fmt.Errorf("list return items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.ReturnItem
		if err := rows.Scan(&it.ID, &it.ReturnID, &it.InvoiceItemID, &it.ProductID, &it.Quantity, &it.UnitPrice, &it.Subtotal); err != nil {
			return fmt.Errorf("scan return item: %w", err)
		}
		if ret, ok := byID[it.ReturnID]; ok {
			ret.Items = append(ret.Items, &it)
		}
	}
	return rows.Err()
}

// List devoluciones con sus líneas, de la más reciente a la más antigua.
func (r *ReturnRepo) List(ctx context.Context, f repository.ReturnFilter) ([]*entity.Return, error) {
	query := returnSelect + `
		WHERE company_id = $1
		  AND ($2 = '' OR kind = $2)
		  AND ($3 = '' OR invoice_id::text = $3)
		  AND ($4 = '' OR party_id::text = $4)
		ORDER BY date DESC, seq DESC
		LIMIT $5 OFFSET $6`
	rows, err := r.q.Query(ctx, query, f.CompanyID, f.Kind, f.InvoiceID, f.PartyID, limitArg(f.Limit), f.Offset)
	if err != nil {
		return nil, fmt.Errorf("list returns: %w", err)
	}
	var list []*entity.Return
	for rows.Next() {
		ret, err := scanReturn(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan return: %w", err)
		}
		list = append(list, ret)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.loadItems(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *ReturnRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM returns WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete return: %w", err)
	}
	return nil
}

// ReturnedQuantities cantidad ya devuelta por línea de la factura.
func (r *ReturnRepo) ReturnedQuantities(ctx context.Context, invoiceID string) (map[string]decimal.Decimal, error) {
	rows, err := r.q.Query(ctx, `
		SELECT ri.invoice_item_id, SUM(ri.quantity)
		FROM return_items ri
		JOIN returns rt ON rt.id = ri.return_id
		WHERE rt.invoice_id = $1
		GROUP BY ri.invoice_item_id`, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("returned quantities: %w", err)
	}
	defer rows.Close()
	out := map[string]decimal.Decimal{}
	for rows.Next() {
		var itemID string
		var qty decimal.Decimal
		if err := rows.Scan(&itemID, &qty); err != nil {
			return nil, fmt.Errorf("scan returned quantity: %w", err)
		}
		out[itemID] = qty
	}
	return out, rows.Err()
}

func (r *ReturnRepo) CountByInvoice(ctx context.Context, invoiceID string) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM returns WHERE invoice_id = $1`, invoiceID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count returns: %w", err)
	}
	return n, nil
}
