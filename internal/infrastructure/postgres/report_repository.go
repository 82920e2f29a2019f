package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Contable-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de agregación para dashboard, estados de cuenta y conciliación.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// partyEntriesSQL efecto de cada documento sobre el saldo del tercero.
// sub ordena el reembolso inmediatamente después de su devolución.
const partyEntriesSQL = `
	SELECT party_id, date, document_type, document_id, number, effect, seq, sub FROM (
		SELECT party_id, date,
		       CASE kind WHEN 'PURCHASE' THEN 'PURCHASE_INVOICE' ELSE 'SALES_INVOICE' END AS document_type,
		       id AS document_id, number, total AS effect, seq, 0 AS sub
		FROM invoices
		UNION ALL
		SELECT party_id, date,
		       CASE kind WHEN 'PURCHASE' THEN 'PURCHASE_RETURN' ELSE 'SALES_RETURN' END,
		       id, number, -total, seq, 0
		FROM returns
		UNION ALL
		SELECT party_id, date,
		       CASE kind WHEN 'PURCHASE' THEN 'PURCHASE_REFUND' ELSE 'SALES_REFUND' END,
		       id, number, refund_amount, seq, 1
		FROM returns WHERE refund_amount > 0
		UNION ALL
		SELECT party_id, date, kind, id, number, -amount, seq, 0
		FROM vouchers
	) e`

func (r *ReportRepo) PartyBalances(ctx context.Context, companyID, kind string, before *time.Time) (map[string]decimal.Decimal, error) {
	query := `
		SELECT e.party_id::text, SUM(e.effect)
		FROM (` + partyEntriesSQL + `) e
		JOIN parties p ON p.id = e.party_id
		WHERE p.company_id = $1
		  AND ($2 = '' OR p.kind = $2)
		  AND ($3::timestamptz IS NULL OR e.date < $3)
		GROUP BY e.party_id`
	rows, err := r.q.Query(ctx, query, companyID, kind, before)
	if err != nil {
		return nil, fmt.Errorf("party balances: %w", err)
	}
	defer rows.Close()
	out := map[string]decimal.Decimal{}
	for rows.Next() {
		var id string
		var sum decimal.Decimal
		if err := rows.Scan(&id, &sum); err != nil {
			return nil, fmt.Errorf("scan party balance: %w", err)
		}
		out[id] = sum
	}
	return out, rows.Err()
}

// PartyEntries documentos del tercero ordenados por fecha y orden de registro.
func (r *ReportRepo) PartyEntries(ctx context.Context, partyID string, from, to *time.Time) ([]repository.PartyEntry, error) {
	query := `
		SELECT e.date, e.document_type, e.document_id::text, e.number, e.effect
		FROM (` + partyEntriesSQL + `) e
		WHERE e.party_id = $1
		  AND ($2::timestamptz IS NULL OR e.date >= $2)
		  AND ($3::timestamptz IS NULL OR e.date <= $3)
		ORDER BY e.date, e.seq, e.sub`
	rows, err := r.q.Query(ctx, query, partyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("party entries: %w", err)
	}
	defer rows.Close()
	out := []repository.PartyEntry{}
	for rows.Next() {
		var e repository.PartyEntry
		if err := rows.Scan(&e.Date, &e.DocumentType, &e.DocumentID, &e.Number, &e.Effect); err != nil {
			return nil, fmt.Errorf("scan party entry: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *ReportRepo) sum(ctx context.Context, label, query string, args ...any) (decimal.Decimal, error) {
	var v decimal.Decimal
	if err := r.q.QueryRow(ctx, query, args...).Scan(&v); err != nil {
		return decimal.Zero, fmt.Errorf("%s: %w", label, err)
	}
	return v, nil
}

func (r *ReportRepo) InvoiceTotal(ctx context.Context, companyID, kind string, from, to time.Time) (decimal.Decimal, error) {
	return r.sum(ctx, "invoice total", `
		SELECT COALESCE(SUM(total), 0) FROM invoices
		WHERE company_id = $1 AND kind = $2 AND date BETWEEN $3 AND $4`, companyID, kind, from, to)
}

func (r *ReportRepo) ReturnTotal(ctx context.Context, companyID, kind string, from, to time.Time) (decimal.Decimal, error) {
	return r.sum(ctx, "return total", `
		SELECT COALESCE(SUM(total), 0) FROM returns
		WHERE company_id = $1 AND kind = $2 AND date BETWEEN $3 AND $4`, companyID, kind, from, to)
}

func (r *ReportRepo) AccountBalanceTotal(ctx context.Context, companyID, kind string) (decimal.Decimal, error) {
	return r.sum(ctx, "account balance total", `
		SELECT COALESCE(SUM(balance), 0) FROM treasury_accounts
		WHERE company_id = $1 AND kind = $2 AND is_active`, companyID, kind)
}

func (r *ReportRepo) OpeningBalanceTotal(ctx context.Context, companyID, kind string) (decimal.Decimal, error) {
	return r.sum(ctx, "opening balance total", `
		SELECT COALESCE(SUM(opening_balance), 0) FROM parties
		WHERE company_id = $1 AND kind = $2`, companyID, kind)
}

func (r *ReportRepo) LowStockCount(ctx context.Context, companyID string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `
		SELECT COUNT(*) FROM products
		WHERE company_id = $1 AND is_active AND min_stock > 0 AND current_stock <= min_stock`, companyID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("low stock count: %w", err)
	}
	return n, nil
}

// TopProducts más vendidos por cantidad facturada en el rango (sin descontar devoluciones).
func (r *ReportRepo) TopProducts(ctx context.Context, companyID string, from, to time.Time, limit int) ([]repository.TopProduct, error) {
	rows, err := r.q.Query(ctx, `
		SELECT p.id, p.code, p.name, SUM(it.quantity) AS qty, SUM(it.subtotal)
		FROM invoice_items it
		JOIN invoices i ON i.id = it.invoice_id
		JOIN products p ON p.id = it.product_id
		WHERE i.company_id = $1 AND i.kind = 'SALES' AND i.date BETWEEN $2 AND $3
		GROUP BY p.id, p.code, p.name
		ORDER BY qty DESC, p.code
		LIMIT $4`, companyID, from, to, limitArg(limit))
	if err != nil {
		return nil, fmt.Errorf("top products: %w", err)
	}
	defer rows.Close()
	out := []repository.TopProduct{}
	for rows.Next() {
		var tp repository.TopProduct
		if err := rows.Scan(&tp.ProductID, &tp.Code, &tp.Name, &tp.Quantity, &tp.Revenue); err != nil {
			return nil, fmt.Errorf("scan top product: %w", err)
		}
		out = append(out, tp)
	}
	return out, rows.Err()
}

// StockDiscrepancies productos cuyo stock no coincide con la suma de su kardex.
func (r *ReportRepo) StockDiscrepancies(ctx context.Context, companyID string) ([]repository.StockDiscrepancy, error) {
	rows, err := r.q.Query(ctx, `
		SELECT p.id, p.code, p.name, p.current_stock, COALESCE(m.total, 0)
		FROM products p
		LEFT JOIN (
			SELECT product_id, SUM(quantity) AS total FROM stock_movements GROUP BY product_id
		) m ON m.product_id = p.id
		WHERE p.company_id = $1 AND p.current_stock <> COALESCE(m.total, 0)
		ORDER BY p.code`, companyID)
	if err != nil {
		return nil, fmt.Errorf("stock discrepancies: %w", err)
	}
	defer rows.Close()
	out := []repository.StockDiscrepancy{}
	for rows.Next() {
		var d repository.StockDiscrepancy
		if err := rows.Scan(&d.ProductID, &d.Code, &d.Name, &d.CurrentStock, &d.LedgerStock); err != nil {
			return nil, fmt.Errorf("scan stock discrepancy: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// AccountDiscrepancies cuentas cuyo saldo difiere de saldo inicial + movimientos.
func (r *ReportRepo) AccountDiscrepancies(ctx context.Context, companyID string) ([]repository.AccountDiscrepancy, error) {
	rows, err := r.q.Query(ctx, `
		SELECT a.id, a.name, a.balance, a.initial_balance + COALESCE(m.total, 0)
		FROM treasury_accounts a
		LEFT JOIN (
			SELECT account_id, SUM(amount) AS total FROM treasury_movements GROUP BY account_id
		) m ON m.account_id = a.id
		WHERE a.company_id = $1 AND a.balance <> a.initial_balance + COALESCE(m.total, 0)
		ORDER BY a.name`, companyID)
	if err != nil {
		return nil, fmt.Errorf("account discrepancies: %w", err)
	}
	defer rows.Close()
	out := []repository.AccountDiscrepancy{}
	for rows.Next() {
		var d repository.AccountDiscrepancy
		if err := rows.Scan(&d.AccountID, &d.Name, &d.Balance, &d.Expected); err != nil {
			return nil, fmt.Errorf("scan account discrepancy: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
