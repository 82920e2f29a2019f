package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Contable-api/internal/domain"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación de InvoiceRepository (usable con pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

const invoiceSelect = `
	SELECT id, company_id, kind, number, party_id, date, subtotal, discount, total, paid_amount,
	       COALESCE(account_id::text, ''), notes, COALESCE(created_by::text, ''), created_at
	FROM invoices`

func scanInvoice(row rowScanner) (*entity.Invoice, error) {
	var inv entity.Invoice
	err := row.Scan(&inv.ID, &inv.CompanyID, &inv.Kind, &inv.Number, &inv.PartyID, &inv.Date,
		&inv.Subtotal, &inv.Discount, &inv.Total, &inv.PaidAmount,
		&inv.AccountID, &inv.Notes, &inv.CreatedBy, &inv.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// Create persiste la cabecera y sus líneas.
func (r *InvoiceRepo) Create(ctx context.Context, inv *entity.Invoice) error {
	query := `
		INSERT INTO invoices (id, company_id, kind, number, party_id, date, subtotal, discount, total,
		                      paid_amount, account_id, notes, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		inv.ID, inv.CompanyID, inv.Kind, inv.Number, inv.PartyID, inv.Date,
		inv.Subtotal, inv.Discount, inv.Total, inv.PaidAmount,
		nullIfEmpty(inv.AccountID), inv.Notes, nullIfEmpty(inv.CreatedBy), inv.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: factura %s", domain.ErrDuplicate, inv.Number)
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	for i, it := range inv.Items {
		_, err := r.q.Exec(ctx, `
			INSERT INTO invoice_items (id, invoice_id, line_no, product_id, quantity, unit_price, subtotal)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			it.ID, inv.ID, i+1, it.ProductID, it.Quantity, it.UnitPrice, it.Subtotal,
		)
		if err != nil {
			return fmt.Errorf("insert invoice item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene la factura con sus líneas.
func (r *InvoiceRepo) GetByID(ctx context.Context, id string) (*entity.Invoice, error) {
	return r.findOne(ctx, invoiceSelect+` WHERE id = $1`, id)
}

// GetForUpdate bloquea la cabecera; las devoluciones concurrentes sobre la misma factura se serializan aquí.
func (r *InvoiceRepo) GetForUpdate(ctx context.Context, id string) (*entity.Invoice, error) {
	return r.findOne(ctx, invoiceSelect+` WHERE id = $1 FOR UPDATE`, id)
}

func (r *InvoiceRepo) GetByNumber(ctx context.Context, companyID, kind, number string) (*entity.Invoice, error) {
	return r.findOne(ctx, invoiceSelect+` WHERE company_id = $1 AND kind = $2 AND number = $3`, companyID, kind, number)
}

func (r *InvoiceRepo) findOne(ctx context.Context, query string, args ...any) (*entity.Invoice, error) {
	inv, err := scanInvoice(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	items, err := r.items(ctx, inv.ID)
	if err != nil {
		return nil, err
	}
	inv.Items = items
	return inv, nil
}

func (r *InvoiceRepo) items(ctx context.Context, invoiceID string) ([]*entity.InvoiceItem, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, invoice_id, product_id, quantity, unit_price, subtotal
		FROM invoice_items WHERE invoice_id = $1 ORDER BY line_no`, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list invoice items: %w", err)
	}
	defer rows.Close()
	var items []*entity.InvoiceItem
	for rows.Next() {
		var it entity.InvoiceItem
		if err := rows.Scan(&it.ID, &it.InvoiceID, &it.ProductID, &it.Quantity, &it.UnitPrice, &it.Subtotal); err != nil {
			return nil, fmt.Errorf("scan invoice item: %w", err)
		}
		items = append(items, &it)
	}
	return items, rows.Err()
}

// List cabeceras (sin líneas), de la más reciente a la más antigua.
func (r *InvoiceRepo) List(ctx context.Context, f repository.InvoiceFilter) ([]*entity.Invoice, error) {
	query := invoiceSelect + `
		WHERE company_id = $1
		  AND ($2 = '' OR kind = $2)
		  AND ($3 = '' OR party_id::text = $3)
		  AND ($4::timestamptz IS NULL OR date >= $4)
		  AND ($5::timestamptz IS NULL OR date <= $5)
		ORDER BY date DESC, seq DESC
		LIMIT $6 OFFSET $7`
	rows, err := r.q.Query(ctx, query, f.CompanyID, f.Kind, f.PartyID, f.From, f.To, limitArg(f.Limit), f.Offset)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()
	var list []*entity.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, inv)
	}
	return list, rows.Err()
}

// Delete elimina la factura; las líneas caen por ON DELETE CASCADE.
func (r *InvoiceRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM invoices WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}
	return nil
}
