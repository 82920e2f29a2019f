package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo libro de movimientos de inventario (usable con pool o tx).
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

const movementSelect = `
	SELECT id, company_id, product_id, type, quantity, unit_price, reference,
	       document_type, document_id, COALESCE(document_line_id::text, ''),
	       date, COALESCE(created_by::text, ''), created_at
	FROM stock_movements`

func scanMovement(row rowScanner) (*entity.StockMovement, error) {
	var m entity.StockMovement
	err := row.Scan(&m.ID, &m.CompanyID, &m.ProductID, &m.Type, &m.Quantity, &m.UnitPrice, &m.Reference,
		&m.DocumentType, &m.DocumentID, &m.DocumentLineID, &m.Date, &m.CreatedBy, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Create inserta un movimiento.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (id, company_id, product_id, type, quantity, unit_price, reference,
		                             document_type, document_id, document_line_id, date, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.CompanyID, m.ProductID, m.Type, m.Quantity, m.UnitPrice, m.Reference,
		m.DocumentType, m.DocumentID, nullIfEmpty(m.DocumentLineID), m.Date, nullIfEmpty(m.CreatedBy), m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

func (r *StockMovementRepo) GetByID(ctx context.Context, id string) (*entity.StockMovement, error) {
	m, err := scanMovement(r.q.QueryRow(ctx, movementSelect+` WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock movement: %w", err)
	}
	return m, nil
}

// ListByDocument movimientos generados por un documento, en orden de inserción.
func (r *StockMovementRepo) ListByDocument(ctx context.Context, documentType, documentID string) ([]*entity.StockMovement, error) {
	return r.query(ctx, movementSelect+` WHERE document_type = $1 AND document_id = $2 ORDER BY seq`, documentType, documentID)
}

func (r *StockMovementRepo) DeleteByDocument(ctx context.Context, documentType, documentID string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM stock_movements WHERE document_type = $1 AND document_id = $2`, documentType, documentID)
	if err != nil {
		return fmt.Errorf("delete stock movements: %w", err)
	}
	return nil
}

// List kardex filtrado, del más reciente al más antiguo.
func (r *StockMovementRepo) List(ctx context.Context, f repository.MovementFilter) ([]*entity.StockMovement, error) {
	query := movementSelect + `
		WHERE company_id = $1
		  AND ($2 = '' OR product_id::text = $2)
		  AND ($3 = '' OR type = $3)
		  AND ($4::timestamptz IS NULL OR date >= $4)
		  AND ($5::timestamptz IS NULL OR date <= $5)
		ORDER BY date DESC, seq DESC
		LIMIT $6 OFFSET $7`
	return r.query(ctx, query, f.CompanyID, f.ProductID, f.Type, f.From, f.To, limitArg(f.Limit), f.Offset)
}

func (r *StockMovementRepo) query(ctx context.Context, query string, args ...any) ([]*entity.StockMovement, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}
