package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Contable-api/internal/domain"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
)

var _ repository.PartyRepository = (*PartyRepo)(nil)

// PartyRepo clientes y proveedores (usable con pool o tx).
type PartyRepo struct {
	q Querier
}

// NewPartyRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPartyRepository(q Querier) *PartyRepo {
	return &PartyRepo{q: q}
}

const partyColumns = `id, company_id, kind, code, name, tax_id, phone, email, address, opening_balance, is_active, created_at, updated_at`

func scanParty(row rowScanner) (*entity.Party, error) {
	var p entity.Party
	err := row.Scan(&p.ID, &p.CompanyID, &p.Kind, &p.Code, &p.Name, &p.TaxID, &p.Phone, &p.Email, &p.Address,
		&p.OpeningBalance, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persiste un tercero nuevo.
func (r *PartyRepo) Create(ctx context.Context, p *entity.Party) error {
	query := `
		INSERT INTO parties (` + partyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.CompanyID, p.Kind, p.Code, p.Name, p.TaxID, p.Phone, p.Email, p.Address,
		p.OpeningBalance, p.IsActive, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: código %s", domain.ErrDuplicate, p.Code)
		}
		return fmt.Errorf("insert party: %w", err)
	}
	return nil
}

// Update modifica los datos descriptivos. El saldo inicial no cambia después de creado.
func (r *PartyRepo) Update(ctx context.Context, p *entity.Party) error {
	query := `
		UPDATE parties
		SET code = $2, name = $3, tax_id = $4, phone = $5, email = $6, address = $7, is_active = $8, updated_at = $9
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, p.ID, p.Code, p.Name, p.TaxID, p.Phone, p.Email, p.Address, p.IsActive, p.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: código %s", domain.ErrDuplicate, p.Code)
		}
		return fmt.Errorf("update party: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PartyRepo) GetByID(ctx context.Context, id string) (*entity.Party, error) {
	return r.findOne(ctx, `SELECT `+partyColumns+` FROM parties WHERE id = $1`, id)
}

func (r *PartyRepo) GetByCode(ctx context.Context, companyID, kind, code string) (*entity.Party, error) {
	return r.findOne(ctx, `SELECT `+partyColumns+` FROM parties WHERE company_id = $1 AND kind = $2 AND code = $3`, companyID, kind, code)
}

func (r *PartyRepo) findOne(ctx context.Context, query string, args ...any) (*entity.Party, error) {
	p, err := scanParty(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get party: %w", err)
	}
	return p, nil
}

// List filtra por tipo y búsqueda en código o nombre; orden por código.
func (r *PartyRepo) List(ctx context.Context, f repository.PartyFilter) ([]*entity.Party, error) {
	query := `
		SELECT ` + partyColumns + `
		FROM parties
		WHERE company_id = $1
		  AND ($2 = '' OR kind = $2)
		  AND ($3 = '' OR code ILIKE '%' || $3 || '%' OR name ILIKE '%' || $3 || '%')
		ORDER BY code
		LIMIT $4 OFFSET $5`
	rows, err := r.q.Query(ctx, query, f.CompanyID, f.Kind, f.Search, limitArg(f.Limit), f.Offset)
	if err != nil {
		return nil, fmt.Errorf("list parties: %w", err)
	}
	defer rows.Close()
	var list []*entity.Party
	for rows.Next() {
		p, err := scanParty(rows)
		if err != nil {
			return nil, fmt.Errorf("scan party: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func (r *PartyRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM parties WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete party: %w", err)
	}
	return nil
}

// HasDocuments indica si alguna factura, devolución o comprobante referencia al tercero.
func (r *PartyRepo) HasDocuments(ctx context.Context, id string) (bool, error) {
	const query = `
		SELECT EXISTS (SELECT 1 FROM invoices WHERE party_id = $1)
		    OR EXISTS (SELECT 1 FROM returns  WHERE party_id = $1)
		    OR EXISTS (SELECT 1 FROM vouchers WHERE party_id = $1)`
	var used bool
	if err := r.q.QueryRow(ctx, query, id).Scan(&used); err != nil {
		return false, fmt.Errorf("check party documents: %w", err)
	}
	return used, nil
}
