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

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, company_id, code, name, unit, buy_price, sell_price, min_stock, current_stock, is_active, created_at, updated_at`

func scanProduct(row rowScanner) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(&p.ID, &p.CompanyID, &p.Code, &p.Name, &p.Unit, &p.BuyPrice, &p.SellPrice,
		&p.MinStock, &p.CurrentStock, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.CompanyID, p.Code, p.Name, p.Unit, p.BuyPrice, p.SellPrice,
		p.MinStock, p.CurrentStock, p.IsActive, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: código %s", domain.ErrDuplicate, p.Code)
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// Update actualiza datos maestros. Stock y costo solo cambian vía movimientos.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE products
		SET name = $2, unit = $3, buy_price = $4, sell_price = $5, min_stock = $6, updated_at = $7
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, p.ID, p.Name, p.Unit, p.BuyPrice, p.SellPrice, p.MinStock, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	return r.findOne(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
}

// GetForUpdate obtiene el producto bloqueando la fila hasta el fin de la transacción.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.findOne(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1 FOR UPDATE`, id)
}

func (r *ProductRepo) GetByCode(ctx context.Context, companyID, code string) (*entity.Product, error) {
	return r.findOne(ctx, `SELECT `+productColumns+` FROM products WHERE company_id = $1 AND code = $2`, companyID, code)
}

func (r *ProductRepo) findOne(ctx context.Context, query string, args ...any) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// List productos de la empresa ordenados por código.
func (r *ProductRepo) List(ctx context.Context, f repository.ProductFilter) ([]*entity.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE company_id = $1
		  AND ($2 OR is_active)
		  AND ($3 = '' OR code ILIKE '%' || $3 || '%' OR name ILIKE '%' || $3 || '%')
		  AND (NOT $4 OR (min_stock > 0 AND current_stock <= min_stock))
		ORDER BY code
		LIMIT $5 OFFSET $6`
	rows, err := r.q.Query(ctx, query, f.CompanyID, f.IncludeInactive, f.Search, f.LowStockOnly, limitArg(f.Limit), f.Offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func (r *ProductRepo) UpdateStock(ctx context.Context, id string, stock decimal.Decimal) error {
	return r.set(ctx, "current_stock", id, stock)
}

// UpdateBuyPrice guarda el costo promedio ponderado recalculado.
func (r *ProductRepo) UpdateBuyPrice(ctx context.Context, id string, price decimal.Decimal) error {
	return r.set(ctx, "buy_price", id, price)
}

func (r *ProductRepo) SetActive(ctx context.Context, id string, active bool) error {
	return r.set(ctx, "is_active", id, active)
}

// set actualiza una columna fija del producto; column nunca proviene de la entrada del usuario.
func (r *ProductRepo) set(ctx context.Context, column, id string, value any) error {
	query := fmt.Sprintf(`UPDATE products SET %s = $2, updated_at = $3 WHERE id = $1`, column)
	tag, err := r.q.Exec(ctx, query, id, value, time.Now())
	if err != nil {
		return fmt.Errorf("update product %s: %w", column, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
	}
	return nil
}
