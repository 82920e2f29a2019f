package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
)

var _ repository.Store = (*Store)(nil)

// Store ejecuta callbacks dentro de una transacción PostgreSQL y entrega repositorios sobre el pool para lecturas.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore construye el store con el pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (s *Store) Run(ctx context.Context, fn func(r repository.Repos) error) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(reposFor(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Repos repositorios sobre el pool (fuera de transacción).
func (s *Store) Repos() repository.Repos {
	return reposFor(s.pool)
}

func reposFor(q Querier) repository.Repos {
	return repository.Repos{
		Companies:         NewCompanyRepository(q),
		Users:             NewUserRepository(q),
		Parties:           NewPartyRepository(q),
		Products:          NewProductRepository(q),
		Movements:         NewStockMovementRepository(q),
		Invoices:          NewInvoiceRepository(q),
		Returns:           NewReturnRepository(q),
		Accounts:          NewTreasuryAccountRepository(q),
		TreasuryMovements: NewTreasuryMovementRepository(q),
		Vouchers:          NewVoucherRepository(q),
		Transfers:         NewTransferRepository(q),
		Sequences:         NewSequenceRepository(q),
		Reports:           NewReportRepository(q),
	}
}
