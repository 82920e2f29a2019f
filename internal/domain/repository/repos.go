package repository

import "context"

// Repos agrupa los repositorios atados a una misma conexión o transacción.
// Dentro de TxRunner.Run todos comparten la transacción: o se confirman todas las escrituras o ninguna.
type Repos struct {
	Companies         CompanyRepository
	Users             UserRepository
	Parties           PartyRepository
	Products          ProductRepository
	Movements         StockMovementRepository
	Invoices          InvoiceRepository
	Returns           ReturnRepository
	Accounts          TreasuryAccountRepository
	TreasuryMovements TreasuryMovementRepository
	Vouchers          VoucherRepository
	Transfers         TransferRepository
	Sequences         SequenceRepository
	Reports           ReportRepository
}

// TxRunner ejecuta fn dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn retorna error se hace Rollback; si no, Commit.
type TxRunner interface {
	Run(ctx context.Context, fn func(r Repos) error) error
}

// Store es el punto de acceso a persistencia: repositorios fuera de transacción (lecturas)
// y el runner transaccional para las escrituras.
type Store interface {
	TxRunner
	Repos() Repos
}
