// Package memory implementa los puertos de persistencia en memoria.
// Run trabaja sobre una copia del estado y la publica solo si fn no retorna error,
// con lo que ofrece la misma atomicidad que una transacción de BD.
// Se usa en los tests de casos de uso y con STORAGE_DRIVER=memory.
package memory

import (
	"context"
	"maps"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
)

var _ repository.Store = (*Store)(nil)

type state struct {
	companies map[string]entity.Company
	users     map[string]entity.User
	parties   map[string]entity.Party
	products  map[string]entity.Product
	movements map[string]entity.StockMovement
	invoices  map[string]entity.Invoice
	returns   map[string]entity.Return
	accounts  map[string]entity.TreasuryAccount
	treasury  map[string]entity.TreasuryMovement
	vouchers  map[string]entity.Voucher
	transfers map[string]entity.Transfer
	sequences map[string]int64
	order     map[string]int64 // orden de inserción por ID, desempata fechas iguales
	counter   int64
}

func newState() *state {
	return &state{
		companies: map[string]entity.Company{},
		users:     map[string]entity.User{},
		parties:   map[string]entity.Party{},
		products:  map[string]entity.Product{},
		movements: map[string]entity.StockMovement{},
		invoices:  map[string]entity.Invoice{},
		returns:   map[string]entity.Return{},
		accounts:  map[string]entity.TreasuryAccount{},
		treasury:  map[string]entity.TreasuryMovement{},
		vouchers:  map[string]entity.Voucher{},
		transfers: map[string]entity.Transfer{},
		sequences: map[string]int64{},
		order:     map[string]int64{},
	}
}

// clone copia los mapas. Los valores guardados nunca se modifican en sitio, así que basta una copia superficial.
func (s *state) clone() *state {
	return &state{
		companies: maps.Clone(s.companies),
		users:     maps.Clone(s.users),
		parties:   maps.Clone(s.parties),
		products:  maps.Clone(s.products),
		movements: maps.Clone(s.movements),
		invoices:  maps.Clone(s.invoices),
		returns:   maps.Clone(s.returns),
		accounts:  maps.Clone(s.accounts),
		treasury:  maps.Clone(s.treasury),
		vouchers:  maps.Clone(s.vouchers),
		transfers: maps.Clone(s.transfers),
		sequences: maps.Clone(s.sequences),
		order:     maps.Clone(s.order),
		counter:   s.counter,
	}
}

func (s *state) track(id string) {
	s.counter++
	s.order[id] = s.counter
}

// access da a un repositorio acceso al estado: directo dentro de Run, con el mutex fuera de él.
type access interface {
	do(fn func(s *state) error) error
}

type txAccess struct{ s *state }

func (a txAccess) do(fn func(s *state) error) error { return fn(a.s) }

type storeAccess struct{ st *Store }

func (a storeAccess) do(fn func(s *state) error) error {
	a.st.mu.Lock()
	defer a.st.mu.Unlock()
	return fn(a.st.state)
}

// Store almacén en memoria. Seguro para uso concurrente; las transacciones se serializan.
type Store struct {
	mu    sync.Mutex
	state *state
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{state: newState()}
}

// Run ejecuta fn sobre una copia del estado; si fn retorna nil la copia reemplaza al estado (Commit),
// si no se descarta (Rollback). fn no debe usar los repositorios de Repos() (bloquearía el mutex).
func (st *Store) Run(ctx context.Context, fn func(r repository.Repos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	snapshot := st.state.clone()
	if err := fn(reposFor(txAccess{s: snapshot})); err != nil {
		return err
	}
	st.state = snapshot
	return nil
}

// Repos devuelve repositorios fuera de transacción; cada llamada es atómica por sí sola.
func (st *Store) Repos() repository.Repos {
	return reposFor(storeAccess{st: st})
}

func reposFor(a access) repository.Repos {
	return repository.Repos{
		Companies:         &companyRepo{a},
		Users:             &userRepo{a},
		Parties:           &partyRepo{a},
		Products:          &productRepo{a},
		Movements:         &movementRepo{a},
		Invoices:          &invoiceRepo{a},
		Returns:           &returnRepo{a},
		Accounts:          &accountRepo{a},
		TreasuryMovements: &treasuryMovementRepo{a},
		Vouchers:          &voucherRepo{a},
		Transfers:         &transferRepo{a},
		Sequences:         &sequenceRepo{a},
		Reports:           &reportRepo{a},
	}
}

// ── helpers ────────────────────────────────────────────────────────────────────

func paginate[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return []T{}
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}

func inRange(t time.Time, from, to *time.Time) bool {
	if from != nil && t.Before(*from) {
		return false
	}
	if to != nil && t.After(*to) {
		return false
	}
	return true
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

// sortByDate ordena por fecha y, a igual fecha, por orden de inserción. desc invierte ambos criterios.
func sortByDate[T any](s *state, list []T, date func(T) time.Time, id func(T) string, desc bool) {
	sort.SliceStable(list, func(i, j int) bool {
		di, dj := date(list[i]), date(list[j])
		if !di.Equal(dj) {
			if desc {
				return di.After(dj)
			}
			return di.Before(dj)
		}
		if desc {
			return s.order[id(list[i])] > s.order[id(list[j])]
		}
		return s.order[id(list[i])] < s.order[id(list[j])]
	})
}

func seqKey(companyID, key string) string { return companyID + "|" + key }
