package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/Contable-api/internal/domain"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

func copyInvoice(inv entity.Invoice) *entity.Invoice {
	items := make([]*entity.InvoiceItem, 0, len(inv.Items))
	for _, it := range inv.Items {
		it := *it
		items = append(items, &it)
	}
	inv.Items = items
	return &inv
}

func copyReturn(ret entity.Return) *entity.Return {
	items := make([]*entity.ReturnItem, 0, len(ret.Items))
	for _, it := range ret.Items {
		it := *it
		items = append(items, &it)
	}
	ret.Items = items
	return &ret
}

// ── invoices ───────────────────────────────────────────────────────────────────

type invoiceRepo struct{ a access }

func (r *invoiceRepo) Create(_ context.Context, inv *entity.Invoice) error {
	return r.a.do(func(s *state) error {
		for _, existing := range s.invoices {
			if existing.CompanyID == inv.CompanyID && existing.Kind == inv.Kind && existing.Number == inv.Number {
				return fmt.Errorf("%w: factura %s", domain.ErrDuplicate, inv.Number)
			}
		}
		s.invoices[inv.ID] = *copyInvoice(*inv)
		s.track(inv.ID)
		return nil
	})
}

func (r *invoiceRepo) GetByID(_ context.Context, id string) (*entity.Invoice, error) {
	var out *entity.Invoice
	err := r.a.do(func(s *state) error {
		if inv, ok := s.invoices[id]; ok {
			out = copyInvoice(inv)
		}
		return nil
	})
	return out, err
}

func (r *invoiceRepo) GetForUpdate(ctx context.Context, id string) (*entity.Invoice, error) {
	return r.GetByID(ctx, id)
}

func (r *invoiceRepo) GetByNumber(_ context.Context, companyID, kind, number string) (*entity.Invoice, error) {
	var out *entity.Invoice
	err := r.a.do(func(s *state) error {
		for _, inv := range s.invoices {
			if inv.CompanyID == companyID && inv.Kind == kind && inv.Number == number {
				out = copyInvoice(inv)
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *invoiceRepo) List(_ context.Context, f repository.InvoiceFilter) ([]*entity.Invoice, error) {
	var out []*entity.Invoice
	err := r.a.do(func(s *state) error {
		for _, inv := range s.invoices {
			if inv.CompanyID != f.CompanyID || (f.Kind != "" && inv.Kind != f.Kind) {
				continue
			}
			if (f.PartyID != "" && inv.PartyID != f.PartyID) || !inRange(inv.Date, f.From, f.To) {
				continue
			}
			inv := inv
			inv.Items = nil
			out = append(out, &inv)
		}
		sortByDate(s, out, func(i *entity.Invoice) time.Time { return i.Date }, func(i *entity.Invoice) string { return i.ID }, true)
		out = paginate(out, f.Limit, f.Offset)
		return nil
	})
	return out, err
}

func (r *invoiceRepo) Delete(_ context.Context, id string) error {
	return r.a.do(func(s *state) error {
		delete(s.invoices, id)
		return nil
	})
}

// ── returns ────────────────────────────────────────────────────────────────────

type returnRepo struct{ a access }

func (r *returnRepo) Create(_ context.Context, ret *entity.Return) error {
	return r.a.do(func(s *state) error {
		for _, existing := range s.returns {
			if existing.CompanyID == ret.CompanyID && existing.Kind == ret.Kind && existing.Number == ret.Number {
				return fmt.Errorf("%w: devolución %s", domain.ErrDuplicate, ret.Number)
			}
		}
		s.returns[ret.ID] = *copyReturn(*ret)
		s.track(ret.ID)
		return nil
	})
}

func (r *returnRepo) GetByID(_ context.Context, id string) (*entity.Return, error) {
	var out *entity.Return
	err := r.a.do(func(s *state) error {
		if ret, ok := s.returns[id]; ok {
			out = copyReturn(ret)
		}
		return nil
	})
	return out, err
}

func (r *returnRepo) GetByNumber(_ context.Context, companyID, kind, number string) (*entity.Return, error) {
	var out *entity.Return
	err := r.a.do(func(s *state) error {
		for _, ret := range s.returns {
			if ret.CompanyID == companyID && ret.Kind == kind && ret.Number == number {
				out = copyReturn(ret)
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *returnRepo) List(_ context.Context, f repository.ReturnFilter) ([]*entity.Return, error) {
	var out []*entity.Return
	err := r.a.do(func(s *state) error {
		for _, ret := range s.returns {
			if ret.CompanyID != f.CompanyID || (f.Kind != "" && ret.Kind != f.Kind) {
				continue
			}
			if (f.InvoiceID != "" && ret.InvoiceID != f.InvoiceID) || (f.PartyID != "" && ret.PartyID != f.PartyID) {
				continue
			}
			out = append(out, copyReturn(ret))
		}
		sortByDate(s, out, func(x *entity.Return) time.Time { return x.Date }, func(x *entity.Return) string { return x.ID }, true)
		out = paginate(out, f.Limit, f.Offset)
		return nil
	})
	return out, err
}

func (r *returnRepo) Delete(_ context.Context, id string) error {
	return r.a.do(func(s *state) error {
		delete(s.returns, id)
		return nil
	})
}

func (r *returnRepo) ReturnedQuantities(_ context.Context, invoiceID string) (map[string]decimal.Decimal, error) {
	out := map[string]decimal.Decimal{}
	err := r.a.do(func(s *state) error {
		for _, ret := range s.returns {
			if ret.InvoiceID != invoiceID {
				continue
			}
			for _, it := range ret.Items {
				out[it.InvoiceItemID] = out[it.InvoiceItemID].Add(it.Quantity)
			}
		}
		return nil
	})
	return out, err
}

func (r *returnRepo) CountByInvoice(_ context.Context, invoiceID string) (int, error) {
	n := 0
	err := r.a.do(func(s *state) error {
		for _, ret := range s.returns {
			if ret.InvoiceID == invoiceID {
				n++
			}
		}
		return nil
	})
	return n, err
}

// ── treasury accounts ─────────────────────────────────────────────────────────

type accountRepo struct{ a access }

func accountNameTaken(s *state, acc *entity.TreasuryAccount) bool {
	for _, existing := range s.accounts {
		if existing.ID != acc.ID && existing.CompanyID == acc.CompanyID && existing.Kind == acc.Kind && existing.Name == acc.Name {
			return true
		}
	}
	return false
}

func (r *accountRepo) Create(_ context.Context, acc *entity.TreasuryAccount) error {
	return r.a.do(func(s *state) error {
		if accountNameTaken(s, acc) {
			return fmt.Errorf("%w: cuenta %s", domain.ErrDuplicate, acc.Name)
		}
		s.accounts[acc.ID] = *acc
		s.track(acc.ID)
		return nil
	})
}

// Update modifica solo los datos descriptivos; saldo y estado tienen sus propios métodos.
func (r *accountRepo) Update(_ context.Context, acc *entity.TreasuryAccount) error {
	return r.a.do(func(s *state) error {
		current, ok := s.accounts[acc.ID]
		if !ok {
			return domain.ErrNotFound
		}
		if accountNameTaken(s, acc) {
			return fmt.Errorf("%w: cuenta %s", domain.ErrDuplicate, acc.Name)
		}
		current.Name = acc.Name
		current.BankName = acc.BankName
		current.AccountNumber = acc.AccountNumber
		current.UpdatedAt = acc.UpdatedAt
		s.accounts[acc.ID] = current
		return nil
	})
}

func (r *accountRepo) GetByID(_ context.Context, id string) (*entity.TreasuryAccount, error) {
	var out *entity.TreasuryAccount
	err := r.a.do(func(s *state) error {
		if acc, ok := s.accounts[id]; ok {
			out = &acc
		}
		return nil
	})
	return out, err
}

func (r *accountRepo) GetForUpdate(ctx context.Context, id string) (*entity.TreasuryAccount, error) {
	return r.GetByID(ctx, id)
}

func (r *accountRepo) GetByName(_ context.Context, companyID, kind, name string) (*entity.TreasuryAccount, error) {
	var out *entity.TreasuryAccount
	err := r.a.do(func(s *state) error {
		for _, acc := range s.accounts {
			if acc.CompanyID == companyID && acc.Kind == kind && acc.Name == name {
				acc := acc
				out = &acc
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *accountRepo) List(_ context.Context, companyID, kind string, includeInactive bool) ([]*entity.TreasuryAccount, error) {
	var out []*entity.TreasuryAccount
	err := r.a.do(func(s *state) error {
		for _, acc := range s.accounts {
			if acc.CompanyID != companyID || (kind != "" && acc.Kind != kind) || (!includeInactive && !acc.IsActive) {
				continue
			}
			acc := acc
			out = append(out, &acc)
		}
		sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
		return nil
	})
	return out, err
}

func (r *accountRepo) modify(id string, fn func(acc *entity.TreasuryAccount)) error {
	return r.a.do(func(s *state) error {
		acc, ok := s.accounts[id]
		if !ok {
			return fmt.Errorf("%w: cuenta %s", domain.ErrNotFound, id)
		}
		fn(&acc)
		acc.UpdatedAt = time.Now()
		s.accounts[id] = acc
		return nil
	})
}

func (r *accountRepo) UpdateBalance(_ context.Context, id string, balance decimal.Decimal) error {
	return r.modify(id, func(acc *entity.TreasuryAccount) { acc.Balance = balance })
}

func (r *accountRepo) SetActive(_ context.Context, id string, active bool) error {
	return r.modify(id, func(acc *entity.TreasuryAccount) { acc.IsActive = active })
}

// ── vouchers ───────────────────────────────────────────────────────────────────

type voucherRepo struct{ a access }

func (r *voucherRepo) Create(_ context.Context, v *entity.Voucher) error {
	return r.a.do(func(s *state) error {
		for _, existing := range s.vouchers {
			if existing.CompanyID == v.CompanyID && existing.Kind == v.Kind && existing.Number == v.Number {
				return fmt.Errorf("%w: comprobante %s", domain.ErrDuplicate, v.Number)
			}
		}
		s.vouchers[v.ID] = *v
		s.track(v.ID)
		return nil
	})
}

func (r *voucherRepo) GetByID(_ context.Context, id string) (*entity.Voucher, error) {
	var out *entity.Voucher
	err := r.a.do(func(s *state) error {
		if v, ok := s.vouchers[id]; ok {
			out = &v
		}
		return nil
	})
	return out, err
}

func (r *voucherRepo) GetByNumber(_ context.Context, companyID, kind, number string) (*entity.Voucher, error) {
	var out *entity.Voucher
	err := r.a.do(func(s *state) error {
		for _, v := range s.vouchers {
			if v.CompanyID == companyID && v.Kind == kind && v.Number == number {
				v := v
				out = &v
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *voucherRepo) List(_ context.Context, f repository.VoucherFilter) ([]*entity.Voucher, error) {
	var out []*entity.Voucher
	err := r.a.do(func(s *state) error {
		for _, v := range s.vouchers {
			if v.CompanyID != f.CompanyID || (f.Kind != "" && v.Kind != f.Kind) {
				continue
			}
			if (f.PartyID != "" && v.PartyID != f.PartyID) || (f.AccountID != "" && v.AccountID != f.AccountID) {
				continue
			}
			if !inRange(v.Date, f.From, f.To) {
				continue
			}
			v := v
			out = append(out, &v)
		}
		sortByDate(s, out, func(v *entity.Voucher) time.Time { return v.Date }, func(v *entity.Voucher) string { return v.ID }, true)
		out = paginate(out, f.Limit, f.Offset)
		return nil
	})
	return out, err
}

func (r *voucherRepo) ListByInvoice(_ context.Context, invoiceID string) ([]*entity.Voucher, error) {
	var out []*entity.Voucher
	err := r.a.do(func(s *state) error {
		for _, v := range s.vouchers {
			if v.InvoiceID == invoiceID {
				v := v
				out = append(out, &v)
			}
		}
		sortByDate(s, out, func(v *entity.Voucher) time.Time { return v.Date }, func(v *entity.Voucher) string { return v.ID }, false)
		return nil
	})
	return out, err
}

func (r *voucherRepo) Delete(_ context.Context, id string) error {
	return r.a.do(func(s *state) error {
		delete(s.vouchers, id)
		return nil
	})
}

// ── transfers ──────────────────────────────────────────────────────────────────

type transferRepo struct{ a access }

func (r *transferRepo) Create(_ context.Context, t *entity.Transfer) error {
	return r.a.do(func(s *state) error {
		s.transfers[t.ID] = *t
		s.track(t.ID)
		return nil
	})
}

func (r *transferRepo) GetByID(_ context.Context, id string) (*entity.Transfer, error) {
	var out *entity.Transfer
	err := r.a.do(func(s *state) error {
		if t, ok := s.transfers[id]; ok {
			out = &t
		}
		return nil
	})
	return out, err
}

func (r *transferRepo) List(_ context.Context, companyID string, limit, offset int) ([]*entity.Transfer, error) {
	var out []*entity.Transfer
	err := r.a.do(func(s *state) error {
		for _, t := range s.transfers {
			if t.CompanyID == companyID {
				t := t
				out = append(out, &t)
			}
		}
		sortByDate(s, out, func(t *entity.Transfer) time.Time { return t.Date }, func(t *entity.Transfer) string { return t.ID }, true)
		out = paginate(out, limit, offset)
		return nil
	})
	return out, err
}

func (r *transferRepo) Delete(_ context.Context, id string) error {
	return r.a.do(func(s *state) error {
		delete(s.transfers, id)
		return nil
	})
}
