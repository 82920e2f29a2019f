package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

type reportRepo struct{ a access }

type rankedEntry struct {
	repository.PartyEntry
	order int64
	sub   int // 1 para el reembolso, que va justo después de su devolución
}

// partyEntries arma los documentos que afectan el saldo de los terceros que cumplen match.
func partyEntries(s *state, match func(partyID string) bool) map[string][]rankedEntry {
	out := map[string][]rankedEntry{}
	add := func(partyID string, e rankedEntry) {
		out[partyID] = append(out[partyID], e)
	}
	for _, inv := range s.invoices {
		if !match(inv.PartyID) {
			continue
		}
		add(inv.PartyID, rankedEntry{
			PartyEntry: repository.PartyEntry{Date: inv.Date, DocumentType: inv.DocumentType(), DocumentID: inv.ID, Number: inv.Number, Effect: inv.Total},
			order:      s.order[inv.ID],
		})
	}
	for _, ret := range s.returns {
		if !match(ret.PartyID) {
			continue
		}
		add(ret.PartyID, rankedEntry{
			PartyEntry: repository.PartyEntry{Date: ret.Date, DocumentType: ret.DocumentType(), DocumentID: ret.ID, Number: ret.Number, Effect: ret.Total.Neg()},
			order:      s.order[ret.ID],
		})
		if ret.RefundAmount.IsPositive() {
			docType := entity.DocumentSalesRefund
			if ret.Kind == entity.InvoiceKindPurchase {
				docType = entity.DocumentPurchaseRefund
			}
			add(ret.PartyID, rankedEntry{
				PartyEntry: repository.PartyEntry{Date: ret.Date, DocumentType: docType, DocumentID: ret.ID, Number: ret.Number, Effect: ret.RefundAmount},
				order:      s.order[ret.ID],
				sub:        1,
			})
		}
	}
	for _, v := range s.vouchers {
		if !match(v.PartyID) {
			continue
		}
		docType := entity.DocumentReceipt
		if v.Kind == entity.VoucherKindPayment {
			docType = entity.DocumentPayment
		}
		add(v.PartyID, rankedEntry{
			PartyEntry: repository.PartyEntry{Date: v.Date, DocumentType: docType, DocumentID: v.ID, Number: v.Number, Effect: v.Amount.Neg()},
			order:      s.order[v.ID],
		})
	}
	return out
}

func (r *reportRepo) PartyBalances(_ context.Context, companyID, kind string, before *time.Time) (map[string]decimal.Decimal, error) {
	out := map[string]decimal.Decimal{}
	err := r.a.do(func(s *state) error {
		match := func(partyID string) bool {
			p, ok := s.parties[partyID]
			return ok && p.CompanyID == companyID && (kind == "" || p.Kind == kind)
		}
		for partyID, entries := range partyEntries(s, match) {
			for _, e := range entries {
				if before != nil && !e.Date.Before(*before) {
					continue
				}
				out[partyID] = out[partyID].Add(e.Effect)
			}
		}
		return nil
	})
	return out, err
}

func (r *reportRepo) PartyEntries(_ context.Context, partyID string, from, to *time.Time) ([]repository.PartyEntry, error) {
	var out []repository.PartyEntry
	err := r.a.do(func(s *state) error {
		ranked := partyEntries(s, func(id string) bool { return id == partyID })[partyID]
		sort.SliceStable(ranked, func(i, j int) bool {
			a, b := ranked[i], ranked[j]
			if !a.Date.Equal(b.Date) {
				return a.Date.Before(b.Date)
			}
			if a.order != b.order {
				return a.order < b.order
			}
			return a.sub < b.sub
		})
		out = make([]repository.PartyEntry, 0, len(ranked))
		for _, e := range ranked {
			if inRange(e.Date, from, to) {
				out = append(out, e.PartyEntry)
			}
		}
		return nil
	})
	return out, err
}

func (r *reportRepo) InvoiceTotal(_ context.Context, companyID, kind string, from, to time.Time) (decimal.Decimal, error) {
	sum := decimal.Zero
	err := r.a.do(func(s *state) error {
		for _, inv := range s.invoices {
			if inv.CompanyID == companyID && inv.Kind == kind && inRange(inv.Date, &from, &to) {
				sum = sum.Add(inv.Total)
			}
		}
		return nil
	})
	return sum, err
}

func (r *reportRepo) ReturnTotal(_ context.Context, companyID, kind string, from, to time.Time) (decimal.Decimal, error) {
	sum := decimal.Zero
	err := r.a.do(func(s *state) error {
		for _, ret := range s.returns {
			if ret.CompanyID == companyID && ret.Kind == kind && inRange(ret.Date, &from, &to) {
				sum = sum.Add(ret.Total)
			}
		}
		return nil
	})
	return sum, err
}

func (r *reportRepo) AccountBalanceTotal(_ context.Context, companyID, kind string) (decimal.Decimal, error) {
	sum := decimal.Zero
	err := r.a.do(func(s *state) error {
		for _, acc := range s.accounts {
			if acc.CompanyID == companyID && acc.Kind == kind && acc.IsActive {
				sum = sum.Add(acc.Balance)
			}
		}
		return nil
	})
	return sum, err
}

func (r *reportRepo) OpeningBalanceTotal(_ context.Context, companyID, kind string) (decimal.Decimal, error) {
	sum := decimal.Zero
	err := r.a.do(func(s *state) error {
		for _, p := range s.parties {
			if p.CompanyID == companyID && p.Kind == kind {
				sum = sum.Add(p.OpeningBalance)
			}
		}
		return nil
	})
	return sum, err
}

func (r *reportRepo) LowStockCount(_ context.Context, companyID string) (int, error) {
	n := 0
	err := r.a.do(func(s *state) error {
		for _, p := range s.products {
			if p.CompanyID == companyID && p.IsActive && p.IsLowStock() {
				n++
			}
		}
		return nil
	})
	return n, err
}

// TopProducts más vendidos por cantidad facturada en el rango (sin descontar devoluciones).
func (r *reportRepo) TopProducts(_ context.Context, companyID string, from, to time.Time, limit int) ([]repository.TopProduct, error) {
	var out []repository.TopProduct
	err := r.a.do(func(s *state) error {
		byProduct := map[string]*repository.TopProduct{}
		for _, inv := range s.invoices {
			if inv.CompanyID != companyID || inv.Kind != entity.InvoiceKindSales || !inRange(inv.Date, &from, &to) {
				continue
			}
			for _, it := range inv.Items {
				tp, ok := byProduct[it.ProductID]
				if !ok {
					p := s.products[it.ProductID]
					tp = &repository.TopProduct{ProductID: it.ProductID, Code: p.Code, Name: p.Name, Quantity: decimal.Zero, Revenue: decimal.Zero}
					byProduct[it.ProductID] = tp
				}
				tp.Quantity = tp.Quantity.Add(it.Quantity)
				tp.Revenue = tp.Revenue.Add(it.Subtotal)
			}
		}
		for _, tp := range byProduct {
			out = append(out, *tp)
		}
		sort.Slice(out, func(i, j int) bool {
			if !out[i].Quantity.Equal(out[j].Quantity) {
				return out[i].Quantity.GreaterThan(out[j].Quantity)
			}
			return out[i].Code < out[j].Code
		})
		if limit > 0 && len(out) > limit {
			out = out[:limit]
		}
		return nil
	})
	return out, err
}

func (r *reportRepo) StockDiscrepancies(_ context.Context, companyID string) ([]repository.StockDiscrepancy, error) {
	var out []repository.StockDiscrepancy
	err := r.a.do(func(s *state) error {
		ledger := map[string]decimal.Decimal{}
		for _, m := range s.movements {
			if m.CompanyID == companyID {
				ledger[m.ProductID] = ledger[m.ProductID].Add(m.Quantity)
			}
		}
		for _, p := range s.products {
			if p.CompanyID != companyID {
				continue
			}
			if expected := ledger[p.ID]; !expected.Equal(p.CurrentStock) {
				out = append(out, repository.StockDiscrepancy{
					ProductID: p.ID, Code: p.Code, Name: p.Name, CurrentStock: p.CurrentStock, LedgerStock: expected,
				})
			}
		}
		sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
		return nil
	})
	return out, err
}

func (r *reportRepo) AccountDiscrepancies(_ context.Context, companyID string) ([]repository.AccountDiscrepancy, error) {
	var out []repository.AccountDiscrepancy
	err := r.a.do(func(s *state) error {
		moved := map[string]decimal.Decimal{}
		for _, m := range s.treasury {
			if m.CompanyID == companyID {
				moved[m.AccountID] = moved[m.AccountID].Add(m.Amount)
			}
		}
		for _, acc := range s.accounts {
			if acc.CompanyID != companyID {
				continue
			}
			if expected := acc.InitialBalance.Add(moved[acc.ID]); !expected.Equal(acc.Balance) {
				out = append(out, repository.AccountDiscrepancy{
					AccountID: acc.ID, Name: acc.Name, Balance: acc.Balance, Expected: expected,
				})
			}
		}
		sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
		return nil
	})
	return out, err
}
