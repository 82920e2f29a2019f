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

// ── companies ──────────────────────────────────────────────────────────────────

type companyRepo struct{ a access }

func (r *companyRepo) Create(_ context.Context, c *entity.Company) error {
	return r.a.do(func(s *state) error {
		for _, existing := range s.companies {
			if existing.TaxID == c.TaxID {
				return fmt.Errorf("%w: NIT %s", domain.ErrDuplicate, c.TaxID)
			}
		}
		s.companies[c.ID] = *c
		s.track(c.ID)
		return nil
	})
}

func (r *companyRepo) GetByID(_ context.Context, id string) (*entity.Company, error) {
	var out *entity.Company
	err := r.a.do(func(s *state) error {
		if c, ok := s.companies[id]; ok {
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *companyRepo) GetByTaxID(_ context.Context, taxID string) (*entity.Company, error) {
	var out *entity.Company
	err := r.a.do(func(s *state) error {
		for _, c := range s.companies {
			if c.TaxID == taxID {
				c := c
				out = &c
			}
		}
		return nil
	})
	return out, err
}

func (r *companyRepo) List(_ context.Context, limit, offset int) ([]*entity.Company, error) {
	var out []*entity.Company
	err := r.a.do(func(s *state) error {
		for _, c := range s.companies {
			c := c
			out = append(out, &c)
		}
		sortByDate(s, out, func(c *entity.Company) time.Time { return c.CreatedAt }, func(c *entity.Company) string { return c.ID }, true)
		out = paginate(out, limit, offset)
		return nil
	})
	return out, err
}

// ── users ──────────────────────────────────────────────────────────────────────

type userRepo struct{ a access }

func (r *userRepo) Create(_ context.Context, u *entity.User) error {
	return r.a.do(func(s *state) error {
		for _, existing := range s.users {
			if existing.Email == u.Email {
				return domain.ErrEmailAlreadyExists
			}
		}
		s.users[u.ID] = *u
		s.track(u.ID)
		return nil
	})
}

func (r *userRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	var out *entity.User
	err := r.a.do(func(s *state) error {
		if u, ok := s.users[id]; ok {
			out = &u
		}
		return nil
	})
	return out, err
}

func (r *userRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	return r.find(func(u entity.User) bool { return u.Email == email })
}

func (r *userRepo) GetByEmailAndCompany(_ context.Context, email, companyID string) (*entity.User, error) {
	return r.find(func(u entity.User) bool { return u.Email == email && u.CompanyID == companyID })
}

func (r *userRepo) find(match func(entity.User) bool) (*entity.User, error) {
	var out *entity.User
	err := r.a.do(func(s *state) error {
		for _, u := range s.users {
			if match(u) {
				u := u
				out = &u
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *userRepo) ListByCompany(_ context.Context, companyID string, limit, offset int) ([]*entity.User, error) {
	var out []*entity.User
	err := r.a.do(func(s *state) error {
		for _, u := range s.users {
			if u.CompanyID == companyID {
				u := u
				out = append(out, &u)
			}
		}
		sortByDate(s, out, func(u *entity.User) time.Time { return u.CreatedAt }, func(u *entity.User) string { return u.ID }, false)
		out = paginate(out, limit, offset)
		return nil
	})
	return out, err
}

// ── parties ────────────────────────────────────────────────────────────────────

type partyRepo struct{ a access }

func partyCodeTaken(s *state, p *entity.Party) bool {
	for _, existing := range s.parties {
		if existing.ID != p.ID && existing.CompanyID == p.CompanyID && existing.Kind == p.Kind && existing.Code == p.Code {
			return true
		}
	}
	return false
}

func (r *partyRepo) Create(_ context.Context, p *entity.Party) error {
	return r.a.do(func(s *state) error {
		if partyCodeTaken(s, p) {
			return fmt.Errorf("%w: código %s", domain.ErrDuplicate, p.Code)
		}
		s.parties[p.ID] = *p
		s.track(p.ID)
		return nil
	})
}

func (r *partyRepo) Update(_ context.Context, p *entity.Party) error {
	return r.a.do(func(s *state) error {
		current, ok := s.parties[p.ID]
		if !ok {
			return domain.ErrNotFound
		}
		if partyCodeTaken(s, p) {
			return fmt.Errorf("%w: código %s", domain.ErrDuplicate, p.Code)
		}
		updated := *p
		updated.OpeningBalance = current.OpeningBalance
		updated.CreatedAt = current.CreatedAt
		s.parties[p.ID] = updated
		return nil
	})
}

func (r *partyRepo) GetByID(_ context.Context, id string) (*entity.Party, error) {
	var out *entity.Party
	err := r.a.do(func(s *state) error {
		if p, ok := s.parties[id]; ok {
			out = &p
		}
		return nil
	})
	return out, err
}

func (r *partyRepo) GetByCode(_ context.Context, companyID, kind, code string) (*entity.Party, error) {
	var out *entity.Party
	err := r.a.do(func(s *state) error {
		for _, p := range s.parties {
			if p.CompanyID == companyID && p.Kind == kind && p.Code == code {
				p := p
				out = &p
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *partyRepo) List(_ context.Context, f repository.PartyFilter) ([]*entity.Party, error) {
	var out []*entity.Party
	err := r.a.do(func(s *state) error {
		for _, p := range s.parties {
			if p.CompanyID != f.CompanyID || (f.Kind != "" && p.Kind != f.Kind) {
				continue
			}
			if f.Search != "" && !containsFold(p.Code, f.Search) && !containsFold(p.Name, f.Search) {
				continue
			}
			p := p
			out = append(out, &p)
		}
		sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
		out = paginate(out, f.Limit, f.Offset)
		return nil
	})
	return out, err
}

func (r *partyRepo) Delete(_ context.Context, id string) error {
	return r.a.do(func(s *state) error {
		delete(s.parties, id)
		return nil
	})
}

func (r *partyRepo) HasDocuments(_ context.Context, id string) (bool, error) {
	found := false
	err := r.a.do(func(s *state) error {
		for _, inv := range s.invoices {
			if inv.PartyID == id {
				found = true
				return nil
			}
		}
		for _, ret := range s.returns {
			if ret.PartyID == id {
				found = true
				return nil
			}
		}
		for _, v := range s.vouchers {
			if v.PartyID == id {
				found = true
				return nil
			}
		}
		return nil
	})
	return found, err
}

// ── products ───────────────────────────────────────────────────────────────────

type productRepo struct{ a access }

func productCodeTaken(s *state, p *entity.Product) bool {
	for _, existing := range s.products {
		if existing.ID != p.ID && existing.CompanyID == p.CompanyID && existing.Code == p.Code {
			return true
		}
	}
	return false
}

func (r *productRepo) Create(_ context.Context, p *entity.Product) error {
	return r.a.do(func(s *state) error {
		if productCodeTaken(s, p) {
			return fmt.Errorf("%w: código %s", domain.ErrDuplicate, p.Code)
		}
		s.products[p.ID] = *p
		s.track(p.ID)
		return nil
	})
}

func (r *productRepo) Update(_ context.Context, p *entity.Product) error {
	return r.a.do(func(s *state) error {
		current, ok := s.products[p.ID]
		if !ok {
			return domain.ErrNotFound
		}
		current.Name = p.Name
		current.Unit = p.Unit
		current.BuyPrice = p.BuyPrice
		current.SellPrice = p.SellPrice
		current.MinStock = p.MinStock
		current.UpdatedAt = p.UpdatedAt
		s.products[p.ID] = current
		return nil
	})
}

func (r *productRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	err := r.a.do(func(s *state) error {
		if p, ok := s.products[id]; ok {
			out = &p
		}
		return nil
	})
	return out, err
}

// GetForUpdate en memoria equivale a GetByID: Run ya serializa las transacciones.
func (r *productRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *productRepo) GetByCode(_ context.Context, companyID, code string) (*entity.Product, error) {
	var out *entity.Product
	err := r.a.do(func(s *state) error {
		for _, p := range s.products {
			if p.CompanyID == companyID && p.Code == code {
				p := p
				out = &p
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *productRepo) List(_ context.Context, f repository.ProductFilter) ([]*entity.Product, error) {
	var out []*entity.Product
	err := r.a.do(func(s *state) error {
		for _, p := range s.products {
			if p.CompanyID != f.CompanyID || (!f.IncludeInactive && !p.IsActive) {
				continue
			}
			if f.Search != "" && !containsFold(p.Code, f.Search) && !containsFold(p.Name, f.Search) {
				continue
			}
			if f.LowStockOnly && !p.IsLowStock() {
				continue
			}
			p := p
			out = append(out, &p)
		}
		sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
		out = paginate(out, f.Limit, f.Offset)
		return nil
	})
	return out, err
}

func (r *productRepo) modify(id string, fn func(p *entity.Product)) error {
	return r.a.do(func(s *state) error {
		p, ok := s.products[id]
		if !ok {
			return fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
		}
		fn(&p)
		p.UpdatedAt = time.Now()
		s.products[id] = p
		return nil
	})
}

func (r *productRepo) UpdateStock(_ context.Context, id string, stock decimal.Decimal) error {
	return r.modify(id, func(p *entity.Product) { p.CurrentStock = stock })
}

func (r *productRepo) UpdateBuyPrice(_ context.Context, id string, price decimal.Decimal) error {
	return r.modify(id, func(p *entity.Product) { p.BuyPrice = price })
}

func (r *productRepo) SetActive(_ context.Context, id string, active bool) error {
	return r.modify(id, func(p *entity.Product) { p.IsActive = active })
}
