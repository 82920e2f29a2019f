package memory

import (
	"context"
	"time"

	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// ── stock movements ────────────────────────────────────────────────────────────

type movementRepo struct{ a access }

func (r *movementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	return r.a.do(func(s *state) error {
		s.movements[m.ID] = *m
		s.track(m.ID)
		return nil
	})
}

func (r *movementRepo) GetByID(_ context.Context, id string) (*entity.StockMovement, error) {
	var out *entity.StockMovement
	err := r.a.do(func(s *state) error {
		if m, ok := s.movements[id]; ok {
			out = &m
		}
		return nil
	})
	return out, err
}

func (r *movementRepo) ListByDocument(_ context.Context, documentType, documentID string) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	err := r.a.do(func(s *state) error {
		for _, m := range s.movements {
			if m.DocumentType == documentType && m.DocumentID == documentID {
				m := m
				out = append(out, &m)
			}
		}
		sortByDate(s, out, movementDate, movementID, false)
		return nil
	})
	return out, err
}

func (r *movementRepo) DeleteByDocument(_ context.Context, documentType, documentID string) error {
	return r.a.do(func(s *state) error {
		for id, m := range s.movements {
			if m.DocumentType == documentType && m.DocumentID == documentID {
				delete(s.movements, id)
			}
		}
		return nil
	})
}

func (r *movementRepo) List(_ context.Context, f repository.MovementFilter) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	err := r.a.do(func(s *state) error {
		for _, m := range s.movements {
			if m.CompanyID != f.CompanyID || (f.ProductID != "" && m.ProductID != f.ProductID) {
				continue
			}
			if (f.Type != "" && m.Type != f.Type) || !inRange(m.Date, f.From, f.To) {
				continue
			}
			m := m
			out = append(out, &m)
		}
		sortByDate(s, out, movementDate, movementID, true)
		out = paginate(out, f.Limit, f.Offset)
		return nil
	})
	return out, err
}

func movementDate(m *entity.StockMovement) time.Time { return m.Date }
func movementID(m *entity.StockMovement) string      { return m.ID }

// ── treasury movements ─────────────────────────────────────────────────────────

type treasuryMovementRepo struct{ a access }

func (r *treasuryMovementRepo) Create(_ context.Context, m *entity.TreasuryMovement) error {
	return r.a.do(func(s *state) error {
		s.treasury[m.ID] = *m
		s.track(m.ID)
		return nil
	})
}

func (r *treasuryMovementRepo) ListBySource(_ context.Context, sourceType, sourceID string) ([]*entity.TreasuryMovement, error) {
	var out []*entity.TreasuryMovement
	err := r.a.do(func(s *state) error {
		for _, m := range s.treasury {
			if m.SourceType == sourceType && m.SourceID == sourceID {
				m := m
				out = append(out, &m)
			}
		}
		sortByDate(s, out, treasuryDate, treasuryID, false)
		return nil
	})
	return out, err
}

func (r *treasuryMovementRepo) DeleteBySource(_ context.Context, sourceType, sourceID string) error {
	return r.a.do(func(s *state) error {
		for id, m := range s.treasury {
			if m.SourceType == sourceType && m.SourceID == sourceID {
				delete(s.treasury, id)
			}
		}
		return nil
	})
}

// List en orden cronológico ascendente, como lo consume el libro de la cuenta.
func (r *treasuryMovementRepo) List(_ context.Context, f repository.TreasuryMovementFilter) ([]*entity.TreasuryMovement, error) {
	var out []*entity.TreasuryMovement
	err := r.a.do(func(s *state) error {
		for _, m := range s.treasury {
			if m.CompanyID != f.CompanyID || (f.AccountID != "" && m.AccountID != f.AccountID) {
				continue
			}
			if !inRange(m.Date, f.From, f.To) {
				continue
			}
			m := m
			out = append(out, &m)
		}
		sortByDate(s, out, treasuryDate, treasuryID, false)
		out = paginate(out, f.Limit, f.Offset)
		return nil
	})
	return out, err
}

func (r *treasuryMovementRepo) SumBefore(_ context.Context, accountID string, before time.Time) (decimal.Decimal, error) {
	sum := decimal.Zero
	err := r.a.do(func(s *state) error {
		for _, m := range s.treasury {
			if m.AccountID == accountID && m.Date.Before(before) {
				sum = sum.Add(m.Amount)
			}
		}
		return nil
	})
	return sum, err
}

func treasuryDate(m *entity.TreasuryMovement) time.Time { return m.Date }
func treasuryID(m *entity.TreasuryMovement) string      { return m.ID }

// ── sequences ──────────────────────────────────────────────────────────────────

type sequenceRepo struct{ a access }

func (r *sequenceRepo) Next(_ context.Context, companyID, key string) (int64, error) {
	var n int64
	err := r.a.do(func(s *state) error {
		k := seqKey(companyID, key)
		s.sequences[k]++
		n = s.sequences[k]
		return nil
	})
	return n, err
}
