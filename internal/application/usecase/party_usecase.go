package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Contable-api/internal/application/dto"
	"github.com/jhoicas/Contable-api/internal/domain"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
	"github.com/jhoicas/Contable-api/pkg/taxid"
	"github.com/shopspring/decimal"
)

// PartyUseCase CRUD de clientes y proveedores con saldo derivado de sus documentos.
type PartyUseCase struct {
	store repository.Store
}

// NewPartyUseCase construye el caso de uso.
func NewPartyUseCase(store repository.Store) *PartyUseCase {
	return &PartyUseCase{store: store}
}

// CreateCustomer crea un cliente.
func (uc *PartyUseCase) CreateCustomer(ctx context.Context, companyID string, in dto.CreatePartyRequest) (*dto.PartyResponse, error) {
	return uc.create(ctx, companyID, entity.PartyKindCustomer, in)
}

// CreateSupplier crea un proveedor.
func (uc *PartyUseCase) CreateSupplier(ctx context.Context, companyID string, in dto.CreatePartyRequest) (*dto.PartyResponse, error) {
	return uc.create(ctx, companyID, entity.PartyKindSupplier, in)
}

func (uc *PartyUseCase) create(ctx context.Context, companyID, kind string, in dto.CreatePartyRequest) (*dto.PartyResponse, error) {
	code := strings.TrimSpace(in.Code)
	name := strings.TrimSpace(in.Name)
	if code == "" || name == "" {
		return nil, fmt.Errorf("%w: código y nombre son obligatorios", domain.ErrInvalidInput)
	}
	taxID := taxid.Normalize(in.TaxID)
	if err := taxid.Validate(taxID); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	repos := uc.store.Repos()
	existing, err := repos.Parties.GetByCode(ctx, companyID, kind, code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: el código %s ya está en uso", domain.ErrDuplicate, code)
	}
	now := time.Now()
	party := &entity.Party{
		ID:             uuid.New().String(),
		CompanyID:      companyID,
		Kind:           kind,
		Code:           code,
		Name:           name,
		TaxID:          taxID,
		Phone:          in.Phone,
		Email:          in.Email,
		Address:        in.Address,
		OpeningBalance: in.OpeningBalance,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := repos.Parties.Create(ctx, party); err != nil {
		return nil, err
	}
	return toPartyResponse(party, party.OpeningBalance), nil
}

// Get obtiene un tercero del tipo indicado con su saldo.
func (uc *PartyUseCase) Get(ctx context.Context, companyID, kind, id string) (*dto.PartyResponse, error) {
	repos := uc.store.Repos()
	party, err := loadParty(ctx, repos, companyID, kind, id)
	if err != nil {
		return nil, err
	}
	balance, err := PartyBalance(ctx, repos, party, nil)
	if err != nil {
		return nil, err
	}
	return toPartyResponse(party, balance), nil
}

// List lista terceros del tipo indicado con su saldo.
func (uc *PartyUseCase) List(ctx context.Context, companyID, kind, search string, page dto.PageRequest) (*dto.PartyListResponse, error) {
	page.DefaultPage()
	repos := uc.store.Repos()
	list, err := repos.Parties.List(ctx, repository.PartyFilter{
		CompanyID: companyID,
		Kind:      kind,
		Search:    search,
		Limit:     page.Limit,
		Offset:    page.Offset,
	})
	if err != nil {
		return nil, err
	}
	balances, err := repos.Reports.PartyBalances(ctx, companyID, kind, nil)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PartyResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toPartyResponse(p, p.OpeningBalance.Add(balances[p.ID])))
	}
	return &dto.PartyListResponse{Items: items, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}}, nil
}

// Update modifica datos del tercero. El código mantiene la unicidad por empresa y tipo.
func (uc *PartyUseCase) Update(ctx context.Context, companyID, kind, id string, in dto.UpdatePartyRequest) (*dto.PartyResponse, error) {
	repos := uc.store.Repos()
	party, err := loadParty(ctx, repos, companyID, kind, id)
	if err != nil {
		return nil, err
	}
	if in.Code != nil {
		code := strings.TrimSpace(*in.Code)
		if code == "" {
			return nil, fmt.Errorf("%w: el código es obligatorio", domain.ErrInvalidInput)
		}
		if code != party.Code {
			existing, err := repos.Parties.GetByCode(ctx, companyID, kind, code)
			if err != nil {
				return nil, err
			}
			if existing != nil {
				return nil, fmt.Errorf("%w: el código %s ya está en uso", domain.ErrDuplicate, code)
			}
		}
		party.Code = code
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: el nombre es obligatorio", domain.ErrInvalidInput)
		}
		party.Name = name
	}
	if in.TaxID != nil {
		taxID := taxid.Normalize(*in.TaxID)
		if err := taxid.Validate(taxID); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		party.TaxID = taxID
	}
	if in.Phone != nil {
		party.Phone = *in.Phone
	}
	if in.Email != nil {
		party.Email = *in.Email
	}
	if in.Address != nil {
		party.Address = *in.Address
	}
	if in.IsActive != nil {
		party.IsActive = *in.IsActive
	}
	party.UpdatedAt = time.Now()
	if err := repos.Parties.Update(ctx, party); err != nil {
		return nil, err
	}
	balance, err := PartyBalance(ctx, repos, party, nil)
	if err != nil {
		return nil, err
	}
	return toPartyResponse(party, balance), nil
}

// Delete elimina el tercero si ningún documento lo referencia.
func (uc *PartyUseCase) Delete(ctx context.Context, companyID, kind, id string) error {
	return uc.store.Run(ctx, func(r repository.Repos) error {
		party, err := loadParty(ctx, r, companyID, kind, id)
		if err != nil {
			return err
		}
		used, err := r.Parties.HasDocuments(ctx, party.ID)
		if err != nil {
			return err
		}
		if used {
			return fmt.Errorf("%w: %s tiene documentos registrados; inactívelo en lugar de eliminarlo", domain.ErrConflict, party.Code)
		}
		return r.Parties.Delete(ctx, party.ID)
	})
}

// PartyBalance saldo del tercero: saldo inicial más el efecto de sus documentos (antes de before si no es nil).
func PartyBalance(ctx context.Context, r repository.Repos, party *entity.Party, before *time.Time) (decimal.Decimal, error) {
	entries, err := r.Reports.PartyEntries(ctx, party.ID, nil, nil)
	if err != nil {
		return decimal.Zero, err
	}
	balance := party.OpeningBalance
	for _, e := range entries {
		if before != nil && !e.Date.Before(*before) {
			continue
		}
		balance = balance.Add(e.Effect)
	}
	return balance, nil
}

func loadParty(ctx context.Context, r repository.Repos, companyID, kind, id string) (*entity.Party, error) {
	party, err := r.Parties.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if party == nil || (kind != "" && party.Kind != kind) {
		return nil, fmt.Errorf("%w: tercero %s", domain.ErrNotFound, id)
	}
	if party.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return party, nil
}

// ToPartyResponse convierte la entidad a DTO con el saldo indicado.
func ToPartyResponse(p *entity.Party, balance decimal.Decimal) *dto.PartyResponse {
	return toPartyResponse(p, balance)
}

func toPartyResponse(p *entity.Party, balance decimal.Decimal) *dto.PartyResponse {
	return &dto.PartyResponse{
		ID:             p.ID,
		CompanyID:      p.CompanyID,
		Kind:           p.Kind,
		Code:           p.Code,
		Name:           p.Name,
		TaxID:          p.TaxID,
		Phone:          p.Phone,
		Email:          p.Email,
		Address:        p.Address,
		OpeningBalance: p.OpeningBalance,
		Balance:        balance,
		IsActive:       p.IsActive,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}
