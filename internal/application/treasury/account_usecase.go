package treasury

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
	"github.com/shopspring/decimal"
)

// AccountUseCase CRUD de cajas y bancos. El saldo solo cambia a través del motor.
type AccountUseCase struct {
	store repository.Store
}

// NewAccountUseCase construye el caso de uso.
func NewAccountUseCase(store repository.Store) *AccountUseCase {
	return &AccountUseCase{store: store}
}

// CreateSafe crea una caja.
func (uc *AccountUseCase) CreateSafe(ctx context.Context, companyID string, in dto.CreateAccountRequest) (*dto.AccountResponse, error) {
	return uc.create(ctx, companyID, entity.AccountKindSafe, in)
}

// CreateBank crea una cuenta bancaria.
func (uc *AccountUseCase) CreateBank(ctx context.Context, companyID string, in dto.CreateAccountRequest) (*dto.AccountResponse, error) {
	return uc.create(ctx, companyID, entity.AccountKindBank, in)
}

func (uc *AccountUseCase) create(ctx context.Context, companyID, kind string, in dto.CreateAccountRequest) (*dto.AccountResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: el nombre es obligatorio", domain.ErrInvalidInput)
	}
	if in.InitialBalance.IsNegative() {
		return nil, fmt.Errorf("%w: el saldo inicial no puede ser negativo", domain.ErrInvalidInput)
	}
	repos := uc.store.Repos()
	existing, err := repos.Accounts.GetByName(ctx, companyID, kind, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: ya existe una cuenta con el nombre %q", domain.ErrDuplicate, name)
	}
	now := time.Now()
	account := &entity.TreasuryAccount{
		ID:             uuid.New().String(),
		CompanyID:      companyID,
		Kind:           kind,
		Name:           name,
		BankName:       in.BankName,
		AccountNumber:  in.AccountNumber,
		InitialBalance: in.InitialBalance,
		Balance:        in.InitialBalance,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := repos.Accounts.Create(ctx, account); err != nil {
		return nil, err
	}
	return toAccountResponse(account), nil
}

// Get obtiene una cuenta de la empresa.
func (uc *AccountUseCase) Get(ctx context.Context, companyID, id string) (*dto.AccountResponse, error) {
	account, err := loadAccount(ctx, uc.store.Repos(), companyID, id)
	if err != nil {
		return nil, err
	}
	return toAccountResponse(account), nil
}

// List lista las cuentas de un tipo (vacío = todas).
func (uc *AccountUseCase) List(ctx context.Context, companyID, kind string, includeInactive bool) ([]dto.AccountResponse, error) {
	if kind != "" && !entity.ValidAccountKind(kind) {
		return nil, fmt.Errorf("%w: tipo de cuenta %q", domain.ErrInvalidInput, kind)
	}
	list, err := uc.store.Repos().Accounts.List(ctx, companyID, kind, includeInactive)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AccountResponse, 0, len(list))
	for _, a := range list {
		out = append(out, *toAccountResponse(a))
	}
	return out, nil
}

// Update actualiza nombre y datos bancarios.
func (uc *AccountUseCase) Update(ctx context.Context, companyID, id string, in dto.UpdateAccountRequest) (*dto.AccountResponse, error) {
	repos := uc.store.Repos()
	account, err := loadAccount(ctx, repos, companyID, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: el nombre es obligatorio", domain.ErrInvalidInput)
		}
		if name != account.Name {
			existing, err := repos.Accounts.GetByName(ctx, companyID, account.Kind, name)
			if err != nil {
				return nil, err
			}
			if existing != nil {
				return nil, fmt.Errorf("%w: ya existe una cuenta con el nombre %q", domain.ErrDuplicate, name)
			}
		}
		account.Name = name
	}
	if in.BankName != nil {
		account.BankName = *in.BankName
	}
	if in.AccountNumber != nil {
		account.AccountNumber = *in.AccountNumber
	}
	account.UpdatedAt = time.Now()
	if err := repos.Accounts.Update(ctx, account); err != nil {
		return nil, err
	}
	return toAccountResponse(account), nil
}

// Deactivate inactiva la cuenta; solo se permite con saldo cero.
func (uc *AccountUseCase) Deactivate(ctx context.Context, companyID, id string) error {
	return uc.store.Run(ctx, func(r repository.Repos) error {
		account, err := r.Accounts.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if account == nil {
			return domain.ErrNotFound
		}
		if account.CompanyID != companyID {
			return domain.ErrForbidden
		}
		if !account.Balance.Equal(decimal.Zero) {
			return fmt.Errorf("%w: la cuenta tiene saldo %s", domain.ErrConflict, account.Balance.String())
		}
		return r.Accounts.SetActive(ctx, id, false)
	})
}

func loadAccount(ctx context.Context, r repository.Repos, companyID, id string) (*entity.TreasuryAccount, error) {
	account, err := r.Accounts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, fmt.Errorf("%w: cuenta %s", domain.ErrNotFound, id)
	}
	if account.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return account, nil
}

// ToAccountResponse convierte la entidad a DTO (usado también por reportes).
func ToAccountResponse(a *entity.TreasuryAccount) *dto.AccountResponse {
	return toAccountResponse(a)
}

func toAccountResponse(a *entity.TreasuryAccount) *dto.AccountResponse {
	return &dto.AccountResponse{
		ID:             a.ID,
		Kind:           a.Kind,
		Name:           a.Name,
		BankName:       a.BankName,
		AccountNumber:  a.AccountNumber,
		InitialBalance: a.InitialBalance,
		Balance:        a.Balance,
		IsActive:       a.IsActive,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}
