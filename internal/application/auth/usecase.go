package auth

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
	"github.com/jhoicas/Contable-api/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// AuthUseCase casos de uso de autenticación: registro y login.
type AuthUseCase struct {
	userRepo    repository.UserRepository
	companyRepo repository.CompanyRepository
	tokens      jwt.Config
	cost        int
}

// NewAuthUseCase construye el caso de uso de auth; tokens define cómo se firman las sesiones.
func NewAuthUseCase(userRepo repository.UserRepository, companyRepo repository.CompanyRepository, tokens jwt.Config) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, companyRepo: companyRepo, tokens: tokens, cost: bcrypt.DefaultCost}
}

// WithBcryptCost ajusta el costo de bcrypt (los tests usan bcrypt.MinCost).
func (uc *AuthUseCase) WithBcryptCost(cost int) *AuthUseCase {
	uc.cost = cost
	return uc
}

// RegisterUser crea un usuario: hashea password con bcrypt y persiste. Devuelve ErrEmailAlreadyExists si el email ya existe.
func (uc *AuthUseCase) RegisterUser(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	return uc.createUser(ctx, in.CompanyID, in.Email, in.Password, in.Name, in.Role)
}

// CreateUser crea un usuario dentro de la empresa del admin autenticado.
func (uc *AuthUseCase) CreateUser(ctx context.Context, companyID string, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	return uc.createUser(ctx, companyID, in.Email, in.Password, in.Name, in.Role)
}

func (uc *AuthUseCase) createUser(ctx context.Context, companyID, email, password, name, role string) (*dto.UserResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || len(password) < 8 {
		return nil, fmt.Errorf("%w: email y password (mínimo 8 caracteres) son obligatorios", domain.ErrInvalidInput)
	}
	if role == "" {
		role = entity.RoleVendedor
	}
	if !entity.ValidRole(role) {
		return nil, fmt.Errorf("%w: rol %q", domain.ErrInvalidInput, role)
	}
	existing, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	company, err := uc.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, fmt.Errorf("%w: empresa %s", domain.ErrNotFound, companyID)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), uc.cost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	if name == "" {
		name = email
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		CompanyID:    companyID,
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         role,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Login verifica email/password, genera JWT y retorna token + usuario.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(in.Email)))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != "active" {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.tokens, jwt.Identity{UserID: user.ID, CompanyID: user.CompanyID, Role: user.Role})
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *toUserResponse(user),
	}, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:        u.ID,
		CompanyID: u.CompanyID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
