package usecase

import (
	"context"

	"github.com/jhoicas/Contable-api/internal/application/dto"
	"github.com/jhoicas/Contable-api/internal/domain"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
)

// UserUseCase consultas de usuarios. La creación vive en auth (hash de password).
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// GetByID obtiene un usuario de la empresa.
func (uc *UserUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if user.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return entityToUserResponse(user), nil
}

// List lista los usuarios de la empresa.
func (uc *UserUseCase) List(ctx context.Context, companyID string, page dto.PageRequest) (*dto.UserListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.ListByCompany(ctx, companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *entityToUserResponse(u))
	}
	return &dto.UserListResponse{Items: items, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}}, nil
}

func entityToUserResponse(u *entity.User) *dto.UserResponse {
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
