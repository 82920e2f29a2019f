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
	"github.com/shopspring/decimal"
)

// ProductUseCase casos de uso CRUD para productos. El stock solo cambia vía movimientos.
type ProductUseCase struct {
	store repository.Store
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(store repository.Store) *ProductUseCase {
	return &ProductUseCase{store: store}
}

// Create crea un nuevo producto con stock 0.
func (uc *ProductUseCase) Create(ctx context.Context, companyID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	code := strings.TrimSpace(in.Code)
	name := strings.TrimSpace(in.Name)
	if code == "" || name == "" {
		return nil, fmt.Errorf("%w: código y nombre son obligatorios", domain.ErrInvalidInput)
	}
	if in.BuyPrice.IsNegative() || in.SellPrice.IsNegative() || in.MinStock.IsNegative() {
		return nil, fmt.Errorf("%w: precios y stock mínimo no pueden ser negativos", domain.ErrInvalidInput)
	}
	repos := uc.store.Repos()
	existing, err := repos.Products.GetByCode(ctx, companyID, code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: el código %s ya está en uso", domain.ErrDuplicate, code)
	}
	unit := in.Unit
	if unit == "" {
		unit = "UND"
	}
	now := time.Now()
	product := &entity.Product{
		ID:           uuid.New().String(),
		CompanyID:    companyID,
		Code:         code,
		Name:         name,
		Unit:         unit,
		BuyPrice:     in.BuyPrice,
		SellPrice:    in.SellPrice,
		MinStock:     in.MinStock,
		CurrentStock: decimal.Zero,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := repos.Products.Create(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto de la empresa.
func (uc *ProductUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.ProductResponse, error) {
	product, err := loadProduct(ctx, uc.store.Repos(), companyID, id)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Update actualiza un producto. No permite modificar el stock.
func (uc *ProductUseCase) Update(ctx context.Context, companyID, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	repos := uc.store.Repos()
	product, err := loadProduct(ctx, repos, companyID, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: el nombre es obligatorio", domain.ErrInvalidInput)
		}
		product.Name = name
	}
	if in.Unit != nil {
		product.Unit = *in.Unit
	}
	for _, v := range []*decimal.Decimal{in.BuyPrice, in.SellPrice, in.MinStock} {
		if v != nil && v.IsNegative() {
			return nil, fmt.Errorf("%w: precios y stock mínimo no pueden ser negativos", domain.ErrInvalidInput)
		}
	}
	if in.BuyPrice != nil {
		product.BuyPrice = *in.BuyPrice
	}
	if in.SellPrice != nil {
		product.SellPrice = *in.SellPrice
	}
	if in.MinStock != nil {
		product.MinStock = *in.MinStock
	}
	product.UpdatedAt = time.Now()
	if err := repos.Products.Update(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista productos por empresa con búsqueda y paginación.
func (uc *ProductUseCase) List(ctx context.Context, companyID, search string, includeInactive bool, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	list, err := uc.store.Repos().Products.List(ctx, repository.ProductFilter{
		CompanyID:       companyID,
		Search:          search,
		IncludeInactive: includeInactive,
		Limit:           page.Limit,
		Offset:          page.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Delete inactiva el producto (borrado lógico). Solo se permite con stock 0.
func (uc *ProductUseCase) Delete(ctx context.Context, companyID, id string) error {
	return uc.store.Run(ctx, func(r repository.Repos) error {
		product, err := r.Products.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		if product.CompanyID != companyID {
			return domain.ErrForbidden
		}
		if !product.CurrentStock.IsZero() {
			return fmt.Errorf("%w: el producto %s tiene stock %s", domain.ErrConflict, product.Code, product.CurrentStock.String())
		}
		return r.Products.SetActive(ctx, id, false)
	})
}

func loadProduct(ctx context.Context, r repository.Repos, companyID, id string) (*entity.Product, error) {
	product, err := r.Products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
	}
	if product.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return product, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:           p.ID,
		CompanyID:    p.CompanyID,
		Code:         p.Code,
		Name:         p.Name,
		Unit:         p.Unit,
		BuyPrice:     p.BuyPrice,
		SellPrice:    p.SellPrice,
		MinStock:     p.MinStock,
		CurrentStock: p.CurrentStock,
		IsLowStock:   p.IsLowStock(),
		IsActive:     p.IsActive,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
