package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Contable-api/internal/application/dto"
	"github.com/jhoicas/Contable-api/internal/application/inventory"
	"github.com/jhoicas/Contable-api/internal/application/usecase"
	"github.com/jhoicas/Contable-api/internal/domain"
	"github.com/jhoicas/Contable-api/internal/infrastructure/memory"
)

func TestCreateProduct(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewProductUseCase(memory.NewStore())

	p, err := uc.Create(ctx, companyID, dto.CreateProductRequest{Code: "X-1", Name: "Aceite", SellPrice: d("9500"), MinStock: d("2")})
	require.NoError(t, err)
	assert.Equal(t, "UND", p.Unit)
	assert.True(t, p.CurrentStock.IsZero())
	assert.True(t, p.IsActive)
	assert.True(t, p.IsLowStock, "stock 0 está bajo el mínimo")

	_, err = uc.Create(ctx, companyID, dto.CreateProductRequest{Code: "X-1", Name: "Repetido"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.Create(ctx, companyID, dto.CreateProductRequest{Code: "X-2", Name: "Negativo", BuyPrice: d("-1")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateProduct_NoModificaStock(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewProductUseCase(memory.NewStore())
	p, err := uc.Create(ctx, companyID, dto.CreateProductRequest{Code: "X-1", Name: "Aceite"})
	require.NoError(t, err)

	price := d("12000")
	updated, err := uc.Update(ctx, companyID, p.ID, dto.UpdateProductRequest{SellPrice: &price})
	require.NoError(t, err)
	assert.True(t, updated.SellPrice.Equal(price))
	assert.True(t, updated.CurrentStock.IsZero())

	_, err = uc.Update(ctx, otherID, p.ID, dto.UpdateProductRequest{SellPrice: &price})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestDeleteProduct_ConStockEsConflicto(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	uc := usecase.NewProductUseCase(store)
	inv := inventory.NewInventoryUseCase(store)

	p, err := uc.Create(ctx, companyID, dto.CreateProductRequest{Code: "X-1", Name: "Aceite"})
	require.NoError(t, err)
	mov, err := inv.CreateAdjustment(ctx, companyID, userID, dto.CreateAdjustmentRequest{ProductID: p.ID, Quantity: d("3")})
	require.NoError(t, err)

	assert.ErrorIs(t, uc.Delete(ctx, companyID, p.ID), domain.ErrConflict)

	require.NoError(t, inv.DeleteAdjustment(ctx, companyID, mov.ID))
	require.NoError(t, uc.Delete(ctx, companyID, p.ID))

	active, err := uc.List(ctx, companyID, "", false, dto.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, active.Items)
	all, err := uc.List(ctx, companyID, "aceite", true, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, all.Items, 1)
	assert.False(t, all.Items[0].IsActive)
}
