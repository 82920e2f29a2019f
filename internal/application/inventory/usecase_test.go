package inventory_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Contable-api/internal/application/billing"
	"github.com/jhoicas/Contable-api/internal/application/dto"
	"github.com/jhoicas/Contable-api/internal/application/inventory"
	"github.com/jhoicas/Contable-api/internal/application/usecase"
	"github.com/jhoicas/Contable-api/internal/domain"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/infrastructure/memory"
)

const (
	companyID = "00000000-0000-0000-0000-0000000000c1"
	userID    = "00000000-0000-0000-0000-0000000000a1"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestCreateAdjustment(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	products := usecase.NewProductUseCase(store)
	uc := inventory.NewInventoryUseCase(store)

	p, err := products.Create(ctx, companyID, dto.CreateProductRequest{Code: "A1", Name: "Clavos"})
	require.NoError(t, err)

	in, err := uc.CreateAdjustment(ctx, companyID, userID, dto.CreateAdjustmentRequest{ProductID: p.ID, Quantity: d("10")})
	require.NoError(t, err)
	assert.Equal(t, entity.MovementTypeAdjustment, in.Type)
	assert.Equal(t, "Ajuste manual", in.Reference)
	assert.Equal(t, entity.DocumentAdjustment, in.DocumentType)

	out, err := uc.CreateAdjustment(ctx, companyID, userID, dto.CreateAdjustmentRequest{ProductID: p.ID, Quantity: d("-4"), Reason: "merma"})
	require.NoError(t, err)
	assert.True(t, out.Quantity.Equal(d("-4")))

	got, err := products.GetByID(ctx, companyID, p.ID)
	require.NoError(t, err)
	assert.True(t, got.CurrentStock.Equal(d("6")))

	_, err = uc.CreateAdjustment(ctx, companyID, userID, dto.CreateAdjustmentRequest{ProductID: p.ID, Quantity: d("-7")})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	_, err = uc.CreateAdjustment(ctx, companyID, userID, dto.CreateAdjustmentRequest{ProductID: p.ID, Quantity: decimal.Zero})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// revertir la entrada dejaría el stock en -4
	assert.ErrorIs(t, uc.DeleteAdjustment(ctx, companyID, in.ID), domain.ErrInsufficientStock)
	require.NoError(t, uc.DeleteAdjustment(ctx, companyID, out.ID))
	got, err = products.GetByID(ctx, companyID, p.ID)
	require.NoError(t, err)
	assert.True(t, got.CurrentStock.Equal(d("10")))

	_, err = uc.GetMovement(ctx, companyID, out.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteAdjustment_SoloAjustes(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	products := usecase.NewProductUseCase(store)
	parties := usecase.NewPartyUseCase(store)
	invoices := billing.NewInvoiceUseCase(store)
	uc := inventory.NewInventoryUseCase(store)

	p, err := products.Create(ctx, companyID, dto.CreateProductRequest{Code: "A1", Name: "Clavos", BuyPrice: d("5")})
	require.NoError(t, err)
	s, err := parties.CreateSupplier(ctx, companyID, dto.CreatePartyRequest{Code: "S1", Name: "Proveedor"})
	require.NoError(t, err)
	_, err = invoices.CreatePurchase(ctx, companyID, userID, dto.CreateInvoiceRequest{
		PartyID: s.ID,
		Items:   []dto.InvoiceItemRequest{{ProductID: p.ID, Quantity: d("8")}},
	})
	require.NoError(t, err)

	list, err := uc.ListMovements(ctx, companyID, dto.MovementFilter{ProductID: p.ID, Type: entity.MovementTypePurchase})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.True(t, list.Items[0].Quantity.Equal(d("8")))
	assert.Equal(t, entity.DocumentPurchaseInvoice, list.Items[0].DocumentType)

	err = uc.DeleteAdjustment(ctx, companyID, list.Items[0].ID)
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = uc.ListMovements(ctx, companyID, dto.MovementFilter{Type: "TRASLADO"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.GetMovement(ctx, "00000000-0000-0000-0000-0000000000ff", list.Items[0].ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
