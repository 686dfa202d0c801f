package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adrianbura/copie-stok/internal/application/dto"
	"github.com/adrianbura/copie-stok/internal/application/usecase"
	"github.com/adrianbura/copie-stok/internal/domain"
	"github.com/adrianbura/copie-stok/internal/domain/entity"
	"github.com/adrianbura/copie-stok/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Productos
// ──────────────────────────────────────────────────────────────────────────────

func TestProductUseCase_CreaYRechazaCodigoDuplicado(t *testing.T) {
	uc := usecase.NewProductUseCase(memory.NewProductRepository(memory.NewStore()))
	ctx := context.Background()
	in := dto.CreateProductRequest{
		Code: "PYRO001", Name: "Batería 100 tiros", Category: "f2",
		UnitPrice: decimal.RequireFromString("25.50"), ExpiryDate: "2026-12-31",
	}

	p, err := uc.Create(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, "F2", p.Category)
	assert.Equal(t, 0, p.Quantity)
	require.NotNil(t, p.ExpiryDate)
	assert.Equal(t, 2026, p.ExpiryDate.Year())

	_, err = uc.Create(ctx, in)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestProductUseCase_EntradasInvalidas(t *testing.T) {
	uc := usecase.NewProductUseCase(memory.NewProductRepository(memory.NewStore()))
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreateProductRequest{Code: "X", Name: "X", Category: "Z9"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, dto.CreateProductRequest{Code: "X", Name: "X", Category: "F1", ExpiryDate: "31/12/2026"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.List(ctx, "Z9", "", 20, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductUseCase_ActualizaYFiltra(t *testing.T) {
	uc := usecase.NewProductUseCase(memory.NewProductRepository(memory.NewStore()))
	ctx := context.Background()
	a, err := uc.Create(ctx, dto.CreateProductRequest{Code: "A-1", Name: "Bengala", Category: "F1"})
	require.NoError(t, err)
	_, err = uc.Create(ctx, dto.CreateProductRequest{Code: "B-1", Name: "Carcasa", Category: "F4"})
	require.NoError(t, err)

	batch := "L-2024-07"
	updated, err := uc.Update(ctx, a.ID, dto.UpdateProductRequest{BatchNumber: &batch})
	require.NoError(t, err)
	assert.Equal(t, batch, updated.BatchNumber)

	missing, err := uc.Update(ctx, "nope", dto.UpdateProductRequest{})
	require.NoError(t, err)
	assert.Nil(t, missing)

	list, err := uc.List(ctx, "F4", "", 20, 0)
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "B-1", list.Items[0].Code)

	list, err = uc.List(ctx, "", "bengal", 20, 0)
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "A-1", list.Items[0].Code)
}

// ──────────────────────────────────────────────────────────────────────────────
// Bodegas y acceso
// ──────────────────────────────────────────────────────────────────────────────

func TestAccessUseCase_AdminVeTodasOperadorSoloConcedidas(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	whRepo := memory.NewWarehouseRepository(s)
	userRepo := memory.NewUserRepository(s)
	whUC := usecase.NewWarehouseUseCase(whRepo, memory.NewWarehouseStockRepository(s), memory.NewProductRepository(s))

	w1, err := whUC.Create(ctx, dto.CreateWarehouseRequest{Code: "dep1", Name: "Depósito"})
	require.NoError(t, err)
	assert.Equal(t, "DEP1", w1.Code)
	_, err = whUC.Create(ctx, dto.CreateWarehouseRequest{Code: "DEP2", Name: "Tienda"})
	require.NoError(t, err)
	_, err = whUC.Create(ctx, dto.CreateWarehouseRequest{Code: "DEP1", Name: "Otra"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	require.NoError(t, userRepo.Create(ctx, &entity.User{ID: "u-op", Email: "op@example.com", Role: entity.RoleOperator}))
	access := usecase.NewAccessUseCase(memory.NewUserWarehouseRepository(s), userRepo, whRepo)
	require.NoError(t, access.Grant(ctx, "u-op", w1.ID))

	ok, err := access.CanAccess(ctx, "u-op", entity.RoleOperator, w1.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	all, err := access.ListForUser(ctx, "u-admin", entity.RoleAdmin, 20, 0)
	require.NoError(t, err)
	assert.Len(t, all.Items, 2)

	mine, err := access.ListForUser(ctx, "u-op", entity.RoleOperator, 20, 0)
	require.NoError(t, err)
	require.Len(t, mine.Items, 1)
	assert.Equal(t, "DEP1", mine.Items[0].Code)

	require.NoError(t, access.Revoke(ctx, "u-op", w1.ID))
	ok, err = access.CanAccess(ctx, "u-op", entity.RoleOperator, w1.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	assert.ErrorIs(t, access.Grant(ctx, "nadie", w1.ID), domain.ErrNotFound)
}

func TestWarehouseUseCase_SetMinStock(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	stock := memory.NewWarehouseStockRepository(s)
	products := memory.NewProductRepository(s)
	whUC := usecase.NewWarehouseUseCase(memory.NewWarehouseRepository(s), stock, products)

	w, err := whUC.Create(ctx, dto.CreateWarehouseRequest{Code: "DEP1", Name: "Depósito"})
	require.NoError(t, err)
	require.NoError(t, products.Create(ctx, &entity.Product{ID: "p-1", Code: "A", Name: "A", Category: entity.CategoryF1}))

	require.NoError(t, whUC.SetMinStock(ctx, w.ID, "p-1", 25))
	row, err := stock.Get(ctx, w.ID, "p-1")
	require.NoError(t, err)
	assert.Equal(t, 25, row.MinStock)

	assert.ErrorIs(t, whUC.SetMinStock(ctx, w.ID, "nope", 1), domain.ErrNotFound)
	assert.ErrorIs(t, whUC.SetMinStock(ctx, w.ID, "p-1", -1), domain.ErrInvalidInput)
}
