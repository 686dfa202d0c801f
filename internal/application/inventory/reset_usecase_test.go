package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adrianbura/copie-stok/internal/application/inventory"
	"github.com/adrianbura/copie-stok/internal/domain"
	"github.com/adrianbura/copie-stok/internal/domain/entity"
	"github.com/adrianbura/copie-stok/internal/domain/repository"
	"github.com/adrianbura/copie-stok/internal/infrastructure/memory"
)

func TestResetWarehouse_BorraLibroYDejaStockEnCero(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	whRepo := memory.NewWarehouseRepository(f.store)
	require.NoError(t, whRepo.Create(ctx, &entity.Warehouse{ID: "wh-2", Code: "DEP2", Name: "Tienda"}))

	_, err := f.uc.Register(ctx, entry(inventory.ItemInput{ProductID: "p-1", Quantity: 10}))
	require.NoError(t, err)
	_, err = f.uc.Register(ctx, exit(inventory.ItemInput{ProductID: "p-1", Quantity: 4}))
	require.NoError(t, err)
	other := entry(inventory.ItemInput{ProductID: "p-1", Quantity: 3})
	other.WarehouseID = "wh-2"
	_, err = f.uc.Register(ctx, other)
	require.NoError(t, err)

	res, err := inventory.NewResetUseCase(memory.NewTxRunner(f.store), whRepo).ResetWarehouse(ctx, "wh-1")
	require.NoError(t, err)
	assert.EqualValues(t, 2, res.DeletedMovements)
	assert.EqualValues(t, 2, res.DeletedDocuments)

	wh, global := f.qty(t, "p-1")
	assert.Equal(t, 0, wh)
	assert.Equal(t, 3, global, "la cantidad global conserva el stock de otras bodegas")

	movs, err := f.movements.List(ctx, repository.MovementFilter{})
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, "wh-2", movs[0].WarehouseID)
}

func TestResetWarehouse_BodegaInexistente(t *testing.T) {
	s := memory.NewStore()
	_, err := inventory.NewResetUseCase(memory.NewTxRunner(s), memory.NewWarehouseRepository(s)).ResetWarehouse(context.Background(), "wh-x")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
