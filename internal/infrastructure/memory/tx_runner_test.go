package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adrianbura/copie-stok/internal/domain/entity"
	"github.com/adrianbura/copie-stok/internal/domain/repository"
	"github.com/adrianbura/copie-stok/internal/infrastructure/memory"
)

var errFallo = errors.New("fallo dentro de la transacción")

// ──────────────────────────────────────────────────────────────────────────────
// Rollback de TxRunner
// ──────────────────────────────────────────────────────────────────────────────

func TestTxRunner_RollbackDescartaEscriturasDeLaTransaccion(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	products := memory.NewProductRepository(s)

	err := memory.NewTxRunner(s).Run(ctx, func(
		movRepo repository.StockMovementRepository,
		stockRepo repository.WarehouseStockRepository,
		productRepo repository.ProductRepository,
		docRepo repository.InventoryDocumentRepository,
	) error {
		require.NoError(t, productRepo.Create(ctx, &entity.Product{ID: "p-tx", Code: "TX-1", Name: "Volcán", Category: entity.CategoryF2}))
		require.NoError(t, movRepo.Create(ctx, &entity.StockMovement{ID: "m1", ProductID: "p-tx", WarehouseID: "w1", Type: entity.MovementEntry, Quantity: 3}))
		return errFallo
	})
	require.ErrorIs(t, err, errFallo)

	p, err := products.GetByID(ctx, "p-tx")
	require.NoError(t, err)
	assert.Nil(t, p)
	movs, err := memory.NewStockMovementRepository(s).List(ctx, repository.MovementFilter{WarehouseID: "w1"})
	require.NoError(t, err)
	assert.Empty(t, movs)
}

func TestTxRunner_RollbackConservaConcesionesHechasDuranteLaTransaccion(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	grants := memory.NewUserWarehouseRepository(s)

	err := memory.NewTxRunner(s).Run(ctx, func(
		_ repository.StockMovementRepository,
		_ repository.WarehouseStockRepository,
		_ repository.ProductRepository,
		_ repository.InventoryDocumentRepository,
	) error {
		require.NoError(t, grants.Grant(ctx, &entity.UserWarehouse{UserID: "u1", WarehouseID: "w1"}))
		return errFallo
	})
	require.ErrorIs(t, err, errFallo)

	ok, err := grants.HasAccess(ctx, "u1", "w1")
	require.NoError(t, err)
	assert.True(t, ok, "la concesión no forma parte de la transacción y no debe perderse")
}

func TestTxRunner_ProductoCreadoFueraDeLaTransaccionSobreviveAlRollback(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	products := memory.NewProductRepository(s)
	runner := memory.NewTxRunner(s)

	started := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		done <- runner.Run(ctx, func(
			_ repository.StockMovementRepository,
			_ repository.WarehouseStockRepository,
			_ repository.ProductRepository,
			_ repository.InventoryDocumentRepository,
		) error {
			close(started)
			<-release
			return errFallo
		})
	}()
	<-started

	created := make(chan error, 1)
	go func() {
		created <- products.Create(ctx, &entity.Product{ID: "p-ext", Code: "EXT-1", Name: "Bengala", Category: entity.CategoryF1})
	}()
	close(release)

	require.ErrorIs(t, <-done, errFallo)
	require.NoError(t, <-created)

	p, err := products.GetByID(ctx, "p-ext")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "EXT-1", p.Code)
}
