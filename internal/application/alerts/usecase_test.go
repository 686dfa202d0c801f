package alerts_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adrianbura/copie-stok/internal/application/alerts"
	"github.com/adrianbura/copie-stok/internal/domain"
	"github.com/adrianbura/copie-stok/internal/domain/entity"
	"github.com/adrianbura/copie-stok/internal/infrastructure/memory"
)

var now = time.Date(2024, 12, 1, 9, 0, 0, 0, time.UTC)

func setup(t *testing.T) (*alerts.UseCase, *memory.Store) {
	t.Helper()
	s := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, memory.NewWarehouseRepository(s).Create(ctx, &entity.Warehouse{ID: "wh-1", Code: "DEP1", Name: "Depósito"}))
	products := memory.NewProductRepository(s)
	stock := memory.NewWarehouseStockRepository(s)

	expiry := now.AddDate(0, 0, 10)
	require.NoError(t, products.Create(ctx, &entity.Product{ID: "p-low", Code: "A", Name: "Bengala", Category: entity.CategoryF1, MinStock: 10}))
	require.NoError(t, products.Create(ctx, &entity.Product{ID: "p-exp", Code: "B", Name: "Volcán", Category: entity.CategoryF2, ExpiryDate: &expiry}))
	require.NoError(t, products.Create(ctx, &entity.Product{ID: "p-ok", Code: "C", Name: "Fuente", Category: entity.CategoryF2}))
	require.NoError(t, stock.Upsert(ctx, &entity.WarehouseStock{WarehouseID: "wh-1", ProductID: "p-low", Quantity: 3}))
	require.NoError(t, stock.Upsert(ctx, &entity.WarehouseStock{WarehouseID: "wh-1", ProductID: "p-exp", Quantity: 50}))
	require.NoError(t, stock.Upsert(ctx, &entity.WarehouseStock{WarehouseID: "wh-1", ProductID: "p-ok", Quantity: 50}))

	uc := alerts.NewUseCase(memory.NewAlertRepository(s), products, stock, memory.NewWarehouseRepository(s), 30).
		WithClock(func() time.Time { return now })
	return uc, s
}

func TestEvaluate_CreaUnaAlertaPorReglaYNoDuplica(t *testing.T) {
	uc, _ := setup(t)
	ctx := context.Background()

	res, err := uc.EvaluateWarehouse(ctx, "wh-1")
	require.NoError(t, err)
	require.Len(t, res.Created, 2)
	types := map[string]string{}
	for _, a := range res.Created {
		types[a.ProductID] = a.Type
	}
	assert.Equal(t, string(entity.AlertLowStock), types["p-low"])
	assert.Equal(t, string(entity.AlertExpiry), types["p-exp"])

	again, err := uc.Evaluate(ctx, "wh-1", nil)
	require.NoError(t, err)
	assert.Empty(t, again, "las alertas abiertas no se duplican")
}

func TestAcknowledge_PermiteNuevaAlertaDelMismoTipo(t *testing.T) {
	uc, _ := setup(t)
	ctx := context.Background()

	created, err := uc.Evaluate(ctx, "wh-1", []string{"p-low"})
	require.NoError(t, err)
	require.Len(t, created, 1)

	ack, err := uc.Acknowledge(ctx, "wh-1", created[0].ID, "user-1")
	require.NoError(t, err)
	assert.True(t, ack.Acknowledged)
	assert.Equal(t, "user-1", ack.AcknowledgedBy)

	_, err = uc.Acknowledge(ctx, "wh-1", created[0].ID, "user-1")
	assert.ErrorIs(t, err, domain.ErrConflict)

	open, err := uc.List(ctx, "wh-1", true, 20, 0)
	require.NoError(t, err)
	assert.Empty(t, open.Items)

	created, err = uc.Evaluate(ctx, "wh-1", []string{"p-low"})
	require.NoError(t, err)
	assert.Len(t, created, 1)
}

func TestAcknowledge_AlertaDeOtraBodega(t *testing.T) {
	uc, _ := setup(t)
	ctx := context.Background()
	created, err := uc.Evaluate(ctx, "wh-1", []string{"p-low"})
	require.NoError(t, err)
	require.Len(t, created, 1)

	_, err = uc.Acknowledge(ctx, "wh-2", created[0].ID, "user-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEvaluateWarehouse_BodegaInexistente(t *testing.T) {
	uc, _ := setup(t)
	_, err := uc.EvaluateWarehouse(context.Background(), "wh-x")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEvaluate_StockBajoAbiertoSeEscalaACriticoAlAgotarse(t *testing.T) {
	uc, s := setup(t)
	ctx := context.Background()

	created, err := uc.Evaluate(ctx, "wh-1", []string{"p-low"})
	require.NoError(t, err)
	require.Len(t, created, 1)
	assert.Equal(t, entity.SeverityWarning, created[0].Severity)

	require.NoError(t, memory.NewWarehouseStockRepository(s).Upsert(ctx, &entity.WarehouseStock{WarehouseID: "wh-1", ProductID: "p-low", Quantity: 0}))

	res, err := uc.EvaluateWarehouse(ctx, "wh-1")
	require.NoError(t, err)
	require.Len(t, res.Escalated, 1)
	assert.Equal(t, created[0].ID, res.Escalated[0].ID)
	assert.Equal(t, string(entity.SeverityCritical), res.Escalated[0].Severity)

	open, err := uc.List(ctx, "wh-1", true, 20, 0)
	require.NoError(t, err)
	var lowStock []string
	for _, a := range open.Items {
		if a.Type == string(entity.AlertLowStock) {
			lowStock = append(lowStock, a.Severity)
		}
	}
	assert.Equal(t, []string{string(entity.SeverityCritical)}, lowStock, "se actualiza la alerta abierta, no se crea otra")

	again, err := uc.Evaluate(ctx, "wh-1", []string{"p-low"})
	require.NoError(t, err)
	assert.Empty(t, again)
}
