package ledger_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adrianbura/copie-stok/internal/domain/entity"
	"github.com/adrianbura/copie-stok/internal/domain/ledger"
)

func product(id, code string, price string) *entity.Product {
	return &entity.Product{ID: id, Code: code, Name: "Producto " + code, Category: entity.CategoryF2, UnitPrice: decimal.RequireFromString(price)}
}

func TestSnapshot_ExcluyeSaldoCeroYOrdenaPorCodigo(t *testing.T) {
	products := []*entity.Product{
		product("p1", "PYRO003", "10"),
		product("p2", "PYRO001", "2.5"),
		product("p3", "PYRO002", "1"),
	}
	movs := []entity.StockMovement{
		mov("p1", entity.MovementEntry, 5, day(1)),
		mov("p2", entity.MovementEntry, 4, day(1)),
		mov("p3", entity.MovementEntry, 3, day(1)),
		mov("p3", entity.MovementExit, 3, day(2)),
	}

	rows := ledger.Snapshot(products, movs, day(10))
	require.Len(t, rows, 2, "p3 tiene saldo neto 0 y no es stock")
	assert.Equal(t, "PYRO001", rows[0].Code)
	assert.Equal(t, 4, rows[0].Quantity)
	assert.True(t, decimal.NewFromInt(10).Equal(rows[0].Value))
	assert.Equal(t, "PYRO003", rows[1].Code)

	sum := ledger.SnapshotTotals(rows)
	assert.Equal(t, 2, sum.Products)
	assert.Equal(t, 9, sum.TotalUnits)
	assert.True(t, decimal.NewFromInt(60).Equal(sum.TotalValue))
}

func TestSnapshot_CorteIncluyeTodoElDia(t *testing.T) {
	products := []*entity.Product{product("p1", "PYRO001", "1")}
	cutoff := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	movs := []entity.StockMovement{
		mov("p1", entity.MovementEntry, 10, time.Date(2024, 5, 20, 9, 0, 0, 0, time.UTC)),
		mov("p1", entity.MovementExit, 2, time.Date(2024, 6, 1, 23, 59, 59, 0, time.UTC)),
		mov("p1", entity.MovementExit, 5, time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC)),
	}

	rows := ledger.Snapshot(products, movs, cutoff)
	require.Len(t, rows, 1)
	assert.Equal(t, 8, rows[0].Quantity)
}

func TestSnapshot_IgnoraProductosFueraDelAlcance(t *testing.T) {
	products := []*entity.Product{product("p1", "PYRO001", "1")}
	movs := []entity.StockMovement{
		mov("p1", entity.MovementEntry, 1, day(1)),
		mov("otro", entity.MovementEntry, 99, day(1)),
	}
	rows := ledger.Snapshot(products, movs, day(2))
	require.Len(t, rows, 1)
	assert.Equal(t, "p1", rows[0].ProductID)
}

func TestSnapshot_SaldoNegativoSeConserva(t *testing.T) {
	products := []*entity.Product{product("p1", "PYRO001", "1")}
	movs := []entity.StockMovement{mov("p1", entity.MovementExit, 2, day(1))}
	rows := ledger.Snapshot(products, movs, day(2))
	require.Len(t, rows, 1)
	assert.Equal(t, -2, rows[0].Quantity)
}

func TestReconcile_SinDesviacionCoincideConStockVivo(t *testing.T) {
	movs := []entity.StockMovement{
		mov("p1", entity.MovementEntry, 10, day(1)),
		mov("p1", entity.MovementExit, 4, day(2)),
		mov("p2", entity.MovementEntry, 3, day(2)),
	}
	stock := []*entity.WarehouseStock{
		{WarehouseID: "w1", ProductID: "p1", Quantity: 6},
		{WarehouseID: "w1", ProductID: "p2", Quantity: 3},
	}
	assert.Empty(t, ledger.Reconcile(stock, movs))

	products := []*entity.Product{product("p1", "A", "1"), product("p2", "B", "1")}
	total := ledger.SnapshotTotals(ledger.Snapshot(products, movs, time.Now().UTC()))
	assert.Equal(t, 9, total.TotalUnits)
}

func TestReconcile_DetectaDesviacion(t *testing.T) {
	movs := []entity.StockMovement{
		mov("p1", entity.MovementEntry, 10, day(1)),
		mov("p3", entity.MovementEntry, 1, day(1)),
	}
	stock := []*entity.WarehouseStock{
		{ProductID: "p1", Quantity: 7},
		{ProductID: "p2", Quantity: 2},
	}
	drift := ledger.Reconcile(stock, movs)
	require.Len(t, drift, 3)
	assert.Equal(t, ledger.Drift{ProductID: "p1", Stored: 7, FromLedger: 10, Difference: -3}, drift[0])
	assert.Equal(t, ledger.Drift{ProductID: "p2", Stored: 2, FromLedger: 0, Difference: 2}, drift[1])
	assert.Equal(t, ledger.Drift{ProductID: "p3", Stored: 0, FromLedger: 1, Difference: -1}, drift[2])
}
