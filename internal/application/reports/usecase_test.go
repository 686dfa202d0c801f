package reports_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adrianbura/copie-stok/internal/application/inventory"
	"github.com/adrianbura/copie-stok/internal/application/reports"
	"github.com/adrianbura/copie-stok/internal/domain"
	"github.com/adrianbura/copie-stok/internal/domain/entity"
	"github.com/adrianbura/copie-stok/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

var loc = time.FixedZone("EET", 2*60*60)

func day(d int, hour int) time.Time {
	return time.Date(2024, 6, d, hour, 0, 0, 0, loc)
}

type env struct {
	store    *memory.Store
	register *inventory.RegisterTransactionUseCase
	uc       *reports.UseCase
}

func newEnv(t *testing.T) *env {
	t.Helper()
	s := memory.NewStore()
	ctx := context.Background()
	whRepo := memory.NewWarehouseRepository(s)
	products := memory.NewProductRepository(s)
	require.NoError(t, whRepo.Create(ctx, &entity.Warehouse{ID: "wh-1", Code: "DEP1", Name: "Depósito central"}))
	require.NoError(t, whRepo.Create(ctx, &entity.Warehouse{ID: "wh-2", Code: "DEP2", Name: "Tienda"}))
	// IDs en orden inverso al código para comprobar el orden de salida.
	require.NoError(t, products.Create(ctx, &entity.Product{ID: "p-z", Code: "A-01", Name: "Bengala", Category: entity.CategoryF1, UnitPrice: decimal.NewFromInt(2), MinStock: 10}))
	require.NoError(t, products.Create(ctx, &entity.Product{ID: "p-a", Code: "B-01", Name: "Batería", Category: entity.CategoryF2, UnitPrice: decimal.NewFromInt(10)}))

	return &env{
		store:    s,
		register: inventory.NewRegisterTransactionUseCase(memory.NewTxRunner(s), products, whRepo, nil),
		uc: reports.NewUseCase(products, memory.NewStockMovementRepository(s),
			memory.NewWarehouseStockRepository(s), whRepo, loc),
	}
}

func (e *env) move(t *testing.T, wh string, typ entity.MovementType, productID string, qty int, at time.Time) {
	t.Helper()
	_, err := e.register.Register(context.Background(), inventory.TransactionInput{
		WarehouseID: wh,
		Type:        typ,
		Date:        at,
		Operator:    "ana",
		Items:       []inventory.ItemInput{{ProductID: productID, Quantity: qty}},
	})
	require.NoError(t, err)
}

// Escenario: p-a +100 (día 1), -30 (día 2), +10 (día 3); p-z +5 (día 2), -5 (día 4); p-a +7 en wh-2.
func (e *env) seed(t *testing.T) {
	e.move(t, "wh-1", entity.MovementEntry, "p-a", 100, day(1, 9))
	e.move(t, "wh-1", entity.MovementExit, "p-a", 30, day(2, 9))
	e.move(t, "wh-1", entity.MovementEntry, "p-z", 5, day(2, 23))
	e.move(t, "wh-1", entity.MovementEntry, "p-a", 10, day(3, 9))
	e.move(t, "wh-1", entity.MovementExit, "p-z", 5, day(4, 9))
	e.move(t, "wh-2", entity.MovementEntry, "p-a", 7, day(1, 9))
}

func ptr(t time.Time) *time.Time { return &t }

// ──────────────────────────────────────────────────────────────────────────────
// Ledger
// ──────────────────────────────────────────────────────────────────────────────

func TestLedger_SaldoCorrienteYOrdenPorCodigo(t *testing.T) {
	e := newEnv(t)
	e.seed(t)

	rep, err := e.uc.Ledger(context.Background(), reports.LedgerQuery{WarehouseID: "wh-1"})
	require.NoError(t, err)
	require.Len(t, rep.Products, 2)
	assert.Equal(t, "A-01", rep.Products[0].ProductCode)
	assert.Equal(t, "B-01", rep.Products[1].ProductCode)

	batt := rep.Products[1]
	require.Len(t, batt.Entries, 3)
	after := []int{batt.Entries[0].StockAfter, batt.Entries[1].StockAfter, batt.Entries[2].StockAfter}
	assert.Equal(t, []int{100, 70, 80}, after)
	assert.Equal(t, 110, batt.TotalEntries)
	assert.Equal(t, 30, batt.TotalExits)
	assert.Equal(t, 80, batt.FinalStock)
}

func TestLedger_VentanaUsaSaldoDeApertura(t *testing.T) {
	e := newEnv(t)
	e.seed(t)

	rep, err := e.uc.Ledger(context.Background(), reports.LedgerQuery{
		WarehouseID: "wh-1",
		ProductID:   "p-a",
		From:        ptr(day(2, 0)),
		To:          ptr(day(2, 0)),
	})
	require.NoError(t, err)
	require.Len(t, rep.Products, 1)
	pl := rep.Products[0]
	assert.Equal(t, 100, pl.OpeningBalance)
	require.Len(t, pl.Entries, 1)
	assert.Equal(t, 70, pl.FinalStock)
}

func TestLedger_ErroresDeEntrada(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.uc.Ledger(ctx, reports.LedgerQuery{WarehouseID: "wh-x"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = e.uc.Ledger(ctx, reports.LedgerQuery{WarehouseID: "wh-1", ProductID: "nope"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = e.uc.Ledger(ctx, reports.LedgerQuery{WarehouseID: "wh-1", From: ptr(day(5, 0)), To: ptr(day(2, 0))})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Snapshot
// ──────────────────────────────────────────────────────────────────────────────

func TestSnapshot_IncluyeTodoElDiaDeCorte(t *testing.T) {
	e := newEnv(t)
	e.seed(t)

	// El movimiento de p-z a las 23:00 del día 2 entra en la foto del día 2.
	rep, err := e.uc.Snapshot(context.Background(), "wh-1", day(2, 0))
	require.NoError(t, err)
	require.Len(t, rep.Rows, 2)
	assert.Equal(t, "A-01", rep.Rows[0].Code)
	assert.Equal(t, 5, rep.Rows[0].Quantity)
	assert.Equal(t, 70, rep.Rows[1].Quantity)
	assert.Equal(t, 75, rep.TotalUnits)
	assert.True(t, rep.TotalValue.Equal(decimal.NewFromInt(5*2+70*10)))
}

func TestSnapshot_ExcluyeSaldoCeroYCoincideConStockVivo(t *testing.T) {
	e := newEnv(t)
	e.seed(t)
	ctx := context.Background()

	snap, err := e.uc.Snapshot(ctx, "wh-1", day(30, 0))
	require.NoError(t, err)
	require.Len(t, snap.Rows, 1, "p-z terminó en cero")
	assert.Equal(t, "B-01", snap.Rows[0].Code)

	live, err := e.uc.StockList(ctx, "wh-1")
	require.NoError(t, err)
	liveQty := map[string]int{}
	for _, r := range live.Rows {
		if r.Quantity != 0 {
			liveQty[r.ProductID] = r.Quantity
		}
	}
	snapQty := map[string]int{}
	for _, r := range snap.Rows {
		snapQty[r.ProductID] = r.Quantity
	}
	assert.Equal(t, liveQty, snapQty)
}

func TestSnapshot_SinBodegaAbarcaTodas(t *testing.T) {
	e := newEnv(t)
	e.seed(t)

	rep, err := e.uc.Snapshot(context.Background(), "", day(30, 0))
	require.NoError(t, err)
	require.Len(t, rep.Rows, 1)
	assert.Equal(t, 87, rep.Rows[0].Quantity)
}

// ──────────────────────────────────────────────────────────────────────────────
// StockList / Consistency
// ──────────────────────────────────────────────────────────────────────────────

func TestStockList_MarcaStockBajo(t *testing.T) {
	e := newEnv(t)
	e.seed(t)

	rep, err := e.uc.StockList(context.Background(), "wh-1")
	require.NoError(t, err)
	require.Len(t, rep.Rows, 2)
	assert.Equal(t, "A-01", rep.Rows[0].Code)
	assert.True(t, rep.Rows[0].LowStock)
	assert.False(t, rep.Rows[1].LowStock)
	assert.Equal(t, 1, rep.LowStockCount)
	assert.Equal(t, 80, rep.TotalUnits)
}

func TestConsistency_DetectaDesviacion(t *testing.T) {
	e := newEnv(t)
	e.seed(t)
	ctx := context.Background()

	rep, err := e.uc.Consistency(ctx, "wh-1")
	require.NoError(t, err)
	assert.True(t, rep.Consistent)
	assert.Empty(t, rep.Drift)

	// Alteración directa del stock materializado, fuera del libro.
	stock := memory.NewWarehouseStockRepository(e.store)
	require.NoError(t, stock.Upsert(ctx, &entity.WarehouseStock{WarehouseID: "wh-1", ProductID: "p-a", Quantity: 90}))

	rep, err = e.uc.Consistency(ctx, "wh-1")
	require.NoError(t, err)
	assert.False(t, rep.Consistent)
	require.Len(t, rep.Drift, 1)
	assert.Equal(t, "B-01", rep.Drift[0].ProductCode)
	assert.Equal(t, 10, rep.Drift[0].Difference)
}
