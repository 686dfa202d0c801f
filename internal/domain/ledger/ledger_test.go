package ledger_test

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adrianbura/copie-stok/internal/domain/entity"
	"github.com/adrianbura/copie-stok/internal/domain/ledger"
)

func day(d int) time.Time {
	return time.Date(2024, 6, d, 10, 0, 0, 0, time.UTC)
}

func mov(productID string, t entity.MovementType, qty int, at time.Time) entity.StockMovement {
	return entity.StockMovement{ProductID: productID, Type: t, Quantity: qty, Date: at}
}

func TestBuild_EjemploEntradaSalidaEntrada(t *testing.T) {
	movs := []entity.StockMovement{
		mov("p1", entity.MovementEntry, 10, day(3)),
		mov("p1", entity.MovementEntry, 100, day(1)),
		mov("p1", entity.MovementExit, 30, day(2)),
	}

	rep := ledger.Build(movs, ledger.Window{})
	require.Len(t, rep.Products, 1)
	pl := rep.Products[0]

	var after []int
	for _, e := range pl.Entries {
		after = append(after, e.StockAfter)
	}
	assert.Equal(t, []int{100, 70, 80}, after)
	assert.Equal(t, 110, pl.TotalEntries)
	assert.Equal(t, 30, pl.TotalExits)
	assert.Equal(t, 80, pl.FinalStock)
	assert.Equal(t, 0, pl.OpeningBalance)
}

func TestBuild_SaldoDeAperturaConVentana(t *testing.T) {
	movs := []entity.StockMovement{
		mov("p1", entity.MovementEntry, 50, day(1)),
		mov("p1", entity.MovementExit, 5, day(2)),
		mov("p1", entity.MovementEntry, 20, day(5)),
		mov("p1", entity.MovementExit, 10, day(9)),
	}
	start := ledger.StartOfDay(day(3), time.UTC)
	end := ledger.EndOfDay(day(6), time.UTC)

	rep := ledger.Build(movs, ledger.Window{Start: &start, End: &end})
	require.Len(t, rep.Products, 1)
	pl := rep.Products[0]

	assert.Equal(t, 45, pl.OpeningBalance)
	require.Len(t, pl.Entries, 1)
	assert.Equal(t, 45, pl.Entries[0].StockBefore)
	assert.Equal(t, 65, pl.Entries[0].StockAfter)
	assert.Equal(t, 20, pl.TotalEntries)
	assert.Equal(t, 0, pl.TotalExits)
	assert.Equal(t, 65, pl.FinalStock, "el movimiento del día 9 queda fuera de la ventana")
}

func TestBuild_ProductoSinMovimientosEnVentanaSeOmite(t *testing.T) {
	movs := []entity.StockMovement{
		mov("p1", entity.MovementEntry, 5, day(1)),
		mov("p2", entity.MovementEntry, 7, day(10)),
	}
	start := day(5)

	rep := ledger.Build(movs, ledger.Window{Start: &start})
	require.Len(t, rep.Products, 1)
	assert.Equal(t, "p2", rep.Products[0].ProductID)
}

func TestBuild_IgnoraCantidadesNoPositivasYTiposDesconocidos(t *testing.T) {
	movs := []entity.StockMovement{
		mov("p1", entity.MovementEntry, 10, day(1)),
		mov("p1", entity.MovementExit, 0, day(2)),
		mov("p1", entity.MovementEntry, -4, day(3)),
		mov("p1", entity.MovementType("transfer"), 3, day(4)),
	}

	rep := ledger.Build(movs, ledger.Window{})
	require.Len(t, rep.Products, 1)
	assert.Len(t, rep.Products[0].Entries, 1)
	assert.Equal(t, 10, rep.Products[0].FinalStock)
	assert.Len(t, rep.Ignored, 3)
}

func TestBuild_MismaFechaConservaOrdenDeEntrada(t *testing.T) {
	same := day(4)
	a := mov("p1", entity.MovementEntry, 10, same)
	a.Reference = "A"
	b := mov("p1", entity.MovementExit, 4, same)
	b.Reference = "B"
	c := mov("p1", entity.MovementEntry, 1, same)
	c.Reference = "C"

	rep := ledger.Build([]entity.StockMovement{a, b, c}, ledger.Window{})
	require.Len(t, rep.Products, 1)
	var refs []string
	for _, e := range rep.Products[0].Entries {
		refs = append(refs, e.Movement.Reference)
	}
	assert.Equal(t, []string{"A", "B", "C"}, refs)
}

func TestBuild_ParticionaPorProductoYOrdenaPorID(t *testing.T) {
	movs := []entity.StockMovement{
		mov("b", entity.MovementEntry, 3, day(1)),
		mov("a", entity.MovementEntry, 8, day(2)),
		mov("b", entity.MovementExit, 1, day(3)),
	}
	rep := ledger.Build(movs, ledger.Window{})
	require.Len(t, rep.Products, 2)
	assert.Equal(t, "a", rep.Products[0].ProductID)
	assert.Equal(t, 8, rep.Products[0].FinalStock)
	assert.Equal(t, "b", rep.Products[1].ProductID)
	assert.Equal(t, 2, rep.Products[1].FinalStock)
}

// Propiedades del saldo corriente sobre secuencias aleatorias:
// el último StockAfter es la suma con signo y StockBefore[i+1] == StockAfter[i].
func TestBuild_PropiedadesSaldoCorriente(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for round := 0; round < 200; round++ {
		n := 1 + rng.Intn(40)
		movs := make([]entity.StockMovement, 0, n)
		sum := 0
		for i := 0; i < n; i++ {
			typ := entity.MovementEntry
			if rng.Intn(2) == 0 {
				typ = entity.MovementExit
			}
			m := mov("p", typ, 1+rng.Intn(100), day(1+rng.Intn(28)))
			sum += m.Signed()
			movs = append(movs, m)
		}

		rep := ledger.Build(movs, ledger.Window{})
		require.Len(t, rep.Products, 1)
		entries := rep.Products[0].Entries
		require.Len(t, entries, n)

		assert.Equal(t, sum, entries[len(entries)-1].StockAfter)
		assert.Equal(t, sum, ledger.Balance(movs))
		for i := 1; i < len(entries); i++ {
			assert.Equal(t, entries[i-1].StockAfter, entries[i].StockBefore)
			assert.False(t, entries[i].Movement.Date.Before(entries[i-1].Movement.Date))
		}
	}
}

func TestEndOfDay_UltimoInstanteDelDia(t *testing.T) {
	loc := time.FixedZone("EET", 2*3600)
	got := ledger.EndOfDay(time.Date(2024, 6, 1, 8, 30, 0, 0, loc), loc)
	assert.Equal(t, time.Date(2024, 6, 1, 23, 59, 59, 999999999, loc), got)
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, loc), ledger.StartOfDay(got, loc))
}
